package ports

import (
	"context"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/hierarchy"
	"mds-registry-api/internal/domain/mds"
)

// Registry is the boundary every transport talks to.
type Registry interface {
	AddFile(ctx context.Context, r file.Registration) (*file.File, error)
	ListFiles(ctx context.Context) (file.Files, error)
	File(ctx context.Context, id file.ID) (*file.File, error)
	FilesByMds(ctx context.Context, mdsNumber string) (file.Files, error)
	FilesByMdsID(ctx context.Context, mdsID mds.ID) (file.Files, error)
	MdsEntry(ctx context.Context, mdsID mds.ID) (*mds.Entry, error)
	MdsNumbers(ctx context.Context) ([]string, error)
	MdsEntries(ctx context.Context) ([]hierarchy.MdsEntryCount, error)

	Companies(ctx context.Context) ([]hierarchy.CompanySummary, error)
	CompaniesHierarchy(ctx context.Context) ([]hierarchy.CompanyNode, error)
	Company(ctx context.Context, id company.ID) (*company.Company, error)
	CompanyFiles(ctx context.Context, id company.ID) (file.Files, error)
	CompanyHierarchy(ctx context.Context, id company.ID) (*hierarchy.CompanyNode, error)
}
