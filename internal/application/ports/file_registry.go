package ports

import (
	"context"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/hierarchy"
	"mds-registry-api/internal/domain/mds"
)

type FileRegistry interface {
	AddFile(ctx context.Context, r file.Registration) (*file.File, error)
	GetAll(ctx context.Context) (file.Files, error)
	GetByID(ctx context.Context, id file.ID) (*file.File, error)
	GetByMdsNumber(ctx context.Context, mdsNumber string) (file.Files, error)
	GetByMdsID(ctx context.Context, mdsID mds.ID) (file.Files, error)
	GetByCompanyID(ctx context.Context, companyID company.ID) (file.Files, error)
}

type Aggregator interface {
	ListMdsNumbers(ctx context.Context) ([]string, error)
	ListMdsEntriesWithCounts(ctx context.Context) ([]hierarchy.MdsEntryCount, error)
	ListCompaniesHierarchy(ctx context.Context) ([]hierarchy.CompanyNode, error)
	ListCompaniesSummary(ctx context.Context) ([]hierarchy.CompanySummary, error)
	MdsEntriesForCompany(ctx context.Context, companyID company.ID) (*hierarchy.CompanyNode, error)
}
