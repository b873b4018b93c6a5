package file

import (
	"context"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/mds"
)

// Repository is append-only. Every list is ordered by UploadDate descending
// and is empty, not an error, when nothing matches.
type Repository interface {
	CreateFile(ctx context.Context, f File) (*File, error)
	FetchFileByID(ctx context.Context, id ID) (*File, error)
	FetchFiles(ctx context.Context) (Files, error)
	FetchFilesByMdsNumber(ctx context.Context, mdsNumber string) (Files, error)
	FetchFilesByMdsID(ctx context.Context, mdsID mds.ID) (Files, error)
	FetchFilesByCompanyID(ctx context.Context, companyID company.ID) (Files, error)

	// FetchMdsNumbers returns distinct MDS numbers referenced by files, ascending.
	FetchMdsNumbers(ctx context.Context) ([]string, error)
	// FetchGroupCounts groups files by (company, mds entry). An empty
	// companyID means all companies.
	FetchGroupCounts(ctx context.Context, companyID company.ID) (GroupCounts, error)
	// FetchCompanyStats returns per-company file counts with the distinct
	// manual types, sorted ascending, for companies that own files.
	FetchCompanyStats(ctx context.Context) (CompanyStats, error)
}
