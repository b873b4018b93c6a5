package company

import (
	"context"
)

// Repository persists companies. CreateCompany must enforce uniqueness of
// Name and report a duplicate with errs.ErrConflict; single-record fetches
// report a miss with errs.ErrNotFound.
type Repository interface {
	FetchCompanyByID(ctx context.Context, id ID) (*Company, error)
	FetchCompanyByName(ctx context.Context, name string) (*Company, error)
	FetchCompanies(ctx context.Context) (Companies, error)
	CreateCompany(ctx context.Context, c Company) (*Company, error)
}
