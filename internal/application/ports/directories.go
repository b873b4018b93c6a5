package ports

import (
	"context"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/mds"
)

type CompanyDirectory interface {
	FindOrCreate(ctx context.Context, name string) (*company.Company, error)
	GetByID(ctx context.Context, id company.ID) (*company.Company, error)
	ListAll(ctx context.Context) (company.Companies, error)
}

type MdsDirectory interface {
	FindOrCreate(ctx context.Context, mdsNumber string) (*mds.Entry, error)
	GetByID(ctx context.Context, id mds.ID) (*mds.Entry, error)
	GetByNumber(ctx context.Context, mdsNumber string) (*mds.Entry, error)
}
