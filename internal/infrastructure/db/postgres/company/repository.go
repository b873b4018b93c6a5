package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domain "mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DBTX
}

func NewRepository(db postgres.DBTX) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchCompanyByID(ctx context.Context, id domain.ID) (*domain.Company, error) {
	return r.fetchOne(ctx, "select company by id", SelectCompanyByID, id)
}

func (r *Repository) FetchCompanyByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.fetchOne(ctx, "select company by name", SelectCompanyByName, name)
}

func (r *Repository) FetchCompanies(ctx context.Context) (domain.Companies, error) {
	rows, err := r.db.Query(ctx, SelectCompanies)
	if err != nil {
		return nil, errs.Storage("select companies", err)
	}
	defer rows.Close()

	cs := make(Companies, 0)
	for rows.Next() {
		c := new(Company)
		if err = scan(rows, c); err != nil {
			return nil, errs.Storage("scan company", err)
		}
		cs = append(cs, c)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.Storage("select companies", err)
	}

	return fromDBModels(cs), nil
}

func (r *Repository) CreateCompany(ctx context.Context, req domain.Company) (*domain.Company, error) {
	c := new(Company)

	err := scan(r.db.QueryRow(ctx, InsertCompany, req.ID, req.Name, req.CreatedAt), c)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, fmt.Errorf("company %q (%s): %w", req.Name, postgres.ConstraintName(err), errs.ErrConflict)
		}
		return nil, errs.Storage("insert company", err)
	}

	return fromDBModel(c), nil
}

func (r *Repository) fetchOne(ctx context.Context, op, query string, arg string) (*domain.Company, error) {
	c := new(Company)
	if err := scan(r.db.QueryRow(ctx, query, arg), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage(op, err)
	}

	return fromDBModel(c), nil
}

func scan(row pgx.Row, c *Company) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.CreatedAt,
	)
}
