package mds

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"mds-registry-api/internal/domain/errs"
	domain "mds-registry-api/internal/domain/mds"
	"mds-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DBTX
}

func NewRepository(db postgres.DBTX) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchEntryByID(ctx context.Context, id domain.ID) (*domain.Entry, error) {
	return r.fetchOne(ctx, "select mds entry by id", SelectEntryByID, id)
}

func (r *Repository) FetchEntryByNumber(ctx context.Context, mdsNumber string) (*domain.Entry, error) {
	return r.fetchOne(ctx, "select mds entry by number", SelectEntryByNumber, mdsNumber)
}

func (r *Repository) FetchEntriesByIDs(ctx context.Context, ids []domain.ID) (domain.Entries, error) {
	if len(ids) == 0 {
		return domain.Entries{}, nil
	}

	rows, err := r.db.Query(ctx, SelectEntriesByIDs, ids)
	if err != nil {
		return nil, errs.Storage("select mds entries", err)
	}
	defer rows.Close()

	es := make(Entries, 0, len(ids))
	for rows.Next() {
		e := new(Entry)
		if err = scan(rows, e); err != nil {
			return nil, errs.Storage("scan mds entry", err)
		}
		es = append(es, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.Storage("select mds entries", err)
	}

	return fromDBModels(es), nil
}

func (r *Repository) CreateEntry(ctx context.Context, req domain.Entry) (*domain.Entry, error) {
	e := new(Entry)

	err := scan(r.db.QueryRow(ctx, InsertEntry, req.ID, req.MdsNumber, req.CreatedAt), e)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, fmt.Errorf("mds number %q (%s): %w", req.MdsNumber, postgres.ConstraintName(err), errs.ErrConflict)
		}
		return nil, errs.Storage("insert mds entry", err)
	}

	return fromDBModel(e), nil
}

func (r *Repository) fetchOne(ctx context.Context, op, query string, arg string) (*domain.Entry, error) {
	e := new(Entry)
	if err := scan(r.db.QueryRow(ctx, query, arg), e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage(op, err)
	}

	return fromDBModel(e), nil
}

func scan(row pgx.Row, e *Entry) error {
	return row.Scan(
		&e.ID,
		&e.MdsNumber,
		&e.CreatedAt,
	)
}
