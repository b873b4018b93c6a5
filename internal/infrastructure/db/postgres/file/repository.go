package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	domain "mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/mds"
	"mds-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DBTX
}

func NewRepository(db postgres.DBTX) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateFile(ctx context.Context, req domain.File) (*domain.File, error) {
	f := new(File)

	err := scan(
		r.db.QueryRow(
			ctx,
			InsertFile,
			req.ID,
			req.MdsID,
			req.MdsNumber,
			req.CompanyID,
			req.CompanyName,
			string(req.ManualType),
			req.Filename,
			req.OriginalName,
			req.UploadDate,
		),
		f,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, fmt.Errorf("file %q (%s): %w", req.Filename, postgres.ConstraintName(err), errs.ErrConflict)
		}
		return nil, errs.Storage("insert file", err)
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchFileByID(ctx context.Context, id domain.ID) (*domain.File, error) {
	f := new(File)
	if err := scan(r.db.QueryRow(ctx, SelectFileByID, id), f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Storage("select file by id", err)
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchFiles(ctx context.Context) (domain.Files, error) {
	return r.fetchMany(ctx, "select files", SelectFiles)
}

func (r *Repository) FetchFilesByMdsNumber(ctx context.Context, mdsNumber string) (domain.Files, error) {
	return r.fetchMany(ctx, "select files by mds number", SelectFilesByMdsNumber, mdsNumber)
}

func (r *Repository) FetchFilesByMdsID(ctx context.Context, mdsID mds.ID) (domain.Files, error) {
	return r.fetchMany(ctx, "select files by mds id", SelectFilesByMdsID, mdsID)
}

func (r *Repository) FetchFilesByCompanyID(ctx context.Context, companyID company.ID) (domain.Files, error) {
	return r.fetchMany(ctx, "select files by company id", SelectFilesByCompanyID, companyID)
}

func (r *Repository) FetchMdsNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, SelectMdsNumbers)
	if err != nil {
		return nil, errs.Storage("select mds numbers", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var n string
		if err = rows.Scan(&n); err != nil {
			return nil, errs.Storage("scan mds number", err)
		}
		out = append(out, n)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.Storage("select mds numbers", err)
	}

	return out, nil
}

func (r *Repository) FetchGroupCounts(ctx context.Context, companyID company.ID) (domain.GroupCounts, error) {
	rows, err := r.db.Query(ctx, SelectGroupCounts, companyID)
	if err != nil {
		return nil, errs.Storage("aggregate group counts", err)
	}
	defer rows.Close()

	out := make(domain.GroupCounts, 0)
	for rows.Next() {
		var gc GroupCount
		if err = rows.Scan(&gc.CompanyID, &gc.MdsID, &gc.Count); err != nil {
			return nil, errs.Storage("scan group count", err)
		}
		out = append(out, fromDBGroupCount(gc))
	}
	if err = rows.Err(); err != nil {
		return nil, errs.Storage("aggregate group counts", err)
	}

	return out, nil
}

func (r *Repository) FetchCompanyStats(ctx context.Context) (domain.CompanyStats, error) {
	rows, err := r.db.Query(ctx, SelectCompanyStats)
	if err != nil {
		return nil, errs.Storage("aggregate company stats", err)
	}
	defer rows.Close()

	out := make(domain.CompanyStats, 0)
	for rows.Next() {
		var cs CompanyStat
		if err = rows.Scan(&cs.CompanyID, &cs.Count, &cs.ManualTypes); err != nil {
			return nil, errs.Storage("scan company stat", err)
		}
		out = append(out, fromDBCompanyStat(cs))
	}
	if err = rows.Err(); err != nil {
		return nil, errs.Storage("aggregate company stats", err)
	}

	return out, nil
}

func (r *Repository) fetchMany(ctx context.Context, op, query string, args ...any) (domain.Files, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Storage(op, err)
	}
	defer rows.Close()

	fs := make(Files, 0)
	for rows.Next() {
		f := new(File)
		if err = scan(rows, f); err != nil {
			return nil, errs.Storage("scan file", err)
		}
		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.Storage(op, err)
	}

	return fromDBModels(fs), nil
}

func scan(row pgx.Row, f *File) error {
	return row.Scan(
		&f.ID,
		&f.MdsID,
		&f.MdsNumber,
		&f.CompanyID,
		&f.CompanyName,
		&f.ManualType,
		&f.Filename,
		&f.OriginalName,
		&f.UploadDate,
		&f.FileURL,
	)
}
