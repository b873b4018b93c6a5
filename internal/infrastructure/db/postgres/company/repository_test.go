package company

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
)

var columns = []string{"id", "name", "created_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return mock
}

func TestRepository_CreateCompany(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	req := domain.Company{ID: "cmp_1", Name: "Acme", CreatedAt: now}

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "inserted",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta(InsertCompany)).
					WithArgs(req.ID, req.Name, req.CreatedAt).
					WillReturnRows(m.NewRows(columns).AddRow(req.ID, req.Name, now))
			},
		},
		{
			name: "unique violation is a conflict",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta(InsertCompany)).
					WithArgs(req.ID, req.Name, req.CreatedAt).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "companies_name_key"})
			},
			wantErr: errs.ErrConflict,
		},
		{
			name: "driver failure is a storage error",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta(InsertCompany)).
					WithArgs(req.ID, req.Name, req.CreatedAt).
					WillReturnError(errors.New("conn reset"))
			},
			wantErr: errs.ErrStorage,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			got, err := NewRepository(mock).CreateCompany(context.Background(), req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &req, got)
		})
	}
}

func TestRepository_FetchCompanyByName(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectCompanyByName)).
			WithArgs("Acme").
			WillReturnRows(mock.NewRows(columns).AddRow("cmp_1", "Acme", now))

		got, err := NewRepository(mock).FetchCompanyByName(context.Background(), "Acme")
		require.NoError(t, err)
		assert.Equal(t, "cmp_1", got.ID)
		assert.Equal(t, "Acme", got.Name)
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(SelectCompanyByName)).
			WithArgs("Nope").
			WillReturnRows(mock.NewRows(columns))

		_, err := NewRepository(mock).FetchCompanyByName(context.Background(), "Nope")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestRepository_FetchCompanies(t *testing.T) {
	mock := newMock(t)
	t1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta(SelectCompanies)).
		WillReturnRows(mock.NewRows(columns).
			AddRow("cmp_2", "Beta", t1).
			AddRow("cmp_1", "Acme", t0))

	got, err := NewRepository(mock).FetchCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Beta", got[0].Name)
	assert.Equal(t, "Acme", got[1].Name)
}
