package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/hierarchy"
	"mds-registry-api/internal/domain/mds"
)

func TestCompanyController(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	acme := company.Company{ID: "comp_1", Name: "Acme", CreatedAt: created}
	entry := mds.Entry{ID: "mds_1", MdsNumber: "MDS-001", CreatedAt: created}
	node := hierarchy.CompanyNode{
		Company:    acme,
		MdsEntries: []hierarchy.MdsEntryCount{{Entry: entry, FileCount: 2}},
	}

	tests := []struct {
		name        string
		path        string
		reg         *FakeRegistry
		wantStatus  int
		wantMessage string
		wantErr     string
		check       func(t *testing.T, resp map[string]any)
	}{
		{
			name: "summary",
			path: RouteCompanies,
			reg: &FakeRegistry{CompaniesFunc: func(ctx context.Context) ([]hierarchy.CompanySummary, error) {
				return []hierarchy.CompanySummary{{
					Company:     acme,
					FileCount:   2,
					ManualTypes: []file.ManualType{file.ManualOperation, file.ManualSpare},
				}}, nil
			}},
			wantStatus:  http.StatusOK,
			wantMessage: "Companies retrieved successfully",
			check: func(t *testing.T, resp map[string]any) {
				data := resp["data"].([]any)
				require.Len(t, data, 1)
				s := data[0].(map[string]any)
				assert.Equal(t, "Acme", s["name"])
				assert.Equal(t, float64(2), s["fileCount"])
				assert.Equal(t, []any{"operation_manual", "spare_manual"}, s["manualTypes"])
			},
		},
		{
			name: "hierarchy",
			path: RouteCompaniesHierarchy,
			reg: &FakeRegistry{CompaniesHierarchyFunc: func(ctx context.Context) ([]hierarchy.CompanyNode, error) {
				return []hierarchy.CompanyNode{node}, nil
			}},
			wantStatus:  http.StatusOK,
			wantMessage: "Company hierarchy retrieved successfully",
			check: func(t *testing.T, resp map[string]any) {
				data := resp["data"].([]any)
				require.Len(t, data, 1)
				n := data[0].(map[string]any)
				assert.Equal(t, "comp_1", n["companyId"])
				assert.Equal(t, "Acme", n["companyName"])
				entries := n["mdsEntries"].([]any)
				require.Len(t, entries, 1)
				assert.Equal(t, float64(2), entries[0].(map[string]any)["fileCount"])
			},
		},
		{
			name: "hierarchy storage failure",
			path: RouteCompaniesHierarchy,
			reg: &FakeRegistry{CompaniesHierarchyFunc: func(ctx context.Context) ([]hierarchy.CompanyNode, error) {
				return nil, errs.Storage("aggregate", errors.New("dangling reference"))
			}},
			wantStatus: http.StatusInternalServerError,
			wantErr:    "Internal server error",
		},
		{
			name: "company by id",
			path: "/api/companies/comp_1",
			reg: &FakeRegistry{CompanyFunc: func(ctx context.Context, id company.ID) (*company.Company, error) {
				c := acme
				return &c, nil
			}},
			wantStatus:  http.StatusOK,
			wantMessage: "Company retrieved successfully",
			check: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "comp_1", resp["data"].(map[string]any)["id"])
			},
		},
		{
			name: "company unknown",
			path: "/api/companies/comp_missing",
			reg: &FakeRegistry{CompanyFunc: func(ctx context.Context, id company.ID) (*company.Company, error) {
				return nil, errs.ErrNotFound
			}},
			wantStatus: http.StatusNotFound,
			wantErr:    "Company not found",
		},
		{
			name: "company files",
			path: "/api/companies/comp_1/files",
			reg: &FakeRegistry{CompanyFilesFunc: func(ctx context.Context, id company.ID) (file.Files, error) {
				if id != "comp_1" {
					return nil, errors.New("unexpected id")
				}
				return file.Files{someFile()}, nil
			}},
			wantStatus:  http.StatusOK,
			wantMessage: "Files retrieved successfully",
			check: func(t *testing.T, resp map[string]any) {
				assert.Len(t, resp["data"], 1)
			},
		},
		{
			name: "company files unknown company",
			path: "/api/companies/comp_missing/files",
			reg: &FakeRegistry{CompanyFilesFunc: func(ctx context.Context, id company.ID) (file.Files, error) {
				return nil, errs.ErrNotFound
			}},
			wantStatus: http.StatusNotFound,
			wantErr:    "Company not found",
		},
		{
			name: "company mds entries",
			path: "/api/companies/comp_1/mds-entries",
			reg: &FakeRegistry{CompanyHierarchyFunc: func(ctx context.Context, id company.ID) (*hierarchy.CompanyNode, error) {
				n := node
				return &n, nil
			}},
			wantStatus:  http.StatusOK,
			wantMessage: "MDS entries retrieved successfully",
			check: func(t *testing.T, resp map[string]any) {
				data := resp["data"].(map[string]any)
				assert.Equal(t, "comp_1", data["companyId"])
				assert.Len(t, data["mdsEntries"], 1)
			},
		},
		{
			name: "company mds entries unknown company",
			path: "/api/companies/comp_missing/mds-entries",
			reg: &FakeRegistry{CompanyHierarchyFunc: func(ctx context.Context, id company.ID) (*hierarchy.CompanyNode, error) {
				return nil, errs.ErrNotFound
			}},
			wantStatus: http.StatusNotFound,
			wantErr:    "Company not found",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r, j := newTestEngine(t)
			NewCompanyController(r, tt.reg, zap.NewNop(), j)

			rr := doReq(t, r, http.MethodGet, tt.path, nil, bearer(t, j))
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			resp := decode(t, rr)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, resp["error"])
				return
			}
			assert.Equal(t, tt.wantMessage, resp["message"])
			if tt.check != nil {
				tt.check(t, resp)
			}
		})
	}
}

func TestCompanyController_RequiresToken(t *testing.T) {
	r, j := newTestEngine(t)
	NewCompanyController(r, &FakeRegistry{}, zap.NewNop(), j)

	for _, path := range []string{RouteCompanies, RouteCompaniesHierarchy, "/api/companies/comp_1", "/api/companies/comp_1/files"} {
		rr := doReq(t, r, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}
