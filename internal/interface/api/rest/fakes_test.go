package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/account"
	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/hierarchy"
	"mds-registry-api/internal/domain/mds"
	jwtSvc "mds-registry-api/internal/infrastructure/jwt"
)

const testSecret = "test-secret"

type FakeRegistry struct {
	AddFileFunc            func(ctx context.Context, r file.Registration) (*file.File, error)
	ListFilesFunc          func(ctx context.Context) (file.Files, error)
	FileFunc               func(ctx context.Context, id file.ID) (*file.File, error)
	FilesByMdsFunc         func(ctx context.Context, mdsNumber string) (file.Files, error)
	FilesByMdsIDFunc       func(ctx context.Context, mdsID mds.ID) (file.Files, error)
	MdsEntryFunc           func(ctx context.Context, mdsID mds.ID) (*mds.Entry, error)
	MdsNumbersFunc         func(ctx context.Context) ([]string, error)
	MdsEntriesFunc         func(ctx context.Context) ([]hierarchy.MdsEntryCount, error)
	CompaniesFunc          func(ctx context.Context) ([]hierarchy.CompanySummary, error)
	CompaniesHierarchyFunc func(ctx context.Context) ([]hierarchy.CompanyNode, error)
	CompanyFunc            func(ctx context.Context, id company.ID) (*company.Company, error)
	CompanyFilesFunc       func(ctx context.Context, id company.ID) (file.Files, error)
	CompanyHierarchyFunc   func(ctx context.Context, id company.ID) (*hierarchy.CompanyNode, error)
}

var _ ports.Registry = (*FakeRegistry)(nil)

func (f *FakeRegistry) AddFile(ctx context.Context, r file.Registration) (*file.File, error) {
	if f.AddFileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.AddFileFunc(ctx, r)
}
func (f *FakeRegistry) ListFiles(ctx context.Context) (file.Files, error) {
	if f.ListFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListFilesFunc(ctx)
}
func (f *FakeRegistry) File(ctx context.Context, id file.ID) (*file.File, error) {
	if f.FileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FileFunc(ctx, id)
}
func (f *FakeRegistry) FilesByMds(ctx context.Context, mdsNumber string) (file.Files, error) {
	if f.FilesByMdsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FilesByMdsFunc(ctx, mdsNumber)
}
func (f *FakeRegistry) FilesByMdsID(ctx context.Context, mdsID mds.ID) (file.Files, error) {
	if f.FilesByMdsIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FilesByMdsIDFunc(ctx, mdsID)
}
func (f *FakeRegistry) MdsEntry(ctx context.Context, mdsID mds.ID) (*mds.Entry, error) {
	if f.MdsEntryFunc == nil {
		return nil, errors.New("not used")
	}
	return f.MdsEntryFunc(ctx, mdsID)
}
func (f *FakeRegistry) MdsNumbers(ctx context.Context) ([]string, error) {
	if f.MdsNumbersFunc == nil {
		return nil, errors.New("not used")
	}
	return f.MdsNumbersFunc(ctx)
}
func (f *FakeRegistry) MdsEntries(ctx context.Context) ([]hierarchy.MdsEntryCount, error) {
	if f.MdsEntriesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.MdsEntriesFunc(ctx)
}
func (f *FakeRegistry) Companies(ctx context.Context) ([]hierarchy.CompanySummary, error) {
	if f.CompaniesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CompaniesFunc(ctx)
}
func (f *FakeRegistry) CompaniesHierarchy(ctx context.Context) ([]hierarchy.CompanyNode, error) {
	if f.CompaniesHierarchyFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CompaniesHierarchyFunc(ctx)
}
func (f *FakeRegistry) Company(ctx context.Context, id company.ID) (*company.Company, error) {
	if f.CompanyFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CompanyFunc(ctx, id)
}
func (f *FakeRegistry) CompanyFiles(ctx context.Context, id company.ID) (file.Files, error) {
	if f.CompanyFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CompanyFilesFunc(ctx, id)
}
func (f *FakeRegistry) CompanyHierarchy(ctx context.Context, id company.ID) (*hierarchy.CompanyNode, error) {
	if f.CompanyHierarchyFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CompanyHierarchyFunc(ctx, id)
}

type FakeUploadService struct {
	UploadFunc func(ctx context.Context, req ports.UploadRequest) (*file.File, error)
}

func (f *FakeUploadService) Upload(ctx context.Context, req ports.UploadRequest) (*file.File, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, req)
}

type FakeBlobStore struct {
	LocateFunc func(ctx context.Context, filename string) (ports.Location, error)
}

func (f *FakeBlobStore) Put(context.Context, string, io.Reader, int64, string) error {
	return errors.New("not used")
}
func (f *FakeBlobStore) Locate(ctx context.Context, filename string) (ports.Location, error) {
	if f.LocateFunc == nil {
		return ports.Location{}, errors.New("not used")
	}
	return f.LocateFunc(ctx, filename)
}
func (f *FakeBlobStore) Delete(context.Context, string) error { return errors.New("not used") }

type FakeAuthService struct {
	LoginFunc func(ctx context.Context, username, password string) (string, *account.Account, error)
}

func (f *FakeAuthService) Login(ctx context.Context, username, password string) (string, *account.Account, error) {
	if f.LoginFunc == nil {
		return "", nil, errors.New("not used")
	}
	return f.LoginFunc(ctx, username, password)
}

func newTestEngine(t *testing.T) (*gin.Engine, *jwtSvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return gin.New(), jwtSvc.New(testSecret)
}

func bearer(t *testing.T, j *jwtSvc.Service) map[string]string {
	t.Helper()

	token, err := j.GenerateJWT("acc_1", "admin", account.RoleAdmin, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	case []byte:
		buf = bytes.NewReader(v)
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func someFile() *file.File {
	return &file.File{
		ID:           "file_1",
		MdsID:        "mds_1",
		MdsNumber:    "MDS-001",
		CompanyID:    "comp_1",
		CompanyName:  "Acme",
		ManualType:   file.ManualOperation,
		Filename:     "pdf-1700000000000-000000001.pdf",
		OriginalName: "manual.pdf",
		UploadDate:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
