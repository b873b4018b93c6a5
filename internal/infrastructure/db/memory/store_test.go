package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/mds"
)

func seed(t *testing.T, s *Store) (*company.Company, *company.Company, *mds.Entry, *mds.Entry) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	acme, err := s.CreateCompany(ctx, company.Company{ID: "cmp_1", Name: "Acme", CreatedAt: now})
	require.NoError(t, err)
	globex, err := s.CreateCompany(ctx, company.Company{ID: "cmp_2", Name: "Globex", CreatedAt: now.Add(time.Second)})
	require.NoError(t, err)
	m1, err := s.CreateEntry(ctx, mds.Entry{ID: "mds_1", MdsNumber: "MDS002", CreatedAt: now})
	require.NoError(t, err)
	m2, err := s.CreateEntry(ctx, mds.Entry{ID: "mds_2", MdsNumber: "MDS001", CreatedAt: now})
	require.NoError(t, err)

	return acme, globex, m1, m2
}

func addFile(t *testing.T, s *Store, id string, c *company.Company, e *mds.Entry, mt file.ManualType, at time.Time) {
	t.Helper()
	_, err := s.CreateFile(context.Background(), file.File{
		ID:           id,
		MdsID:        e.ID,
		MdsNumber:    e.MdsNumber,
		CompanyID:    c.ID,
		CompanyName:  c.Name,
		ManualType:   mt,
		Filename:     id + ".pdf",
		OriginalName: "manual.pdf",
		UploadDate:   at,
	})
	require.NoError(t, err)
}

func TestStore_CompanyUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateCompany(ctx, company.Company{ID: "a", Name: "Acme"})
	require.NoError(t, err)

	_, err = s.CreateCompany(ctx, company.Company{ID: "b", Name: "Acme"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = s.CreateCompany(ctx, company.Company{ID: "a", Name: "Other"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	got, err := s.FetchCompanyByName(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	_, err = s.FetchCompanyByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStore_EntryUniqueness_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateEntry(ctx, mds.Entry{ID: fmt.Sprintf("mds_%d", i), MdsNumber: "MDS001"})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, errs.ErrConflict)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
}

func TestStore_CreateFile_ReferentialIntegrity(t *testing.T) {
	s := New()
	acme, _, m1, _ := seed(t, s)

	_, err := s.CreateFile(context.Background(), file.File{ID: "f1", CompanyID: "nope", MdsID: m1.ID, Filename: "x.pdf"})
	assert.ErrorIs(t, err, errs.ErrStorage)

	_, err = s.CreateFile(context.Background(), file.File{ID: "f1", CompanyID: acme.ID, MdsID: "nope", Filename: "x.pdf"})
	assert.ErrorIs(t, err, errs.ErrStorage)

	addFile(t, s, "f1", acme, m1, file.ManualUser, time.Now())
	_, err = s.CreateFile(context.Background(), file.File{ID: "f2", CompanyID: acme.ID, MdsID: m1.ID, Filename: "f1.pdf"})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestStore_FileQueries(t *testing.T) {
	s := New()
	ctx := context.Background()
	acme, globex, m1, m2 := seed(t, s)
	base := time.Now().UTC()

	addFile(t, s, "f1", acme, m1, file.ManualUser, base)
	addFile(t, s, "f2", globex, m1, file.ManualSpare, base.Add(time.Minute))
	addFile(t, s, "f3", acme, m2, file.ManualSpare, base.Add(2*time.Minute))
	addFile(t, s, "f4", acme, m1, file.ManualUser, base.Add(3*time.Minute))

	all, err := s.FetchFiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"f4", "f3", "f2", "f1"}, ids(all))

	byNumber, err := s.FetchFilesByMdsNumber(ctx, "MDS002")
	require.NoError(t, err)
	assert.Equal(t, []string{"f4", "f2", "f1"}, ids(byNumber))

	byMds, err := s.FetchFilesByMdsID(ctx, m2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"f3"}, ids(byMds))

	byCompany, err := s.FetchFilesByCompanyID(ctx, globex.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"f2"}, ids(byCompany))

	none, err := s.FetchFilesByCompanyID(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	numbers, err := s.FetchMdsNumbers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"MDS001", "MDS002"}, numbers)

	groups, err := s.FetchGroupCounts(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, file.GroupCounts{
		{CompanyID: acme.ID, MdsID: m1.ID, Count: 2},
		{CompanyID: acme.ID, MdsID: m2.ID, Count: 1},
		{CompanyID: globex.ID, MdsID: m1.ID, Count: 1},
	}, groups)

	scoped, err := s.FetchGroupCounts(ctx, globex.ID)
	require.NoError(t, err)
	assert.Equal(t, file.GroupCounts{{CompanyID: globex.ID, MdsID: m1.ID, Count: 1}}, scoped)

	stats, err := s.FetchCompanyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, file.CompanyStats{
		{CompanyID: acme.ID, Count: 3, ManualTypes: []file.ManualType{file.ManualSpare, file.ManualUser}},
		{CompanyID: globex.ID, Count: 1, ManualTypes: []file.ManualType{file.ManualSpare}},
	}, stats)
}

func TestStore_FetchEntriesByIDs(t *testing.T) {
	s := New()
	_, _, m1, m2 := seed(t, s)

	es, err := s.FetchEntriesByIDs(context.Background(), []mds.ID{m1.ID, "missing", m2.ID, m1.ID})
	require.NoError(t, err)
	require.Len(t, es, 2)
	assert.Equal(t, "MDS001", es[0].MdsNumber)
	assert.Equal(t, "MDS002", es[1].MdsNumber)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	acme, _, _, _ := seed(t, s)

	acme.Name = "mutated"
	got, err := s.FetchCompanyByID(context.Background(), acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	cs, err := s.FetchCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "Globex", cs[0].Name, "newest first")
}

func ids(fs file.Files) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.ID
	}
	return out
}
