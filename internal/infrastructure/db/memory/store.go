// Package memory keeps the registry collections in process memory with the
// same uniqueness and referential rules the database backends enforce.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/mds"
)

// Store implements company.Repository, mds.Repository and file.Repository.
// Records are copied on the way in and out so callers can never mutate
// stored state.
type Store struct {
	mu sync.RWMutex

	companies       map[company.ID]company.Company
	companiesByName map[string]company.ID

	entries         map[mds.ID]mds.Entry
	entriesByNumber map[string]mds.ID

	files       []file.File
	filesByID   map[file.ID]int
	filesByName map[string]file.ID
}

var (
	_ company.Repository = (*Store)(nil)
	_ mds.Repository     = (*Store)(nil)
	_ file.Repository    = (*Store)(nil)
)

func New() *Store {
	return &Store{
		companies:       make(map[company.ID]company.Company),
		companiesByName: make(map[string]company.ID),
		entries:         make(map[mds.ID]mds.Entry),
		entriesByNumber: make(map[string]mds.ID),
		filesByID:       make(map[file.ID]int),
		filesByName:     make(map[string]file.ID),
	}
}

// companies

func (s *Store) FetchCompanyByID(_ context.Context, id company.ID) (*company.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

func (s *Store) FetchCompanyByName(_ context.Context, name string) (*company.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.companiesByName[name]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := s.companies[id]
	return &c, nil
}

func (s *Store) FetchCompanies(_ context.Context) (company.Companies, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cs := make(company.Companies, 0, len(s.companies))
	for _, c := range s.companies {
		c := c
		cs = append(cs, &c)
	}
	sort.Slice(cs, func(i, j int) bool {
		if !cs[i].CreatedAt.Equal(cs[j].CreatedAt) {
			return cs[i].CreatedAt.After(cs[j].CreatedAt)
		}
		return cs[i].ID > cs[j].ID
	})

	return cs, nil
}

func (s *Store) CreateCompany(_ context.Context, c company.Company) (*company.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companiesByName[c.Name]; ok {
		return nil, fmt.Errorf("company %q: %w", c.Name, errs.ErrConflict)
	}
	if _, ok := s.companies[c.ID]; ok {
		return nil, fmt.Errorf("company id %q: %w", c.ID, errs.ErrConflict)
	}

	s.companies[c.ID] = c
	s.companiesByName[c.Name] = c.ID

	return &c, nil
}

// mds entries

func (s *Store) FetchEntryByID(_ context.Context, id mds.ID) (*mds.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &e, nil
}

func (s *Store) FetchEntryByNumber(_ context.Context, mdsNumber string) (*mds.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.entriesByNumber[mdsNumber]
	if !ok {
		return nil, errs.ErrNotFound
	}
	e := s.entries[id]
	return &e, nil
}

func (s *Store) FetchEntriesByIDs(_ context.Context, ids []mds.ID) (mds.Entries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	es := make(mds.Entries, 0, len(ids))
	seen := make(map[mds.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if e, ok := s.entries[id]; ok {
			es = append(es, &e)
		}
	}
	sort.Slice(es, func(i, j int) bool { return es[i].MdsNumber < es[j].MdsNumber })

	return es, nil
}

func (s *Store) CreateEntry(_ context.Context, e mds.Entry) (*mds.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entriesByNumber[e.MdsNumber]; ok {
		return nil, fmt.Errorf("mds number %q: %w", e.MdsNumber, errs.ErrConflict)
	}
	if _, ok := s.entries[e.ID]; ok {
		return nil, fmt.Errorf("mds id %q: %w", e.ID, errs.ErrConflict)
	}

	s.entries[e.ID] = e
	s.entriesByNumber[e.MdsNumber] = e.ID

	return &e, nil
}

// files

func (s *Store) CreateFile(_ context.Context, f file.File) (*file.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[f.CompanyID]; !ok {
		return nil, errs.Storage("insert file", fmt.Errorf("company %q does not exist", f.CompanyID))
	}
	if _, ok := s.entries[f.MdsID]; !ok {
		return nil, errs.Storage("insert file", fmt.Errorf("mds entry %q does not exist", f.MdsID))
	}
	if _, ok := s.filesByID[f.ID]; ok {
		return nil, fmt.Errorf("file id %q: %w", f.ID, errs.ErrConflict)
	}
	if _, ok := s.filesByName[f.Filename]; ok {
		return nil, fmt.Errorf("filename %q: %w", f.Filename, errs.ErrConflict)
	}

	s.filesByID[f.ID] = len(s.files)
	s.filesByName[f.Filename] = f.ID
	s.files = append(s.files, f)

	return &f, nil
}

func (s *Store) FetchFileByID(_ context.Context, id file.ID) (*file.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.filesByID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	f := s.files[idx]
	return &f, nil
}

func (s *Store) FetchFiles(_ context.Context) (file.Files, error) {
	return s.filterFiles(func(file.File) bool { return true }), nil
}

func (s *Store) FetchFilesByMdsNumber(_ context.Context, mdsNumber string) (file.Files, error) {
	return s.filterFiles(func(f file.File) bool { return f.MdsNumber == mdsNumber }), nil
}

func (s *Store) FetchFilesByMdsID(_ context.Context, mdsID mds.ID) (file.Files, error) {
	return s.filterFiles(func(f file.File) bool { return f.MdsID == mdsID }), nil
}

func (s *Store) FetchFilesByCompanyID(_ context.Context, companyID company.ID) (file.Files, error) {
	return s.filterFiles(func(f file.File) bool { return f.CompanyID == companyID }), nil
}

func (s *Store) FetchMdsNumbers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{})
	for _, f := range s.files {
		set[f.MdsNumber] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)

	return out, nil
}

func (s *Store) FetchGroupCounts(_ context.Context, companyID company.ID) (file.GroupCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type key struct {
		companyID company.ID
		mdsID     mds.ID
	}
	counts := make(map[key]int)
	for _, f := range s.files {
		if companyID != "" && f.CompanyID != companyID {
			continue
		}
		counts[key{f.CompanyID, f.MdsID}]++
	}

	out := make(file.GroupCounts, 0, len(counts))
	for k, n := range counts {
		out = append(out, file.GroupCount{CompanyID: k.companyID, MdsID: k.mdsID, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompanyID != out[j].CompanyID {
			return out[i].CompanyID < out[j].CompanyID
		}
		return out[i].MdsID < out[j].MdsID
	})

	return out, nil
}

func (s *Store) FetchCompanyStats(_ context.Context) (file.CompanyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[company.ID]int)
	types := make(map[company.ID]map[file.ManualType]struct{})
	for _, f := range s.files {
		counts[f.CompanyID]++
		if types[f.CompanyID] == nil {
			types[f.CompanyID] = make(map[file.ManualType]struct{})
		}
		types[f.CompanyID][f.ManualType] = struct{}{}
	}

	out := make(file.CompanyStats, 0, len(counts))
	for id, n := range counts {
		mts := make([]file.ManualType, 0, len(types[id]))
		for mt := range types[id] {
			mts = append(mts, mt)
		}
		sort.Slice(mts, func(i, j int) bool { return mts[i] < mts[j] })
		out = append(out, file.CompanyStat{CompanyID: id, Count: n, ManualTypes: mts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompanyID < out[j].CompanyID })

	return out, nil
}

func (s *Store) filterFiles(keep func(file.File) bool) file.Files {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(file.Files, 0)
	for _, f := range s.files {
		if keep(f) {
			f := f
			out = append(out, &f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UploadDate.Equal(out[j].UploadDate) {
			return out[i].UploadDate.After(out[j].UploadDate)
		}
		return out[i].ID > out[j].ID
	})

	return out
}
