package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/hierarchy"
	"mds-registry-api/internal/domain/mds"
)

// Aggregator builds hierarchy views straight from the repositories on every
// call. Any failed read fails the whole call; nothing partial is returned.
type Aggregator struct {
	files     file.Repository
	companies company.Repository
	entries   mds.Repository
}

func NewAggregator(files file.Repository, companies company.Repository, entries mds.Repository) ports.Aggregator {
	return &Aggregator{files: files, companies: companies, entries: entries}
}

func (a *Aggregator) ListMdsNumbers(ctx context.Context) ([]string, error) {
	return a.files.FetchMdsNumbers(ctx)
}

// ListMdsEntriesWithCounts counts files per entry across all companies.
// Entries without files are left out. Output is ordered by mds number.
func (a *Aggregator) ListMdsEntriesWithCounts(ctx context.Context) ([]hierarchy.MdsEntryCount, error) {
	counts, err := a.files.FetchGroupCounts(ctx, "")
	if err != nil {
		return nil, err
	}

	perEntry := make(map[mds.ID]int)
	for _, gc := range counts {
		perEntry[gc.MdsID] += gc.Count
	}

	return a.entriesWithCounts(ctx, perEntry)
}

// ListCompaniesHierarchy returns companies with at least one file, by name,
// each with its entries counted over that company's files only.
func (a *Aggregator) ListCompaniesHierarchy(ctx context.Context) ([]hierarchy.CompanyNode, error) {
	// counts first: every company and entry they reference already exists
	// when the directories are read afterwards.
	counts, err := a.files.FetchGroupCounts(ctx, "")
	if err != nil {
		return nil, err
	}
	companies, err := a.companies.FetchCompanies(ctx)
	if err != nil {
		return nil, err
	}

	byCompany := make(map[company.ID]map[mds.ID]int)
	ids := make(map[mds.ID]struct{})
	for _, gc := range counts {
		if byCompany[gc.CompanyID] == nil {
			byCompany[gc.CompanyID] = make(map[mds.ID]int)
		}
		byCompany[gc.CompanyID][gc.MdsID] += gc.Count
		ids[gc.MdsID] = struct{}{}
	}

	entries, err := a.fetchEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	known := make(map[company.ID]*company.Company, len(companies))
	for _, c := range companies {
		known[c.ID] = c
	}

	out := make([]hierarchy.CompanyNode, 0, len(byCompany))
	for companyID, perEntry := range byCompany {
		c, ok := known[companyID]
		if !ok {
			return nil, danglingRef("company", companyID)
		}
		node := hierarchy.CompanyNode{Company: *c, MdsEntries: make([]hierarchy.MdsEntryCount, 0, len(perEntry))}
		for _, e := range entries {
			if n, ok := perEntry[e.ID]; ok {
				node.MdsEntries = append(node.MdsEntries, hierarchy.MdsEntryCount{Entry: *e, FileCount: n})
			}
		}
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Company.Name != out[j].Company.Name {
			return out[i].Company.Name < out[j].Company.Name
		}
		return out[i].Company.ID < out[j].Company.ID
	})

	return out, nil
}

// ListCompaniesSummary covers every company, including those with no files.
// Companies keep the directory order, newest first.
func (a *Aggregator) ListCompaniesSummary(ctx context.Context) ([]hierarchy.CompanySummary, error) {
	var (
		stats     file.CompanyStats
		companies company.Companies
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = a.files.FetchCompanyStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		companies, err = a.companies.FetchCompanies(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCompany := make(map[company.ID]file.CompanyStat, len(stats))
	for _, s := range stats {
		byCompany[s.CompanyID] = s
	}

	out := make([]hierarchy.CompanySummary, len(companies))
	for i, c := range companies {
		s := byCompany[c.ID]
		mts := s.ManualTypes
		if mts == nil {
			mts = []file.ManualType{}
		}
		out[i] = hierarchy.CompanySummary{Company: *c, FileCount: s.Count, ManualTypes: mts}
	}

	return out, nil
}

// MdsEntriesForCompany fails with errs.ErrNotFound for an unknown company. A
// known company without files yields an empty entry list.
func (a *Aggregator) MdsEntriesForCompany(ctx context.Context, companyID company.ID) (*hierarchy.CompanyNode, error) {
	c, err := a.companies.FetchCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	counts, err := a.files.FetchGroupCounts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	perEntry := make(map[mds.ID]int, len(counts))
	for _, gc := range counts {
		perEntry[gc.MdsID] += gc.Count
	}

	entries, err := a.entriesWithCounts(ctx, perEntry)
	if err != nil {
		return nil, err
	}

	return &hierarchy.CompanyNode{Company: *c, MdsEntries: entries}, nil
}

func (a *Aggregator) entriesWithCounts(ctx context.Context, perEntry map[mds.ID]int) ([]hierarchy.MdsEntryCount, error) {
	ids := make(map[mds.ID]struct{}, len(perEntry))
	for id := range perEntry {
		ids[id] = struct{}{}
	}

	entries, err := a.fetchEntries(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]hierarchy.MdsEntryCount, len(entries))
	for i, e := range entries {
		out[i] = hierarchy.MdsEntryCount{Entry: *e, FileCount: perEntry[e.ID]}
	}

	return out, nil
}

// fetchEntries loads the entries by id, ordered by mds number, and fails if
// any referenced entry is missing.
func (a *Aggregator) fetchEntries(ctx context.Context, ids map[mds.ID]struct{}) (mds.Entries, error) {
	list := make([]mds.ID, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	entries, err := a.entries.FetchEntriesByIDs(ctx, list)
	if err != nil {
		return nil, err
	}
	if len(entries) != len(list) {
		found := make(map[mds.ID]struct{}, len(entries))
		for _, e := range entries {
			found[e.ID] = struct{}{}
		}
		for _, id := range list {
			if _, ok := found[id]; !ok {
				return nil, danglingRef("mds entry", id)
			}
		}
	}

	return entries, nil
}

func danglingRef(what, id string) error {
	return &errs.StorageError{Op: "aggregate", Err: fmt.Errorf("%s %q referenced by files does not exist", what, id)}
}
