package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mds-registry-api/config"
	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/hierarchy"
	"mds-registry-api/internal/domain/mds"
)

// Stores are the three backing collections of one registry.
type Stores struct {
	Companies company.Repository
	Entries   mds.Repository
	Files     file.Repository
}

// Registry is the single entry point transports use. It is built once at
// process start and shared by every consumer.
type Registry struct {
	companies  ports.CompanyDirectory
	mdsDir     ports.MdsDirectory
	files      ports.FileRegistry
	aggregates ports.Aggregator
}

func NewRegistry(
	companies ports.CompanyDirectory,
	mdsDir ports.MdsDirectory,
	files ports.FileRegistry,
	aggregates ports.Aggregator,
) ports.Registry {
	return &Registry{
		companies:  companies,
		mdsDir:     mdsDir,
		files:      files,
		aggregates: aggregates,
	}
}

// NewRegistryFromStores wires the directories, the file registry and the
// aggregator over one set of stores.
func NewRegistryFromStores(
	stores Stores,
	cacheCfg config.Cache,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.Registry {
	companies := NewCompanyDirectory(stores.Companies, cacheCfg, events, logger, mCounter)
	mdsDir := NewMdsDirectory(stores.Entries, cacheCfg, events, logger, mCounter)

	return NewRegistry(
		companies,
		mdsDir,
		NewFileRegistry(stores.Files, mdsDir, companies, events, logger, mCounter),
		NewAggregator(stores.Files, stores.Companies, stores.Entries),
	)
}

func (r *Registry) AddFile(ctx context.Context, reg file.Registration) (*file.File, error) {
	return r.files.AddFile(ctx, reg)
}

func (r *Registry) ListFiles(ctx context.Context) (file.Files, error) {
	return r.files.GetAll(ctx)
}

func (r *Registry) File(ctx context.Context, id file.ID) (*file.File, error) {
	return r.files.GetByID(ctx, id)
}

func (r *Registry) FilesByMds(ctx context.Context, mdsNumber string) (file.Files, error) {
	return r.files.GetByMdsNumber(ctx, mdsNumber)
}

func (r *Registry) FilesByMdsID(ctx context.Context, mdsID mds.ID) (file.Files, error) {
	return r.files.GetByMdsID(ctx, mdsID)
}

func (r *Registry) MdsEntry(ctx context.Context, mdsID mds.ID) (*mds.Entry, error) {
	return r.mdsDir.GetByID(ctx, mdsID)
}

func (r *Registry) MdsNumbers(ctx context.Context) ([]string, error) {
	return r.aggregates.ListMdsNumbers(ctx)
}

func (r *Registry) MdsEntries(ctx context.Context) ([]hierarchy.MdsEntryCount, error) {
	return r.aggregates.ListMdsEntriesWithCounts(ctx)
}

func (r *Registry) Companies(ctx context.Context) ([]hierarchy.CompanySummary, error) {
	return r.aggregates.ListCompaniesSummary(ctx)
}

func (r *Registry) CompaniesHierarchy(ctx context.Context) ([]hierarchy.CompanyNode, error) {
	return r.aggregates.ListCompaniesHierarchy(ctx)
}

func (r *Registry) Company(ctx context.Context, id company.ID) (*company.Company, error) {
	return r.companies.GetByID(ctx, id)
}

// CompanyFiles fails with errs.ErrNotFound for an unknown company rather than
// returning an empty list.
func (r *Registry) CompanyFiles(ctx context.Context, id company.ID) (file.Files, error) {
	if _, err := r.companies.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return r.files.GetByCompanyID(ctx, id)
}

func (r *Registry) CompanyHierarchy(ctx context.Context, id company.ID) (*hierarchy.CompanyNode, error) {
	return r.aggregates.MdsEntriesForCompany(ctx, id)
}
