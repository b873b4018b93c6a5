package services

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mds-registry-api/config"
	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/infrastructure/metrics"
	"mds-registry-api/internal/infrastructure/mq"
	dto "mds-registry-api/internal/interface/api/rest/dto/company"
	"mds-registry-api/pkg/idgen"
)

type CompanyDirectory struct {
	repo     company.Repository
	cache    *recordCache[company.Company]
	events   ports.EventPublisher
	log      *zap.Logger
	mCounter *prometheus.CounterVec
	newID    idgen.Func
}

func NewCompanyDirectory(
	repo company.Repository,
	cacheCfg config.Cache,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.CompanyDirectory {
	return &CompanyDirectory{
		repo:     repo,
		cache:    newRecordCache[company.Company](cacheCfg.Size, cacheCfg.TTL, mCounter),
		events:   events,
		log:      logger,
		mCounter: mCounter,
		newID:    idgen.New,
	}
}

func (d *CompanyDirectory) FindOrCreate(ctx context.Context, name string) (*company.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValidation(map[string]string{"companyName": "companyName is required"})
	}
	if c, ok := d.cache.byKey(name); ok {
		return &c, nil
	}

	c, created, conflicts, err := findOrCreate(ctx,
		func(ctx context.Context) (*company.Company, error) {
			return d.repo.FetchCompanyByName(ctx, name)
		},
		func(ctx context.Context) (*company.Company, error) {
			return d.repo.CreateCompany(ctx, company.Company{
				ID:        d.newID(idgen.PrefixCompany),
				Name:      name,
				CreatedAt: clock(),
			})
		},
	)
	if conflicts > 0 {
		d.mCounter.WithLabelValues(metrics.ConflictsResolved).Add(float64(conflicts))
		d.log.Debug("company insert lost a race, using existing record",
			zap.String("name", name),
			zap.Int("conflicts", conflicts),
		)
	}
	if err != nil {
		return nil, err
	}

	if created {
		d.mCounter.WithLabelValues(metrics.CompaniesCreated).Inc()
		if !d.events.Publish(mq.NewEvent(mq.ActionCompanyCreated, c.ID, dto.ToResponseCompany(*c))) {
			d.mCounter.WithLabelValues(metrics.EventsDropped).Inc()
		}
	}
	d.cache.add(c.Name, c.ID, *c)

	return c, nil
}

func (d *CompanyDirectory) GetByID(ctx context.Context, id company.ID) (*company.Company, error) {
	if c, ok := d.cache.byID(id); ok {
		return &c, nil
	}

	c, err := d.repo.FetchCompanyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.cache.add(c.Name, c.ID, *c)

	return c, nil
}

func (d *CompanyDirectory) ListAll(ctx context.Context) (company.Companies, error) {
	return d.repo.FetchCompanies(ctx)
}
