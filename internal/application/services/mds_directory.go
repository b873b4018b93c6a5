package services

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mds-registry-api/config"
	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/domain/mds"
	"mds-registry-api/internal/infrastructure/metrics"
	"mds-registry-api/internal/infrastructure/mq"
	dto "mds-registry-api/internal/interface/api/rest/dto/mds"
	"mds-registry-api/pkg/idgen"
)

// MdsDirectory resolves MDS numbers to entries. Numbers are global: the same
// number maps to one entry no matter which company uploads against it.
type MdsDirectory struct {
	repo     mds.Repository
	cache    *recordCache[mds.Entry]
	events   ports.EventPublisher
	log      *zap.Logger
	mCounter *prometheus.CounterVec
	newID    idgen.Func
}

func NewMdsDirectory(
	repo mds.Repository,
	cacheCfg config.Cache,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.MdsDirectory {
	return &MdsDirectory{
		repo:     repo,
		cache:    newRecordCache[mds.Entry](cacheCfg.Size, cacheCfg.TTL, mCounter),
		events:   events,
		log:      logger,
		mCounter: mCounter,
		newID:    idgen.New,
	}
}

func (d *MdsDirectory) FindOrCreate(ctx context.Context, mdsNumber string) (*mds.Entry, error) {
	mdsNumber = strings.TrimSpace(mdsNumber)
	if mdsNumber == "" {
		return nil, errs.NewValidation(map[string]string{"mdsNumber": "mdsNumber is required"})
	}
	if e, ok := d.cache.byKey(mdsNumber); ok {
		return &e, nil
	}

	e, created, conflicts, err := findOrCreate(ctx,
		func(ctx context.Context) (*mds.Entry, error) {
			return d.repo.FetchEntryByNumber(ctx, mdsNumber)
		},
		func(ctx context.Context) (*mds.Entry, error) {
			return d.repo.CreateEntry(ctx, mds.Entry{
				ID:        d.newID(idgen.PrefixMds),
				MdsNumber: mdsNumber,
				CreatedAt: clock(),
			})
		},
	)
	if conflicts > 0 {
		d.mCounter.WithLabelValues(metrics.ConflictsResolved).Add(float64(conflicts))
		d.log.Debug("mds entry insert lost a race, using existing record",
			zap.String("mds_number", mdsNumber),
			zap.Int("conflicts", conflicts),
		)
	}
	if err != nil {
		return nil, err
	}

	if created {
		d.mCounter.WithLabelValues(metrics.MdsEntriesCreated).Inc()
		if !d.events.Publish(mq.NewEvent(mq.ActionMdsCreated, e.ID, dto.ToResponseEntry(*e))) {
			d.mCounter.WithLabelValues(metrics.EventsDropped).Inc()
		}
	}
	d.cache.add(e.MdsNumber, e.ID, *e)

	return e, nil
}

func (d *MdsDirectory) GetByID(ctx context.Context, id mds.ID) (*mds.Entry, error) {
	if e, ok := d.cache.byID(id); ok {
		return &e, nil
	}

	e, err := d.repo.FetchEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.cache.add(e.MdsNumber, e.ID, *e)

	return e, nil
}

func (d *MdsDirectory) GetByNumber(ctx context.Context, mdsNumber string) (*mds.Entry, error) {
	if e, ok := d.cache.byKey(mdsNumber); ok {
		return &e, nil
	}

	e, err := d.repo.FetchEntryByNumber(ctx, mdsNumber)
	if err != nil {
		return nil, err
	}
	d.cache.add(e.MdsNumber, e.ID, *e)

	return e, nil
}
