package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/errs"
	domain "mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/mds"
	"mds-registry-api/internal/infrastructure/metrics"
	"mds-registry-api/internal/infrastructure/mq"
	dto "mds-registry-api/internal/interface/api/rest/dto/file"
	"mds-registry-api/pkg/idgen"
)

type FileRegistry struct {
	repo      domain.Repository
	mdsDir    ports.MdsDirectory
	companies ports.CompanyDirectory
	events    ports.EventPublisher
	log       *zap.Logger
	mCounter  *prometheus.CounterVec
	newID     idgen.Func
}

func NewFileRegistry(
	repo domain.Repository,
	mdsDir ports.MdsDirectory,
	companies ports.CompanyDirectory,
	events ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.FileRegistry {
	return &FileRegistry{
		repo:      repo,
		mdsDir:    mdsDir,
		companies: companies,
		events:    events,
		log:       logger,
		mCounter:  mCounter,
		newID:     idgen.New,
	}
}

// AddFile resolves the mds entry, then the company, then appends the file.
// Directories created before a failed insert are kept: an entry or company
// with no files breaks no invariant.
func (fr *FileRegistry) AddFile(ctx context.Context, r domain.Registration) (*domain.File, error) {
	r = r.Normalize()
	if missing := r.Missing(); len(missing) > 0 {
		return nil, errs.NewValidation(missing)
	}
	if !r.ManualType.IsKnown() {
		fr.log.Warn("unknown manual type accepted",
			zap.String("manual_type", string(r.ManualType)),
			zap.String("mds_number", r.MdsNumber),
		)
	}

	entry, err := fr.mdsDir.FindOrCreate(ctx, r.MdsNumber)
	if err != nil {
		return nil, err
	}
	c, err := fr.companies.FindOrCreate(ctx, r.CompanyName)
	if err != nil {
		return nil, err
	}

	f, err := fr.repo.CreateFile(ctx, domain.File{
		ID:           fr.newID(idgen.PrefixFile),
		MdsID:        entry.ID,
		MdsNumber:    entry.MdsNumber,
		CompanyID:    c.ID,
		CompanyName:  c.Name,
		ManualType:   r.ManualType,
		Filename:     r.Filename,
		OriginalName: r.OriginalName,
		UploadDate:   clock(),
	})
	if err != nil {
		// a taken filename or id is a failed write from the caller's view
		if errors.Is(err, errs.ErrConflict) {
			return nil, &errs.StorageError{Op: "insert file", Err: err}
		}
		return nil, errs.Storage("insert file", err)
	}

	fr.mCounter.WithLabelValues(metrics.FilesRegistered).Inc()
	if !fr.events.Publish(mq.NewEvent(mq.ActionFileRegistered, f.ID, dto.ToResponseFile(*f))) {
		fr.mCounter.WithLabelValues(metrics.EventsDropped).Inc()
	}

	return f, nil
}

func (fr *FileRegistry) GetAll(ctx context.Context) (domain.Files, error) {
	return fr.repo.FetchFiles(ctx)
}

func (fr *FileRegistry) GetByID(ctx context.Context, id domain.ID) (*domain.File, error) {
	return fr.repo.FetchFileByID(ctx, id)
}

func (fr *FileRegistry) GetByMdsNumber(ctx context.Context, mdsNumber string) (domain.Files, error) {
	return fr.repo.FetchFilesByMdsNumber(ctx, mdsNumber)
}

func (fr *FileRegistry) GetByMdsID(ctx context.Context, mdsID mds.ID) (domain.Files, error) {
	return fr.repo.FetchFilesByMdsID(ctx, mdsID)
}

func (fr *FileRegistry) GetByCompanyID(ctx context.Context, companyID company.ID) (domain.Files, error) {
	return fr.repo.FetchFilesByCompanyID(ctx, companyID)
}
