package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"mime"
	"path"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/infrastructure/metrics"
)

const (
	pdfContentType     = "application/pdf"
	maxOriginalNameLen = 255
)

var (
	ErrOnlyPDF      = errors.New("only PDF files are allowed")
	ErrFileTooLarge = errors.New("file too large")
)

type UploadService struct {
	registry ports.Registry
	blobs    ports.BlobStore
	pdf      ports.PDFValidator
	maxSize  int64
	log      *zap.Logger
	mCounter *prometheus.CounterVec
	now      func() time.Time
}

func NewUploadService(
	registry ports.Registry,
	blobs ports.BlobStore,
	pdf ports.PDFValidator,
	maxSize int64,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.UploadService {
	return &UploadService{
		registry: registry,
		blobs:    blobs,
		pdf:      pdf,
		maxSize:  maxSize,
		log:      logger,
		mCounter: mCounter,
		now:      time.Now,
	}
}

// Upload checks the request, stores the bytes under a generated name and
// registers the file. The blob is removed again when registration fails.
func (us *UploadService) Upload(ctx context.Context, req ports.UploadRequest) (*file.File, error) {
	reg := file.Registration{
		MdsNumber:   req.MdsNumber,
		CompanyName: req.CompanyName,
		ManualType:  file.ManualType(req.ManualType),
	}.Normalize()
	missing := reg.Missing()
	// the stored name is generated below
	delete(missing, "filename")
	if req.File == nil {
		missing["pdf"] = "PDF file is required"
	}
	if len(missing) > 0 {
		return nil, us.reject(errs.NewValidation(missing))
	}

	if us.maxSize > 0 && req.File.Size > us.maxSize {
		return nil, us.reject(fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, req.File.Size, us.maxSize))
	}
	if !isPDF(req.File.Filename, req.File.Header.Get("Content-Type")) {
		return nil, us.reject(ErrOnlyPDF)
	}

	f, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	if err = us.pdf.Validate(f); err != nil {
		us.log.Info("upload rejected by pdf validation", zap.String("original_name", req.File.Filename), zap.Error(err))
		return nil, us.reject(ErrOnlyPDF)
	}

	reg.Filename = us.storedName()
	reg.OriginalName = displayName(req.File.Filename)

	if err = us.blobs.Put(ctx, reg.Filename, f, req.File.Size, pdfContentType); err != nil {
		return nil, err
	}

	out, err := us.registry.AddFile(ctx, reg)
	if err != nil {
		if delErr := us.blobs.Delete(context.WithoutCancel(ctx), reg.Filename); delErr != nil {
			us.log.Error("orphaned blob after failed registration",
				zap.String("filename", reg.Filename),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	return out, nil
}

func (us *UploadService) reject(err error) error {
	us.mCounter.WithLabelValues(metrics.UploadsRejected).Inc()
	return err
}

// storedName is pdf-<unix millis>-<9 random digits>.pdf.
func (us *UploadService) storedName() string {
	return fmt.Sprintf("pdf-%d-%09d.pdf", us.now().UnixMilli(), rand.IntN(1_000_000_000))
}

func isPDF(filename, contentType string) bool {
	if !strings.EqualFold(path.Ext(filename), ".pdf") {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == pdfContentType
}

// displayName keeps the client's file name readable while dropping any path
// and control characters. The result is only ever displayed, never used as
// a storage key.
func displayName(original string) string {
	s := strings.ReplaceAll(strings.TrimSpace(original), "\\", "/")
	s = path.Base(s)
	if s == "." || s == "/" || s == ".." || s == "" {
		return "document.pdf"
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Cc)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "document.pdf"
	}

	for utf8.RuneCountInString(s) > maxOriginalNameLen {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}

	return s
}
