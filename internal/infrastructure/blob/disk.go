package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/errs"
)

type Disk struct {
	dir string
	log *zap.Logger
}

var _ ports.BlobStore = (*Disk)(nil)

// NewDisk creates dir when it does not exist yet.
func NewDisk(dir string, logger *zap.Logger) (*Disk, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve uploads dir: %w", err)
	}
	if err = os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	logger.Info("disk blob store ready", zap.String("dir", abs))

	return &Disk{dir: abs, log: logger}, nil
}

// Put writes through a temp file and renames, so a reader never sees a
// partially written blob.
func (d *Disk) Put(_ context.Context, filename string, body io.Reader, _ int64, _ string) error {
	if err := ValidName(filename); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return errs.Storage("create temp file", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return errs.Storage("write blob", err)
	}
	if err = tmp.Close(); err != nil {
		return errs.Storage("close blob", err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(d.dir, filename)); err != nil {
		return errs.Storage("rename blob", err)
	}

	return nil
}

func (d *Disk) Locate(_ context.Context, filename string) (ports.Location, error) {
	if err := ValidName(filename); err != nil {
		return ports.Location{}, err
	}

	p := filepath.Join(d.dir, filename)
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ports.Location{}, errs.ErrNotFound
		}
		return ports.Location{}, errs.Storage("stat blob", err)
	}
	if info.IsDir() {
		return ports.Location{}, errs.ErrNotFound
	}

	return ports.Location{Path: p}, nil
}

func (d *Disk) Delete(_ context.Context, filename string) error {
	if err := ValidName(filename); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(d.dir, filename)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errs.Storage("delete blob", err)
	}
	return nil
}
