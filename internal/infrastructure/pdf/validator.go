// Package pdf checks that uploaded bytes are a readable PDF document.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var ErrNotPDF = errors.New("not a pdf document")

var magic = []byte("%PDF-")

type Validator struct {
	conf *model.Configuration
}

// New validates in relaxed mode.
func New() *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Validator{conf: conf}
}

// Validate leaves rs positioned at the start.
func (v *Validator) Validate(rs io.ReadSeeker) error {
	head := make([]byte, 1024)
	n, err := io.ReadFull(rs, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read header: %w", err)
	}
	if !bytes.Contains(head[:n], magic) {
		return ErrNotPDF
	}

	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err = api.Validate(rs, v.conf); err != nil {
		return fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	_, err = rs.Seek(0, io.SeekStart)
	return err
}
