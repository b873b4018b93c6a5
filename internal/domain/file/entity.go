package file

import (
	"time"

	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/mds"
)

// URLPrefix is the public path under which stored files are served.
const URLPrefix = "/uploads/"

type (
	ID   = string
	File struct {
		ID ID

		MdsID     mds.ID
		MdsNumber string

		CompanyID   company.ID
		CompanyName string

		ManualType   ManualType
		Filename     string
		OriginalName string
		UploadDate   time.Time
	}
	Files []*File
)

// URL is always derived from Filename and never stored independently.
func (f File) URL() string { return URLFor(f.Filename) }

func URLFor(filename string) string { return URLPrefix + filename }
