package file

import (
	"time"
)

type (
	File struct {
		ID           string
		MdsID        string
		MdsNumber    string
		CompanyID    string
		CompanyName  string
		ManualType   string
		Filename     string
		OriginalName string
		UploadDate   time.Time
		FileURL      string
	}
	Files []*File

	GroupCount struct {
		CompanyID string
		MdsID     string
		Count     int64
	}

	CompanyStat struct {
		CompanyID   string
		Count       int64
		ManualTypes []string
	}
)
