package mds

import (
	"time"

	"mds-registry-api/internal/interface/api/rest/dto/file"
)

type (
	Entry struct {
		ID        string    `json:"id"`
		MdsNumber string    `json:"mdsNumber"`
		CreatedAt time.Time `json:"createdAt"`
	}
	EntryWithCount struct {
		Entry
		FileCount int `json:"fileCount"`
	}
	EntriesWithCount []EntryWithCount

	EntryFiles struct {
		MdsEntry Entry      `json:"mdsEntry"`
		Files    file.Files `json:"files"`
	}
)
