package mds

import (
	"time"
)

type (
	Entry struct {
		ID        string
		MdsNumber string
		CreatedAt time.Time
	}
	Entries []*Entry
)
