package mds

import (
	"time"
)

type (
	ID    = string
	Entry struct {
		ID        ID
		MdsNumber string
		CreatedAt time.Time
	}
	Entries []*Entry
)
