package company

import (
	"time"
)

type (
	ID      = string
	Company struct {
		ID        ID
		Name      string
		CreatedAt time.Time
	}
	Companies []*Company
)
