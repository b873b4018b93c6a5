package company

import (
	"time"
)

type (
	Company struct {
		ID        string
		Name      string
		CreatedAt time.Time
	}
	Companies []*Company
)
