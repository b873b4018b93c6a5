package company

import (
	"time"

	"mds-registry-api/internal/interface/api/rest/dto/mds"
)

type (
	Company struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Summary struct {
		Company
		FileCount   int      `json:"fileCount"`
		ManualTypes []string `json:"manualTypes"`
	}
	Summaries []Summary

	Node struct {
		CompanyID   string               `json:"companyId"`
		CompanyName string               `json:"companyName"`
		MdsEntries  mds.EntriesWithCount `json:"mdsEntries"`
	}
	Nodes []Node
)
