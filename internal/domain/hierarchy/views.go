// Package hierarchy holds the read models the aggregation layer builds by
// joining files against the company and mds directories.
package hierarchy

import (
	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/file"
	"mds-registry-api/internal/domain/mds"
)

type (
	// MdsEntryCount is an mds entry with the number of files referencing it,
	// either globally or within one company depending on the query.
	MdsEntryCount struct {
		Entry     mds.Entry
		FileCount int
	}

	// CompanyNode is one company with its entries counted over that
	// company's files only.
	CompanyNode struct {
		Company    company.Company
		MdsEntries []MdsEntryCount
	}

	CompanySummary struct {
		Company     company.Company
		FileCount   int
		ManualTypes []file.ManualType
	}
)
