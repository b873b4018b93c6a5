package file

import (
	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/mds"
)

type (
	// GroupCount is the number of files sharing one (company, mds entry) pair.
	GroupCount struct {
		CompanyID company.ID
		MdsID     mds.ID
		Count     int
	}
	GroupCounts []GroupCount

	CompanyStat struct {
		CompanyID   company.ID
		Count       int
		ManualTypes []ManualType
	}
	CompanyStats []CompanyStat
)
