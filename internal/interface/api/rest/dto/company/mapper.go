package company

import (
	"mds-registry-api/internal/domain/company"
	"mds-registry-api/internal/domain/hierarchy"
	"mds-registry-api/internal/interface/api/rest/dto/mds"
)

func ToResponseCompany(cDomain company.Company) Company {
	return Company{
		ID:        cDomain.ID,
		Name:      cDomain.Name,
		CreatedAt: cDomain.CreatedAt,
	}
}

func ToResponseSummaries(in []hierarchy.CompanySummary) Summaries {
	out := make(Summaries, len(in))
	for idx, s := range in {
		mts := make([]string, len(s.ManualTypes))
		for i, mt := range s.ManualTypes {
			mts[i] = string(mt)
		}
		out[idx] = Summary{
			Company:     ToResponseCompany(s.Company),
			FileCount:   s.FileCount,
			ManualTypes: mts,
		}
	}

	return out
}

func ToResponseNode(n hierarchy.CompanyNode) Node {
	return Node{
		CompanyID:   n.Company.ID,
		CompanyName: n.Company.Name,
		MdsEntries:  mds.ToResponseEntriesWithCount(n.MdsEntries),
	}
}

func ToResponseNodes(in []hierarchy.CompanyNode) Nodes {
	out := make(Nodes, len(in))
	for idx, n := range in {
		out[idx] = ToResponseNode(n)
	}

	return out
}
