package file

import (
	"sort"

	domain "mds-registry-api/internal/domain/file"
)

// FileURL is not carried over: the domain derives it from Filename.
func fromDBModel(model *File) *domain.File {
	return &domain.File{
		ID:           model.ID,
		MdsID:        model.MdsID,
		MdsNumber:    model.MdsNumber,
		CompanyID:    model.CompanyID,
		CompanyName:  model.CompanyName,
		ManualType:   domain.ManualType(model.ManualType),
		Filename:     model.Filename,
		OriginalName: model.OriginalName,
		UploadDate:   model.UploadDate.UTC(),
	}
}

func fromDBModels(models Files) domain.Files {
	fs := make(domain.Files, len(models))
	for idx, f := range models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}

func fromDBGroupCount(model GroupCount) domain.GroupCount {
	return domain.GroupCount{
		CompanyID: model.CompanyID,
		MdsID:     model.MdsID,
		Count:     int(model.Count),
	}
}

func fromDBCompanyStat(model CompanyStat) domain.CompanyStat {
	mts := make([]domain.ManualType, len(model.ManualTypes))
	for i, mt := range model.ManualTypes {
		mts[i] = domain.ManualType(mt)
	}
	sort.Slice(mts, func(i, j int) bool { return mts[i] < mts[j] })

	return domain.CompanyStat{
		CompanyID:   model.CompanyID,
		Count:       int(model.Count),
		ManualTypes: mts,
	}
}
