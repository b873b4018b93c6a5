package mds

import (
	domain "mds-registry-api/internal/domain/mds"
)

func fromDBModel(model *Entry) *domain.Entry {
	return &domain.Entry{
		ID:        model.ID,
		MdsNumber: model.MdsNumber,
		CreatedAt: model.CreatedAt.UTC(),
	}
}

func fromDBModels(models Entries) domain.Entries {
	es := make(domain.Entries, len(models))
	for idx, e := range models {
		es[idx] = fromDBModel(e)
	}

	return es
}
