package company

import (
	domain "mds-registry-api/internal/domain/company"
)

func fromDBModel(model *Company) *domain.Company {
	return &domain.Company{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt.UTC(),
	}
}

func fromDBModels(models Companies) domain.Companies {
	cs := make(domain.Companies, len(models))
	for idx, c := range models {
		cs[idx] = fromDBModel(c)
	}

	return cs
}
