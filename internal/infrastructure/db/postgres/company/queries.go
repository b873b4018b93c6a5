package company

const (
	SelectCompanyByID = `
		SELECT id, name, created_at
		FROM companies
		WHERE id = $1
	`
	SelectCompanyByName = `
		SELECT id, name, created_at
		FROM companies
		WHERE name = $1
	`
	SelectCompanies = `
		SELECT id, name, created_at
		FROM companies
		ORDER BY created_at DESC, id DESC
	`
	InsertCompany = `
		INSERT INTO companies (id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, name, created_at
	`
)
