package file

const (
	fileColumns = `id, mds_id, mds_number, company_id, company_name, manual_type, filename, original_name, upload_date, file_url`

	InsertFile = `
		INSERT INTO files (id, mds_id, mds_number, company_id, company_name, manual_type, filename, original_name, upload_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + fileColumns
	SelectFileByID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1
	`
	SelectFiles = `
		SELECT ` + fileColumns + `
		FROM files
		ORDER BY upload_date DESC, id DESC
	`
	SelectFilesByMdsNumber = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE mds_number = $1
		ORDER BY upload_date DESC, id DESC
	`
	SelectFilesByMdsID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE mds_id = $1
		ORDER BY upload_date DESC, id DESC
	`
	SelectFilesByCompanyID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE company_id = $1
		ORDER BY upload_date DESC, id DESC
	`
	SelectMdsNumbers = `
		SELECT DISTINCT mds_number COLLATE "C" AS mds_number
		FROM files
		ORDER BY 1
	`
	SelectGroupCounts = `
		SELECT company_id, mds_id, COUNT(*)
		FROM files
		WHERE ($1::text = '' OR company_id = $1::text)
		GROUP BY company_id, mds_id
		ORDER BY company_id, mds_id
	`
	SelectCompanyStats = `
		SELECT company_id, COUNT(*), array_agg(DISTINCT manual_type)
		FROM files
		GROUP BY company_id
		ORDER BY company_id
	`
)
