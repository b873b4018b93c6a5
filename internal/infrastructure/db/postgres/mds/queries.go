package mds

const (
	SelectEntryByID = `
		SELECT id, mds_number, created_at
		FROM mds_entries
		WHERE id = $1
	`
	SelectEntryByNumber = `
		SELECT id, mds_number, created_at
		FROM mds_entries
		WHERE mds_number = $1
	`
	SelectEntriesByIDs = `
		SELECT id, mds_number, created_at
		FROM mds_entries
		WHERE id = ANY($1)
		ORDER BY mds_number COLLATE "C"
	`
	InsertEntry = `
		INSERT INTO mds_entries (id, mds_number, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, mds_number, created_at
	`
)
