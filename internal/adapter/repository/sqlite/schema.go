package sqlite

import "github.com/jmoiron/sqlx"

// schema is the persisted layout. The extractions table must stay exactly in
// this shape: dashboard databases created by earlier versions are opened
// as-is, and CURRENT_TIMESTAMP defaults keep rows written by other tools
// consistent with the timestamps this repository writes.
const schema = `
CREATE TABLE IF NOT EXISTS extractions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	file_size INTEGER,
	mime_type TEXT,
	extraction_date DATETIME DEFAULT CURRENT_TIMESTAMP,
	status TEXT DEFAULT 'success',
	data_json TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_extractions_filename ON extractions(filename);
CREATE INDEX IF NOT EXISTS idx_extractions_date ON extractions(extraction_date);
CREATE INDEX IF NOT EXISTS idx_extractions_status ON extractions(status);
`

// EnsureSchema creates the extractions table and its indexes if missing.
func EnsureSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
