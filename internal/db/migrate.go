package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order. Statements must be idempotent because the
// whole list is re-run on every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		doc_id     TEXT NOT NULL,
		body       TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (collection, doc_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
