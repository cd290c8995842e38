package store

import (
	_ "embed"
	"database/sql"
	"fmt"
)

//go:embed schema.sql
var schema string

const schemaVersion = 1

// applySchema creates every table if absent and records the current schema
// version. Migrations are additive only: this never drops or rewrites an
// existing column.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM schema_version")
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("check schema_version: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema_version: %w", err)
		}
	}

	return nil
}
