package server

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/davdmx/statuswatch/internal/store/migrate"
)

// openDB opens the SQLite database at path and creates the schema if
// absent.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrate.Bootstrap(db); err != nil {
		return nil, err
	}

	return db, nil
}
