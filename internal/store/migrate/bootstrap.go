// Package migrate creates the persisted schema at startup. There is no
// migrations system; tables are created only if absent.
package migrate

import (
	"database/sql"
	"fmt"
)

// CreateUsersTable creates the 'users' table.
func CreateUsersTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    role TEXT
);`

	_, err := db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	return nil
}

// CreateServiceTable creates the 'service' table.
func CreateServiceTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS service (
    app_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    url TEXT NOT NULL,
    route TEXT NOT NULL,
    user TEXT,
    password TEXT,
    status TEXT NOT NULL DEFAULT 'active',
    app_type TEXT NOT NULL,
    other_data1 TEXT,
    other_data2 TEXT,
    other_data3 TEXT,
    other_data4 TEXT,
    other_data5 TEXT
);`

	_, err := db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create service table: %w", err)
	}

	return nil
}

// CreateServiceLogTable creates the 'service_log' table.
func CreateServiceLogTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS service_log (
    log_id INTEGER PRIMARY KEY AUTOINCREMENT,
    status TEXT NOT NULL,
    status_date TIMESTAMP NOT NULL,
    other_data TEXT,
    app_id INTEGER NOT NULL,
    FOREIGN KEY (app_id) REFERENCES service(app_id)
);`

	_, err := db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create service_log table: %w", err)
	}

	return nil
}

// Bootstrap creates every table the application needs.
func Bootstrap(db *sql.DB) error {
	if err := CreateUsersTable(db); err != nil {
		return err
	}
	if err := CreateServiceTable(db); err != nil {
		return err
	}
	return CreateServiceLogTable(db)
}
