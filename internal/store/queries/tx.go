package queries

import (
	"database/sql"

	"github.com/davdmx/statuswatch/pkg/logger"
)

// withTx runs fn inside a transaction scoped to the call: acquired on
// entry, committed on success and rolled back on every other exit path.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return translateErr(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return translateErr(err)
	}
	return nil
}
