// Package queries is the repository over the SQL store. It builds filtered
// lookups, performs writes inside scoped transactions and translates every
// storage failure into the storeerrors taxonomy; callers never see a raw
// driver error.
package queries

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/davdmx/statuswatch/internal/store/storeerrors"
)

// translateErr maps a driver error to the store's error taxonomy.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storeerrors.ErrNotFound
	}
	if field, ok := uniqueConstraintField(err); ok {
		return &storeerrors.ConflictError{Field: field}
	}
	return fmt.Errorf("%w: %v", storeerrors.ErrUnavailable, err)
}

// uniqueConstraintField extracts the column of a uniqueness violation.
// SQLite reports these as "UNIQUE constraint failed: <table>.<column>".
func uniqueConstraintField(err error) (string, bool) {
	msg := err.Error()
	marker := "UNIQUE constraint failed: "
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return "", false
	}
	target := msg[idx+len(marker):]
	if end := strings.IndexAny(target, " )("); end > 0 {
		target = target[:end]
	}
	if dot := strings.LastIndex(target, "."); dot >= 0 {
		target = target[dot+1:]
	}
	return target, true
}
