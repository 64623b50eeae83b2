package queries

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/migrate"
)

// newTestDB opens a fresh in-memory database with the schema applied. The
// pool is capped at one connection so every statement sees the same
// in-memory database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, migrate.Bootstrap(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, email, name, userType string) *store.User {
	t.Helper()
	u, err := store.NewUser(email, "hashed-password", name, userType, "")
	require.NoError(t, err)
	require.NoError(t, CreateUser(db, u))
	return u
}

func seedService(t *testing.T, db *sql.DB, name, url string, appType store.AppType) *store.Service {
	t.Helper()
	s, err := store.NewService(name, "", url, "obtain:div:id:status", appType, "", "")
	require.NoError(t, err)
	require.NoError(t, CreateService(db, s))
	return s
}

func seedLog(t *testing.T, db *sql.DB, appID int64, status string, when time.Time, otherData string) *store.ServiceLog {
	t.Helper()
	l, err := store.NewServiceLog(status, when, appID, otherData)
	require.NoError(t, err)
	require.NoError(t, CreateLog(db, l))
	return l
}
