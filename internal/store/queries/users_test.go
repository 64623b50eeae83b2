package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/storeerrors"
)

func TestCreateUserAndGet(t *testing.T) {
	db := newTestDB(t)

	u := seedUser(t, db, "alice@example.com", "Alice", "admin")
	require.NotZero(t, u.ID)

	byID, err := GetUserByID(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
	assert.Equal(t, "active", byID.Status)

	byEmail, err := GetUserByEmail(db, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
}

func TestCreateUser_DuplicateEmailIsConflict(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "admin")

	dup, err := store.NewUser("alice@example.com", "other-hash", "Impostor", "user", "")
	require.NoError(t, err)
	err = CreateUser(db, dup)
	require.Error(t, err)
	assert.True(t, storeerrors.IsConflict(err))
	assert.Contains(t, err.Error(), "email")
}

func TestGetUser_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := GetUserByID(db, 42)
	assert.True(t, storeerrors.IsNotFound(err))

	_, err = GetUserByEmail(db, "ghost@example.com")
	assert.True(t, storeerrors.IsNotFound(err))
}

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "alice@example.com", "Alice", "admin")
	seedUser(t, db, "bob@example.com", "Bob", "user")

	users, err := ListUsers(db)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice@example.com", users[0].Email)
	assert.Equal(t, "bob@example.com", users[1].Email)
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com", "Alice", "user")

	u.Name = "Alice Cooper"
	u.Role = "ops"
	require.NoError(t, UpdateUser(db, u))

	stored, err := GetUserByID(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", stored.Name)
	assert.Equal(t, "ops", stored.Role)
}

func TestUpdateUser_ValidationAbortsWrite(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com", "Alice", "user")

	u.Name = "Changed"
	u.Email = "not-an-email"
	err := UpdateUser(db, u)
	require.Error(t, err)
	assert.True(t, storeerrors.IsValidation(err))

	stored, err := GetUserByID(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.Equal(t, "Alice", stored.Name)
}

func TestUpdateUser_MissingID(t *testing.T) {
	db := newTestDB(t)

	u, err := store.NewUser("alice@example.com", "hash", "Alice", "user", "")
	require.NoError(t, err)
	err = UpdateUser(db, u)
	require.Error(t, err)
	assert.True(t, storeerrors.IsValidation(err))
}

func TestUpdateUser_UnknownIDIsNotFound(t *testing.T) {
	db := newTestDB(t)

	u, err := store.NewUser("alice@example.com", "hash", "Alice", "user", "")
	require.NoError(t, err)
	u.ID = 42
	assert.True(t, storeerrors.IsNotFound(UpdateUser(db, u)))
}

func TestToggleUserStatus_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com", "Alice", "user")

	status, err := ToggleUserStatus(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", status)

	status, err = ToggleUserStatus(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", status)

	stored, err := GetUserByID(db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", stored.Status)
}

func TestToggleUserStatus_UnrecognizedStatusIsNoOp(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com", "Alice", "user")

	// Corrupt the stored status directly; the toggle must refuse to guess.
	_, err := db.Exec("UPDATE users SET status = 'paused' WHERE id = ?", u.ID)
	require.NoError(t, err)

	_, err = ToggleUserStatus(db, u.ID)
	require.Error(t, err)
	assert.True(t, storeerrors.IsValidation(err))

	var stored string
	require.NoError(t, db.QueryRow("SELECT status FROM users WHERE id = ?", u.ID).Scan(&stored))
	assert.Equal(t, "paused", stored)
}

func TestUpdateUserStatus_RejectsUnknownValue(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "alice@example.com", "Alice", "user")

	err := UpdateUserStatus(db, u.ID, "frozen")
	require.Error(t, err)
	assert.True(t, storeerrors.IsValidation(err))
}
