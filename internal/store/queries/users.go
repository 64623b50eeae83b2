package queries

import (
	"database/sql"

	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/storeerrors"
	"github.com/davdmx/statuswatch/pkg/logger"
)

const userColumns = "id, email, password, name, type, status, COALESCE(role, '')"

func scanUser(scan func(dest ...interface{}) error) (*store.User, error) {
	var u store.User
	err := scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Type, &u.Status, &u.Role)
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

// CreateUser persists a new user. A duplicate email is reported as a
// conflict, not a generic failure.
func CreateUser(db *sql.DB, u *store.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	logger.Debug("Adding user to the database", "email", u.Email)
	return withTx(db, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"INSERT INTO users (email, password, name, type, status, role) VALUES (?, ?, ?, ?, ?, ?)",
			u.Email, u.Password, u.Name, u.Type, u.Status, u.Role,
		)
		if err != nil {
			return translateErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return translateErr(err)
		}
		u.ID = id
		return nil
	})
}

// GetUserByID looks a user up by its primary key.
func GetUserByID(db *sql.DB, id int64) (*store.User, error) {
	row := db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row.Scan)
}

// GetUserByEmail looks a user up by its unique email.
func GetUserByEmail(db *sql.DB, email string) (*store.User, error) {
	row := db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row.Scan)
}

// ListUsers returns every user.
func ListUsers(db *sql.DB) ([]store.User, error) {
	rows, err := db.Query("SELECT " + userColumns + " FROM users ORDER BY id")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var users []store.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err)
	}
	return users, nil
}

// UpdateUser copies every mutable field of u onto the stored record with
// the same id. The identifier itself is never copied. A validation failure
// aborts the whole update.
func UpdateUser(db *sql.DB, u *store.User) error {
	if u.ID == 0 {
		return storeerrors.NewValidation("id", "no user was passed")
	}
	if err := u.Validate(); err != nil {
		return err
	}

	logger.Debug("Updating user", "id", u.ID, "email", u.Email)
	return withTx(db, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"UPDATE users SET email = ?, password = ?, name = ?, type = ?, status = ?, role = ? WHERE id = ?",
			u.Email, u.Password, u.Name, u.Type, u.Status, u.Role, u.ID,
		)
		if err != nil {
			return translateErr(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return translateErr(err)
		}
		if affected == 0 {
			return storeerrors.ErrNotFound
		}
		return nil
	})
}

// UpdateUserStatus sets the status of the user with the given id.
func UpdateUserStatus(db *sql.DB, id int64, status string) error {
	if status != "active" && status != "inactive" {
		return storeerrors.NewValidation("status", "the status must be one of the list: active, inactive")
	}

	return withTx(db, func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE users SET status = ? WHERE id = ?", status, id)
		if err != nil {
			return translateErr(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return translateErr(err)
		}
		if affected == 0 {
			return storeerrors.ErrNotFound
		}
		logger.Info("User status changed", "id", id, "status", status)
		return nil
	})
}

// ToggleUserStatus flips the user's status between active and inactive and
// returns the new value. Any other stored value is a reported no-op; the
// record is left untouched.
func ToggleUserStatus(db *sql.DB, id int64) (string, error) {
	u, err := GetUserByID(db, id)
	if err != nil {
		return "", err
	}

	next, err := flipStatus(u.Status)
	if err != nil {
		return "", err
	}
	if err := UpdateUserStatus(db, id, next); err != nil {
		return "", err
	}
	return next, nil
}

// flipStatus computes the only valid status transition.
func flipStatus(current string) (string, error) {
	switch current {
	case "active":
		return "inactive", nil
	case "inactive":
		return "active", nil
	default:
		return "", storeerrors.NewValidation("status", "no valid status to toggle")
	}
}
