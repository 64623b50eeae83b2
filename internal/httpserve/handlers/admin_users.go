package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/davdmx/statuswatch/internal/httpserve/middleware"
	"github.com/davdmx/statuswatch/internal/server"
	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/queries"
	"github.com/davdmx/statuswatch/pkg/logger"
)

// statusResult is the body returned by the update and toggle endpoints.
type statusResult struct {
	Updated bool   `json:"updated"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// paramID parses the numeric path parameter. Identifiers arrive as
// integer-like strings.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "It wasn't provided a valid id")
	}
	return id, nil
}

// ListUsers returns every registered user.
func ListUsers(c echo.Context, a *server.App) error {
	users, err := queries.ListUsers(a.DB)
	if err != nil {
		return sendStoreError(c, err)
	}

	result := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		result = append(result, users[i].ToMap())
	}
	return c.JSON(http.StatusOK, result)
}

// AddUser registers a new user. The password is hashed before it reaches
// the store; an unknown type falls back to "user".
func AddUser(c echo.Context, a *server.App) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	name := c.FormValue("name")
	role := c.FormValue("role")
	userType := c.FormValue("type")

	if userType != "user" && userType != "admin" {
		userType = "user"
	}
	if password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Password is required."})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not hash password")
	}

	user, err := store.NewUser(email, string(hashed), name, userType, role)
	if err != nil {
		return sendStoreError(c, err)
	}
	if err := queries.CreateUser(a.DB, user); err != nil {
		return sendStoreError(c, err)
	}

	logger.Info("User created", "user_id", user.ID, "email", user.Email)
	return c.JSON(http.StatusCreated, user.ToMap())
}

// ShowUser returns one user by id.
func ShowUser(c echo.Context, a *server.App) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	user, err := queries.GetUserByID(a.DB, id)
	if err != nil {
		return sendStoreError(c, err)
	}
	return c.JSON(http.StatusOK, user.ToMap())
}

// UpdateUser updates a user's name, role and type. A validation failure
// aborts the whole update.
func UpdateUser(c echo.Context, a *server.App) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	user, err := queries.GetUserByID(a.DB, id)
	if err != nil {
		return sendStoreError(c, err)
	}

	user.Name = c.FormValue("name")
	user.Role = c.FormValue("role")
	if err := user.SetType(c.FormValue("type")); err != nil {
		return sendStoreError(c, err)
	}

	if err := queries.UpdateUser(a.DB, user); err != nil {
		return sendStoreError(c, err)
	}
	return c.JSON(http.StatusOK, statusResult{Updated: true, Message: "User " + user.Email + " was updated"})
}

// UpdateUserStatus toggles a user between active and inactive. A user may
// not deactivate themself; the check happens before the toggle is
// computed.
func UpdateUserStatus(c echo.Context, a *server.App) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if id == middleware.CurrentUser(c).ID {
		return c.JSON(http.StatusBadRequest, statusResult{Message: "You cannot deactivate your own account"})
	}

	status, err := queries.ToggleUserStatus(a.DB, id)
	if err != nil {
		return sendStoreError(c, err)
	}
	return c.JSON(http.StatusOK, statusResult{Updated: true, Status: status, Message: "User's status changed to: " + status})
}
