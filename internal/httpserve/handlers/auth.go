package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/davdmx/statuswatch/internal/httpserve/middleware"
	"github.com/davdmx/statuswatch/internal/server"
	"github.com/davdmx/statuswatch/internal/store/queries"
	"github.com/davdmx/statuswatch/pkg/logger"
)

// Login authenticates a registered user and stores the user id in a new
// session.
func Login(c echo.Context, a *server.App) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := queries.GetUserByEmail(a.DB, email)
	if err != nil {
		logger.Debug("Login failed, user lookup", "email", email, "error", err)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Incorrect username or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Debug("Login failed, password mismatch", "email", email)
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Incorrect username or password"})
	}

	sess, err := session.Get("session", c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not get session")
	}

	sessionID := uuid.New().String()
	sess.Values = map[interface{}]interface{}{}
	sess.Values["authenticated"] = true
	sess.Values["userID"] = user.ID
	sess.Values["sessionID"] = sessionID
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not save session")
	}

	logger.Info("User logged in", "user_id", user.ID, "session_id", sessionID)
	return c.JSON(http.StatusOK, user.ToMap())
}

// Logout clears the current session, including the stored user id.
func Logout(c echo.Context, a *server.App) error {
	sess, err := session.Get("session", c)
	if err == nil {
		sess.Values = map[interface{}]interface{}{}
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			logger.Error("Failed to clear session", "error", err)
		}
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// CurrentUser returns the authenticated user's flat representation.
func CurrentUser(c echo.Context, a *server.App) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, user.ToMap())
}

// UpdateSelf handles the self-service role and password change. A password
// change requires the current password; a role-only change does not.
func UpdateSelf(c echo.Context, a *server.App) error {
	current := middleware.CurrentUser(c)
	role := c.FormValue("role")
	oldPassword := c.FormValue("old-password")
	newPassword := c.FormValue("new-password")

	user, err := queries.GetUserByID(a.DB, current.ID)
	if err != nil {
		return sendStoreError(c, err)
	}

	if oldPassword == "" {
		if user.Role == role {
			return c.JSON(http.StatusOK, map[string]string{"message": "Nothing to update"})
		}
		user.Role = role
		if err := queries.UpdateUser(a.DB, user); err != nil {
			return sendStoreError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Role updated"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Current password doesn't match"})
	}
	if newPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No new password was provided"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not hash password")
	}

	user.Role = role
	user.Password = string(hashed)
	if err := queries.UpdateUser(a.DB, user); err != nil {
		return sendStoreError(c, err)
	}

	logger.Info("User changed own password", "user_id", user.ID)
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}
