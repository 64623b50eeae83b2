package middleware

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/davdmx/statuswatch/internal/server"
	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/queries"
)

// UserContextKey is where LoadUser stores the authenticated *store.User on
// the request context.
const UserContextKey = "currentUser"

// LoadUser resolves the session's user id to a user record before every
// request. Anonymous requests pass through with no user set.
func LoadUser(a *server.App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Get("session", c)
			if err != nil {
				return next(c)
			}

			userID, ok := sess.Values["userID"].(int64)
			if !ok || userID == 0 {
				return next(c)
			}

			user, err := queries.GetUserByID(a.DB, userID)
			if err != nil {
				return next(c)
			}
			c.Set(UserContextKey, user)

			return next(c)
		}
	}
}

// CurrentUser returns the user LoadUser resolved for this request, or nil.
func CurrentUser(c echo.Context) *store.User {
	user, _ := c.Get(UserContextKey).(*store.User)
	return user
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.Redirect(http.StatusSeeOther, "/auth/login")
		}
		return next(c)
	}
}

// RequireAdmin redirects anonymous requests to the login page and rejects
// authenticated non-admin users.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Redirect(http.StatusSeeOther, "/auth/login")
		}
		if !user.IsAdmin() {
			return echo.NewHTTPError(http.StatusUnauthorized, "You are not authorized to visit this page")
		}
		return next(c)
	}
}
