package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireToken is a middleware that checks for a valid ingest token in the
// request. It gates the log-append endpoints used by the polling process.
func RequireToken(configToken string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := validateToken(c, configToken); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func validateToken(c echo.Context, configToken string) error {
	if configToken == "" {
		// Ingestion is disabled until a token is configured
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	token := c.Request().Header.Get("Authorization")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	token = strings.Replace(token, "Bearer ", "", 1)

	if token != configToken {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	return nil
}
