package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davdmx/statuswatch/internal/store/storeerrors"
)

// sendStoreError maps a store failure kind to its HTTP status. Every
// failure reaches the caller as a JSON body with a readable message.
func sendStoreError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case storeerrors.IsNotFound(err):
		status = http.StatusNotFound
	case storeerrors.IsValidation(err):
		status = http.StatusBadRequest
	case storeerrors.IsConflict(err):
		status = http.StatusConflict
	case storeerrors.IsUnavailable(err):
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
