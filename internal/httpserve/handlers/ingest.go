package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davdmx/statuswatch/internal/server"
	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/queries"
	"github.com/davdmx/statuswatch/pkg/logger"
)

// logPayload is what the polling process posts for each observation. An
// omitted status date means "now".
type logPayload struct {
	AppID      int64  `json:"app_id"`
	Status     string `json:"status"`
	StatusDate string `json:"status_date"`
	OtherData  string `json:"other_data"`
}

func (p logPayload) toLog() (*store.ServiceLog, error) {
	statusDate := time.Now().UTC()
	if p.StatusDate != "" {
		parsed, err := time.Parse(time.RFC3339, p.StatusDate)
		if err == nil {
			statusDate = parsed
		}
	}
	return store.NewServiceLog(p.Status, statusDate, p.AppID, p.OtherData)
}

// AppendLog appends one status observation for a service.
func AppendLog(c echo.Context, a *server.App) error {
	var payload logPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid log payload")
	}

	entry, err := payload.toLog()
	if err != nil {
		return sendStoreError(c, err)
	}
	if err := queries.CreateLog(a.DB, entry); err != nil {
		return sendStoreError(c, err)
	}

	logger.Debug("Log appended", "log_id", entry.LogID, "app_id", entry.AppID)
	return c.JSON(http.StatusCreated, entry.ToMap())
}

// AppendLogs appends a batch of observations in a single transaction; any
// failure drops the whole batch.
func AppendLogs(c echo.Context, a *server.App) error {
	var payloads []logPayload
	if err := c.Bind(&payloads); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid log payload")
	}

	entries := make([]*store.ServiceLog, 0, len(payloads))
	for _, p := range payloads {
		entry, err := p.toLog()
		if err != nil {
			return sendStoreError(c, err)
		}
		entries = append(entries, entry)
	}

	if err := queries.BulkCreateLogs(a.DB, entries); err != nil {
		return sendStoreError(c, err)
	}

	logger.Info("Log batch appended", "count", len(entries))
	return c.JSON(http.StatusCreated, map[string]int{"created": len(entries)})
}
