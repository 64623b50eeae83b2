package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davdmx/statuswatch/internal/server"
	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/queries"
	"github.com/davdmx/statuswatch/pkg/timeseries"
)

const dateLayout = "2006-01-02"

// Index is the dashboard landing payload: every service plus the last
// time each one reported Running.
func Index(c echo.Context, a *server.App) error {
	services, err := queries.ListServices(a.DB, queries.ServiceFilter{Status: queries.AnyStatus})
	if err != nil {
		return sendStoreError(c, err)
	}

	lastActive, err := queries.LastActiveByService(a.DB, 0)
	if err != nil {
		return sendStoreError(c, err)
	}

	serviceMaps := make([]map[string]interface{}, 0, len(services))
	for i := range services {
		serviceMaps = append(serviceMaps, services[i].ToMap())
	}

	lastOnline := make(map[string]string, len(lastActive))
	for appID, ts := range lastActive {
		lastOnline[strconv.FormatInt(appID, 10)] = ts.Format(time.RFC3339)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"services":         serviceMaps,
		"last_time_online": lastOnline,
	})
}

// ServiceDetail returns one service for the detail view.
func ServiceDetail(c echo.Context, a *server.App) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	service, err := queries.GetService(a.DB, queries.ServiceFilter{ID: id})
	if err != nil {
		return sendStoreError(c, err)
	}
	return c.JSON(http.StatusOK, service.ToMap())
}

// ServiceCallback returns the logs of one service over a date range, plus
// the chart series built from them. An invalid date is treated as not
// provided; with no dates at all the window defaults to today.
func ServiceCallback(c echo.Context, a *server.App) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	service, err := queries.GetService(a.DB, queries.ServiceFilter{ID: id})
	if err != nil {
		return sendStoreError(c, err)
	}

	start := parseDateParam(c, "log-start")
	end := parseDateParam(c, "log-end")
	if start.IsZero() && end.IsZero() {
		start = time.Now().UTC()
	}

	logs, err := queries.ListLogs(a.DB, queries.LogFilter{Start: start, End: end, AppID: id})
	if err != nil {
		return sendStoreError(c, err)
	}

	logMaps := make([]map[string]interface{}, 0, len(logs))
	entries := make([]timeseries.Entry, 0, len(logs))
	for i := range logs {
		logMaps = append(logMaps, logs[i].ToMap())
		entries = append(entries, timeseries.Entry{
			Time:      logs[i].StatusDate,
			Status:    logs[i].Status,
			OtherData: logs[i].OtherData,
		})
	}

	measurementName := ""
	if service.AppType == string(store.AppTypeTemperatureSensor) {
		measurementName = "Temperature"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"logs":   logMaps,
		"series": timeseries.Build(entries, measurementName),
	})
}

// parseDateParam reads an ISO-8601 calendar date from the form or the
// query string. Anything unparseable counts as not provided.
func parseDateParam(c echo.Context, name string) time.Time {
	raw := c.FormValue(name)
	if raw == "" {
		raw = c.QueryParam(name)
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return d
}
