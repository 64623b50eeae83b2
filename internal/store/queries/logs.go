package queries

import (
	"database/sql"
	"time"

	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/pkg/logger"
)

// Timestamps are persisted as UTC RFC 3339 text so that SQL comparison and
// MAX() order chronologically.
const timeLayout = time.RFC3339

// runningStatus is the log status counted as "service was up" by the
// last-active aggregation.
const runningStatus = "Running"

// LogFilter is a sparse set of optional filters for log reads. Start and
// End are calendar dates; the zero time means "not provided".
type LogFilter struct {
	Start   time.Time
	End     time.Time
	Name    string
	AppID   int64
	AppType string
}

// logWindow resolves the date filters to an inclusive timestamp window.
//
//   - only start: the single day anchored on start
//   - only end: the 24 hours ending at end 23:59:59
//   - end before start: caller error, silently corrected to the single
//     day anchored on start
//   - both, end >= start: [start 00:00:00, end 23:59:59]
//   - neither: no window (ok is false)
func logWindow(start, end time.Time) (from, to time.Time, ok bool) {
	dayStart := func(d time.Time) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	dayEnd := func(d time.Time) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
	}

	switch {
	case start.IsZero() && end.IsZero():
		return time.Time{}, time.Time{}, false
	case end.IsZero():
		return dayStart(start), dayEnd(start), true
	case start.IsZero():
		return dayStart(end), dayEnd(end), true
	case end.Before(start):
		return dayStart(start), dayEnd(start), true
	default:
		return dayStart(start), dayEnd(end), true
	}
}

// CreateLog appends a status observation for a service. Logs are immutable
// once created.
func CreateLog(db *sql.DB, l *store.ServiceLog) error {
	if err := l.Validate(); err != nil {
		return err
	}

	logger.Debug("Adding service log to the database", "app_id", l.AppID, "status", l.Status)
	return withTx(db, func(tx *sql.Tx) error {
		return insertLog(tx, l)
	})
}

// BulkCreateLogs appends all logs in a single transaction; any failure
// aborts the whole batch.
func BulkCreateLogs(db *sql.DB, logs []*store.ServiceLog) error {
	for _, l := range logs {
		if err := l.Validate(); err != nil {
			return err
		}
	}

	logger.Debug("Adding service logs to the database", "count", len(logs))
	return withTx(db, func(tx *sql.Tx) error {
		for _, l := range logs {
			if err := insertLog(tx, l); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertLog(tx *sql.Tx, l *store.ServiceLog) error {
	res, err := tx.Exec(
		"INSERT INTO service_log (status, status_date, other_data, app_id) VALUES (?, ?, ?, ?)",
		l.Status, l.StatusDate.UTC().Format(timeLayout), l.OtherData, l.AppID,
	)
	if err != nil {
		return translateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translateErr(err)
	}
	l.LogID = id
	return nil
}

// ListLogs returns logs matching the filter, joined with their owning
// service and ordered ascending by timestamp.
func ListLogs(db *sql.DB, f LogFilter) ([]store.ServiceLog, error) {
	query := `SELECT l.log_id, l.status, l.status_date, COALESCE(l.other_data, ''), l.app_id, s.name
		FROM service_log l
		JOIN service s ON s.app_id = l.app_id`
	var conds []string
	var args []interface{}

	if from, to, ok := logWindow(f.Start, f.End); ok {
		conds = append(conds, "l.status_date >= ?", "l.status_date <= ?")
		args = append(args, from.Format(timeLayout), to.Format(timeLayout))
	}
	if f.AppID != 0 {
		conds = append(conds, "s.app_id = ?")
		args = append(args, f.AppID)
	}
	if f.Name != "" {
		conds = append(conds, "LOWER(s.name) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.Name)
	}
	if f.AppType != "" {
		conds = append(conds, "s.app_type = ?")
		args = append(args, f.AppType)
	}

	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY l.status_date ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var logs []store.ServiceLog
	for rows.Next() {
		var l store.ServiceLog
		var rawDate string
		if err := rows.Scan(&l.LogID, &l.Status, &rawDate, &l.OtherData, &l.AppID, &l.ServiceName); err != nil {
			return nil, translateErr(err)
		}
		l.StatusDate, err = time.Parse(timeLayout, rawDate)
		if err != nil {
			return nil, translateErr(err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err)
	}
	return logs, nil
}

// LastActiveByService computes, for every service (or one when appID is
// non-zero), the most recent timestamp among its "Running" logs. Services
// that never reported Running are absent from the result.
func LastActiveByService(db *sql.DB, appID int64) (map[int64]time.Time, error) {
	query := "SELECT app_id, MAX(status_date) FROM service_log WHERE status = ?"
	args := []interface{}{runningStatus}
	if appID != 0 {
		query += " AND app_id = ?"
		args = append(args, appID)
	}
	query += " GROUP BY app_id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	lastActive := make(map[int64]time.Time)
	for rows.Next() {
		var id int64
		var rawDate string
		if err := rows.Scan(&id, &rawDate); err != nil {
			return nil, translateErr(err)
		}
		ts, err := time.Parse(timeLayout, rawDate)
		if err != nil {
			return nil, translateErr(err)
		}
		lastActive[id] = ts
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err)
	}
	return lastActive, nil
}
