package queries

import (
	"database/sql"

	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/storeerrors"
	"github.com/davdmx/statuswatch/pkg/logger"
)

// AnyStatus is the explicit sentinel a caller passes to search across all
// statuses. An empty status filter means "not provided" and defaults to
// "active".
const AnyStatus = "*"

const serviceColumns = "app_id, name, COALESCE(description, ''), url, route, " +
	"COALESCE(user, ''), COALESCE(password, ''), status, app_type, " +
	"COALESCE(other_data1, ''), COALESCE(other_data2, ''), COALESCE(other_data3, ''), " +
	"COALESCE(other_data4, ''), COALESCE(other_data5, '')"

// ServiceFilter is a sparse set of optional filters. Present filters
// compose with AND; name and url match as case-insensitive substrings,
// id, status and app type match exactly.
type ServiceFilter struct {
	ID      int64
	Name    string
	URL     string
	Status  string
	AppType string
}

func scanService(scan func(dest ...interface{}) error) (*store.Service, error) {
	var s store.Service
	err := scan(
		&s.AppID, &s.Name, &s.Description, &s.URL, &s.Route, &s.User, &s.Password,
		&s.Status, &s.AppType,
		&s.OtherData1, &s.OtherData2, &s.OtherData3, &s.OtherData4, &s.OtherData5,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &s, nil
}

// serviceWhere builds the WHERE clause for a service filter. includeID
// controls whether an id filter participates (the single-result lookup
// short-circuits on id instead).
func (f ServiceFilter) serviceWhere(includeID bool) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if includeID && f.ID != 0 {
		conds = append(conds, "app_id = ?")
		args = append(args, f.ID)
	}
	if f.Name != "" {
		conds = append(conds, "LOWER(name) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.Name)
	}
	if f.URL != "" {
		conds = append(conds, "LOWER(url) LIKE '%' || LOWER(?) || '%'")
		args = append(args, f.URL)
	}
	switch f.Status {
	case AnyStatus:
		// no status condition
	case "":
		conds = append(conds, "status = ?")
		args = append(args, "active")
	default:
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.AppType != "" {
		conds = append(conds, "app_type = ?")
		args = append(args, f.AppType)
	}

	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

// CreateService persists a new service.
func CreateService(db *sql.DB, s *store.Service) error {
	if err := s.Validate(); err != nil {
		return err
	}

	logger.Debug("Adding service to the database", "name", s.Name)
	return withTx(db, func(tx *sql.Tx) error {
		return insertService(tx, s)
	})
}

// BulkCreateServices persists all services in a single transaction; any
// failure aborts the whole batch.
func BulkCreateServices(db *sql.DB, services []*store.Service) error {
	for _, s := range services {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	logger.Debug("Adding services to the database", "count", len(services))
	return withTx(db, func(tx *sql.Tx) error {
		for _, s := range services {
			if err := insertService(tx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertService(tx *sql.Tx, s *store.Service) error {
	res, err := tx.Exec(
		`INSERT INTO service (name, description, url, route, user, password, status, app_type,
			other_data1, other_data2, other_data3, other_data4, other_data5)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.Description, s.URL, s.Route, s.User, s.Password, s.Status, s.AppType,
		s.OtherData1, s.OtherData2, s.OtherData3, s.OtherData4, s.OtherData5,
	)
	if err != nil {
		return translateErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return translateErr(err)
	}
	s.AppID = id
	return nil
}

// GetService returns the single service matching the filter. A supplied id
// short-circuits the lookup: the record is fetched by primary key and the
// other filters are ignored.
func GetService(db *sql.DB, f ServiceFilter) (*store.Service, error) {
	if f.ID != 0 {
		row := db.QueryRow("SELECT "+serviceColumns+" FROM service WHERE app_id = ?", f.ID)
		return scanService(row.Scan)
	}

	where, args := f.serviceWhere(false)
	row := db.QueryRow("SELECT "+serviceColumns+" FROM service"+where+" LIMIT 1", args...)
	return scanService(row.Scan)
}

// ListServices returns every service matching the filter.
func ListServices(db *sql.DB, f ServiceFilter) ([]store.Service, error) {
	where, args := f.serviceWhere(true)
	rows, err := db.Query("SELECT "+serviceColumns+" FROM service"+where+" ORDER BY app_id", args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	return collectServices(rows)
}

// ListServicesByType returns every service ordered by its app type.
func ListServicesByType(db *sql.DB) ([]store.Service, error) {
	rows, err := db.Query("SELECT " + serviceColumns + " FROM service ORDER BY app_type, app_id")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	return collectServices(rows)
}

func collectServices(rows *sql.Rows) ([]store.Service, error) {
	var services []store.Service
	for rows.Next() {
		s, err := scanService(rows.Scan)
		if err != nil {
			return nil, err
		}
		services = append(services, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err)
	}
	return services, nil
}

// UpdateService copies every mutable field of s onto the stored record
// with the same app id. A validation failure aborts the whole update; none
// of the changed fields are persisted.
func UpdateService(db *sql.DB, s *store.Service) error {
	if s.AppID == 0 {
		return storeerrors.NewValidation("app_id", "no service was passed")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	logger.Debug("Updating service", "app_id", s.AppID, "name", s.Name)
	return withTx(db, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE service SET name = ?, description = ?, url = ?, route = ?, user = ?, password = ?,
				status = ?, app_type = ?,
				other_data1 = ?, other_data2 = ?, other_data3 = ?, other_data4 = ?, other_data5 = ?
			 WHERE app_id = ?`,
			s.Name, s.Description, s.URL, s.Route, s.User, s.Password, s.Status, s.AppType,
			s.OtherData1, s.OtherData2, s.OtherData3, s.OtherData4, s.OtherData5,
			s.AppID,
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

// UpdateServiceStatus sets the status of the service with the given id.
func UpdateServiceStatus(db *sql.DB, appID int64, status string) error {
	if status != "active" && status != "inactive" {
		return storeerrors.NewValidation("status", "the status must be one of the list: active, inactive")
	}

	return withTx(db, func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE service SET status = ? WHERE app_id = ?", status, appID)
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
		logger.Info("Service status changed", "app_id", appID, "status", status)
		return nil
	})
}

// ToggleServiceStatus flips the service's status between active and
// inactive and returns the new value.
func ToggleServiceStatus(db *sql.DB, appID int64) (string, error) {
	s, err := GetService(db, ServiceFilter{ID: appID})
	if err != nil {
		return "", err
	}

	next, err := flipStatus(s.Status)
	if err != nil {
		return "", err
	}
	if err := UpdateServiceStatus(db, appID, next); err != nil {
		return "", err
	}
	return next, nil
}
