package store

import "time"

// ServiceLog is a timestamped status observation for a service, appended
// by the polling process. Logs are immutable once created.
type ServiceLog struct {
	LogID      int64     `json:"log_id"`
	Status     string    `json:"status" validate:"required"`
	StatusDate time.Time `json:"status_date" validate:"required"`
	OtherData  string    `json:"other_data"`
	AppID      int64     `json:"app_id" validate:"required"`

	// ServiceName carries the owning service's name when the log was read
	// through a join; serialization exposes it instead of the id.
	ServiceName string `json:"service_name"`
}

// NewServiceLog builds a log entry for the service identified by appID.
// For sensor services otherData may encode "<label>-<measurement>".
func NewServiceLog(status string, statusDate time.Time, appID int64, otherData string) (*ServiceLog, error) {
	l := &ServiceLog{
		Status:     status,
		StatusDate: statusDate,
		OtherData:  otherData,
		AppID:      appID,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks the required fields.
func (l *ServiceLog) Validate() error {
	return translateValidation(validate.Struct(l))
}

// ToMap returns the flat field-to-value representation handed to the
// serialization layer: the owning service's name rather than its id, and
// the timestamp as an ISO string.
func (l *ServiceLog) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"status":       l.Status,
		"status_date":  l.StatusDate.Format(time.RFC3339),
		"other_data":   l.OtherData,
		"service_name": l.ServiceName,
	}
}
