package store

// Service is a monitored external endpoint: a web app, a sensor feed or a
// zabbix instance. The route field encodes the UI-interaction steps used
// by automated checks; the five other-data slots hold type-specific
// metadata the checker may need.
type Service struct {
	AppID       int64  `json:"app_id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required"`
	Route       string `json:"route" validate:"required,svcroute"`
	User        string `json:"user"`
	Password    string `json:"password"`
	Status      string `json:"status" validate:"oneof=active inactive"`
	AppType     string `json:"app_type" validate:"oneof=temperature_sensor water_sensor web zabbix"`
	OtherData1  string `json:"other_data1"`
	OtherData2  string `json:"other_data2"`
	OtherData3  string `json:"other_data3"`
	OtherData4  string `json:"other_data4"`
	OtherData5  string `json:"other_data5"`
}

// NewService builds a Service with status "active". The route is validated
// and stored with all whitespace stripped; otherData fills the five
// other-data slots in order.
func NewService(name, description, url, route string, appType AppType, user, password string, otherData ...string) (*Service, error) {
	normalized, err := NormalizeRoute(route)
	if err != nil {
		return nil, err
	}
	s := &Service{
		Name:        name,
		Description: description,
		URL:         url,
		Route:       normalized,
		User:        user,
		Password:    password,
		Status:      "active",
		AppType:     string(appType),
	}
	slots := []*string{&s.OtherData1, &s.OtherData2, &s.OtherData3, &s.OtherData4, &s.OtherData5}
	for i, data := range otherData {
		if i >= len(slots) {
			break
		}
		*slots[i] = data
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate re-runs every field rule, including the route grammar.
func (s *Service) Validate() error {
	return translateValidation(validate.Struct(s))
}

// SetRoute replaces the route, failing the same way as construction would.
// The stored value has all whitespace stripped.
func (s *Service) SetRoute(route string) error {
	normalized, err := NormalizeRoute(route)
	if err != nil {
		return err
	}
	s.Route = normalized
	return nil
}

// SetAppType replaces the service type.
func (s *Service) SetAppType(appType string) error {
	old := s.AppType
	s.AppType = appType
	if err := s.Validate(); err != nil {
		s.AppType = old
		return err
	}
	return nil
}

// SetStatus replaces the availability status (active or inactive).
func (s *Service) SetStatus(status string) error {
	old := s.Status
	s.Status = status
	if err := s.Validate(); err != nil {
		s.Status = old
		return err
	}
	return nil
}

// ToMap returns the flat field-to-value representation handed to the
// serialization layer.
func (s *Service) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"app_id":      s.AppID,
		"name":        s.Name,
		"description": s.Description,
		"url":         s.URL,
		"route":       s.Route,
		"user":        s.User,
		"password":    s.Password,
		"status":      s.Status,
		"app_type":    s.AppType,
	}
}
