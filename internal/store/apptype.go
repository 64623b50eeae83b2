package store

import (
	"fmt"
	"strings"
)

// AppType is the closed set of recognized service categories. It is stored
// on Service as its underlying string value, so storage and comparison stay
// string-based.
type AppType string

const (
	AppTypeTemperatureSensor AppType = "temperature_sensor"
	AppTypeWaterSensor       AppType = "water_sensor"
	AppTypeWeb               AppType = "web"
	AppTypeZabbix            AppType = "zabbix"
)

// appTypes lists every member in declaration order.
var appTypes = []AppType{
	AppTypeTemperatureSensor,
	AppTypeWaterSensor,
	AppTypeWeb,
	AppTypeZabbix,
}

// AppTypeValues returns the string values of every recognized type.
func AppTypeValues() []string {
	values := make([]string, 0, len(appTypes))
	for _, t := range appTypes {
		values = append(values, string(t))
	}
	return values
}

// Valid reports whether t is a member of the enumeration.
func (t AppType) Valid() bool {
	for _, known := range appTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t AppType) String() string {
	return string(t)
}

// ParseAppType resolves a raw string to an AppType. An empty input is an
// explicit "use default" signal from the caller and resolves to AppTypeWeb.
// An unrecognized non-empty input is an error, not a silent default.
func ParseAppType(raw string) (AppType, error) {
	if raw == "" {
		return AppTypeWeb, nil
	}
	t := AppType(raw)
	if t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("unrecognized app type %q, must be one of: %s", raw, strings.Join(AppTypeValues(), ", "))
}
