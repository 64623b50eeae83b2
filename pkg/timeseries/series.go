// Package timeseries turns status observations into chart-ready series.
// The rendering itself happens client-side; this only shapes the data.
package timeseries

import (
	"strings"
	"time"
)

// Entry is one observation: a timestamp, the reported status and the
// optional free-text payload ("<label>-<measurement>" for sensor types).
type Entry struct {
	Time      time.Time
	Status    string
	OtherData string
}

// Point is a single chart point.
type Point struct {
	Time  time.Time `json:"time"`
	Value string    `json:"value"`
}

// Series is a named sequence of points, ordered as the entries were.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Build produces the status series and, when measurementName is non-empty,
// a second series with the measurement extracted from each entry's
// payload. Entries whose payload carries no measurement are skipped in the
// measurement series only.
func Build(entries []Entry, measurementName string) []Series {
	status := Series{Name: "Status", Points: make([]Point, 0, len(entries))}
	for _, e := range entries {
		status.Points = append(status.Points, Point{Time: e.Time, Value: e.Status})
	}

	series := []Series{status}
	if measurementName == "" {
		return series
	}

	measurement := Series{Name: measurementName}
	for _, e := range entries {
		if value, ok := splitMeasurement(e.OtherData); ok {
			measurement.Points = append(measurement.Points, Point{Time: e.Time, Value: value})
		}
	}
	return append(series, measurement)
}

// splitMeasurement extracts the measurement from a "<label>-<measurement>"
// payload.
func splitMeasurement(raw string) (string, bool) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
