package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceLog(t *testing.T) {
	when := time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC)
	l, err := NewServiceLog("Running", when, 7, "Temperature-21.5")
	require.NoError(t, err)
	assert.Equal(t, int64(7), l.AppID)
}

func TestNewServiceLog_RequiresStatusAndService(t *testing.T) {
	when := time.Now().UTC()

	_, err := NewServiceLog("", when, 7, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a status is required")

	_, err = NewServiceLog("Running", when, 0, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must reference a service")
}

func TestServiceLogToMap(t *testing.T) {
	when := time.Date(2024, 1, 10, 12, 30, 0, 0, time.UTC)
	l, err := NewServiceLog("Running", when, 7, "Temperature-21.5")
	require.NoError(t, err)
	l.ServiceName = "Greenhouse"

	m := l.ToMap()
	assert.Equal(t, "2024-01-10T12:30:00Z", m["status_date"])
	assert.Equal(t, "Greenhouse", m["service_name"])
	assert.NotContains(t, m, "app_id")
}
