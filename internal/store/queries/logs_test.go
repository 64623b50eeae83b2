package queries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davdmx/statuswatch/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestLogWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		wantFrom   time.Time
		wantTo     time.Time
		wantOK     bool
	}{
		{
			name: "neither date means no window",
		},
		{
			name:     "only start anchors its own day",
			start:    day(2024, 1, 10),
			wantFrom: at(2024, 1, 10, 0, 0),
			wantTo:   time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "only end anchors its own day",
			end:      day(2024, 1, 10),
			wantFrom: at(2024, 1, 10, 0, 0),
			wantTo:   time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "end before start falls back to start's day",
			start:    day(2024, 1, 10),
			end:      day(2024, 1, 5),
			wantFrom: at(2024, 1, 10, 0, 0),
			wantTo:   time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC),
			wantOK:   true,
		},
		{
			name:     "both dates span inclusively",
			start:    day(2024, 1, 10),
			end:      day(2024, 1, 12),
			wantFrom: at(2024, 1, 10, 0, 0),
			wantTo:   time.Date(2024, 1, 12, 23, 59, 59, 0, time.UTC),
			wantOK:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, ok := logWindow(tt.start, tt.end)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantFrom, from)
				assert.Equal(t, tt.wantTo, to)
			}
		})
	}
}

func TestCreateLogAndList(t *testing.T) {
	db := newTestDB(t)
	s := seedService(t, db, "Greenhouse", "http://sensor.local", store.AppTypeTemperatureSensor)

	seedLog(t, db, s.AppID, "Running", at(2024, 1, 10, 9, 0), "Temperature-21.5")
	seedLog(t, db, s.AppID, "Stopped", at(2024, 1, 10, 8, 0), "")

	logs, err := ListLogs(db, LogFilter{AppID: s.AppID})
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Ascending by timestamp regardless of insertion order.
	assert.Equal(t, "Stopped", logs[0].Status)
	assert.Equal(t, "Running", logs[1].Status)
	assert.Equal(t, at(2024, 1, 10, 9, 0), logs[1].StatusDate)
	assert.Equal(t, "Greenhouse", logs[1].ServiceName)
}

func TestCreateLog_UnknownServiceRejected(t *testing.T) {
	db := newTestDB(t)

	l, err := store.NewServiceLog("Running", at(2024, 1, 10, 9, 0), 99, "")
	require.NoError(t, err)
	require.Error(t, CreateLog(db, l))
}

func TestBulkCreateLogs(t *testing.T) {
	db := newTestDB(t)
	s := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)

	var logs []*store.ServiceLog
	for hour := 8; hour < 12; hour++ {
		l, err := store.NewServiceLog("Running", at(2024, 1, 10, hour, 0), s.AppID, "")
		require.NoError(t, err)
		logs = append(logs, l)
	}
	require.NoError(t, BulkCreateLogs(db, logs))

	stored, err := ListLogs(db, LogFilter{AppID: s.AppID})
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}

func TestListLogs_DateWindow(t *testing.T) {
	db := newTestDB(t)
	s := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)

	seedLog(t, db, s.AppID, "Running", at(2024, 1, 9, 23, 30), "")
	seedLog(t, db, s.AppID, "Running", at(2024, 1, 10, 0, 30), "")
	seedLog(t, db, s.AppID, "Running", at(2024, 1, 10, 23, 30), "")
	seedLog(t, db, s.AppID, "Running", at(2024, 1, 11, 0, 30), "")

	// A lone start date covers exactly that day.
	logs, err := ListLogs(db, LogFilter{Start: day(2024, 1, 10)})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, at(2024, 1, 10, 0, 30), logs[0].StatusDate)
	assert.Equal(t, at(2024, 1, 10, 23, 30), logs[1].StatusDate)

	// An inverted range falls back to the start day.
	logs, err = ListLogs(db, LogFilter{Start: day(2024, 1, 10), End: day(2024, 1, 5)})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	// A proper range spans both days inclusively.
	logs, err = ListLogs(db, LogFilter{Start: day(2024, 1, 10), End: day(2024, 1, 11)})
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestListLogs_FiltersByServiceFields(t *testing.T) {
	db := newTestDB(t)
	portal := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)
	sensor := seedService(t, db, "Greenhouse", "http://sensor.local", store.AppTypeTemperatureSensor)

	seedLog(t, db, portal.AppID, "Running", at(2024, 1, 10, 9, 0), "")
	seedLog(t, db, sensor.AppID, "Running", at(2024, 1, 10, 9, 0), "Temperature-20.1")

	logs, err := ListLogs(db, LogFilter{AppType: "temperature_sensor"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Greenhouse", logs[0].ServiceName)

	logs, err = ListLogs(db, LogFilter{Name: "port"})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Portal", logs[0].ServiceName)
}

func TestLastActiveByService(t *testing.T) {
	db := newTestDB(t)
	portal := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)
	sensor := seedService(t, db, "Greenhouse", "http://sensor.local", store.AppTypeTemperatureSensor)
	silent := seedService(t, db, "Legacy", "http://legacy.local", store.AppTypeWeb)

	seedLog(t, db, portal.AppID, "Running", at(2024, 1, 10, 9, 0), "")
	seedLog(t, db, portal.AppID, "Running", at(2024, 1, 10, 11, 0), "")
	seedLog(t, db, portal.AppID, "Stopped", at(2024, 1, 10, 12, 0), "")
	seedLog(t, db, sensor.AppID, "Running", at(2024, 1, 9, 7, 0), "")
	seedLog(t, db, silent.AppID, "Stopped", at(2024, 1, 10, 9, 0), "")

	lastActive, err := LastActiveByService(db, 0)
	require.NoError(t, err)
	require.Len(t, lastActive, 2)

	// The later Stopped entry does not count; only Running observations do.
	assert.Equal(t, at(2024, 1, 10, 11, 0), lastActive[portal.AppID])
	assert.Equal(t, at(2024, 1, 9, 7, 0), lastActive[sensor.AppID])
	assert.NotContains(t, lastActive, silent.AppID)
}

func TestLastActiveByService_SingleService(t *testing.T) {
	db := newTestDB(t)
	portal := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)
	sensor := seedService(t, db, "Greenhouse", "http://sensor.local", store.AppTypeTemperatureSensor)

	seedLog(t, db, portal.AppID, "Running", at(2024, 1, 10, 9, 0), "")
	seedLog(t, db, sensor.AppID, "Running", at(2024, 1, 10, 9, 0), "")

	lastActive, err := LastActiveByService(db, portal.AppID)
	require.NoError(t, err)
	require.Len(t, lastActive, 1)
	assert.Contains(t, lastActive, portal.AppID)
}
