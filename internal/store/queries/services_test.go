package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/storeerrors"
)

func TestCreateServiceAndGet(t *testing.T) {
	db := newTestDB(t)

	s := seedService(t, db, "Greenhouse", "http://sensor.local", store.AppTypeTemperatureSensor)
	require.NotZero(t, s.AppID)

	stored, err := GetService(db, ServiceFilter{ID: s.AppID})
	require.NoError(t, err)
	assert.Equal(t, "Greenhouse", stored.Name)
	assert.Equal(t, "temperature_sensor", stored.AppType)
}

func TestGetService_IDShortCircuitsOtherFilters(t *testing.T) {
	db := newTestDB(t)
	s := seedService(t, db, "Greenhouse", "http://sensor.local", store.AppTypeTemperatureSensor)

	// The name filter does not match the record; the id still wins.
	stored, err := GetService(db, ServiceFilter{ID: s.AppID, Name: "does-not-match"})
	require.NoError(t, err)
	assert.Equal(t, s.AppID, stored.AppID)
}

func TestGetService_ByNameSubstring(t *testing.T) {
	db := newTestDB(t)
	seedService(t, db, "Customer Portal", "http://portal.local", store.AppTypeWeb)

	stored, err := GetService(db, ServiceFilter{Name: "PORT"})
	require.NoError(t, err)
	assert.Equal(t, "Customer Portal", stored.Name)
}

func TestListServices_DefaultsToActive(t *testing.T) {
	db := newTestDB(t)
	active := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)
	retired := seedService(t, db, "Legacy", "http://legacy.local", store.AppTypeWeb)
	require.NoError(t, UpdateServiceStatus(db, retired.AppID, "inactive"))

	services, err := ListServices(db, ServiceFilter{})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, active.AppID, services[0].AppID)

	all, err := ListServices(db, ServiceFilter{Status: AnyStatus})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListServices_ComposedFilters(t *testing.T) {
	db := newTestDB(t)
	seedService(t, db, "Greenhouse North", "http://north.local", store.AppTypeTemperatureSensor)
	seedService(t, db, "Greenhouse South", "http://south.local", store.AppTypeWaterSensor)
	seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)

	services, err := ListServices(db, ServiceFilter{Name: "greenhouse", AppType: "water_sensor"})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Greenhouse South", services[0].Name)
}

func TestListServicesByType(t *testing.T) {
	db := newTestDB(t)
	seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)
	seedService(t, db, "Greenhouse", "http://sensor.local", store.AppTypeTemperatureSensor)

	services, err := ListServicesByType(db)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "temperature_sensor", services[0].AppType)
	assert.Equal(t, "web", services[1].AppType)
}

func TestBulkCreateServices_FailureAbortsBatch(t *testing.T) {
	db := newTestDB(t)

	first, err := store.NewService("One", "", "http://one.local", "obtain:div:id:x", store.AppTypeWeb, "", "")
	require.NoError(t, err)
	second, err := store.NewService("Two", "", "http://two.local", "obtain:div:id:x", store.AppTypeWeb, "", "")
	require.NoError(t, err)
	second.Route = "broken"

	err = BulkCreateServices(db, []*store.Service{first, second})
	require.Error(t, err)

	services, err := ListServices(db, ServiceFilter{Status: AnyStatus})
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestUpdateService(t *testing.T) {
	db := newTestDB(t)
	s := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)

	s.Description = "customer-facing portal"
	s.OtherData1 = "eu-west"
	require.NoError(t, UpdateService(db, s))

	stored, err := GetService(db, ServiceFilter{ID: s.AppID})
	require.NoError(t, err)
	assert.Equal(t, "customer-facing portal", stored.Description)
	assert.Equal(t, "eu-west", stored.OtherData1)
}

func TestUpdateService_InvalidRouteAbortsWholeUpdate(t *testing.T) {
	db := newTestDB(t)
	s := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)

	s.Name = "Renamed"
	s.Route = "press:input:id:x"
	err := UpdateService(db, s)
	require.Error(t, err)
	assert.True(t, storeerrors.IsValidation(err))

	stored, err := GetService(db, ServiceFilter{ID: s.AppID})
	require.NoError(t, err)
	assert.Equal(t, "Portal", stored.Name)
	assert.Equal(t, "obtain:div:id:status", stored.Route)
}

func TestToggleServiceStatus(t *testing.T) {
	db := newTestDB(t)
	s := seedService(t, db, "Portal", "http://portal.local", store.AppTypeWeb)

	status, err := ToggleServiceStatus(db, s.AppID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", status)

	status, err = ToggleServiceStatus(db, s.AppID)
	require.NoError(t, err)
	assert.Equal(t, "active", status)
}

func TestToggleServiceStatus_UnknownService(t *testing.T) {
	db := newTestDB(t)

	_, err := ToggleServiceStatus(db, 99)
	assert.True(t, storeerrors.IsNotFound(err))
}
