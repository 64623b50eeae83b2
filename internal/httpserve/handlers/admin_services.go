package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davdmx/statuswatch/internal/server"
	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/queries"
	"github.com/davdmx/statuswatch/pkg/logger"
)

// ListAllServices returns every registered service regardless of status.
func ListAllServices(c echo.Context, a *server.App) error {
	services, err := queries.ListServices(a.DB, queries.ServiceFilter{Status: queries.AnyStatus})
	if err != nil {
		return sendStoreError(c, err)
	}

	result := make([]map[string]interface{}, 0, len(services))
	for i := range services {
		result = append(result, services[i].ToMap())
	}
	return c.JSON(http.StatusOK, result)
}

// AddService registers a new monitored service.
func AddService(c echo.Context, a *server.App) error {
	name := c.FormValue("name")
	description := c.FormValue("description")
	url := c.FormValue("url")
	route := c.FormValue("route")
	user := c.FormValue("user")
	password := c.FormValue("password")
	rawType := c.FormValue("type")

	switch {
	case name == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name is required."})
	case url == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "URL is required."})
	case route == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Route is required."})
	case rawType == "":
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "App type is required."})
	}

	appType, err := store.ParseAppType(rawType)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	service, err := store.NewService(
		name, description, url, route, appType, user, password,
		c.FormValue("other_data1"),
		c.FormValue("other_data2"),
		c.FormValue("other_data3"),
		c.FormValue("other_data4"),
		c.FormValue("other_data5"),
	)
	if err != nil {
		return sendStoreError(c, err)
	}

	if err := queries.CreateService(a.DB, service); err != nil {
		return sendStoreError(c, err)
	}

	logger.Info("Service created", "app_id", service.AppID, "name", service.Name)
	return c.JSON(http.StatusCreated, service.ToMap())
}

// ShowService returns one service by id, regardless of status.
func ShowService(c echo.Context, a *server.App) error {
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

// UpdateService replaces a service's mutable fields. A single invalid
// field, including the route, aborts the whole update.
func UpdateService(c echo.Context, a *server.App) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	service, err := queries.GetService(a.DB, queries.ServiceFilter{ID: id})
	if err != nil {
		return sendStoreError(c, err)
	}

	service.Name = c.FormValue("name")
	service.Description = c.FormValue("description")
	service.URL = c.FormValue("url")
	service.User = c.FormValue("user")
	service.Password = c.FormValue("password")
	if err := service.SetRoute(c.FormValue("route")); err != nil {
		return sendStoreError(c, err)
	}

	appType, err := store.ParseAppType(c.FormValue("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := service.SetAppType(string(appType)); err != nil {
		return sendStoreError(c, err)
	}

	service.OtherData1 = c.FormValue("other_data1")
	service.OtherData2 = c.FormValue("other_data2")
	service.OtherData3 = c.FormValue("other_data3")
	service.OtherData4 = c.FormValue("other_data4")
	service.OtherData5 = c.FormValue("other_data5")

	if err := queries.UpdateService(a.DB, service); err != nil {
		return sendStoreError(c, err)
	}
	return c.JSON(http.StatusOK, statusResult{Updated: true, Message: "Service was updated"})
}

// UpdateServiceStatus toggles a service between active and inactive.
func UpdateServiceStatus(c echo.Context, a *server.App) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	status, err := queries.ToggleServiceStatus(a.DB, id)
	if err != nil {
		return sendStoreError(c, err)
	}
	return c.JSON(http.StatusOK, statusResult{Updated: true, Status: status, Message: "Service's status changed to: " + status})
}
