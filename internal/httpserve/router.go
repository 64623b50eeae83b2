package httpserve

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/davdmx/statuswatch/internal/httpserve/handlers"
	"github.com/davdmx/statuswatch/internal/httpserve/middleware"
	"github.com/davdmx/statuswatch/internal/server"
)

// appHandler is the signature shared by every handler in this package.
type appHandler func(c echo.Context, a *server.App) error

// RegisterRoutes wires every endpoint of the dashboard onto e.
func RegisterRoutes(e *echo.Echo, a *server.App) *echo.Echo {
	e.Use(echomw.Recover())
	e.Use(middleware.SecureRoutes())
	e.Use(session.Middleware(a.SessionStore))
	e.Use(middleware.LoadUser(a))

	wrap := func(h appHandler) echo.HandlerFunc {
		return func(c echo.Context) error {
			return h(c, a)
		}
	}

	// Public views
	e.GET("/", wrap(handlers.Index))

	// Authentication and self-service
	auth := e.Group("/auth")
	auth.POST("/login", wrap(handlers.Login))
	auth.GET("/logout", wrap(handlers.Logout))
	auth.GET("/user", wrap(handlers.CurrentUser), middleware.RequireLogin)
	auth.POST("/user/update", wrap(handlers.UpdateSelf), middleware.RequireLogin)

	// Authenticated views
	e.GET("/service/:id", wrap(handlers.ServiceDetail), middleware.RequireLogin)
	e.GET("/service/:id/callback", wrap(handlers.ServiceCallback), middleware.RequireLogin)
	e.POST("/service/:id/callback", wrap(handlers.ServiceCallback), middleware.RequireLogin)

	// Administration
	admin := e.Group("/admin", middleware.RequireAdmin)
	admin.GET("/users", wrap(handlers.ListUsers))
	admin.POST("/user/add", wrap(handlers.AddUser))
	admin.GET("/user/:id", wrap(handlers.ShowUser))
	admin.POST("/user/:id/update", wrap(handlers.UpdateUser))
	admin.POST("/user/:id/update_status", wrap(handlers.UpdateUserStatus))
	admin.GET("/services", wrap(handlers.ListAllServices))
	admin.POST("/service/add", wrap(handlers.AddService))
	admin.GET("/service/:id", wrap(handlers.ShowService))
	admin.POST("/service/:id/update", wrap(handlers.UpdateService))
	admin.POST("/service/:id/update_status", wrap(handlers.UpdateServiceStatus))

	// Log ingestion, used by the polling process
	ingest := e.Group("/ingest", middleware.RequireToken(a.Config.Server.IngestToken))
	ingest.POST("/log", wrap(handlers.AppendLog))
	ingest.POST("/logs", wrap(handlers.AppendLogs))

	return e
}
