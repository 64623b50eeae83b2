package server

import (
	"database/sql"
	"time"

	"github.com/gorilla/sessions"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"

	"github.com/davdmx/statuswatch/internal/config"
	"github.com/davdmx/statuswatch/internal/store"
	"github.com/davdmx/statuswatch/internal/store/queries"
	"github.com/davdmx/statuswatch/internal/store/storeerrors"
	"github.com/davdmx/statuswatch/pkg/logger"
)

// App aggregates everything a request handler needs: the configuration,
// the database handle and the cookie session store.
type App struct {
	Config       *config.Config
	DB           *sql.DB
	SessionStore *sessions.CookieStore
	StartTime    time.Time
}

// New opens the database, bootstraps the schema, seeds the first admin
// account when configured, and builds the session store.
func New(cfg *config.Config) (*App, error) {
	db, err := openDB(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:       cfg,
		DB:           db,
		SessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
		StartTime:    time.Now(),
	}

	if err := a.seedAdmin(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close database", "error", closeErr)
		}
		return nil, err
	}

	return a, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.DB.Close()
}

// GetUptime returns how long the app has been running.
func (a *App) GetUptime() string {
	return time.Since(a.StartTime).String()
}

// seedAdmin creates the configured bootstrap admin if no user with that
// email exists yet. Registration has no public surface; the first admin
// has to come from configuration.
func (a *App) seedAdmin() error {
	cfg := a.Config.Admin
	if cfg.Email == "" {
		return nil
	}

	_, err := queries.GetUserByEmail(a.DB, cfg.Email)
	if err == nil {
		return nil
	}
	if !storeerrors.IsNotFound(err) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := store.NewUser(cfg.Email, string(hashed), cfg.Name, "admin", "")
	if err != nil {
		return err
	}
	if err := queries.CreateUser(a.DB, admin); err != nil {
		return err
	}

	logger.Info("Bootstrap admin created", "email", cfg.Email)
	return nil
}
