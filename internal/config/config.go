package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	IngestToken string `mapstructure:"ingest_token"`
}

type DatabaseConfig struct {
	// Path is the connection string for the SQLite backend, read once at
	// process start.
	Path string `mapstructure:"path"`
}

type SessionConfig struct {
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// AdminConfig seeds the first admin account when the users table is empty.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

func Load() (*Config, error) {
	var cfg Config

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "./statuswatch.db")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("admin.name", "admin")

	if err := viper.UnmarshalKey("server", &cfg.Server); err != nil {
		return nil, fmt.Errorf("unable to decode server config: %v", err)
	}
	if err := viper.UnmarshalKey("database", &cfg.Database); err != nil {
		return nil, fmt.Errorf("unable to decode database config: %v", err)
	}
	if err := viper.UnmarshalKey("session", &cfg.Session); err != nil {
		return nil, fmt.Errorf("unable to decode session config: %v", err)
	}
	if err := viper.UnmarshalKey("log", &cfg.Log); err != nil {
		return nil, fmt.Errorf("unable to decode log config: %v", err)
	}
	if err := viper.UnmarshalKey("admin", &cfg.Admin); err != nil {
		return nil, fmt.Errorf("unable to decode admin config: %v", err)
	}

	// Validate required fields
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("session.secret is required")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("server.port must be between 1 and 65535")
	}

	validLevels := []string{"debug", "info", "warn", "warning", "error", "fatal"}
	isValid := false
	for _, valid := range validLevels {
		if strings.EqualFold(cfg.Log.Level, valid) {
			isValid = true
			break
		}
	}
	if !isValid {
		return nil, fmt.Errorf("log.level must be one of: %s", strings.Join(validLevels, ", "))
	}

	// A bootstrap admin needs both an email and a password
	if (cfg.Admin.Email == "") != (cfg.Admin.Password == "") {
		return nil, fmt.Errorf("admin.email and admin.password must be provided together")
	}

	return &cfg, nil
}
