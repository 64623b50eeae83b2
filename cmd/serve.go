package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/davdmx/statuswatch/internal/config"
	"github.com/davdmx/statuswatch/internal/httpserve"
	"github.com/davdmx/statuswatch/internal/server"
	"github.com/davdmx/statuswatch/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long:  `Start the HTTP server that exposes the monitoring dashboard and the log ingestion endpoints.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.GetLogger().SetLogLevel(cfg.Log.Level)
	logger.GetLogger().ConfigureFromEnv()

	a, err := server.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}

	e := echo.New()
	e.HideBanner = true
	httpserve.RegisterRoutes(e, a)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Starting statuswatch server", "addr", addr, "db", cfg.Database.Path)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server stopped", "error", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down server", "error", err)
	}
	if err := a.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
}
