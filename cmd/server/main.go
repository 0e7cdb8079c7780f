package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/campushub/grievance/api"
	migrations "github.com/campushub/grievance/db"
	"github.com/campushub/grievance/internal/config"
	"github.com/campushub/grievance/internal/db"
	"github.com/campushub/grievance/internal/grievance"
	"github.com/campushub/grievance/internal/repository/sqlite"
	"github.com/campushub/grievance/internal/survey"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	log.Printf("Starting grievance server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open the store and bring the schema up to date
	store, err := db.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, store, migrations.MigrationsFS); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	validator, err := survey.NewValidator()
	if err != nil {
		log.Fatalf("Failed to build survey validator: %v", err)
	}

	repo := sqlite.New(store, logger)

	var opts []grievance.Option
	if cfg.LegacyPlaintextPasswords {
		logger.Warn("legacy plaintext password mode is enabled")
		opts = append(opts, grievance.WithLegacyPlaintextPasswords())
	}
	svc := grievance.NewService(repo, repo, repo, repo, validator, logger, opts...)

	// Seed the configured admin account; the admin signs in like any user
	if err := svc.SeedAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, svc)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := store.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
