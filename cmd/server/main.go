// Package main implements the entry point for the ContentForge API
// server, which manages content-generation tasks and exports their
// results to files.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/contentforge/contentforge-api/internal/api"
	"github.com/contentforge/contentforge-api/internal/config"
	"github.com/contentforge/contentforge-api/internal/export"
	"github.com/contentforge/contentforge-api/internal/generation"
	"github.com/contentforge/contentforge-api/internal/platform/logger"
	"github.com/contentforge/contentforge-api/internal/platform/memory"
	"github.com/contentforge/contentforge-api/internal/platform/postgres"
	"github.com/contentforge/contentforge-api/internal/service"
	"github.com/contentforge/contentforge-api/internal/store"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	cfg, log, err := initializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := executeMigration(cfg, *migrateCmd); err != nil {
			log.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runServer(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"export_root", cfg.Export.Root,
		"database_configured", cfg.Database.URL != "")

	return cfg, log, nil
}

// buildTaskStore selects the persistence backend: PostgreSQL when a
// database URL is configured, the in-memory store otherwise.
func buildTaskStore(cfg *config.Config, log *slog.Logger) (store.TaskStore, func(), error) {
	if cfg.Database.URL == "" {
		log.Warn("no database URL configured, using in-memory task store; tasks will not survive restarts")
		return memory.NewTaskStore(), func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}
	return postgres.NewTaskStore(db, log), cleanup, nil
}

// runServer wires the application together and serves HTTP until a
// shutdown signal arrives.
func runServer(cfg *config.Config, log *slog.Logger) error {
	tasks, cleanup, err := buildTaskStore(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	pipeline := export.NewPipeline(cfg.Export.Root, export.NewRegistry(), log)
	prompts := generation.NewStaticPromptProvider(cfg.Generation.PromptTemplate)

	router := api.NewRouter(api.Handlers{
		Tasks:  api.NewTaskHandler(service.NewTaskService(tasks, log)),
		Export: api.NewExportHandler(pipeline),
		Prompt: api.NewPromptHandler(prompts),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdownCh:
		log.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("server shutdown completed")
	return nil
}
