// Package main is the entry point of the student record hub API server.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: the student record aggregate and shared error taxonomy
// - Application: statistics queries and the assistant proxy
// - Infrastructure: record stores (PostgreSQL / in-memory), the completion
//   provider client
// - Interface: HTTP handlers
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/record-hub/student-record-hub/config"
	"github.com/record-hub/student-record-hub/internal/application/assistant"
	"github.com/record-hub/student-record-hub/internal/application/query"
	"github.com/record-hub/student-record-hub/internal/domain/student"
	"github.com/record-hub/student-record-hub/internal/infrastructure/external/provider"
	"github.com/record-hub/student-record-hub/internal/infrastructure/persistence/memory"
	"github.com/record-hub/student-record-hub/internal/infrastructure/persistence/postgres"
	"github.com/record-hub/student-record-hub/internal/infrastructure/service"
	httpserver "github.com/record-hub/student-record-hub/internal/interface/http"
	"github.com/record-hub/student-record-hub/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(os.Stdout, logger.ParseLevel(cfg.App.LogLevel))
	log.Info("starting student record hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. RECORD STORE
	// A configured DATABASE_URL selects PostgreSQL; otherwise the service
	// runs on the seeded in-memory store.
	// ─────────────────────────────────────────────────────────────────────────
	var students student.Repository
	var healthChecker httpserver.HealthChecker

	if cfg.UseInMemoryStore() {
		log.Info("no database configured, using in-memory record store")
		students = memory.NewSeededStudentRepository()
	} else {
		log.Info("connecting to database...")
		dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			log.Info("closing database connection...")
			dbConn.Close()
		}()

		log.Info("running database migrations...")
		migrations := postgres.GetMigrations()
		if !cfg.Database.Seed || !cfg.Features.Enabled(config.FeatureSeedOnMigrate) {
			migrations = postgres.SchemaMigrations()
		}
		migrator := postgres.NewMigratorWithMigrations(dbConn, migrations)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("migrations completed")

		students = postgres.NewStudentRepository(dbConn)
		healthChecker = dbConn
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. COMPLETION PROVIDER CLIENT
	// ─────────────────────────────────────────────────────────────────────────
	clientConfig := provider.DefaultClientConfig(cfg.Assistant.BaseURL, cfg.Assistant.APIKey)
	clientConfig.Model = cfg.Assistant.Model
	clientConfig.Timeout = cfg.Assistant.RequestTimeout
	clientConfig.Temperature = cfg.Assistant.Temperature
	clientConfig.TopP = cfg.Assistant.TopP
	clientConfig.MaxTokens = cfg.Assistant.MaxTokens
	clientConfig.Debug = cfg.App.Debug
	providerClient := provider.NewClient(clientConfig)

	// ─────────────────────────────────────────────────────────────────────────
	// 5. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	statsHandler := query.NewGetStatisticsHandler(students)

	mockMode := cfg.Assistant.MockMode || cfg.Features.Enabled(config.FeatureAssistantMock)
	assistantService := assistant.NewService(
		students,
		service.NewCompleterAdapter(providerClient),
		nil,
		assistant.Config{
			APIKey:       cfg.Assistant.APIKey,
			MockMode:     mockMode,
			HistoryLimit: cfg.Assistant.HistoryLimit,
		},
		log,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	serverConfig := httpserver.DefaultConfig()
	serverConfig.Host = cfg.Server.Host
	serverConfig.Port = cfg.Server.Port
	serverConfig.ReadTimeout = cfg.Server.ReadTimeout
	serverConfig.WriteTimeout = cfg.Server.WriteTimeout
	serverConfig.IdleTimeout = cfg.Server.IdleTimeout
	serverConfig.EnableCORS = cfg.Server.EnableCORS
	serverConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	server := httpserver.NewServer(serverConfig, httpserver.Dependencies{
		Students:      students,
		Statistics:    statsHandler,
		Assistant:     assistantService,
		Logger:        log,
		HealthChecker: healthChecker,
	})

	errCh := server.StartAsync()
	log.Info("HTTP server started", logger.String("address", server.Address()))

	// ─────────────────────────────────────────────────────────────────────────
	// 7. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
