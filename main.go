package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrops-br/adventureworks-api/internal/app/service"
	"github.com/mrops-br/adventureworks-api/internal/domain"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/config"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/database"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/http"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/repository/postgres"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize OpenTelemetry
	var telem *telemetry.Telemetry
	if cfg.OTLP.Enabled {
		var err error
		telem, err = telemetry.NewTelemetry(&cfg.OTLP)
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
	} else {
		telem = telemetry.NewNoOpTelemetry(&cfg.OTLP)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	// Get tracer, meter, and logger instances
	tracer := telem.TracerProvider.Tracer("products-api")
	meter := telem.MeterProvider.Meter("products-api")
	logger := telem.Logger

	logger.Info("Starting Products API",
		slog.String("store", cfg.Database.Driver),
	)

	// Initialize repository (dependency injection)
	repo, readiness, closeStore, err := newStore(&cfg.Database, tracer, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("error", err.Error()))
		return
	}
	defer closeStore()

	// Initialize service
	productService := service.NewProductService(repo, tracer, meter, logger)

	// Initialize handler
	productHandler := handler.NewProductHandler(productService, logger)

	// Initialize HTTP server
	server := http.NewServer(&cfg.Server, productHandler, readiness, logger, telem)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
		}
		cancel()
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
}

// newStore selects the product repository. The postgres store also serves
// as the readiness probe; the memory store is always ready.
func newStore(
	cfg *config.DatabaseConfig,
	tracer trace.Tracer,
	logger *slog.Logger,
) (domain.ProductRepository, http.ReadinessChecker, func(), error) {
	switch cfg.Driver {
	case config.StoreDriverPostgres:
		provider := database.NewPgxProvider(cfg.ConnectionString)
		repo := postgres.NewProductRepository(provider, tracer, logger)
		return repo, provider, provider.Close, nil
	case config.StoreDriverMemory:
		return memory.NewProductRepository(tracer, logger), nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
