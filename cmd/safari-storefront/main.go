package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/safari-storefront/internal/api"
	"github.com/aaravmahajanofficial/safari-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/safari-storefront/internal/cache"
	"github.com/aaravmahajanofficial/safari-storefront/internal/config"
	"github.com/aaravmahajanofficial/safari-storefront/internal/health"
	repository "github.com/aaravmahajanofficial/safari-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/safari-storefront/internal/services"
	"github.com/aaravmahajanofficial/safari-storefront/internal/telemetry"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(startupCtx, cfg.Telemetry)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(startupCtx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	catalogService := service.NewCatalogService(repos.Catalog, service.Defaults{
		AppName:          cfg.Storefront.AppName,
		PlaceholderImage: cfg.Storefront.PlaceholderImage,
		CategoryImage:    cfg.Storefront.CategoryImage,
	}, cache.WithTTL(cfg.Cache.TTL))
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	healthHandler, err := health.NewHealthHandler(cfg.Telemetry.ServiceName, repos.DB)
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", health.Version), slog.Duration("cache_ttl", cfg.Cache.TTL))

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(catalogHandler, healthHandler.Handler()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Trace exporter shutdown failed", slog.String("error", err.Error()))
	}
}
