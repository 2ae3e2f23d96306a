// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/rollnconnect/rollconnect/internal/api"
	"github.com/rollnconnect/rollconnect/internal/community"
	"github.com/rollnconnect/rollconnect/internal/geo"
	"github.com/rollnconnect/rollconnect/internal/index"
	"github.com/rollnconnect/rollconnect/internal/metrics"
	"github.com/rollnconnect/rollconnect/internal/models"
	"github.com/rollnconnect/rollconnect/internal/sse"
	"github.com/rollnconnect/rollconnect/internal/storage"
	"github.com/rollnconnect/rollconnect/internal/tracker"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_dir", cfg.Data.Dir),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure data directory exists.
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Initialize storage.
	store, err := storage.NewFS(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Initialize SQLite search index.
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	metrics.Register()

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Community service over the snapshot.
	svc, err := community.NewService(store, db, broker, logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}

	// Location provider: remote endpoint when configured, always
	// falling back to the configured default position.
	defaultPos := models.Position{Lat: cfg.Geo.DefaultLat, Lng: cfg.Geo.DefaultLng}
	var locator geo.Locator = geo.Static{Pos: defaultPos}
	if cfg.Geo.Endpoint != "" {
		locator = geo.WithFallback(geo.NewHTTP(cfg.Geo.Endpoint, cfg.Geo.HighAccuracy), defaultPos)
	}

	trk := tracker.New(locator, broker, logger, cfg.Tracker.Interval)
	defer trk.Stop()

	apiRouter := api.NewRouter(svc, locator, trk,
		cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, cfg.CORS.Origins)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus metrics (unauthenticated).
	r.Handle("/metrics", promhttp.Handler())

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the data directory for external edits and reload the
	// snapshot, notifying SSE clients.
	g.Go(func() error {
		return storage.Watch(gCtx, cfg.Data.Dir, logger, func(key string) {
			svc.Reload()
			broker.PublishChange(key+".changed", key, "")
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
