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
	"golang.org/x/sync/errgroup"

	"github.com/dhcraft/m3gim/internal/api"
	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/archiveservice"
	"github.com/dhcraft/m3gim/internal/loader"
	"github.com/dhcraft/m3gim/internal/mcpserver"
	"github.com/dhcraft/m3gim/internal/searchindex"
	"github.com/dhcraft/m3gim/internal/sse"
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
		slog.String("archive_path", cfg.Archive.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Load and index the export. A missing or broken export at startup is
	// fatal; there is nothing to serve without it.
	store, err := loader.Load(cfg.Archive.Path)
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}

	// Initialize SQLite search mirror.
	idx, err := searchindex.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init search index: %w", err)
	}
	defer idx.Close()

	svc, err := archiveservice.NewService(store, idx, logger)
	if err != nil {
		return fmt.Errorf("init archive service: %w", err)
	}

	// SSE broker.
	broker := sse.NewBroker()
	defer broker.Close()

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

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

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start export watcher with reload callback.
	if cfg.Archive.Watch {
		g.Go(func() error {
			return loader.Watch(gCtx, cfg.Archive.Path, logger, func(fresh *archive.Store) {
				if err := svc.Reload(fresh); err != nil {
					logger.Error("snapshot swap failed, keeping previous",
						slog.String("error", err.Error()))
					return
				}
				broker.PublishReload(sse.ReloadInfo{
					RecordCount:   len(fresh.AllRecords),
					KonvolutCount: len(fresh.Konvolute),
					ExportDate:    fresh.ExportDate,
				})
			})
		})
	}

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

// RunMCP loads the archive and serves the MCP tools over stdio. Stdout
// carries the protocol, so logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	store, err := loader.Load(cfg.Archive.Path)
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}

	idx, err := searchindex.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init search index: %w", err)
	}
	defer idx.Close()

	svc, err := archiveservice.NewService(store, idx, logger)
	if err != nil {
		return fmt.Errorf("init archive service: %w", err)
	}

	logger.Info("Starting MCP server on stdio",
		slog.String("archive_path", cfg.Archive.Path),
		slog.Int("records", len(store.AllRecords)))

	return mcpserver.New(svc).ServeStdio()
}
