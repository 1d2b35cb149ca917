package main

import (
	"context"
	"ctchen222/Book-Review/internal/config"
	"ctchen222/Book-Review/internal/db"
	"ctchen222/Book-Review/internal/logger"
	"ctchen222/Book-Review/internal/metrics"
	"ctchen222/Book-Review/internal/ratings"
	"ctchen222/Book-Review/internal/server"
	"ctchen222/Book-Review/internal/session"
	"ctchen222/Book-Review/internal/telemetry"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize telemetry
	if cfg.TelemetryEnabled() {
		shutdown, err := telemetry.InitOtel(ctx, cfg.OtelEndpoint, cfg.ServiceName)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("Error shutting down telemetry", "error", err)
			}
		}()
	}

	if err := logger.Init(cfg.LogLevel, cfg.TelemetryEnabled()); err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)

	// Initialize the relational store
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Initialize sessions, in Redis when configured
	var store session.Store
	if cfg.RedisAddr != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		slog.Warn("REDIS_CONNSTRING not set, sessions are kept in memory")
		store = session.NewMemoryStore(cfg.SessionTTL)
	}
	sessions, err := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}

	m := metrics.New()
	lookup := ratings.NewClient(cfg.GoodreadsURL, cfg.GoodreadsKey, ratings.WithObserver(m.ObserveRatingsLookup))

	serviceName := ""
	if cfg.TelemetryEnabled() {
		serviceName = cfg.ServiceName
	}
	srv, err := server.NewServer(server.Dependencies{
		DB:          pool,
		Sessions:    sessions,
		Ratings:     lookup,
		Metrics:     m,
		ServiceName: serviceName,
	})
	if err != nil {
		return err
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return err
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("Server exiting")
	return nil
}
