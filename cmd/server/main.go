package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hongminglow/attendance-be/internal/config"
	"github.com/hongminglow/attendance-be/internal/server"
	"github.com/hongminglow/attendance-be/internal/storage"
	"github.com/hongminglow/attendance-be/internal/storage/memory"
	postgres "github.com/hongminglow/attendance-be/internal/storage/postgres"
	"github.com/joho/godotenv"
)

const envDevelopment = "development"

func main() {
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)
	if !envLoaded {
		logger.Debug("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("init storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, store, logger)
	if err := srv.Bootstrap(ctx); err != nil {
		logger.Error("seed admin", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("attendance API listening",
			"addr", cfg.HTTPAddress(),
			"env", cfg.Env,
			"driver", cfg.StorageDriver,
			"tz", cfg.Location.String(),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if cfg.StorageDriver == config.DriverMemory {
		return memory.NewStore(), nil
	}
	return postgres.NewStore(ctx, cfg.DatabaseURL)
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envDevelopment:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
