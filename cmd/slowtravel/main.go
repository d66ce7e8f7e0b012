// Package main запускает консоль сервиса слоутревел.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/slowtravel-system/internal/cli"
	"github.com/mmeshcher/slowtravel-system/internal/config"
	"github.com/mmeshcher/slowtravel-system/internal/latency"
	"github.com/mmeshcher/slowtravel-system/internal/repository"
	"github.com/mmeshcher/slowtravel-system/internal/service"
	"github.com/mmeshcher/slowtravel-system/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	var kv repository.KV
	if cfg.DatabaseDSN == "" {
		// Без долговременного носителя каждая сессия начинается с нуля.
		sugar.Infow("no database configured, keeping everything in memory")
		kv = storage.NewMemory()
	} else {
		db, err := storage.OpenSQLite(cfg.DatabaseDSN)
		if err != nil {
			sugar.Fatalw("storage initialization error", "error", err.Error())
		}
		defer db.Close()
		kv = db
	}

	store := repository.NewStore(kv)
	sim := latency.New(time.Duration(cfg.LatencyMS) * time.Millisecond)

	trips := service.NewTripService(store, sim)
	auth := service.NewAuthService(store)

	app := cli.NewApp(trips, auth, sugar)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sugar.Infow("starting slowtravel console", "database", cfg.DatabaseDSN, "latency_ms", cfg.LatencyMS)

	if err := app.Run(ctx); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
