// mirror keeps a trader's view of orders, fills, and market state in sync
// with the matching engine.
// Usage: go run ./cmd/mirror --config configs/mirror.local.yaml
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robdev/me-client/internal/config"
	"github.com/robdev/me-client/internal/connection"
	"github.com/robdev/me-client/internal/database"
	"github.com/robdev/me-client/internal/identity"
	"github.com/robdev/me-client/internal/marketdata"
	"github.com/robdev/me-client/internal/recorder"
	"github.com/robdev/me-client/internal/state"
	"github.com/robdev/me-client/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/mirror.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting mirror",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Resolve client identity
	clientID := cfg.Identity.ClientID
	if clientID == 0 {
		clientID, err = identity.LoadOrCreate(cfg.Identity.Path)
		if err != nil {
			logger.Error("failed to load client identity", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("configuration loaded",
		"client_id", clientID,
		"order_feed", cfg.OrderFeed.URL,
		"market_data", cfg.MarketData.URL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Reconciled order/trade view
	book := state.NewBook(logger)

	// Optional trade journal
	var rec *recorder.Recorder
	if cfg.Recorder.Enabled {
		logger.Info("connecting to journal database",
			"host", cfg.Recorder.Database.Host,
			"port", cfg.Recorder.Database.Port,
			"database", cfg.Recorder.Database.Name,
		)

		pool, err := database.Connect(ctx, cfg.Recorder.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		rec = recorder.NewRecorder(recorder.Config{
			BatchSize:     cfg.Recorder.BatchSize,
			FlushInterval: cfg.Recorder.FlushInterval,
		}, book.Changes(), pool, logger)

		if err := rec.Start(ctx); err != nil {
			logger.Error("failed to start recorder", "error", err)
			os.Exit(1)
		}
	}

	// Order-entry event stream
	mgr := connection.NewManager(connection.ManagerConfig{
		URL:               cfg.OrderFeed.URL,
		ClientID:          clientID,
		HeartbeatInterval: cfg.OrderFeed.HeartbeatInterval,
		ReconnectDelay:    cfg.OrderFeed.ReconnectDelay,
		WriteTimeout:      cfg.OrderFeed.WriteTimeout,
		BufferSize:        cfg.OrderFeed.BufferSize,
	}, book, logger)

	if err := mgr.Start(ctx); err != nil {
		logger.Error("failed to start connection manager", "error", err)
		os.Exit(1)
	}

	// Market-data snapshot mirror
	md := marketdata.NewMirror(marketdata.Config{
		URL:            cfg.MarketData.URL,
		Reconnect:      *cfg.MarketData.Reconnect,
		ReconnectDelay: cfg.MarketData.ReconnectDelay,
		BufferSize:     cfg.MarketData.BufferSize,
	}, logger)

	if err := md.Start(ctx); err != nil {
		logger.Warn("market data feed unavailable", "error", err)
	}

	logger.Info("mirror running")

	// Block until shutdown
	<-ctx.Done()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	md.Stop(stopCtx)
	mgr.Stop(stopCtx)
	if rec != nil {
		rec.Stop(stopCtx)
	}

	logger.Info("mirror stopped")
}
