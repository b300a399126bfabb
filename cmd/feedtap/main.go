// feedtap connects to both engine feeds and streams reconciled state to the
// console. Useful for eyeballing the wire without running the full mirror.
// Usage: go run ./cmd/feedtap --config configs/mirror.local.yaml
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robdev/me-client/internal/codec"
	"github.com/robdev/me-client/internal/config"
	"github.com/robdev/me-client/internal/connection"
	"github.com/robdev/me-client/internal/identity"
	"github.com/robdev/me-client/internal/marketdata"
	"github.com/robdev/me-client/internal/model"
	"github.com/robdev/me-client/internal/state"
)

func main() {
	configPath := flag.String("config", "configs/mirror.local.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "print full update JSON")
	snapshotEvery := flag.Duration("snapshot-every", 5*time.Second, "market snapshot print interval")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	clientID := cfg.Identity.ClientID
	if clientID == 0 {
		clientID, err = identity.LoadOrCreate(cfg.Identity.Path)
		if err != nil {
			logger.Error("failed to load client identity", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	book := state.NewBook(logger)

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

	md := marketdata.NewMirror(marketdata.Config{
		URL:            cfg.MarketData.URL,
		Reconnect:      *cfg.MarketData.Reconnect,
		ReconnectDelay: cfg.MarketData.ReconnectDelay,
		BufferSize:     cfg.MarketData.BufferSize,
	}, logger)

	if err := md.Start(ctx); err != nil {
		logger.Warn("market data feed unavailable", "error", err)
	}

	fmt.Printf("tapping feeds as client %d (ctrl-c to stop)\n", clientID)

	ticker := time.NewTicker(*snapshotEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			md.Stop(stopCtx)
			mgr.Stop(stopCtx)
			stopCancel()
			return

		case update := <-book.Changes():
			printUpdate(update, *verbose)

		case <-ticker.C:
			snap := md.Snapshot()
			fmt.Printf("[md] bid=%d ask=%d last=%d depth=%d/%d tape=%d\n",
				snap.L1.BestBid, snap.L1.BestAsk, snap.LastPx,
				len(snap.L2.Bids), len(snap.L2.Asks), len(snap.Trades))
		}
	}
}

func printUpdate(update state.Update, verbose bool) {
	switch msg := update.Msg.(type) {
	case codec.OrderAck:
		fmt.Printf("[ack]    order=%d %s %s %d@%d (%s)\n",
			msg.OrderID, msg.Side, msg.Instrument, msg.Qty, msg.Px,
			model.NsToTime(msg.AckTime).Format(time.TimeOnly))
	case codec.CancelAck:
		fmt.Printf("[cancel] order=%d status=%s reason=%q\n",
			msg.OrderID, msg.CancelStatus, msg.Reason)
	case codec.ExecutionReport:
		fmt.Printf("[fill]   order=%d %d@%d %s open=%d trades=%d\n",
			msg.OrderID, msg.ExecQty, msg.ExecPx, msg.ExecType,
			update.OpenCount, update.TradeCount)
	}

	if verbose {
		if data, err := json.Marshal(update.Msg); err == nil {
			fmt.Printf("         %s\n", data)
		}
	}
}
