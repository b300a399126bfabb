package marketdata

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/robdev/me-client/internal/connection"
)

// Mirror maintains the latest full market snapshot from the market-data
// feed. It shares no state with the order-entry connection.
type Mirror interface {
	// Start establishes the feed connection. Idempotent.
	Start(ctx context.Context) error

	// Stop gracefully shuts the feed down.
	Stop(ctx context.Context) error

	// Snapshot returns the most recent complete snapshot.
	Snapshot() Snapshot

	// IsOpen reports whether the feed connection is currently open.
	IsOpen() bool
}

// mirror implements the Mirror interface.
type mirror struct {
	cfg    Config
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.RWMutex
	client       connection.Client
	snap         Snapshot
	started      bool
	reconnecting bool
}

// NewMirror creates a snapshot mirror for the given feed.
func NewMirror(cfg Config, logger *slog.Logger) Mirror {
	if logger == nil {
		logger = slog.Default()
	}

	return &mirror{
		cfg:    cfg,
		logger: logger.With("feed", "marketdata"),
	}
}

// Start begins the mirror.
func (m *mirror) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	if _, err := m.connect(); err != nil {
		m.logger.Warn("initial connect failed", "error", err)
		if !m.cfg.Reconnect {
			return err
		}
		m.scheduleReconnect()
	}

	return nil
}

// Stop gracefully shuts down.
func (m *mirror) Stop(ctx context.Context) error {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	cli := m.client
	m.client = nil
	m.mu.Unlock()

	if cli != nil {
		cli.Close()
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("shutdown timeout, forcing close")
	}

	return nil
}

// Snapshot returns the most recent complete snapshot.
func (m *mirror) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// IsOpen reports whether the feed connection is currently open.
func (m *mirror) IsOpen() bool {
	m.mu.RLock()
	cli := m.client
	m.mu.RUnlock()
	return cli != nil && cli.IsConnected()
}

// connect dials the feed and starts its read loop.
func (m *mirror) connect() (connection.Client, error) {
	cli := connection.NewClient(connection.ClientConfig{
		URL:              m.cfg.URL,
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       m.cfg.BufferSize,
	}, m.logger)

	if err := cli.Connect(m.ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.client = cli
	m.mu.Unlock()

	m.wg.Add(1)
	go m.readLoop(cli)

	m.logger.Info("market data connected", "url", m.cfg.URL)
	return cli, nil
}

// readLoop replaces the snapshot on every inbound frame.
func (m *mirror) readLoop(cli connection.Client) {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return

		case err := <-cli.Errors():
			m.logger.Warn("market data connection lost", "error", err)
			cli.Close()

			m.mu.Lock()
			if m.client == cli {
				m.client = nil
			}
			m.mu.Unlock()

			if m.cfg.Reconnect {
				m.scheduleReconnect()
			}
			return

		case data, ok := <-cli.Messages():
			if !ok {
				return
			}

			var snap Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				// Keep the prior snapshot; a bad frame never leaves a
				// half-updated state behind.
				m.logger.Warn("discarding market data frame", "error", err)
				continue
			}
			clampDepth(&snap)

			m.mu.Lock()
			m.snap = snap
			m.mu.Unlock()
		}
	}
}

// scheduleReconnect starts the reconnect loop unless one is already pending
// or the mirror is shutting down.
func (m *mirror) scheduleReconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reconnecting || m.ctx.Err() != nil {
		return
	}
	m.reconnecting = true

	m.wg.Add(1)
	go m.reconnectLoop()
}

// reconnectLoop retries the feed on a fixed delay.
func (m *mirror) reconnectLoop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-time.After(m.cfg.ReconnectDelay):
		}

		m.logger.Info("attempting market data reconnect")

		cli, err := m.connect()
		if err != nil {
			m.logger.Warn("market data reconnect failed", "error", err)
			continue
		}

		// The fresh connection may already have failed; its recovery was
		// absorbed by the pending flag, so this loop must keep retrying
		// instead of handing off.
		m.mu.Lock()
		if m.client != cli {
			m.mu.Unlock()
			continue
		}
		m.reconnecting = false
		m.mu.Unlock()
		return
	}
}

// clampDepth trims ladder and tape to the wire maximum.
func clampDepth(s *Snapshot) {
	if len(s.L2.Bids) > MaxDepth {
		s.L2.Bids = s.L2.Bids[:MaxDepth]
	}
	if len(s.L2.Asks) > MaxDepth {
		s.L2.Asks = s.L2.Asks[:MaxDepth]
	}
	if len(s.Trades) > MaxDepth {
		s.Trades = s.Trades[:MaxDepth]
	}
}
