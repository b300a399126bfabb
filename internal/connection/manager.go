package connection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robdev/me-client/internal/codec"
	"github.com/robdev/me-client/internal/state"
)

// Manager owns the single logical connection to the order-entry event stream.
type Manager interface {
	// Start establishes the connection and begins the heartbeat. Idempotent:
	// calling Start while the manager is already running is a no-op.
	Start(ctx context.Context) error

	// Stop gracefully shuts the connection down.
	Stop(ctx context.Context) error

	// Send gateways one outbound message onto the connection. Returns
	// ErrNotReady when no open connection exists; nothing is queued.
	Send(msg codec.Outgoing) error

	// IsOpen reports whether a connection is currently open.
	IsOpen() bool

	// Book returns the reconciled order/trade view this manager feeds.
	Book() *state.Book
}

// manager implements the Manager interface.
type manager struct {
	cfg    ManagerConfig
	book   *state.Book
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.RWMutex
	client       Client
	started      bool
	reconnecting bool
}

// NewManager creates a Connection Manager feeding the given Book.
func NewManager(cfg ManagerConfig, book *state.Book, logger *slog.Logger) Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &manager{
		cfg:    cfg,
		book:   book,
		logger: logger.With("client_id", cfg.ClientID),
	}
}

// streamURL builds the client-addressed event stream endpoint.
func (m *manager) streamURL() string {
	return fmt.Sprintf("%s/ws/event_stream/%d", strings.TrimSuffix(m.cfg.URL, "/"), m.cfg.ClientID)
}

// Start begins the manager.
func (m *manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	m.wg.Add(1)
	go m.heartbeatLoop()

	if _, err := m.connect(); err != nil {
		m.logger.Warn("initial connect failed", "error", err)
		m.scheduleReconnect()
	}

	return nil
}

// Stop gracefully shuts down.
func (m *manager) Stop(ctx context.Context) error {
	m.logger.Info("stopping connection manager")

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

	m.logger.Info("connection manager stopped")
	return nil
}

// IsOpen reports whether a connection is currently open.
func (m *manager) IsOpen() bool {
	m.mu.RLock()
	cli := m.client
	m.mu.RUnlock()
	return cli != nil && cli.IsConnected()
}

// Book returns the reconciled view.
func (m *manager) Book() *state.Book {
	return m.book
}

// connect dials the event stream and starts its read loop.
func (m *manager) connect() (Client, error) {
	cli := NewClient(ClientConfig{
		URL:              m.streamURL(),
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     m.cfg.WriteTimeout,
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

	m.logger.Info("event stream connected", "url", m.streamURL())
	return cli, nil
}

// readLoop decodes inbound frames from one connection and applies them to
// the Book, strictly in arrival order.
func (m *manager) readLoop(cli Client) {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return

		case err := <-cli.Errors():
			m.logger.Warn("connection error", "error", err)
			m.recover(cli)
			return

		case data, ok := <-cli.Messages():
			if !ok {
				return
			}

			msg, err := codec.Decode(data)
			if err != nil {
				// Malformed data is not fatal to the connection.
				m.logger.Warn("discarding frame", "error", err)
				continue
			}

			m.book.Apply(msg)
		}
	}
}

// recover converges closure and transport error onto one reconnect path.
// At most one reconnect attempt is scheduled per failure.
func (m *manager) recover(cli Client) {
	cli.Close()

	m.mu.Lock()
	if m.client == cli {
		m.client = nil
	}
	m.mu.Unlock()

	m.scheduleReconnect()
}

// scheduleReconnect starts the reconnect loop unless one is already pending
// or the manager is shutting down.
func (m *manager) scheduleReconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reconnecting || m.ctx.Err() != nil {
		return
	}
	m.reconnecting = true

	m.wg.Add(1)
	go m.reconnectLoop()
}

// reconnectLoop retries the connection on a fixed delay, forever. The delay
// is constant; retrying indefinitely against an unreachable server is
// intended behavior.
func (m *manager) reconnectLoop() {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-time.After(m.cfg.ReconnectDelay):
		}

		m.logger.Info("attempting reconnect")

		cli, err := m.connect()
		if err != nil {
			m.logger.Warn("reconnect failed", "error", err)
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

// heartbeatLoop sends a heartbeat frame on a fixed interval while the
// connection is open. Heartbeats are skipped, never queued, while
// reconnecting.
func (m *manager) heartbeatLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if err := m.Send(codec.Heartbeat{}); err != nil {
				m.logger.Debug("heartbeat skipped", "error", err)
			}
		}
	}
}
