package connection

import (
	"errors"
	"time"
)

// Errors
var (
	ErrNotConnected  = errors.New("not connected")
	ErrNotReady      = errors.New("connection not ready")
	ErrAlreadyClosed = errors.New("already closed")
)

// ClientConfig configures a single WebSocket client.
type ClientConfig struct {
	URL              string        // Full WebSocket URL
	HandshakeTimeout time.Duration // Dial timeout
	WriteTimeout     time.Duration // Write deadline for sends
	BufferSize       int           // Message channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       1000,
	}
}

// ManagerConfig configures the Connection Manager.
type ManagerConfig struct {
	URL               string        // Base WebSocket URL (e.g., ws://localhost:8080)
	ClientID          int64         // Client identity, embedded in the stream address
	HeartbeatInterval time.Duration // Interval between outbound heartbeat frames
	ReconnectDelay    time.Duration // Fixed delay before each reconnect attempt
	WriteTimeout      time.Duration // Write deadline for sends
	BufferSize        int           // Inbound message buffer size
}

// DefaultManagerConfig returns sensible defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		HeartbeatInterval: 5 * time.Second,
		ReconnectDelay:    1 * time.Second,
		WriteTimeout:      5 * time.Second,
		BufferSize:        1000,
	}
}
