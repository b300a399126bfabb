package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultOrderFeedURL      = "ws://localhost:8080"
	DefaultMarketDataURL     = "ws://localhost:7000/ws/marketdata"
	DefaultIdentityPath      = "state/client_id"
	DefaultHeartbeatInterval = 5 * time.Second
	DefaultReconnectDelay    = 1 * time.Second
	DefaultWriteTimeout      = 5 * time.Second
	DefaultBufferSize        = 1000
	DefaultMDBufferSize      = 100
	DefaultDBPort            = 5432
	DefaultDBSSLMode         = "prefer"
	DefaultMaxConns          = 10
	DefaultMinConns          = 2
	DefaultBatchSize         = 100
	DefaultFlushInterval     = 1 * time.Second
)

func (c *ClientConfig) applyDefaults() {
	// Identity defaults
	if c.Identity.Path == "" {
		c.Identity.Path = DefaultIdentityPath
	}

	// Order feed defaults
	if c.OrderFeed.URL == "" {
		c.OrderFeed.URL = DefaultOrderFeedURL
	}
	if c.OrderFeed.HeartbeatInterval == 0 {
		c.OrderFeed.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.OrderFeed.ReconnectDelay == 0 {
		c.OrderFeed.ReconnectDelay = DefaultReconnectDelay
	}
	if c.OrderFeed.WriteTimeout == 0 {
		c.OrderFeed.WriteTimeout = DefaultWriteTimeout
	}
	if c.OrderFeed.BufferSize == 0 {
		c.OrderFeed.BufferSize = DefaultBufferSize
	}

	// Market data defaults
	if c.MarketData.URL == "" {
		c.MarketData.URL = DefaultMarketDataURL
	}
	if c.MarketData.Reconnect == nil {
		reconnect := true
		c.MarketData.Reconnect = &reconnect
	}
	if c.MarketData.ReconnectDelay == 0 {
		c.MarketData.ReconnectDelay = DefaultReconnectDelay
	}
	if c.MarketData.BufferSize == 0 {
		c.MarketData.BufferSize = DefaultMDBufferSize
	}

	// Recorder defaults
	if c.Recorder.BatchSize == 0 {
		c.Recorder.BatchSize = DefaultBatchSize
	}
	if c.Recorder.FlushInterval == 0 {
		c.Recorder.FlushInterval = DefaultFlushInterval
	}
	if c.Recorder.Enabled {
		applyDBDefaults(&c.Recorder.Database)
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
