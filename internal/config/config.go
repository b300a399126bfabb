package config

import "time"

// ClientConfig is the root configuration for a mirror instance.
type ClientConfig struct {
	Identity   IdentityConfig   `yaml:"identity"`
	OrderFeed  OrderFeedConfig  `yaml:"order_feed"`
	MarketData MarketDataConfig `yaml:"market_data"`
	Recorder   RecorderConfig   `yaml:"recorder"`
}

// IdentityConfig controls client-identity persistence.
type IdentityConfig struct {
	// Path is the state file holding the persisted client id.
	Path string `yaml:"path"`

	// ClientID overrides the persisted identity when non-zero.
	ClientID int64 `yaml:"client_id"`
}

// OrderFeedConfig holds order-entry event stream settings.
type OrderFeedConfig struct {
	URL               string        `yaml:"url"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
	ReconnectDelay    time.Duration `yaml:"reconnect_delay"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	BufferSize        int           `yaml:"buffer_size"`
}

// MarketDataConfig holds market-data feed settings.
type MarketDataConfig struct {
	URL            string        `yaml:"url"`
	Reconnect      *bool         `yaml:"reconnect"` // nil = default (true)
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
	BufferSize     int           `yaml:"buffer_size"`
}

// RecorderConfig holds trade journal settings. The journal is optional; the
// in-memory mirror never depends on it.
type RecorderConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Database      DBConfig      `yaml:"database"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}
