package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTempFile writes content to a temp file and returns its path.
func writeTempFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempFile(t, `
identity:
  path: /var/lib/mirror/client_id
  client_id: 777
order_feed:
  url: ws://engine.internal:8080
  heartbeat_interval: 2s
market_data:
  url: ws://engine.internal:7000/ws/marketdata
  reconnect: false
recorder:
  enabled: true
  database:
    host: db.internal
    name: mirror
    user: mirror
    password: secret
  batch_size: 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Identity.ClientID != 777 {
		t.Errorf("ClientID = %d, want 777", cfg.Identity.ClientID)
	}
	if cfg.OrderFeed.URL != "ws://engine.internal:8080" {
		t.Errorf("OrderFeed.URL = %q", cfg.OrderFeed.URL)
	}
	if cfg.OrderFeed.HeartbeatInterval != 2*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 2s", cfg.OrderFeed.HeartbeatInterval)
	}
	if cfg.MarketData.Reconnect == nil || *cfg.MarketData.Reconnect {
		t.Errorf("MarketData.Reconnect = %v, want explicit false", cfg.MarketData.Reconnect)
	}
	if !cfg.Recorder.Enabled || cfg.Recorder.Database.Host != "db.internal" {
		t.Errorf("recorder config not parsed: %+v", cfg.Recorder)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("MIRROR_FEED_URL", "ws://expanded:8080")
	t.Setenv("MIRROR_DB_PASSWORD", "s3cret")

	path := writeTempFile(t, `
order_feed:
  url: ${MIRROR_FEED_URL}
recorder:
  database:
    password: ${MIRROR_DB_PASSWORD}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OrderFeed.URL != "ws://expanded:8080" {
		t.Errorf("URL = %q, env var not expanded", cfg.OrderFeed.URL)
	}
	if cfg.Recorder.Database.Password != "s3cret" {
		t.Errorf("Password = %q, env var not expanded", cfg.Recorder.Database.Password)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "order_feed: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, `
order_feed:
  url: ws://engine:8080
`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Identity.Path != DefaultIdentityPath {
		t.Errorf("Identity.Path = %q, want default %q", cfg.Identity.Path, DefaultIdentityPath)
	}
	if cfg.OrderFeed.HeartbeatInterval != DefaultHeartbeatInterval {
		t.Errorf("HeartbeatInterval = %v, want %v", cfg.OrderFeed.HeartbeatInterval, DefaultHeartbeatInterval)
	}
	if cfg.OrderFeed.ReconnectDelay != DefaultReconnectDelay {
		t.Errorf("ReconnectDelay = %v, want %v", cfg.OrderFeed.ReconnectDelay, DefaultReconnectDelay)
	}
	if cfg.MarketData.URL != DefaultMarketDataURL {
		t.Errorf("MarketData.URL = %q, want default", cfg.MarketData.URL)
	}
	if cfg.MarketData.Reconnect == nil || !*cfg.MarketData.Reconnect {
		t.Error("MarketData.Reconnect should default to true")
	}
	if cfg.Recorder.Enabled {
		t.Error("recorder should default to disabled")
	}
}

func TestLoadWithDefaults_ExplicitReconnectFalseSurvives(t *testing.T) {
	path := writeTempFile(t, `
market_data:
  reconnect: false
`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}
	if cfg.MarketData.Reconnect == nil || *cfg.MarketData.Reconnect {
		t.Error("explicit reconnect: false was overridden by the default")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *ClientConfig {
		cfg := &ClientConfig{}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr bool
	}{
		{"defaults are valid", func(c *ClientConfig) {}, false},
		{"negative client id", func(c *ClientConfig) { c.Identity.ClientID = -1 }, true},
		{"missing order feed url", func(c *ClientConfig) { c.OrderFeed.URL = "" }, true},
		{"http order feed url", func(c *ClientConfig) { c.OrderFeed.URL = "http://engine:8080" }, true},
		{"wss url accepted", func(c *ClientConfig) { c.OrderFeed.URL = "wss://engine:8443" }, false},
		{"zero heartbeat", func(c *ClientConfig) { c.OrderFeed.HeartbeatInterval = 0 }, true},
		{"zero reconnect delay", func(c *ClientConfig) { c.OrderFeed.ReconnectDelay = 0 }, true},
		{"zero buffer", func(c *ClientConfig) { c.OrderFeed.BufferSize = 0 }, true},
		{"http market data url", func(c *ClientConfig) { c.MarketData.URL = "https://feed" }, true},
		{"negative market data reconnect delay", func(c *ClientConfig) { c.MarketData.ReconnectDelay = -time.Second }, true},
		{"zero market data buffer", func(c *ClientConfig) { c.MarketData.BufferSize = -1 }, true},
		{
			"recorder enabled without host",
			func(c *ClientConfig) {
				c.Recorder.Enabled = true
				c.Recorder.Database = DBConfig{Name: "mirror", User: "mirror", Port: 5432}
			},
			true,
		},
		{
			"recorder enabled complete",
			func(c *ClientConfig) {
				c.Recorder.Enabled = true
				c.Recorder.Database = DBConfig{Host: "db", Name: "mirror", User: "mirror", Port: 5432}
			},
			false,
		},
		{
			"recorder db port out of range",
			func(c *ClientConfig) {
				c.Recorder.Enabled = true
				c.Recorder.Database = DBConfig{Host: "db", Name: "mirror", User: "mirror", Port: 70000}
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeTempFile(t, `
order_feed:
  url: ftp://not-websocket
`)

	if _, err := LoadAndValidate(path); err == nil {
		t.Error("expected validation error for non-websocket URL")
	}
}
