package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *ClientConfig) Validate() error {
	if c.Identity.ClientID < 0 {
		return errors.New("identity.client_id must be positive")
	}

	if err := validateWSURL("order_feed.url", c.OrderFeed.URL); err != nil {
		return err
	}
	if err := validateWSURL("market_data.url", c.MarketData.URL); err != nil {
		return err
	}

	if c.OrderFeed.HeartbeatInterval <= 0 {
		return errors.New("order_feed.heartbeat_interval must be > 0")
	}
	if c.OrderFeed.ReconnectDelay <= 0 {
		return errors.New("order_feed.reconnect_delay must be > 0")
	}
	if c.OrderFeed.BufferSize < 1 {
		return errors.New("order_feed.buffer_size must be >= 1")
	}

	if c.MarketData.ReconnectDelay <= 0 {
		return errors.New("market_data.reconnect_delay must be > 0")
	}
	if c.MarketData.BufferSize < 1 {
		return errors.New("market_data.buffer_size must be >= 1")
	}

	if c.Recorder.Enabled {
		if err := c.Recorder.Database.validate("recorder.database"); err != nil {
			return err
		}
		if c.Recorder.BatchSize < 1 {
			return errors.New("recorder.batch_size must be >= 1")
		}
	}

	return nil
}

func validateWSURL(field, url string) error {
	if url == "" {
		return fmt.Errorf("%s is required", field)
	}
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		return fmt.Errorf("%s must be a ws:// or wss:// URL, got %q", field, url)
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
	}
	return nil
}
