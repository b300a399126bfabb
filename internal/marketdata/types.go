package marketdata

import "time"

// MaxDepth is the number of price levels and tape entries carried per side.
const MaxDepth = 10

// PriceLevel is one rung of the depth ladder.
type PriceLevel struct {
	Px  int64 `json:"px"`
	Qty int64 `json:"qty"`
}

// L1 is the top-of-book quote.
type L1 struct {
	BestBid   int64 `json:"best_bid"`
	BestAsk   int64 `json:"best_ask"`
	LastPrice int64 `json:"last_price"`
}

// L2 is the depth ladder, best prices first.
type L2 struct {
	Bids []PriceLevel `json:"bids"`
	Asks []PriceLevel `json:"asks"`
}

// TapeEntry is one recent trade on the public tape.
type TapeEntry struct {
	Px  int64 `json:"px"`
	Qty int64 `json:"qty"`
	TS  int64 `json:"ts"`
}

// Snapshot is a complete market state at a point in time. Snapshots are
// only ever replaced whole, never patched.
type Snapshot struct {
	L1     L1          `json:"l1"`
	L2     L2          `json:"l2"`
	LastPx int64       `json:"last_px"`
	Trades []TapeEntry `json:"trades"`
}

// Config configures the snapshot mirror.
type Config struct {
	URL            string        // Market-data WebSocket URL (unparameterized)
	Reconnect      bool          // Whether to re-establish after closure
	ReconnectDelay time.Duration // Fixed delay before each reconnect attempt
	BufferSize     int           // Inbound frame buffer size
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Reconnect:      true,
		ReconnectDelay: 1 * time.Second,
		BufferSize:     100,
	}
}
