package model

import "time"

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OpenOrder is a resting order acknowledged by the engine and not yet
// fully filled or cancelled. At most one live entry exists per OrderID.
type OpenOrder struct {
	OrderID    int64  // Engine-assigned order id (unique within the book)
	ClientID   int64  // Owning client
	Instrument string // Instrument symbol (e.g., "BTCUSD")
	Side       Side   // "buy" or "sell"
	Px         int64  // Limit price in ticks
	Qty        int64  // Remaining quantity, always > 0 while resting
}

// ClosedTrade is one executed fill. The trade log is append-only and
// ordered by arrival, not by engine timestamp.
type ClosedTrade struct {
	OrderID    int64  // Originating order
	ClientID   int64  // Owning client
	Instrument string // Instrument symbol
	Side       Side   // Carried through from the resting order; empty if unknown
	Px         int64  // Execution price in ticks
	Qty        int64  // Executed quantity
	ExecNS     int64  // Engine execution time (ns since epoch)
}

// NsToTime converts an engine nanosecond timestamp to a time.Time.
func NsToTime(ns int64) time.Time {
	return time.Unix(0, ns)
}
