// Package marketdata implements the read-only market snapshot mirror.
//
// The market-data feed is a separate endpoint from the order-entry event
// stream. Every inbound frame carries a complete snapshot (L1 quote, depth
// ladder, recent tape) and replaces the previous one wholesale; there is no
// incremental merge. Reconnect-on-close is configurable per endpoint; the
// feed is advisory and a client may choose to let it stay down.
package marketdata
