package state

import (
	"github.com/robdev/me-client/internal/codec"
	"github.com/robdev/me-client/internal/model"
)

// Apply reconciles one decoded engine event against the two derived
// collections and returns their successors. Inputs are never mutated.
//
// Rules:
//   - OrderAck inserts a resting order keyed by order id; a duplicate ack
//     overwrites (last ack wins).
//   - CancelAck removes the matching order; no match is a no-op.
//   - ExecutionReport reduces the matching order's quantity, removing it at
//     zero or below, and always appends one closed trade, even when no
//     resting order matches (the engine may report fills for orders this
//     client never saw acknowledged).
func Apply(msg codec.Engine, open map[int64]model.OpenOrder, closed []model.ClosedTrade) (map[int64]model.OpenOrder, []model.ClosedTrade) {
	switch m := msg.(type) {
	case codec.OrderAck:
		next := cloneOpen(open)
		next[m.OrderID] = model.OpenOrder{
			OrderID:    m.OrderID,
			ClientID:   m.ClientID,
			Instrument: m.Instrument,
			Side:       m.Side,
			Px:         m.Px,
			Qty:        m.Qty,
		}
		return next, closed

	case codec.CancelAck:
		if _, ok := open[m.OrderID]; !ok {
			return open, closed
		}
		next := cloneOpen(open)
		delete(next, m.OrderID)
		return next, closed

	case codec.ExecutionReport:
		next := open
		var side model.Side

		if order, ok := open[m.OrderID]; ok {
			side = order.Side
			next = cloneOpen(open)
			if remaining := order.Qty - m.ExecQty; remaining > 0 {
				order.Qty = remaining
				next[m.OrderID] = order
			} else {
				delete(next, m.OrderID)
			}
		}

		trade := model.ClosedTrade{
			OrderID:    m.OrderID,
			ClientID:   m.ClientID,
			Instrument: m.Instrument,
			Side:       side,
			Px:         m.ExecPx,
			Qty:        m.ExecQty,
			ExecNS:     m.ExecNS,
		}
		return next, appendTrade(closed, trade)
	}

	return open, closed
}

// cloneOpen copies the open-order map so callers holding the previous
// collection never observe the new state.
func cloneOpen(open map[int64]model.OpenOrder) map[int64]model.OpenOrder {
	next := make(map[int64]model.OpenOrder, len(open)+1)
	for id, order := range open {
		next[id] = order
	}
	return next
}

// appendTrade appends into a fresh slice rather than the shared backing
// array, keeping earlier snapshots of the log intact.
func appendTrade(closed []model.ClosedTrade, trade model.ClosedTrade) []model.ClosedTrade {
	next := make([]model.ClosedTrade, len(closed), len(closed)+1)
	copy(next, closed)
	return append(next, trade)
}
