package state

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/robdev/me-client/internal/codec"
	"github.com/robdev/me-client/internal/model"
)

// ChangeBufferSize is the capacity of the Update channel.
const ChangeBufferSize = 1000

// Update describes one applied engine event. Fill is non-nil when the event
// appended a trade to the log.
type Update struct {
	Msg        codec.Engine
	Fill       *model.ClosedTrade
	OpenCount  int
	TradeCount int
}

// Book holds the client's reconciled view of its orders and fills. All
// mutation happens through Apply on the single inbound-frame path; readers
// get copies.
type Book struct {
	logger *slog.Logger

	mu     sync.RWMutex
	open   map[int64]model.OpenOrder
	closed []model.ClosedTrade

	changes chan Update
}

// NewBook creates an empty Book.
func NewBook(logger *slog.Logger) *Book {
	if logger == nil {
		logger = slog.Default()
	}
	return &Book{
		logger:  logger,
		open:    make(map[int64]model.OpenOrder),
		changes: make(chan Update, ChangeBufferSize),
	}
}

// Apply reconciles one engine event and notifies the change channel.
func (b *Book) Apply(msg codec.Engine) {
	b.mu.Lock()
	prevTrades := len(b.closed)
	b.open, b.closed = Apply(msg, b.open, b.closed)

	update := Update{
		Msg:        msg,
		OpenCount:  len(b.open),
		TradeCount: len(b.closed),
	}
	if len(b.closed) > prevTrades {
		fill := b.closed[len(b.closed)-1]
		update.Fill = &fill
	}
	b.mu.Unlock()

	b.notify(update)
}

// OpenOrders returns the resting orders sorted by order id.
func (b *Book) OpenOrders() []model.OpenOrder {
	b.mu.RLock()
	defer b.mu.RUnlock()

	orders := make([]model.OpenOrder, 0, len(b.open))
	for _, order := range b.open {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID < orders[j].OrderID })
	return orders
}

// ClosedTrades returns a copy of the trade log in arrival order.
func (b *Book) ClosedTrades() []model.ClosedTrade {
	b.mu.RLock()
	defer b.mu.RUnlock()

	trades := make([]model.ClosedTrade, len(b.closed))
	copy(trades, b.closed)
	return trades
}

// Changes returns the channel of applied-event notifications. Single
// consumer; slow consumers lose the oldest updates, never the Book itself.
func (b *Book) Changes() <-chan Update {
	return b.changes
}

// notify sends an update without ever blocking the frame path.
func (b *Book) notify(update Update) {
	select {
	case b.changes <- update:
	default:
		// Channel full, drop oldest by consuming one and retrying.
		select {
		case <-b.changes:
		default:
		}
		select {
		case b.changes <- update:
		default:
			b.logger.Warn("change channel full, dropping update")
		}
	}
}
