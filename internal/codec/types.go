package codec

import (
	"errors"

	"github.com/robdev/me-client/internal/model"
)

// ErrMalformed marks an inbound frame that is not valid JSON, carries an
// unknown or missing "type" discriminator, or lacks required fields.
var ErrMalformed = errors.New("malformed frame")

// Wire values of the "type" discriminator.
const (
	TypeOrderAck           = "ApiOrderAckResponse"
	TypeCancelAck          = "ApiCancelOrderAckResponse"
	TypeExecutionReport    = "ApiExecutionReportResponse"
	TypeOrderRequest       = "ApiOrderRequest"
	TypeOrderCancelRequest = "ApiOrderCancelRequest"
	TypeHeartbeat          = "Heartbeat"
)

// Engine is an inbound message from the matching engine. The variant set is
// closed: OrderAck, CancelAck, ExecutionReport.
type Engine interface {
	engineMessage()
}

// OrderAck confirms the engine accepted a new order onto the book.
type OrderAck struct {
	OrderID    int64      `json:"order_id"`
	ClientID   int64      `json:"client_id"`
	Instrument string     `json:"instrument"`
	Side       model.Side `json:"side"`
	Px         int64      `json:"px"`
	Qty        int64      `json:"qty"`
	AckTime    int64      `json:"ack_time"`
}

// CancelAck confirms the engine processed a cancel request. Status and
// reason are informational only for the mirror.
type CancelAck struct {
	OrderID      int64  `json:"order_id"`
	ClientID     int64  `json:"client_id"`
	Instrument   string `json:"instrument"`
	CancelStatus string `json:"cancel_order_status"`
	Reason       string `json:"reason"`
	AckTime      int64  `json:"ack_time"`
}

// ExecutionReport notifies that quantity was matched against a resting order.
type ExecutionReport struct {
	OrderID    int64  `json:"order_id"`
	ClientID   int64  `json:"client_id"`
	Instrument string `json:"instrument"`
	FillType   string `json:"fill_type"`
	ExecPx     int64  `json:"exec_px"`
	ExecQty    int64  `json:"exec_qty"`
	ExecType   string `json:"exec_type"`
	ExecNS     int64  `json:"exec_ns"`
}

func (OrderAck) engineMessage()        {}
func (CancelAck) engineMessage()       {}
func (ExecutionReport) engineMessage() {}

// Outgoing is an outbound message to the engine. The variant set is closed:
// OrderRequest, OrderCancelRequest, Heartbeat.
type Outgoing interface {
	outgoingMessage()
}

// OrderRequest submits a new limit order.
type OrderRequest struct {
	ClientID    int64      `json:"client_id"`
	Instrument  string     `json:"instrument"`
	Side        model.Side `json:"side"`
	Px          int64      `json:"px"`
	Qty         int64      `json:"qty"`
	TimeInForce string     `json:"time_in_force"`
}

// OrderCancelRequest asks the engine to pull a resting order.
type OrderCancelRequest struct {
	ClientID   int64  `json:"client_id"`
	Instrument string `json:"instrument"`
	OrderID    int64  `json:"order_id"`
}

// Heartbeat is a no-payload liveness frame.
type Heartbeat struct{}

func (OrderRequest) outgoingMessage()       {}
func (OrderCancelRequest) outgoingMessage() {}
func (Heartbeat) outgoingMessage()          {}
