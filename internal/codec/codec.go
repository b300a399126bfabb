package codec

import (
	"encoding/json"
	"fmt"
)

// envelope is used for fast discriminator extraction.
type envelope struct {
	Type *string `json:"type"`
}

// Decode parses one inbound frame into its Engine variant.
func Decode(data []byte) (Engine, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Type == nil {
		return nil, fmt.Errorf("%w: missing type discriminator", ErrMalformed)
	}

	switch *env.Type {
	case TypeOrderAck:
		var msg OrderAck
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, TypeOrderAck, err)
		}
		if msg.OrderID == 0 || msg.Instrument == "" || !msg.Side.Valid() || msg.Qty <= 0 {
			return nil, fmt.Errorf("%w: %s: required field missing", ErrMalformed, TypeOrderAck)
		}
		return msg, nil

	case TypeCancelAck:
		var msg CancelAck
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, TypeCancelAck, err)
		}
		if msg.OrderID == 0 || msg.Instrument == "" {
			return nil, fmt.Errorf("%w: %s: required field missing", ErrMalformed, TypeCancelAck)
		}
		return msg, nil

	case TypeExecutionReport:
		var msg ExecutionReport
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, TypeExecutionReport, err)
		}
		if msg.OrderID == 0 || msg.Instrument == "" || msg.ExecQty <= 0 {
			return nil, fmt.Errorf("%w: %s: required field missing", ErrMalformed, TypeExecutionReport)
		}
		return msg, nil
	}

	return nil, fmt.Errorf("%w: unknown type %q", ErrMalformed, *env.Type)
}

// Encode serializes one outbound message. Encoding is total: every Outgoing
// value serializes successfully.
func Encode(msg Outgoing) ([]byte, error) {
	switch m := msg.(type) {
	case OrderRequest:
		return json.Marshal(struct {
			Type string `json:"type"`
			OrderRequest
		}{TypeOrderRequest, m})
	case OrderCancelRequest:
		return json.Marshal(struct {
			Type string `json:"type"`
			OrderCancelRequest
		}{TypeOrderCancelRequest, m})
	case Heartbeat:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{TypeHeartbeat})
	}
	return nil, fmt.Errorf("unhandled outgoing message %T", msg)
}

// EncodeEngine serializes an inbound-shaped message. The engine is the
// producer of these frames in production; this direction exists for tools
// and tests, and round-trips through Decode.
func EncodeEngine(msg Engine) ([]byte, error) {
	switch m := msg.(type) {
	case OrderAck:
		return json.Marshal(struct {
			Type string `json:"type"`
			OrderAck
		}{TypeOrderAck, m})
	case CancelAck:
		return json.Marshal(struct {
			Type string `json:"type"`
			CancelAck
		}{TypeCancelAck, m})
	case ExecutionReport:
		return json.Marshal(struct {
			Type string `json:"type"`
			ExecutionReport
		}{TypeExecutionReport, m})
	}
	return nil, fmt.Errorf("unhandled engine message %T", msg)
}
