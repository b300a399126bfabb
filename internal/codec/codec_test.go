package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/robdev/me-client/internal/model"
)

func TestDecode_OrderAck(t *testing.T) {
	data := `{"type":"ApiOrderAckResponse","order_id":7,"client_id":42,"instrument":"BTCUSD","side":"buy","px":100,"qty":25,"ack_time":1700000000000000000}`

	msg, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	ack, ok := msg.(OrderAck)
	if !ok {
		t.Fatalf("Decode returned %T, want OrderAck", msg)
	}
	if ack.OrderID != 7 {
		t.Errorf("OrderID = %d, want 7", ack.OrderID)
	}
	if ack.Side != model.SideBuy {
		t.Errorf("Side = %q, want buy", ack.Side)
	}
	if ack.Qty != 25 {
		t.Errorf("Qty = %d, want 25", ack.Qty)
	}
}

func TestDecode_CancelAck(t *testing.T) {
	data := `{"type":"ApiCancelOrderAckResponse","order_id":7,"client_id":42,"instrument":"BTCUSD","cancel_order_status":"cancelled","reason":"user","ack_time":1}`

	msg, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	cancel, ok := msg.(CancelAck)
	if !ok {
		t.Fatalf("Decode returned %T, want CancelAck", msg)
	}
	if cancel.CancelStatus != "cancelled" {
		t.Errorf("CancelStatus = %q, want cancelled", cancel.CancelStatus)
	}
}

func TestDecode_ExecutionReport(t *testing.T) {
	data := `{"type":"ApiExecutionReportResponse","order_id":7,"client_id":42,"instrument":"BTCUSD","fill_type":"partial","exec_px":100,"exec_qty":10,"exec_type":"fill","exec_ns":1700000000000000000}`

	msg, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	report, ok := msg.(ExecutionReport)
	if !ok {
		t.Fatalf("Decode returned %T, want ExecutionReport", msg)
	}
	if report.ExecQty != 10 {
		t.Errorf("ExecQty = %d, want 10", report.ExecQty)
	}
	if report.ExecNS != 1700000000000000000 {
		t.Errorf("ExecNS = %d, want 1700000000000000000", report.ExecNS)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"missing discriminator", `{"order_id":1,"qty":5}`},
		{"unknown type", `{"type":"ApiSomethingElse","order_id":1}`},
		{"null type", `{"type":null}`},
		{"ack missing order_id", `{"type":"ApiOrderAckResponse","client_id":1,"instrument":"BTCUSD","side":"buy","px":1,"qty":1}`},
		{"ack bad side", `{"type":"ApiOrderAckResponse","order_id":1,"client_id":1,"instrument":"BTCUSD","side":"hold","px":1,"qty":1}`},
		{"ack zero qty", `{"type":"ApiOrderAckResponse","order_id":1,"client_id":1,"instrument":"BTCUSD","side":"buy","px":1,"qty":0}`},
		{"cancel missing instrument", `{"type":"ApiCancelOrderAckResponse","order_id":1,"client_id":1}`},
		{"report zero exec_qty", `{"type":"ApiExecutionReportResponse","order_id":1,"client_id":1,"instrument":"BTCUSD","exec_px":1,"exec_qty":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestEncode_Outgoing(t *testing.T) {
	tests := []struct {
		name     string
		msg      Outgoing
		wantType string
	}{
		{
			name: "order request",
			msg: OrderRequest{
				ClientID:    42,
				Instrument:  "BTCUSD",
				Side:        model.SideSell,
				Px:          101,
				Qty:         5,
				TimeInForce: "GTC",
			},
			wantType: `"type":"ApiOrderRequest"`,
		},
		{
			name: "cancel request",
			msg: OrderCancelRequest{
				ClientID:   42,
				Instrument: "BTCUSD",
				OrderID:    7,
			},
			wantType: `"type":"ApiOrderCancelRequest"`,
		},
		{
			name:     "heartbeat",
			msg:      Heartbeat{},
			wantType: `"type":"Heartbeat"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.msg)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !strings.Contains(string(data), tt.wantType) {
				t.Errorf("Encode() = %s, want discriminator %s", data, tt.wantType)
			}
		})
	}
}

func TestEncode_HeartbeatHasNoPayload(t *testing.T) {
	data, err := Encode(Heartbeat{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(data) != `{"type":"Heartbeat"}` {
		t.Errorf("Encode(Heartbeat) = %s, want {\"type\":\"Heartbeat\"}", data)
	}
}

func TestRoundTrip_Engine(t *testing.T) {
	tests := []struct {
		name string
		msg  Engine
	}{
		{
			name: "order ack",
			msg: OrderAck{
				OrderID:    7,
				ClientID:   42,
				Instrument: "BTCUSD",
				Side:       model.SideBuy,
				Px:         100,
				Qty:        25,
				AckTime:    1700000000000000000,
			},
		},
		{
			name: "cancel ack",
			msg: CancelAck{
				OrderID:      7,
				ClientID:     42,
				Instrument:   "BTCUSD",
				CancelStatus: "cancelled",
				Reason:       "user requested",
				AckTime:      1700000000000000001,
			},
		},
		{
			name: "execution report",
			msg: ExecutionReport{
				OrderID:    7,
				ClientID:   42,
				Instrument: "BTCUSD",
				FillType:   "partial",
				ExecPx:     100,
				ExecQty:    10,
				ExecType:   "fill",
				ExecNS:     1700000000000000002,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEngine(tt.msg)
			if err != nil {
				t.Fatalf("EncodeEngine failed: %v", err)
			}

			decoded, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if !reflect.DeepEqual(decoded, tt.msg) {
				t.Errorf("round trip = %+v, want %+v", decoded, tt.msg)
			}
		})
	}
}
