// Package codec implements the wire codec for the order-entry event stream.
//
// Frames are JSON objects tagged by a required "type" field. Inbound frames
// decode to one of the Engine variants (order ack, cancel ack, execution
// report); outbound frames encode from one of the Outgoing variants (order
// request, cancel request, heartbeat). The codec is pure: no connection or
// book state is touched here.
package codec
