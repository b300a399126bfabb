// Package connection implements the Connection Manager for the order-entry
// event stream.
//
// The manager:
//   - Owns one logical WebSocket connection, addressed by client id
//   - Decodes inbound engine events and applies them to the Book
//   - Sends a heartbeat frame on a fixed interval while the connection is open
//   - Recovers from closure or transport error with a fixed-delay reconnect,
//     retrying indefinitely
//   - Gateways outbound order actions onto the same connection, dropping
//     sends attempted while no connection is open
package connection
