package connection

import (
	"errors"

	"github.com/robdev/me-client/internal/codec"
)

// Send encodes one outbound message and writes it to the connection.
// At-most-once, fire-and-forget: when no open connection exists the message
// is dropped and ErrNotReady returned. A write failure on an apparently open
// connection closes it, which triggers the normal reconnect path.
func (m *manager) Send(msg codec.Outgoing) error {
	data, err := codec.Encode(msg)
	if err != nil {
		return err
	}

	m.mu.RLock()
	cli := m.client
	m.mu.RUnlock()

	if cli == nil || !cli.IsConnected() {
		return ErrNotReady
	}

	if err := cli.Send(data); err != nil {
		if errors.Is(err, ErrNotConnected) {
			// Connection closed between the check and the write.
			return ErrNotReady
		}
		m.logger.Warn("send failed, closing connection", "error", err)
		m.recover(cli)
		return ErrNotReady
	}

	return nil
}
