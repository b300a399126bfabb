// Package identity persists the numeric client identity across restarts.
//
// The engine addresses the event stream by client id. The id is minted once
// in a bounded range, written to a state file, and reloaded on every start,
// so a restarted client keeps receiving events for its resting orders.
package identity

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Bounds for freshly minted client ids.
const (
	MinClientID = 100
	MaxClientID = 1_000_000
)

// LoadOrCreate returns the client id stored at path, minting and persisting
// a new one when the file does not exist.
func LoadOrCreate(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		id, perr := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		if perr != nil {
			return 0, fmt.Errorf("parse client id file %s: %w", path, perr)
		}
		return id, nil
	}
	if !os.IsNotExist(err) {
		return 0, fmt.Errorf("read client id file: %w", err)
	}

	return Reset(path)
}

// Reset mints a new client id and persists it, replacing any existing one.
func Reset(path string) (int64, error) {
	id := MinClientID + rand.Int64N(MaxClientID-MinClientID)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create state dir: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(strconv.FormatInt(id, 10)+"\n"), 0o644); err != nil {
		return 0, fmt.Errorf("write client id file: %w", err)
	}

	return id, nil
}
