package identity

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreate_MintsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "client_id")

	id, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if id < MinClientID || id >= MaxClientID {
		t.Errorf("minted id %d outside [%d, %d)", id, MinClientID, MaxClientID)
	}

	// A second load returns the same id, not a fresh one.
	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("second LoadOrCreate failed: %v", err)
	}
	if again != id {
		t.Errorf("reloaded id = %d, want %d", again, id)
	}
}

func TestLoadOrCreate_ReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client_id")
	if err := os.WriteFile(path, []byte("12345\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	id, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if id != 12345 {
		t.Errorf("id = %d, want 12345", id)
	}
}

func TestLoadOrCreate_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client_id")
	if err := os.WriteFile(path, []byte("not a number"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOrCreate(path); err == nil {
		t.Error("expected error for corrupt id file")
	}
}

func TestReset_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client_id")

	if _, err := Reset(path); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	second, err := Reset(path)
	if err != nil {
		t.Fatalf("second Reset failed: %v", err)
	}

	loaded, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if loaded != second {
		t.Errorf("loaded id = %d, want the most recent %d", loaded, second)
	}
}
