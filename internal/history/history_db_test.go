package history

import (
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManager_SaveAndRecent(t *testing.T) {
	m := newTestManager(t)

	if err := m.Save("ki1abc", "cw20 token", "https://api-mainnet.blockchain.ki", 42); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := m.Save("osmo1def", "", "https://lcd.osmosis.zone", 7); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := m.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Address != "osmo1def" {
		t.Errorf("first entry = %s, want osmo1def", entries[0].Address)
	}
	if entries[1].Label != "cw20 token" || entries[1].ModelCount != 42 {
		t.Errorf("entry = %+v", entries[1])
	}
}

func TestManager_RecentDeduplicatesByAddress(t *testing.T) {
	m := newTestManager(t)

	for i := 0; i < 3; i++ {
		if err := m.Save("ki1abc", "token", "https://api-mainnet.blockchain.ki", i); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := m.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ModelCount != 2 {
		t.Errorf("kept model_count %d, want latest (2)", entries[0].ModelCount)
	}
}

func TestManager_RecentLimit(t *testing.T) {
	m := newTestManager(t)

	addresses := []string{"ki1a", "ki1b", "ki1c"}
	for _, addr := range addresses {
		if err := m.Save(addr, "", "lcd", 1); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := m.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestManager_Clear(t *testing.T) {
	m := newTestManager(t)

	if err := m.Save("ki1abc", "", "lcd", 1); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err := m.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries after clear, want 0", len(entries))
	}
}
