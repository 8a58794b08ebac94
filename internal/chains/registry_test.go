package chains

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistry_ResolveKnownPrefixes(t *testing.T) {
	reg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		address string
		wantLCD string
	}{
		{"ki1contractaddress", "https://api-mainnet.blockchain.ki"},
		{"tki1contractaddress", "https://api-challenge.blockchain.ki"},
		{"osmo1contractaddress", "https://lcd.osmosis.zone/"},
		{"stars1contractaddress", "https://rest.stargaze-apis.com/"},
	}

	for _, tt := range tests {
		chain, err := reg.Resolve(tt.address)
		if err != nil {
			t.Errorf("Resolve(%s) failed: %v", tt.address, err)
			continue
		}
		if chain.LCD != tt.wantLCD {
			t.Errorf("Resolve(%s).LCD = %s, want %s", tt.address, chain.LCD, tt.wantLCD)
		}
	}
}

func TestRegistry_ResolveLongestPrefixWins(t *testing.T) {
	reg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// "tki" also begins a valid address for the "t..."-less "ki" only
	// if prefix matching were naive; it must pick the testnet chain.
	chain, err := reg.Resolve("tki1abc")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if chain.Prefix != "tki" {
		t.Errorf("Resolve picked prefix %s, want tki", chain.Prefix)
	}
}

func TestRegistry_ResolveUnknownPrefix(t *testing.T) {
	reg, _ := Load("")
	if _, err := reg.Resolve("cosmos1abc"); err == nil {
		t.Error("Resolve accepted unknown prefix")
	}
}

func TestRegistry_LoadUserChains(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chains.yaml")
	content := `
- prefix: cosmos
  lcd: https://lcd.example.com
  rpc: https://rpc.example.com
- prefix: osmo
  lcd: https://lcd.override.example.com
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write chains file: %v", err)
	}

	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	chain, err := reg.Resolve("cosmos1abc")
	if err != nil {
		t.Fatalf("Resolve(cosmos) failed: %v", err)
	}
	if chain.LCD != "https://lcd.example.com" {
		t.Errorf("cosmos LCD = %s", chain.LCD)
	}

	// User entry replaces the built-in osmo chain.
	chain, _ = reg.Resolve("osmo1abc")
	if chain.LCD != "https://lcd.override.example.com" {
		t.Errorf("osmo LCD = %s, want override", chain.LCD)
	}
}

func TestRegistry_LoadMissingFileUsesDefaults(t *testing.T) {
	reg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(reg.All()) != len(Defaults()) {
		t.Errorf("All() = %d chains, want %d", len(reg.All()), len(Defaults()))
	}
}

func TestRegistry_LoadRejectsIncompleteEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chains.yaml")
	if err := os.WriteFile(path, []byte("- prefix: broken\n"), 0644); err != nil {
		t.Fatalf("failed to write chains file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted entry without lcd")
	}
}
