package tui

import (
	"path/filepath"
	"testing"

	"github.com/synnax/cwstate/internal/chains"
	"github.com/synnax/cwstate/internal/history"
	"github.com/synnax/cwstate/internal/state"
)

// CreateTestModel creates a Model instance for testing with minimal dependencies
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	mgr, err := history.NewManager(dbPath)
	if err != nil {
		t.Fatalf("Failed to create history manager: %v", err)
	}
	t.Cleanup(func() {
		mgr.Close()
	})

	chain := chains.Chain{Prefix: "test", LCD: "http://localhost:1317"}
	m := New("test1contract", chain, mgr, "test-version")
	m.width = 120
	m.height = 40
	m.updateViewportSizes()
	return m
}

// LoadTestTree installs a state tree into the model as if it had been fetched
func LoadTestTree(t *testing.T, m *Model, tree *state.Tree) {
	t.Helper()

	m.loading = false
	m.tree = tree
	m.nav = NewNavigator(tree)
	m.updateValueView()
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error, got nil")
	}
}
