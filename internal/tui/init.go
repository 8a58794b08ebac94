package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/synnax/cwstate/internal/chains"
	"github.com/synnax/cwstate/internal/config"
	"github.com/synnax/cwstate/internal/history"
)

// Run starts the TUI for the given contract and blocks until the user quits.
func Run(address string, chain chains.Chain, version string) error {
	if err := config.Initialize(); err != nil {
		return err
	}

	// Browse history is best-effort: the browser works without the database.
	mgr, err := history.NewManager(config.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: browse history disabled: %v\n", err)
		mgr = nil
	}

	m := New(address, chain, mgr, version)
	defer m.Cleanup()

	// Mouse is disabled by default in bubbletea
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
