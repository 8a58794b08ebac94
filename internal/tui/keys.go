package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/synnax/cwstate/internal/history"
	"github.com/synnax/cwstate/internal/lcd"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeRecents:
		return m.handleRecentsKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keyboard input in the main browse view
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.Cleanup()
		return tea.Quit

	case "up", "k":
		if m.nav != nil {
			m.nav.Prev()
			m.updateValueView()
		}

	case "down", "j":
		if m.nav != nil {
			m.nav.Next()
			m.updateValueView()
		}

	case "left", "h":
		if m.nav != nil {
			m.nav.Left()
		}

	case "right", "l":
		if m.nav != nil {
			m.nav.Right()
		}

	case "pgup":
		m.valueView.HalfViewUp()

	case "pgdown":
		m.valueView.HalfViewDown()

	case "y":
		return m.yankValue()

	case "Y":
		return m.yankPath()

	case "f":
		if m.nav != nil {
			m.mode = ModeFilter
			m.filterInput = m.filterApplied
		}

	case "F":
		// Drop the active filter without entering the prompt.
		if m.filterApplied != "" {
			m.filterApplied = ""
			m.filterError = ""
			m.statusMsg = "Filter cleared"
			m.updateValueView()
		}

	case "r":
		if !m.loading {
			m.loading = true
			m.statusMsg = "Refreshing..."
			return m.fetchStateCmd()
		}

	case "o":
		if m.historyMgr != nil {
			return m.loadRecentsCmd()
		}
		m.statusMsg = "History unavailable"

	case "?":
		m.mode = ModeHelp
		m.updateHelpView()
	}

	return nil
}

// handleHelpKeys handles keyboard input in the help screen
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "?":
		m.mode = ModeNormal
	case "up", "k":
		m.helpView.LineUp(1)
	case "down", "j":
		m.helpView.LineDown(1)
	case "pgup":
		m.helpView.HalfViewUp()
	case "pgdown":
		m.helpView.HalfViewDown()
	}
	return nil
}

// handleFilterKeys handles the JMESPath filter prompt
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.filterInput = ""

	case "enter":
		m.mode = ModeNormal
		m.filterApplied = strings.TrimSpace(m.filterInput)
		m.filterInput = ""
		if m.filterApplied == "" {
			m.statusMsg = "Filter cleared"
		} else {
			m.statusMsg = fmt.Sprintf("Filter: %s", m.filterApplied)
		}
		m.updateValueView()

	case "backspace":
		if len(m.filterInput) > 0 {
			m.filterInput = m.filterInput[:len(m.filterInput)-1]
		}

	default:
		if msg.Type == tea.KeyRunes {
			m.filterInput += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.filterInput += " "
		}
	}
	return nil
}

// handleRecentsKeys handles keyboard input in the recents modal
func (m *Model) handleRecentsKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "o":
		m.mode = ModeNormal

	case "up", "k":
		if len(m.recents) > 0 {
			m.recentsIndex--
			if m.recentsIndex < 0 {
				m.recentsIndex = len(m.recents) - 1
			}
		}

	case "down", "j":
		if len(m.recents) > 0 {
			m.recentsIndex = (m.recentsIndex + 1) % len(m.recents)
		}

	case "enter":
		if len(m.recents) == 0 {
			return nil
		}
		return m.openRecent(m.recents[m.recentsIndex])

	case "x":
		if m.historyMgr != nil {
			if err := m.historyMgr.Clear(); err != nil {
				m.errorMsg = fmt.Sprintf("history: %v", err)
			} else {
				m.recents = nil
				m.statusMsg = "History cleared"
			}
		}
	}
	return nil
}

// openRecent switches the browser to a previously loaded contract.
func (m *Model) openRecent(entry history.Entry) tea.Cmd {
	if entry.LCD != m.chain.LCD {
		// Different chain: the current block subscription is meaningless.
		if m.subCancel != nil {
			m.subCancel()
			m.subCancel = nil
		}
		m.subscriber = nil
		m.blockEvents = nil
		m.chain.RPC = ""
		m.chain.Prefix = ""
	}

	m.address = entry.Address
	m.chain.LCD = entry.LCD
	m.client = lcd.NewClient(entry.LCD)
	m.heightAtLoad = 0
	m.latestHeight = 0
	m.filterApplied = ""
	m.filterError = ""
	m.mode = ModeNormal
	m.loading = true
	m.statusMsg = fmt.Sprintf("Loading %s...", entry.Address)
	return m.fetchStateCmd()
}

// yankValue copies the resolved value (after any filter) to the clipboard.
func (m *Model) yankValue() tea.Cmd {
	if m.nav == nil {
		return nil
	}
	value, ok := m.nav.ResolvedValue()
	if !ok {
		m.statusMsg = "Nothing selected to copy"
		return nil
	}
	if display, err := m.filteredValue(value); err == nil {
		value = display
	}
	if err := clipboard.WriteAll(value); err != nil {
		m.errorMsg = fmt.Sprintf("clipboard: %v", err)
		return nil
	}
	m.statusMsg = "Value copied to clipboard"
	return nil
}

// yankPath copies the selected key path to the clipboard.
func (m *Model) yankPath() tea.Cmd {
	if m.nav == nil {
		return nil
	}
	path := m.nav.SelectedPath()
	if len(path) == 0 {
		m.statusMsg = "Nothing selected to copy"
		return nil
	}
	if err := clipboard.WriteAll(strings.Join(path, ".")); err != nil {
		m.errorMsg = fmt.Sprintf("clipboard: %v", err)
		return nil
	}
	m.statusMsg = "Key path copied to clipboard"
	return nil
}
