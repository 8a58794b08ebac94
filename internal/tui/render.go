package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/synnax/cwstate/internal/filter"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the dual-pane browse view (keys left, entries and value right)
func (m Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	// Calculate dimensions - even split between the key panes and the value column
	primaryWidth := m.width / 2
	rightWidth := m.width - primaryWidth - 4 // Account for borders

	paneHeight := m.height - 3 // -3 = -1 (status) -2 (borders)
	secondaryHeight := paneHeight * 40 / 100
	if secondaryHeight < 3 {
		secondaryHeight = 3
	}
	valueHeight := paneHeight - secondaryHeight - 2

	primary := m.renderPrimaryPane(primaryWidth-2, paneHeight)
	secondary := m.renderSecondaryPane(rightWidth-2, secondaryHeight)
	value := m.renderValuePane(rightWidth - 2)

	// Highlight the focused pane
	primaryBorderColor := colorGray
	secondaryBorderColor := colorGray
	if m.nav != nil {
		if m.nav.Focus() == PanePrimary {
			primaryBorderColor = colorGreen
		} else {
			secondaryBorderColor = colorGreen
		}
	}

	primaryBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryBorderColor).
		Width(primaryWidth).
		Height(m.height - 3). // Leave 1 line for status bar
		Render(primary)

	secondaryBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryBorderColor).
		Width(rightWidth).
		Height(secondaryHeight).
		Render(secondary)

	valueBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(rightWidth).
		Height(valueHeight).
		Render(value)

	rightColumn := lipgloss.JoinVertical(
		lipgloss.Left,
		secondaryBox,
		valueBox,
	)

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		primaryBox,
		rightColumn,
	)

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		statusBar,
	)
}

// renderPrimaryPane renders the top-level state keys
func (m Model) renderPrimaryPane(width, height int) string {
	title := "Contract State"
	if m.info != nil && m.info.Label != "" {
		title = m.info.Label
	}

	if m.loading {
		return styleTitle.Render(title) + "\n\n" + styleSubtle.Render("Loading contract state...")
	}
	if m.nav == nil {
		return styleTitle.Render(title) + "\n\n" + styleSubtle.Render("No state loaded")
	}

	return m.renderKeyList(title, m.nav.PrimaryKeys(), m.nav.PrimaryIndex(), width, height)
}

// renderSecondaryPane renders the entry keys of the selected map
func (m Model) renderSecondaryPane(width, height int) string {
	if m.nav == nil {
		return styleTitle.Render("Entries")
	}

	keys := m.nav.SecondaryKeys()
	primaryKeys := m.nav.PrimaryKeys()

	title := "Entries"
	if len(primaryKeys) > 0 {
		title = primaryKeys[m.nav.PrimaryIndex()]
	}

	if len(keys) == 0 {
		return styleTitle.Render(title) + "\n\n" + styleSubtle.Render("(single value)")
	}

	return m.renderKeyList(title, keys, m.nav.SecondaryIndex(), width, height)
}

// renderKeyList renders a scrolling key list with the selection highlighted
func (m Model) renderKeyList(title string, keys []string, selected, width, height int) string {
	var lines []string

	lines = append(lines, styleTitle.Render(title))
	lines = append(lines, "")

	pageSize := height - 3
	if pageSize < 1 {
		pageSize = 1
	}

	// Keep the selection on screen
	offset := 0
	if selected >= pageSize {
		offset = selected - pageSize + 1
	}

	endIdx := offset + pageSize
	if endIdx > len(keys) {
		endIdx = len(keys)
	}

	for i := offset; i < endIdx; i++ {
		name := keys[i]
		maxNameLen := width - 4
		if maxNameLen < 10 {
			maxNameLen = 10
		}
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}

		if i == selected {
			lines = append(lines, styleSelected.Render(fmt.Sprintf("> %s", name)))
		} else {
			lines = append(lines, fmt.Sprintf("  %s", name))
		}
	}

	if len(keys) > pageSize {
		lines = append(lines, "")
		lines = append(lines, styleSubtle.Render(fmt.Sprintf("%d/%d", selected+1, len(keys))))
	}

	return strings.Join(lines, "\n")
}

// renderValuePane renders the resolved value viewport
func (m Model) renderValuePane(width int) string {
	title := styleTitle.Render("Value")
	if m.filterApplied != "" {
		title += styleWarning.Render(fmt.Sprintf("  [%s]", m.filterApplied))
	}
	return title + "\n" + m.valueView.View()
}

// updateValueView resolves the current selection and fills the value viewport
func (m *Model) updateValueView() {
	m.filterError = ""

	if m.nav == nil {
		m.valueView.SetContent("")
		return
	}

	value, ok := m.nav.ResolvedValue()
	if !ok {
		m.valueView.SetContent(styleSubtle.Render("NO KEY SELECTED"))
		return
	}

	display := prettyValue(value)
	if m.filterApplied != "" {
		filtered, err := filter.Apply(value, m.filterApplied)
		if err != nil {
			m.filterError = err.Error()
		} else {
			display = filtered
		}
	}

	m.valueView.SetContent(display)
	m.valueView.GotoTop()
}

// filteredValue applies the active filter to a raw value, if any.
func (m *Model) filteredValue(value string) (string, error) {
	if m.filterApplied == "" {
		return value, nil
	}
	return filter.Apply(value, m.filterApplied)
}

// prettyValue indents JSON values; anything else passes through untouched.
func prettyValue(value string) string {
	if !json.Valid([]byte(value)) {
		return value
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(value), "", "  "); err != nil {
		return value
	}
	return buf.String()
}

// updateViewportSizes resizes the viewports after a terminal resize
func (m *Model) updateViewportSizes() {
	rightWidth := m.width - m.width/2 - 4

	paneHeight := m.height - 3
	secondaryHeight := paneHeight * 40 / 100
	if secondaryHeight < 3 {
		secondaryHeight = 3
	}
	valueHeight := paneHeight - secondaryHeight - 2

	m.valueView.Width = rightWidth - 2
	m.valueView.Height = valueHeight - 1 // -1 for the pane title

	m.helpView.Width = m.width - 4
	m.helpView.Height = m.height - 4
}

// renderStatusBar renders the bottom status line
func (m Model) renderStatusBar() string {
	// Left side - contract identity
	left := m.address
	if m.chain.Prefix != "" {
		left = fmt.Sprintf("[%s] %s", m.chain.Prefix, m.address)
	}

	// Right side - messages or input
	right := ""

	switch m.mode {
	case ModeFilter:
		right = fmt.Sprintf("Filter: %s", addCursor(m.filterInput))
	default:
		if behind := m.blocksBehind(); behind > 0 {
			right = styleWarning.Render(fmt.Sprintf("%d blocks behind | ", behind))
		}

		if m.errorMsg != "" {
			right += styleError.Render(m.errorMsg)
		} else if m.filterError != "" {
			right += styleError.Render(m.filterError)
		} else if m.loading {
			right += styleWarning.Render("Loading...")
		} else if m.statusMsg != "" {
			if strings.Contains(m.statusMsg, "Loaded") || strings.Contains(m.statusMsg, "copied") ||
				strings.Contains(m.statusMsg, "cleared") {
				right += styleSuccess.Render(m.statusMsg)
			} else {
				right += m.statusMsg
			}
		} else {
			right += styleSubtle.Render("Press f to filter | ? for help | q to quit")
		}
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// addCursor appends a block cursor to input text
func addCursor(text string) string {
	return text + "█"
}

// updateHelpView fills the help viewport with the keyboard reference
func (m *Model) updateHelpView() {
	helpText := `cwstate ` + m.version + ` - Keyboard Shortcuts

NAVIGATION
  ↑/↓, j/k       Move through the focused key list (wraps around)
  →, l           Focus the entry list of the selected map
  ←, h           Return focus to the top-level keys
  PageUp/Down    Scroll the value pane
  Green border   Shows which key list is focused

VALUE
  y              Copy the displayed value to the clipboard
  Y              Copy the selected key path to the clipboard
  f              Edit the JMESPath filter for the value pane
  F              Clear the active filter

DATA
  r              Re-fetch the contract state
  o              Open a recently browsed contract
  x              Clear browse history (in the recents list)

GENERAL
  ?              Toggle this help
  q, Ctrl+C      Quit

The value pane shows the raw state value for the selected key. When a
JMESPath filter is active it is applied to JSON values; the expression
is shown next to the pane title.

The "blocks behind" indicator counts blocks produced since the state
snapshot was loaded. Press r to load a fresh snapshot.`

	m.helpView.SetContent(helpText)
	m.helpView.GotoTop()
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.helpView.View())
	return box
}

// renderRecents renders the browse history modal
func (m Model) renderRecents() string {
	var lines []string

	lines = append(lines, styleTitle.Render("Recent Contracts"))
	lines = append(lines, "")

	if len(m.recents) == 0 {
		lines = append(lines, styleSubtle.Render("No browse history"))
	}

	for i, entry := range m.recents {
		label := entry.Label
		if label == "" {
			label = "(no label)"
		}
		line := fmt.Sprintf("%s  %s  %d models  %s",
			entry.Address, label, entry.ModelCount,
			entry.BrowsedAt.Format("2006-01-02 15:04"))
		if i == m.recentsIndex {
			lines = append(lines, styleSelected.Render(fmt.Sprintf("> %s", line)))
		} else {
			lines = append(lines, fmt.Sprintf("  %s", line))
		}
	}

	lines = append(lines, "")
	lines = append(lines, styleSubtle.Render("Enter to open | x to clear | ESC to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(strings.Join(lines, "\n"))
	return box
}
