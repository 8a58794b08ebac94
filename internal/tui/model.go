package tui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/synnax/cwstate/internal/chains"
	"github.com/synnax/cwstate/internal/history"
	"github.com/synnax/cwstate/internal/lcd"
	"github.com/synnax/cwstate/internal/rpc"
	"github.com/synnax/cwstate/internal/state"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
	ModeFilter
	ModeRecents
)

// Model represents the TUI state
type Model struct {
	// Core state
	address    string
	chain      chains.Chain
	client     *lcd.Client
	subscriber *rpc.Subscriber // nil when the chain has no RPC endpoint
	historyMgr *history.Manager
	version    string
	mode       Mode

	// Loaded snapshot
	tree *state.Tree
	info *lcd.ContractInfo
	nav  *Navigator

	// Value pane
	valueView viewport.Model
	helpView  viewport.Model

	// Filter state
	filterInput   string // expression being typed
	filterApplied string // expression in effect on the value pane
	filterError   string

	// Recents modal state
	recents      []history.Entry
	recentsIndex int

	// Staleness tracking
	blockEvents  <-chan rpc.BlockEvent
	subCancel    context.CancelFunc
	heightAtLoad int64
	latestHeight int64

	// UI state
	width     int
	height    int
	loading   bool
	statusMsg string
	errorMsg  string
}

// New creates a model for browsing the given contract.
func New(address string, chain chains.Chain, historyMgr *history.Manager, version string) *Model {
	m := &Model{
		address:    address,
		chain:      chain,
		client:     lcd.NewClient(chain.LCD),
		historyMgr: historyMgr,
		version:    version,
		loading:    true,
	}
	if chain.RPC != "" {
		if sub, err := rpc.NewSubscriber(chain.RPC); err == nil {
			m.subscriber = sub
		}
	}
	return m
}

// Init starts the initial state fetch and the block subscription.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchStateCmd()}
	if m.subscriber != nil {
		cmds = append(cmds, m.subscribeCmd())
	}
	return tea.Batch(cmds...)
}

// Cleanup releases the block subscription and database handle.
func (m *Model) Cleanup() {
	if m.subCancel != nil {
		m.subCancel()
	}
	if m.historyMgr != nil {
		if err := m.historyMgr.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing history database: %v\n", err)
		}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSizes()
		m.updateValueView()

	case stateLoadedMsg:
		m.loading = false
		m.tree = msg.tree
		m.info = msg.info
		m.nav = NewNavigator(msg.tree)
		m.heightAtLoad = m.latestHeight
		m.errorMsg = ""
		m.statusMsg = fmt.Sprintf("Loaded %d state models", msg.modelCount)
		m.updateValueView()
		if m.historyMgr != nil {
			label := ""
			if m.info != nil {
				label = m.info.Label
			}
			if err := m.historyMgr.Save(m.address, label, m.chain.LCD, msg.modelCount); err != nil {
				m.errorMsg = fmt.Sprintf("history: %v", err)
			}
		}

	case subscribedMsg:
		m.blockEvents = msg.events
		cmd = m.waitForBlockCmd()

	case blockMsg:
		m.latestHeight = int64(msg)
		if m.heightAtLoad == 0 {
			m.heightAtLoad = m.latestHeight
		}
		cmd = m.waitForBlockCmd()

	case blockStreamClosedMsg:
		// Staleness indicator degrades silently.
		m.blockEvents = nil

	case recentsLoadedMsg:
		m.recents = msg.entries
		m.recentsIndex = 0
		m.mode = ModeRecents

	case errorMsg:
		m.loading = false
		m.errorMsg = string(msg)
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeRecents:
		return m.renderRecents()
	default:
		return m.renderMain()
	}
}

// Custom message types
type stateLoadedMsg struct {
	tree       *state.Tree
	info       *lcd.ContractInfo
	modelCount int
}

type subscribedMsg struct {
	events <-chan rpc.BlockEvent
}

type blockMsg int64

type blockStreamClosedMsg struct{}

type recentsLoadedMsg struct {
	entries []history.Entry
}

type errorMsg string

// fetchStateCmd loads contract info and full state off the update loop.
func (m *Model) fetchStateCmd() tea.Cmd {
	client := m.client
	address := m.address
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lcd.DefaultTimeout)
		defer cancel()

		info, err := client.ContractInfo(ctx, address)
		if err != nil {
			return errorMsg(err.Error())
		}
		models, err := client.ContractState(ctx, address)
		if err != nil {
			return errorMsg(err.Error())
		}
		return stateLoadedMsg{
			tree:       state.Decode(models),
			info:       info,
			modelCount: len(models),
		}
	}
}

// subscribeCmd opens the NewBlock subscription.
func (m *Model) subscribeCmd() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.subCancel = cancel
	sub := m.subscriber
	return func() tea.Msg {
		events, err := sub.Subscribe(ctx)
		if err != nil {
			return blockStreamClosedMsg{}
		}
		return subscribedMsg{events: events}
	}
}

// waitForBlockCmd delivers the next block event as a message.
func (m *Model) waitForBlockCmd() tea.Cmd {
	events := m.blockEvents
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return blockStreamClosedMsg{}
		}
		return blockMsg(ev.Height)
	}
}

// loadRecentsCmd reads the browse history for the recents modal.
func (m *Model) loadRecentsCmd() tea.Cmd {
	mgr := m.historyMgr
	return func() tea.Msg {
		if mgr == nil {
			return recentsLoadedMsg{}
		}
		entries, err := mgr.Recent(20)
		if err != nil {
			return errorMsg(fmt.Sprintf("history: %v", err))
		}
		return recentsLoadedMsg{entries: entries}
	}
}

// blocksBehind reports how many blocks the chain has produced since
// the snapshot was loaded.
func (m *Model) blocksBehind() int64 {
	if m.heightAtLoad == 0 || m.latestHeight <= m.heightAtLoad {
		return 0
	}
	return m.latestHeight - m.heightAtLoad
}
