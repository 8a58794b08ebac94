package tui

import "github.com/synnax/cwstate/internal/state"

// Pane identifies which key list currently receives move commands.
type Pane int

const (
	PanePrimary   Pane = iota // top-level state keys
	PaneSecondary             // entry keys of the selected map
)

// noSelection is the cursor value for an empty list.
const noSelection = -1

// Navigator owns the dual-pane cursor state over a loaded state tree.
//
// The primary cursor walks the tree's top-level keys. The secondary
// list is a lazy projection of the selected primary entry: its entry
// keys when that entry is a map, empty otherwise. Moving the primary
// cursor always rebuilds the secondary list and resets its cursor to
// the first entry; moving the secondary cursor never touches the
// primary. Focus can only sit on the secondary pane while the
// secondary list is non-empty.
//
// The tree reference is read-only and shared; the navigator never
// mutates it. All methods are synchronous and driven by the single
// Bubble Tea update loop, so no locking is needed.
type Navigator struct {
	tree *state.Tree

	primaryKeys []string
	primaryIdx  int

	secondaryKeys []string
	secondaryIdx  int

	focus Pane
}

// NewNavigator builds a navigator positioned on the first top-level
// key, with the secondary list derived from it.
func NewNavigator(tree *state.Tree) *Navigator {
	n := &Navigator{
		tree:         tree,
		primaryKeys:  tree.Keys(),
		primaryIdx:   noSelection,
		secondaryIdx: noSelection,
		focus:        PanePrimary,
	}
	if len(n.primaryKeys) > 0 {
		n.primaryIdx = 0
		n.refreshSecondary()
	}
	return n
}

// refreshSecondary rebuilds the secondary list from the current
// primary selection. The selection resets to the first entry; a prior
// secondary position is deliberately not preserved.
func (n *Navigator) refreshSecondary() {
	n.secondaryKeys = nil
	n.secondaryIdx = noSelection

	if n.primaryIdx == noSelection {
		return
	}
	v, ok := n.tree.Get(n.primaryKeys[n.primaryIdx])
	if !ok {
		return
	}
	if m, isMap := v.(*state.Map); isMap && m.Len() > 0 {
		n.secondaryKeys = m.Keys()
		n.secondaryIdx = 0
	}
}

// Next moves the focused cursor down, wrapping past the end.
func (n *Navigator) Next() {
	n.move(1)
}

// Prev moves the focused cursor up, wrapping past the start.
func (n *Navigator) Prev() {
	n.move(-1)
}

func (n *Navigator) move(delta int) {
	if n.focus == PanePrimary {
		length := len(n.primaryKeys)
		if length == 0 {
			return
		}
		n.primaryIdx = ((n.primaryIdx+delta)%length + length) % length
		n.refreshSecondary()
		return
	}

	length := len(n.secondaryKeys)
	if length == 0 {
		return
	}
	n.secondaryIdx = ((n.secondaryIdx+delta)%length + length) % length
}

// Right moves focus to the secondary pane. Rejected when the current
// primary entry has nothing to drill into.
func (n *Navigator) Right() {
	if n.focus == PanePrimary && len(n.secondaryKeys) > 0 {
		n.focus = PaneSecondary
	}
}

// Left moves focus back to the primary pane.
func (n *Navigator) Left() {
	n.focus = PanePrimary
}

// Focus returns the pane currently receiving move commands.
func (n *Navigator) Focus() Pane {
	return n.focus
}

// PrimaryKeys returns a copy of the top-level key list.
func (n *Navigator) PrimaryKeys() []string {
	keys := make([]string, len(n.primaryKeys))
	copy(keys, n.primaryKeys)
	return keys
}

// PrimaryIndex returns the primary cursor, or -1 for an empty tree.
func (n *Navigator) PrimaryIndex() int {
	return n.primaryIdx
}

// SecondaryKeys returns a copy of the derived entry-key list.
func (n *Navigator) SecondaryKeys() []string {
	keys := make([]string, len(n.secondaryKeys))
	copy(keys, n.secondaryKeys)
	return keys
}

// SecondaryIndex returns the secondary cursor, or -1 when the
// secondary list is empty.
func (n *Navigator) SecondaryIndex() int {
	return n.secondaryIdx
}

// ResolvedValue follows the current selection to the scalar it
// addresses. ok is false when nothing is selected, including the
// empty-map edge where a selected map has no entries to resolve.
func (n *Navigator) ResolvedValue() (value string, ok bool) {
	if n.primaryIdx == noSelection {
		return "", false
	}
	v, found := n.tree.Get(n.primaryKeys[n.primaryIdx])
	if !found {
		return "", false
	}

	switch val := v.(type) {
	case state.Item:
		return val.Value, true
	case *state.Map:
		if n.secondaryIdx == noSelection {
			return "", false
		}
		entry, found := val.Get(n.secondaryKeys[n.secondaryIdx])
		if !found {
			return "", false
		}
		if item, isItem := entry.(state.Item); isItem {
			return item.Value, true
		}
		return "", false
	}
	return "", false
}

// SelectedPath returns the key path the cursors currently address, for
// the status bar and clipboard yank.
func (n *Navigator) SelectedPath() []string {
	if n.primaryIdx == noSelection {
		return nil
	}
	path := []string{n.primaryKeys[n.primaryIdx]}
	if n.focus == PaneSecondary && n.secondaryIdx != noSelection {
		path = append(path, n.secondaryKeys[n.secondaryIdx])
	}
	return path
}
