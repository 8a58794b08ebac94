package state

import "encoding/json"

// Value is a single entry in a contract state tree: either a terminal
// scalar (Item) or an ordered keyed mapping (Map). The interface is
// sealed so consumers can switch exhaustively over the two variants.
type Value interface {
	isValue()
}

// Item is a terminal scalar value, typically a JSON document stored by
// the contract.
type Item struct {
	Value string
}

func (Item) isValue() {}

// Map is an ordered mapping from string keys to values. Key order is
// insertion order, which for decoded contract state matches the order
// the chain returned the models in.
type Map struct {
	keys    []string
	entries map[string]Value
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{entries: make(map[string]Value)}
}

func (*Map) isValue() {}

// Set stores a value under key, appending the key to the order on
// first insertion.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Keys returns a copy of the key list in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Tree is the loaded contract state: an ordered mapping from top-level
// keys to values. It is read-only after decoding and safe to share by
// reference with the navigator for the lifetime of a session.
type Tree struct {
	root *Map
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{root: NewMap()}
}

// Set stores a top-level value. Used by the decoder and by tests.
func (t *Tree) Set(key string, v Value) {
	t.root.Set(key, v)
}

// Keys returns the top-level keys in insertion order.
func (t *Tree) Keys() []string {
	return t.root.Keys()
}

// Get returns the value stored under a top-level key. A false return
// for a key drawn from Keys() is a programming error in the caller;
// the navigator treats it as such and never retries.
func (t *Tree) Get(key string) (Value, bool) {
	return t.root.Get(key)
}

// Len returns the number of top-level entries.
func (t *Tree) Len() int {
	return t.root.Len()
}

// MarshalJSON renders the tree as a JSON object preserving key order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return t.root.MarshalJSON()
}

// MarshalJSON renders the map as a JSON object preserving key order.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, key := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		v, err := json.Marshal(m.entries[key])
		if err != nil {
			return nil, err
		}
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// MarshalJSON emits the scalar inline when it already is valid JSON,
// otherwise as a JSON string.
func (it Item) MarshalJSON() ([]byte, error) {
	if json.Valid([]byte(it.Value)) {
		return []byte(it.Value), nil
	}
	return json.Marshal(it.Value)
}
