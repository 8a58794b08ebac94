package state

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RawModel is a single key/value pair from the chain's contract state
// store, with both sides already base64-decoded.
type RawModel struct {
	Key   []byte
	Value []byte
}

// Decode builds a state tree from raw contract models.
//
// cw-storage-plus prefixes map entries with a 2-byte big-endian length
// followed by the namespace; the remaining bytes are the entry key
// within that namespace. Models matching that layout are grouped into
// a Map under the namespace. Everything else becomes a top-level Item.
// Insertion order follows the model order returned by the chain.
func Decode(models []RawModel) *Tree {
	tree := NewTree()

	for _, model := range models {
		if ns, entry, ok := splitComposite(model.Key); ok {
			nsKey := displayKey(ns)
			existing, found := tree.Get(nsKey)
			m, isMap := existing.(*Map)
			if !found {
				m = NewMap()
				tree.Set(nsKey, m)
			} else if !isMap {
				// A plain item already claimed this key; keep both by
				// flattening the composite key to a top-level item.
				tree.Set(displayKey(model.Key), Item{Value: string(model.Value)})
				continue
			}
			m.Set(displayKey(entry), Item{Value: string(model.Value)})
			continue
		}

		tree.Set(displayKey(model.Key), Item{Value: string(model.Value)})
	}

	return tree
}

// splitComposite reports whether key carries a length-prefixed
// namespace, returning the namespace and the residual entry key.
func splitComposite(key []byte) (ns, entry []byte, ok bool) {
	if len(key) < 4 {
		return nil, nil, false
	}
	n := int(binary.BigEndian.Uint16(key[:2]))
	if n == 0 || 2+n >= len(key) {
		return nil, nil, false
	}
	ns = key[2 : 2+n]
	if !printable(ns) {
		return nil, nil, false
	}
	return ns, key[2+n:], true
}

// printable reports whether b is valid UTF-8 made of printable runes.
func printable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// displayKey renders raw key bytes as a printable string, escaping
// anything that would not survive a terminal.
func displayKey(b []byte) string {
	if printable(b) {
		return string(b)
	}
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7f {
			sb.WriteByte(c)
		} else {
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	return sb.String()
}
