package state

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTree_KeysInsertionOrder(t *testing.T) {
	tree := NewTree()
	tree.Set("config", Item{Value: `{"owner":"ki1abc"}`})
	tree.Set("balance", NewMap())
	tree.Set("admin", Item{Value: "ki1abc"})

	keys := tree.Keys()
	want := []string{"config", "balance", "admin"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() returned %d keys, want %d", len(keys), len(want))
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestTree_GetMissingKey(t *testing.T) {
	tree := NewTree()
	tree.Set("config", Item{Value: "x"})

	if _, ok := tree.Get("nope"); ok {
		t.Error("Get for absent key reported ok")
	}
}

func TestMap_SetOverwriteKeepsOrder(t *testing.T) {
	m := NewMap()
	m.Set("a", Item{Value: "1"})
	m.Set("b", Item{Value: "2"})
	m.Set("a", Item{Value: "3"})

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	keys := m.Keys()
	if keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
	v, _ := m.Get("a")
	if item, ok := v.(Item); !ok || item.Value != "3" {
		t.Errorf("Get(a) = %#v, want Item{3}", v)
	}
}

func TestTree_MarshalJSONOrderAndRawValues(t *testing.T) {
	balances := NewMap()
	balances.Set("ki1abc", Item{Value: "100"})
	balances.Set("ki1def", Item{Value: "250"})

	tree := NewTree()
	tree.Set("config", Item{Value: `{"owner":"ki1abc"}`})
	tree.Set("balance", balances)
	tree.Set("note", Item{Value: "not json"})

	got, err := tree.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	want := `{"config":{"owner":"ki1abc"},"balance":{"ki1abc":100,"ki1def":250},"note":"not json"}`
	if string(got) != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
}

func TestTree_MarshalYAMLPreservesOrder(t *testing.T) {
	tree := NewTree()
	tree.Set("z", Item{Value: "last-first"})
	tree.Set("a", Item{Value: "second"})

	node, err := tree.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML failed: %v", err)
	}

	// The yaml.Node mapping alternates key/value scalars.
	n, ok := node.(*yaml.Node)
	if !ok {
		t.Fatalf("MarshalYAML returned %T, want *yaml.Node", node)
	}
	if len(n.Content) != 4 {
		t.Fatalf("mapping has %d content nodes, want 4", len(n.Content))
	}
	if n.Content[0].Value != "z" || n.Content[2].Value != "a" {
		t.Errorf("key order = [%s %s], want [z a]", n.Content[0].Value, n.Content[2].Value)
	}
}
