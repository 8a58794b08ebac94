package state

import "testing"

// compositeKey builds a cw-storage-plus style key: 2-byte big-endian
// namespace length, namespace, entry key.
func compositeKey(namespace, entry string) []byte {
	key := []byte{byte(len(namespace) >> 8), byte(len(namespace))}
	key = append(key, namespace...)
	return append(key, entry...)
}

func TestDecode_PlainKeysBecomeItems(t *testing.T) {
	tree := Decode([]RawModel{
		{Key: []byte("config"), Value: []byte(`{"owner":"ki1abc"}`)},
		{Key: []byte("admin"), Value: []byte("ki1abc")},
	})

	keys := tree.Keys()
	if len(keys) != 2 || keys[0] != "config" || keys[1] != "admin" {
		t.Fatalf("Keys() = %v, want [config admin]", keys)
	}

	v, ok := tree.Get("config")
	if !ok {
		t.Fatal("config missing")
	}
	item, ok := v.(Item)
	if !ok {
		t.Fatalf("config decoded as %T, want Item", v)
	}
	if item.Value != `{"owner":"ki1abc"}` {
		t.Errorf("config value = %q", item.Value)
	}
}

func TestDecode_CompositeKeysGroupIntoMap(t *testing.T) {
	tree := Decode([]RawModel{
		{Key: compositeKey("balance", "ki1abc"), Value: []byte("100")},
		{Key: compositeKey("balance", "ki1def"), Value: []byte("250")},
		{Key: []byte("config"), Value: []byte("{}")},
	})

	keys := tree.Keys()
	if len(keys) != 2 || keys[0] != "balance" || keys[1] != "config" {
		t.Fatalf("Keys() = %v, want [balance config]", keys)
	}

	v, _ := tree.Get("balance")
	m, ok := v.(*Map)
	if !ok {
		t.Fatalf("balance decoded as %T, want *Map", v)
	}
	entries := m.Keys()
	if len(entries) != 2 || entries[0] != "ki1abc" || entries[1] != "ki1def" {
		t.Fatalf("balance entries = %v", entries)
	}
	ev, _ := m.Get("ki1def")
	if item := ev.(Item); item.Value != "250" {
		t.Errorf("balance[ki1def] = %q, want 250", item.Value)
	}
}

func TestDecode_LengthPrefixWithoutResidualIsItem(t *testing.T) {
	// A key that is exactly prefix+namespace has no entry key left;
	// it must stay a top-level item, not an empty map.
	key := []byte{0x00, 0x04, 'd', 'a', 't', 'a'}
	tree := Decode([]RawModel{{Key: key, Value: []byte("v")}})

	v, ok := tree.Get(displayKey(key))
	if !ok {
		t.Fatalf("key missing, tree keys = %v", tree.Keys())
	}
	if _, isItem := v.(Item); !isItem {
		t.Errorf("decoded as %T, want Item", v)
	}
}

func TestDecode_NonPrintableNamespaceFallsBackToItem(t *testing.T) {
	key := []byte{0x00, 0x02, 0x01, 0x02, 'x'}
	tree := Decode([]RawModel{{Key: key, Value: []byte("v")}})

	if len(tree.Keys()) != 1 {
		t.Fatalf("Keys() = %v, want a single escaped item", tree.Keys())
	}
	if _, ok := tree.Get(tree.Keys()[0]); !ok {
		t.Error("escaped key not retrievable")
	}
}

func TestDecode_ItemThenCompositeCollision(t *testing.T) {
	// A plain item named "balance" followed by composite balance
	// entries: the item wins the top-level key, composites flatten.
	tree := Decode([]RawModel{
		{Key: []byte("balance"), Value: []byte("legacy")},
		{Key: compositeKey("balance", "ki1abc"), Value: []byte("100")},
	})

	v, _ := tree.Get("balance")
	if item, ok := v.(Item); !ok || item.Value != "legacy" {
		t.Fatalf("balance = %#v, want legacy Item", v)
	}
	if len(tree.Keys()) != 2 {
		t.Errorf("Keys() = %v, want item plus flattened composite", tree.Keys())
	}
}

func TestDisplayKey_EscapesNonPrintable(t *testing.T) {
	got := displayKey([]byte{0x00, 'a', 0xff})
	want := `\x00a\xff`
	if got != want {
		t.Errorf("displayKey = %q, want %q", got, want)
	}
}

func TestDecode_EmptyModels(t *testing.T) {
	tree := Decode(nil)
	if tree.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tree.Len())
	}
}
