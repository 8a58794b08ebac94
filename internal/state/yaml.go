package state

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the tree as a YAML mapping preserving key order.
func (t *Tree) MarshalYAML() (interface{}, error) {
	return t.root.MarshalYAML()
}

// MarshalYAML renders the map as a YAML mapping preserving key order.
func (m *Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		valNode, err := valueNode(m.entries[key])
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

func valueNode(v Value) (*yaml.Node, error) {
	switch val := v.(type) {
	case Item:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val.Value}, nil
	case *Map:
		nested, err := val.MarshalYAML()
		if err != nil {
			return nil, err
		}
		return nested.(*yaml.Node), nil
	default:
		return nil, fmt.Errorf("unknown state value type %T", v)
	}
}
