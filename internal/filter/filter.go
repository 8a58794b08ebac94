package filter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Apply evaluates a JMESPath expression against a state value. The
// value must be a JSON document; contract state scalars usually are.
// The result is re-encoded as indented JSON (bare strings stay bare).
func Apply(value string, expression string) (string, error) {
	if expression == "" {
		return value, nil
	}

	var data interface{}
	if err := json.Unmarshal([]byte(value), &data); err != nil {
		return "", fmt.Errorf("value is not JSON, cannot apply query: %w", err)
	}

	result, err := jmespath.Search(expression, data)
	if err != nil {
		return "", fmt.Errorf("failed to apply query: %w", err)
	}
	if result == nil {
		return "null", nil
	}

	// Plain strings read better without quotes in the value pane.
	if s, ok := result.(string); ok {
		return s, nil
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return "", fmt.Errorf("failed to encode query result: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
