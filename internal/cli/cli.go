package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/synnax/cwstate/internal/filter"
	"github.com/synnax/cwstate/internal/lcd"
	"github.com/synnax/cwstate/internal/state"
	"gopkg.in/yaml.v3"
)

// DumpOptions contains options for dumping contract state in CLI mode.
type DumpOptions struct {
	Address      string
	LCD          string
	OutputFormat string // json, yaml, text
	SavePath     string
	Query        string // JMESPath expression over the JSON tree
}

// Dump fetches a contract's state and writes it to stdout or a file.
func Dump(ctx context.Context, opts DumpOptions) error {
	client := lcd.NewClient(opts.LCD)

	models, err := client.ContractState(ctx, opts.Address)
	if err != nil {
		return err
	}
	tree := state.Decode(models)

	output, err := Render(tree, opts.OutputFormat, opts.Query)
	if err != nil {
		return err
	}

	if opts.SavePath != "" {
		if err := os.WriteFile(opts.SavePath, []byte(output+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to save output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", opts.SavePath)
		return nil
	}

	fmt.Println(output)
	return nil
}

// Render formats a state tree. A non-empty query short-circuits the
// format and returns the JMESPath result over the JSON rendering.
func Render(tree *state.Tree, format, query string) (string, error) {
	if query != "" {
		raw, err := json.Marshal(tree)
		if err != nil {
			return "", fmt.Errorf("failed to encode state: %w", err)
		}
		return filter.Apply(string(raw), query)
	}

	switch format {
	case "", "json":
		raw, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode state: %w", err)
		}
		return string(raw), nil

	case "yaml":
		raw, err := yaml.Marshal(tree)
		if err != nil {
			return "", fmt.Errorf("failed to encode state: %w", err)
		}
		return strings.TrimRight(string(raw), "\n"), nil

	case "text":
		return renderText(tree), nil

	default:
		return "", fmt.Errorf("unknown output format %q (expected json, yaml or text)", format)
	}
}

// renderText prints one "key = value" line per leaf, map entries as
// "namespace.entry = value".
func renderText(tree *state.Tree) string {
	var lines []string
	for _, key := range tree.Keys() {
		v, ok := tree.Get(key)
		if !ok {
			continue
		}
		switch val := v.(type) {
		case state.Item:
			lines = append(lines, fmt.Sprintf("%s = %s", key, val.Value))
		case *state.Map:
			for _, entry := range val.Keys() {
				ev, ok := val.Get(entry)
				if !ok {
					continue
				}
				if item, isItem := ev.(state.Item); isItem {
					lines = append(lines, fmt.Sprintf("%s.%s = %s", key, entry, item.Value))
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}
