package chains

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Chain maps a bech32 address prefix to chain endpoints.
type Chain struct {
	Prefix string `yaml:"prefix"`
	LCD    string `yaml:"lcd"`
	RPC    string `yaml:"rpc,omitempty"`
}

// Registry resolves contract addresses to chain endpoints by bech32
// prefix. Built-in chains can be extended or overridden from a YAML
// file (~/.cwstate/chains.yaml).
type Registry struct {
	chains []Chain
}

// Defaults returns the built-in chain list.
func Defaults() []Chain {
	return []Chain{
		{Prefix: "ki", LCD: "https://api-mainnet.blockchain.ki", RPC: "https://rpc-mainnet.blockchain.ki"},
		{Prefix: "tki", LCD: "https://api-challenge.blockchain.ki", RPC: "https://rpc-challenge.blockchain.ki"},
		{Prefix: "juno", LCD: "https://api-juno-ia.cosmosia.notional.ventures/", RPC: "https://rpc-juno-ia.cosmosia.notional.ventures/"},
		{Prefix: "osmo", LCD: "https://lcd.osmosis.zone/", RPC: "https://rpc.osmosis.zone/"},
		{Prefix: "chihuahua", LCD: "https://api.chihuahua.wtf/", RPC: "https://rpc.chihuahua.wtf/"},
		{Prefix: "stars", LCD: "https://rest.stargaze-apis.com/", RPC: "https://rpc.stargaze-apis.com/"},
	}
}

// Load builds a registry from the defaults plus the user chains file,
// if present. User entries with a known prefix replace the built-in.
func Load(path string) (*Registry, error) {
	reg := &Registry{chains: Defaults()}

	if path == "" {
		return reg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chains file: %w", err)
	}

	var user []Chain
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse chains file %s: %w", path, err)
	}
	for _, c := range user {
		if c.Prefix == "" || c.LCD == "" {
			return nil, fmt.Errorf("chains file %s: every entry needs prefix and lcd", path)
		}
		reg.upsert(c)
	}
	return reg, nil
}

func (r *Registry) upsert(c Chain) {
	for i, existing := range r.chains {
		if existing.Prefix == c.Prefix {
			r.chains[i] = c
			return
		}
	}
	r.chains = append(r.chains, c)
}

// All returns the known chains sorted by prefix.
func (r *Registry) All() []Chain {
	out := make([]Chain, len(r.chains))
	copy(out, r.chains)
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// Resolve picks the chain whose prefix matches the contract address.
// Longest prefix wins so "tki1..." never resolves through "ki".
func (r *Registry) Resolve(address string) (Chain, error) {
	var best Chain
	found := false
	for _, c := range r.chains {
		if strings.HasPrefix(address, c.Prefix) && (!found || len(c.Prefix) > len(best.Prefix)) {
			best = c
			found = true
		}
	}
	if !found {
		return Chain{}, fmt.Errorf("invalid bech32 address => %s", address)
	}
	return best, nil
}
