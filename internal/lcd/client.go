package lcd

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/synnax/cwstate/internal/state"
)

// DefaultTimeout bounds every LCD request.
const DefaultTimeout = 30 * time.Second

// Client talks to a Cosmos LCD (REST) endpoint.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the given LCD base URL.
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: DefaultTimeout},
	}
}

// ContractInfo is the on-chain metadata for a contract.
type ContractInfo struct {
	Address string
	CodeID  string
	Creator string
	Label   string
}

type contractInfoResponse struct {
	Address      string `json:"address"`
	ContractInfo struct {
		CodeID  string `json:"code_id"`
		Creator string `json:"creator"`
		Label   string `json:"label"`
	} `json:"contract_info"`
}

// ContractInfo fetches the contract's metadata.
func (c *Client) ContractInfo(ctx context.Context, address string) (*ContractInfo, error) {
	var resp contractInfoResponse
	path := fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s", url.PathEscape(address))
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch contract info for %s: %w", address, err)
	}
	return &ContractInfo{
		Address: address,
		CodeID:  resp.ContractInfo.CodeID,
		Creator: resp.ContractInfo.Creator,
		Label:   resp.ContractInfo.Label,
	}, nil
}

type stateResponse struct {
	Models []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"models"`
	Pagination struct {
		NextKey string `json:"next_key"`
	} `json:"pagination"`
}

// ContractState fetches the contract's full raw state, following
// pagination until the chain reports no further page. There is no
// retry: a failed page fails the whole fetch.
func (c *Client) ContractState(ctx context.Context, address string) ([]state.RawModel, error) {
	path := fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/state", url.PathEscape(address))

	var models []state.RawModel
	nextKey := ""
	for {
		query := url.Values{}
		if nextKey != "" {
			query.Set("pagination.key", nextKey)
		}

		var resp stateResponse
		if err := c.getJSON(ctx, path, query, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch contract state for %s: %w", address, err)
		}

		for _, m := range resp.Models {
			key, err := decodeKey(m.Key)
			if err != nil {
				return nil, fmt.Errorf("undecodable state key %q: %w", m.Key, err)
			}
			value, err := base64.StdEncoding.DecodeString(m.Value)
			if err != nil {
				return nil, fmt.Errorf("undecodable state value for key %q: %w", m.Key, err)
			}
			models = append(models, state.RawModel{Key: key, Value: value})
		}

		if resp.Pagination.NextKey == "" {
			return models, nil
		}
		nextKey = resp.Pagination.NextKey
	}
}

// decodeKey handles both encodings seen in the wild: wasmd serializes
// model keys as hex, while plain proto3 JSON gateways emit base64.
func decodeKey(s string) ([]byte, error) {
	if b, err := hex.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
