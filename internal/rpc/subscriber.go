package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// BlockEvent is a new block observed on the chain.
type BlockEvent struct {
	Height int64
}

// Subscriber listens for new blocks over the Tendermint RPC websocket.
// It exists to drive the staleness indicator: the browsed snapshot is
// fetched once, so every block after the fetch means potentially
// changed state.
type Subscriber struct {
	url    string
	dialer *websocket.Dialer
}

// NewSubscriber creates a subscriber for the given Tendermint RPC base
// URL (http(s) scheme; the websocket path is appended here).
func NewSubscriber(rpcURL string) (*Subscriber, error) {
	u, err := url.Parse(strings.TrimRight(rpcURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid RPC URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported RPC scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/websocket"

	return &Subscriber{
		url: u.String(),
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 10 * time.Second,
		},
	}, nil
}

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	ID      int               `json:"id"`
	Params  map[string]string `json:"params"`
}

type rpcEvent struct {
	Result struct {
		Data struct {
			Value struct {
				Block struct {
					Header struct {
						Height string `json:"height"`
					} `json:"header"`
				} `json:"block"`
			} `json:"value"`
		} `json:"data"`
	} `json:"result"`
}

// Subscribe connects, subscribes to NewBlock events and delivers block
// heights on the returned channel until the context is cancelled or
// the connection drops. The channel is closed on exit either way.
func (s *Subscriber) Subscribe(ctx context.Context) (<-chan BlockEvent, error) {
	conn, resp, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket connection failed: %w", err)
	}

	sub := rpcRequest{
		JSONRPC: "2.0",
		Method:  "subscribe",
		ID:      1,
		Params:  map[string]string{"query": "tm.event='NewBlock'"},
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send subscription: %w", err)
	}

	events := make(chan BlockEvent, 16)

	// Closing the connection unblocks the reader when the context ends.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer conn.Close()

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var event rpcEvent
			if err := json.Unmarshal(message, &event); err != nil {
				continue
			}
			height, err := strconv.ParseInt(event.Result.Data.Value.Block.Header.Height, 10, 64)
			if err != nil {
				// Subscription ack and non-block events have no height.
				continue
			}

			select {
			case events <- BlockEvent{Height: height}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
