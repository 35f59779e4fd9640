// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnavailable wraps every transport, timeout, or gateway failure. The
// caller only needs to know the write did not happen; the cause is carried
// in the wrapped error for logging.
var ErrUnavailable = errors.New("ledger unavailable")

// Client is the contract with the external ledger. Submit is a durable
// write and may hang; callers must bound it with a context deadline.
// Evaluate is a read-only query used for connectivity checks.
type Client interface {
	Submit(ctx context.Context, txName string, args ...string) ([]byte, error)
	Evaluate(ctx context.Context, txName string, args ...string) ([]byte, error)
}

// Gateway talks to the ledger over its HTTP gateway. Transactions are
// opaque to this client: it forwards the transaction name and string
// arguments and returns the raw receipt bytes.
type Gateway struct {
	baseURL string
	client  *http.Client
}

// NewGateway creates a gateway client for the given base URL.
// No client-level timeout is set; every call is bounded by its context.
func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Submit sends a durable transaction via POST /invoke.
func (g *Gateway) Submit(ctx context.Context, txName string, args ...string) ([]byte, error) {
	return g.post(ctx, "/invoke", txName, args)
}

// Evaluate runs a read-only query via POST /query.
func (g *Gateway) Evaluate(ctx context.Context, txName string, args ...string) ([]byte, error) {
	return g.post(ctx, "/query", txName, args)
}

type txRequest struct {
	Tx   string   `json:"tx"`
	Args []string `json:"args"`
}

func (g *Gateway) post(ctx context.Context, path, txName string, args []string) ([]byte, error) {
	body, err := json.Marshal(txRequest{Tx: txName, Args: args})
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	receipt, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gateway returned %d", ErrUnavailable, resp.StatusCode)
	}

	return receipt, nil
}
