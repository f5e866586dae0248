package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Method names the client speaks. Reflection endpoints advertise their
// surface through Discover.
const (
	MethodSchemas  = "registry.schemas"
	MethodMutate   = "world.mutate"
	MethodDiscover = "rpc.discover"
)

// Client talks JSON-RPC 2.0 over HTTP to a remote reflection endpoint.
// It implements both ports.SchemaSource and ports.Mutator.
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a client for the endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RPCError is the error object a reflection endpoint returns. It is
// surfaced unwrapped so callers can inspect the endpoint's code.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// call performs one JSON-RPC exchange and returns the raw result.
func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := uuid.NewString()
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("call %s: endpoint returned %s", method, resp.Status)
	}

	var envelope rpcResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}
	if envelope.Error != nil {
		return nil, envelope.Error
	}
	if envelope.ID != id {
		return nil, fmt.Errorf("call %s: response id %q does not match request id %q", method, envelope.ID, id)
	}
	return envelope.Result, nil
}

// Fetch implements ports.SchemaSource by asking the endpoint for its
// full schema registry.
func (c *Client) Fetch(ctx context.Context) (*schema.Registry, error) {
	result, err := c.call(ctx, MethodSchemas, nil)
	if err != nil {
		return nil, err
	}

	var docs map[string]any
	if err := json.Unmarshal(result, &docs); err != nil {
		return nil, fmt.Errorf("decode schema documents: %w", err)
	}

	reg, err := schema.DecodeRegistry(docs)
	if err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return reg, nil
}

// Mutate implements ports.Mutator by issuing a write against the live
// target.
func (c *Client) Mutate(ctx context.Context, req domain.MutationRequest) error {
	_, err := c.call(ctx, MethodMutate, req)
	return err
}

// MethodInfo describes one method a reflection endpoint advertises.
type MethodInfo struct {
	Name string `json:"name"`
}

// Discover asks the endpoint which methods it serves. Useful as a
// connectivity and capability check before fetching schemas.
func (c *Client) Discover(ctx context.Context) ([]MethodInfo, error) {
	result, err := c.call(ctx, MethodDiscover, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Methods []MethodInfo `json:"methods"`
	}
	if err := json.Unmarshal(result, &payload); err != nil {
		return nil, fmt.Errorf("decode discovery payload: %w", err)
	}
	return payload.Methods, nil
}
