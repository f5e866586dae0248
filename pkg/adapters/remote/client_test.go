package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracery-dev/tracery/pkg/adapters/remote"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

type capturedCall struct {
	Method string
	Params json.RawMessage
}

// stubEndpoint runs a JSON-RPC endpoint answering every method from the
// results map, recording calls as they arrive.
func stubEndpoint(t *testing.T, results map[string]any) (*httptest.Server, *[]capturedCall) {
	t.Helper()
	var calls []capturedCall

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JSONRPC string          `json:"jsonrpc"`
			ID      string          `json:"id"`
			Method  string          `json:"method"`
			Params  json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.NotEmpty(t, req.ID)

		calls = append(calls, capturedCall{Method: req.Method, Params: req.Params})

		result, ok := results[req.Method]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]any{"code": -32601, "message": "method not found"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestClient_Fetch(t *testing.T) {
	server, _ := stubEndpoint(t, map[string]any{
		remote.MethodSchemas: map[string]any{
			"f32": map[string]any{"kind": "value", "scalar": "float"},
			"geom.Vec2": map[string]any{
				"kind":       "struct",
				"properties": map[string]any{"x": "f32", "y": "f32"},
			},
		},
	})

	client := remote.New(server.URL)
	reg, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	vec, ok := reg.Lookup("geom.Vec2")
	require.True(t, ok)
	assert.Equal(t, schema.KindStruct, vec.Kind)
	assert.Equal(t, schema.TypeID("f32"), vec.Properties["x"])
}

func TestClient_FetchSurfacesRPCError(t *testing.T) {
	server, _ := stubEndpoint(t, map[string]any{})

	client := remote.New(server.URL)
	_, err := client.Fetch(context.Background())
	require.Error(t, err)

	var rpcErr *remote.RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, -32601, rpcErr.Code)
	assert.Equal(t, "method not found", rpcErr.Message)
}

func TestClient_Mutate(t *testing.T) {
	server, calls := stubEndpoint(t, map[string]any{
		remote.MethodMutate: map[string]any{},
	})

	client := remote.New(server.URL)
	err := client.Mutate(context.Background(), domain.MutationRequest{
		Type:  "demo.Sprite",
		Path:  ".custom_size.0.x",
		Value: 10.0,
	})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, remote.MethodMutate, call.Method)

	var req domain.MutationRequest
	require.NoError(t, json.Unmarshal(call.Params, &req))
	assert.Equal(t, schema.TypeID("demo.Sprite"), req.Type)
	assert.Equal(t, ".custom_size.0.x", req.Path)
	assert.Equal(t, 10.0, req.Value)
	assert.Empty(t, req.Target)
}

func TestClient_Discover(t *testing.T) {
	server, _ := stubEndpoint(t, map[string]any{
		remote.MethodDiscover: map[string]any{
			"methods": []map[string]any{
				{"name": remote.MethodSchemas},
				{"name": remote.MethodMutate},
			},
		},
	})

	client := remote.New(server.URL)
	methods, err := client.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, remote.MethodSchemas, methods[0].Name)
}

func TestClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := remote.New(server.URL)
	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_ContextCancellation(t *testing.T) {
	server, _ := stubEndpoint(t, map[string]any{remote.MethodSchemas: map[string]any{}})

	client := remote.New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
