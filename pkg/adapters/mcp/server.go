package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tracery-dev/tracery"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/ports"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// TypesResponse aligns with the HTTP adapter's /api/types payload so both
// surfaces stay interchangeable.
type TypesResponse struct {
	Fingerprint string          `json:"fingerprint" jsonschema_description:"Fingerprint of the registry the types come from"`
	Types       []schema.TypeID `json:"types" jsonschema_description:"Registered type identifiers in sorted order"`
}

// MutateResponse reports the outcome of a mutate call.
type MutateResponse struct {
	Applied bool   `json:"applied" jsonschema_description:"Whether the endpoint accepted the mutation"`
	Type    string `json:"type" jsonschema_description:"Root type identifier that was mutated"`
	Path    string `json:"path" jsonschema_description:"Mutation path that was written"`
}

// Server wraps a Cataloguer and exposes it as an MCP Server.
type Server struct {
	engine    ports.Cataloguer
	source    ports.SchemaSource
	mutator   ports.Mutator
	mcpServer *server.MCPServer
}

// Option configures optional server capabilities.
type Option func(*Server)

// WithMutator enables the mutate tool, forwarding writes to the given
// reflection endpoint.
func WithMutator(m ports.Mutator) Option {
	return func(s *Server) {
		s.mutator = m
	}
}

// NewServer creates a new MCP Server instance. The source backs the
// registry resource; the engine answers the catalogue tools.
func NewServer(engine ports.Cataloguer, source ports.SchemaSource, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		source:    source,
		mcpServer: server.NewMCPServer("tracery-mcp", strings.TrimSpace(tracery.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_types
	listTool := mcp.NewTool("list_types",
		mcp.WithDescription("List every type the registry can build mutation paths for."),
		mcp.WithOutputSchema[TypesResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListTypes))

	// TOOL: mutation_paths
	pathsTool := mcp.NewTool("mutation_paths",
		mcp.WithDescription("Build the full mutation path catalogue for a type, with example payloads."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Fully qualified type identifier, e.g. demo.Sprite")),
		mcp.WithOutputSchema[domain.Catalogue](),
	)
	s.mcpServer.AddTool(pathsTool, mcp.NewStructuredToolHandler(s.handleMutationPaths))

	// TOOL: mutation_path
	entryTool := mcp.NewTool("mutation_path",
		mcp.WithDescription("Look up a single mutation path on a type."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Fully qualified type identifier")),
		mcp.WithString("path", mcp.Description("Mutation path below the root, e.g. .translation.x. Empty selects the root value.")),
		mcp.WithOutputSchema[domain.PathEntry](),
	)
	s.mcpServer.AddTool(entryTool, mcp.NewStructuredToolHandler(s.handleMutationPath))

	// TOOL: mutate (only when a reflection endpoint is wired)
	if s.mutator != nil {
		mutateTool := mcp.NewTool("mutate",
			mcp.WithDescription("Write a value at a mutation path of a live object through the reflection endpoint."),
			mcp.WithString("type", mcp.Required(), mcp.Description("Root type identifier")),
			mcp.WithString("path", mcp.Description("Mutation path to write. Empty replaces the whole value.")),
			mcp.WithString("value", mcp.Required(), mcp.Description("JSON-encoded replacement value")),
			mcp.WithString("target", mcp.Description("Optional live object id when several share the type")),
			mcp.WithOutputSchema[MutateResponse](),
		)
		s.mcpServer.AddTool(mutateTool, mcp.NewStructuredToolHandler(s.handleMutate))
	}
}

// Handler methods for structured tools

func (s *Server) handleListTypes(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TypesResponse, error) {
	return TypesResponse{
		Fingerprint: s.engine.Fingerprint(),
		Types:       s.engine.Types(),
	}, nil
}

func (s *Server) handleMutationPaths(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Catalogue, error) {
	id, _ := args["type"].(string)
	if id == "" {
		return domain.Catalogue{}, fmt.Errorf("type is required")
	}

	cat, err := s.engine.Catalogue(ctx, schema.TypeID(id))
	if err != nil {
		return domain.Catalogue{}, fmt.Errorf("catalogue failed: %w", err)
	}
	return *cat, nil
}

func (s *Server) handleMutationPath(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.PathEntry, error) {
	id, _ := args["type"].(string)
	path, _ := args["path"].(string)
	if id == "" {
		return domain.PathEntry{}, fmt.Errorf("type is required")
	}

	cat, err := s.engine.Catalogue(ctx, schema.TypeID(id))
	if err != nil {
		return domain.PathEntry{}, fmt.Errorf("catalogue failed: %w", err)
	}

	entry, ok := cat.Entry(path)
	if !ok {
		return domain.PathEntry{}, fmt.Errorf("no path %q on %s", path, id)
	}
	return entry, nil
}

func (s *Server) handleMutate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MutateResponse, error) {
	id, _ := args["type"].(string)
	path, _ := args["path"].(string)
	rawValue, _ := args["value"].(string)
	target, _ := args["target"].(string)

	if id == "" {
		return MutateResponse{}, fmt.Errorf("type is required")
	}

	var value any
	if err := json.Unmarshal([]byte(rawValue), &value); err != nil {
		return MutateResponse{}, fmt.Errorf("value is not valid JSON: %w", err)
	}

	req := domain.MutationRequest{
		Type:   schema.TypeID(id),
		Path:   path,
		Value:  value,
		Target: target,
	}
	if err := s.mutator.Mutate(ctx, req); err != nil {
		return MutateResponse{}, fmt.Errorf("mutate failed: %w", err)
	}

	return MutateResponse{Applied: true, Type: id, Path: path}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: tracery://registry
	s.mcpServer.AddResource(mcp.NewResource("tracery://registry", "Reflected Type Registry",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		reg, err := s.source.Fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch registry: %w", err)
		}
		jsonBytes, err := json.Marshal(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode registry: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tracery://registry",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
