package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery/internal/cli"
	mcpadapter "github.com/tracery-dev/tracery/pkg/adapters/mcp"
	"github.com/tracery-dev/tracery/pkg/ports"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the Tracery engine as an MCP Server.
This allows AI agents (like Claude Desktop) to look up mutation paths as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		opts := optionsFromFlags(cmd)

		// Configure logger on stderr so logs don't corrupt JSON-RPC on stdout
		level := slog.LevelInfo
		if opts.Debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		// 1. Initialize Engine
		engine, err := cli.CreateEngine(opts, logger)
		if err != nil {
			log.Fatalf("Error initializing tracery: %v", err)
		}

		// 2. Initialize MCP Server Adapter
		// Sources that can push mutations back (the remote client) also
		// enable the mutate tool.
		srvOpts := []mcpadapter.Option{}
		if mutator, ok := engine.Source().(ports.Mutator); ok {
			srvOpts = append(srvOpts, mcpadapter.WithMutator(mutator))
		}
		srv := mcpadapter.NewServer(engine, engine.Source(), srvOpts...)

		// 3. Start Server based on Transport
		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			slog.Info("Starting Tracery MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Tracery MCP Server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
