package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery"
	httpadapter "github.com/tracery-dev/tracery/internal/adapters/http"
	"github.com/tracery-dev/tracery/internal/cli"
	"github.com/tracery-dev/tracery/pkg/observability"
	"github.com/tracery-dev/tracery/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalogue HTTP server",
	Long:  `Starts the Tracery engine in server mode, exposing the catalogue as a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		withMetrics, _ := cmd.Flags().GetBool("metrics")

		opts := optionsFromFlags(cmd)
		logger := cli.CreateLogger(opts)

		handlerOpts := []httpadapter.Option{
			httpadapter.WithVersion(strings.TrimSpace(tracery.Version)),
			httpadapter.WithLogger(logger),
		}

		var metrics *observability.Metrics
		engineOpts := []tracery.Option{}
		if withMetrics {
			metrics = observability.NewMetrics()
			handlerOpts = append(handlerOpts, httpadapter.WithMetrics(metrics))
			engineOpts = append(engineOpts, tracery.WithBuildHooks(metrics.BuildHooks()))
		}

		engine, err := cli.CreateEngine(opts, logger, engineOpts...)
		if err != nil {
			fmt.Printf("Error initializing tracery: %v\n", err)
			os.Exit(1)
		}

		if _, ok := engine.Source().(ports.Watchable); ok {
			handlerOpts = append(handlerOpts, httpadapter.WithWatcher(engine))

			// Hot reload: refresh the registry whenever the document changes.
			if events, err := engine.Watch(context.Background()); err == nil {
				go func() {
					for range events {
						if err := engine.Refresh(context.Background()); err != nil {
							logger.Warn("registry refresh failed", "err", err)
							continue
						}
						logger.Info("registry refreshed")
					}
				}()
			}
		}

		handler := httpadapter.NewHandler(engine, handlerOpts...)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Tracery Server on %s\n", srv.Addr)
			if engine.Name != "" {
				fmt.Printf("Serving registry: %s\n", engine.Name)
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Tracery Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics on /metrics")
}
