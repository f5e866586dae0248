package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery/internal/cli"
	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths <type>",
	Short: "List the mutation paths for a type",
	Long: `Builds the mutation-path catalogue for the given root type and prints
one line per addressable path with its target type and mutability.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := schema.TypeID(args[0])

		opts := optionsFromFlags(cmd)
		logger := cli.CreateLogger(opts)

		engine, err := cli.CreateEngine(opts, logger)
		if err != nil {
			fmt.Printf("Error initializing tracery: %v\n", err)
			os.Exit(1)
		}

		jsonMode, _ := cmd.Flags().GetBool("json")
		watchMode, _ := cmd.Flags().GetBool("watch")

		render := func(cat *domain.Catalogue) {
			if jsonMode {
				out, err := json.MarshalIndent(cat, "", "  ")
				if err != nil {
					fmt.Printf("Error encoding catalogue: %v\n", err)
					os.Exit(1)
				}
				fmt.Println(string(out))
				return
			}
			fmt.Print(cli.RenderPathsTable(cat))
		}

		if watchMode {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := cli.RunWatch(ctx, engine, root, render); err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		cat, err := engine.Catalogue(cmd.Context(), root)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		render(cat)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)

	pathsCmd.Flags().Bool("json", false, "Output the full catalogue as JSON")
	pathsCmd.Flags().BoolP("watch", "w", false, "Re-render when the registry document changes")
}
