package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery/internal/cli"
	"github.com/tracery-dev/tracery/internal/presentation/graph"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <type>",
	Short: "Export the mutation-path tree visualization",
	Long: `Builds the catalogue and outputs a Mermaid diagram (graph TD) of the
path tree, with enum choices and variant-guarded branches marked.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		logger := cli.CreateLogger(opts)

		engine, err := cli.CreateEngine(opts, logger)
		if err != nil {
			fmt.Printf("Error initializing tracery: %v\n", err)
			os.Exit(1)
		}

		cat, err := engine.Catalogue(cmd.Context(), schema.TypeID(args[0]))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		statusColors, _ := cmd.Flags().GetBool("status-colors")
		highlight, _ := cmd.Flags().GetString("highlight")

		var overlay *graph.Overlay
		if statusColors || highlight != "" {
			overlay = &graph.Overlay{
				StatusColors:  statusColors,
				HighlightPath: highlight,
			}
		}

		// Generate and print the Mermaid graph
		output := graph.GenerateMermaid(cat, overlay)
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Bool("status-colors", false, "Color nodes by mutability status")
	graphCmd.Flags().String("highlight", "", "Highlight the walk from the root to this path")
}
