package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery/internal/cli"
	"github.com/tracery-dev/tracery/internal/presentation/markdown"
	"github.com/tracery-dev/tracery/internal/presentation/tui"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// docsCmd represents the docs command
var docsCmd = &cobra.Command{
	Use:   "docs <type>",
	Short: "Render mutation-path documentation for a type",
	Long: `Builds the catalogue and renders it as markdown documentation with
example payloads per path. On a terminal the output is styled; when piped
or written to a file it stays plain markdown.`,
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

		doc := markdown.Render(cat)

		outPath, _ := cmd.Flags().GetString("out")
		if outPath != "" {
			if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
				fmt.Printf("Error writing %s: %v\n", outPath, err)
				os.Exit(1)
			}
			fmt.Printf("Documentation written to %s\n", outPath)
			return
		}

		render := tui.NewRenderer()
		styled, err := render(doc)
		if err != nil {
			styled = doc
		}
		fmt.Print(styled)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.Flags().StringP("out", "o", "", "Write plain markdown to a file instead of stdout")
}
