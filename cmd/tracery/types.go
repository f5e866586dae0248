package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery/internal/cli"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the registered types",
	Long:  `Fetches the registry and prints every registered type id with its kind.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		logger := cli.CreateLogger(opts)

		engine, err := cli.CreateEngine(opts, logger)
		if err != nil {
			fmt.Printf("Error initializing tracery: %v\n", err)
			os.Exit(1)
		}

		jsonMode, _ := cmd.Flags().GetBool("json")
		if jsonMode {
			out, err := json.MarshalIndent(engine.Types(), "", "  ")
			if err != nil {
				fmt.Printf("Error encoding types: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
			return
		}

		fmt.Printf("Registry fingerprint: %.12s\n\n", engine.Fingerprint())
		fmt.Print(cli.RenderTypesTable(engine.Registry()))
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)

	typesCmd.Flags().Bool("json", false, "Output the type ids as JSON")
}
