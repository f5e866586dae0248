package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the registry for consistency",
	Long: `Loads the registry and reports dangling type references and malformed
schema shapes. The catalogue builder tolerates these (they surface as
not-mutable paths), so validation is advisory but catches typos early.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	opts := optionsFromFlags(cmd)
	logger := cli.CreateLogger(opts)

	engine, err := cli.CreateEngine(opts, logger)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	return engine.Validate()
}
