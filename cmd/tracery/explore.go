package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery"
	"github.com/tracery-dev/tracery/internal/cli"
	"github.com/tracery-dev/tracery/internal/presentation/tui"
)

// exploreCmd represents the explore command
var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Browse mutation paths interactively",
	Long: `Starts an interactive prompt. Each line is a type id whose catalogue is
rendered inline; 'types' lists the registry and 'exit' leaves.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := optionsFromFlags(cmd)
		logger := cli.CreateLogger(opts)

		engine, err := cli.CreateEngine(opts, logger)
		if err != nil {
			fmt.Printf("Error initializing tracery: %v\n", err)
			os.Exit(1)
		}

		headless, _ := cmd.Flags().GetBool("headless")
		if !headless {
			tui.PrintBanner(tracery.Version)
		}

		runner := tracery.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		runner.Headless = headless
		runner.Renderer = tui.NewRenderer()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := runner.Run(ctx, engine); err != nil {
			fmt.Printf("Error running explorer: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().Bool("headless", false, "Run without banner or prompts (strict IO)")
}
