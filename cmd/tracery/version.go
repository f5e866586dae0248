package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tracery",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tracery version %s\n", strings.TrimSpace(tracery.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
