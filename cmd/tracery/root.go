package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tracery-dev/tracery/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "tracery",
	Short: "Tracery turns reflected type registries into mutation-path catalogues",
	Long: `Tracery reads a registry of reflected type schemas and publishes every
addressable mutation path with a ready-to-send example payload.

Registries come from a document on disk (--registry) or a live reflection
endpoint (--url). Catalogues can be listed, rendered as documentation,
visualized, served over HTTP, or exposed to AI agents via MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("registry", "r", "", "Path to the registry document (JSON or YAML)")
	rootCmd.PersistentFlags().String("url", "", "Base URL of a live reflection endpoint (overrides --registry)")
	rootCmd.PersistentFlags().Int("max-depth", 0, "Traversal recursion bound (0 uses the default)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to a rotating file instead of stderr")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the catalogue cache")
	rootCmd.PersistentFlags().String("cache-dir", "", "Directory for the local catalogue cache (ignored when Redis is configured)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Bypass the catalogue cache")
}

// optionsFromFlags collects the shared flag values, falling back to the
// config file and TRACERY_* environment variables.
func optionsFromFlags(cmd *cobra.Command) cli.RunOptions {
	opts := cli.RunOptions{}
	opts.RegistryPath, _ = cmd.Flags().GetString("registry")
	opts.URL, _ = cmd.Flags().GetString("url")
	opts.MaxDepth, _ = cmd.Flags().GetInt("max-depth")
	opts.Debug, _ = cmd.Flags().GetBool("verbose")
	opts.LogFile, _ = cmd.Flags().GetString("log-file")
	opts.RedisAddr, _ = cmd.Flags().GetString("redis-addr")
	opts.CacheDir, _ = cmd.Flags().GetString("cache-dir")
	opts.NoCache, _ = cmd.Flags().GetBool("no-cache")
	opts.OptionsFromConfig()
	return opts
}
