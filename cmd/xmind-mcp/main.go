// xmind-mcp: XMind mind map generator MCP server
//
// An MCP server that lets any AI tool turn a topic tree into an .xmind
// document on disk.
//
// Usage:
//
//	xmind-mcp serve     # Start MCP server (stdio transport)
//	xmind-mcp history   # List recently generated maps
//	xmind-mcp markers   # List accepted marker codes
//	xmind-mcp inspect   # Print the outline of an .xmind file
package main

import (
	"fmt"
	"os"

	"github.com/HendryAvila/xmind-mcp/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	envFile    string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "xmind-mcp <command>",
	Short:         "XMind mind map generator MCP server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (default $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file (default ./"+config.DefaultEnvFile+")")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(serveCmd, historyCmd, markersCmd, inspectCmd, versionCmd)
}

// loadConfig reads settings from the sources selected by the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{File: configFile, EnvFile: envFile})
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
