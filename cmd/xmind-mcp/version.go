package main

import (
	"fmt"

	xmindserver "github.com/HendryAvila/xmind-mcp/internal/server"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "xmind-mcp v%s\n", xmindserver.Version)
	},
}
