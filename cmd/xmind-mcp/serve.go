package main

import (
	"fmt"

	"github.com/HendryAvila/xmind-mcp/internal/logging"
	xmindserver "github.com/HendryAvila/xmind-mcp/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Long: `Start the MCP server on stdin/stdout.

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "xmind-generator": {
        "command": "xmind-mcp",
        "args": ["serve"],
        "env": { "outputPath": "/path/to/maps", "autoOpenFile": "false" }
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		s, cleanup, err := xmindserver.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		defer cleanup()

		logger.Info("serving on stdio",
			zap.String("version", xmindserver.Version),
			zap.String("structure", cfg.Structure),
			zap.String("output_path", cfg.OutputPath),
			zap.Bool("auto_open", cfg.AutoOpen),
		)

		// stdout belongs to the transport; errors go through zap on stderr.
		return server.ServeStdio(s, server.WithErrorLogger(logging.StdLogger(logger)))
	},
}
