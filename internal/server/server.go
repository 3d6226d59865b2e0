// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources that depend on
// abstractions. No business logic lives here, only wiring.
package server

import (
	"github.com/HendryAvila/xmind-mcp/internal/config"
	"github.com/HendryAvila/xmind-mcp/internal/history"
	"github.com/HendryAvila/xmind-mcp/internal/opener"
	"github.com/HendryAvila/xmind-mcp/internal/output"
	"github.com/HendryAvila/xmind-mcp/internal/prompts"
	"github.com/HendryAvila/xmind-mcp/internal/resources"
	"github.com/HendryAvila/xmind-mcp/internal/tools"
	"github.com/HendryAvila/xmind-mcp/internal/xmind"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Name is the MCP server name reported to clients.
const Name = "xmind-generator"

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the history database and must be
// called on shutdown (typically via defer). It is always non-nil and safe
// to call even if history init failed.
//
// New does not fail on a broken writer configuration: the server starts
// and every generate call reports the problem instead.
func New(cfg config.Config, logger *zap.Logger) (*server.MCPServer, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// --- Create shared dependencies ---

	resolver := output.NewResolver(cfg.OutputPath, cfg.ScratchDir)
	if err := resolver.EnsureScratchDir(); err != nil {
		// Not fatal: requests with an explicit or configured path still work.
		logger.Warn("scratch directory unavailable",
			zap.String("dir", resolver.ScratchDir), zap.Error(err))
	}

	var writer tools.Writer
	xw, writerErr := xmind.NewWriter(xmind.Options{
		Structure:      xmind.Structure(cfg.Structure),
		CreatorVersion: Version,
	})
	if writerErr != nil {
		logger.Error("xmind writer unavailable, generate-mind-map will fail until restart",
			zap.String("structure", cfg.Structure), zap.Error(writerErr))
	} else {
		writer = xw
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register the generate tool ---

	generateTool := tools.NewGenerateTool(resolver, writer, logger)
	if writerErr != nil {
		generateTool.SetUnavailable(writerErr)
	}
	if cfg.AutoOpen {
		generateTool.SetViewer(opener.New(logger))
	}
	s.AddTool(generateTool.Definition(), generateTool.Handle)

	// --- Wire history ---
	//
	// History is an independent subsystem: if it fails to initialize,
	// generation keeps working. We log a warning and leave the recorder
	// unset; the recent-maps resource then reports that it is disabled.

	cleanup := noop
	var historyReader resources.HistoryReader
	if cfg.History {
		store, err := history.New(history.DefaultConfig(cfg.DataDir))
		if err != nil {
			logger.Warn("history subsystem disabled", zap.Error(err))
		} else {
			cleanup = func() {
				if err := store.Close(); err != nil {
					logger.Warn("history store close", zap.Error(err))
				}
			}
			generateTool.SetRecorder(store)
			historyReader = store
		}
	}

	// --- Register prompts ---

	outlinePrompt := prompts.NewOutlinePrompt()
	s.AddPrompt(outlinePrompt.Definition(), outlinePrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(historyReader)
	s.AddResource(resourceHandler.MarkersResource(), resourceHandler.HandleMarkers)
	s.AddResource(resourceHandler.RecentResource(), resourceHandler.HandleRecent)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when history
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the server.
func serverInstructions() string {
	return `You have access to an XMind mind map generator.

## WHEN TO USE IT

Use generate-mind-map when the user asks for a mind map, an outline they
want to see visually, a brainstorm they want to keep, or an .xmind file.

## HOW TO CALL generate-mind-map

- title: the central idea (root topic)
- topics: the first level of branches, in display order; nest deeper
  levels through each topic's "children"
- filename: a short file name without extension
- outputPath: only when the user names a folder or a full .xmind path

Keep titles short and move detail into "note". Add "labels" for tags.

## RELATIONSHIPS

To link two topics that live on different branches, give each one a
"ref" that is unique in the request and add an entry to "relationships"
with "from" and "to" set to those refs.

## MARKERS

Markers are written as "Category.name", for example "Priority.p1",
"Task.done", "Flag.red" or "Arrow.refresh". Read the xmind://markers
resource for the full list. Unknown codes are kept as-is.

## AFTER GENERATING

Report the saved path to the user. The file may open in XMind
automatically depending on the server configuration.`
}
