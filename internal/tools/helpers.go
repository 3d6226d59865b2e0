// Package tools implements the MCP tool handlers of the server.
//
// Each tool is a struct that receives its dependencies through the
// constructor (optional ones through setters) and exposes:
//   - Definition() returning the mcp.Tool schema
//   - Handle() compatible with mcp-go's tool handler signature
//
// Tools depend on the small interfaces below, not on concrete types, so
// tests can swap the writer, viewer and history store.
package tools

import (
	"github.com/HendryAvila/xmind-mcp/internal/history"
	"github.com/HendryAvila/xmind-mcp/internal/xmind"
)

// Writer persists an assembled workbook at an absolute path.
type Writer interface {
	WriteFile(wb *xmind.Workbook, path string) error
}

// Viewer opens a written document. Open must not block.
type Viewer interface {
	Open(path string)
}

// Recorder stores a history entry for a generated document.
type Recorder interface {
	Record(e history.Entry) (int64, error)
}
