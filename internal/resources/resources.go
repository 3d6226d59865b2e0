// Package resources implements MCP resource handlers for the mind map server.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (xmind://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/xmind-mcp/internal/history"
	"github.com/HendryAvila/xmind-mcp/internal/xmind"
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs.
const (
	MarkersURI = "xmind://markers"
	RecentURI  = "xmind://maps/recent"
)

// recentLimit is how many history entries the recent resource returns.
const recentLimit = 20

// HistoryReader lists recently generated documents.
type HistoryReader interface {
	Recent(limit int) ([]history.Entry, error)
}

// Handler manages the xmind resource endpoints.
type Handler struct {
	history HistoryReader
}

// NewHandler creates a resource Handler. A nil history means the history
// subsystem is disabled.
func NewHandler(h HistoryReader) *Handler {
	return &Handler{history: h}
}

// MarkersResource returns the MCP resource definition for the marker catalogue.
func (h *Handler) MarkersResource() mcp.Resource {
	return mcp.NewResource(
		MarkersURI,
		"XMind Markers",
		mcp.WithResourceDescription("Marker codes accepted in topic 'markers' and the XMind marker id each one maps to"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleMarkers returns the marker catalogue as JSON.
func (h *Handler) HandleMarkers(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, xmind.Markers())
}

// RecentResource returns the MCP resource definition for recent documents.
func (h *Handler) RecentResource() mcp.Resource {
	return mcp.NewResource(
		RecentURI,
		"Recent Mind Maps",
		mcp.WithResourceDescription("Mind maps generated by this server, newest first"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleRecent returns the most recent history entries as JSON.
func (h *Handler) HandleRecent(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.history == nil {
		return errorResource(req.Params.URI, "history is disabled"), nil
	}

	entries, err := h.history.Recent(recentLimit)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	return jsonResource(req.Params.URI, entries)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
