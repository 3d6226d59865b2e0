package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/HendryAvila/xmind-mcp/internal/history"
	"github.com/HendryAvila/xmind-mcp/internal/mindmap"
	"github.com/HendryAvila/xmind-mcp/internal/output"
	"github.com/HendryAvila/xmind-mcp/internal/xmind"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// GenerateToolName is the MCP name of the generate tool.
const GenerateToolName = "generate-mind-map"

// GenerateTool handles the generate-mind-map MCP tool.
// It validates the request, resolves the output path, builds the topic
// graph and hands the workbook to the writer.
type GenerateTool struct {
	resolver  *output.Resolver
	writer    Writer
	writerErr error
	logger    *zap.Logger

	// Optional collaborators, nil when disabled.
	viewer   Viewer
	recorder Recorder
}

// NewGenerateTool creates a GenerateTool. A nil writer makes every call
// fail with a DependencyUnavailableError.
func NewGenerateTool(resolver *output.Resolver, writer Writer, logger *zap.Logger) *GenerateTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateTool{resolver: resolver, writer: writer, logger: logger}
}

// SetUnavailable records why the writer could not be created.
func (t *GenerateTool) SetUnavailable(err error) {
	t.writerErr = err
}

// SetViewer enables opening each generated document.
func (t *GenerateTool) SetViewer(v Viewer) {
	t.viewer = v
}

// SetRecorder enables the history of generated documents.
func (t *GenerateTool) SetRecorder(r Recorder) {
	t.recorder = r
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateTool) Definition() mcp.Tool {
	tool := mcp.NewTool(GenerateToolName,
		mcp.WithDescription(
			"Generate an XMind mind map from a topic tree and save it as a .xmind file. "+
				"Topics nest through 'children' to any depth. Give a topic a 'ref' to use it "+
				"as an endpoint in 'relationships'. Markers use the form 'Category.name', "+
				"e.g. 'Priority.p1', 'Task.done', 'Arrow.refresh' (see the xmind://markers resource).",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title of the mind map (root topic)"),
		),
		mcp.WithArray("topics",
			mcp.Required(),
			mcp.Description("Topics directly under the root, in display order. May be empty."),
			mcp.Items(map[string]any{"$ref": "#/$defs/topic"}),
		),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("File name for the .xmind file, without path or extension"),
		),
		mcp.WithString("outputPath",
			mcp.Description("Optional output directory or full .xmind path. Defaults to the configured path, then a temporary directory."),
		),
		mcp.WithArray("relationships",
			mcp.Description("Optional labeled links between topics, addressed by their 'ref'"),
			mcp.Items(map[string]any{"$ref": "#/$defs/relationship"}),
		),
	)
	tool.InputSchema.Defs = map[string]any{
		"topic":        topicSchema,
		"relationship": relationshipSchema,
	}
	return tool
}

// topicSchema refers to itself through $ref so nesting has no fixed depth.
var topicSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string", "description": "The title of the topic"},
		"ref":   map[string]any{"type": "string", "description": "Optional reference ID, unique within the request"},
		"note":  map[string]any{"type": "string", "description": "Optional note for the topic"},
		"labels": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Optional labels for the topic",
		},
		"markers": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": `Optional markers in the form "Category.name", e.g. "Arrow.refresh"`,
		},
		"children": map[string]any{
			"type":        "array",
			"items":       map[string]any{"$ref": "#/$defs/topic"},
			"description": "Optional child topics",
		},
	},
	"required": []string{"title"},
}

var relationshipSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string", "description": "The title of the relationship"},
		"from":  map[string]any{"type": "string", "description": "The ref of the source topic"},
		"to":    map[string]any{"type": "string", "description": "The ref of the target topic"},
	},
	"required": []string{"title", "from", "to"},
}

// Handle processes the generate-mind-map tool call. Request failures are
// returned as error results, never as Go errors.
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := t.Generate(req.GetArguments())
	if err != nil {
		t.logger.Warn("mind map generation failed",
			zap.String("kind", errorKind(err)),
			zap.Error(err),
		)
		return mcp.NewToolResultError(failureMessage(err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Mind map successfully generated and saved to: %s", path)), nil
}

// Generate runs the whole pipeline and returns the written path.
func (t *GenerateTool) Generate(args map[string]any) (string, error) {
	if t.writerErr != nil || t.writer == nil {
		cause := t.writerErr
		if cause == nil {
			cause = errors.New("no writer configured")
		}
		return "", &mindmap.DependencyUnavailableError{Dependency: "xmind writer", Err: cause}
	}

	req, err := mindmap.Decode(args)
	if err != nil {
		return "", err
	}

	path, err := t.resolver.Prepare(req.Filename, req.OutputPath)
	if err != nil {
		return "", err
	}

	graph, err := mindmap.Build(req)
	if err != nil {
		return "", err
	}
	wb, err := mindmap.Assemble(graph.Root)
	if err != nil {
		return "", err
	}

	if err := t.writer.WriteFile(wb, path); err != nil {
		return "", &mindmap.FileSystemError{Op: "write document", Path: path, Err: err}
	}

	t.logger.Info("mind map generated",
		zap.String("path", path),
		zap.Int("topics", graph.TopicCount),
		zap.Int("relationships", len(req.Relationships)),
		zap.Strings("unresolved_markers", graph.UnresolvedMarkers),
	)

	t.afterWrite(req, graph, path)
	return path, nil
}

// afterWrite runs the best-effort side effects. Nothing here can fail the
// request.
func (t *GenerateTool) afterWrite(req *mindmap.Request, graph *mindmap.Graph, path string) {
	if t.viewer != nil {
		t.viewer.Open(path)
	}
	if t.recorder != nil {
		_, err := t.recorder.Record(history.Entry{
			Title:             req.Title,
			Filename:          req.Filename,
			Path:              path,
			TopicCount:        graph.TopicCount,
			RelationshipCount: len(req.Relationships),
		})
		if err != nil {
			t.logger.Warn("recording history failed", zap.String("path", path), zap.Error(err))
		}
	}
}

func failureMessage(err error) string {
	msg := "Error generating mind map: " + err.Error()
	var dep *mindmap.DependencyUnavailableError
	if errors.As(err, &dep) {
		msg += ". Fix the server configuration (see XMIND_MCP_STRUCTURE) and restart the server."
	}
	return msg
}

func errorKind(err error) string {
	var (
		ve *mindmap.ValidationError
		fe *mindmap.FileSystemError
		de *mindmap.DependencyUnavailableError
		be *mindmap.BuildError
	)
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &fe):
		return "filesystem"
	case errors.As(err, &de):
		return "dependency_unavailable"
	case errors.As(err, &be):
		return "build"
	default:
		return "unknown"
	}
}

// Compile-time check that the real writer satisfies Writer.
var _ Writer = (*xmind.Writer)(nil)
