package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	if len(res.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(res.Messages))
	}
	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T", res.Messages[0].Content)
	}
	return tc.Text
}

func TestOutlinePrompt_Definition(t *testing.T) {
	def := NewOutlinePrompt().Definition()
	if def.Name != "mind-map-outline" {
		t.Errorf("Name = %q", def.Name)
	}
	if len(def.Arguments) != 3 {
		t.Errorf("arguments = %d, want 3", len(def.Arguments))
	}
}

func TestOutlinePrompt_Handle(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		want []string
	}{
		{
			name: "defaults",
			args: map[string]string{"subject": "Go concurrency"},
			want: []string{"'Go concurrency'", "3 levels deep", "filename='Go concurrency'", "generate-mind-map"},
		},
		{
			name: "explicit depth and filename",
			args: map[string]string{"subject": "Travel", "depth": "2", "filename": "trip"},
			want: []string{"2 levels deep", "filename='trip'"},
		},
		{
			name: "invalid depth falls back",
			args: map[string]string{"subject": "X", "depth": "-4"},
			want: []string{"3 levels deep"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mcp.GetPromptRequest{}
			req.Params.Arguments = tt.args

			res, err := NewOutlinePrompt().Handle(context.Background(), req)
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			text := promptText(t, res)
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("prompt missing %q:\n%s", w, text)
				}
			}
		})
	}
}

func TestOutlinePrompt_Handle_MissingSubject(t *testing.T) {
	if _, err := NewOutlinePrompt().Handle(context.Background(), mcp.GetPromptRequest{}); err == nil {
		t.Fatal("expected error without a subject")
	}
}
