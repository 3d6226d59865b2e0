// Package prompts implements MCP prompt handlers for the mind map server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultDepth is the outline depth used when the argument is missing or invalid.
const defaultDepth = 3

// OutlinePrompt handles the mind-map-outline MCP prompt.
// It asks the AI to outline a subject and save it with generate-mind-map.
type OutlinePrompt struct{}

// NewOutlinePrompt creates an OutlinePrompt.
func NewOutlinePrompt() *OutlinePrompt {
	return &OutlinePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *OutlinePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("mind-map-outline",
		mcp.WithPromptDescription(
			"Outline a subject as a mind map and save it as an XMind file.",
		),
		mcp.WithArgument("subject",
			mcp.ArgumentDescription("What the mind map is about"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("depth",
			mcp.ArgumentDescription("How many levels below the root to outline. Default: 3"),
		),
		mcp.WithArgument("filename",
			mcp.ArgumentDescription("File name for the .xmind file. Default: derived from the subject"),
		),
	)
}

// Handle processes the mind-map-outline prompt request.
func (p *OutlinePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments

	subject := args["subject"]
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}

	depth := defaultDepth
	if d, err := strconv.Atoi(args["depth"]); err == nil && d > 0 {
		depth = d
	}

	filename := args["filename"]
	if filename == "" {
		filename = subject
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Mind map outline: %s", subject),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Build a mind map about '%s'.\n\n"+
						"Please:\n"+
						"1. Outline the subject %d levels deep, 3 to 7 topics per level, short titles\n"+
						"2. Put details in topic 'note' fields rather than long titles\n"+
						"3. Give topics a 'ref' where a cross-link helps and add 'relationships' between them\n"+
						"4. Use markers from the xmind://markers resource for priority or progress where useful\n"+
						"5. Call `generate-mind-map` with title='%s' and filename='%s'\n"+
						"6. Tell me where the file was saved",
					subject, depth, subject, filename,
				)),
			},
		},
	}, nil
}
