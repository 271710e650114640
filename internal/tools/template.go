package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bordenet/acceptance-criteria-assistant/internal/templates"
)

// TemplateTool handles the ac_template MCP tool.
type TemplateTool struct {
	renderer templates.Renderer
}

// NewTemplateTool creates a TemplateTool.
func NewTemplateTool(renderer templates.Renderer) *TemplateTool {
	return &TemplateTool{renderer: renderer}
}

// Definition returns the MCP tool definition for registration.
func (t *TemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("ac_template",
		mcp.WithDescription("Return a blank acceptance criteria document with the Summary, Acceptance Criteria and Out of Scope sections."),
		mcp.WithString("title",
			mcp.Description("Optional feature name for the heading."),
		),
	)
}

// Handle processes the ac_template tool call.
func (t *TemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := t.renderer.Render(templates.Document, templates.DocumentData{Title: req.GetString("title", "")})
	if err != nil {
		return nil, fmt.Errorf("rendering document template: %w", err)
	}
	return mcp.NewToolResultText(out), nil
}
