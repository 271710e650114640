package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
	"github.com/bordenet/acceptance-criteria-assistant/internal/templates"
)

// CritiqueTool handles the ac_critique MCP tool. It scores a document and
// returns a rewrite prompt with the score and every issue embedded.
type CritiqueTool struct {
	validator *scoring.Validator
	renderer  templates.Renderer
}

// NewCritiqueTool creates a CritiqueTool.
func NewCritiqueTool(v *scoring.Validator, renderer templates.Renderer) *CritiqueTool {
	return &CritiqueTool{validator: v, renderer: renderer}
}

// Definition returns the MCP tool definition for registration.
func (t *CritiqueTool) Definition() mcp.Tool {
	return mcp.NewTool("ac_critique",
		mcp.WithDescription(
			"Score an acceptance criteria document and return a rewrite prompt that "+
				"lists every issue by dimension. Follow the prompt to produce an improved "+
				"version, then call ac_validate on the result.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The acceptance criteria document to critique."),
		),
	)
}

// Handle processes the ac_critique tool call.
func (t *CritiqueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required: paste the document to critique."), nil
	}

	data := templates.NewCritiqueData(t.validator.Validate(text))
	data.Document = text

	out, err := t.renderer.Render(templates.Critique, data)
	if err != nil {
		return nil, fmt.Errorf("rendering critique: %w", err)
	}
	return mcp.NewToolResultText(out), nil
}
