package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bordenet/acceptance-criteria-assistant/internal/report"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

// ValidateTool handles the ac_validate MCP tool.
type ValidateTool struct {
	validator *scoring.Validator
	recorder  ScoreRecorder
}

// NewValidateTool creates a ValidateTool.
func NewValidateTool(v *scoring.Validator) *ValidateTool {
	return &ValidateTool{validator: v}
}

// SetRecorder wires score recording. Nil disables it.
func (t *ValidateTool) SetRecorder(rec ScoreRecorder) { t.recorder = rec }

// Definition returns the MCP tool definition for registration.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("ac_validate",
		mcp.WithDescription(
			"Score an acceptance criteria document from 0 to 100 across structure, "+
				"clarity, testability and completeness, minus a penalty for filler language. "+
				"Returns the score breakdown with every issue found.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The full acceptance criteria document in Markdown."),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json."),
			mcp.Enum(FormatMarkdown, FormatJSON),
			mcp.DefaultString(FormatMarkdown),
		),
		mcp.WithString("project",
			mcp.Description("Optional project name recorded with the score in history."),
		),
		mcp.WithString("title",
			mcp.Description("Optional title recorded with the score. Defaults to the first non-blank line of text, without heading marks."),
		),
	)
}

// Handle processes the ac_validate tool call.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	format := req.GetString("format", FormatMarkdown)
	if format != FormatMarkdown && format != FormatJSON {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown format %q; use markdown or json.", format)), nil
	}

	result := t.validator.Validate(text)
	if strings.TrimSpace(text) != "" {
		notifyRecorder(t.recorder, req.GetString("project", ""), "", req.GetString("title", ""), text, result)
	}

	if format == FormatJSON {
		data, err := report.JSON(result)
		if err != nil {
			return nil, fmt.Errorf("building json report: %w", err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultText(report.Markdown(result)), nil
}
