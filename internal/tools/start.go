package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bordenet/acceptance-criteria-assistant/internal/templates"
	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

// StartTool handles the ac_start MCP tool. It creates a workflow project
// and returns the draft prompt.
type StartTool struct {
	store    workflow.Store
	renderer templates.Renderer
}

// NewStartTool creates a StartTool.
func NewStartTool(store workflow.Store, renderer templates.Renderer) *StartTool {
	return &StartTool{store: store, renderer: renderer}
}

// Definition returns the MCP tool definition for registration.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("ac_start",
		mcp.WithDescription(
			"Start a draft → review → synthesis project for one feature. Returns the "+
				"draft prompt. Answer it, then pass the answer to ac_submit.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Feature name, e.g. 'Password reset'."),
		),
		mcp.WithString("context",
			mcp.Description("Background: who the users are, what problem the feature solves, known constraints."),
		),
	)
}

// Handle processes the ac_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := strings.TrimSpace(req.GetString("title", ""))
	if title == "" {
		return mcp.NewToolResultError("'title' is required."), nil
	}

	p := workflow.NewProject(title, req.GetString("context", ""))
	if err := t.store.Create(p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	prompt, err := t.renderer.Render(templates.Draft, templates.NewDraftData(p.Title, p.Context))
	if err != nil {
		return nil, fmt.Errorf("rendering draft prompt: %w", err)
	}

	response := fmt.Sprintf(
		"# Project created\n\n"+
			"**ID:** `%s`\n"+
			"**Phase:** %s\n\n"+
			"Answer the prompt below, then call `ac_submit` with `project_id=%q` and the answer as `content`.\n\n"+
			"---\n\n%s",
		p.ID, p.CurrentPhase, p.ID, prompt,
	)
	return mcp.NewToolResultText(response), nil
}
