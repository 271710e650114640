package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

// StatusTool handles the ac_status MCP tool.
type StatusTool struct {
	store workflow.Store
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(store workflow.Store) *StatusTool {
	return &StatusTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("ac_status",
		mcp.WithDescription(
			"Show the progress of a project: current phase, per-phase status and scores. "+
				"Without project_id, shows the most recent active project and lists the others.",
		),
		mcp.WithString("project_id",
			mcp.Description("Specific project ID to inspect."),
		),
	)
}

// Handle processes the ac_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("project_id", "")

	p, err := loadProject(t.store, id)
	if err != nil {
		if errors.Is(err, workflow.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Project %q not found.", id)), nil
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if p == nil {
		return mcp.NewToolResultError("No active project. Start one with `ac_start`."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"# Project Status\n\n"+
			"**ID:** `%s`\n"+
			"**Title:** %s\n"+
			"**Status:** %s\n"+
			"**Current phase:** %s\n"+
			"**Created:** %s\n"+
			"**Updated:** %s\n\n"+
			"## Phases\n\n",
		p.ID, p.Title, p.Status, p.CurrentPhase, p.CreatedAt, p.UpdatedAt,
	)
	b.WriteString(phaseTable(p))

	if id == "" {
		all, err := t.store.List()
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}
		if len(all) > 1 {
			b.WriteString("\n## Other projects\n\n")
			for _, other := range all {
				if other.ID == p.ID {
					continue
				}
				fmt.Fprintf(&b, "- `%s` %s (%s, %s)\n", other.ID, other.Title, other.Status, other.CurrentPhase)
			}
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
