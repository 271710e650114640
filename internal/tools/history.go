package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bordenet/acceptance-criteria-assistant/internal/history"
)

const defaultHistoryLimit = 10

// HistoryTool handles the ac_history MCP tool. It is registered only when
// the history store opened.
type HistoryTool struct {
	store *history.Store
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(store *history.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("ac_history",
		mcp.WithDescription(
			"List or full-text search previously scored documents. Without a query, "+
				"returns the most recent scores.",
		),
		mcp.WithString("query",
			mcp.Description("Full-text search over title, content and project."),
		),
		mcp.WithString("project",
			mcp.Description("Only include scores recorded for this project."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 10)."),
		),
		mcp.WithNumber("min_score",
			mcp.Description("Only include scores at or above this total."),
		),
		mcp.WithString("detail",
			mcp.Description("summary: one line each; standard: adds the dimension split; full: includes the document."),
			mcp.Enum(history.DetailLevelValues()...),
		),
	)
}

// Handle processes the ac_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultError("History is disabled."), nil
	}

	query := req.GetString("query", "")
	project := req.GetString("project", "")
	limit := int(req.GetFloat("limit", defaultHistoryLimit))
	detail := history.ParseDetailLevel(req.GetString("detail", ""))

	results, err := t.store.Search(query, history.SearchOptions{
		Project:  project,
		MinScore: int(req.GetFloat("min_score", 0)),
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("searching history: %w", err)
	}

	if len(results) == 0 {
		if strings.TrimSpace(query) != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No scores match %q.", query)), nil
		}
		return mcp.NewToolResultText("No scores recorded yet."), nil
	}

	var b strings.Builder
	if strings.TrimSpace(query) != "" {
		fmt.Fprintf(&b, "# History: %q (%d results)\n\n", query, len(results))
	} else {
		fmt.Fprintf(&b, "# Recent scores (%d)\n\n", len(results))
	}

	for _, r := range results {
		label := r.Title
		if r.Project != "" {
			label = fmt.Sprintf("[%s] %s", r.Project, r.Title)
		}
		fmt.Fprintf(&b, "- **%d %s** %s · %s · `%s`\n", r.TotalScore, r.Grade, label, r.CreatedAt, r.ID)
		if detail == history.DetailSummary {
			continue
		}
		fmt.Fprintf(&b, "  structure %d · clarity %d · testability %d · completeness %d",
			r.Structure, r.Clarity, r.Testability, r.Completeness)
		if r.SlopDeduction > 0 {
			fmt.Fprintf(&b, " · slop -%d", r.SlopDeduction)
		}
		b.WriteString("\n")
		if detail == history.DetailFull {
			fmt.Fprintf(&b, "\n```markdown\n%s\n```\n\n", r.Content)
		}
	}

	if strings.TrimSpace(query) == "" {
		if total, err := t.store.Count(project); err == nil {
			b.WriteString(history.NavigationHint(len(results), total))
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
