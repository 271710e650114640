package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bordenet/acceptance-criteria-assistant/internal/report"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
	"github.com/bordenet/acceptance-criteria-assistant/internal/templates"
	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

// SubmitTool handles the ac_submit MCP tool. It saves the answer for the
// current phase, scores it, advances the project and returns the next
// prompt, or the final report once synthesis is submitted.
type SubmitTool struct {
	store     workflow.Store
	renderer  templates.Renderer
	validator *scoring.Validator
	recorder  ScoreRecorder
}

// NewSubmitTool creates a SubmitTool.
func NewSubmitTool(store workflow.Store, renderer templates.Renderer, v *scoring.Validator) *SubmitTool {
	return &SubmitTool{store: store, renderer: renderer, validator: v}
}

// SetRecorder wires score recording. Nil disables it.
func (t *SubmitTool) SetRecorder(rec ScoreRecorder) { t.recorder = rec }

// Definition returns the MCP tool definition for registration.
func (t *SubmitTool) Definition() mcp.Tool {
	return mcp.NewTool("ac_submit",
		mcp.WithDescription(
			"Submit the answer to the current phase prompt of a project. Draft and "+
				"synthesis answers are scored. Returns the next phase prompt, or the final "+
				"score report after synthesis.",
		),
		mcp.WithString("project_id",
			mcp.Description("Project ID from ac_start. If omitted, the most recent active project is used."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The full answer to the current phase prompt."),
		),
	)
}

// Handle processes the ac_submit tool call.
func (t *SubmitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("project_id", "")
	content := req.GetString("content", "")
	if strings.TrimSpace(content) == "" {
		return mcp.NewToolResultError("'content' is required: paste the answer to the current phase prompt."), nil
	}

	p, err := loadProject(t.store, id)
	if err != nil {
		if errors.Is(err, workflow.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Project %q not found.", id)), nil
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if p == nil {
		return mcp.NewToolResultError("No active project. Start one with `ac_start` first."), nil
	}
	if p.Status != workflow.StatusActive {
		return mcp.NewToolResultError(fmt.Sprintf("Project %q is already %s.", p.ID, p.Status)), nil
	}

	phase := p.CurrentPhase
	if err := t.store.SaveArtifact(p.ID, phase, content); err != nil {
		return nil, fmt.Errorf("saving %s artifact: %w", phase, err)
	}

	var result scoring.ValidationResult
	if scoredPhase(phase) {
		result = t.validator.Validate(content)
		if err := workflow.RecordScore(p, result.TotalScore); err != nil {
			return nil, err
		}
		notifyRecorder(t.recorder, p.ID, string(phase), p.Title, content, result)
	}

	if workflow.IsLastPhase(p) {
		if err := workflow.Complete(p); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := t.store.Save(p); err != nil {
			return nil, fmt.Errorf("saving project: %w", err)
		}
		return mcp.NewToolResultText(t.finalReport(p, result)), nil
	}

	if err := workflow.Advance(p); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.store.Save(p); err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}

	prompt, err := t.nextPrompt(p, result)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s saved\n\n", phase)
	if scoredPhase(phase) {
		fmt.Fprintf(&b, "**Score:** %d/%d (%s)\n", result.TotalScore, scoring.MaxTotal, result.Grade())
	}
	fmt.Fprintf(&b, "**Next phase:** %s\n\n", p.CurrentPhase)
	fmt.Fprintf(&b, "Answer the prompt below, then call `ac_submit` with `project_id=%q`.\n\n---\n\n", p.ID)
	b.WriteString(prompt)
	return mcp.NewToolResultText(b.String()), nil
}

// nextPrompt renders the prompt for the phase p has just entered. draft is
// the score of the draft when p just left the draft phase.
func (t *SubmitTool) nextPrompt(p *workflow.Project, draft scoring.ValidationResult) (string, error) {
	switch p.CurrentPhase {
	case workflow.PhaseReview:
		doc, err := t.store.ReadArtifact(p.ID, workflow.PhaseDraft)
		if err != nil {
			return "", fmt.Errorf("reading draft: %w", err)
		}
		return t.render(templates.Review, templates.ReviewData{
			Title: p.Title,
			Draft: doc,
			Score: templates.NewCritiqueData(draft),
		})
	case workflow.PhaseSynthesis:
		doc, err := t.store.ReadArtifact(p.ID, workflow.PhaseDraft)
		if err != nil {
			return "", fmt.Errorf("reading draft: %w", err)
		}
		review, err := t.store.ReadArtifact(p.ID, workflow.PhaseReview)
		if err != nil {
			return "", fmt.Errorf("reading review: %w", err)
		}
		return t.render(templates.Synthesis, templates.NewSynthesisData(p.Title, doc, review))
	default:
		return "", fmt.Errorf("no prompt for phase %q", p.CurrentPhase)
	}
}

func (t *SubmitTool) render(name string, data any) (string, error) {
	out, err := t.renderer.Render(name, data)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return out, nil
}

func (t *SubmitTool) finalReport(p *workflow.Project, final scoring.ValidationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Project complete: %s\n\n", p.Title)
	if e := p.Entry(workflow.PhaseDraft); e != nil && e.Score != nil {
		delta := final.TotalScore - *e.Score
		sign := "+"
		if delta < 0 {
			sign = ""
		}
		fmt.Fprintf(&b, "**Draft → final:** %d → %d (%s%d)\n\n", *e.Score, final.TotalScore, sign, delta)
	}
	b.WriteString(phaseTable(p))
	b.WriteString("\n")
	b.WriteString(report.Markdown(final))
	return b.String()
}
