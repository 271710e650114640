// Package tools implements the MCP tool handlers.
//
// Each tool receives its dependencies through its constructor and exposes
// Definition and Handle for registration with mcp-go. User mistakes come
// back as tool errors (IsError results); only infrastructure failures are
// returned as Go errors.
package tools

import (
	"fmt"
	"strings"

	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

// Output formats accepted by ac_validate.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// loadProject returns the named project, or the active one when id is
// empty. A nil project with a nil error means there is no active project.
func loadProject(store workflow.Store, id string) (*workflow.Project, error) {
	if id != "" {
		return store.Load(id)
	}
	return store.LoadActive()
}

// phaseTable renders a project's phases as a markdown table.
func phaseTable(p *workflow.Project) string {
	var b strings.Builder
	b.WriteString("| Phase | Status | Score |\n")
	b.WriteString("|-------|--------|-------|\n")
	for _, e := range p.Phases {
		marker := "⬜"
		switch e.Status {
		case workflow.PhaseCompleted:
			marker = "✅"
		case workflow.PhaseInProgress:
			marker = "🔄"
		}
		score := "—"
		if e.Score != nil {
			score = fmt.Sprintf("%d (%s)", *e.Score, scoring.LetterGrade(*e.Score))
		}
		fmt.Fprintf(&b, "| %s %s | %s | %s |\n", marker, e.Name, e.Status, score)
	}
	return b.String()
}

// scoredPhase reports whether a phase's artifact is an acceptance criteria
// document. The review phase produces critique prose, which is not scored.
func scoredPhase(phase workflow.Phase) bool {
	return phase == workflow.PhaseDraft || phase == workflow.PhaseSynthesis
}
