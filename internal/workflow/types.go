// Package workflow tracks an acceptance-criteria document through the
// three-phase, human-mediated authoring loop.
//
// A project starts in the draft phase. For each phase the server hands the
// user a prompt to paste into an external LLM; the user pastes the answer
// back, it is saved as that phase's artifact and scored, and the project
// advances. The synthesis artifact is the final document.
package workflow

import (
	"fmt"
	"strings"
)

// --- Phase enum ---

// Phase is one step of the authoring loop.
type Phase string

const (
	PhaseDraft     Phase = "draft"     // first LLM draft from the feature context
	PhaseReview    Phase = "review"    // adversarial critique of the draft
	PhaseSynthesis Phase = "synthesis" // final document merging draft and critique
)

// PhaseOrder is the fixed phase sequence.
var PhaseOrder = []Phase{PhaseDraft, PhaseReview, PhaseSynthesis}

var validPhases = map[Phase]bool{
	PhaseDraft:     true,
	PhaseReview:    true,
	PhaseSynthesis: true,
}

// ValidatePhase returns an error if the phase is not recognized.
func ValidatePhase(p Phase) error {
	if !validPhases[p] {
		return fmt.Errorf("invalid phase %q: must be one of: draft, review, synthesis", p)
	}
	return nil
}

// --- Status enums ---

// Status tracks the lifecycle of a project.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Phase entry statuses.
const (
	PhasePending    = "pending"
	PhaseInProgress = "in_progress"
	PhaseCompleted  = "completed"
)

// --- Core data structures ---

// PhaseEntry tracks progress for one phase. Score is set once the phase's
// artifact has been scored.
type PhaseEntry struct {
	Name        Phase  `json:"name"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
	Score       *int   `json:"score,omitempty"`
}

// Project is persisted as project.json in its own directory.
type Project struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Context      string       `json:"context"`
	Phases       []PhaseEntry `json:"phases"`
	CurrentPhase Phase        `json:"current_phase"`
	Status       Status       `json:"status"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
}

// NewProject builds an active project positioned at the draft phase.
// The ID is the slug of the title; the store resolves collisions.
func NewProject(title, context string) *Project {
	now := timestamp()
	phases := make([]PhaseEntry, len(PhaseOrder))
	for i, p := range PhaseOrder {
		phases[i] = PhaseEntry{Name: p, Status: PhasePending}
	}
	phases[0].Status = PhaseInProgress
	phases[0].StartedAt = now

	return &Project{
		ID:           Slugify(title),
		Title:        strings.TrimSpace(title),
		Context:      strings.TrimSpace(context),
		Phases:       phases,
		CurrentPhase: PhaseOrder[0],
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Entry returns the entry for the given phase, or nil.
func (p *Project) Entry(phase Phase) *PhaseEntry {
	for i := range p.Phases {
		if p.Phases[i].Name == phase {
			return &p.Phases[i]
		}
	}
	return nil
}

// LatestScore returns the most recent phase score, if any phase was scored.
func (p *Project) LatestScore() (int, bool) {
	for i := len(p.Phases) - 1; i >= 0; i-- {
		if p.Phases[i].Score != nil {
			return *p.Phases[i].Score, true
		}
	}
	return 0, false
}

// --- Slug generation ---

const maxSlugLen = 50

// Slugify converts a title into a filesystem-safe slug.
// Example: "Checkout: Apply Promo Codes" -> "checkout-apply-promo-codes"
// Empty input returns "untitled".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ' || r == '_' || r == '-' || r == ':' || r == '/' || r == '.':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "untitled"
	}
	if len(slug) <= maxSlugLen {
		return slug
	}

	truncated := slug[:maxSlugLen]
	if i := strings.LastIndex(truncated, "-"); i > maxSlugLen/2 {
		truncated = truncated[:i]
	}
	return strings.TrimRight(truncated, "-")
}
