package templates

import (
	"strings"
	"testing"

	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

const sampleDoc = `## Summary
Users can reset their password by email.

## Acceptance Criteria
- [ ] Send a reset email within 30 seconds of the request
- [ ] Display an error when the email address is invalid
- [ ] Expire the reset link after 24 hours

## Out of Scope
- SMS reset
`

// --- NewRenderer ---

func TestNewRenderer_Succeeds(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	if r == nil {
		t.Fatal("NewRenderer() returned nil")
	}
	var _ Renderer = r
}

// --- Render: Draft ---

func TestRender_Draft(t *testing.T) {
	r, _ := NewRenderer()

	out, err := r.Render(Draft, NewDraftData("Password reset", "Support gets 40 tickets a week."))
	if err != nil {
		t.Fatalf("Render(Draft) failed: %v", err)
	}

	checks := []string{
		"# Feature: Password reset",
		"Support gets 40 tickets a week.",
		"## Summary",
		"## Acceptance Criteria",
		"## Out of Scope",
		"Between 3 and 7 checkbox items",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("Draft output missing: %q", check)
		}
	}
}

func TestRender_DraftWithoutContext(t *testing.T) {
	r, _ := NewRenderer()
	out, err := r.Render(Draft, NewDraftData("X", ""))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "no additional context") {
		t.Error("empty context placeholder missing")
	}
}

// --- Render: Review ---

func TestRender_Review(t *testing.T) {
	r, _ := NewRenderer()
	res := scoring.Validate(sampleDoc)

	out, err := r.Render(Review, ReviewData{
		Title: "Password reset",
		Draft: sampleDoc,
		Score: NewCritiqueData(res),
	})
	if err != nil {
		t.Fatalf("Render(Review) failed: %v", err)
	}

	for _, check := range []string{
		"adversarial reviewer",
		"Send a reset email within 30 seconds",
		"### Structure:",
		"### Completeness:",
	} {
		if !strings.Contains(out, check) {
			t.Errorf("Review output missing: %q", check)
		}
	}
}

// --- Render: Synthesis ---

func TestRender_Synthesis(t *testing.T) {
	r, _ := NewRenderer()
	out, err := r.Render(Synthesis, NewSynthesisData("Password reset", "DRAFT-BODY", "REVIEW-BODY"))
	if err != nil {
		t.Fatalf("Render(Synthesis) failed: %v", err)
	}
	if !strings.Contains(out, "DRAFT-BODY") || !strings.Contains(out, "REVIEW-BODY") {
		t.Error("synthesis should include draft and review")
	}
	if !strings.Contains(out, "3-7 checkbox criteria") {
		t.Error("criterion range missing")
	}
}

// --- Render: Critique ---

func TestRender_Critique(t *testing.T) {
	r, _ := NewRenderer()

	doc := "## Acceptance Criteria\n- [ ] The page loads fast and is intuitive\n"
	data := NewCritiqueData(scoring.Validate(doc))
	data.Document = doc

	out, err := r.Render(Critique, data)
	if err != nil {
		t.Fatalf("Render(Critique) failed: %v", err)
	}
	if !strings.Contains(out, "Vague terms used") {
		t.Errorf("critique should list testability issues:\n%s", out)
	}
	if !strings.Contains(out, doc) {
		t.Error("critique should embed the document")
	}
}

func TestNewCritiqueData(t *testing.T) {
	res := scoring.Validate(sampleDoc)
	d := NewCritiqueData(res)

	if d.TotalScore != res.TotalScore || d.Grade != res.Grade() {
		t.Errorf("total/grade = %d/%s", d.TotalScore, d.Grade)
	}
	if len(d.Dimensions) != 4 {
		t.Fatalf("dimensions = %d, want 4", len(d.Dimensions))
	}
	if d.Dimensions[0].Name != "Structure" || d.Dimensions[0].MaxScore != scoring.MaxStructure {
		t.Errorf("first dimension = %+v", d.Dimensions[0])
	}
}

// --- Render: Document ---

func TestRender_Document(t *testing.T) {
	r, _ := NewRenderer()

	out, err := r.Render(Document, DocumentData{Title: "Checkout"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "# Checkout") {
		t.Errorf("heading = %q", strings.SplitN(out, "\n", 2)[0])
	}

	// The skeleton itself must carry all three scored sections.
	res := scoring.Validate(out)
	if !res.Structure.Detection.HasSummary || !res.Structure.Detection.HasOutOfScope {
		t.Error("skeleton missing scored sections")
	}
}

func TestRender_DocumentEmptyData(t *testing.T) {
	r, _ := NewRenderer()
	out, err := r.Render(Document, DocumentData{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "# Feature name") {
		t.Error("empty title placeholder missing")
	}
}

// --- Render: Unknown ---

func TestRender_UnknownTemplate(t *testing.T) {
	r, _ := NewRenderer()
	if _, err := r.Render("nonexistent.md.tmpl", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
