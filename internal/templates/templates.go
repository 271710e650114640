// Package templates renders the prompts and skeleton documents used by the
// drafting workflow. Templates are embedded at build time.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

//go:embed files/*.md.tmpl
var files embed.FS

// Template names.
const (
	Draft     = "draft.md.tmpl"
	Review    = "review.md.tmpl"
	Synthesis = "synthesis.md.tmpl"
	Critique  = "critique.md.tmpl"
	Document  = "document.md.tmpl"
)

// Renderer renders a named template with the given data.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// EmbedRenderer renders the templates compiled into the binary.
type EmbedRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*EmbedRenderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"title": title,
	}).ParseFS(files, "files/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &EmbedRenderer{tmpl: tmpl}, nil
}

// Render executes the named template.
func (r *EmbedRenderer) Render(name string, data any) (string, error) {
	t := r.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// DraftData feeds the draft prompt.
type DraftData struct {
	Title       string
	Context     string
	MinCriteria int
	MaxCriteria int
}

// NewDraftData fills in the criterion range.
func NewDraftData(title, context string) DraftData {
	return DraftData{
		Title:       title,
		Context:     context,
		MinCriteria: scoring.MinCriteria,
		MaxCriteria: scoring.MaxCriteria,
	}
}

// ReviewData feeds the adversarial review prompt.
type ReviewData struct {
	Title string
	Draft string
	Score CritiqueData
}

// SynthesisData feeds the final synthesis prompt.
type SynthesisData struct {
	Title       string
	Draft       string
	Review      string
	MinCriteria int
	MaxCriteria int
}

// NewSynthesisData fills in the criterion range.
func NewSynthesisData(title, draft, review string) SynthesisData {
	return SynthesisData{
		Title:       title,
		Draft:       draft,
		Review:      review,
		MinCriteria: scoring.MinCriteria,
		MaxCriteria: scoring.MaxCriteria,
	}
}

// DocumentData feeds the blank document skeleton.
type DocumentData struct {
	Title string
}

// CritiqueDimension is one rubric dimension flattened for templates.
type CritiqueDimension struct {
	Name     string
	Score    int
	MaxScore int
	Issues   []string
}

// CritiqueData is a ValidationResult flattened for templates.
type CritiqueData struct {
	TotalScore    int
	Grade         string
	Label         string
	Dimensions    []CritiqueDimension
	SlopDeduction int
	SlopIssues    []string
	Document      string
}

// NewCritiqueData flattens r. Document is left for the caller.
func NewCritiqueData(r scoring.ValidationResult) CritiqueData {
	d := CritiqueData{
		TotalScore:    r.TotalScore,
		Grade:         r.Grade(),
		Label:         scoring.Label(r.TotalScore),
		SlopDeduction: r.SlopDetection.Deduction,
		SlopIssues:    r.SlopDetection.Issues,
	}
	for _, dim := range r.Dimensions() {
		d.Dimensions = append(d.Dimensions, CritiqueDimension{
			Name:     title(dim.Name),
			Score:    dim.Score,
			MaxScore: dim.MaxScore,
			Issues:   dim.Issues,
		})
	}
	return d
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
