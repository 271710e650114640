// Package report renders a ValidationResult for terminals, MCP clients and
// machine consumers.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xeipuuv/gojsonschema"

	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

//go:embed schema.json
var schema string

var schemaLoader = gojsonschema.NewStringLoader(schema)

// Tier colors.
var (
	colorGreen  = lipgloss.Color("#9ece6a")
	colorYellow = lipgloss.Color("#e0af68")
	colorOrange = lipgloss.Color("#ff9e64")
	colorRed    = lipgloss.Color("#f7768e")
	colorMuted  = lipgloss.Color("#565f89")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	issueStyle    = lipgloss.NewStyle().Foreground(colorRed)
	strengthStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// TierColor returns the display color of a tier.
func TierColor(t scoring.Tier) lipgloss.Color {
	switch t {
	case scoring.TierGreen:
		return colorGreen
	case scoring.TierYellow:
		return colorYellow
	case scoring.TierOrange:
		return colorOrange
	default:
		return colorRed
	}
}

// document is the JSON shape: the result plus its presentation fields.
type document struct {
	scoring.ValidationResult
	Grade string       `json:"grade"`
	Label string       `json:"label"`
	Tier  scoring.Tier `json:"tier"`
}

// SchemaError lists the JSON paths that broke the report contract.
type SchemaError struct {
	Errors []string
}

func (e *SchemaError) Error() string {
	return "report does not match schema: " + strings.Join(e.Errors, "; ")
}

// JSON marshals r with its grade, label and tier, then checks the output
// against the embedded schema.
func JSON(r scoring.ValidationResult) ([]byte, error) {
	data, err := json.MarshalIndent(document{
		ValidationResult: r,
		Grade:            r.Grade(),
		Label:            scoring.Label(r.TotalScore),
		Tier:             scoring.ColorTier(r.TotalScore),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := CheckSchema(data); err != nil {
		return nil, err
	}
	return data, nil
}

// CheckSchema validates a JSON report.
func CheckSchema(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate report: %w", err)
	}
	if result.Valid() {
		return nil
	}
	se := &SchemaError{}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		se.Errors = append(se.Errors, field+": "+desc.Description())
	}
	return se
}

// Markdown renders r for MCP clients.
func Markdown(r scoring.ValidationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Score: %d/%d (%s, %s)\n\n", r.TotalScore, scoring.MaxTotal, r.Grade(), scoring.Label(r.TotalScore))

	b.WriteString("| Dimension | Score |\n|---|---|\n")
	for _, d := range r.Dimensions() {
		fmt.Fprintf(&b, "| %s | %d/%d |\n", d.Name, d.Score, d.MaxScore)
	}
	if r.SlopDetection.Deduction > 0 {
		fmt.Fprintf(&b, "| slop | -%d |\n", r.SlopDetection.Deduction)
	}

	for _, d := range r.Dimensions() {
		if len(d.Issues) == 0 && len(d.Strengths) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", capitalize(d.Name))
		for _, s := range d.Strengths {
			fmt.Fprintf(&b, "- ✓ %s\n", s)
		}
		for _, s := range d.Issues {
			fmt.Fprintf(&b, "- ✗ %s\n", s)
		}
	}

	if len(r.SlopDetection.Issues) > 0 {
		b.WriteString("\n## Filler language\n\n")
		for _, s := range r.SlopDetection.Issues {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	return b.String()
}

// Text renders r for a terminal. With color off no escape codes are
// emitted.
func Text(r scoring.ValidationResult, color bool) string {
	paint := func(s lipgloss.Style, v string) string {
		if !color {
			return v
		}
		return s.Render(v)
	}
	tierStyle := lipgloss.NewStyle().Bold(true).Foreground(TierColor(scoring.ColorTier(r.TotalScore)))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n",
		paint(titleStyle, "Score:"),
		paint(tierStyle, fmt.Sprintf("%d/%d  %s  %s", r.TotalScore, scoring.MaxTotal, r.Grade(), scoring.Label(r.TotalScore))))

	for _, d := range r.Dimensions() {
		dimStyle := lipgloss.NewStyle().Foreground(TierColor(scoring.ColorTier(percent(d.Score, d.MaxScore))))
		fmt.Fprintf(&b, "  %-13s %s  %s\n",
			capitalize(d.Name),
			paint(dimStyle, fmt.Sprintf("%2d/%-2d", d.Score, d.MaxScore)),
			bar(d.Score, d.MaxScore))
		for _, s := range d.Strengths {
			fmt.Fprintf(&b, "    %s %s\n", paint(strengthStyle, "+"), paint(mutedStyle, s))
		}
		for _, s := range d.Issues {
			fmt.Fprintf(&b, "    %s %s\n", paint(issueStyle, "-"), s)
		}
	}

	if sd := r.SlopDetection; sd.Deduction > 0 || len(sd.Issues) > 0 {
		fmt.Fprintf(&b, "  %-13s %s\n", "Slop", paint(issueStyle, fmt.Sprintf("-%d", sd.Deduction)))
		for _, s := range sd.Issues {
			fmt.Fprintf(&b, "    %s %s\n", paint(issueStyle, "-"), s)
		}
	}
	return b.String()
}

const barWidth = 20

func bar(score, maxScore int) string {
	if maxScore <= 0 {
		return ""
	}
	filled := score * barWidth / maxScore
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// percent scales a dimension score to 0-100 so it can share the total's
// color tiers.
func percent(score, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}
	return score * 100 / maxScore
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
