package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

const goodDoc = `## Summary
Users can export invoices as CSV.

## Acceptance Criteria
- [ ] Display the export button on the invoices page
- [ ] Generate the CSV within 2 seconds for up to 500 rows
- [ ] Show an error message when the export fails
- [ ] Display an empty state when there are no results

## Out of Scope
- PDF export
`

// --- JSON ---

func TestJSON_MatchesSchema(t *testing.T) {
	for name, r := range map[string]scoring.ValidationResult{
		"good":  scoring.Validate(goodDoc),
		"empty": scoring.EmptyResult(),
		"slop":  scoring.Validate(goodDoc + "\nWe leverage a robust, seamless synergy to delve deeper.\n"),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := JSON(r)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(data, &got))
			assert.EqualValues(t, r.TotalScore, got["total_score"])
			assert.Equal(t, r.Grade(), got["grade"])
			assert.Equal(t, scoring.Label(r.TotalScore), got["label"])
			assert.Equal(t, string(scoring.ColorTier(r.TotalScore)), got["tier"])
		})
	}
}

func TestJSON_DimensionFieldsFlattened(t *testing.T) {
	data, err := JSON(scoring.Validate(goodDoc))
	require.NoError(t, err)

	var got struct {
		Structure struct {
			Score     int            `json:"score"`
			MaxScore  int            `json:"max_score"`
			Detection map[string]any `json:"detection"`
		} `json:"structure"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, scoring.MaxStructure, got.Structure.MaxScore)
	assert.Equal(t, true, got.Structure.Detection["has_summary"])
}

func TestCheckSchema_RejectsDrift(t *testing.T) {
	data, err := JSON(scoring.Validate(goodDoc))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	doc["total_score"] = 140
	delete(doc["clarity"].(map[string]any), "issues")
	doc["testability"].(map[string]any)["max_score"] = 30
	bad, _ := json.Marshal(doc)

	err = CheckSchema(bad)
	require.Error(t, err)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	joined := strings.Join(se.Errors, "\n")
	assert.Contains(t, joined, "total_score")
	assert.Contains(t, joined, "clarity")
	assert.Contains(t, joined, "testability")
}

func TestCheckSchema_NotJSON(t *testing.T) {
	assert.Error(t, CheckSchema([]byte("{not json")))
}

// --- Markdown ---

func TestMarkdown(t *testing.T) {
	r := scoring.Validate(goodDoc)
	out := Markdown(r)

	assert.True(t, strings.HasPrefix(out, "# Score: "))
	assert.Contains(t, out, "| structure | 25/25 |")
	assert.Contains(t, out, "## Testability")
	assert.NotContains(t, out, "| slop |")
}

func TestMarkdown_Empty(t *testing.T) {
	out := Markdown(scoring.EmptyResult())
	assert.Contains(t, out, "# Score: 0/100 (F, Incomplete)")
	assert.Contains(t, out, scoring.NoContentIssue)
}

func TestMarkdown_Slop(t *testing.T) {
	r := scoring.Validate(goodDoc + "\nWe delve into a tapestry of synergy with cutting-edge, world-class tooling.\n")
	require.Greater(t, r.SlopDetection.Deduction, 0)

	out := Markdown(r)
	assert.Contains(t, out, "| slop | -")
	assert.Contains(t, out, "## Filler language")
}

// --- Text ---

func TestText_NoColor(t *testing.T) {
	r := scoring.Validate(goodDoc)
	out := Text(r, false)

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "Score:")
	assert.Contains(t, out, r.Grade())
	for _, name := range []string{"Structure", "Clarity", "Testability", "Completeness"} {
		assert.Contains(t, out, name)
	}
}

func TestText_EmptyHasNoSlopLine(t *testing.T) {
	out := Text(scoring.EmptyResult(), false)
	assert.NotContains(t, out, "Slop")
	assert.Contains(t, out, scoring.NoContentIssue)
}

func TestTierColor(t *testing.T) {
	assert.Equal(t, colorGreen, TierColor(scoring.TierGreen))
	assert.Equal(t, colorYellow, TierColor(scoring.TierYellow))
	assert.Equal(t, colorOrange, TierColor(scoring.TierOrange))
	assert.Equal(t, colorRed, TierColor(scoring.TierRed))
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("█", 20), bar(25, 25))
	assert.Equal(t, strings.Repeat("░", 20), bar(0, 25))
	assert.Equal(t, "", bar(1, 0))
}
