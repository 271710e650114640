package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bordenet/acceptance-criteria-assistant/internal/slop"
	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

func read(t *testing.T, fn func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error), uri string) mcp.TextResourceContents {
	t.Helper()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	contents, err := fn(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "content is %T", contents[0])
	return tc
}

func TestRubric(t *testing.T) {
	h := NewHandler(workflow.NewFileStore(t.TempDir()), nil, nil)
	assert.Equal(t, RubricURI, h.RubricResource().URI)

	tc := read(t, h.HandleRubric, RubricURI)
	assert.Equal(t, "application/json", tc.MIMEType)

	var got struct {
		Maxima   map[string]int `json:"maxima"`
		Total    int            `json:"total"`
		Criteria struct {
			Min int `json:"min"`
			Max int `json:"max"`
		} `json:"criteria"`
		Patterns struct {
			VagueTerms []string `json:"vague_terms"`
			Sections   []struct {
				Name   string `json:"name"`
				Weight int    `json:"weight"`
			} `json:"sections"`
		} `json:"patterns"`
		SlopPhrases []struct {
			Text string `json:"text"`
		} `json:"slop_phrases"`
	}
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &got))

	assert.Equal(t, 100, got.Total)
	assert.Equal(t, map[string]int{"structure": 25, "clarity": 30, "testability": 25, "completeness": 20}, got.Maxima)
	assert.Equal(t, 3, got.Criteria.Min)
	assert.Equal(t, 7, got.Criteria.Max)
	assert.Contains(t, got.Patterns.VagueTerms, "user-friendly")
	assert.Len(t, got.Patterns.Sections, 3)
	assert.NotEmpty(t, got.SlopPhrases)
}

func TestRubric_PublishesInjectedSlopPhrases(t *testing.T) {
	detector := slop.NewDetectorWithPhrases([]slop.Phrase{
		{Text: "moving forward", Category: slop.CategoryFiller, Severity: 1},
		{Text: "synergize", Category: slop.CategoryBuzzword, Severity: 2},
	})
	h := NewHandler(workflow.NewFileStore(t.TempDir()), nil, detector)

	tc := read(t, h.HandleRubric, RubricURI)
	var got struct {
		SlopPhrases []slop.Phrase `json:"slop_phrases"`
	}
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &got))

	require.Len(t, got.SlopPhrases, 2)
	assert.Equal(t, "moving forward", got.SlopPhrases[0].Text)
	assert.Equal(t, "synergize", got.SlopPhrases[1].Text)
	assert.Equal(t, slop.CategoryBuzzword, got.SlopPhrases[1].Category)
}

func TestProjects(t *testing.T) {
	store := workflow.NewFileStore(t.TempDir())
	h := NewHandler(store, nil, nil)
	assert.Equal(t, ProjectsURI, h.ProjectsResource().URI)

	tc := read(t, h.HandleProjects, ProjectsURI)
	assert.JSONEq(t, "[]", tc.Text)

	require.NoError(t, store.Create(workflow.NewProject("Checkout", "")))
	tc = read(t, h.HandleProjects, ProjectsURI)

	var got []workflow.Project
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "checkout", got[0].ID)
	assert.Equal(t, workflow.PhaseDraft, got[0].CurrentPhase)
}
