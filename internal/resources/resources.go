// Package resources implements the MCP resources.
//
// Resources are read-only JSON documents addressed by ac:// URIs.
package resources

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bordenet/acceptance-criteria-assistant/internal/patterns"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
	"github.com/bordenet/acceptance-criteria-assistant/internal/slop"
	"github.com/bordenet/acceptance-criteria-assistant/internal/workflow"
)

// Resource URIs.
const (
	RubricURI   = "ac://rubric"
	ProjectsURI = "ac://projects"
)

// Handler serves the rubric and project list.
type Handler struct {
	store workflow.Store
	lib   *patterns.Library
	slop  *slop.Detector
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store workflow.Store, lib *patterns.Library, detector *slop.Detector) *Handler {
	if lib == nil {
		lib = patterns.Default()
	}
	if detector == nil {
		detector = slop.NewDetector()
	}
	return &Handler{store: store, lib: lib, slop: detector}
}

// Rubric is the published scoring rubric.
type Rubric struct {
	Maxima      map[string]int   `json:"maxima"`
	Total       int              `json:"total"`
	Criteria    CriteriaRange    `json:"criteria"`
	Slop        SlopRules        `json:"slop"`
	Patterns    patterns.Catalog `json:"patterns"`
	SlopPhrases []slop.Phrase    `json:"slop_phrases"`
}

// CriteriaRange is the target number of checkbox criteria.
type CriteriaRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SlopRules describes how the slop penalty becomes a deduction.
type SlopRules struct {
	Factor float64 `json:"factor"`
	Cap    int     `json:"cap"`
}

// BuildRubric assembles the rubric from the live tables.
func (h *Handler) BuildRubric() Rubric {
	return Rubric{
		Maxima: map[string]int{
			scoring.DimensionStructure:    scoring.MaxStructure,
			scoring.DimensionClarity:      scoring.MaxClarity,
			scoring.DimensionTestability:  scoring.MaxTestability,
			scoring.DimensionCompleteness: scoring.MaxCompleteness,
		},
		Total:       scoring.MaxTotal,
		Criteria:    CriteriaRange{Min: scoring.MinCriteria, Max: scoring.MaxCriteria},
		Slop:        SlopRules{Factor: scoring.SlopFactor, Cap: scoring.SlopCap},
		Patterns:    h.lib.Catalog(),
		SlopPhrases: h.slop.Phrases(),
	}
}

// RubricResource returns the MCP resource definition for the rubric.
func (h *Handler) RubricResource() mcp.Resource {
	return mcp.NewResource(
		RubricURI,
		"Acceptance Criteria Rubric",
		mcp.WithResourceDescription("Dimension maxima, pattern tables and slop phrases used for scoring"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleRubric returns the rubric as JSON.
func (h *Handler) HandleRubric(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.BuildRubric())
}

// ProjectsResource returns the MCP resource definition for the project list.
func (h *Handler) ProjectsResource() mcp.Resource {
	return mcp.NewResource(
		ProjectsURI,
		"Acceptance Criteria Projects",
		mcp.WithResourceDescription("Workflow projects with their phases and scores, most recent first"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleProjects returns every workflow project as JSON.
func (h *Handler) HandleProjects(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projects, err := h.store.List()
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}
	if projects == nil {
		projects = []workflow.Project{}
	}
	return jsonResource(req.Params.URI, projects)
}
