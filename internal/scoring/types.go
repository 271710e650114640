// Package scoring grades an acceptance-criteria document against a fixed
// four-dimension rubric.
//
// Each dimension is split into a detector, which only counts signals, and a
// scorer, which turns those counts into points and annotations. The
// Validator runs all four plus the slop detector and combines them. Every
// call builds fresh records; nothing is cached between calls.
package scoring

// Dimension maxima. They sum to 100.
const (
	MaxStructure    = 25
	MaxClarity      = 30
	MaxTestability  = 25
	MaxCompleteness = 20
	MaxTotal        = MaxStructure + MaxClarity + MaxTestability + MaxCompleteness
)

// Dimension names, used for display and breakdown lookup.
const (
	DimensionStructure    = "structure"
	DimensionClarity      = "clarity"
	DimensionTestability  = "testability"
	DimensionCompleteness = "completeness"
)

// NoContentIssue is the single issue reported on every dimension when the
// input is absent or empty.
const NoContentIssue = "No content to validate"

// SubScore is one line of a dimension's point breakdown. For the
// deduction-based testability dimension Points is zero or negative and
// MaxPoints is zero.
type SubScore struct {
	Name      string `json:"name"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"max_points"`
}

// DimensionScore is the scored form of one rubric dimension.
// Invariant: 0 <= Score <= MaxScore.
type DimensionScore struct {
	Score     int        `json:"score"`
	MaxScore  int        `json:"max_score"`
	Issues    []string   `json:"issues"`
	Strengths []string   `json:"strengths"`
	Breakdown []SubScore `json:"breakdown,omitempty"`
}

// SubScore returns the named breakdown line.
func (d DimensionScore) SubScore(name string) (SubScore, bool) {
	for _, s := range d.Breakdown {
		if s.Name == name {
			return s, true
		}
	}
	return SubScore{}, false
}

func (d *DimensionScore) issue(s string)    { d.Issues = append(d.Issues, s) }
func (d *DimensionScore) strength(s string) { d.Strengths = append(d.Strengths, s) }

func (d *DimensionScore) add(name string, points, maxPoints int) {
	d.Score += points
	d.Breakdown = append(d.Breakdown, SubScore{Name: name, Points: points, MaxPoints: maxPoints})
}

// clamp forces Score into [0, MaxScore].
func (d *DimensionScore) clamp() {
	if d.Score < 0 {
		d.Score = 0
	}
	if d.Score > d.MaxScore {
		d.Score = d.MaxScore
	}
}

func newDimension(maxScore int) DimensionScore {
	return DimensionScore{MaxScore: maxScore, Issues: []string{}, Strengths: []string{}}
}

func emptyDimension(maxScore int) DimensionScore {
	return DimensionScore{MaxScore: maxScore, Issues: []string{NoContentIssue}, Strengths: []string{}}
}

// --- Detections ---

// StructureDetection holds the raw structure signals.
type StructureDetection struct {
	HasSummary    bool `json:"has_summary"`
	CheckboxCount int  `json:"checkbox_count"`
	HasOutOfScope bool `json:"has_out_of_scope"`
}

// ClarityDetection holds the raw clarity signals. Counts are total hits,
// not unique terms.
type ClarityDetection struct {
	ActionVerbCount int  `json:"action_verb_count"`
	MetricsCount    int  `json:"metrics_count"`
	HasThresholds   bool `json:"has_thresholds"`
}

// TestabilityDetection holds the raw testability signals. VagueTermCount
// is the raw occurrence count and drives the deduction tier; VagueTerms is
// the distinct set, in first-seen order, for reporting.
type TestabilityDetection struct {
	VagueTermCount           int      `json:"vague_term_count"`
	VagueTerms               []string `json:"vague_terms"`
	HasUserStoryAntiPattern  bool     `json:"has_user_story_anti_pattern"`
	HasGherkinAntiPattern    bool     `json:"has_gherkin_anti_pattern"`
	HasCompoundCriteria      bool     `json:"has_compound_criteria"`
	HasImplementationDetails bool     `json:"has_implementation_details"`
	ImplementationTerms      []string `json:"implementation_terms"`
}

// CompletenessDetection holds the raw completeness signals.
type CompletenessDetection struct {
	CriterionCount     int      `json:"criterion_count"`
	HasErrorCases      bool     `json:"has_error_cases"`
	HasEdgeCases       bool     `json:"has_edge_cases"`
	SectionWeight      int      `json:"section_weight"`
	TotalSectionWeight int      `json:"total_section_weight"`
	MissingSections    []string `json:"missing_sections"`
}

// --- Dimension results ---

// StructureScore is the structure dimension with its detection.
type StructureScore struct {
	DimensionScore
	Detection StructureDetection `json:"detection"`
}

// ClarityScore is the clarity dimension with its detection.
type ClarityScore struct {
	DimensionScore
	Detection ClarityDetection `json:"detection"`
}

// TestabilityScore is the testability dimension with its detection.
type TestabilityScore struct {
	DimensionScore
	Detection TestabilityDetection `json:"detection"`
}

// CompletenessScore is the completeness dimension with its detection.
type CompletenessScore struct {
	DimensionScore
	Detection CompletenessDetection `json:"detection"`
}

// SlopDetection is the slop penalty as applied to the total.
type SlopDetection struct {
	Penalty   float64  `json:"penalty"`
	Deduction int      `json:"deduction"`
	Issues    []string `json:"issues"`
}

// ValidationResult is the composite score of one document.
// Invariant: TotalScore = max(0, sum of dimension scores - slop deduction).
type ValidationResult struct {
	TotalScore    int               `json:"total_score"`
	Structure     StructureScore    `json:"structure"`
	Clarity       ClarityScore      `json:"clarity"`
	Testability   TestabilityScore  `json:"testability"`
	Completeness  CompletenessScore `json:"completeness"`
	SlopDetection SlopDetection     `json:"slop_detection"`
}

// NamedDimension pairs a dimension name with its score.
type NamedDimension struct {
	Name string
	DimensionScore
}

// Dimensions lists the four dimensions in rubric order.
func (r ValidationResult) Dimensions() []NamedDimension {
	return []NamedDimension{
		{DimensionStructure, r.Structure.DimensionScore},
		{DimensionClarity, r.Clarity.DimensionScore},
		{DimensionTestability, r.Testability.DimensionScore},
		{DimensionCompleteness, r.Completeness.DimensionScore},
	}
}

// Grade returns the letter grade of the total.
func (r ValidationResult) Grade() string { return LetterGrade(r.TotalScore) }

// distinct removes duplicates, keeping first-seen order.
func distinct(in []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
