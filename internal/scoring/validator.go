package scoring

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/bordenet/acceptance-criteria-assistant/internal/patterns"
	"github.com/bordenet/acceptance-criteria-assistant/internal/slop"
)

// Slop deduction calibration: deduction = min(SlopCap, floor(penalty * SlopFactor)).
const (
	SlopFactor = 0.6
	SlopCap    = 5
)

// Validator scores documents. It holds only read-only tables, so one
// Validator may be shared across goroutines.
type Validator struct {
	lib       *patterns.Library
	slop      *slop.Detector
	minLength int
}

// Option configures a Validator.
type Option func(*Validator)

// WithLibrary overrides the pattern library.
func WithLibrary(lib *patterns.Library) Option {
	return func(v *Validator) { v.lib = lib }
}

// WithSlopDetector overrides the slop detector.
func WithSlopDetector(d *slop.Detector) Option {
	return func(v *Validator) { v.slop = d }
}

// WithMinLength treats trimmed input shorter than n runes as empty.
func WithMinLength(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.minLength = n
		}
	}
}

// NewValidator creates a Validator over the default tables.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.lib == nil {
		v.lib = patterns.Default()
	}
	if v.slop == nil {
		v.slop = slop.NewDetector()
	}
	return v
}

// Library returns the pattern library the validator scores with.
func (v *Validator) Library() *patterns.Library { return v.lib }

// SlopDetector returns the detector behind the slop deduction.
func (v *Validator) SlopDetector() *slop.Detector { return v.slop }

var defaultValidator = NewValidator()

// Validate scores text with the default Validator.
func Validate(text string) ValidationResult {
	return defaultValidator.Validate(text)
}

// ValidateValue scores an untyped value with the default Validator.
func ValidateValue(v any) ValidationResult {
	return defaultValidator.ValidateValue(v)
}

// ValidateValue scores v if it holds text; nil and any other type yield
// the empty result.
func (v *Validator) ValidateValue(in any) ValidationResult {
	switch t := in.(type) {
	case string:
		return v.Validate(t)
	case *string:
		if t != nil {
			return v.Validate(*t)
		}
	case []byte:
		return v.Validate(string(t))
	}
	return EmptyResult()
}

// Validate scores text. Empty input is rejected before any detector runs.
func (v *Validator) Validate(text string) ValidationResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < v.minLength {
		return EmptyResult()
	}

	structure := ScoreStructure(DetectStructure(text, v.lib))
	clarity := ScoreClarity(DetectClarity(text, v.lib))
	testability := ScoreTestability(DetectTestability(text, v.lib))
	completeness := ScoreCompleteness(DetectCompleteness(text, v.lib))
	sl := v.slop.Detect(text)

	deduction := SlopDeduction(sl.Penalty)
	sum := structure.Score + clarity.Score + testability.Score + completeness.Score
	total := sum - deduction
	if total < 0 {
		total = 0
	}

	return ValidationResult{
		TotalScore:    total,
		Structure:     structure,
		Clarity:       clarity,
		Testability:   testability,
		Completeness:  completeness,
		SlopDetection: SlopDetection{Penalty: sl.Penalty, Deduction: deduction, Issues: sl.Issues},
	}
}

// SlopDeduction maps a slop penalty to whole points.
func SlopDeduction(penalty float64) int {
	if penalty <= 0 {
		return 0
	}
	d := int(math.Floor(penalty * SlopFactor))
	if d > SlopCap {
		return SlopCap
	}
	return d
}

// EmptyResult is the all-zero result for absent input. Maxima are kept.
func EmptyResult() ValidationResult {
	return ValidationResult{
		Structure:    StructureScore{DimensionScore: emptyDimension(MaxStructure)},
		Clarity:      ClarityScore{DimensionScore: emptyDimension(MaxClarity)},
		Testability:  TestabilityScore{DimensionScore: emptyDimension(MaxTestability), Detection: TestabilityDetection{VagueTerms: []string{}, ImplementationTerms: []string{}}},
		Completeness: CompletenessScore{DimensionScore: emptyDimension(MaxCompleteness), Detection: CompletenessDetection{MissingSections: []string{}}},
		SlopDetection: SlopDetection{
			Issues: []string{},
		},
	}
}
