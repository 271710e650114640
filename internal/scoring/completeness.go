package scoring

import (
	"fmt"
	"strings"

	"github.com/bordenet/acceptance-criteria-assistant/internal/patterns"
)

// Goldilocks range for the criterion count.
const (
	MinCriteria = 3
	MaxCriteria = 7
)

// DetectCompleteness counts criteria, error and edge case coverage, and
// the weight of required sections present.
func DetectCompleteness(text string, lib *patterns.Library) CompletenessDetection {
	d := CompletenessDetection{
		CriterionCount:     lib.CountCheckboxes(text),
		HasErrorCases:      len(lib.ErrorCases(text)) > 0,
		HasEdgeCases:       len(lib.EdgeCases(text)) > 0,
		TotalSectionWeight: lib.TotalSectionWeight(),
		MissingSections:    []string{},
	}
	for _, sec := range lib.Sections() {
		if sec.Present(text) {
			d.SectionWeight += sec.Weight
		} else {
			d.MissingSections = append(d.MissingSections, sec.Name)
		}
	}
	return d
}

// ScoreCompleteness converts completeness signals into up to 20 points.
func ScoreCompleteness(d CompletenessDetection) CompletenessScore {
	s := CompletenessScore{DimensionScore: newDimension(MaxCompleteness), Detection: d}

	switch n := d.CriterionCount; {
	case n >= MinCriteria && n <= MaxCriteria:
		s.add("criterion count", 8, 8)
		s.strength(fmt.Sprintf("%d criteria, within the %d-%d range", n, MinCriteria, MaxCriteria))
	case n > MaxCriteria:
		s.add("criterion count", 4, 8)
		s.issue(fmt.Sprintf("Scope creep: too many criteria (%d); split the feature or keep %d-%d", n, MinCriteria, MaxCriteria))
	case n > 0:
		s.add("criterion count", 4, 8)
		s.issue(fmt.Sprintf("Too few criteria (%d); aim for %d-%d", n, MinCriteria, MaxCriteria))
	default:
		s.add("criterion count", 0, 8)
		s.issue("No criteria found")
	}

	switch {
	case d.HasErrorCases && d.HasEdgeCases:
		s.add("error and edge cases", 6, 6)
		s.strength("Covers error and edge cases")
	case d.HasErrorCases:
		s.add("error and edge cases", 3, 6)
		s.strength("Covers error cases")
		s.issue("No edge cases (empty state, limits, concurrency)")
	case d.HasEdgeCases:
		s.add("error and edge cases", 3, 6)
		s.strength("Covers edge cases")
		s.issue("No error cases (invalid input, timeouts, failures)")
	default:
		s.add("error and edge cases", 0, 6)
		s.issue("No error or edge cases")
	}

	// Integer comparison avoids float rounding at the 90% and 60% marks.
	total := d.TotalSectionWeight
	switch {
	case total > 0 && d.SectionWeight*10 >= total*9:
		s.add("sections", 6, 6)
		s.strength("All required sections present")
	case total > 0 && d.SectionWeight*10 >= total*6:
		s.add("sections", 3, 6)
		s.issue("Missing sections: " + strings.Join(d.MissingSections, ", "))
	default:
		s.add("sections", 0, 6)
		if len(d.MissingSections) > 0 {
			s.issue("Missing sections: " + strings.Join(d.MissingSections, ", "))
		}
	}

	s.clamp()
	return s
}
