package scoring

import (
	"fmt"
	"strings"

	"github.com/bordenet/acceptance-criteria-assistant/internal/patterns"
)

// IndependentlyVerifiable is the testability strength recorded when no
// vague terms and no compound criteria are found.
const IndependentlyVerifiable = "All criteria independently verifiable"

// DetectTestability collects vague terms and the four anti-patterns.
func DetectTestability(text string, lib *patterns.Library) TestabilityDetection {
	vague := lib.VagueTerms(text)
	impl := distinct(lib.ImplementationTerms(text))
	return TestabilityDetection{
		VagueTermCount:           len(vague),
		VagueTerms:               distinct(vague),
		HasUserStoryAntiPattern:  lib.HasUserStory(text),
		HasGherkinAntiPattern:    lib.HasGherkin(text),
		HasCompoundCriteria:      lib.HasCompound(text),
		HasImplementationDetails: len(impl) > 0,
		ImplementationTerms:      impl,
	}
}

// ScoreTestability starts at 25 and deducts for each problem found.
func ScoreTestability(d TestabilityDetection) TestabilityScore {
	s := TestabilityScore{DimensionScore: newDimension(MaxTestability), Detection: d}
	s.Score = MaxTestability

	switch {
	case d.VagueTermCount >= 3:
		s.add("vague terms", -15, 0)
		s.issue(fmt.Sprintf("Vague terms used %d times: %s", d.VagueTermCount, strings.Join(d.VagueTerms, ", ")))
	case d.VagueTermCount > 0:
		s.add("vague terms", -5, 0)
		s.issue(fmt.Sprintf("Vague terms used: %s", strings.Join(d.VagueTerms, ", ")))
	default:
		s.add("vague terms", 0, 0)
		s.strength("No vague terms")
	}

	if d.HasUserStoryAntiPattern {
		s.add("user story", -5, 0)
		s.issue(`User story phrasing ("As a ..., I want"); state the observable outcome instead`)
	}
	if d.HasGherkinAntiPattern {
		s.add("gherkin", -5, 0)
		s.issue("Given/When/Then phrasing; write each criterion as one checkable statement")
	}
	if d.HasCompoundCriteria {
		s.add("compound criteria", -3, 0)
		s.issue(`Compound criteria ("and"/"or"); split into separate checkboxes`)
	}
	if d.HasImplementationDetails {
		s.add("implementation details", -5, 0)
		s.issue(fmt.Sprintf("Implementation details (%s); describe what, not how", strings.Join(d.ImplementationTerms, ", ")))
	}

	if d.VagueTermCount == 0 && !d.HasCompoundCriteria {
		s.strength(IndependentlyVerifiable)
	}

	s.clamp()
	return s
}
