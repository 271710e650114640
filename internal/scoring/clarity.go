package scoring

import (
	"fmt"

	"github.com/bordenet/acceptance-criteria-assistant/internal/patterns"
)

// DetectClarity counts action verbs and measurable metrics.
func DetectClarity(text string, lib *patterns.Library) ClarityDetection {
	return ClarityDetection{
		ActionVerbCount: len(lib.ActionVerbs(text)),
		MetricsCount:    len(lib.Metrics(text)),
		HasThresholds:   lib.HasThreshold(text),
	}
}

// ScoreClarity converts clarity signals into up to 30 points. Thresholds
// are reported as a strength but earn nothing.
func ScoreClarity(d ClarityDetection) ClarityScore {
	s := ClarityScore{DimensionScore: newDimension(MaxClarity), Detection: d}

	switch {
	case d.ActionVerbCount >= 5:
		s.add("action verbs", 15, 15)
		s.strength(fmt.Sprintf("Uses %d action verbs", d.ActionVerbCount))
	case d.ActionVerbCount >= 3:
		s.add("action verbs", 10, 15)
		s.issue(fmt.Sprintf("Only %d action verbs; aim for 5 or more", d.ActionVerbCount))
	case d.ActionVerbCount > 0:
		s.add("action verbs", 5, 15)
		s.issue(fmt.Sprintf("Only %d action verbs; aim for 5 or more", d.ActionVerbCount))
	default:
		s.add("action verbs", 0, 15)
		s.issue("No action verbs; start criteria with display, validate, save, etc.")
	}

	switch {
	case d.MetricsCount >= 3:
		s.add("metrics", 15, 15)
		s.strength(fmt.Sprintf("Has %d measurable metrics", d.MetricsCount))
	case d.MetricsCount > 0:
		s.add("metrics", 8, 15)
		s.issue(fmt.Sprintf("Only %d measurable metrics; aim for 3 or more", d.MetricsCount))
	default:
		s.add("metrics", 0, 15)
		s.issue("No measurable metrics; add numbers with units, e.g. within 200ms")
	}

	if d.HasThresholds {
		s.strength("States explicit numeric thresholds")
	}

	s.clamp()
	return s
}
