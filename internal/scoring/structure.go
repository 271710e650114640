package scoring

import (
	"fmt"

	"github.com/bordenet/acceptance-criteria-assistant/internal/patterns"
)

// DetectStructure reports the summary and out-of-scope headings and the
// checkbox count.
func DetectStructure(text string, lib *patterns.Library) StructureDetection {
	d := StructureDetection{CheckboxCount: lib.CountCheckboxes(text)}
	if s, ok := lib.Section(patterns.SectionSummary); ok {
		d.HasSummary = s.Present(text)
	}
	if s, ok := lib.Section(patterns.SectionOutOfScope); ok {
		d.HasOutOfScope = s.Present(text)
	}
	return d
}

// ScoreStructure converts structure signals into up to 25 points:
// summary 10, checkboxes 10 (5 for one or two), out of scope 5.
func ScoreStructure(d StructureDetection) StructureScore {
	s := StructureScore{DimensionScore: newDimension(MaxStructure), Detection: d}

	if d.HasSummary {
		s.add("summary", 10, 10)
		s.strength("Has a summary section")
	} else {
		s.add("summary", 0, 10)
		s.issue("Missing summary section")
	}

	switch {
	case d.CheckboxCount >= 3:
		s.add("checkboxes", 10, 10)
		s.strength(fmt.Sprintf("Has %d checkbox criteria", d.CheckboxCount))
	case d.CheckboxCount > 0:
		s.add("checkboxes", 5, 10)
		s.issue(fmt.Sprintf("Only %d checkbox criteria; add at least 3 using - [ ]", d.CheckboxCount))
	default:
		s.add("checkboxes", 0, 10)
		s.issue("No checkbox criteria; list each criterion as - [ ]")
	}

	if d.HasOutOfScope {
		s.add("out of scope", 5, 5)
		s.strength("Has an out-of-scope section")
	} else {
		s.add("out of scope", 0, 5)
		s.issue("Missing out-of-scope section")
	}

	s.clamp()
	return s
}
