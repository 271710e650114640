// Package slop flags generic LLM filler language: hedging, empty
// qualifiers, buzzwords and stock phrases. It is independent of the
// four-dimension rubric; the validator turns its penalty into a small
// point deduction.
package slop

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Category groups phrases by the kind of filler they represent.
type Category string

const (
	CategoryHedge    Category = "hedging"
	CategoryFiller   Category = "filler"
	CategoryBuzzword Category = "buzzword"
	CategoryCliche   Category = "cliche"
)

// Phrase is one entry of the detector's table.
type Phrase struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Severity float64  `json:"severity"`
}

// Severity weights. A distinct high-severity phrase on its own is enough
// for a one-point deduction.
const (
	severityLow    = 1.0
	severityMedium = 1.5
	severityHigh   = 2.0
)

// MaxIssues caps the number of representative issue strings returned.
const MaxIssues = 5

var defaultPhrases = []Phrase{
	// Hedging.
	{"it is important to note", CategoryHedge, severityHigh},
	{"it's important to note", CategoryHedge, severityHigh},
	{"it is worth noting", CategoryHedge, severityHigh},
	{"it's worth noting", CategoryHedge, severityHigh},
	{"it should be noted", CategoryHedge, severityMedium},
	{"might potentially", CategoryHedge, severityHigh},
	{"could potentially", CategoryHedge, severityHigh},
	{"generally speaking", CategoryHedge, severityMedium},
	{"to some extent", CategoryHedge, severityMedium},
	{"arguably", CategoryHedge, severityLow},
	{"perhaps", CategoryHedge, severityLow},

	// Filler.
	{"in order to", CategoryFiller, severityLow},
	{"at the end of the day", CategoryFiller, severityMedium},
	{"in today's fast-paced", CategoryFiller, severityHigh},
	{"when it comes to", CategoryFiller, severityMedium},
	{"in terms of", CategoryFiller, severityLow},
	{"basically", CategoryFiller, severityLow},
	{"essentially", CategoryFiller, severityLow},
	{"needless to say", CategoryFiller, severityMedium},
	{"as mentioned earlier", CategoryFiller, severityMedium},

	// Buzzwords.
	{"leverage", CategoryBuzzword, severityMedium},
	{"synergy", CategoryBuzzword, severityHigh},
	{"robust", CategoryBuzzword, severityLow},
	{"cutting-edge", CategoryBuzzword, severityHigh},
	{"state-of-the-art", CategoryBuzzword, severityHigh},
	{"best-in-class", CategoryBuzzword, severityHigh},
	{"world-class", CategoryBuzzword, severityHigh},
	{"next-generation", CategoryBuzzword, severityMedium},
	{"holistic", CategoryBuzzword, severityMedium},
	{"streamline", CategoryBuzzword, severityLow},
	{"empower", CategoryBuzzword, severityMedium},
	{"game-changer", CategoryBuzzword, severityHigh},
	{"paradigm shift", CategoryBuzzword, severityHigh},
	{"comprehensive", CategoryBuzzword, severityLow},

	// Stock LLM phrasing.
	{"delve", CategoryCliche, severityHigh},
	{"tapestry", CategoryCliche, severityHigh},
	{"unlock the power", CategoryCliche, severityHigh},
	{"elevate your", CategoryCliche, severityMedium},
	{"navigate the complexities", CategoryCliche, severityHigh},
	{"a testament to", CategoryCliche, severityMedium},
	{"in conclusion", CategoryCliche, severityMedium},
	{"rest assured", CategoryCliche, severityMedium},
}

// Hit records one distinct phrase found in the text.
type Hit struct {
	Phrase
	Count int `json:"count"`
	First int `json:"first"` // byte offset of the first occurrence
}

// Result is the detector output. Penalty is a continuous magnitude.
type Result struct {
	Penalty float64  `json:"penalty"`
	Issues  []string `json:"issues"`
	Hits    []Hit    `json:"hits,omitempty"`
}

type matcher struct {
	phrase Phrase
	re     *regexp.Regexp
}

// Detector scans text for filler phrases. Safe for concurrent use.
type Detector struct {
	matchers []matcher
}

// NewDetector compiles a detector over the default phrase table.
func NewDetector() *Detector {
	return NewDetectorWithPhrases(defaultPhrases)
}

// NewDetectorWithPhrases compiles a detector over a custom table.
func NewDetectorWithPhrases(phrases []Phrase) *Detector {
	d := &Detector{matchers: make([]matcher, 0, len(phrases))}
	for _, p := range phrases {
		expr := strings.ReplaceAll(regexp.QuoteMeta(strings.ToLower(p.Text)), " ", `\s+`)
		expr = strings.ReplaceAll(expr, "'", "['’]")
		d.matchers = append(d.matchers, matcher{
			phrase: p,
			re:     regexp.MustCompile(`(?i)\b` + expr + `\w*`),
		})
	}
	return d
}

// Phrases returns the default phrase table.
func Phrases() []Phrase {
	out := make([]Phrase, len(defaultPhrases))
	copy(out, defaultPhrases)
	return out
}

// Phrases returns a copy of the table this detector was compiled from.
func (d *Detector) Phrases() []Phrase {
	out := make([]Phrase, len(d.matchers))
	for i, m := range d.matchers {
		out[i] = m.phrase
	}
	return out
}

// Detect scans text and returns the penalty and representative issues.
func (d *Detector) Detect(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Issues: []string{}}
	}

	var hits []Hit
	for _, m := range d.matchers {
		locs := m.re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		hits = append(hits, Hit{Phrase: m.phrase, Count: len(locs), First: locs[0][0]})
	}

	penalty := 0.0
	for _, h := range hits {
		penalty += h.Severity
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Severity != hits[j].Severity {
			return hits[i].Severity > hits[j].Severity
		}
		if hits[i].Count != hits[j].Count {
			return hits[i].Count > hits[j].Count
		}
		return hits[i].First < hits[j].First
	})

	issues := make([]string, 0, MaxIssues)
	for _, h := range hits {
		if len(issues) == MaxIssues {
			break
		}
		issues = append(issues, formatIssue(h))
	}

	return Result{Penalty: penalty, Issues: issues, Hits: hits}
}

func formatIssue(h Hit) string {
	if h.Count > 1 {
		return fmt.Sprintf("Generic %s phrase %q (%d occurrences)", h.Category, h.Text, h.Count)
	}
	return fmt.Sprintf("Generic %s phrase %q", h.Category, h.Text)
}
