// Package patterns holds the rule tables shared by every scoring detector.
//
// All matchers are compiled once into a Library and never mutated after
// construction, so a single Library can be shared by concurrent validators.
// Matching is case-insensitive throughout; section and checkbox patterns
// run in multiline mode so they anchor at line starts.
package patterns

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Section is a required document heading and its weight in the
// completeness section-coverage sub-score.
type Section struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	re     *regexp.Regexp
}

// Present reports whether the heading appears at the start of a line.
func (s Section) Present(text string) bool {
	return s.re != nil && s.re.MatchString(text)
}

// Section names. Kept as constants because detectors look them up by name.
const (
	SectionSummary            = "summary"
	SectionAcceptanceCriteria = "acceptance criteria"
	SectionOutOfScope         = "out of scope"
)

// --- Literal tables ---

var requiredSections = []struct {
	name   string
	weight int
}{
	{SectionSummary, 3},
	{SectionAcceptanceCriteria, 4},
	{SectionOutOfScope, 2},
}

var actionVerbs = []string{
	"implement", "create", "build", "render", "handle", "display", "show",
	"hide", "enable", "disable", "validate", "submit", "load", "save",
	"delete", "update", "fetch", "send", "receive", "trigger", "navigate",
	"redirect", "authenticate", "authorize",
}

var metricComparators = []string{
	"≤", "≥", "<", ">", "=", "under", "within",
	"less than", "more than", "at least", "at most",
}

// metricUnits may each carry an optional trailing "s". The percent sign is
// handled separately because it is not a word character.
var metricUnits = []string{
	"ms", "milliseconds", "seconds", "s", "percent", "kb", "mb", "gb", "tb",
	"px", "items", "users", "requests", "errors", "days", "hours", "minutes",
	"calls", "connections", "records", "retries", "attempts", "rows",
	"entries", "results", "pages", "clicks", "taps", "events",
}

var thresholdPhrases = []string{
	"exactly", "at least", "at most", "maximum", "minimum",
	"up to", "no more than", "no less than",
}

var vagueTerms = []string{
	"works correctly", "handles properly",
	"appropriate", "appropriately",
	"intuitive", "intuitively",
	"user-friendly", "user friendly",
	"seamless", "seamlessly",
	"fast", "slow", "good", "bad", "nice", "better", "worse",
	"adequate", "adequately",
	"sufficient", "sufficiently",
	"reasonable", "reasonably",
	"acceptable", "properly", "correctly",
	"as expected", "as needed",
}

var implementationTerms = []string{
	// frontend
	"react", "angular", "vue", "svelte", "next.js", "jquery",
	// backend runtimes
	"node.js", "django",
	// data stores
	"postgresql", "postgres", "mysql", "mongodb", "redis", "sqlite",
	"dynamodb", "elasticsearch", "kafka",
	// cloud
	"aws", "azure", "gcp", "s3",
	// containers and infra
	"docker", "kubernetes", "k8s", "terraform",
	// API styles
	"graphql", "rest api", "grpc",
	// build tools and package managers
	"webpack", "vite", "npm", "yarn",
}

var errorPhrases = []string{
	"error", "fail", "invalid", "empty", "null", "undefined", "missing",
	"timeout", "offline", "denied", "unauthorized", "forbidden",
	"not found", "exception",
}

// edgePhrases deliberately omits bare "first", "last" and "none".
var edgePhrases = []string{
	"edge case", "boundary condition", "boundary value",
	"upper limit", "lower limit", "maximum value", "minimum value",
	"empty state", "no results", "only one", "zero items", "zero item",
	"overflow", "underflow", "race condition", "concurrent", "simultaneous",
}

// --- Library ---

// Library is the compiled, read-only registry of matchers.
type Library struct {
	sections []Section

	checkbox       *regexp.Regexp
	actionVerb     *regexp.Regexp
	metric         *regexp.Regexp
	threshold      *regexp.Regexp
	vague          *regexp.Regexp
	userStory      *regexp.Regexp
	gherkin        *regexp.Regexp
	compound       *regexp.Regexp
	implementation *regexp.Regexp
	errorCase      *regexp.Regexp
	edgeCase       *regexp.Regexp
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the process-wide Library, compiling it on first use.
func Default() *Library {
	defaultOnce.Do(func() {
		defaultLib = New()
	})
	return defaultLib
}

// New compiles a fresh Library. Most callers want Default.
func New() *Library {
	lib := &Library{
		checkbox:       regexp.MustCompile(`(?im)^[ \t]*-[ \t]*\[[ x]?\]`),
		actionVerb:     regexp.MustCompile(wordAlternation(actionVerbs, true)),
		metric:         regexp.MustCompile(metricExpression()),
		threshold:      regexp.MustCompile(`(?i)` + phraseGroup(thresholdPhrases, `\b`) + `\s+\d`),
		vague:          regexp.MustCompile(wordAlternation(vagueTerms, true)),
		userStory:      regexp.MustCompile(`(?i)\bas[ \t]+(?:a|an|the)[ \t]+[\w \t'-]+?,?[ \t]*i[ \t]+want\b`),
		gherkin:        regexp.MustCompile(`(?im)^[ \t]*(?:[-*][ \t]*(?:\[[ x]?\][ \t]*)?)?(?:given|when|then)[ \t]`),
		compound:       regexp.MustCompile(`(?i)\b(?:and|or)\b`),
		implementation: regexp.MustCompile(wordAlternation(implementationTerms, true)),
		errorCase:      regexp.MustCompile(wordAlternation(errorPhrases, false)),
		edgeCase:       regexp.MustCompile(wordAlternation(edgePhrases, false)),
	}

	for _, s := range requiredSections {
		lib.sections = append(lib.sections, Section{
			Name:   s.name,
			Weight: s.weight,
			re:     regexp.MustCompile(`(?im)^(?:#+[ \t]*)?` + spaced(regexp.QuoteMeta(s.name)) + `\b`),
		})
	}

	return lib
}

// Sections returns the required headings in document order.
func (l *Library) Sections() []Section {
	out := make([]Section, len(l.sections))
	copy(out, l.sections)
	return out
}

// Section looks up a required heading by name.
func (l *Library) Section(name string) (Section, bool) {
	for _, s := range l.sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// TotalSectionWeight is the sum of all section weights.
func (l *Library) TotalSectionWeight() int {
	total := 0
	for _, s := range l.sections {
		total += s.Weight
	}
	return total
}

// CountCheckboxes counts lines that begin with a checkbox criterion marker.
func (l *Library) CountCheckboxes(text string) int {
	return len(l.checkbox.FindAllStringIndex(text, -1))
}

// ActionVerbs returns every action-verb occurrence, lowercased.
func (l *Library) ActionVerbs(text string) []string {
	return normalized(l.actionVerb.FindAllString(text, -1))
}

// Metrics returns every measurable metric occurrence (number plus unit).
func (l *Library) Metrics(text string) []string {
	return l.metric.FindAllString(text, -1)
}

// HasThreshold reports an explicit numeric bound such as "at most 3".
func (l *Library) HasThreshold(text string) bool {
	return l.threshold.MatchString(text)
}

// VagueTerms returns every vague-term occurrence, lowercased, duplicates kept.
func (l *Library) VagueTerms(text string) []string {
	return normalized(l.vague.FindAllString(text, -1))
}

// HasUserStory reports "As a <role>, I want" phrasing.
func (l *Library) HasUserStory(text string) bool {
	return l.userStory.MatchString(text)
}

// HasGherkin reports Given/When/Then at the start of a line or list item.
func (l *Library) HasGherkin(text string) bool {
	return l.gherkin.MatchString(text)
}

// HasCompound reports any standalone "and" or "or".
func (l *Library) HasCompound(text string) bool {
	return l.compound.MatchString(text)
}

// ImplementationTerms returns every technology keyword occurrence, lowercased.
func (l *Library) ImplementationTerms(text string) []string {
	return normalized(l.implementation.FindAllString(text, -1))
}

// ErrorCases returns every error-case phrase occurrence, lowercased.
func (l *Library) ErrorCases(text string) []string {
	return normalized(l.errorCase.FindAllString(text, -1))
}

// EdgeCases returns every edge-case phrase occurrence, lowercased.
func (l *Library) EdgeCases(text string) []string {
	return normalized(l.edgeCase.FindAllString(text, -1))
}

// --- Catalog ---

// Catalog is the enumerable form of the Library, used for the rubric
// resource and for tests.
type Catalog struct {
	Sections            []Section `json:"sections"`
	ActionVerbs         []string  `json:"action_verbs"`
	MetricComparators   []string  `json:"metric_comparators"`
	MetricUnits         []string  `json:"metric_units"`
	ThresholdPhrases    []string  `json:"threshold_phrases"`
	VagueTerms          []string  `json:"vague_terms"`
	ImplementationTerms []string  `json:"implementation_terms"`
	ErrorPhrases        []string  `json:"error_phrases"`
	EdgePhrases         []string  `json:"edge_phrases"`
}

// Catalog returns copies of every literal table.
func (l *Library) Catalog() Catalog {
	return Catalog{
		Sections:            l.Sections(),
		ActionVerbs:         clone(actionVerbs),
		MetricComparators:   clone(metricComparators),
		MetricUnits:         append(clone(metricUnits), "%"),
		ThresholdPhrases:    clone(thresholdPhrases),
		VagueTerms:          clone(vagueTerms),
		ImplementationTerms: clone(implementationTerms),
		ErrorPhrases:        clone(errorPhrases),
		EdgePhrases:         clone(edgePhrases),
	}
}

// --- Expression builders ---

// wordAlternation builds a case-insensitive alternation anchored on a word
// boundary at the start. With closed set, the match must also end on a word
// boundary; otherwise the phrase works as a prefix ("fail" matches "failed").
func wordAlternation(terms []string, closed bool) string {
	tail := ""
	if closed {
		tail = `\b`
	}
	return `(?i)` + phraseGroup(terms, `\b`) + tail
}

// phraseGroup returns a non-capturing group of the given phrases, longest
// first, each prefixed by lead. Spaces inside a phrase match any whitespace.
func phraseGroup(terms []string, lead string) string {
	sorted := clone(terms)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	parts := make([]string, len(sorted))
	for i, t := range sorted {
		parts[i] = spaced(regexp.QuoteMeta(t))
	}
	return lead + `(?:` + strings.Join(parts, "|") + `)`
}

func metricExpression() string {
	var comparators []string
	for _, c := range metricComparators {
		p := spaced(regexp.QuoteMeta(c))
		if c[0] >= 'a' && c[0] <= 'z' {
			p = `\b` + p
		}
		comparators = append(comparators, p)
	}

	units := clone(metricUnits)
	sort.SliceStable(units, func(i, j int) bool { return len(units[i]) > len(units[j]) })

	return `(?i)(?:(?:` + strings.Join(comparators, "|") + `)\s*)?` +
		`\d+(?:\.\d+)?\s*` +
		`(?:%|(?:` + strings.Join(units, "|") + `)s?\b)`
}

func spaced(quoted string) string {
	return strings.ReplaceAll(quoted, " ", `\s+`)
}

func normalized(matches []string) []string {
	if len(matches) == 0 {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = strings.ToLower(strings.Join(strings.Fields(m), " "))
	}
	return out
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
