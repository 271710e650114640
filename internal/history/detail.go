package history

import "fmt"

// Detail levels for listing history. summary shows one line per record,
// standard adds the dimension split, full includes the document text.
const (
	DetailSummary  = "summary"
	DetailStandard = "standard"
	DetailFull     = "full"
)

// DetailLevelValues returns the enum values for tool definitions.
func DetailLevelValues() []string {
	return []string{DetailSummary, DetailStandard, DetailFull}
}

// ParseDetailLevel defaults empty or unknown values to standard.
func ParseDetailLevel(s string) string {
	switch s {
	case DetailSummary, DetailFull:
		return s
	default:
		return DetailStandard
	}
}

// NavigationHint returns a footer when results were capped by a limit,
// or "" when everything fit.
func NavigationHint(showing, total int) string {
	if total <= 0 || showing >= total {
		return ""
	}
	return fmt.Sprintf("\nShowing %d of %d. Raise limit or narrow the query for more.", showing, total)
}

// Count returns the number of stored records, optionally for one project.
func (s *Store) Count(project string) (int, error) {
	var n int
	var err error
	if project == "" {
		err = s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n)
	} else {
		err = s.db.QueryRow("SELECT COUNT(*) FROM records WHERE project = ?", project).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
