package watch

import (
	"fmt"
	"os"
	"sync"

	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

// Update is the outcome of one re-score.
type Update struct {
	Result scoring.ValidationResult
	// Delta is the change in total score since the previous update. It is
	// zero on the first update.
	Delta int
	First bool
}

// Session re-scores a file and remembers the previous total.
type Session struct {
	validator *scoring.Validator

	mu       sync.Mutex
	previous int
	scored   bool
}

// NewSession creates a Session that scores with v.
func NewSession(v *scoring.Validator) *Session {
	if v == nil {
		v = scoring.NewValidator()
	}
	return &Session{validator: v}
}

// Rescore reads path and scores it.
func (s *Session) Rescore(path string) (Update, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Update{}, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Score(string(data)), nil
}

// Score scores text and records it as the latest total.
func (s *Session) Score(text string) Update {
	r := s.validator.Validate(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	u := Update{Result: r, First: !s.scored}
	if s.scored {
		u.Delta = r.TotalScore - s.previous
	}
	s.previous = r.TotalScore
	s.scored = true
	return u
}

// FormatDelta renders a delta as "+3", "-2" or "±0".
func FormatDelta(d int) string {
	switch {
	case d > 0:
		return fmt.Sprintf("+%d", d)
	case d < 0:
		return fmt.Sprintf("%d", d)
	default:
		return "±0"
	}
}
