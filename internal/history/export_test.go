package history

import (
	"database/sql"
	"time"
)

// DB exposes the internal *sql.DB for tests in history_test.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SetClock replaces the package clock and returns a restore func.
func SetClock(fn func() time.Time) func() {
	prev := timeNow
	timeNow = fn
	return func() { timeNow = prev }
}

// SanitizeFTS exposes sanitizeFTS for tests.
var SanitizeFTS = sanitizeFTS
