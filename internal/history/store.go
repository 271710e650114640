// Package history persists scored documents so a user can see how a
// document's score moved across drafts and search earlier work.
//
// It uses SQLite (pure Go, modernc.org/sqlite) in WAL mode with an FTS5
// index over titles and content.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level var so tests can control ordering.
var timeNow = time.Now

// DBFile is the database filename inside the data directory.
const DBFile = "history.db"

// ─── Types ───────────────────────────────────────────────────────────────────

// Record is one scored document.
type Record struct {
	ID            string `json:"id"`
	Project       string `json:"project,omitempty"`
	Phase         string `json:"phase,omitempty"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	TotalScore    int    `json:"total_score"`
	Grade         string `json:"grade"`
	Structure     int    `json:"structure"`
	Clarity       int    `json:"clarity"`
	Testability   int    `json:"testability"`
	Completeness  int    `json:"completeness"`
	SlopDeduction int    `json:"slop_deduction"`
	CreatedAt     string `json:"created_at"`
}

// SearchResult embeds a Record with its FTS5 rank.
type SearchResult struct {
	Record
	Rank float64 `json:"rank"`
}

// SearchOptions holds filters for Search.
type SearchOptions struct {
	Project  string `json:"project,omitempty"`
	Phase    string `json:"phase,omitempty"`
	MinScore int    `json:"min_score,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Stats holds aggregate history statistics.
type Stats struct {
	TotalRecords int            `json:"total_records"`
	AverageScore float64        `json:"average_score"`
	BestScore    int            `json:"best_score"`
	ByGrade      map[string]int `json:"by_grade"`
	Projects     []string       `json:"projects"`
}

// NewRecord builds a Record from a validation result.
func NewRecord(project, phase, title, content string, r scoring.ValidationResult) Record {
	return Record{
		Project:       project,
		Phase:         phase,
		Title:         title,
		Content:       content,
		TotalScore:    r.TotalScore,
		Grade:         r.Grade(),
		Structure:     r.Structure.Score,
		Clarity:       r.Clarity.Score,
		Testability:   r.Testability.Score,
		Completeness:  r.Completeness.Score,
		SlopDeduction: r.SlopDetection.Deduction,
	}
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds history store configuration.
type Config struct {
	DataDir          string
	MaxContentLength int
	MaxSearchResults int
}

// DefaultConfig returns the default configuration for the history store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:          filepath.Join(home, ".acs"),
		MaxContentLength: 20000,
		MaxSearchResults: 50,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the score history backed by SQLite + FTS5.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New opens (or creates) the history database in cfg.DataDir.
func New(cfg Config) (*Store, error) {
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = DefaultConfig().MaxSearchResults
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			seq            INTEGER PRIMARY KEY AUTOINCREMENT,
			id             TEXT    NOT NULL UNIQUE,
			project        TEXT    NOT NULL DEFAULT '',
			phase          TEXT    NOT NULL DEFAULT '',
			title          TEXT    NOT NULL,
			content        TEXT    NOT NULL,
			total_score    INTEGER NOT NULL,
			grade          TEXT    NOT NULL,
			structure      INTEGER NOT NULL,
			clarity        INTEGER NOT NULL,
			testability    INTEGER NOT NULL,
			completeness   INTEGER NOT NULL,
			slop_deduction INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_records_project ON records(project);
		CREATE INDEX IF NOT EXISTS idx_records_created ON records(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			title,
			content,
			project,
			content='records',
			content_rowid='seq'
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS triggers (idempotent).
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='records_fts_insert'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER records_fts_insert AFTER INSERT ON records BEGIN
				INSERT INTO records_fts(rowid, title, content, project)
				VALUES (new.seq, new.title, new.content, new.project);
			END;

			CREATE TRIGGER records_fts_delete AFTER DELETE ON records BEGIN
				INSERT INTO records_fts(records_fts, rowid, title, content, project)
				VALUES ('delete', old.seq, old.title, old.content, old.project);
			END;
		`
		if _, err := s.db.Exec(triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return nil
}

// ─── Records ─────────────────────────────────────────────────────────────────

const recordColumns = `id, project, phase, title, content, total_score, grade,
	structure, clarity, testability, completeness, slop_deduction, created_at`

// Add stores a record and returns its generated ID. Content longer than
// MaxContentLength is truncated.
func (s *Store) Add(r Record) (string, error) {
	if strings.TrimSpace(r.Title) == "" {
		r.Title = deriveTitle(r.Content)
	}
	r.ID = uuid.NewString()
	r.Content = Truncate(r.Content, s.cfg.MaxContentLength)
	r.CreatedAt = Now()

	_, err := s.db.Exec(
		`INSERT INTO records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Project, r.Phase, r.Title, r.Content, r.TotalScore, r.Grade,
		r.Structure, r.Clarity, r.Testability, r.Completeness, r.SlopDeduction, r.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("add record: %w", err)
	}
	return r.ID, nil
}

// Get returns a record by ID.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	var r Record
	if err := scanRecord(row, &r); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("record %q not found", id)
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return &r, nil
}

// Recent returns the newest records, optionally filtered by project.
func (s *Store) Recent(project string, limit int) ([]Record, error) {
	limit = s.clampLimit(limit)

	query := `SELECT ` + recordColumns + ` FROM records`
	var args []any
	if project != "" {
		query += " WHERE project = ?"
		args = append(args, project)
	}
	query += " ORDER BY created_at DESC, seq DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		var r Record
		if err := scanRecord(rows, &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Search runs a full-text query. An empty or whitespace-only query falls
// back to the most recent records.
func (s *Store) Search(query string, opts SearchOptions) ([]SearchResult, error) {
	limit := s.clampLimit(opts.Limit)
	ftsQuery := sanitizeFTS(query)

	var (
		sqlStr string
		args   []any
	)
	if ftsQuery == "" {
		sqlStr = `SELECT ` + prefixed("r", recordColumns) + `, 0 AS rank FROM records r WHERE 1 = 1`
	} else {
		sqlStr = `
			SELECT ` + prefixed("r", recordColumns) + `, fts.rank
			FROM records_fts fts
			JOIN records r ON r.seq = fts.rowid
			WHERE records_fts MATCH ?`
		args = append(args, ftsQuery)
	}

	if opts.Project != "" {
		sqlStr += " AND r.project = ?"
		args = append(args, opts.Project)
	}
	if opts.Phase != "" {
		sqlStr += " AND r.phase = ?"
		args = append(args, opts.Phase)
	}
	if opts.MinScore > 0 {
		sqlStr += " AND r.total_score >= ?"
		args = append(args, opts.MinScore)
	}

	if ftsQuery == "" {
		sqlStr += " ORDER BY r.created_at DESC, r.seq DESC LIMIT ?"
	} else {
		sqlStr += " ORDER BY fts.rank LIMIT ?"
	}
	args = append(args, limit)

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []SearchResult
	for rows.Next() {
		var sr SearchResult
		if err := rows.Scan(
			&sr.ID, &sr.Project, &sr.Phase, &sr.Title, &sr.Content, &sr.TotalScore, &sr.Grade,
			&sr.Structure, &sr.Clarity, &sr.Testability, &sr.Completeness, &sr.SlopDeduction, &sr.CreatedAt,
			&sr.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, sr)
	}
	return results, rows.Err()
}

// Delete removes a record.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("record %q not found", id)
	}
	return nil
}

// ─── Stats ───────────────────────────────────────────────────────────────────

// Stats returns aggregate history statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByGrade: map[string]int{}}

	var avg sql.NullFloat64
	var best sql.NullInt64
	if err := s.db.QueryRow(
		"SELECT COUNT(*), AVG(total_score), MAX(total_score) FROM records",
	).Scan(&stats.TotalRecords, &avg, &best); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats.AverageScore = avg.Float64
	stats.BestScore = int(best.Int64)

	rows, err := s.db.Query("SELECT grade, COUNT(*) FROM records GROUP BY grade")
	if err != nil {
		return nil, fmt.Errorf("stats by grade: %w", err)
	}
	for rows.Next() {
		var g string
		var n int
		if err := rows.Scan(&g, &n); err == nil {
			stats.ByGrade[g] = n
		}
	}
	_ = rows.Close()

	rows, err = s.db.Query("SELECT project FROM records WHERE project != '' GROUP BY project ORDER BY MAX(created_at) DESC")
	if err != nil {
		return nil, fmt.Errorf("stats projects: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err == nil {
			stats.Projects = append(stats.Projects, p)
		}
	}
	return stats, rows.Err()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner, r *Record) error {
	return sc.Scan(
		&r.ID, &r.Project, &r.Phase, &r.Title, &r.Content, &r.TotalScore, &r.Grade,
		&r.Structure, &r.Clarity, &r.Testability, &r.Completeness, &r.SlopDeduction, &r.CreatedAt,
	)
}

func (s *Store) clampLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	}
	if limit > s.cfg.MaxSearchResults {
		limit = s.cfg.MaxSearchResults
	}
	return limit
}

func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// deriveTitle uses the first non-empty line, stripped of heading markers.
func deriveTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line != "" {
			return Truncate(line, 80)
		}
	}
	return "Untitled"
}

// Truncate shortens s to at most max bytes, appending "..." when cut.
// A non-positive max disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }

// sanitizeFTS wraps each word in quotes for safe FTS5 queries.
// "login timeout" → `"login" "timeout"`
func sanitizeFTS(query string) string {
	var quoted []string
	for _, w := range strings.Fields(query) {
		w = strings.ReplaceAll(w, `"`, "")
		if strings.IndexFunc(w, isWordRune) < 0 {
			continue
		}
		quoted = append(quoted, `"`+w+`"`)
	}
	return strings.Join(quoted, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Now returns the current time formatted for SQLite.
func Now() string {
	return timeNow().UTC().Format("2006-01-02 15:04:05")
}
