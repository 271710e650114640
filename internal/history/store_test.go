package history_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bordenet/acceptance-criteria-assistant/internal/history"
	"github.com/bordenet/acceptance-criteria-assistant/internal/scoring"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.New(history.Config{
		DataDir:          t.TempDir(),
		MaxContentLength: 2000,
		MaxSearchResults: 20,
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// tickingClock advances one second per call so created_at ordering is stable.
func tickingClock(t *testing.T) {
	t.Helper()
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	restore := history.SetClock(func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	})
	t.Cleanup(restore)
}

func addRecord(t *testing.T, s *history.Store, project, title, content string, score int) string {
	t.Helper()
	id, err := s.Add(history.Record{
		Project:    project,
		Title:      title,
		Content:    content,
		TotalScore: score,
		Grade:      scoring.LetterGrade(score),
	})
	if err != nil {
		t.Fatalf("Add(%q): %v", title, err)
	}
	return id
}

// ─── New / Initialization ───────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := t.TempDir()
	s, err := history.New(history.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(filepath.Join(dir, history.DBFile)); err != nil {
		t.Fatalf("database file missing: %v", err)
	}

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestNew_IdempotentReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := history.New(history.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	id := addRecord(t, s1, "p", "Login", "## Summary\nlogin", 50)
	s1.Close()

	s2, err := history.New(history.Config{DataDir: dir})
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get(id)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Title != "Login" {
		t.Errorf("Title = %q", got.Title)
	}

	results, err := s2.Search("login", history.SearchOptions{})
	if err != nil || len(results) != 1 {
		t.Errorf("search after reopen = %d results, err %v", len(results), err)
	}
}

// ─── Add / Get ──────────────────────────────────────────────────────────────

func TestAdd_FromValidationResult(t *testing.T) {
	s := newTestStore(t)
	doc := "## Summary\nExport invoices.\n## Acceptance Criteria\n- [ ] Export the CSV within 2s\n"
	res := scoring.Validate(doc)

	id, err := s.Add(history.NewRecord("billing", "draft", "Invoice export", doc, res))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("id %q does not look like a uuid", id)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TotalScore != res.TotalScore || got.Grade != res.Grade() {
		t.Errorf("score = %d/%s, want %d/%s", got.TotalScore, got.Grade, res.TotalScore, res.Grade())
	}
	if got.Structure != res.Structure.Score || got.Completeness != res.Completeness.Score {
		t.Errorf("dimension split not stored: %+v", got)
	}
	if got.Phase != "draft" || got.Project != "billing" {
		t.Errorf("project/phase = %q/%q", got.Project, got.Phase)
	}
	if got.CreatedAt == "" {
		t.Error("CreatedAt not set")
	}
}

func TestAdd_DerivesTitle(t *testing.T) {
	s := newTestStore(t)
	id := addRecord(t, s, "", "", "\n\n## Checkout flow\n- [ ] Save", 10)

	got, _ := s.Get(id)
	if got.Title != "Checkout flow" {
		t.Errorf("Title = %q, want %q", got.Title, "Checkout flow")
	}
}

func TestAdd_TruncatesContent(t *testing.T) {
	s := newTestStore(t)
	id := addRecord(t, s, "", "long", strings.Repeat("x", 5000), 0)

	got, _ := s.Get(id)
	if len(got.Content) != 2003 || !strings.HasSuffix(got.Content, "...") {
		t.Errorf("content length = %d", len(got.Content))
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v", err)
	}
}

// ─── Recent ─────────────────────────────────────────────────────────────────

func TestRecent_OrderAndFilter(t *testing.T) {
	tickingClock(t)
	s := newTestStore(t)

	addRecord(t, s, "a", "first", "one", 10)
	addRecord(t, s, "b", "second", "two", 20)
	addRecord(t, s, "a", "third", "three", 30)

	all, err := s.Recent("", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 || all[0].Title != "third" || all[2].Title != "first" {
		t.Errorf("order = %v", titles(all))
	}

	onlyA, _ := s.Recent("a", 10)
	if len(onlyA) != 2 {
		t.Errorf("project filter returned %d", len(onlyA))
	}

	limited, _ := s.Recent("", 1)
	if len(limited) != 1 || limited[0].Title != "third" {
		t.Errorf("limit = %v", titles(limited))
	}
}

func TestRecent_LimitCapped(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 25; i++ {
		addRecord(t, s, "", "r", "x", i)
	}
	got, _ := s.Recent("", 500)
	if len(got) != 20 {
		t.Errorf("len = %d, want MaxSearchResults 20", len(got))
	}
}

// ─── Search (FTS5) ──────────────────────────────────────────────────────────

func TestSearch_Basic(t *testing.T) {
	s := newTestStore(t)
	addRecord(t, s, "auth", "Login", "Display the login form within 100ms", 70)
	addRecord(t, s, "cart", "Cart", "Show the cart total", 40)

	results, err := s.Search("login form", history.SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Login" {
		t.Errorf("results = %+v", results)
	}
}

func TestSearch_Filters(t *testing.T) {
	s := newTestStore(t)
	addRecord(t, s, "auth", "Login v1", "login page", 40)
	addRecord(t, s, "auth", "Login v2", "login page", 85)
	addRecord(t, s, "admin", "Login admin", "login page", 90)

	got, _ := s.Search("login", history.SearchOptions{Project: "auth"})
	if len(got) != 2 {
		t.Errorf("project filter = %d", len(got))
	}

	got, _ = s.Search("login", history.SearchOptions{MinScore: 80})
	if len(got) != 2 {
		t.Errorf("min score filter = %d", len(got))
	}
}

func TestSearch_EmptyQueryFallsBackToRecent(t *testing.T) {
	tickingClock(t)
	s := newTestStore(t)
	addRecord(t, s, "", "old", "a", 1)
	addRecord(t, s, "", "new", "b", 2)

	got, err := s.Search("   ", history.SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 || got[0].Title != "new" {
		t.Errorf("fallback = %+v", got)
	}
}

func TestSearch_SpecialCharactersSafe(t *testing.T) {
	s := newTestStore(t)
	addRecord(t, s, "", "quotes", `handle "invalid" input`, 1)

	for _, q := range []string{`"invalid"`, `AND OR NOT`, `(*)`, `""`} {
		if _, err := s.Search(q, history.SearchOptions{}); err != nil {
			t.Errorf("Search(%q) error: %v", q, err)
		}
	}
}

func TestSanitizeFTS(t *testing.T) {
	tests := map[string]string{
		"login timeout": `"login" "timeout"`,
		`"quoted"`:      `"quoted"`,
		`""`:            "",
		"(*)":           "",
		"   ":           "",
	}
	for in, want := range tests {
		if got := history.SanitizeFTS(in); got != want {
			t.Errorf("sanitizeFTS(%q) = %q, want %q", in, got, want)
		}
	}
}

// ─── Delete ─────────────────────────────────────────────────────────────────

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	id := addRecord(t, s, "", "gone", "searchable words", 10)

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(id); err == nil {
		t.Error("record still present")
	}
	if got, _ := s.Search("searchable", history.SearchOptions{}); len(got) != 0 {
		t.Error("deleted record still in FTS index")
	}
	if err := s.Delete(id); err == nil {
		t.Error("second delete should fail")
	}
}

// ─── Stats ──────────────────────────────────────────────────────────────────

func TestStats_Empty(t *testing.T) {
	s := newTestStore(t)
	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalRecords != 0 || st.AverageScore != 0 || st.BestScore != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestStats_Aggregates(t *testing.T) {
	tickingClock(t)
	s := newTestStore(t)
	addRecord(t, s, "a", "x", "x", 40)
	addRecord(t, s, "b", "y", "y", 90)
	addRecord(t, s, "", "z", "z", 92)

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalRecords != 3 || st.BestScore != 92 {
		t.Errorf("stats = %+v", st)
	}
	if st.AverageScore < 73.9 || st.AverageScore > 74.1 {
		t.Errorf("AverageScore = %v", st.AverageScore)
	}
	if st.ByGrade["A"] != 2 || st.ByGrade["F"] != 1 {
		t.Errorf("ByGrade = %v", st.ByGrade)
	}
	if len(st.Projects) != 2 || st.Projects[0] != "b" {
		t.Errorf("Projects = %v", st.Projects)
	}

	n, _ := s.Count("a")
	if n != 1 {
		t.Errorf("Count(a) = %d", n)
	}
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func TestTruncate(t *testing.T) {
	if got := history.Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := history.Truncate("héllo", 2); got != "h..." {
		t.Errorf("multi-byte cut = %q", got)
	}
	if got := history.Truncate("abc", 0); got != "abc" {
		t.Errorf("zero max = %q", got)
	}
}

func TestDetailLevels(t *testing.T) {
	if history.ParseDetailLevel("") != history.DetailStandard {
		t.Error("empty should default to standard")
	}
	if history.ParseDetailLevel("full") != history.DetailFull {
		t.Error("full not recognized")
	}
	if history.NavigationHint(5, 5) != "" {
		t.Error("no hint when everything fits")
	}
	if !strings.Contains(history.NavigationHint(5, 9), "5 of 9") {
		t.Error("hint missing counts")
	}
}

func titles(rs []history.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}
