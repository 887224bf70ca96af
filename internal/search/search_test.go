package search

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taigrr/journal-mcp/internal/journal"
	"github.com/taigrr/journal-mcp/internal/types"
)

func newTestVault(t *testing.T, pages map[string]string) *Service {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range pages {
		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return New(journal.New(dir, journal.Options{}))
}

func day(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad day %q: %v", value, err)
	}
	return &d
}

func TestSearch_FindsMatchesWithContext(t *testing.T) {
	svc := newTestVault(t, map[string]string{
		"Journal/2024-03-04.md": "# Monday\n\nstandup with the team\nlunch\n",
		"Journal/2024-03-05.md": "# Tuesday\n\nquiet day\n",
	})

	results, total, err := svc.Search(types.SearchParams{Query: "standup"})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Fatalf("total = %d, results = %d, want 1 and 1", total, len(results))
	}
	if results[0].Path != "Journal/2024-03-04.md" {
		t.Errorf("Path = %q, want the Monday page", results[0].Path)
	}
	if len(results[0].Matches) != 1 {
		t.Fatalf("Matches = %d, want 1", len(results[0].Matches))
	}
	m := results[0].Matches[0]
	if m.Line != 3 {
		t.Errorf("Line = %d, want 3", m.Line)
	}
	if m.Context == "standup with the team" {
		t.Error("Context should include surrounding lines")
	}
}

func TestSearch_CaseSensitivity(t *testing.T) {
	svc := newTestVault(t, map[string]string{
		"Journal/2024-03-04.md": "Standup notes\n",
	})

	if _, total, _ := svc.Search(types.SearchParams{Query: "standup"}); total != 1 {
		t.Error("case-insensitive search should match by default")
	}
	if _, total, _ := svc.Search(types.SearchParams{Query: "standup", CaseSensitive: true}); total != 0 {
		t.Error("case-sensitive search should not match")
	}
}

func TestSearch_Regex(t *testing.T) {
	svc := newTestVault(t, map[string]string{
		"Journal/2024-03-04.md": "worked 09:30 to 14:00\n",
	})

	_, total, err := svc.Search(types.SearchParams{Query: `\d{2}:\d{2}`, UseRegex: true})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}

	if _, _, err := svc.Search(types.SearchParams{Query: "[", UseRegex: true}); err == nil {
		t.Error("invalid regex should be rejected")
	}
}

func TestSearch_DateWindow(t *testing.T) {
	pages := map[string]string{
		"Journal/2024-03-01.md": "review notes\n",
		"Journal/2024-03-04.md": "review notes\n",
		"Journal/2024-03-08.md": "review notes\n",
		"Journal/ideas.md":      "review notes\n",
	}
	svc := newTestVault(t, pages)

	results, total, err := svc.Search(types.SearchParams{
		Query: "review",
		Since: day(t, "2024-03-02"),
		Until: day(t, "2024-03-05"),
	})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want only the page inside the window", total)
	}
	if results[0].Path != "Journal/2024-03-04.md" {
		t.Errorf("Path = %q, want Journal/2024-03-04.md", results[0].Path)
	}

	// Without a window, undated pages are searched too.
	_, total, _ = svc.Search(types.SearchParams{Query: "review"})
	if total != 4 {
		t.Errorf("total = %d, want 4 without a window", total)
	}
}

func TestSearch_Paging(t *testing.T) {
	pages := map[string]string{}
	for i := 1; i <= 5; i++ {
		pages["Journal/2024-03-0"+string(rune('0'+i))+".md"] = "daily review\n"
	}
	svc := newTestVault(t, pages)

	results, total, err := svc.Search(types.SearchParams{Query: "review", Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Path != "Journal/2024-03-03.md" {
		t.Errorf("paged result starts at %q, want Journal/2024-03-03.md", results[0].Path)
	}

	empty, total, err := svc.Search(types.SearchParams{Query: "review", Offset: 99})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 5 || len(empty) != 0 {
		t.Errorf("offset past the end: total = %d, results = %d", total, len(empty))
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := newTestVault(t, nil)
	if _, _, err := svc.Search(types.SearchParams{Query: "  "}); err == nil {
		t.Error("empty query should be rejected")
	}
}
