package frontmatter

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_WithFrontmatter(t *testing.T) {
	content := `---
date: "2024-03-05"
tags: [journal, work]
---

# Tuesday

Meeting notes.`

	page := Parse(content)

	if page.Frontmatter["date"] != "2024-03-05" {
		t.Errorf("Frontmatter[date] = %v, want %q", page.Frontmatter["date"], "2024-03-05")
	}
	tags, ok := page.Frontmatter["tags"].([]any)
	if !ok {
		t.Fatalf("Frontmatter[tags] is %T, want []any", page.Frontmatter["tags"])
	}
	if len(tags) != 2 || tags[0] != "journal" || tags[1] != "work" {
		t.Errorf("Frontmatter[tags] = %v, want [journal work]", tags)
	}
	if !strings.HasPrefix(page.Content, "\n# Tuesday") {
		t.Errorf("Content = %q, want the body after the closing delimiter", page.Content)
	}
	if page.OriginalContent != content {
		t.Error("OriginalContent must keep the full page text")
	}
}

func TestParse_WithoutFrontmatter(t *testing.T) {
	content := "# Plain page\n\nNo metadata here."
	page := Parse(content)

	if len(page.Frontmatter) != 0 {
		t.Errorf("Frontmatter = %v, want empty", page.Frontmatter)
	}
	if page.Content != content {
		t.Errorf("Content = %q, want the input unchanged", page.Content)
	}
}

func TestParse_UnterminatedFrontmatter(t *testing.T) {
	content := "---\ndate: \"2024-03-05\"\nno closing delimiter"
	page := Parse(content)

	if len(page.Frontmatter) != 0 {
		t.Errorf("Frontmatter = %v, want empty for an unterminated block", page.Frontmatter)
	}
	if page.Content != content {
		t.Error("unterminated frontmatter must be treated as plain content")
	}
}

func TestParse_ClosingDelimiterAtEOF(t *testing.T) {
	content := "---\ndate: \"2024-03-05\"\n---"
	page := Parse(content)

	if page.Frontmatter["date"] != "2024-03-05" {
		t.Errorf("Frontmatter[date] = %v, want 2024-03-05", page.Frontmatter["date"])
	}
	if page.Content != "" {
		t.Errorf("Content = %q, want empty", page.Content)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	content := "---\n: : :\n---\nbody"
	page := Parse(content)

	if len(page.Frontmatter) != 0 {
		t.Errorf("Frontmatter = %v, want empty for invalid YAML", page.Frontmatter)
	}
	if page.Content != content {
		t.Error("invalid YAML must leave the page untouched")
	}
}

func TestCompose_RoundTrip(t *testing.T) {
	fm := map[string]any{"date": "2024-03-05", "tags": []string{"journal"}}
	body := "# Tuesday\n"

	text, err := Compose(fm, body)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}

	page := Parse(text)
	if page.Frontmatter["date"] != "2024-03-05" {
		t.Errorf("round-tripped date = %v, want 2024-03-05", page.Frontmatter["date"])
	}
	if page.Content != body {
		t.Errorf("round-tripped body = %q, want %q", page.Content, body)
	}
}

func TestCompose_EmptyFrontmatter(t *testing.T) {
	text, err := Compose(nil, "just a body")
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if text != "just a body" {
		t.Errorf("Compose() = %q, want the body unchanged", text)
	}
}

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name string
		fm   map[string]any
		add  []string
		want []string
	}{
		{
			name: "into empty frontmatter",
			fm:   map[string]any{},
			add:  []string{"work", "meeting"},
			want: []string{"meeting", "work"},
		},
		{
			name: "dedupe against yaml-decoded tags",
			fm:   map[string]any{"tags": []any{"work", "journal"}},
			add:  []string{"work", "standup"},
			want: []string{"journal", "standup", "work"},
		},
		{
			name: "no tags to add leaves frontmatter alone",
			fm:   map[string]any{},
			add:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			MergeTags(tt.fm, tt.add)
			if tt.want == nil {
				if _, ok := tt.fm["tags"]; ok {
					t.Errorf("tags = %v, want absent", tt.fm["tags"])
				}
				return
			}
			got, ok := tt.fm["tags"].([]string)
			if !ok {
				t.Fatalf("tags is %T, want []string", tt.fm["tags"])
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tags = %v, want %v", got, tt.want)
			}
		})
	}
}
