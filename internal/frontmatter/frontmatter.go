// Package frontmatter splits journal pages into YAML frontmatter and body.
package frontmatter

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/journal-mcp/internal/types"
)

const delimiter = "---"

// Parse splits a page into frontmatter and body. Content without a leading
// frontmatter block, or with YAML that does not decode, is returned intact
// with an empty frontmatter map.
func Parse(content string) types.ParsedPage {
	page := types.ParsedPage{
		Frontmatter:     map[string]any{},
		Content:         content,
		OriginalContent: content,
	}

	rest, ok := strings.CutPrefix(content, delimiter+"\n")
	if !ok {
		return page
	}

	block, body, found := strings.Cut(rest, "\n"+delimiter+"\n")
	if !found {
		// A page may end on the closing delimiter with no body.
		block, found = strings.CutSuffix(rest, "\n"+delimiter)
		if !found {
			return page
		}
		body = ""
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return page
	}
	if fm != nil {
		page.Frontmatter = fm
	}
	page.Content = body
	return page
}

// Compose renders frontmatter and body back into page text. An empty
// frontmatter map yields the body unchanged.
func Compose(fm map[string]any, body string) (string, error) {
	if len(fm) == 0 {
		return body, nil
	}
	out, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("compose frontmatter: %w", err)
	}
	return delimiter + "\n" + string(out) + delimiter + "\n" + body, nil
}

// MergeTags adds tags to the frontmatter's "tags" list, preserving existing
// entries and dropping duplicates. The resulting list is sorted.
func MergeTags(fm map[string]any, tags []string) {
	if len(tags) == 0 {
		return
	}
	seen := map[string]struct{}{}
	if existing, ok := fm["tags"].([]any); ok {
		for _, v := range existing {
			if s, ok := v.(string); ok {
				seen[s] = struct{}{}
			}
		}
	}
	if existing, ok := fm["tags"].([]string); ok {
		for _, s := range existing {
			seen[s] = struct{}{}
		}
	}
	for _, tag := range tags {
		seen[tag] = struct{}{}
	}
	merged := make([]string, 0, len(seen))
	for tag := range seen {
		merged = append(merged, tag)
	}
	sort.Strings(merged)
	fm["tags"] = merged
}
