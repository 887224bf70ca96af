// Package search provides text search across journal pages, optionally
// restricted to a window of days.
package search

import (
	"fmt"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taigrr/journal-mcp/internal/journal"
	"github.com/taigrr/journal-mcp/internal/types"
)

// Service searches the pages of one journal.
type Service struct {
	journal *journal.Service
}

// New creates a search Service over a journal.
func New(j *journal.Service) *Service {
	return &Service{journal: j}
}

// Search scans all journal pages for the query. Pages whose filename date
// falls outside [Since, Until] are skipped; undated pages are only
// considered when no window is set. The second return value is the total
// number of matching pages before Offset/Limit paging.
func (s *Service) Search(params types.SearchParams) ([]types.SearchResult, int, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, 0, fmt.Errorf("search query cannot be empty")
	}

	pattern, err := buildPattern(query, params.UseRegex, params.CaseSensitive)
	if err != nil {
		return nil, 0, err
	}

	contextLines := params.ContextLines
	if contextLines <= 0 {
		contextLines = 2
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 15
	}
	offset := max(params.Offset, 0)

	pages, err := s.journal.Pages()
	if err != nil {
		return nil, 0, err
	}
	pages = s.inWindow(pages, params.Since, params.Until)

	type indexed struct {
		idx    int
		result types.SearchResult
	}

	pageCh := make(chan indexed, len(pages))
	resultCh := make(chan indexed, len(pages))

	var wg sync.WaitGroup
	for range max(min(runtime.NumCPU(), len(pages)), 1) {
		wg.Go(func() {
			for job := range pageCh {
				matches := s.scanPage(job.result.Path, pattern, contextLines)
				if len(matches) == 0 {
					continue
				}
				job.result.Matches = matches
				resultCh <- job
			}
		})
	}

	for i, rel := range pages {
		pageCh <- indexed{idx: i, result: types.SearchResult{Path: rel}}
	}
	close(pageCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var collected []indexed
	for r := range resultCh {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].idx < collected[j].idx })

	results := make([]types.SearchResult, 0, len(collected))
	for _, c := range collected {
		results = append(results, c.result)
	}

	total := len(results)
	if offset >= total {
		return []types.SearchResult{}, total, nil
	}
	return results[offset:min(offset+limit, total)], total, nil
}

func buildPattern(query string, useRegex, caseSensitive bool) (*regexp.Regexp, error) {
	expr := query
	if !useRegex {
		expr = regexp.QuoteMeta(query)
	}
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return pattern, nil
}

// inWindow filters pages by the date encoded in their filename. Calendar
// days are compared as ISO date strings, so the bounds' time zones do not
// matter.
func (s *Service) inWindow(pages []string, since, until *time.Time) []string {
	if since == nil && until == nil {
		return pages
	}
	const layout = "2006-01-02"
	kept := pages[:0]
	for _, rel := range pages {
		day, ok := s.journal.DayOf(rel)
		if !ok {
			continue
		}
		iso := day.Format(layout)
		if since != nil && iso < since.Format(layout) {
			continue
		}
		if until != nil && iso > until.Format(layout) {
			continue
		}
		kept = append(kept, rel)
	}
	return kept
}

func (s *Service) scanPage(rel string, pattern *regexp.Regexp, contextLines int) []types.SearchMatch {
	page, err := s.journal.ReadPage(rel)
	if err != nil {
		return nil
	}

	lines := strings.Split(page.OriginalContent, "\n")
	var matches []types.SearchMatch
	for lineNum, line := range lines {
		if !pattern.MatchString(line) {
			continue
		}
		from := max(lineNum-contextLines, 0)
		to := min(lineNum+contextLines+1, len(lines))
		matches = append(matches, types.SearchMatch{
			Line:    lineNum + 1,
			Context: strings.Join(lines[from:to], "\n"),
		})
	}
	return matches
}
