// Package journal manages dated markdown pages inside a vault.
package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/taigrr/journal-mcp/internal/frontmatter"
	"github.com/taigrr/journal-mcp/internal/types"
)

// Directories never served from the vault, and the page extensions we
// recognize.
var (
	ignoredDirs = map[string]struct{}{
		".obsidian":    {},
		".git":         {},
		".trash":       {},
		"node_modules": {},
	}
	pageExtensions = map[string]struct{}{
		".md":       {},
		".markdown": {},
		".txt":      {},
	}
)

// Options configure a journal Service.
type Options struct {
	// Dir is the vault subdirectory holding dated pages, e.g. "Journal".
	Dir string

	// FileLayout is the Go time layout used for page filenames,
	// e.g. "2006-01-02".
	FileLayout string
}

// Service reads and writes journal pages for one vault.
type Service struct {
	vaultPath  string
	dir        string
	fileLayout string
}

// New creates a Service rooted at vaultPath.
func New(vaultPath string, opts Options) *Service {
	absPath, _ := filepath.Abs(vaultPath)
	if opts.Dir == "" {
		opts.Dir = "Journal"
	}
	if opts.FileLayout == "" {
		opts.FileLayout = "2006-01-02"
	}
	return &Service{
		vaultPath:  absPath,
		dir:        opts.Dir,
		fileLayout: opts.FileLayout,
	}
}

// PagePath returns the vault-relative path of the page for a given day.
func (s *Service) PagePath(day time.Time) string {
	return filepath.ToSlash(filepath.Join(s.dir, day.Format(s.fileLayout)+".md"))
}

// DayOf reports the day a page path addresses, based on its filename.
func (s *Service) DayOf(rel string) (time.Time, bool) {
	name := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	day, err := time.Parse(s.fileLayout, name)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// Resolve turns a vault-relative path into an absolute one, refusing
// anything that would escape the vault.
func (s *Service) Resolve(rel string) (string, error) {
	rel = strings.TrimPrefix(strings.TrimSpace(rel), "/")
	abs, err := filepath.Abs(filepath.Join(s.vaultPath, rel))
	if err != nil {
		return "", err
	}
	inside, err := filepath.Rel(s.vaultPath, abs)
	if err != nil {
		return "", err
	}
	if inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes the vault: %s", rel)
	}
	return abs, nil
}

// Allowed reports whether a vault-relative path may be served: no ignored
// directory in any segment, and a recognized page extension.
func (s *Service) Allowed(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, seg := range strings.Split(rel, "/") {
		if _, bad := ignoredDirs[seg]; bad {
			return false
		}
	}
	_, ok := pageExtensions[strings.ToLower(filepath.Ext(rel))]
	return ok
}

// ReadPage reads and parses a page.
func (s *Service) ReadPage(rel string) (types.ParsedPage, error) {
	abs, err := s.Resolve(rel)
	if err != nil {
		return types.ParsedPage{}, err
	}
	if !s.Allowed(rel) {
		return types.ParsedPage{}, fmt.Errorf("access denied: %s", rel)
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.ParsedPage{}, fmt.Errorf("page not found: %s", rel)
		}
		return types.ParsedPage{}, fmt.Errorf("read %s: %w", rel, err)
	}
	return frontmatter.Parse(string(raw)), nil
}

// WritePage writes a page, creating parent directories as needed. Mode
// "append" keeps existing body and frontmatter, merging the new ones in.
func (s *Service) WritePage(params types.PageWriteParams) error {
	abs, err := s.Resolve(params.Path)
	if err != nil {
		return err
	}
	if !s.Allowed(params.Path) {
		return fmt.Errorf("access denied: %s", params.Path)
	}

	fm := params.Frontmatter
	body := params.Content
	if params.Mode == "append" {
		if existing, err := s.ReadPage(params.Path); err == nil {
			merged := existing.Frontmatter
			for k, v := range fm {
				merged[k] = v
			}
			fm = merged
			body = existing.Content + params.Content
		}
	}

	text, err := frontmatter.Compose(fm, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", params.Path, err)
	}
	return nil
}

// OpenDay resolves a parsed expression to its page, creating the page on
// first use with a date frontmatter field, the input's flags as tags, and
// the memo as a heading.
func (s *Service) OpenDay(in types.Input, today time.Time) (types.PageInfo, types.ParsedPage, error) {
	day := in.Day(today)
	rel := s.PagePath(day)
	info := types.PageInfo{
		Path: rel,
		Date: day.Format("2006-01-02"),
		URI:  s.URI(rel),
	}

	page, err := s.ReadPage(rel)
	if err == nil {
		return info, page, nil
	}

	fm := map[string]any{"date": day.Format("2006-01-02")}
	frontmatter.MergeTags(fm, in.Flags)

	body := "\n"
	if in.Memo != "" {
		body = "\n# " + in.Memo + "\n"
	}
	if err := s.WritePage(types.PageWriteParams{Path: rel, Content: body, Frontmatter: fm}); err != nil {
		return types.PageInfo{}, types.ParsedPage{}, err
	}
	info.Created = true
	page, err = s.ReadPage(rel)
	return info, page, err
}

// AppendEntry appends a timestamped bullet to a day's page, creating the
// page first if needed.
func (s *Service) AppendEntry(in types.Input, today time.Time, now time.Time, timeLayout string) (types.PageInfo, error) {
	base := in
	base.Memo = "" // the memo becomes the entry line, not the page title
	info, _, err := s.OpenDay(base, today)
	if err != nil {
		return types.PageInfo{}, err
	}
	if in.Memo == "" {
		return info, nil
	}

	line := "- " + now.Format(timeLayout) + " " + in.Memo
	for _, flag := range in.Flags {
		line += " #" + flag
	}
	err = s.WritePage(types.PageWriteParams{
		Path:    info.Path,
		Content: line + "\n",
		Mode:    "append",
	})
	return info, err
}

// InsertAt replaces the span in a page's raw text with the given string.
// Spans refer to byte offsets in the full page text, frontmatter included.
func (s *Service) InsertAt(rel string, span types.Span, text string) error {
	page, err := s.ReadPage(rel)
	if err != nil {
		return err
	}
	full := page.OriginalContent
	if span.Start < 0 || span.End < span.Start || span.End > len(full) {
		return fmt.Errorf("span [%d,%d) out of range for %s", span.Start, span.End, rel)
	}

	abs, err := s.Resolve(rel)
	if err != nil {
		return err
	}
	updated := full[:span.Start] + text + full[span.End:]
	if err := os.WriteFile(abs, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// Pages lists the vault-relative paths of all journal pages, sorted.
func (s *Service) Pages() ([]string, error) {
	root := filepath.Join(s.vaultPath, s.dir)
	var pages []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		rel, relErr := filepath.Rel(s.vaultPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if _, bad := ignoredDirs[d.Name()]; bad {
				return filepath.SkipDir
			}
			return nil
		}
		if s.Allowed(rel) {
			pages = append(pages, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pages)
	return pages, nil
}

// URI renders an obsidian:// link for a page, so clients can jump straight
// into the editor.
func (s *Service) URI(rel string) string {
	full := strings.TrimSuffix(filepath.ToSlash(filepath.Join(s.vaultPath, rel)), ".md")
	segments := strings.Split(strings.TrimPrefix(full, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "obsidian:///" + strings.Join(segments, "/")
}
