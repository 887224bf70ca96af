package types

type (
	// Span is a half-open byte range [Start, End) within a document.
	Span struct {
		Start int `json:"start"`
		End   int `json:"end"`
	}

	// ParsedPage represents a journal page split into frontmatter and body.
	ParsedPage struct {
		Frontmatter     map[string]any `json:"frontmatter"`
		Content         string         `json:"content"`
		OriginalContent string         `json:"originalContent"`
	}

	// PageWriteParams contains parameters for writing a journal page.
	PageWriteParams struct {
		Path        string         `json:"path"`
		Content     string         `json:"content"`
		Frontmatter map[string]any `json:"frontmatter,omitempty"`
		Mode        string         `json:"mode,omitempty"` // "overwrite" or "append"
	}

	// PageInfo describes a resolved journal page.
	PageInfo struct {
		Path    string `json:"path"`
		Date    string `json:"date"`
		Created bool   `json:"created"`
		URI     string `json:"uri,omitempty"`
	}
)

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }
