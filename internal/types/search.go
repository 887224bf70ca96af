package types

import "time"

type (
	// SearchParams contains parameters for searching journal pages.
	SearchParams struct {
		Query         string     `json:"query"`
		UseRegex      bool       `json:"useRegex,omitempty"`
		CaseSensitive bool       `json:"caseSensitive,omitempty"`
		ContextLines  int        `json:"contextLines,omitempty"`
		Limit         int        `json:"limit,omitempty"`
		Offset        int        `json:"offset,omitempty"`
		Since         *time.Time `json:"since,omitempty"`
		Until         *time.Time `json:"until,omitempty"`
	}

	// SearchMatch is a single matching line with surrounding context.
	SearchMatch struct {
		Line    int    `json:"line"`
		Context string `json:"context"`
	}

	// SearchResult groups the matches found in one page.
	SearchResult struct {
		Path    string        `json:"path"`
		Matches []SearchMatch `json:"matches"`
	}
)
