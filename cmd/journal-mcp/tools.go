package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// ResolveInput contains the expression to resolve.
	ResolveInput struct {
		Expression string `json:"expression" jsonschema:"Free-form temporal expression: an ISO date (2024-03-05), a signed day offset (+3, -1, 0), a weekday phrase (next wednesday), or plain memo text"`
	}

	// ResolveOutput describes the resolution without touching the vault.
	ResolveOutput struct {
		Date    string   `json:"date"`
		Offset  *int     `json:"offset,omitempty"`
		Weekday string   `json:"weekday,omitempty"`
		Memo    string   `json:"memo,omitempty"`
		Flags   []string `json:"flags,omitempty"`
		Path    string   `json:"path"`
	}

	// OpenInput contains the expression addressing a page to open.
	OpenInput struct {
		Expression string `json:"expression" jsonschema:"Temporal expression addressing the page; trailing text becomes the page title on first creation"`
	}

	// OpenOutput contains the opened page.
	OpenOutput struct {
		Path        string         `json:"path"`
		Date        string         `json:"date"`
		Created     bool           `json:"created"`
		URI         string         `json:"uri,omitempty"`
		Frontmatter map[string]any `json:"frontmatter,omitempty"`
		Content     string         `json:"content"`
	}

	// AppendInput contains an expression whose memo is appended as a
	// timestamped entry.
	AppendInput struct {
		Expression string `json:"expression" jsonschema:"Temporal expression plus the entry text, e.g. '+1 standup notes #work'"`
	}

	// AppendOutput reports where the entry landed.
	AppendOutput struct {
		Path string `json:"path"`
		Date string `json:"date"`
	}

	// DurationInput contains a page and three cursor positions.
	DurationInput struct {
		Path      string `json:"path" jsonschema:"Path to the page relative to the vault root"`
		Positions []int  `json:"positions" jsonschema:"Exactly three byte offsets into the page: two on clock times, one on the spot where the duration belongs"`
		Write     bool   `json:"write,omitempty" jsonschema:"Write the formatted duration into the page at the target position (default: false)"`
	}

	// DurationOutput contains the computed duration.
	DurationOutput struct {
		Start   string `json:"start"`
		End     string `json:"end"`
		Hours   string `json:"hours"`
		Target  int    `json:"target"`
		Written bool   `json:"written,omitempty"`
	}

	// SearchInput contains parameters for searching journal pages.
	SearchInput struct {
		Query         string `json:"query" jsonschema:"Search query (plain text, or regex if useRegex=true)"`
		UseRegex      bool   `json:"useRegex,omitempty" jsonschema:"Treat query as a regex pattern (default: false)"`
		CaseSensitive bool   `json:"caseSensitive,omitempty" jsonschema:"Case sensitive search (default: false)"`
		ContextLines  int    `json:"contextLines,omitempty" jsonschema:"Lines of context before/after each match (default: 2)"`
		Limit         int    `json:"limit,omitempty" jsonschema:"Maximum pages returned (default: 15)"`
		Offset        int    `json:"offset,omitempty" jsonschema:"Skip first N pages for pagination (default: 0)"`
		Since         string `json:"since,omitempty" jsonschema:"Temporal expression bounding the window start, e.g. '-7' or 'last monday'"`
		Until         string `json:"until,omitempty" jsonschema:"Temporal expression bounding the window end, e.g. '0' or '2024-03-31'"`
	}

	// SearchResultItem represents matches within a single page.
	SearchResultItem struct {
		Path    string        `json:"path"`
		Matches []SearchMatch `json:"matches"`
	}

	// SearchMatch is one matching line with context.
	SearchMatch struct {
		Line    int    `json:"line"`
		Context string `json:"context"`
	}

	// SearchOutput contains search results.
	SearchOutput struct {
		Results    []SearchResultItem `json:"results"`
		TotalPages int                `json:"totalPages"`
		HasMore    bool               `json:"hasMore,omitempty"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a temporal expression to a journal page without creating anything. Returns the addressed date, the page path and any leftover memo and flags.",
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "open",
		Description: "Open the journal page a temporal expression addresses, creating it on first use with the memo as title and flags as tags. Returns frontmatter, content and an obsidian:// link.",
	}, handleOpen)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "append",
		Description: "Append a timestamped entry to the addressed day's page, e.g. '+1 standup notes #work'. The page is created first if needed.",
	}, handleAppend)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "duration",
		Description: "Compute the elapsed hours between two clock times in a page. Takes exactly three cursor positions: two on times (09:30, 14:00, 930; meridiem forms like 2:30pm only parse when time.layout in journal.yaml includes a meridiem), one on the spot for the result. Set write=true to insert the formatted value there.",
	}, handleDuration)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Full-text search across journal pages, optionally bounded by a date window whose edges are temporal expressions (since='-7', until='last friday').",
	}, handleSearch)
}
