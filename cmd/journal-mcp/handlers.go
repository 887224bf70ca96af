package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taigrr/journal-mcp/internal/dateexpr"
	"github.com/taigrr/journal-mcp/internal/duration"
	"github.com/taigrr/journal-mcp/internal/types"
)

// now is swappable for tests.
var now = time.Now

func parseExpression(raw string) types.Input {
	return dateexpr.ParseWithOptions(raw, now(), cfg.LocaleTag(), dateexpr.Options{
		FlagMarker:     cfg.FlagMarker,
		SameDayWeekday: cfg.SameDayWeekday,
	})
}

func handleResolve(ctx context.Context, req *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, ResolveOutput, error) {
	in := parseExpression(input.Expression)
	day := in.Day(now())

	out := ResolveOutput{
		Date:   day.Format("2006-01-02"),
		Offset: in.Offset,
		Memo:   in.Memo,
		Flags:  in.Flags,
		Path:   journalSvc.PagePath(day),
	}
	if in.Weekday != nil {
		out.Weekday = strings.ToLower(in.Weekday.Weekday.String())
		out.Offset = &in.Weekday.Offset
	}

	logger.Debug().Str("expression", input.Expression).Str("date", out.Date).Msg("resolved expression")
	return nil, out, nil
}

func handleOpen(ctx context.Context, req *mcp.CallToolRequest, input OpenInput) (*mcp.CallToolResult, OpenOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, OpenOutput{}, err
	}

	in := parseExpression(input.Expression)
	info, page, err := journalSvc.OpenDay(in, now())
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, OpenOutput{}, err
	}

	logger.Debug().Str("path", info.Path).Bool("created", info.Created).Msg("opened page")
	return nil, OpenOutput{
		Path:        info.Path,
		Date:        info.Date,
		Created:     info.Created,
		URI:         info.URI,
		Frontmatter: page.Frontmatter,
		Content:     page.Content,
	}, nil
}

func handleAppend(ctx context.Context, req *mcp.CallToolRequest, input AppendInput) (*mcp.CallToolResult, AppendOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, AppendOutput{}, err
	}

	in := parseExpression(input.Expression)
	if in.Memo == "" {
		return &mcp.CallToolResult{IsError: true}, AppendOutput{},
			fmt.Errorf("nothing to append: the expression has no text after the date")
	}

	info, err := journalSvc.AppendEntry(in, now(), now(), cfg.TimeLayout)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, AppendOutput{}, err
	}

	return nil, AppendOutput{Path: info.Path, Date: info.Date}, nil
}

func handleDuration(ctx context.Context, req *mcp.CallToolRequest, input DurationInput) (*mcp.CallToolResult, DurationOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, DurationOutput{}, err
	}

	path := strings.TrimSpace(input.Path)
	page, err := journalSvc.ReadPage(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, DurationOutput{}, err
	}

	res, err := duration.Compute(page.OriginalContent, input.Positions, cfg.TimeLayout)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, DurationOutput{}, durationMessage(err)
	}

	out := DurationOutput{
		Start:  res.Start.String(),
		End:    res.End.String(),
		Hours:  res.FormatHours(),
		Target: res.TargetSpan.Start,
	}
	if input.Write {
		if err := journalSvc.InsertAt(path, res.TargetSpan, res.FormatHours()); err != nil {
			return &mcp.CallToolResult{IsError: true}, DurationOutput{}, err
		}
		out.Written = true
	}

	logger.Debug().Str("path", path).Str("hours", out.Hours).Msg("computed duration")
	return nil, out, nil
}

// durationMessage turns the calculator's error kinds into user-facing
// messages. Rendering is the command layer's job; the calculator only
// reports which invariant broke.
func durationMessage(err error) error {
	switch {
	case errors.Is(err, duration.ErrInvalidSelectionCount):
		return fmt.Errorf("provide exactly three positions: two on times, one on the output spot")
	case errors.Is(err, duration.ErrAmbiguousSelection):
		return fmt.Errorf("one selection looks like a time but could not be read: %w", err)
	case errors.Is(err, duration.ErrMissingStart):
		return fmt.Errorf("no time found among the selections; select two clock times")
	case errors.Is(err, duration.ErrMissingEnd):
		return fmt.Errorf("only one time found among the selections; select a second clock time")
	case errors.Is(err, duration.ErrMissingTarget):
		return fmt.Errorf("all three selections are times; leave one on the spot for the result")
	default:
		return err
	}
}

func handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, SearchOutput{}, err
	}

	params := types.SearchParams{
		Query:         input.Query,
		UseRegex:      input.UseRegex,
		CaseSensitive: input.CaseSensitive,
		ContextLines:  input.ContextLines,
		Limit:         input.Limit,
		Offset:        input.Offset,
	}
	if input.Since != "" {
		day := parseExpression(input.Since).Day(now())
		params.Since = &day
	}
	if input.Until != "" {
		day := parseExpression(input.Until).Day(now())
		params.Until = &day
	}

	results, total, err := searchSvc.Search(params)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, SearchOutput{}, err
	}

	out := SearchOutput{
		Results:    make([]SearchResultItem, 0, len(results)),
		TotalPages: total,
	}
	for _, r := range results {
		item := SearchResultItem{Path: r.Path}
		for _, m := range r.Matches {
			item.Matches = append(item.Matches, SearchMatch{Line: m.Line, Context: m.Context})
		}
		out.Results = append(out.Results, item)
	}
	offset := max(input.Offset, 0)
	out.HasMore = offset+len(results) < total

	return nil, out, nil
}
