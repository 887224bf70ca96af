// Package duration computes the elapsed time between two clock times picked
// out of a document by cursor position.
//
// The caller supplies exactly three positions. The word around each position
// either matches the clock-time grammar (a time candidate) or does not (the
// target, where the formatted result is meant to be written). A valid
// invocation has exactly two candidates and one target; every violation is
// reported as a distinct error kind so the caller can say precisely what is
// missing.
package duration

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/journal-mcp/internal/clock"
	"github.com/taigrr/journal-mcp/internal/types"
)

var (
	// ErrInvalidSelectionCount means the caller did not supply exactly
	// three positions.
	ErrInvalidSelectionCount = errors.New("exactly three selections are required")

	// ErrAmbiguousSelection means a selection looked clock-shaped but
	// survived neither the canonical nor the glued-digit parse.
	ErrAmbiguousSelection = errors.New("selection looks like a time but cannot be parsed")

	// ErrMissingStart, ErrMissingEnd and ErrMissingTarget report which
	// role was absent after classifying the three selections.
	ErrMissingStart  = errors.New("no start time among selections")
	ErrMissingEnd    = errors.New("no end time among selections")
	ErrMissingTarget = errors.New("no target position among selections")
)

// Result is a computed duration: start and end in chronological order, the
// absolute difference in hours, and the span the caller should write the
// formatted value to.
type Result struct {
	Start      clock.TimeToken
	End        clock.TimeToken
	Hours      float64
	TargetSpan types.Span
}

// FormatHours renders the duration with two fractional digits, e.g. "4.50".
func (r Result) FormatHours() string {
	return fmt.Sprintf("%.2f", r.Hours)
}

// Compute classifies the three positions, orders the two time candidates
// chronologically and returns the elapsed hours between them. It is a pure
// function of its arguments; writing the result into the document is the
// caller's business.
func Compute(documentText string, positions []int, timeLayout string) (Result, error) {
	if len(positions) != 3 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidSelectionCount, len(positions))
	}

	var (
		start, end         clock.TimeToken
		haveStart, haveEnd bool
		target             types.Span
		haveTarget         bool
	)

	for _, pos := range positions {
		word, span := clock.WordAt(documentText, pos)
		if !clock.Matches(word) {
			target = span
			haveTarget = true
			continue
		}

		token, err := clock.ParseToken(word, timeLayout, span)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %q", ErrAmbiguousSelection, word)
		}

		// Selection order carries no meaning; keep start chronologically
		// first by demoting it when an earlier token shows up.
		switch {
		case !haveStart:
			start = token
			haveStart = true
		case token.Before(start):
			end = start
			haveEnd = true
			start = token
		default:
			end = token
			haveEnd = true
		}
	}

	switch {
	case !haveStart:
		return Result{}, ErrMissingStart
	case !haveEnd:
		return Result{}, ErrMissingEnd
	case !haveTarget:
		return Result{}, ErrMissingTarget
	}

	hours := math.Abs(end.Hours() - start.Hours())
	hours = math.Round(hours*100) / 100
	if hours == 0 {
		hours = 0 // never -0.00
	}

	return Result{Start: start, End: end, Hours: hours, TargetSpan: target}, nil
}
