// Package dateexpr resolves free-form temporal expressions into a
// structured Input: an explicit ISO date, a signed day offset, or a weekday
// phrase, plus whatever free text is left over as memo and flags.
//
// Parsing never fails. Text that matches no date rule becomes a memo for
// today; blocking note-taking on a misread date would be worse than
// guessing "today".
package dateexpr

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/taigrr/journal-mcp/internal/types"
)

const isoLayout = "2006-01-02"

var (
	isoPattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	offsetPattern = regexp.MustCompile(`^[+-]?\d+$`)
)

// Options adjust parsing behavior.
type Options struct {
	// FlagMarker prefixes tokens that are lifted out of the memo into
	// Flags. Defaults to "#".
	FlagMarker string

	// SameDayWeekday makes "next <weekday>" resolve to today when today
	// already is that weekday, instead of jumping a full week.
	SameDayWeekday bool
}

// Parse resolves raw against today using default options.
func Parse(raw string, today time.Time, locale language.Tag) types.Input {
	return ParseWithOptions(raw, today, locale, Options{})
}

// ParseWithOptions resolves a raw expression. Tokens are scanned in order;
// the first one matching a date rule (ISO date, then signed offset, then
// weekday phrase) is consumed, and everything else becomes flags and memo.
func ParseWithOptions(raw string, today time.Time, locale language.Tag, opts Options) types.Input {
	if opts.FlagMarker == "" {
		opts.FlagMarker = "#"
	}

	in := types.Input{Raw: raw}
	tokens := strings.Fields(raw)

	rest := tokens
	for i, tok := range tokens {
		if date, ok := parseISO(tok); ok {
			in.Date = &date
			rest = drop(tokens, i, 1)
			break
		}
		if offset, ok := parseOffset(tok); ok {
			in.Offset = &offset
			rest = drop(tokens, i, 1)
			break
		}
		if i+1 < len(tokens) {
			if wd, ok := parseWeekday(tok, tokens[i+1], today, locale, opts.SameDayWeekday); ok {
				in.Weekday = &wd
				rest = drop(tokens, i, 2)
				break
			}
		}
	}

	var memoTokens []string
	flags := map[string]struct{}{}
	for _, tok := range rest {
		if name, ok := strings.CutPrefix(tok, opts.FlagMarker); ok && name != "" {
			flags[name] = struct{}{}
			continue
		}
		memoTokens = append(memoTokens, tok)
	}
	in.Memo = strings.Join(memoTokens, " ")
	for name := range flags {
		in.Flags = append(in.Flags, name)
	}
	sort.Strings(in.Flags)

	if in.Date == nil && in.Offset == nil && in.Weekday == nil {
		zero := 0
		in.Offset = &zero
	}
	return in
}

func parseISO(tok string) (time.Time, bool) {
	if !isoPattern.MatchString(tok) {
		return time.Time{}, false
	}
	date, err := time.Parse(isoLayout, tok)
	if err != nil {
		// Shaped like a date but not a real one, e.g. 2024-13-40.
		return time.Time{}, false
	}
	return date, true
}

func parseOffset(tok string) (int, bool) {
	if !offsetPattern.MatchString(tok) {
		return 0, false
	}
	offset, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return offset, true
}

func parseWeekday(direction, name string, today time.Time, locale language.Tag, sameDay bool) (types.WeekdayTarget, bool) {
	forward, ok := lookupDirection(direction, locale)
	if !ok {
		return types.WeekdayTarget{}, false
	}
	weekday, ok := lookupWeekday(name, locale)
	if !ok {
		return types.WeekdayTarget{}, false
	}

	delta := (int(weekday) - int(today.Weekday()) + 7) % 7
	if !forward {
		delta = (int(today.Weekday()) - int(weekday) + 7) % 7
	}
	if delta == 0 && !sameDay {
		delta = 7
	}
	if !forward {
		delta = -delta
	}
	return types.WeekdayTarget{Weekday: weekday, Forward: forward, Offset: delta}, true
}

func drop(tokens []string, at, n int) []string {
	out := make([]string, 0, len(tokens)-n)
	out = append(out, tokens[:at]...)
	return append(out, tokens[at+n:]...)
}
