// Package clock extracts and parses clock-time tokens from document text.
package clock

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/taigrr/journal-mcp/internal/types"
)

// tokenPattern matches clock-shaped words: one or two digits, an optional
// colon, up to two further digits, and an optional meridiem marker.
var tokenPattern = regexp.MustCompile(`^\d{1,2}:?\d{0,2}(?:[aApP][mM])?$`)

// TimeToken is a clock time extracted from a document span, always held in
// 24-hour form regardless of how it was written.
type TimeToken struct {
	Hour   int
	Minute int
	Span   types.Span
}

// Hours returns the token as a fractional hour count since midnight.
func (t TimeToken) Hours() float64 {
	return float64(t.Hour) + float64(t.Minute)/60
}

// Before reports whether t is chronologically earlier than other.
func (t TimeToken) Before(other TimeToken) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// String renders the token in 24-hour HH:MM form.
func (t TimeToken) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// WordAt returns the whitespace-delimited word covering the byte position
// pos in text, along with its span. A position on whitespace or outside the
// text yields an empty word. Boundaries are decoded rune by rune, so spans
// never cut a multibyte character in half.
func WordAt(text string, pos int) (string, types.Span) {
	if pos < 0 || pos > len(text) {
		return "", types.Span{Start: pos, End: pos}
	}
	// A cursor may land mid-rune; snap to the rune start.
	for pos > 0 && pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos--
	}
	spaceAt := func(i int) bool {
		r, _ := utf8.DecodeRuneInString(text[i:])
		return unicode.IsSpace(r)
	}
	// A cursor at the end of a word still refers to it.
	if pos == len(text) || spaceAt(pos) {
		if pos == 0 {
			return "", types.Span{Start: pos, End: pos}
		}
		prev, size := utf8.DecodeLastRuneInString(text[:pos])
		if unicode.IsSpace(prev) {
			return "", types.Span{Start: pos, End: pos}
		}
		pos -= size
	}
	start := pos
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsSpace(r) {
			break
		}
		start -= size
	}
	end := pos
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return text[start:end], types.Span{Start: start, End: end}
}

// Matches reports whether a word fits the clock-time grammar.
func Matches(word string) bool {
	return word != "" && tokenPattern.MatchString(word)
}

// ParseToken decodes a clock-shaped word into a TimeToken. It first tries
// the caller's canonical layout (a Go reference layout such as "15:04" or
// "3:04 pm"), then falls back to the glued-digit form where "930" means
// 9:30 and "1223" means 12:23. A word that survives neither is an error.
func ParseToken(word string, layout string, span types.Span) (TimeToken, error) {
	if t, ok := parseCanonical(word, layout); ok {
		return TimeToken{Hour: t.Hour(), Minute: t.Minute(), Span: span}, nil
	}
	if h, m, ok := parseGlued(word); ok {
		return TimeToken{Hour: h, Minute: m, Span: span}, nil
	}
	return TimeToken{}, fmt.Errorf("cannot parse %q as a time", word)
}

func parseCanonical(word, layout string) (time.Time, bool) {
	if layout == "" {
		layout = "15:04"
	}
	for _, candidate := range []string{word, strings.ToUpper(word), strings.ToLower(word)} {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseGlued accepts three or four contiguous digits: the last two are the
// minute, the rest the hour.
func parseGlued(word string) (hour, minute int, ok bool) {
	if len(word) < 3 || len(word) > 4 {
		return 0, 0, false
	}
	for _, r := range word {
		if r < '0' || r > '9' {
			return 0, 0, false
		}
	}
	split := len(word) - 2
	for _, r := range word[:split] {
		hour = hour*10 + int(r-'0')
	}
	for _, r := range word[split:] {
		minute = minute*10 + int(r-'0')
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
