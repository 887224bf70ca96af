// Package types defines the data structures shared across the journal server.
package types

import "time"

type (
	// WeekdayTarget is a weekday named in an expression like "next friday",
	// together with the direction and the day offset it resolved to.
	WeekdayTarget struct {
		Weekday time.Weekday `json:"weekday"`
		Forward bool         `json:"forward"`
		Offset  int          `json:"offset"`
	}

	// Input is the parsed form of a raw journal expression. At most one of
	// Offset, Date and Weekday is set; when none of the date rules matched,
	// Offset is 0 and the whole expression lives in Memo.
	Input struct {
		Raw     string         `json:"raw"`
		Offset  *int           `json:"offset,omitempty"`
		Date    *time.Time     `json:"date,omitempty"`
		Weekday *WeekdayTarget `json:"weekday,omitempty"`
		Memo    string         `json:"memo,omitempty"`
		Flags   []string       `json:"flags,omitempty"`
	}
)

// Day resolves the input against a reference date and returns the calendar
// day it addresses, truncated to midnight in today's location.
func (in Input) Day(today time.Time) time.Time {
	if in.Date != nil {
		y, m, d := in.Date.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, in.Date.Location())
	}
	offset := 0
	switch {
	case in.Offset != nil:
		offset = *in.Offset
	case in.Weekday != nil:
		offset = in.Weekday.Offset
	}
	y, m, d := today.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, today.Location()).AddDate(0, 0, offset)
}
