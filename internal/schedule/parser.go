// Package schedule defers a run to a wall-clock time given with --at, so a
// large attachment can be sent outside the model's busiest hours.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// layouts are tried in order; the first that parses wins.
var layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse resolves input relative to now, in now's location.
// Supported formats:
//   - YYYY-MM-DDTHH:MM and "YYYY-MM-DD HH:MM": that exact minute
//   - YYYY-MM-DD: midnight of that date
//   - HH:MM: the next occurrence, today if still ahead, else tomorrow
//   - +<duration>: now plus a Go duration, e.g. +90m or +1h30m
func Parse(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	local := now.Location()

	if rest, ok := strings.CutPrefix(input, "+"); ok {
		d, err := time.ParseDuration(rest)
		if err != nil || d < 0 {
			return time.Time{}, fmt.Errorf("invalid schedule offset: %q", input)
		}
		return now.Add(d), nil
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, local); err == nil {
			return t, nil
		}
	}

	if t, err := time.ParseInLocation("15:04", input, local); err == nil {
		next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, local)
		if next.Before(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next, nil
	}

	return time.Time{}, fmt.Errorf("invalid schedule format: %q (supported: YYYY-MM-DD, HH:MM, \"YYYY-MM-DD HH:MM\", YYYY-MM-DDTHH:MM, +<duration>)", input)
}
