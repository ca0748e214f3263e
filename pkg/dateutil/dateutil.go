// Package dateutil implements the calendar arithmetic behind the agenda
// window: local-zone "today", day offsets, and Monday-to-Sunday week spans.
// All dates cross the package boundary as YYYY-MM-DD strings, which compare
// correctly with plain string comparison.
package dateutil

import (
	"strings"
	"time"
)

// Layout is the canonical calendar-date form used throughout the tracker.
const Layout = "2006-01-02"

// Calendar performs date arithmetic in a fixed time zone. The zone matters:
// "today" computed in UTC drifts by the local offset around midnight.
type Calendar struct {
	loc *time.Location
}

// New returns a Calendar for loc. A nil loc falls back to the system zone.
func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc}
}

// Today returns the current date in the calendar's zone.
func (c *Calendar) Today() string {
	return time.Now().In(c.loc).Format(Layout)
}

// AddDays shifts date by delta calendar days, rolling over month and year
// boundaries. DST transitions cannot skew the result because the date is
// re-anchored at noon before shifting. Invalid input returns the empty string.
func (c *Calendar) AddDays(date string, delta int) string {
	t, err := time.ParseInLocation(Layout, date, c.loc)
	if err != nil {
		return ""
	}
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, c.loc)
	return noon.AddDate(0, 0, delta).Format(Layout)
}

// WeekRange returns the Monday-to-Sunday span containing date, inclusive.
// The week always starts on Monday: a Sunday is the last day of its week.
// Invalid input returns two empty strings.
func (c *Calendar) WeekRange(date string) (start, end string) {
	t, err := time.ParseInLocation(Layout, date, c.loc)
	if err != nil {
		return "", ""
	}
	// time.Weekday numbers Sunday as 0; re-map so Monday is offset 0.
	offset := (int(t.Weekday()) + 6) % 7
	start = c.AddDays(date, -offset)
	end = c.AddDays(start, 6)
	return start, end
}

// normalizeLayouts are the input shapes Normalize accepts, tried in order.
var normalizeLayouts = []string{
	Layout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Normalize coerces a date-like input to YYYY-MM-DD. It fails soft: empty or
// unparseable input yields the empty string (absent), never an error.
func (c *Calendar) Normalize(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}
	for _, layout := range normalizeLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t.Format(Layout)
		}
	}
	return ""
}
