// Package deadline parses heterogeneous scholarship deadline strings and
// classifies their urgency. It is consumed by the UI layer and does not
// affect ranking.
package deadline

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// UnknownDays is the sentinel day count used when a deadline string cannot
// be parsed. An unparsable deadline is treated as unknown-but-far rather
// than already closed, and must never fail ranking.
const UnknownDays = 999

// Status classifies how urgent a deadline is.
type Status string

const (
	// StatusClosed means the deadline has passed.
	StatusClosed Status = "closed"
	// StatusUrgent means the deadline is 0-3 days away.
	StatusUrgent Status = "urgent"
	// StatusClosing means the deadline is 4-14 days away.
	StatusClosing Status = "closing"
	// StatusOpen means the deadline is more than 14 days away.
	StatusOpen Status = "open"
)

var (
	dmyPattern       = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})/(\d{4})\s*$`)
	monthDayPattern  = regexp.MustCompile(`^\s*([A-Za-z]+)\s+(\d{1,2}),?\s+(\d{4})\s*$`)
	monthsByName     = map[string]time.Month{}
	nativeLayouts    = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}
)

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		monthsByName[name] = m
		monthsByName[name[:3]] = m
	}
}

// parser is one strategy in the ordered parsing cascade.
// It returns the parsed date and whether it succeeded.
type parser func(s string) (time.Time, bool)

// parsers is the explicit ordered list of strategies; first success wins.
var parsers = []parser{parseNative, parseDayMonthYear, parseMonthDayYear}

func parseNative(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range nativeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDayMonthYear(s string) (time.Time, bool) {
	m := dmyPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

func parseMonthDayYear(s string) (time.Time, bool) {
	m := monthDayPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthsByName[strings.ToLower(m[1])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// Parse attempts each parsing strategy in order and reports whether any
// succeeded.
func Parse(s string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	for _, p := range parsers {
		if t, ok := p(s); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysUntilAt computes whole days from now until the deadline, truncating
// both to day boundaries so time-of-day cannot introduce an off-by-one.
// Unparsable deadlines return UnknownDays.
func DaysUntilAt(deadline string, now time.Time) int {
	t, ok := Parse(deadline)
	if !ok {
		return UnknownDays
	}
	a := truncateToDay(now)
	b := truncateToDay(t)
	return int(b.Sub(a).Hours() / 24)
}

// DaysUntil computes whole days from the current time until the deadline.
func DaysUntil(deadline string) int {
	return DaysUntilAt(deadline, time.Now())
}

// StatusAt buckets a deadline relative to the given reference time.
func StatusAt(deadline string, now time.Time) Status {
	days := DaysUntilAt(deadline, now)
	switch {
	case days < 0:
		return StatusClosed
	case days <= 3:
		return StatusUrgent
	case days <= 14:
		return StatusClosing
	default:
		return StatusOpen
	}
}

// StatusOf buckets a deadline relative to the current time.
func StatusOf(deadline string) Status {
	return StatusAt(deadline, time.Now())
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
