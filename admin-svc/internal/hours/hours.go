// Package hours decides whether a business is open from its published weekly hours.
//
// Entries look like "Friday: 10:00 PM - 2:00 AM" or "Sunday: Closed". Anything that
// does not parse is treated as closed.
package hours

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var rangePattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*([AP]M)\s*[–-]\s*(\d{1,2}):(\d{2})\s*([AP]M)`)

// Clock is a wall-clock time of day in 24-hour form.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) before(other Clock) bool {
	return c.Hour < other.Hour || (c.Hour == other.Hour && c.Minute < other.Minute)
}

func (c Clock) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Window is the parsed opening range for one weekday.
type Window struct {
	Day   time.Weekday
	Open  Clock
	Close Clock
}

// Overnight reports whether the window closes on the following day.
func (w Window) Overnight() bool {
	return w.Close.before(w.Open)
}

// span anchors the window on day and returns its inclusive bounds.
func (w Window) span(day time.Time) (time.Time, time.Time) {
	open := w.Open.on(day)
	closing := w.Close.on(day)
	if closing.Before(open) {
		closing = closing.AddDate(0, 0, 1)
	}
	return open, closing
}

// Parse reads one "<Weekday>: <open> - <close>" entry.
// Closed days and malformed entries return false.
func Parse(entry string) (Window, bool) {
	day, ok := weekdayOf(entry)
	if !ok || strings.Contains(entry, "Closed") {
		return Window{}, false
	}

	m := rangePattern.FindStringSubmatch(entry)
	if m == nil {
		return Window{}, false
	}

	open, ok := to24(m[1], m[2], m[3])
	if !ok {
		return Window{}, false
	}
	closing, ok := to24(m[4], m[5], m[6])
	if !ok {
		return Window{}, false
	}

	return Window{Day: day, Open: open, Close: closing}, true
}

// IsOpen evaluates hours against the local wall clock.
func IsOpen(hours []string) bool {
	return IsOpenAt(hours, time.Now())
}

// IsOpenAt evaluates hours at now, truncated to the minute, in now's location.
// A range that started yesterday and runs past midnight keeps the business open
// until its closing time today.
func IsOpenAt(hours []string, now time.Time) bool {
	now = time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())

	if w, ok := entryFor(hours, now.Weekday()); ok {
		open, closing := w.span(now)
		if within(now, open, closing) {
			return true
		}
	}

	yesterday := now.AddDate(0, 0, -1)
	if w, ok := entryFor(hours, yesterday.Weekday()); ok && w.Overnight() {
		open, closing := w.span(yesterday)
		return within(now, open, closing)
	}

	return false
}

// Today returns the raw entry for now's weekday, if any.
func Today(hours []string, now time.Time) (string, bool) {
	for _, h := range hours {
		if strings.HasPrefix(h, now.Weekday().String()) {
			return h, true
		}
	}
	return "", false
}

func entryFor(hours []string, day time.Weekday) (Window, bool) {
	for _, h := range hours {
		if strings.HasPrefix(h, day.String()) {
			return Parse(h)
		}
	}
	return Window{}, false
}

func within(now, open, closing time.Time) bool {
	return !now.Before(open) && !now.After(closing)
}

func weekdayOf(entry string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.HasPrefix(entry, d.String()) {
			return d, true
		}
	}
	return time.Sunday, false
}

func to24(hour, minute, period string) (Clock, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 1 || h > 12 {
		return Clock{}, false
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m > 59 {
		return Clock{}, false
	}

	switch strings.ToUpper(period) {
	case "AM":
		if h == 12 {
			h = 0
		}
	case "PM":
		if h != 12 {
			h += 12
		}
	}
	return Clock{Hour: h, Minute: m}, true
}
