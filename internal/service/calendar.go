package service

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Day truncates t to its calendar date at UTC midnight so that date
// arithmetic never crosses a DST boundary.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return Day(time.Now())
}

func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CenteredWeek returns today-3 .. today+3.
func CenteredWeek(today time.Time) []time.Time {
	start := Day(today).AddDate(0, 0, -3)
	return WeekDays(start)
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekDays returns seven consecutive days beginning at start.
func WeekDays(start time.Time) []time.Time {
	start = Day(start)
	out := make([]time.Time, 7)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// ShiftWeek moves a week start by n weeks.
func ShiftWeek(weekStart time.Time, n int) time.Time {
	return WeekStart(weekStart).AddDate(0, 0, 7*n)
}

// DaysBetween returns every date in the inclusive range, or nil when end
// precedes start.
func DaysBetween(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil
	}
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
