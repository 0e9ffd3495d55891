package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the calendar-day format accepted and produced at the API edge.
const DateLayout = "2006-01-02"

// Day builds a calendar date at UTC midnight.
func Day(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf drops the clock part of t, keeping its calendar day.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return Day(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
	}
	return DateOf(t), nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b datatypes.Date) bool {
	return FormatDate(a) == FormatDate(b)
}

// NormalizeDate moves d to UTC midnight of its calendar day so equality
// queries on date columns match regardless of how d was built.
func NormalizeDate(d datatypes.Date) datatypes.Date {
	return DateOf(time.Time(d))
}
