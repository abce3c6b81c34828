package domain

import "time"

// Day represents a calendar day with the number of words active on it
type Day struct {
	Date      time.Time
	WordCount int
}

// DateString returns date in YYYYMMDD format
func (d Day) DateString() string {
	return d.Date.Format("20060102")
}

// DisplayString returns user-friendly date string relative to now
func (d Day) DisplayString(now time.Time) string {
	date := d.Date.In(now.Location())

	if SameDay(date, now) {
		return "Today"
	}
	if SameDay(date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}

	return date.Format("Jan 2 2006")
}

// StartOfDay truncates t to midnight in t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's location
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
