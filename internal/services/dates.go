package services

import (
	"time"
)

const dateLayout = "2006-01-02"

// parseDate accepts ISO dates, tolerating a trailing time component.
func parseDate(s string) (time.Time, bool) {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

// monthBounds returns the first and last day of t's calendar month.
func monthBounds(t time.Time) (string, string) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format(dateLayout), end.Format(dateLayout)
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
