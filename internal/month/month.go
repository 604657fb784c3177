// Package month owns the "YYYY-MM" month key used to bucket every ledger
// collection by time.
package month

import "time"

const keyLayout = "2006-01"

// FromDate derives the month key for a date. The invariant
// month == date[:7] holds for every stored ledger row.
func FromDate(t time.Time) string {
	return t.UTC().Format(keyLayout)
}

// Valid reports whether key is a well-formed "YYYY-MM" string.
func Valid(key string) bool {
	if len(key) != len(keyLayout) {
		return false
	}
	_, err := time.Parse(keyLayout, key)
	return err == nil
}

// DayStart truncates a timestamp to midnight UTC. Meal rows are keyed by
// calendar day, so two timestamps on the same day address the same row.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Current returns the month key for the present time.
func Current() string {
	return FromDate(time.Now())
}
