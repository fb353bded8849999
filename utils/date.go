package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// DateOnly drops the clock part of t and pins it to UTC midnight. Every
// calendar date stored or compared by the ledger goes through here.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
