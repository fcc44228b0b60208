package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	layoutDate        = "2006-01-02"
	layoutDateTime    = "2006-01-02 15:04:05"
	layoutDateTimeISO = "2006-01-02T15:04:05"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime accepts "YYYY-MM-DDTHH:MM:SS" or "YYYY-MM-DD HH:MM:SS"
// in local timezone.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(layoutDateTimeISO, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDateTime, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q, expected %s", s, layoutDateTimeISO)
}

// FormatDateTime formats time to "YYYY-MM-DDTHH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTimeISO)
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
