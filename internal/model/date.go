package model

import (
	"fmt"
	"strings"
	"time"
)

// DateOnly is the layout used for bare calendar dates ("2024-03-15").
const DateOnly = time.DateOnly

// FormatDate renders a due date for storage. The value keeps its own UTC
// offset so a decode gives back the same instant and the same wall clock.
// The zero time encodes as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// ParseDate is the inverse of FormatDate. It also accepts a bare date,
// which is read as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseUserDate reads a date typed by a person. Bare dates land on midnight
// in loc, so "2024-03-15" means the 15th where the user is.
func ParseUserDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return time.Time{}, nil
	case "today":
		return startOfDay(time.Now().In(loc)), nil
	case "tomorrow":
		return startOfDay(time.Now().In(loc)).AddDate(0, 0, 1), nil
	}
	if t, err := time.ParseInLocation(DateOnly, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("bad date %q (use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", today or tomorrow)", s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
