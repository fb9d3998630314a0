package util

import (
    "strings"
    "time"
)

// Timestamp layouts accepted from host applications. ISO-8601 values may
// carry a trailing "Z" which is stripped before parsing; the space-separated
// form is what SQL-backed hosts emit.
var isoLayouts = []string{
    "2006-01-02T15:04:05",
    "2006-01-02T15:04:05.999999999",
    "2006-01-02T15:04:05-07:00",
}

const sqlLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses a transaction timestamp in either accepted form.
// Returns (t, true) if any layout worked.
func ParseTimestamp(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if strings.Contains(s, "T") {
        v := strings.TrimSuffix(s, "Z")
        for _, layout := range isoLayouts {
            if t, err := time.Parse(layout, v); err == nil {
                return t, true
            }
        }
        return time.Time{}, false
    }
    if t, err := time.Parse(sqlLayout, s); err == nil {
        return t, true
    }
    return time.Time{}, false
}

// ParseTimestampDefault parses a timestamp or returns def if empty/invalid.
func ParseTimestampDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTimestamp(s); ok {
        return t
    }
    return def
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) time.Time {
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthStart returns the first instant of t's calendar month.
func MonthStart(t time.Time) time.Time {
    return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
