package util

import (
    "testing"
    "time"
)

func TestParseTimestampISO(t *testing.T) {
    got, ok := ParseTimestamp("2024-10-10T10:10:10Z")
    if !ok {
        t.Fatalf("expected ok")
    }
    want := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimestampISONoZone(t *testing.T) {
    got, ok := ParseTimestamp("2024-10-10T10:10:10")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Hour() != 10 || got.Day() != 10 {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimestampSQL(t *testing.T) {
    got, ok := ParseTimestamp("2024-01-02 03:04:05")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Month() != time.January || got.Second() != 5 {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimestampInvalid(t *testing.T) {
    if _, ok := ParseTimestamp("not-a-date"); ok {
        t.Fatalf("expected failure")
    }
    if _, ok := ParseTimestamp(""); ok {
        t.Fatalf("expected failure for empty string")
    }
}

func TestParseTimestampDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
    if got := ParseTimestampDefault("", def); !got.Equal(def) {
        t.Fatalf("expected default")
    }
}

func TestDateOf(t *testing.T) {
    ts := time.Date(2024, 5, 6, 13, 14, 15, 0, time.UTC)
    got := DateOf(ts)
    if got.Hour() != 0 || got.Day() != 6 {
        t.Fatalf("unexpected date %v", got)
    }
}
