package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Timestamp columns hold RFC 3339 text. SQLite compares them as strings,
// so the layout keeps fixed-width fractional seconds and UTC; lexicographic
// order then matches chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamp formats t as timestamp column text.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp parses timestamp column text.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParseNullTimestamp parses nullable timestamp column text.
// A NULL column yields a nil time.
func ParseNullTimestamp(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}

	t, err := ParseTimestamp(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
