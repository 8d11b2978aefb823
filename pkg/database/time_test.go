package database_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alephdao/agent-builder/pkg/database"
)

func TestTimestampRoundTrip(t *testing.T) {
	orig := time.Date(2025, 3, 14, 9, 26, 53, 589793238, time.UTC)

	text := database.Timestamp(orig)
	parsed, err := database.ParseTimestamp(text)
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}

	if !parsed.Equal(orig) {
		t.Errorf("round trip = %v, want %v", parsed, orig)
	}
}

func TestTimestampNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2025, 6, 1, 12, 0, 0, 0, loc)

	text := database.Timestamp(local)
	want := "2025-06-01T07:00:00.000000000Z"
	if text != want {
		t.Errorf("Timestamp = %q, want %q", text, want)
	}
}

func TestTimestampLexicographicOrder(t *testing.T) {
	// A trimmed fractional second would sort "…00.4Z" after "…00.42Z";
	// the fixed-width layout must not.
	earlier := time.Date(2025, 1, 1, 0, 0, 0, 400000000, time.UTC)
	later := time.Date(2025, 1, 1, 0, 0, 0, 420000000, time.UTC)

	a := database.Timestamp(earlier)
	b := database.Timestamp(later)
	if !(a < b) {
		t.Errorf("Timestamp order: %q should sort before %q", a, b)
	}
}

func TestParseTimestampInvalid(t *testing.T) {
	if _, err := database.ParseTimestamp("not-a-time"); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}

func TestParseNullTimestamp(t *testing.T) {
	t.Run("null yields nil", func(t *testing.T) {
		got, err := database.ParseNullTimestamp(sql.NullString{})
		if err != nil {
			t.Fatalf("ParseNullTimestamp failed: %v", err)
		}
		if got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("valid value parses", func(t *testing.T) {
		orig := time.Date(2025, 2, 2, 8, 30, 0, 0, time.UTC)
		got, err := database.ParseNullTimestamp(sql.NullString{String: database.Timestamp(orig), Valid: true})
		if err != nil {
			t.Fatalf("ParseNullTimestamp failed: %v", err)
		}
		if got == nil || !got.Equal(orig) {
			t.Errorf("got %v, want %v", got, orig)
		}
	})

	t.Run("garbage errors", func(t *testing.T) {
		if _, err := database.ParseNullTimestamp(sql.NullString{String: "garbage", Valid: true}); err == nil {
			t.Error("expected error for garbage timestamp")
		}
	})
}
