package core

import (
	"bytes"
	"fmt"
	"time"
)

// DateLayout is the only date format the API reads or writes. Values are UTC.
const DateLayout = "2006-01-02T15:04:05"

// FormatDate renders t in DateLayout after converting it to UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a DateLayout value as UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// Time is a time.Time that marshals with DateLayout.
type Time struct {
	time.Time
}

// UnmarshalJSON accepts a DateLayout string or null.
func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a string, got %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes DateLayout, or null for the zero time.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + FormatDate(t.Time) + `"`), nil
}
