package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if d.String() != "2026-03-15" {
		t.Errorf("String() = %q, want %q", d.String(), "2026-03-15")
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := ParseDate("15/03/2026"); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestDate_After(t *testing.T) {
	earlier := NewDate(2026, time.March, 14)
	later := NewDate(2026, time.March, 15)

	if !later.After(earlier) {
		t.Error("expected later.After(earlier) to be true")
	}
	if earlier.After(later) {
		t.Error("expected earlier.After(later) to be false")
	}
	if earlier.After(earlier) {
		t.Error("expected same date not to be after itself")
	}
}

func TestDate_DaysUntil(t *testing.T) {
	start := NewDate(2026, time.March, 1)
	end := NewDate(2026, time.March, 11)

	if got := start.DaysUntil(end); got != 10 {
		t.Errorf("DaysUntil = %d, want 10", got)
	}
	if got := start.DaysUntil(start); got != 0 {
		t.Errorf("DaysUntil same date = %d, want 0", got)
	}
}

func TestDate_AddDays(t *testing.T) {
	d := NewDate(2026, time.February, 27)

	if got := d.AddDays(2).String(); got != "2026-03-01" {
		t.Errorf("AddDays(2) = %q, want 2026-03-01", got)
	}
	if got := d.AddDays(-27).String(); got != "2026-01-31" {
		t.Errorf("AddDays(-27) = %q, want 2026-01-31", got)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 15)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(b) != `"2026-03-15"` {
		t.Errorf("Marshal = %s, want %q", b, `"2026-03-15"`)
	}

	var parsed Date
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if parsed.String() != "2026-03-15" {
		t.Errorf("round trip = %q, want 2026-03-15", parsed.String())
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date

	if err := d.Scan(time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) returned error: %v", err)
	}
	if d.String() != "2026-03-15" {
		t.Errorf("Scan(time.Time) = %q, want 2026-03-15", d.String())
	}

	if err := d.Scan([]byte("2026-04-01")); err != nil {
		t.Fatalf("Scan([]byte) returned error: %v", err)
	}
	if d.String() != "2026-04-01" {
		t.Errorf("Scan([]byte) = %q, want 2026-04-01", d.String())
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error for unsupported type")
	}
}
