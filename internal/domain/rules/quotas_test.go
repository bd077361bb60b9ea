package rules

import (
	"testing"
	"time"
)

func TestDayKeyUsesLocalCalendarDay(t *testing.T) {
	// 23:30 UTC on Jan 1 is already Jan 2 in Minsk (UTC+3).
	minsk := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 1, 1, 23, 30, 0, 0, time.UTC)

	if got := DayKey(now, time.UTC); got != "2026-01-01" {
		t.Fatalf("utc day key: got %q", got)
	}
	if got := DayKey(now, minsk); got != "2026-01-02" {
		t.Fatalf("local day key: got %q", got)
	}
	if got := DayKey(now, nil); got != "2026-01-01" {
		t.Fatalf("nil location day key: got %q", got)
	}
}

func TestNextResetAtIsStartOfNextLocalDay(t *testing.T) {
	minsk := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2026, 1, 1, 23, 30, 0, 0, time.UTC)

	reset := NextResetAt(now, minsk)
	want := time.Date(2026, 1, 2, 21, 0, 0, 0, time.UTC) // Jan 3 00:00 UTC+3
	if !reset.Equal(want) {
		t.Fatalf("next reset: got %v, want %v", reset, want)
	}

	if !NextResetAt(now, nil).Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("nil location reset should be next UTC midnight")
	}
}
