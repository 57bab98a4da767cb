package domain

import (
	"errors"
	"testing"
)

func newTestStopMap(t *testing.T) *StopMap {
	t.Helper()
	m, err := NewStopMap([]Stop{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 10, Y: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestTravelTimesBetween(t *testing.T) {
	tt, err := NewTravelTimes(newTestStopMap(t), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := tt.Between(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Fatalf("time(1,2) = %v, want 5", got)
	}

	// Symmetric, and the memoized read returns the same value.
	back, err := tt.Between(2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != got {
		t.Fatalf("time(2,1) = %v, want %v", back, got)
	}
	again, err := tt.Between(1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != got {
		t.Fatalf("repeated time(1,2) = %v, want %v", again, got)
	}
}

func TestTravelTimesRejectsBadSpeed(t *testing.T) {
	m := newTestStopMap(t)
	if _, err := NewTravelTimes(m, 0); err == nil {
		t.Fatal("expected error for zero speed")
	}
	if _, err := NewTravelTimes(m, -1); err == nil {
		t.Fatal("expected error for negative speed")
	}
}

func TestTravelTimesUnknownStop(t *testing.T) {
	tt, err := NewTravelTimes(newTestStopMap(t), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tt.Between(1, 42); !errors.Is(err, ErrUnknownStop) {
		t.Fatalf("expected ErrUnknownStop, got %v", err)
	}
}

func TestTravelTimesSeedAndEntries(t *testing.T) {
	tt, err := NewTravelTimes(newTestStopMap(t), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Seeded values are served without recomputation.
	if err := tt.Seed(1, 2, 99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := tt.Between(2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 99 {
		t.Fatalf("seeded time = %v, want 99", got)
	}

	if err := tt.Seed(1, 2, -1); err == nil {
		t.Fatal("expected error for negative seeded time")
	}
	if err := tt.Seed(1, 42, 1); !errors.Is(err, ErrUnknownStop) {
		t.Fatalf("expected ErrUnknownStop, got %v", err)
	}

	if err := tt.WarmAll(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := tt.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	for _, e := range entries {
		if e.From >= e.To {
			t.Fatalf("entry (%d,%d) not ordered", e.From, e.To)
		}
	}
}
