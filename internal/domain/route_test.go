package domain

import (
	"math/rand"
	"testing"
)

// newTestEvaluator builds the three-stop world used across route tests:
// depot at (0,0), stops at (10,0) and (10,10), speed 1.
func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	m := newTestStopMap(t)
	tt, err := NewTravelTimes(m, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	depot, err := m.Stop(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eval, err := NewEvaluator(depot, tt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return eval
}

func TestRouteDelayOnTime(t *testing.T) {
	eval := newTestEvaluator(t)

	// 10 to the first stop, another 10 to the second; both limits are
	// far away, so no delay accumulates.
	route, err := NewRoute(eval, []Order{
		{ID: 1, StopID: 2, WaitTime: 0, TimeLimit: 100},
		{ID: 2, StopID: 3, WaitTime: 0, TimeLimit: 100},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delay, err := route.Delay()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delay != 0 {
		t.Fatalf("delay = %v, want 0", delay)
	}
}

func TestRouteDelayLate(t *testing.T) {
	eval := newTestEvaluator(t)

	// First stop reached at t=10 against a limit of 5: 5 late.
	route, err := NewRoute(eval, []Order{
		{ID: 1, StopID: 2, WaitTime: 0, TimeLimit: 5},
		{ID: 2, StopID: 3, WaitTime: 0, TimeLimit: 100},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delay, err := route.Delay()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delay != 5 {
		t.Fatalf("delay = %v, want 5", delay)
	}
}

func TestRouteDelayCountsWaitTime(t *testing.T) {
	eval := newTestEvaluator(t)

	// Arrival is travel (10) plus prior wait (7) against a limit of 12.
	route, err := NewRoute(eval, []Order{
		{ID: 1, StopID: 2, WaitTime: 7, TimeLimit: 12},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delay, err := route.Delay()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delay != 5 {
		t.Fatalf("delay = %v, want 5", delay)
	}
}

func TestRouteDelayMemoized(t *testing.T) {
	eval := newTestEvaluator(t)
	route, err := NewRoute(eval, []Order{{ID: 1, StopID: 2, TimeLimit: 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := route.Delay()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := route.Delay()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("memoized delay = %v, want %v", second, first)
	}
}

func TestRouteRejectsEmptySequence(t *testing.T) {
	eval := newTestEvaluator(t)
	if _, err := NewRoute(eval, nil); err == nil {
		t.Fatal("expected error for empty order sequence")
	}
}

func TestOrderBookRandomRoute(t *testing.T) {
	eval := newTestEvaluator(t)
	book, err := NewOrderBook([]Order{
		{ID: 1, StopID: 2, TimeLimit: 10},
		{ID: 2, StopID: 3, TimeLimit: 10},
		{ID: 3, StopID: 1, TimeLimit: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	route, err := book.RandomRoute(eval, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[int]bool{}
	for _, id := range route.OrderIDs() {
		if seen[id] {
			t.Fatalf("order %d appears twice", id)
		}
		seen[id] = true
	}
	if len(seen) != book.Size() {
		t.Fatalf("route visits %d orders, want %d", len(seen), book.Size())
	}
}

func TestOrderBookValidation(t *testing.T) {
	if _, err := NewOrderBook(nil); err == nil {
		t.Fatal("expected error for empty order list")
	}
	if _, err := NewOrderBook([]Order{{ID: 1}, {ID: 1}}); err == nil {
		t.Fatal("expected error for duplicate order IDs")
	}
	if _, err := NewOrderBook([]Order{{ID: 1, WaitTime: -1}}); err == nil {
		t.Fatal("expected error for negative wait time")
	}
	if _, err := NewOrderBook([]Order{{ID: 1, TimeLimit: -1}}); err == nil {
		t.Fatal("expected error for negative time limit")
	}
}
