package genetic

import (
	"delivery-optimizer-service/internal/domain"
	"testing"
)

func TestIndividualFitness(t *testing.T) {
	w := newTestWorld(t)

	// Stop 2 is 10 away at speed 1 against a limit of 5: delay 5.
	ind := w.individual(t, domain.Order{ID: 1, StopID: 2, TimeLimit: 5})

	if ind.Delay() != 5 {
		t.Fatalf("delay = %v, want 5", ind.Delay())
	}
	want := 1.0 / 6.0
	if ind.Fitness() != want {
		t.Fatalf("fitness = %v, want %v", ind.Fitness(), want)
	}
}

func TestIndividualFitnessBounds(t *testing.T) {
	w := newTestWorld(t)

	onTime := w.individual(t, domain.Order{ID: 1, StopID: 2, TimeLimit: 100})
	if onTime.Fitness() != 1 {
		t.Fatalf("zero-delay fitness = %v, want 1", onTime.Fitness())
	}

	late := w.individual(t, domain.Order{ID: 1, StopID: 3, TimeLimit: 0})
	if late.Fitness() <= 0 || late.Fitness() >= 1 {
		t.Fatalf("late fitness = %v, want within (0,1)", late.Fitness())
	}
}

func TestIndividualDNAMatchesRoute(t *testing.T) {
	w := newTestWorld(t)
	ind := w.individual(t,
		domain.Order{ID: 7, StopID: 2, TimeLimit: 100},
		domain.Order{ID: 9, StopID: 3, TimeLimit: 100},
	)

	dna := ind.DNA()
	if len(dna) != 2 || dna[0].ID != 7 || dna[1].ID != 9 {
		t.Fatalf("unexpected DNA %v", dna)
	}
}

func TestNewIndividualNilRoute(t *testing.T) {
	if _, err := NewIndividual(nil); err == nil {
		t.Fatal("expected error for nil route")
	}
}
