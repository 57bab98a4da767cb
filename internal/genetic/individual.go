package genetic

import (
	"delivery-optimizer-service/internal/domain"
	"errors"
	"fmt"
)

// Individual pairs one candidate route with its fitness. Fitness is
// 1/(delay+1), so it lies in (0, 1] and grows as delay shrinks.
// Individuals are immutable; the operators always build new ones.
type Individual struct {
	route   *domain.Route
	delay   float64
	fitness float64
}

func NewIndividual(route *domain.Route) (*Individual, error) {
	if route == nil {
		return nil, errors.New("new individual: route is nil")
	}
	delay, err := route.Delay()
	if err != nil {
		return nil, fmt.Errorf("new individual: %w", err)
	}
	if delay < 0 {
		return nil, fmt.Errorf("new individual: negative delay %v", delay)
	}
	return &Individual{
		route:   route,
		delay:   delay,
		fitness: 1 / (delay + 1),
	}, nil
}

// Route returns the candidate route.
func (ind *Individual) Route() *domain.Route { return ind.route }

// Delay returns the route's total delay.
func (ind *Individual) Delay() float64 { return ind.delay }

// Fitness returns the individual's fitness.
func (ind *Individual) Fitness() float64 { return ind.fitness }

// DNA is the order sequence the crossover and mutation operators act on.
// Callers must not modify it.
func (ind *Individual) DNA() []domain.Order { return ind.route.Orders() }
