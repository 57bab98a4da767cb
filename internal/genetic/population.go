package genetic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Population is a fixed-size collection of individuals. The slot order
// carries no meaning beyond bookkeeping; size is fixed for one run.
type Population struct {
	items []*Individual
}

// NewRandomPopulation builds a population of size individuals, each
// produced by an independent call to create.
func NewRandomPopulation(size int, create func() (*Individual, error)) (*Population, error) {
	if size <= 0 {
		return nil, fmt.Errorf("new population: size must be greater than 0, got %d", size)
	}

	items := make([]*Individual, size)
	for i := range items {
		ind, err := create()
		if err != nil {
			return nil, fmt.Errorf("new population: individual %d: %w", i, err)
		}
		items[i] = ind
	}
	return &Population{items: items}, nil
}

func (p *Population) Size() int { return len(p.items) }

// Get returns the individual at slot i.
func (p *Population) Get(i int) *Individual { return p.items[i] }

// Set overwrites the individual at slot i.
func (p *Population) Set(i int, ind *Individual) { p.items[i] = ind }

// Best returns the highest-fitness individual and its slot index.
// Ties go to the first occurrence in slot order.
func (p *Population) Best() (int, *Individual) {
	bestIdx := 0
	bestFit := math.Inf(-1)
	for i, ind := range p.items {
		f := 0.0
		if ind != nil {
			f = ind.Fitness()
		}
		if f > bestFit {
			bestFit = f
			bestIdx = i
		}
	}
	return bestIdx, p.items[bestIdx]
}

// Worst returns the lowest-fitness individual and its slot index.
// Ties go to the first occurrence in slot order.
func (p *Population) Worst() (int, *Individual) {
	worstIdx := 0
	worstFit := math.Inf(1)
	for i, ind := range p.items {
		f := 0.0
		if ind != nil {
			f = ind.Fitness()
		}
		if f < worstFit {
			worstFit = f
			worstIdx = i
		}
	}
	return worstIdx, p.items[worstIdx]
}

// Fitness returns every slot's fitness; an empty slot counts as 0.
func (p *Population) Fitness() []float64 {
	fitness := make([]float64, len(p.items))
	for i, ind := range p.items {
		if ind != nil {
			fitness[i] = ind.Fitness()
		}
	}
	return fitness
}

// Clone returns a population sharing the same individuals but owning an
// independent slot list, so overwriting a slot in one does not affect
// the other. Used to snapshot a generation for crossover.
func (p *Population) Clone() *Population {
	return &Population{items: append([]*Individual(nil), p.items...)}
}

// Stats returns the mean and standard deviation of the population's
// fitness, for per-generation reporting.
func (p *Population) Stats() (mean, stddev float64) {
	fitness := p.Fitness()
	mean = stat.Mean(fitness, nil)
	if len(fitness) > 1 {
		stddev = stat.StdDev(fitness, nil)
	}
	return mean, stddev
}
