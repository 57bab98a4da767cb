package genetic

import (
	"delivery-optimizer-service/internal/domain"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Status reports where a run is in its lifecycle.
type Status int

const (
	StatusRunning Status = iota
	StatusStoppedMaxIter
	StatusStoppedStagnation
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusStoppedMaxIter:
		return "stopped_max_iter"
	case StatusStoppedStagnation:
		return "stopped_stagnation"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrRunFinished is returned by Step once the run has reached a stop
// state. It marks the normal end of the generation sequence, not a
// failure.
var ErrRunFinished = errors.New("evolution run finished")

// StepResult is what one generation reports back to the caller.
type StepResult struct {
	// 0-based iteration index of the generation that just ran.
	Iteration int

	// Best individual of the current population.
	Best *Individual

	// Whether this generation beat the run-level best.
	Improved bool

	// Run status after this generation.
	Status Status
}

// Config holds the engine's operator rates and termination bounds.
type Config struct {
	// Probability that a selected individual is recombined with a
	// second parent. Must lie in [0,1].
	CrossRate float64

	// Per-position probability of a swap mutation. Must lie in [0,1].
	MutateRate float64

	// Keep the previous generation's best individual when the new
	// generation regressed.
	Elitism bool

	// Maximum number of generations. Must be greater than 0.
	MaxIter int

	// Stop after this many generations without improvement.
	// 0 disables the stagnation check.
	MaxUnchangedIter int

	// Optional RNG for reproducible runs. Time-seeded when nil.
	Rand *rand.Rand
}

// Engine drives the generational loop: fitness-proportional selection,
// ordered crossover, swap mutation and optional elitism, one generation
// per Step call. An engine belongs to a single goroutine.
type Engine struct {
	pop        *Population
	best       *Individual
	crossRate  float64
	mutateRate float64
	elitism    bool

	maxIter          int
	maxUnchangedIter int

	rng *rand.Rand

	iter      int
	unchanged int
	status    Status
}

func NewEngine(pop *Population, cfg Config) (*Engine, error) {
	if pop == nil || pop.Size() == 0 {
		return nil, errors.New("new engine: population must be non-empty")
	}
	if cfg.CrossRate < 0 || cfg.CrossRate > 1 {
		return nil, fmt.Errorf("new engine: cross rate %v outside [0,1]", cfg.CrossRate)
	}
	if cfg.MutateRate < 0 || cfg.MutateRate > 1 {
		return nil, fmt.Errorf("new engine: mutate rate %v outside [0,1]", cfg.MutateRate)
	}
	if cfg.MaxIter <= 0 {
		return nil, fmt.Errorf("new engine: max iterations must be greater than 0, got %d", cfg.MaxIter)
	}
	if cfg.MaxUnchangedIter < 0 {
		return nil, fmt.Errorf("new engine: max unchanged iterations must not be negative, got %d", cfg.MaxUnchangedIter)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	_, best := pop.Best()
	return &Engine{
		pop:              pop,
		best:             best,
		crossRate:        cfg.CrossRate,
		mutateRate:       cfg.MutateRate,
		elitism:          cfg.Elitism,
		maxIter:          cfg.MaxIter,
		maxUnchangedIter: cfg.MaxUnchangedIter,
		rng:              rng,
		status:           StatusRunning,
	}, nil
}

// Best returns the best individual seen across all generations so far.
// Its fitness never decreases over a run.
func (e *Engine) Best() *Individual { return e.best }

// Status returns the run status.
func (e *Engine) Status() Status { return e.status }

// Iteration returns how many generations have run.
func (e *Engine) Iteration() int { return e.iter }

// Population returns the current population.
func (e *Engine) Population() *Population { return e.pop }

// Step runs one generation and reports its result. After the run has
// stopped, every further call returns ErrRunFinished.
func (e *Engine) Step() (StepResult, error) {
	if e.status != StatusRunning {
		return StepResult{}, ErrRunFinished
	}

	genBest, err := e.evolve()
	if err != nil {
		return StepResult{}, fmt.Errorf("engine step: %w", err)
	}

	improved := genBest.Fitness() > e.best.Fitness()
	if improved {
		e.best = genBest
		e.unchanged = 0
	} else {
		e.unchanged++
	}

	res := StepResult{
		Iteration: e.iter,
		Best:      genBest,
		Improved:  improved,
	}
	e.iter++

	if e.iter >= e.maxIter {
		e.status = StatusStoppedMaxIter
	} else if e.maxUnchangedIter > 0 && e.unchanged >= e.maxUnchangedIter {
		e.status = StatusStoppedStagnation
	}
	res.Status = e.status
	return res, nil
}

// evolve transforms the population in place and returns its new best.
func (e *Engine) evolve() (*Individual, error) {
	var elite *Individual
	if e.elitism {
		_, elite = e.pop.Best()
	}

	if err := e.selectNext(); err != nil {
		return nil, err
	}

	// All crossovers in a generation draw their second parent from this
	// fixed snapshot, never from partially mutated siblings.
	snapshot := e.pop.Clone()
	for i := 0; i < e.pop.Size(); i++ {
		child, err := e.crossover(e.pop.Get(i), snapshot)
		if err != nil {
			return nil, err
		}
		mutated, err := e.mutate(child)
		if err != nil {
			return nil, err
		}
		e.pop.Set(i, mutated)
	}

	if elite != nil {
		if _, genBest := e.pop.Best(); genBest.Fitness() < elite.Fitness() {
			worstIdx, _ := e.pop.Worst()
			e.pop.Set(worstIdx, elite)
		}
	}

	_, best := e.pop.Best()
	return best, nil
}

// selectNext redraws every slot from the current population with
// replacement, with probability proportional to fitness.
func (e *Engine) selectNext() error {
	fitness := e.pop.Fitness()
	cumulative := make([]float64, len(fitness))
	total := 0.0
	for i, f := range fitness {
		total += f
		cumulative[i] = total
	}
	if total <= 0 {
		return errors.New("selection: total fitness must be greater than 0")
	}

	next := make([]*Individual, e.pop.Size())
	for i := range next {
		r := e.rng.Float64() * total
		idx := sort.SearchFloat64s(cumulative, r)
		if idx >= len(cumulative) {
			idx = len(cumulative) - 1
		}
		next[i] = e.pop.Get(idx)
	}
	for i, ind := range next {
		e.pop.Set(i, ind)
	}
	return nil
}

// crossover applies ordered crossover with probability crossRate: a
// random contiguous segment of ind's sequence forms the head, and the
// second parent's remaining orders follow in their original order. The
// child is always a full permutation of the order set.
func (e *Engine) crossover(ind *Individual, snapshot *Population) (*Individual, error) {
	if e.rng.Float64() >= e.crossRate {
		return ind, nil
	}

	parent := snapshot.Get(e.rng.Intn(snapshot.Size()))

	dna := ind.DNA()
	i1, i2 := e.rng.Intn(len(dna)), e.rng.Intn(len(dna))
	begin, end := i1, i2
	if begin > end {
		begin, end = end, begin
	}

	head := append([]domain.Order(nil), dna[begin:end]...)
	inHead := make(map[int]struct{}, len(head))
	for _, o := range head {
		inHead[o.ID] = struct{}{}
	}

	child := head
	for _, o := range parent.DNA() {
		if _, ok := inHead[o.ID]; !ok {
			child = append(child, o)
		}
	}

	route, err := domain.NewRoute(ind.Route().Evaluator(), child)
	if err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	crossed, err := NewIndividual(route)
	if err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	return crossed, nil
}

// mutate swaps each position with a uniformly random one, independently
// with probability mutateRate. Swapping a position with itself is a
// legal no-op draw.
func (e *Engine) mutate(ind *Individual) (*Individual, error) {
	dna := append([]domain.Order(nil), ind.DNA()...)
	changed := false
	for i := range dna {
		if e.rng.Float64() < e.mutateRate {
			j := e.rng.Intn(len(dna))
			dna[i], dna[j] = dna[j], dna[i]
			changed = true
		}
	}
	if !changed {
		return ind, nil
	}

	route, err := domain.NewRoute(ind.Route().Evaluator(), dna)
	if err != nil {
		return nil, fmt.Errorf("mutation: %w", err)
	}
	mutated, err := NewIndividual(route)
	if err != nil {
		return nil, fmt.Errorf("mutation: %w", err)
	}
	return mutated, nil
}
