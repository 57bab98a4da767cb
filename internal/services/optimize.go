package services

import (
	"context"
	"delivery-optimizer-service/internal/domain"
	"delivery-optimizer-service/internal/genetic"
	"delivery-optimizer-service/internal/platform/obs"
	"delivery-optimizer-service/internal/ports"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// SearchParams are the knobs of one evolutionary run. Rates are expected
// to be clamped into [0,1] by the configuration layer before they reach
// this package.
type SearchParams struct {
	PopulationSize   int
	CrossRate        float64
	MutateRate       float64
	Elitism          bool
	MaxIter          int
	MaxUnchangedIter int

	// Seed for the run's RNG; 0 means time-seeded.
	Seed int64
}

// Network is the immutable world one or more runs search over: stops,
// orders, travel times and the scoring context. Safe for concurrent
// read-only use once built.
type Network struct {
	Stops  *domain.StopMap
	Orders *domain.OrderBook
	Times  *domain.TravelTimes
	Eval   *domain.Evaluator
}

// BuildNetwork validates loaded records and assembles the read-only
// search context. The depot is the first loaded stop.
func BuildNetwork(stops []domain.Stop, orders []domain.Order, speed float64) (*Network, error) {
	m, err := domain.NewStopMap(stops)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}

	book, err := domain.NewOrderBook(orders)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}
	for _, o := range book.Orders() {
		if _, err := m.Stop(o.StopID); err != nil {
			return nil, fmt.Errorf("build network: order %d: %w", o.ID, err)
		}
	}

	times, err := domain.NewTravelTimes(m, speed)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}

	depot := m.Stops()[0]
	eval, err := domain.NewEvaluator(depot, times)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}

	return &Network{Stops: m, Orders: book, Times: times, Eval: eval}, nil
}

// NewEngine seeds a random population over the network and assembles a
// ready-to-step engine for it.
func NewEngine(net *Network, p SearchParams) (*genetic.Engine, error) {
	if net == nil {
		return nil, errors.New("new engine: network is nil")
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pop, err := genetic.NewRandomPopulation(p.PopulationSize, func() (*genetic.Individual, error) {
		route, err := net.Orders.RandomRoute(net.Eval, rng)
		if err != nil {
			return nil, err
		}
		return genetic.NewIndividual(route)
	})
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	engine, err := genetic.NewEngine(pop, genetic.Config{
		CrossRate:        p.CrossRate,
		MutateRate:       p.MutateRate,
		Elitism:          p.Elitism,
		MaxIter:          p.MaxIter,
		MaxUnchangedIter: p.MaxUnchangedIter,
		Rand:             rng,
	})
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return engine, nil
}

// Observer is invoked once per generation with the step result and the
// run-level best so far. Callers such as a progress display poll results
// one generation at a time through it.
type Observer func(res genetic.StepResult, best *genetic.Individual)

// History records per-generation best and mean fitness for reporting.
type History struct {
	Best []float64
	Mean []float64
}

// Result summarizes one finished run.
type Result struct {
	Iterations int
	Status     genetic.Status
	Best       *genetic.Individual
	BestDelay  float64
	History    History
}

// Optimize drives the engine one generation at a time until it stops,
// invoking observe after every generation. The context is only checked
// between generations; a generation always runs to completion.
func Optimize(ctx context.Context, engine *genetic.Engine, observe Observer) (*Result, error) {
	if engine == nil {
		return nil, errors.New("optimize: engine is nil")
	}

	hist := History{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("optimize: %w", err)
		}

		res, err := engine.Step()
		if errors.Is(err, genetic.ErrRunFinished) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("optimize: %w", err)
		}

		mean, _ := engine.Population().Stats()
		hist.Best = append(hist.Best, res.Best.Fitness())
		hist.Mean = append(hist.Mean, mean)

		if observe != nil {
			observe(res, engine.Best())
		}
		if res.Status != genetic.StatusRunning {
			break
		}
	}

	best := engine.Best()
	return &Result{
		Iterations: engine.Iteration(),
		Status:     engine.Status(),
		Best:       best,
		BestDelay:  best.Delay(),
		History:    hist,
	}, nil
}

// PrewarmTravelTimes fills the in-memory pair-time matrix from a
// persistent cache, computes whatever is missing, and writes the full
// matrix back for the next process.
func PrewarmTravelTimes(ctx context.Context, times *domain.TravelTimes, cache ports.TimeCache) (err error) {
	defer obs.Time(ctx, "traveltime.prewarm")(&err)

	if times == nil {
		return errors.New("prewarm travel times: travel times is nil")
	}
	if cache == nil {
		return errors.New("prewarm travel times: cache is nil")
	}

	entries, err := cache.Load(ctx, times.Speed())
	if err != nil {
		return fmt.Errorf("prewarm travel times: %w", err)
	}
	for _, e := range entries {
		if err := times.Seed(e.From, e.To, e.Time); err != nil {
			return fmt.Errorf("prewarm travel times: %w", err)
		}
	}

	if err := times.WarmAll(); err != nil {
		return fmt.Errorf("prewarm travel times: %w", err)
	}
	if err := cache.Save(ctx, times.Speed(), times.Entries()); err != nil {
		return fmt.Errorf("prewarm travel times: %w", err)
	}
	return nil
}
