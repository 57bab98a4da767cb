package services

import (
	"context"
	"delivery-optimizer-service/internal/genetic"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RunSnapshot is a point-in-time view of one optimization run, safe to
// hand across goroutines.
type RunSnapshot struct {
	ID           string
	Status       string
	Iteration    int
	BestDelay    float64
	BestFitness  float64
	MeanFitness  float64
	BestOrderIDs []int
	Failed       bool
	Error        string
	StartedAt    time.Time
	UpdatedAt    time.Time
}

type run struct {
	mu   sync.Mutex
	snap RunSnapshot
}

func (r *run) update(fn func(s *RunSnapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.snap)
	r.snap.UpdatedAt = time.Now()
}

func (r *run) snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.snap
	s.BestOrderIDs = append([]int(nil), r.snap.BestOrderIDs...)
	return s
}

// Runner owns every optimization run started through the API. Each run's
// engine lives on exactly one goroutine; the rest of the process only
// ever sees snapshots.
type Runner struct {
	mu   sync.Mutex
	runs map[string]*run
}

func NewRunner() *Runner {
	return &Runner{runs: map[string]*run{}}
}

// Start seeds a fresh engine over the shared network and begins stepping
// it in the background. It returns the new run's ID immediately.
func (rn *Runner) Start(net *Network, p SearchParams) (string, error) {
	engine, err := NewEngine(net, p)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}

	id := uuid.NewString()
	best := engine.Best()
	r := &run{snap: RunSnapshot{
		ID:           id,
		Status:       genetic.StatusRunning.String(),
		BestDelay:    best.Delay(),
		BestFitness:  best.Fitness(),
		BestOrderIDs: best.Route().OrderIDs(),
		StartedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}}

	rn.mu.Lock()
	rn.runs[id] = r
	rn.mu.Unlock()

	go func() {
		result, err := Optimize(context.Background(), engine, func(res genetic.StepResult, best *genetic.Individual) {
			mean, _ := engine.Population().Stats()
			r.update(func(s *RunSnapshot) {
				s.Status = res.Status.String()
				s.Iteration = res.Iteration
				s.BestDelay = best.Delay()
				s.BestFitness = best.Fitness()
				s.MeanFitness = mean
				s.BestOrderIDs = best.Route().OrderIDs()
			})
		})
		if err != nil {
			log.Printf("run failed: id=%s err=%v", id, err)
			r.update(func(s *RunSnapshot) {
				s.Failed = true
				s.Error = err.Error()
			})
			return
		}
		log.Printf("run finished: id=%s status=%s iterations=%d best_delay=%v",
			id, result.Status, result.Iterations, result.BestDelay)
	}()

	return id, nil
}

// Get returns the current snapshot of one run.
func (rn *Runner) Get(id string) (RunSnapshot, bool) {
	rn.mu.Lock()
	r, ok := rn.runs[id]
	rn.mu.Unlock()
	if !ok {
		return RunSnapshot{}, false
	}
	return r.snapshot(), true
}

// List returns a snapshot of every known run.
func (rn *Runner) List() []RunSnapshot {
	rn.mu.Lock()
	runs := make([]*run, 0, len(rn.runs))
	for _, r := range rn.runs {
		runs = append(runs, r)
	}
	rn.mu.Unlock()

	snaps := make([]RunSnapshot, 0, len(runs))
	for _, r := range runs {
		snaps = append(snaps, r.snapshot())
	}
	return snaps
}
