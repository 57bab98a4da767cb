package dto

import "time"

type StartRunRequest struct {
	PopulationSize   int      `json:"population_size"`
	CrossRate        *float64 `json:"cross_rate"`
	MutateRate       *float64 `json:"mutate_rate"`
	Elitism          *bool    `json:"elitism"`
	MaxIter          int      `json:"max_iter"`
	MaxUnchangedIter *int     `json:"max_unchanged_iter"`
	Seed             int64    `json:"seed"`
}

type StartRunResponse struct {
	RunID string `json:"run_id"`
}

type RunResponse struct {
	RunID        string    `json:"run_id"`
	Status       string    `json:"status"`
	Iteration    int       `json:"iteration"`
	BestDelay    float64   `json:"best_delay"`
	BestFitness  float64   `json:"best_fitness"`
	MeanFitness  float64   `json:"mean_fitness"`
	BestOrderIDs []int     `json:"best_order_ids"`
	Failed       bool      `json:"failed"`
	Error        string    `json:"error,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
