package handlers

import (
	"delivery-optimizer-service/internal/api/dto"
	"delivery-optimizer-service/internal/services"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
)

// RunHandler starts optimization runs and reports their progress.
type RunHandler struct {
	Runner   *services.Runner
	Network  *services.Network
	Defaults services.SearchParams
}

// Runs dispatches the /runs collection: POST starts a run, GET lists all.
func (h *RunHandler) Runs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.start(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodPost}, ", "))
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// Run serves one run's snapshot under /runs/{id}.
func (h *RunHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}

	snap, ok := h.Runner.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, r, http.StatusOK, runResponse(snap))
}

func (h *RunHandler) start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartRunRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	params := h.Defaults
	if req.PopulationSize != 0 {
		params.PopulationSize = req.PopulationSize
	}
	if req.MaxIter != 0 {
		params.MaxIter = req.MaxIter
	}
	if req.MaxUnchangedIter != nil {
		params.MaxUnchangedIter = *req.MaxUnchangedIter
	}
	if req.CrossRate != nil {
		params.CrossRate = *req.CrossRate
	}
	if req.MutateRate != nil {
		params.MutateRate = *req.MutateRate
	}
	if req.Elitism != nil {
		params.Elitism = *req.Elitism
	}
	if req.Seed != 0 {
		params.Seed = req.Seed
	}

	if params.PopulationSize <= 0 {
		writeError(w, r, http.StatusBadRequest, "population_size must be greater than 0")
		return
	}
	if params.MaxIter <= 0 {
		writeError(w, r, http.StatusBadRequest, "max_iter must be greater than 0")
		return
	}
	if params.MaxUnchangedIter < 0 {
		writeError(w, r, http.StatusBadRequest, "max_unchanged_iter must not be negative")
		return
	}
	if params.CrossRate < 0 || params.CrossRate > 1 {
		writeError(w, r, http.StatusBadRequest, "cross_rate must lie in [0,1]")
		return
	}
	if params.MutateRate < 0 || params.MutateRate > 1 {
		writeError(w, r, http.StatusBadRequest, "mutate_rate must lie in [0,1]")
		return
	}

	id, err := h.Runner.Start(h.Network, params)
	if err != nil {
		log.Printf("start run failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.StartRunResponse{RunID: id})
}

func (h *RunHandler) list(w http.ResponseWriter, r *http.Request) {
	snaps := h.Runner.List()
	res := dto.ListRunsResponse{Runs: make([]dto.RunResponse, 0, len(snaps))}
	for _, snap := range snaps {
		res.Runs = append(res.Runs, runResponse(snap))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func runResponse(snap services.RunSnapshot) dto.RunResponse {
	return dto.RunResponse{
		RunID:        snap.ID,
		Status:       snap.Status,
		Iteration:    snap.Iteration,
		BestDelay:    snap.BestDelay,
		BestFitness:  snap.BestFitness,
		MeanFitness:  snap.MeanFitness,
		BestOrderIDs: snap.BestOrderIDs,
		Failed:       snap.Failed,
		Error:        snap.Error,
		StartedAt:    snap.StartedAt,
		UpdatedAt:    snap.UpdatedAt,
	}
}
