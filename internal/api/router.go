package api

import (
	"delivery-optimizer-service/internal/api/handlers"
	"delivery-optimizer-service/internal/ports"
	"delivery-optimizer-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware
// of concrete adapters.
func NewRouter(
	repo ports.NetworkRepository,
	runner *services.Runner,
	network *services.Network,
	defaults services.SearchParams,
) http.Handler {
	mux := http.NewServeMux()

	networkHandler := &handlers.NetworkHandler{
		Repo:        repo,
		DepotStopID: network.Eval.Depot().ID,
	}
	runHandler := &handlers.RunHandler{
		Runner:   runner,
		Network:  network,
		Defaults: defaults,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/network", networkHandler.Get)
	mux.HandleFunc("/runs", runHandler.Runs)
	mux.HandleFunc("/runs/", runHandler.Run)

	return loggingMiddleware(mux)
}
