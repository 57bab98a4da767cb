package handlers

import (
	"delivery-optimizer-service/internal/api/dto"
	"delivery-optimizer-service/internal/ports"
	"log"
	"net/http"
)

// NetworkHandler exposes read-only access to the loaded delivery network.
type NetworkHandler struct {
	Repo        ports.NetworkRepository
	DepotStopID int
}

func (h *NetworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stops, err := h.Repo.ListStops(r.Context())
	if err != nil {
		log.Printf("list stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	orders, err := h.Repo.ListOrders(r.Context())
	if err != nil {
		log.Printf("list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.NetworkResponse{
		DepotStopID: h.DepotStopID,
		Stops:       make([]dto.StopResponse, 0, len(stops)),
		Orders:      make([]dto.OrderResponse, 0, len(orders)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, dto.StopResponse{StopID: s.ID, X: s.X, Y: s.Y})
	}
	for _, o := range orders {
		res.Orders = append(res.Orders, dto.OrderResponse{
			OrderID:   o.ID,
			StopID:    o.StopID,
			WaitTime:  o.WaitTime,
			TimeLimit: o.TimeLimit,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
