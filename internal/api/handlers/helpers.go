package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// writeJSON serializes v as the response body. Encode failures are only
// logged: the status line is already on the wire by then.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// writeError emits the {"error": msg} shape every handler uses.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}
