package handlers

import (
	"net/http"
)

// Health provides a minimal liveness check endpoint. Method routing is
// enforced by the mux pattern.
func Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]string{"status": "ok", "service": "trip-planner"}
	writeJSON(w, r, http.StatusOK, res)
}
