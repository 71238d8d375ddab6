package api

import (
	"net/http"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	assembler *services.ItineraryAssembler,
	engine *services.ModificationEngine,
	suggester *services.SuggestionEngine,
	store ports.ItineraryStore,
) http.Handler {
	mux := http.NewServeMux()

	itineraries := handlers.NewItineraryHandler(assembler, engine, suggester, store)

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /itineraries", itineraries.Create)
	mux.HandleFunc("GET /itineraries/{id}", itineraries.Get)
	mux.HandleFunc("DELETE /itineraries/{id}", itineraries.Delete)
	mux.HandleFunc("POST /itineraries/{id}/modifications", itineraries.Modify)
	mux.HandleFunc("GET /itineraries/{id}/suggestions", itineraries.Suggestions)

	return loggingMiddleware(mux)
}
