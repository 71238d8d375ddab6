package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phuslu/log"

	"trip-planner-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps domain error kinds onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500 without leaking internals.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		conflict   *domain.ConflictError
		infeasible *domain.InfeasibleError
	)

	switch {
	case errors.As(err, &validation):
		writeError(w, r, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		writeError(w, r, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		writeError(w, r, http.StatusConflict, conflict.Error())
	case errors.As(err, &infeasible):
		writeError(w, r, http.StatusUnprocessableEntity, infeasible.Error())
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
