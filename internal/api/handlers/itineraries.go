package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// keyedMutex serializes writes per itinerary id. The store has no
// transactions, so concurrent modifications to the same itinerary must not
// interleave between Get and Put.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*sync.Mutex{}
	}
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// ItineraryHandler exposes itinerary assembly, retrieval, modification, and
// suggestions over HTTP. It coordinates the engines and the store; all
// domain decisions live in the services.
type ItineraryHandler struct {
	assembler *services.ItineraryAssembler
	engine    *services.ModificationEngine
	suggester *services.SuggestionEngine
	store     ports.ItineraryStore

	validate *validator.Validate
	writes   keyedMutex
}

func NewItineraryHandler(
	assembler *services.ItineraryAssembler,
	engine *services.ModificationEngine,
	suggester *services.SuggestionEngine,
	store ports.ItineraryStore,
) *ItineraryHandler {
	return &ItineraryHandler{
		assembler: assembler,
		engine:    engine,
		suggester: suggester,
		store:     store,
		validate:  validator.New(),
	}
}

// Create assembles a fresh itinerary from the request and persists it.
func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateItineraryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}

	svcReq := services.ItineraryRequest{
		UserID:    req.UserID,
		StartDate: start,
		EndDate:   end,
		Preferences: domain.UserPreferences{
			Interests: req.Preferences.Interests,
			BudgetRange: domain.BudgetRange{
				Min:      req.Preferences.Budget.Min,
				Max:      req.Preferences.Budget.Max,
				Currency: req.Preferences.Budget.Currency,
			},
			GroupType:           domain.GroupType(req.Preferences.GroupType),
			DietaryRestrictions: req.Preferences.DietaryRestrictions,
			ActivityLevel:       domain.ActivityLevel(req.Preferences.ActivityLevel),
			AccessibilityNeeds:  req.Preferences.AccessibilityNeeds,
			Language:            req.Preferences.Language,
		},
	}
	if loc := req.StartLocation; loc != nil {
		svcReq.StartLocation = &domain.GeoLocation{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Address:   loc.Address,
		}
	}
	if c := req.Constraints; c != nil {
		svcReq.Constraints = &services.SelectionConstraints{
			MustIncludeAttractions: c.MustIncludeAttractions,
			ExcludeAttractions:     c.ExcludeAttractions,
		}
	}

	it, err := h.assembler.Assemble(r.Context(), svcReq)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.store.Put(r.Context(), it.ID, it); err != nil {
		log.Error().Err(err).Str("itinerary_id", it.ID).Msg("persist itinerary failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.FromItinerary(it))
}

// Get returns the stored snapshot for an itinerary id.
func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromItinerary(it))
}

// Delete removes the stored snapshot.
func (h *ItineraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Modify applies one modification atomically: the stored snapshot is read,
// transformed, validated, and replaced under a per-id lock. On any failure
// the stored snapshot is untouched.
func (h *ItineraryHandler) Modify(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req dto.ModificationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	mod, err := req.ToModification(time.Now())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	unlock := h.writes.lock(id)
	defer unlock()

	current, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	next, err := h.engine.Apply(r.Context(), current, mod)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.store.Put(r.Context(), id, next); err != nil {
		log.Error().Err(err).Str("itinerary_id", id).Msg("persist modified itinerary failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromItinerary(next))
}

// Suggestions returns proposed modifications without applying any.
func (h *ItineraryHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	it, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	proposals := h.suggester.Suggest(r.Context(), it)
	res := dto.ListSuggestionsResponse{Suggestions: make([]dto.SuggestionResponse, 0, len(proposals))}
	for _, p := range proposals {
		res.Suggestions = append(res.Suggestions, dto.FromModification(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// decodeBody parses a single-object JSON body, rejecting unknown fields and
// trailing content. Returns false after writing the error response.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
