package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"trip-planner-service/internal/adapters/catalog"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/weather"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	attractions := catalog.NewStaticCatalog(nil)
	forecasts := weather.NewStaticProvider()

	estimator := services.NewTravelEstimator(nil)
	scheduler := services.NewDayScheduler(estimator, nil, services.DefaultStartHour)
	assembler := services.NewItineraryAssembler(attractions, forecasts, services.NewAttractionSelector(), scheduler)
	engine := services.NewModificationEngine(scheduler, attractions, forecasts)
	suggester := services.NewSuggestionEngine(forecasts)

	srv := httptest.NewServer(NewRouter(assembler, engine, suggester, repositories.NewMemoryItineraryStore()))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func createItinerary(t *testing.T, srv *httptest.Server) dto.ItineraryResponse {
	t.Helper()

	res := postJSON(t, srv.URL+"/itineraries", map[string]any{
		"user_id":    "user-1",
		"start_date": "2026-01-15",
		"end_date":   "2026-01-16",
		"preferences": map[string]any{
			"interests":      []string{"scenic", "cultural"},
			"budget":         map[string]any{"min": 0, "max": 2000, "currency": "HKD"},
			"group_type":     "couple",
			"activity_level": "moderate",
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	return decode[dto.ItineraryResponse](t, res)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCreateAndGetItinerary(t *testing.T) {
	srv := newTestServer(t)

	created := createItinerary(t, srv)
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Days, 2)
	require.Equal(t, "2026-01-15", created.Days[0].Date)

	res, err := http.Get(srv.URL + "/itineraries/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	fetched := decode[dto.ItineraryResponse](t, res)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, created.Title, fetched.Title)
}

func TestCreateRejectsMalformedRequests(t *testing.T) {
	srv := newTestServer(t)

	// Missing user_id.
	res := postJSON(t, srv.URL+"/itineraries", map[string]any{
		"start_date": "2026-01-15",
		"end_date":   "2026-01-16",
	})
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Bad date format.
	res = postJSON(t, srv.URL+"/itineraries", map[string]any{
		"user_id":    "user-1",
		"start_date": "15/01/2026",
		"end_date":   "2026-01-16",
	})
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Unknown fields are rejected outright.
	res = postJSON(t, srv.URL+"/itineraries", map[string]any{
		"user_id":    "user-1",
		"start_date": "2026-01-15",
		"end_date":   "2026-01-16",
		"surprise":   true,
	})
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetUnknownItinerary(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/itineraries/missing")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteItinerary(t *testing.T) {
	srv := newTestServer(t)
	created := createItinerary(t, srv)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/itineraries/"+created.ID, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	// Delete is idempotent.
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	getRes, err := http.Get(srv.URL + "/itineraries/" + created.ID)
	require.NoError(t, err)
	getRes.Body.Close()
	require.Equal(t, http.StatusNotFound, getRes.StatusCode)
}

func TestModifyRemovesActivity(t *testing.T) {
	srv := newTestServer(t)
	created := createItinerary(t, srv)

	target := created.Days[0].Activities[len(created.Days[0].Activities)-1]
	before := len(created.Days[0].Activities)

	res := postJSON(t, srv.URL+"/itineraries/"+created.ID+"/modifications", map[string]any{
		"type":        "REMOVE_ACTIVITY",
		"activity_id": target.ID,
		"reason":      "not interested",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	updated := decode[dto.ItineraryResponse](t, res)
	require.Len(t, updated.Days[0].Activities, before-1)
	for _, a := range updated.Days[0].Activities {
		require.NotEqual(t, target.ID, a.ID)
	}
}

func TestModifyUnknownActivityIs404(t *testing.T) {
	srv := newTestServer(t)
	created := createItinerary(t, srv)

	res := postJSON(t, srv.URL+"/itineraries/"+created.ID+"/modifications", map[string]any{
		"type":        "REMOVE_ACTIVITY",
		"activity_id": "ghost",
	})
	res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestModifyRescheduleConflictIs409(t *testing.T) {
	srv := newTestServer(t)
	created := createItinerary(t, srv)
	require.GreaterOrEqual(t, len(created.Days[0].Activities), 2)

	first := created.Days[0].Activities[0]
	second := created.Days[0].Activities[1]

	res := postJSON(t, srv.URL+"/itineraries/"+created.ID+"/modifications", map[string]any{
		"type":           "RESCHEDULE_ACTIVITY",
		"activity_id":    second.ID,
		"new_start_time": first.StartTime,
	})
	res.Body.Close()
	require.Equal(t, http.StatusConflict, res.StatusCode)

	// A failed modification leaves the stored snapshot untouched.
	getRes, err := http.Get(srv.URL + "/itineraries/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getRes.StatusCode)
	current := decode[dto.ItineraryResponse](t, getRes)
	require.Equal(t, len(created.Days[0].Activities), len(current.Days[0].Activities))
}

func TestModifyRejectsUnknownType(t *testing.T) {
	srv := newTestServer(t)
	created := createItinerary(t, srv)

	res := postJSON(t, srv.URL+"/itineraries/"+created.ID+"/modifications", map[string]any{
		"type": "TELEPORT",
	})
	res.Body.Close()
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSuggestionsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	created := createItinerary(t, srv)

	res, err := http.Get(fmt.Sprintf("%s/itineraries/%s/suggestions", srv.URL, created.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)

	got := decode[dto.ListSuggestionsResponse](t, res)
	// The trip is in the future and the synthetic weather is friendly, so no
	// suggestions fire; the list shape is still present.
	require.NotNil(t, got.Suggestions)
	require.Empty(t, got.Suggestions)
}
