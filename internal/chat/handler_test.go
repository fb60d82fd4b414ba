package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura-backend/internal/store"
)

func newTestRouter(svc *Service) *chi.Mux {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc))
	return r
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleChatValidation(t *testing.T) {
	router := newTestRouter(newChatService(store.NewMemoryStore(), nil))

	for _, body := range []string{`{`, `{"message": "hi"}`, `{"userId": "u1"}`} {
		rec := postJSON(t, router, "/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestHandleChatDefaultsRegion(t *testing.T) {
	router := newTestRouter(newChatService(store.NewMemoryStore(), nil))

	// No region: crisis routing must still answer, via the global directory.
	rec := postJSON(t, router, "/chat", `{"userId": "u1", "message": "I want to kill myself"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, AgentCrisis, resp.Agent)
	assert.Contains(t, resp.Response, "International Association for Suicide Prevention")
}

func TestHandleChatConversational(t *testing.T) {
	router := newTestRouter(newChatService(store.NewMemoryStore(), nil))

	rec := postJSON(t, router, "/chat", `{"userId": "u1", "message": "hello", "region": "US"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, AgentConversational, resp.Agent)
	assert.NotEmpty(t, resp.Response)
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleSessionTranscript(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newChatService(st, nil)
	router := newTestRouter(svc)

	res, err := svc.HandleTurn(context.Background(), "u1", "hello", "", "US")
	require.NoError(t, err)

	rec := postJSON(t, router, "/chat/session", `{"sessionId": "`+res.SessionID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []transcriptEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, "hello", *entries[0].User)
	assert.NotEmpty(t, entries[0].AI)

	rec = postJSON(t, router, "/chat/session", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHistoryList(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newChatService(st, nil)
	router := newTestRouter(svc)

	rec := postJSON(t, router, "/chat/history", `{"userId": "u1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sessions []SessionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	assert.Empty(t, sessions)
}

func TestHandleFeedback(t *testing.T) {
	router := newTestRouter(newChatService(store.NewMemoryStore(), nil))

	rec := postJSON(t, router, "/session/feedback", `{"userId": "u1", "rating": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/session/feedback", `{"userId": "u1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRegions(t *testing.T) {
	router := newTestRouter(newChatService(store.NewMemoryStore(), nil))

	req := httptest.NewRequest(http.MethodGet, "/helplines/regions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AvailableRegions map[string]json.RawMessage `json:"available_regions"`
		TotalRegions     int                        `json:"total_regions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, len(body.AvailableRegions), body.TotalRegions)
	assert.Contains(t, body.AvailableRegions, "US")
	assert.Contains(t, body.AvailableRegions, "GLOBAL")
}
