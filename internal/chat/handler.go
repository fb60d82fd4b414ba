package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aura-backend/internal/safety"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type chatRequest struct {
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Region    string `json:"region"`
}

func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "userId and message are required")
		return
	}
	if req.Region == "" {
		req.Region = safety.GlobalRegion
	}

	resp, err := h.svc.HandleTurn(r.Context(), req.UserID, req.Message, req.SessionID, req.Region)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "An error occurred handling the message")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type greetingRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) HandleGreeting(w http.ResponseWriter, r *http.Request) {
	var req greetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	resp, err := h.svc.Greeting(r.Context(), req.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not generate greeting")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleHistoryList(w http.ResponseWriter, r *http.Request) {
	var req greetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	sessions, err := h.svc.ListSessions(r.Context(), req.UserID)
	if err != nil {
		// History is a convenience view; degrade to an empty list.
		writeJSON(w, http.StatusOK, []SessionSummary{})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

type sessionRequest struct {
	SessionID string `json:"sessionId"`
}

func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	turns, err := h.svc.Transcript(r.Context(), req.SessionID)
	if err != nil {
		writeJSON(w, http.StatusOK, []transcriptEntry{})
		return
	}
	out := make([]transcriptEntry, 0, len(turns))
	for _, t := range turns {
		out = append(out, transcriptEntry{User: t.UserMessage, AI: t.AIResponse})
	}
	writeJSON(w, http.StatusOK, out)
}

type transcriptEntry struct {
	User *string `json:"user"`
	AI   string  `json:"ai"`
}

type feedbackRequest struct {
	UserID string `json:"userId"`
	Rating int    `json:"rating"`
}

func (h *Handler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Rating == 0 {
		writeError(w, http.StatusBadRequest, "User ID and rating are required.")
		return
	}

	if err := h.svc.AddFeedback(r.Context(), req.UserID, req.Rating); err != nil {
		writeError(w, http.StatusInternalServerError, "Could not store feedback")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback received. Thank you!"})
}

func (h *Handler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	regions := safety.Regions()
	writeJSON(w, http.StatusOK, map[string]any{
		"available_regions": regions,
		"total_regions":     len(regions),
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/chat", h.HandleChat)
	r.Post("/chat/greeting", h.HandleGreeting)
	r.Post("/chat/history", h.HandleHistoryList)
	r.Post("/chat/session", h.HandleSession)
	r.Post("/session/feedback", h.HandleFeedback)
	r.Get("/helplines/regions", h.HandleRegions)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
