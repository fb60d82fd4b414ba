package screening

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type screeningRequest struct {
	UserID      string `json:"userId"`
	UserAge     int    `json:"userAge"`
	AnswerIndex *int   `json:"answerIndex"`
}

func (h *Handler) HandleScreening(w http.ResponseWriter, r *http.Request) {
	var req screeningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.UserAge == 0 {
		writeError(w, http.StatusBadRequest, "userId and userAge are required")
		return
	}
	if req.UserAge < 0 || req.UserAge > 150 {
		writeError(w, http.StatusBadRequest, "userAge is out of range")
		return
	}

	result, err := h.svc.SubmitTurn(r.Context(), req.UserID, req.UserAge, req.AnswerIndex)
	if err != nil {
		var cooldown *CooldownError
		if errors.As(err, &cooldown) {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":   "screening_cooldown",
				"message": cooldown.Error(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "An error occurred during screening")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type eligibilityRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	eligible, message := h.svc.Eligibility(r.Context(), req.UserID)
	writeJSON(w, http.StatusOK, map[string]any{
		"eligible": eligible,
		"message":  message,
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/screening", h.HandleScreening)
	r.Post("/screening/eligibility", h.HandleEligibility)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
