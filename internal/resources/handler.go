package resources

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	tips *TipService
}

func NewHandler(tips *TipService) *Handler {
	return &Handler{tips: tips}
}

type lookupRequest struct {
	Query  string `json:"query"`
	Region string `json:"region"`
}

func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, "A query is required to find a resource", http.StatusBadRequest)
		return
	}

	result := Lookup(req.Query, req.Region)
	w.Header().Set("Content-Type", "application/json")
	switch result.Kind {
	case KindSingle:
		json.NewEncoder(w).Encode(result.Item)
	case KindList:
		json.NewEncoder(w).Encode(map[string]any{"type": "list", "items": result.Items})
	case KindText:
		json.NewEncoder(w).Encode(map[string]string{"type": "text", "text": result.Text})
	}
}

func (h *Handler) HandleTip(w http.ResponseWriter, r *http.Request) {
	tip := h.tips.DailyTip(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"tip": tip})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/resources/lookup", h.HandleLookup)
	r.Post("/resources/tip", h.HandleTip)
}
