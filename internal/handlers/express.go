package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"sms-tagger/internal/filter"
	"sms-tagger/internal/services"
	"sms-tagger/internal/sms"

	"github.com/go-chi/chi/v5"
)

// ExpressHandler handles HTTP requests for extracted pickup records
type ExpressHandler struct {
	express *services.ExpressService
}

// NewExpressHandler creates a new express handler
func NewExpressHandler(express *services.ExpressService) *ExpressHandler {
	return &ExpressHandler{express: express}
}

// GetRecords handles GET /api/express
func (h *ExpressHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.express.Records()
	if err != nil {
		log.Printf("ERROR: Failed to get express records: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get express records: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(records)
}

// GetGrouped handles GET /api/express/grouped
func (h *ExpressHandler) GetGrouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.express.GroupedByDate()
	if err != nil {
		log.Printf("ERROR: Failed to group express records: %v", err)
		http.Error(w, fmt.Sprintf("Failed to group express records: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(groups)
}

// Refresh handles POST /api/express/refresh, forcing re-extraction on the
// next read.
func (h *ExpressHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.express.Refresh()
	w.WriteHeader(http.StatusNoContent)
}

// MarkPicked handles POST /api/express/{code}/pick
func (h *ExpressHandler) MarkPicked(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.Error(w, "Missing pickup code", http.StatusBadRequest)
		return
	}

	if err := h.express.MarkPicked(code); err != nil {
		log.Printf("ERROR: Failed to mark %s picked: %v", code, err)
		http.Error(w, fmt.Sprintf("Failed to mark picked: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnmarkPicked handles DELETE /api/express/{code}/pick
func (h *ExpressHandler) UnmarkPicked(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.Error(w, "Missing pickup code", http.StatusBadRequest)
		return
	}

	if err := h.express.UnmarkPicked(code); err != nil {
		log.Printf("ERROR: Failed to unmark %s: %v", code, err)
		http.Error(w, fmt.Sprintf("Failed to unmark: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ScoreRequest is the payload for POST /api/score
type ScoreRequest struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// ScoreResponse reports whether a message passes the pickup filter and the
// score it earned.
type ScoreResponse struct {
	Express bool `json:"express"`
	Score   int  `json:"score"`
}

// Score handles POST /api/score, exposing the legitimacy filter verdict for
// a single message. Useful for tuning keyword tables against live traffic.
func (h *ExpressHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	express, score := filter.Score(sms.Message{Sender: req.Sender, Content: req.Content})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ScoreResponse{Express: express, Score: score})
}
