package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"sms-tagger/internal/classifier"
	"sms-tagger/internal/database"
	"sms-tagger/internal/sms"

	"github.com/go-chi/chi/v5"
)

// MessageHandler handles HTTP requests for the message archive
type MessageHandler struct {
	db *database.DB
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(db *database.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

// GetMessages handles GET /api/messages?category=...
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	messages, err := h.db.Messages.GetAll(category)
	if err != nil {
		log.Printf("ERROR: Failed to get messages: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get messages: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(messages)
}

// GetMessageByID handles GET /api/messages/{id}
func (h *MessageHandler) GetMessageByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	message, err := h.db.Messages.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Message not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to get message %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to get message: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(message)
}

// ImportRequest is the payload for POST /api/messages/import
type ImportRequest struct {
	Messages []sms.Message `json:"messages"`
}

// ImportResponse reports how many messages an import stored
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ImportMessages handles POST /api/messages/import
func (h *MessageHandler) ImportMessages(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Invalid JSON in ImportMessages: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	for i := range req.Messages {
		if err := validateMessage(&req.Messages[i]); err != nil {
			http.Error(w, fmt.Sprintf("Invalid message at index %d: %v", i, err), http.StatusBadRequest)
			return
		}
	}

	imported, err := h.db.Messages.CreateBatch(req.Messages)
	if err != nil {
		log.Printf("ERROR: Failed to import messages: %v", err)
		http.Error(w, fmt.Sprintf("Failed to import messages: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("INFO: Imported %d messages", imported)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ImportResponse{Imported: imported})
}

// DeleteMessage handles DELETE /api/messages/{id}
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	if err := h.db.Messages.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Message not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to delete message %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to delete message: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClassifyRequest is the payload for POST /api/classify
type ClassifyRequest struct {
	Content string `json:"content"`
}

// ClassifyResponse carries the category assigned to a piece of content
type ClassifyResponse struct {
	Category sms.Category `json:"category"`
}

// Classify handles POST /api/classify, categorizing a single content string
// without storing anything.
func (h *MessageHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ClassifyResponse{Category: classifier.Classify(req.Content)})
}

// validateMessage checks required fields on an imported message
func validateMessage(m *sms.Message) error {
	if strings.TrimSpace(m.Sender) == "" {
		return fmt.Errorf("sender is required")
	}
	if strings.TrimSpace(m.Content) == "" {
		return fmt.Errorf("content is required")
	}
	if strings.TrimSpace(m.ReceivedAt) == "" {
		return fmt.Errorf("received_at is required")
	}
	return nil
}
