package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"sms-tagger/internal/database"
	"sms-tagger/internal/rules"
	"sms-tagger/internal/sms"

	"github.com/go-chi/chi/v5"
)

// RuleHandler handles HTTP requests for user tag rules
type RuleHandler struct {
	db *database.DB
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(db *database.DB) *RuleHandler {
	return &RuleHandler{db: db}
}

// GetRules handles GET /api/rules
func (h *RuleHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	ruleList, err := h.db.Rules.Rules()
	if err != nil {
		log.Printf("ERROR: Failed to get rules: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get rules: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ruleList)
}

// GetRuleByID handles GET /api/rules/{id}
func (h *RuleHandler) GetRuleByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ruleID(w, r)
	if !ok {
		return
	}

	rule, err := h.db.Rules.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Rule not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to get rule %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to get rule: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rule)
}

// CreateRule handles POST /api/rules
func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var rule sms.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		log.Printf("ERROR: Invalid JSON in CreateRule: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if !rules.ValidateRule(rule) {
		http.Error(w, "Invalid rule: name, tag name, condition and extract anchor are required, extract length must be positive", http.StatusBadRequest)
		return
	}

	if err := h.db.Rules.Create(&rule); err != nil {
		log.Printf("ERROR: Failed to create rule: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create rule: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rule)
}

// UpdateRule handles PUT /api/rules/{id}
func (h *RuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ruleID(w, r)
	if !ok {
		return
	}

	var rule sms.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if !rules.ValidateRule(rule) {
		http.Error(w, "Invalid rule: name, tag name, condition and extract anchor are required, extract length must be positive", http.StatusBadRequest)
		return
	}

	if err := h.db.Rules.Update(id, &rule); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Rule not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to update rule %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to update rule: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rule)
}

// DeleteRule handles DELETE /api/rules/{id}
func (h *RuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ruleID(w, r)
	if !ok {
		return
	}

	if err := h.db.Rules.Delete(id); err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "Rule not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR: Failed to delete rule %d: %v", id, err)
		http.Error(w, fmt.Sprintf("Failed to delete rule: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetEnabled handles POST /api/rules/{id}/enable and /disable
func (h *RuleHandler) SetEnabled(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.ruleID(w, r)
		if !ok {
			return
		}

		if err := h.db.Rules.SetEnabled(id, enabled); err != nil {
			if err == sql.ErrNoRows {
				http.Error(w, "Rule not found", http.StatusNotFound)
				return
			}
			log.Printf("ERROR: Failed to toggle rule %d: %v", id, err)
			http.Error(w, fmt.Sprintf("Failed to toggle rule: %v", err), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// TestRulesRequest is the payload for POST /api/rules/test
type TestRulesRequest struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// TestRules handles POST /api/rules/test, running the stored rules against
// a sample message without persisting anything.
func (h *RuleHandler) TestRules(w http.ResponseWriter, r *http.Request) {
	var req TestRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	ruleList, err := h.db.Rules.Rules()
	if err != nil {
		log.Printf("ERROR: Failed to get rules: %v", err)
		http.Error(w, fmt.Sprintf("Failed to get rules: %v", err), http.StatusInternalServerError)
		return
	}

	results := rules.ExecuteRules(req.Sender, req.Content, ruleList)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(results)
}

func (h *RuleHandler) ruleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid rule ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
