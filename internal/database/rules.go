package database

import (
	"database/sql"
	"fmt"

	"sms-tagger/internal/sms"
)

// RuleStore handles database operations for tag rules
type RuleStore struct {
	db *sql.DB
}

func NewRuleStore(db *sql.DB) *RuleStore {
	return &RuleStore{db: db}
}

// Rules returns all rules, highest priority first. The rule engine re-sorts
// defensively but the stored order is already the execution order.
func (s *RuleStore) Rules() ([]sms.Rule, error) {
	query := `SELECT id, name, tag_name, rule_type, condition, extract_anchor,
			  extract_length, enabled, priority
			  FROM tag_rules ORDER BY priority DESC, id ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []sms.Rule
	for rows.Next() {
		var r sms.Rule
		if err := rows.Scan(&r.ID, &r.Name, &r.TagName, &r.Type, &r.Condition,
			&r.ExtractAnchor, &r.ExtractLength, &r.Enabled, &r.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, r)
	}

	return rules, rows.Err()
}

// GetByID returns a rule by its ID
func (s *RuleStore) GetByID(id int64) (*sms.Rule, error) {
	query := `SELECT id, name, tag_name, rule_type, condition, extract_anchor,
			  extract_length, enabled, priority
			  FROM tag_rules WHERE id = ?`

	var r sms.Rule
	err := s.db.QueryRow(query, id).Scan(&r.ID, &r.Name, &r.TagName, &r.Type,
		&r.Condition, &r.ExtractAnchor, &r.ExtractLength, &r.Enabled, &r.Priority)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// Create inserts a rule and fills in its ID
func (s *RuleStore) Create(r *sms.Rule) error {
	query := `INSERT INTO tag_rules (name, tag_name, rule_type, condition,
			  extract_anchor, extract_length, enabled, priority)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.Exec(query, r.Name, r.TagName, r.Type, r.Condition,
		r.ExtractAnchor, r.ExtractLength, r.Enabled, r.Priority)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule ID: %w", err)
	}
	r.ID = id

	return nil
}

// Update replaces a rule's fields
func (s *RuleStore) Update(id int64, r *sms.Rule) error {
	query := `UPDATE tag_rules SET name = ?, tag_name = ?, rule_type = ?,
			  condition = ?, extract_anchor = ?, extract_length = ?, enabled = ?,
			  priority = ?, updated_at = CURRENT_TIMESTAMP
			  WHERE id = ?`

	result, err := s.db.Exec(query, r.Name, r.TagName, r.Type, r.Condition,
		r.ExtractAnchor, r.ExtractLength, r.Enabled, r.Priority, id)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	r.ID = id

	return nil
}

// SetEnabled toggles a rule without touching its other fields
func (s *RuleStore) SetEnabled(id int64, enabled bool) error {
	result, err := s.db.Exec(
		`UPDATE tag_rules SET enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		enabled, id)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes a rule by ID
func (s *RuleStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM tag_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
