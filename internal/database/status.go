package database

import (
	"database/sql"
	"fmt"
)

// StatusStore persists which pickup codes the user has marked as collected.
// The extractor's own status inference is text-only; this table overlays it.
type StatusStore struct {
	db *sql.DB
}

func NewStatusStore(db *sql.DB) *StatusStore {
	return &StatusStore{db: db}
}

// IsPicked reports whether the pickup code has been marked as collected
func (s *StatusStore) IsPicked(pickupCode string) (bool, error) {
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM pickup_status WHERE pickup_code = ?`, pickupCode).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query pickup status: %w", err)
	}

	return true, nil
}

// MarkPicked records a pickup code as collected. Marking twice is a no-op.
func (s *StatusStore) MarkPicked(pickupCode string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO pickup_status (pickup_code) VALUES (?)`, pickupCode)
	if err != nil {
		return fmt.Errorf("failed to mark pickup status: %w", err)
	}

	return nil
}

// UnmarkPicked clears a pickup code's collected mark. Unmarking a code that
// was never marked is a no-op.
func (s *StatusStore) UnmarkPicked(pickupCode string) error {
	_, err := s.db.Exec(`DELETE FROM pickup_status WHERE pickup_code = ?`, pickupCode)
	if err != nil {
		return fmt.Errorf("failed to unmark pickup status: %w", err)
	}

	return nil
}

// PickedCodes returns every pickup code currently marked as collected
func (s *StatusStore) PickedCodes() ([]string, error) {
	rows, err := s.db.Query(`SELECT pickup_code FROM pickup_status ORDER BY picked_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pickup status: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan pickup code: %w", err)
		}
		codes = append(codes, code)
	}

	return codes, rows.Err()
}
