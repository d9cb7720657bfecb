package database

import (
	"database/sql"
	"fmt"

	"sms-tagger/internal/sms"
)

// TaggedMessage is a stored message together with the labels the batch
// worker has attached to it so far.
type TaggedMessage struct {
	sms.Message
	Category string `json:"category"`
	Tags     string `json:"tags"`
}

// MessageStore handles database operations for messages
type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Messages returns all stored messages ordered oldest first, so downstream
// extraction sees them in arrival order.
func (s *MessageStore) Messages() ([]sms.Message, error) {
	query := `SELECT id, sender, content, received_at, phone_number
			  FROM messages ORDER BY received_at ASC, id ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []sms.Message
	for rows.Next() {
		var m sms.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.ReceivedAt, &m.PhoneNumber); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// GetAll returns stored messages with their labels, newest first. An empty
// category returns everything.
func (s *MessageStore) GetAll(category string) ([]TaggedMessage, error) {
	query := `SELECT id, sender, content, received_at, phone_number, category, tags
			  FROM messages`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY received_at DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []TaggedMessage
	for rows.Next() {
		var m TaggedMessage
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.ReceivedAt, &m.PhoneNumber, &m.Category, &m.Tags); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// GetByID returns a message by its ID
func (s *MessageStore) GetByID(id int64) (*TaggedMessage, error) {
	query := `SELECT id, sender, content, received_at, phone_number, category, tags
			  FROM messages WHERE id = ?`

	var m TaggedMessage
	err := s.db.QueryRow(query, id).Scan(&m.ID, &m.Sender, &m.Content, &m.ReceivedAt, &m.PhoneNumber, &m.Category, &m.Tags)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Create inserts a single message and fills in its ID
func (s *MessageStore) Create(m *sms.Message) error {
	query := `INSERT INTO messages (sender, content, received_at, phone_number)
			  VALUES (?, ?, ?, ?)`

	result, err := s.db.Exec(query, m.Sender, m.Content, m.ReceivedAt, m.PhoneNumber)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get message ID: %w", err)
	}
	m.ID = id

	return nil
}

// CreateBatch inserts messages inside a single transaction and returns how
// many were stored. IDs on the input slice are updated in place.
func (s *MessageStore) CreateBatch(messages []sms.Message) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO messages (sender, content, received_at, phone_number)
							 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range messages {
		result, err := stmt.Exec(messages[i].Sender, messages[i].Content, messages[i].ReceivedAt, messages[i].PhoneNumber)
		if err != nil {
			return 0, fmt.Errorf("failed to insert message: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get message ID: %w", err)
		}
		messages[i].ID = id
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(messages), nil
}

// SetLabels records the worker's classification and rule tags for a message
func (s *MessageStore) SetLabels(id int64, category sms.Category, tags string) error {
	result, err := s.db.Exec(`UPDATE messages SET category = ?, tags = ? WHERE id = ?`,
		string(category), tags, id)
	if err != nil {
		return fmt.Errorf("failed to update message labels: %w", err)
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

// GetUnlabeled returns messages the batch worker has not classified yet,
// capped at limit (0 for no cap).
func (s *MessageStore) GetUnlabeled(limit int) ([]sms.Message, error) {
	query := `SELECT id, sender, content, received_at, phone_number
			  FROM messages WHERE category = '' ORDER BY id ASC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlabeled messages: %w", err)
	}
	defer rows.Close()

	var messages []sms.Message
	for rows.Next() {
		var m sms.Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Content, &m.ReceivedAt, &m.PhoneNumber); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// LatestFingerprint returns the newest received_at value and the highest ID,
// the pair freshness checks compare against. Zero values mean an empty table.
func (s *MessageStore) LatestFingerprint() (string, int64, error) {
	var receivedAt sql.NullString
	var id sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(received_at), MAX(id) FROM messages`).Scan(&receivedAt, &id)
	if err != nil {
		return "", 0, fmt.Errorf("failed to query latest message: %w", err)
	}

	return receivedAt.String, id.Int64, nil
}

// Count returns the total number of stored messages
func (s *MessageStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// Delete removes a message by ID
func (s *MessageStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
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
