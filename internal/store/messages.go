package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Contact message delivery states.
const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// Message is a contact submission relayed through this server.
type Message struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Subject     string     `json:"subject,omitempty"`
	Body        string     `json:"body"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// SaveMessage inserts a new message. Status defaults to pending.
func (s *Store) SaveMessage(ctx context.Context, m Message) error {
	if m.Status == "" {
		m.Status = StatusPending
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, body, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Subject, m.Body, m.Status, toMillis(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// MarkDelivered records successful delivery.
func (s *Store) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	return s.updateStatus(ctx, `
		UPDATE contact_messages SET status = ?, error = '', delivered_at = ? WHERE id = ?`,
		StatusDelivered, toMillis(at), id)
}

// MarkFailed records a delivery failure and its reason.
func (s *Store) MarkFailed(ctx context.Context, id, reason string) error {
	return s.updateStatus(ctx, `
		UPDATE contact_messages SET status = ?, error = ? WHERE id = ?`,
		StatusFailed, reason, id)
}

func (s *Store) updateStatus(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecentMessages returns the newest messages first.
func (s *Store) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, body, status, error, created_at, delivered_at
		FROM contact_messages
		ORDER BY created_at DESC, id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		var created int64
		var delivered sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Status, &m.Error, &created, &delivered); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = fromMillis(created)
		if delivered.Valid {
			t := fromMillis(delivered.Int64)
			m.DeliveredAt = &t
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
