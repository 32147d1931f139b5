package repository

import (
	"context"
	"fmt"

	"courier_market/internal/model"
)

// MessageRepository defines operations for message data. Messages are
// immutable once created, so there is no update or delete.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
}

type messageRepository struct {
	db DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new message; the timestamp comes from the database
func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	sql := `INSERT INTO messages (sender_id, receiver_id, content)
            VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, msg.SenderID, msg.ReceiverID, msg.Content).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}
