package repository

import (
	"context"
	"fmt"

	"courier_market/internal/model"

	"github.com/jackc/pgx/v5"
)

// ConversationRepository reads the data behind a two-party thread and the
// derived contact list. The contact relation is never stored; it is computed
// from message and offer participation.
type ConversationRepository interface {
	// ThreadSnapshot fetches all messages and offers between the two users
	// inside a single read-only transaction, so the merged thread reflects
	// one consistent snapshot of both tables. Each slice is ordered by
	// (created_at, id) ascending.
	ThreadSnapshot(ctx context.Context, userA, userB int) ([]model.Message, []model.Offer, error)

	// Contacts returns the distinct counterparts of a user across messages
	// and offers, most recent interaction first.
	Contacts(ctx context.Context, userID int) ([]model.Contact, error)
}

type conversationRepository struct {
	db DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db DB) ConversationRepository {
	return &conversationRepository{db: db}
}

const threadMessagesSQL = `SELECT id, sender_id, receiver_id, content, created_at
            FROM messages
            WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
            ORDER BY created_at ASC, id ASC`

const threadOffersSQL = `SELECT id, sender_id, receiver_id, request_id, pickup, dropoff, price, status, created_at
            FROM offers
            WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
            ORDER BY created_at ASC, id ASC`

func (r *conversationRepository) ThreadSnapshot(ctx context.Context, userA, userB int) ([]model.Message, []model.Offer, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin thread snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	messages, err := scanThreadMessages(ctx, tx, userA, userB)
	if err != nil {
		return nil, nil, err
	}
	offers, err := scanThreadOffers(ctx, tx, userA, userB)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit thread snapshot: %w", err)
	}
	return messages, offers, nil
}

func scanThreadMessages(ctx context.Context, tx pgx.Tx, userA, userB int) ([]model.Message, error) {
	rows, err := tx.Query(ctx, threadMessagesSQL, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to query thread messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan thread message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thread message rows: %w", err)
	}
	return messages, nil
}

func scanThreadOffers(ctx context.Context, tx pgx.Tx, userA, userB int) ([]model.Offer, error) {
	rows, err := tx.Query(ctx, threadOffersSQL, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to query thread offers: %w", err)
	}
	defer rows.Close()

	var offers []model.Offer
	for rows.Next() {
		var o model.Offer
		if err := rows.Scan(&o.ID, &o.SenderID, &o.ReceiverID, &o.RequestID, &o.Pickup, &o.Dropoff, &o.Price, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan thread offer row: %w", err)
		}
		offers = append(offers, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thread offer rows: %w", err)
	}
	return offers, nil
}

// Contacts derives the contact list from the union of message and offer
// participation, grouped by counterpart with the latest interaction time.
func (r *conversationRepository) Contacts(ctx context.Context, userID int) ([]model.Contact, error) {
	sql := `SELECT u.id, u.username, MAX(p.created_at) AS last_message_at
            FROM (
                SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS contact_id, created_at
                FROM messages WHERE sender_id = $1 OR receiver_id = $1
                UNION ALL
                SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS contact_id, created_at
                FROM offers WHERE sender_id = $1 OR receiver_id = $1
            ) p
            JOIN users u ON u.id = p.contact_id
            GROUP BY u.id, u.username
            ORDER BY last_message_at DESC`

	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.UserID, &c.Username, &c.LastMessageAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}
	return contacts, nil
}
