package repository

import (
	"context"
	"errors"
	"fmt"

	"courier_market/internal/model"

	"github.com/jackc/pgx/v5"
)

// OfferRepository defines operations for offer data. Status transitions go
// through Accept/Decline only, which compare-and-set on the pending status so
// an offer leaves the pending state at most once even under concurrent
// requests.
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) error
	FindByID(ctx context.Context, id int64) (*model.Offer, error)

	// Accept transitions the offer to accepted and stores the confirmation
	// message to the offer's sender in the same transaction. Returns false
	// without side effects when the offer is no longer pending.
	Accept(ctx context.Context, offerID int64) (bool, error)

	// Decline transitions the offer to declined. Returns false when the
	// offer is no longer pending. No confirmation message is stored.
	Decline(ctx context.Context, offerID int64) (bool, error)
}

type offerRepository struct {
	db DB
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(db DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create inserts a new offer with status pending; the timestamp comes from
// the database
func (r *offerRepository) Create(ctx context.Context, offer *model.Offer) error {
	sql := `INSERT INTO offers (sender_id, receiver_id, request_id, pickup, dropoff, price, status)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql,
		offer.SenderID, offer.ReceiverID, offer.RequestID, offer.Pickup, offer.Dropoff, offer.Price, model.OfferStatusPending,
	).Scan(&offer.ID, &offer.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	offer.Status = model.OfferStatusPending
	return nil
}

// FindByID retrieves an offer by its ID
func (r *offerRepository) FindByID(ctx context.Context, id int64) (*model.Offer, error) {
	offer := &model.Offer{}
	sql := `SELECT id, sender_id, receiver_id, request_id, pickup, dropoff, price, status, created_at
            FROM offers WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&offer.ID, &offer.SenderID, &offer.ReceiverID, &offer.RequestID,
		&offer.Pickup, &offer.Dropoff, &offer.Price, &offer.Status, &offer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find offer by ID: %w", err)
	}
	return offer, nil
}

// Accept performs the status transition and the confirmation message insert
// as one atomic unit. The CAS on status guarantees at most one transition.
func (r *offerRepository) Accept(ctx context.Context, offerID int64) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin accept transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var senderID, receiverID int
	updateSQL := `UPDATE offers SET status = $1 WHERE id = $2 AND status = $3 RETURNING sender_id, receiver_id`
	err = tx.QueryRow(ctx, updateSQL, model.OfferStatusAccepted, offerID, model.OfferStatusPending).Scan(&senderID, &receiverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil // Already terminal; nothing changes
		}
		return false, fmt.Errorf("failed to accept offer: %w", err)
	}

	insertSQL := `INSERT INTO messages (sender_id, receiver_id, content) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, insertSQL, receiverID, senderID, model.AcceptedOfferMessage); err != nil {
		return false, fmt.Errorf("failed to store acceptance message: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit accept transaction: %w", err)
	}
	return true, nil
}

// Decline compare-and-sets the status to declined
func (r *offerRepository) Decline(ctx context.Context, offerID int64) (bool, error) {
	sql := `UPDATE offers SET status = $1 WHERE id = $2 AND status = $3`
	tag, err := r.db.Exec(ctx, sql, model.OfferStatusDeclined, offerID, model.OfferStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to decline offer: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
