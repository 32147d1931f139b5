package repository

import (
	"context"
	"errors"
	"fmt"

	"courier_market/internal/model"

	"github.com/jackc/pgx/v5"
)

// RequestRepository defines operations for delivery request data
type RequestRepository interface {
	Create(ctx context.Context, req *model.DeliveryRequest) error
	FindByID(ctx context.Context, id int64) (*model.DeliveryRequest, error)
	FindByOwner(ctx context.Context, userID int) ([]model.DeliveryRequest, error)
	FindNotOwnedBy(ctx context.Context, userID int) ([]model.DeliveryRequest, error)
	FindActiveByOwner(ctx context.Context, userID int) ([]model.DeliveryRequest, error)
}

type requestRepository struct {
	db DB
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db DB) RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, user_id, pick_up_location, drop_off_location, item_type, description, weight, price, depart_date, arrival_date, status, created_at`

// Create inserts a new delivery request into the database
func (r *requestRepository) Create(ctx context.Context, req *model.DeliveryRequest) error {
	sql := `INSERT INTO requests (user_id, pick_up_location, drop_off_location, item_type, description, weight, price, depart_date, arrival_date, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql,
		req.UserID, req.PickUpLocation, req.DropOffLocation, req.ItemType, req.Description,
		req.Weight, req.Price, req.DepartDate, req.ArrivalDate, req.Status, req.CreatedAt,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// FindByID retrieves a delivery request by its ID
func (r *requestRepository) FindByID(ctx context.Context, id int64) (*model.DeliveryRequest, error) {
	req := &model.DeliveryRequest{}
	sql := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&req.ID, &req.UserID, &req.PickUpLocation, &req.DropOffLocation, &req.ItemType, &req.Description,
		&req.Weight, &req.Price, &req.DepartDate, &req.ArrivalDate, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find request by ID: %w", err)
	}
	return req, nil
}

// FindByOwner retrieves all requests posted by a user
func (r *requestRepository) FindByOwner(ctx context.Context, userID int) ([]model.DeliveryRequest, error) {
	sql := `SELECT ` + requestColumns + ` FROM requests WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryRequests(ctx, sql, userID)
}

// FindNotOwnedBy retrieves requests posted by anyone other than the user.
// A single inequality filter; no ranking or pagination.
func (r *requestRepository) FindNotOwnedBy(ctx context.Context, userID int) ([]model.DeliveryRequest, error) {
	sql := `SELECT ` + requestColumns + ` FROM requests WHERE user_id != $1 ORDER BY created_at DESC, id DESC`
	return r.queryRequests(ctx, sql, userID)
}

// FindActiveByOwner retrieves the user's requests with status 'active',
// used to populate the offer form in the thread view
func (r *requestRepository) FindActiveByOwner(ctx context.Context, userID int) ([]model.DeliveryRequest, error) {
	sql := `SELECT ` + requestColumns + ` FROM requests WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC, id DESC`
	return r.queryRequests(ctx, sql, userID, model.RequestStatusActive)
}

func (r *requestRepository) queryRequests(ctx context.Context, sql string, args ...interface{}) ([]model.DeliveryRequest, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []model.DeliveryRequest
	for rows.Next() {
		var req model.DeliveryRequest
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.PickUpLocation, &req.DropOffLocation, &req.ItemType, &req.Description,
			&req.Weight, &req.Price, &req.DepartDate, &req.ArrivalDate, &req.Status, &req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}
	return requests, nil
}
