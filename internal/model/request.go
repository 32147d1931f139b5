package model

import "time"

const (
	RequestStatusActive = "active"
	RequestStatusClosed = "closed"
)

// DeliveryRequest is a posted listing: either a shipper's package that needs
// carrying or a traveler's itinerary with spare capacity. Offers negotiate
// over a specific request.
type DeliveryRequest struct {
	ID              int64     `json:"id"`
	UserID          int       `json:"user_id"`
	PickUpLocation  string    `json:"pick_up_location"`
	DropOffLocation string    `json:"drop_off_location"`
	ItemType        string    `json:"item_type"`
	Description     *string   `json:"description,omitempty"` // Pointer for optional field
	Weight          int64     `json:"weight"`                // In grams
	Price           int64     `json:"price"`                 // In cents
	DepartDate      time.Time `json:"depart_date"`
	ArrivalDate     time.Time `json:"arrival_date"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateRequestInput is used for posting a new delivery request
type CreateRequestInput struct {
	PickUpLocation  string
	DropOffLocation string
	ItemType        string
	Description     *string
	Weight          int64
	Price           int64
	DepartDate      time.Time
	ArrivalDate     time.Time
}
