package model

import "time"

const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusDeclined = "declined"
)

// AcceptedOfferMessage is the confirmation message stored when an offer is
// accepted.
const AcceptedOfferMessage = "Your offer has been accepted!"

// Offer is a structured counter-proposal (pickup/dropoff/price) tied to a
// delivery request. Created pending; the status transitions exactly once to
// accepted or declined and is immutable otherwise.
type Offer struct {
	ID         int64     `json:"id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	RequestID  int64     `json:"request_id"`
	Pickup     string    `json:"pickup"`
	Dropoff    string    `json:"dropoff"`
	Price      int64     `json:"price"` // In cents
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Terminal reports whether the offer has left the pending state.
func (o *Offer) Terminal() bool {
	return o.Status != OfferStatusPending
}
