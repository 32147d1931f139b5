package model

import "time"

const (
	ThreadEntryMessage = "message"
	ThreadEntryOffer   = "offer"
)

// ThreadEntry is the derived, non-persisted view of a conversation item:
// either a Message or an Offer, tagged with its kind and sharing a comparable
// timestamp so the two record kinds can be merged into one ordered thread.
// Exactly one of Message/Offer is set, matching Kind.
type ThreadEntry struct {
	Kind    string   `json:"kind"`
	Message *Message `json:"message,omitempty"`
	Offer   *Offer   `json:"offer,omitempty"`
}

// Timestamp returns the ordering key of the entry.
func (e ThreadEntry) Timestamp() time.Time {
	if e.Kind == ThreadEntryOffer {
		return e.Offer.CreatedAt
	}
	return e.Message.CreatedAt
}

// Contact is one row of a user's contact list: a counterpart derived from
// message or offer participation, with the time of the latest interaction.
type Contact struct {
	UserID        int       `json:"user_id"`
	Username      string    `json:"username"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// ThreadEntryView is a presentation form of a ThreadEntry. Timestamps are
// rendered as local hour:minute at this boundary only; the entities keep the
// raw time.Time.
type ThreadEntryView struct {
	Kind string `json:"kind"`
	Time string `json:"time"`

	// Message fields
	Content string `json:"content,omitempty"`

	// Offer fields
	OfferID   int64  `json:"offer_id,omitempty"`
	RequestID int64  `json:"request_id,omitempty"`
	Pickup    string `json:"pickup,omitempty"`
	Dropoff   string `json:"dropoff,omitempty"`
	Price     int64  `json:"price,omitempty"`
	Status    string `json:"status,omitempty"`

	SenderID   int `json:"sender_id"`
	ReceiverID int `json:"receiver_id"`
}

// ViewOf renders e for presentation, formatting the timestamp as HH:MM.
func ViewOf(e ThreadEntry) ThreadEntryView {
	v := ThreadEntryView{
		Kind: e.Kind,
		Time: e.Timestamp().Local().Format("15:04"),
	}
	switch e.Kind {
	case ThreadEntryOffer:
		v.OfferID = e.Offer.ID
		v.RequestID = e.Offer.RequestID
		v.Pickup = e.Offer.Pickup
		v.Dropoff = e.Offer.Dropoff
		v.Price = e.Offer.Price
		v.Status = e.Offer.Status
		v.SenderID = e.Offer.SenderID
		v.ReceiverID = e.Offer.ReceiverID
	default:
		v.Content = e.Message.Content
		v.SenderID = e.Message.SenderID
		v.ReceiverID = e.Message.ReceiverID
	}
	return v
}
