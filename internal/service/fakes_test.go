package service

import (
	"context"
	"time"

	"courier_market/internal/model"
)

// In-memory fakes for the repository interfaces.

type fakeUserRepo struct {
	users  map[int]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int) (*model.User, error) {
	return f.users[id], nil
}

type fakeRequestRepo struct {
	requests map[int64]*model.DeliveryRequest
	nextID   int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*model.DeliveryRequest), nextID: 1}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *model.DeliveryRequest) error {
	req.ID = f.nextID
	f.nextID++
	stored := *req
	f.requests[req.ID] = &stored
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id int64) (*model.DeliveryRequest, error) {
	return f.requests[id], nil
}

func (f *fakeRequestRepo) FindByOwner(_ context.Context, userID int) ([]model.DeliveryRequest, error) {
	var out []model.DeliveryRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) FindNotOwnedBy(_ context.Context, userID int) ([]model.DeliveryRequest, error) {
	var out []model.DeliveryRequest
	for _, r := range f.requests {
		if r.UserID != userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) FindActiveByOwner(_ context.Context, userID int) ([]model.DeliveryRequest, error) {
	var out []model.DeliveryRequest
	for _, r := range f.requests {
		if r.UserID == userID && r.Status == model.RequestStatusActive {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	messages []model.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *model.Message) error {
	msg.ID = f.nextID
	f.nextID++
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	f.messages = append(f.messages, *msg)
	return nil
}

// fakeConversationRepo serves pre-seeded snapshots. Messages and offers are
// kept in insertion order, as the real queries order by (created_at, id).
type fakeConversationRepo struct {
	messages []model.Message
	offers   []model.Offer
	contacts []model.Contact
}

func participants(senderID, receiverID, a, b int) bool {
	return (senderID == a && receiverID == b) || (senderID == b && receiverID == a)
}

func (f *fakeConversationRepo) ThreadSnapshot(_ context.Context, userA, userB int) ([]model.Message, []model.Offer, error) {
	var messages []model.Message
	for _, m := range f.messages {
		if participants(m.SenderID, m.ReceiverID, userA, userB) {
			messages = append(messages, m)
		}
	}
	var offers []model.Offer
	for _, o := range f.offers {
		if participants(o.SenderID, o.ReceiverID, userA, userB) {
			offers = append(offers, o)
		}
	}
	return messages, offers, nil
}

func (f *fakeConversationRepo) Contacts(_ context.Context, _ int) ([]model.Contact, error) {
	return f.contacts, nil
}

// fakeOfferRepo mimics the compare-and-set semantics of the real repository,
// including the confirmation message stored by Accept.
type fakeOfferRepo struct {
	offers         map[int64]*model.Offer
	nextID         int64
	storedMessages []model.Message
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[int64]*model.Offer), nextID: 1}
}

func (f *fakeOfferRepo) Create(_ context.Context, offer *model.Offer) error {
	offer.ID = f.nextID
	f.nextID++
	offer.Status = model.OfferStatusPending
	if offer.CreatedAt.IsZero() {
		offer.CreatedAt = time.Now()
	}
	stored := *offer
	f.offers[offer.ID] = &stored
	return nil
}

func (f *fakeOfferRepo) FindByID(_ context.Context, id int64) (*model.Offer, error) {
	o, ok := f.offers[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOfferRepo) Accept(_ context.Context, offerID int64) (bool, error) {
	o, ok := f.offers[offerID]
	if !ok || o.Terminal() {
		return false, nil
	}
	o.Status = model.OfferStatusAccepted
	f.storedMessages = append(f.storedMessages, model.Message{
		SenderID:   o.ReceiverID,
		ReceiverID: o.SenderID,
		Content:    model.AcceptedOfferMessage,
		CreatedAt:  time.Now(),
	})
	return true, nil
}

func (f *fakeOfferRepo) Decline(_ context.Context, offerID int64) (bool, error) {
	o, ok := f.offers[offerID]
	if !ok || o.Terminal() {
		return false, nil
	}
	o.Status = model.OfferStatusDeclined
	return true, nil
}
