package service

import (
	"context"
	"errors"
	"fmt"

	"courier_market/internal/model"
	"courier_market/internal/repository"
)

var (
	ErrOfferNotFound       = errors.New("offer not found")
	ErrNotOfferRecipient   = errors.New("only the offer's recipient may accept it")
	ErrNotOfferParticipant = errors.New("only a participant of the offer may decline it")
)

// OfferService drives the offer lifecycle: pending on creation, then exactly
// one transition to accepted or declined.
type OfferService interface {
	// CreateOffer inserts a pending offer. The request id must reference an
	// existing delivery request; no other validation is applied.
	CreateOffer(ctx context.Context, senderID, receiverID int, requestID int64, pickup, dropoff string, price int64) (*model.Offer, error)

	// AcceptOffer transitions the offer to accepted and stores the
	// confirmation message to the sender, atomically. Only the offer's
	// recipient may accept. A second accept on the same offer is a no-op:
	// the status changes at most once and the confirmation message is never
	// duplicated. Returns the offer's sender id for the redirect target.
	AcceptOffer(ctx context.Context, actingUserID int, offerID int64) (int, error)

	// DeclineOffer transitions the offer to declined. The caller must be a
	// participant (sender or receiver) of the offer. Declining an
	// already-terminal offer is a reported no-op. No confirmation message.
	DeclineOffer(ctx context.Context, actingUserID int, offerID int64) error
}

type offerService struct {
	offerRepo   repository.OfferRepository
	requestRepo repository.RequestRepository
}

// NewOfferService creates a new OfferService
func NewOfferService(offerRepo repository.OfferRepository, requestRepo repository.RequestRepository) OfferService {
	return &offerService{offerRepo: offerRepo, requestRepo: requestRepo}
}

func (s *offerService) CreateOffer(ctx context.Context, senderID, receiverID int, requestID int64, pickup, dropoff string, price int64) (*model.Offer, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to find request for offer: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}

	offer := &model.Offer{
		SenderID:   senderID,
		ReceiverID: receiverID,
		RequestID:  requestID,
		Pickup:     pickup,
		Dropoff:    dropoff,
		Price:      price,
		Status:     model.OfferStatusPending,
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer in repo: %w", err)
	}
	return offer, nil
}

func (s *offerService) AcceptOffer(ctx context.Context, actingUserID int, offerID int64) (int, error) {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return 0, fmt.Errorf("failed to find offer for accept: %w", err)
	}
	if offer == nil {
		return 0, ErrOfferNotFound
	}
	if offer.ReceiverID != actingUserID {
		return 0, ErrNotOfferRecipient
	}

	// The repository compare-and-sets on the pending status; a concurrent or
	// repeated accept finds the offer already terminal and changes nothing.
	if _, err := s.offerRepo.Accept(ctx, offerID); err != nil {
		return 0, fmt.Errorf("failed to accept offer: %w", err)
	}
	return offer.SenderID, nil
}

func (s *offerService) DeclineOffer(ctx context.Context, actingUserID int, offerID int64) error {
	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return fmt.Errorf("failed to find offer for decline: %w", err)
	}
	if offer == nil {
		return ErrOfferNotFound
	}
	if offer.SenderID != actingUserID && offer.ReceiverID != actingUserID {
		return ErrNotOfferParticipant
	}

	if _, err := s.offerRepo.Decline(ctx, offerID); err != nil {
		return fmt.Errorf("failed to decline offer: %w", err)
	}
	return nil
}
