package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier_market/internal/model"
	"courier_market/internal/repository"
)

var ErrRequestNotFound = errors.New("request not found")

// ListingService provides delivery request posting and browsing
type ListingService interface {
	CreateRequest(ctx context.Context, userID int, input model.CreateRequestInput) (*model.DeliveryRequest, error)

	// BrowseForUser is the role-based listing query: a traveler sees their
	// own requests, any other role sees requests posted by others. The role
	// is resolved once from the user row, as an enum.
	BrowseForUser(ctx context.Context, userID int) ([]model.DeliveryRequest, error)
}

type listingService struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
}

// NewListingService creates a new ListingService
func NewListingService(requestRepo repository.RequestRepository, userRepo repository.UserRepository) ListingService {
	return &listingService{requestRepo: requestRepo, userRepo: userRepo}
}

func (s *listingService) CreateRequest(ctx context.Context, userID int, input model.CreateRequestInput) (*model.DeliveryRequest, error) {
	req := &model.DeliveryRequest{
		UserID:          userID,
		PickUpLocation:  input.PickUpLocation,
		DropOffLocation: input.DropOffLocation,
		ItemType:        input.ItemType,
		Description:     input.Description,
		Weight:          input.Weight,
		Price:           input.Price,
		DepartDate:      input.DepartDate,
		ArrivalDate:     input.ArrivalDate,
		Status:          model.RequestStatusActive,
		CreatedAt:       time.Now(),
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request in repo: %w", err)
	}
	return req, nil
}

func (s *listingService) BrowseForUser(ctx context.Context, userID int) ([]model.DeliveryRequest, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user for browse: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.Role == model.RoleTraveler {
		return s.requestRepo.FindByOwner(ctx, userID)
	}
	return s.requestRepo.FindNotOwnedBy(ctx, userID)
}
