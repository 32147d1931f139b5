package service

import (
	"context"
	"testing"
	"time"

	"courier_market/internal/model"

	"github.com/stretchr/testify/assert"
)

func newListingServiceForTest() (ListingService, *fakeRequestRepo, *fakeUserRepo) {
	requestRepo := newFakeRequestRepo()
	userRepo := newFakeUserRepo()
	return NewListingService(requestRepo, userRepo), requestRepo, userRepo
}

func TestCreateRequest_StartsActive(t *testing.T) {
	svc, _, _ := newListingServiceForTest()

	req, err := svc.CreateRequest(context.Background(), 1, model.CreateRequestInput{
		PickUpLocation:  "Tashkent",
		DropOffLocation: "Samarkand",
		ItemType:        "documents",
		Weight:          500,
		Price:           15000,
		DepartDate:      time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		ArrivalDate:     time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.NotZero(t, req.ID)
	assert.Equal(t, 1, req.UserID)
	assert.Equal(t, model.RequestStatusActive, req.Status)
}

func TestBrowseForUser_TravelerSeesOwnRequests(t *testing.T) {
	svc, requestRepo, userRepo := newListingServiceForTest()

	traveler := &model.User{Username: "alice", Role: model.RoleTraveler}
	assert.NoError(t, userRepo.Create(context.Background(), traveler))

	own := &model.DeliveryRequest{UserID: traveler.ID, Status: model.RequestStatusActive}
	assert.NoError(t, requestRepo.Create(context.Background(), own))
	other := &model.DeliveryRequest{UserID: traveler.ID + 1, Status: model.RequestStatusActive}
	assert.NoError(t, requestRepo.Create(context.Background(), other))

	options, err := svc.BrowseForUser(context.Background(), traveler.ID)

	assert.NoError(t, err)
	assert.Len(t, options, 1)
	assert.Equal(t, own.ID, options[0].ID)
}

func TestBrowseForUser_ShipperSeesOthersRequests(t *testing.T) {
	svc, requestRepo, userRepo := newListingServiceForTest()

	shipper := &model.User{Username: "bob", Role: model.RoleShipper}
	assert.NoError(t, userRepo.Create(context.Background(), shipper))

	own := &model.DeliveryRequest{UserID: shipper.ID, Status: model.RequestStatusActive}
	assert.NoError(t, requestRepo.Create(context.Background(), own))
	other := &model.DeliveryRequest{UserID: shipper.ID + 1, Status: model.RequestStatusActive}
	assert.NoError(t, requestRepo.Create(context.Background(), other))

	options, err := svc.BrowseForUser(context.Background(), shipper.ID)

	assert.NoError(t, err)
	assert.Len(t, options, 1)
	assert.Equal(t, other.ID, options[0].ID)
}

func TestBrowseForUser_UnknownUser(t *testing.T) {
	svc, _, _ := newListingServiceForTest()

	_, err := svc.BrowseForUser(context.Background(), 99)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
