package service

import (
	"context"
	"testing"

	"courier_market/internal/model"
	"courier_market/internal/utils"

	"github.com/stretchr/testify/assert"
)

func newAuthServiceForTest() (AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	jwtUtil := utils.NewJWTUtil("test-secret-key", 1)
	return NewAuthService(userRepo, jwtUtil), userRepo
}

func TestRegister_Success(t *testing.T) {
	svc, userRepo := newAuthServiceForTest()

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Username:     "alice",
		Password:     "password123",
		Confirmation: "password123",
		Email:        "alice@example.com",
		Role:         model.RoleTraveler,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleTraveler, user.Role)
	assert.NotNil(t, user.Email)
	assert.Equal(t, "alice@example.com", *user.Email)
	// Password is stored hashed, never plaintext
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("password123", user.PasswordHash))

	stored, err := userRepo.FindByUsername(context.Background(), "alice")
	assert.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestRegister_DefaultsRole(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username:     "bob",
		Password:     "pw",
		Confirmation: "pw",
		Role:         "gardener",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleShipper, user.Role)
	assert.Nil(t, user.Email)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, userRepo := newAuthServiceForTest()

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username:     "alice",
		Password:     "password123",
		Confirmation: "password124",
	})

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	stored, findErr := userRepo.FindByUsername(context.Background(), "alice")
	assert.NoError(t, findErr)
	assert.Nil(t, stored)
}

func TestRegister_MissingCredentials(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, _, err := svc.Register(context.Background(), RegisterInput{Username: "alice"})

	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "pw", Confirmation: "pw",
	})
	assert.NoError(t, err)

	_, _, err = svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "other", Confirmation: "other",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "password123", Confirmation: "password123",
	})
	assert.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "alice", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "password123", Confirmation: "password123",
	})
	assert.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newAuthServiceForTest()

	_, _, err := svc.Login(context.Background(), "nobody", "pw")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc, _ := newAuthServiceForTest()
	registered, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "pw", Confirmation: "pw",
	})
	assert.NoError(t, err)

	user, err := svc.Profile(context.Background(), registered.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.Profile(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
