package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier_market/internal/model"
	"courier_market/internal/repository"
	"courier_market/internal/utils"
)

var (
	ErrUsernameTaken      = errors.New("username already taken, try another one")
	ErrPasswordMismatch   = errors.New("passwords don't match")
	ErrMissingCredentials = errors.New("must provide username and password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username and/or password")
)

// AuthService provides registration, login and profile lookup
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Profile(ctx context.Context, userID int) (*model.User, error)
}

// RegisterInput carries the registration form fields
type RegisterInput struct {
	Username     string
	Password     string
	Confirmation string
	Email        string
	Role         model.Role
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
	}
}

// Register creates a new user account and returns a session token, so the
// session is established from the integer id the insert returned.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	if input.Username == "" || input.Password == "" {
		return nil, "", ErrMissingCredentials
	}
	if input.Password != input.Confirmation {
		return nil, "", ErrPasswordMismatch
	}

	existingUser, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if !role.Valid() {
		role = model.RoleShipper // Default role
	}

	user := &model.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if input.Email != "" {
		email := input.Email
		user.Email = &email
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user in repository: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return user, "", fmt.Errorf("user created, but failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a session token
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials // Password mismatch
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Profile returns the account for an authenticated user id
func (s *authService) Profile(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
