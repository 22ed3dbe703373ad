package service

import (
	"context"
	"errors"
	"strings"

	"github.com/veligame/adminpanel/internal/panel/domain"
	"github.com/veligame/adminpanel/internal/panel/store"
	"github.com/veligame/adminpanel/pkg/cryptox"
	"github.com/veligame/adminpanel/pkg/idx"
)

// ErrInvalidUser signals missing or unusable user fields.
var ErrInvalidUser = errors.New("invalid_user")

// UserService is the administrative CRUD over user records. It shares the
// account-conflict semantics of AuthService.
type UserService struct {
	Store store.Store
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// CreateUser inserts a new user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return domain.User{}, ErrInvalidUser
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// UpdateUser replaces username and email, and the password when a new one
// is submitted. An empty password keeps the stored hash.
func (s *UserService) UpdateUser(ctx context.Context, userID, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" {
		return ErrInvalidUser
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Username = username
	user.Email = email
	if password != "" {
		hash, err := cryptox.HashPassword(password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	return s.Store.Users().UpdateUser(ctx, user)
}

// DeleteUser removes the user record.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.Store.Users().DeleteUser(ctx, userID)
}
