package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/veligame/adminpanel/internal/panel/domain"
	"github.com/veligame/adminpanel/internal/panel/store"
	"github.com/veligame/adminpanel/pkg/cryptox"
	"github.com/veligame/adminpanel/pkg/idx"
	"github.com/veligame/adminpanel/pkg/jwtx"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password". Collapsing them avoids leaking account existence.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrAccountExists signals a username or email uniqueness conflict.
	ErrAccountExists = errors.New("account_already_exists")

	// ErrInvalidRegistration signals missing or unusable registration fields.
	ErrInvalidRegistration = errors.New("invalid_registration")
)

// AuthService converts a username/password pair into a signed token and
// registers new accounts. Dependencies are injected; it holds no state of
// its own beyond them.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	Audience []string
	TokenTTL time.Duration

	// Now supplies the issuance instant. Nil means the wall clock.
	Now func() time.Time
}

// Login verifies the submitted credentials and mints an access token with
// the username as subject. Absent user and wrong password produce the same
// error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwtx.NewAccessClaims(user.Username, s.ttl(), s.Issuer, s.Audience, s.now())
	return s.Signer.Sign(claims)
}

// Register creates a new account. The existence pre-check is only a
// fast-path for a friendly error; the database UNIQUE constraints are the
// authoritative duplicate guard, so a lost race still returns
// ErrAccountExists.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return domain.User{}, ErrInvalidRegistration
	}

	_, err := s.Store.Users().GetUserByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return domain.User{}, ErrAccountExists
	case !errors.Is(err, store.ErrNotFound):
		return domain.User{}, err
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
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrAccountExists
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
