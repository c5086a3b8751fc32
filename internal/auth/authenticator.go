package auth

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/event-manager/internal/domain"
	"github.com/BruksfildServices01/event-manager/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
)

// UserFinder is the part of the store the authenticator reads.
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Authenticator struct {
	users  UserFinder
	secret string
	ttl    time.Duration
}

func NewAuthenticator(users UserFinder, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{users: users, secret: secret, ttl: ttl}
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := a.users.FindUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := MakeToken(u, a.secret, a.ttl)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Authenticate verifies the token and loads the live user it names. Role and
// profile come from the store, not from the claims.
func (a *Authenticator) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := ParseToken(raw, a.secret)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	u, err := a.users.FindUserByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
