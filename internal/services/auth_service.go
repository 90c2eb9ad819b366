package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bdc/internal/domain"
	"bdc/internal/repos"
	"bdc/internal/validate"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

// SessionStore maps an opaque session id (the cookie value) to a user id.
// repos.SQLSessions and cache.RedisSessions implement it.
type SessionStore interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, sid string) (string, error)
	Touch(ctx context.Context, sid string, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
}

type AuthService struct {
	Users    *repos.UserRepo
	Sessions SessionStore
	TTL      time.Duration
}

func NewAuthService(users *repos.UserRepo, sessions SessionStore, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &AuthService{Users: users, Sessions: sessions, TTL: ttl}
}

// Login checks the credentials and opens a brand new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, ErrBadCreds
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	sid, err := s.Sessions.Create(ctx, u.ID, s.TTL)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}
	return sid, u, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, sid)
}

// CurrentUser resolves a session id; domain.ErrNotFound means anonymous.
func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	if sid == "" {
		return nil, domain.ErrNotFound
	}
	uid, err := s.Sessions.Lookup(ctx, sid)
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(ctx, uid)
}

// Refresh extends a live session by another TTL.
func (s *AuthService) Refresh(ctx context.Context, sid string) error {
	return s.Sessions.Touch(ctx, sid, s.TTL)
}

// EnsureAdmin creates or resets the bootstrap dashboard account.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, name, password string) (*domain.User, error) {
	email, ok := validate.Email(email)
	if !ok {
		return nil, fmt.Errorf("%w: admin email", domain.ErrInvalidInput)
	}
	if !validate.StrongPassword(password) {
		return nil, fmt.Errorf("%w: admin password needs 8+ chars with upper, lower and digit", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.Users.Upsert(ctx, email, name, string(hash))
}
