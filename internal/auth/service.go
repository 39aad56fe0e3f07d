package auth

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"bizsuite/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service struct {
	store    *store.Store
	secret   string
	tokenTTL time.Duration
	logger   *slog.Logger
}

func NewService(st *store.Store, secret string, tokenTTL time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, secret: secret, tokenTTL: tokenTTL, logger: logger}
}

// Login verifies credentials and returns a signed token plus the user record.
// The last-login stamp is best effort: a failed flush is logged, never
// surfaced, so it cannot abort a successful login.
func (s *Service) Login(email, password string) (string, store.User, error) {
	user, ok := s.findByEmail(email)
	if !ok {
		return "", store.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", store.User{}, ErrAccountDisabled
	}
	if err := CheckPassword(user.Password, password); err != nil {
		return "", store.User{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, s.tokenTTL)
	if err != nil {
		return "", store.User{}, err
	}

	if updated, err := s.store.Users().Update(user.ID, func(u *store.User) {
		now := time.Now().UTC()
		u.LastLoginAt = &now
	}); err != nil {
		s.logger.Warn("last-login update failed", "userId", user.ID, "err", err)
	} else {
		user = updated
	}

	return token, user, nil
}

// CreateUser registers a user with a bcrypt-hashed password. Email uniqueness
// is enforced here, not by the store.
func (s *Service) CreateUser(email, password string, role store.Role) (store.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.findByEmail(email); exists {
		return store.User{}, ErrEmailTaken
	}
	hash, err := HashPassword(password)
	if err != nil {
		return store.User{}, err
	}
	return s.store.Users().Create(store.User{
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: true,
	})
}

// GetUser returns the user record for an ID.
func (s *Service) GetUser(id string) (store.User, bool) {
	return s.store.Users().GetByID(id)
}

func (s *Service) findByEmail(email string) (store.User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	matches := s.store.Users().List(store.Where(func(u store.User) bool {
		return strings.ToLower(u.Email) == email
	}))
	if len(matches) == 0 {
		return store.User{}, false
	}
	return matches[0], true
}
