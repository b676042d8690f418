// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/flightboard/flightboard/internal/auth"
	"github.com/flightboard/flightboard/internal/cache"
	"github.com/flightboard/flightboard/internal/events"
	"github.com/flightboard/flightboard/internal/metrics"
	"github.com/flightboard/flightboard/internal/model"
	"github.com/flightboard/flightboard/internal/repository"
)

// Account service errors.
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidName        = errors.New("first and last name are required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
)

// Email validation: pragmatic, not RFC 5322. The mail server has the
// final say.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	maxNameLength     = 100
	maxEmailLength    = 254
)

// AccountService handles registration and session lifecycle.
type AccountService struct {
	repo       *repository.Repository
	cache      *cache.Cache
	publisher  *events.Publisher
	metrics    metrics.Recorder
	sessionTTL time.Duration
}

// NewAccountService creates a new AccountService. publisher may be nil
// when the activity pipeline is disabled.
func NewAccountService(repo *repository.Repository, cache *cache.Cache, publisher *events.Publisher, recorder metrics.Recorder, sessionTTL time.Duration) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		repo:       repo,
		cache:      cache,
		publisher:  publisher,
		metrics:    recorder,
		sessionTTL: sessionTTL,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a new user account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := normalizeEmail(input.Email)

	if firstName == "" || lastName == "" {
		return nil, ErrInvalidName
	}
	if len(firstName) > maxNameLength || len(lastName) > maxNameLength {
		return nil, ErrInvalidName
	}
	if len(email) > maxEmailLength || !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > maxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           ulid.Make().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// LoginOutput carries the authenticated user and their session token.
type LoginOutput struct {
	User  *model.User
	Token string // Plaintext session token, shown to the client once
}

// Login verifies credentials and issues a session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn time anyway so user enumeration isn't timing-visible.
			_, _ = auth.VerifyPassword(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	session := &model.SessionContext{
		UserID:      user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		TokenPrefix: token.Prefix,
		IssuedAt:    time.Now().UTC(),
	}

	if err := s.cache.SetSession(ctx, auth.CacheKey(token.Plaintext), session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.metrics.IncSessionLogin()
	if s.publisher != nil {
		s.publisher.PublishAsync(events.FlightEventPayload{
			Type:       model.EventUserLogin,
			UserID:     user.ID,
			OccurredAt: session.IssuedAt.UnixMilli(),
		})
	}

	return &LoginOutput{User: user, Token: token.Plaintext}, nil
}

// Logout revokes the session behind the given token. Revoking an
// already-dead session is not an error.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if !auth.ValidateTokenFormat(token) {
		return nil
	}

	if err := s.cache.DeleteSession(ctx, auth.CacheKey(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.metrics.IncSessionLogout()
	return nil
}

// Profile returns the full user record for a session.
func (s *AccountService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// dummyHash is a valid argon2id hash of a throwaway value, used to keep
// login timing uniform when the email doesn't exist.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=4$AAAAAAAAAAAAAAAAAAAAAA$TJFTNC0iNEWbUJCSAhfcZ72CXjY0buq5hG9MfZXdGYA"
