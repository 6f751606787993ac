// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/projectdesk/projectdesk/internal/auth"
	"github.com/projectdesk/projectdesk/internal/metrics"
	"github.com/projectdesk/projectdesk/internal/model"
	"github.com/projectdesk/projectdesk/internal/repository"
)

// Auth service errors.
var (
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore is the persistence surface the auth service needs.
// *repository.Repository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users   UserStore
	hasher  *auth.Hasher
	tokens  *auth.Tokens
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher *auth.Hasher, tokens *auth.Tokens, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account with the default user role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	if email == "" {
		return "", ErrEmailRequired
	}
	if password == "" {
		return "", ErrPasswordRequired
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncUserLogin()

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
