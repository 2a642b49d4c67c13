package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"elelem/backend/internal/auth"
	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/model"
	"elelem/backend/internal/repository"
)

// UserService owns registration, login and bearer-token resolution.
type UserService struct {
	repo     repository.Repository
	secret   []byte
	tokenTTL time.Duration
}

func NewUserService(repo repository.Repository, secret []byte, tokenTTL time.Duration) *UserService {
	return &UserService{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a new active account. The email must not be taken.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", app_errors.ErrConflict)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("could not check existing user: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.NewString(),
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	slog.Info("Registered new user", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: incorrect email or password", app_errors.ErrUnauthenticated)
		}
		return "", fmt.Errorf("could not look up user: %w", err)
	}
	if err := user.CheckPassword(password); err != nil {
		return "", fmt.Errorf("%w: incorrect email or password", app_errors.ErrUnauthenticated)
	}
	if !user.IsActive {
		return "", fmt.Errorf("%w: inactive user", app_errors.ErrPermission)
	}

	token, err := auth.GenerateToken(user.ID, s.secret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("could not issue token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to its user. Invalid or expired tokens
// are rejected before any other persistence or generator work happens.
func (s *UserService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	userID, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: could not validate credentials", app_errors.ErrUnauthenticated)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", app_errors.ErrNotFound)
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive user", app_errors.ErrPermission)
	}
	return user, nil
}

// GetUser returns a user by id. Users may only read their own record.
func (s *UserService) GetUser(ctx context.Context, requesterID, userID string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", app_errors.ErrNotFound)
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	if user.ID != requesterID {
		return nil, fmt.Errorf("%w: not enough permissions", app_errors.ErrPermission)
	}
	return user, nil
}
