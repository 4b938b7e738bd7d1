// Package auth implements the authentication core: password hashing, token
// issuance and verification, and the register/login/current-user flows.
package auth

import (
	"context"
	"fmt"

	"github.com/anshul/ecommerce-store/backend/internal/common"
	"github.com/anshul/ecommerce-store/backend/internal/models"
)

// UserStore defines the interface for user persistence. Lookups return
// (nil, nil) when no record matches. Insert must enforce username and email
// uniqueness atomically, returning common.ErrConflict on violation so that
// two concurrent registrations with the same identity cannot both succeed.
type UserStore interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Insert(ctx context.Context, username, email, passwordHash, role string) (int64, error)
}

// Service orchestrates registration and login over a user store, a password
// hasher, and a token service.
type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenService
}

func NewService(users UserStore, hasher PasswordHasher, tokens *TokenService) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new user with role "user" and returns a token for it.
// The store pre-check keeps the common duplicate case cheap; the unique
// indexes behind Insert make the race-free guarantee.
func (s *Service) Register(ctx context.Context, username, email, password string) (string, models.PublicUser, error) {
	if username == "" || email == "" || password == "" {
		return "", models.PublicUser{}, fmt.Errorf("%w: username, email and password are required", common.ErrValidation)
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	if existing != nil {
		return "", models.PublicUser{}, fmt.Errorf("%w: user", common.ErrConflict)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Insert(ctx, username, email, hash, models.RoleUser)
	if err != nil {
		return "", models.PublicUser{}, err
	}

	token, err := s.tokens.Issue(id, username, models.RoleUser)
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("issue token: %w", err)
	}

	user := models.PublicUser{ID: id, Username: username, Email: email, Role: models.RoleUser}
	return token, user, nil
}

// Login verifies the credentials and returns a fresh token. An unknown email
// and a wrong password produce the same error so callers cannot tell which
// part of the credential failed.
func (s *Service) Login(ctx context.Context, email, password string) (string, models.PublicUser, error) {
	if email == "" || password == "" {
		return "", models.PublicUser{}, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", models.PublicUser{}, err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return "", models.PublicUser{}, common.ErrUnauthenticated
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return "", models.PublicUser{}, fmt.Errorf("issue token: %w", err)
	}
	return token, user.Public(), nil
}

// CurrentUser resolves an already-authenticated user id to its public view.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}
	if user == nil {
		return models.PublicUser{}, fmt.Errorf("%w: user %d", common.ErrNotFound, userID)
	}
	return user.Public(), nil
}
