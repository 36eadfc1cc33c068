// Package services holds the server's business logic, between the HTTP
// layer and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dverbis/itemkeeper/internal/common"
	"github.com/dverbis/itemkeeper/internal/server/auth"
	"github.com/dverbis/itemkeeper/internal/server/config"
	"github.com/dverbis/itemkeeper/internal/server/models"
	"github.com/dverbis/itemkeeper/internal/server/repositories/users"
)

type UserService struct {
	repo                        users.Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new active account. Duplicate email and username are
// reported with dedicated sentinels so the handler can surface the exact
// constraint that failed. Email uniqueness is checked first.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*models.User, error) {

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrorUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and mints an access token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, fmt.Errorf("error finding user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, common.ErrorUnauthorized
	}

	if !user.IsActive {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", nil, fmt.Errorf("error generating token: %w", err)
	}

	return token, user, nil
}

// GetByToken resolves the user identified by an access token. Expired and
// malformed tokens both come back as common.ErrorUnauthorized, as does a
// token for a deleted or deactivated account.
func (s *UserService) GetByToken(ctx context.Context, token string) (*models.User, error) {

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}
