package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// TokenService provides high-level operations for issuing and renewing
// tokens. Sessions are fully stateless: validity of either token class
// is signature plus expiry, nothing is persisted and the refresh token
// is never rotated. A renewal re-validates the same refresh token and
// mints a fresh access token only.
type TokenService struct {
	manager   model.TokenManager
	userStore model.UserStore
	logger    *logger.Logger
}

func NewTokenService(manager model.TokenManager, userStore model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, userStore: userStore, logger: logger}
}

// Issue mints a new access/refresh pair for the user.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	return access, refresh, nil
}

// Refresh validates a presented refresh token and mints a new access
// token. The user embedded in the claims must still exist; an account
// deleted after issuance invalidates its outstanding refresh tokens.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (string, error) {
	userID, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		s.logger.Info("Token service: refresh token rejected", "error", err.Error())
		return "", model.ErrTokenInvalid
	}

	_, err = s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Token service: refresh for deleted user", "user_id", userID)
		return "", model.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by id: %w", err)
	}

	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("issue new access: %w", err)
	}

	return access, nil
}

// GetUserID resolves the user id from an access token.
func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}
