package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// Auth implements local credential flows: registration, password login,
// profile lookup and avatar storage.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	storage   model.Storage
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	storage model.Storage,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		storage:   storage,
		logger:    logger,
	}
}

// Register creates a user with a hashed password credential. The email
// must not be in use; a concurrent duplicate create loses on the store's
// uniqueness constraint and surfaces the same error.
func (a *Auth) Register(ctx context.Context, email, password, name string) (model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	a.logger.Debug("Auth service: registering user", "email", email)

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: email already registered", "email", email)
		return model.User{}, apperrors.NewErrEmailTaken(email)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Roles:        []string{model.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := a.userStore.Create(ctx, user)
	if errors.Is(err, model.ErrAlreadyExists) {
		return model.User{}, apperrors.NewErrEmailTaken(email)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "email", email, "user_id", saved.ID)

	return saved, nil
}

// Login verifies a local password credential.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	a.logger.Debug("Auth service: logging in user", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apperrors.NewErrUserNotFound(email)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.PasswordHash == "" {
		a.logger.Info("Auth service: password login on federated-only account", "email", email)
		return model.User{}, apperrors.NewErrPasswordLoginUnavailable()
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		a.logger.Info("Auth service: password mismatch", "email", email)
		return model.User{}, apperrors.NewErrInvalidCredentials()
	}

	a.logger.Info("Auth service: user logged in", "email", email, "user_id", user.ID)

	return user, nil
}

// GetProfile returns the user record for a resolved principal id.
func (a *Auth) GetProfile(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// UploadAvatar stores an avatar image keyed by user id and points the
// user's picture at the serving path.
func (a *Auth) UploadAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := a.storage.Upload(ctx, userID.String(), reader); err != nil {
		a.logger.Error("Auth service: failed to upload avatar",
			"user_id", userID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	picture := fmt.Sprintf("/api/auth/avatar/%s", userID)
	updated, err := a.userStore.UpdateProfile(ctx, userID, user.Name, picture)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user picture: %w", err)
	}

	a.logger.Info("Auth service: avatar updated", "user_id", userID)

	return updated, nil
}

// GetAvatar streams back a previously uploaded avatar.
func (a *Auth) GetAvatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	exists, err := a.storage.Exists(ctx, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to check avatar existence: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}
	return a.storage.Download(ctx, userID.String())
}
