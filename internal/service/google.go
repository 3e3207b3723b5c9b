package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// GoogleAuth implements the federated login flow: exchange the one-time
// authorization code for a verified identity, then map it to a local
// user. Email uniqueness is global: when the Google subject is unknown
// but the email belongs to an existing local account, the Google
// identity is linked to that account instead of creating a duplicate.
type GoogleAuth struct {
	userStore model.UserStore
	provider  model.IdentityProvider
	logger    *logger.Logger
}

func NewGoogleAuth(userStore model.UserStore, provider model.IdentityProvider, logger *logger.Logger) *GoogleAuth {
	return &GoogleAuth{
		userStore: userStore,
		provider:  provider,
		logger:    logger,
	}
}

// ExchangeAndLogin resolves an authorization code to a local user,
// creating or linking the account as needed. Every exchange failure
// collapses into one opaque authentication error so callers cannot
// probe which check rejected them.
func (g *GoogleAuth) ExchangeAndLogin(ctx context.Context, code string) (model.User, error) {
	identity, err := g.provider.Exchange(ctx, code)
	if err != nil {
		g.logger.Info("Google auth: exchange failed", "error", err.Error())
		return model.User{}, apperrors.NewErrGoogleAuthFailed()
	}
	if identity.Subject == "" || identity.Email == "" {
		g.logger.Info("Google auth: incomplete identity payload")
		return model.User{}, apperrors.NewErrGoogleAuthFailed()
	}
	// Same canonical form as local registration, so the link-by-email
	// lookup cannot miss an account over letter case.
	identity.Email = strings.TrimSpace(strings.ToLower(identity.Email))

	user, err := g.userStore.GetByGoogleID(ctx, identity.Subject)
	if err == nil {
		return g.refreshProfile(ctx, user, identity)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by google id: %w", err)
	}

	// Unknown subject: link to an existing account with the same email,
	// or create a fresh passwordless one.
	existing, err := g.userStore.GetByEmail(ctx, identity.Email)
	if err == nil {
		linked, err := g.userStore.LinkGoogleID(ctx, existing.ID, identity.Subject)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to link google id: %w", err)
		}
		g.logger.Info("Google auth: linked google identity to existing account",
			"user_id", linked.ID)
		return g.refreshProfile(ctx, linked, identity)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	now := time.Now()
	subject := identity.Subject
	created, err := g.userStore.Create(ctx, model.User{
		ID:        uuid.New(),
		Email:     identity.Email,
		Name:      identity.Name,
		GoogleID:  &subject,
		Picture:   identity.Picture,
		Roles:     []string{model.RoleUser},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		// Lost a race with a concurrent exchange for the same subject;
		// the winner's row is authoritative.
		winner, getErr := g.userStore.GetByGoogleID(ctx, identity.Subject)
		if getErr != nil {
			return model.User{}, fmt.Errorf("failed to get user after create conflict: %w", getErr)
		}
		return winner, nil
	}
	if err != nil {
		g.logger.Error("Google auth: failed to create user",
			"email", identity.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	g.logger.Info("Google auth: new user created", "user_id", created.ID)

	return created, nil
}

// refreshProfile overwrites name and picture from the latest provider
// payload, skipping empty values. The password credential is never
// touched here.
func (g *GoogleAuth) refreshProfile(ctx context.Context, user model.User, identity model.ExternalIdentity) (model.User, error) {
	name := user.Name
	if identity.Name != "" {
		name = identity.Name
	}
	picture := user.Picture
	if identity.Picture != "" {
		picture = identity.Picture
	}
	if name == user.Name && picture == user.Picture {
		return user, nil
	}

	updated, err := g.userStore.UpdateProfile(ctx, user.ID, name, picture)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to refresh profile: %w", err)
	}
	return updated, nil
}
