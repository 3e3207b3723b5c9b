// Package google exchanges Google OAuth authorization codes for verified
// identities. The code comes from the browser popup flow, so the
// configured redirect is the "postmessage" sentinel rather than a URL.
package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/Divyansh8843/TaskMaster/internal/model"
)

const (
	issuerURL       = "https://accounts.google.com"
	exchangeTimeout = 10 * time.Second
)

var _ model.IdentityProvider = (*Provider)(nil)

// Provider implements IdentityProvider against Google. It exchanges the
// one-time code for tokens and verifies the returned ID token's signature
// and audience before trusting any profile field.
type Provider struct {
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
	timeout  time.Duration
}

// New creates a Provider. It performs OIDC discovery against Google, so
// it needs outbound network access at startup.
func New(ctx context.Context, clientID, clientSecret string) (*Provider, error) {
	oidcProvider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover google oidc provider: %w", err)
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oidcProvider.Endpoint(),
			RedirectURL:  "postmessage",
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: oidcProvider.Verifier(&oidc.Config{ClientID: clientID}),
		timeout:  exchangeTimeout,
	}, nil
}

// Exchange trades the authorization code for a verified identity. Any
// failure is returned as-is; callers collapse it into one opaque
// authentication error.
func (p *Provider) Exchange(ctx context.Context, code string) (model.ExternalIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return model.ExternalIdentity{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return model.ExternalIdentity{}, errors.New("no id token in exchange response")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return model.ExternalIdentity{}, fmt.Errorf("failed to verify id token: %w", err)
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return model.ExternalIdentity{}, fmt.Errorf("failed to extract id token claims: %w", err)
	}

	return model.ExternalIdentity{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// Disabled is an IdentityProvider that rejects every exchange. Used when
// no Google client is configured.
type Disabled struct{}

// Exchange always fails.
func (Disabled) Exchange(_ context.Context, _ string) (model.ExternalIdentity, error) {
	return model.ExternalIdentity{}, errors.New("google sign-in is not configured")
}
