package model

import "context"

// IdentityProvider exchanges a one-time authorization code for a verified
// external identity.
type IdentityProvider interface {
	Exchange(ctx context.Context, code string) (ExternalIdentity, error)
}

// ExternalIdentity is the profile extracted from a verified provider
// artifact. Subject is the provider-scoped unique user identifier.
type ExternalIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// PasswordHasher hashes and verifies local password credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
