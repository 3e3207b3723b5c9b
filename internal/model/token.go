package model

import "github.com/google/uuid"

// TokenManager generates and validates access/refresh tokens. The two
// token classes are signed with distinct secrets so that compromise of
// one key space does not forge the other.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}
