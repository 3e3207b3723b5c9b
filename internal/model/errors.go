package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores on a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrTokenInvalid is returned for a refresh token whose signature,
	// expiry or type check failed.
	ErrTokenInvalid = errors.New("refresh token invalid")
)
