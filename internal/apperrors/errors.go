// Package apperrors defines the API-facing error values returned by
// services. Each carries the HTTP status it maps onto so handlers can
// surface a stable status plus a human-readable message.
package apperrors

import (
	"fmt"
	"net/http"
)

// APIError is an error with a fixed HTTP status.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewErrEmailTaken signals a registration attempt with an email that is
// already in use.
func NewErrEmailTaken(email string) *APIError {
	return &APIError{
		HTTPStatus: http.StatusBadRequest,
		Message:    fmt.Sprintf("user with email %s already exists", email),
	}
}

// NewErrUserNotFound signals a login attempt with an unknown email.
func NewErrUserNotFound(email string) *APIError {
	return &APIError{
		HTTPStatus: http.StatusNotFound,
		Message:    fmt.Sprintf("user %s doesn't exist", email),
	}
}

// NewErrInvalidCredentials signals a password mismatch. The message is
// deliberately generic.
func NewErrInvalidCredentials() *APIError {
	return &APIError{
		HTTPStatus: http.StatusBadRequest,
		Message:    "invalid credentials",
	}
}

// NewErrPasswordLoginUnavailable signals a local login against an account
// created through Google sign-in, which has no password credential.
func NewErrPasswordLoginUnavailable() *APIError {
	return &APIError{
		HTTPStatus: http.StatusBadRequest,
		Message:    "account was created with Google, please sign in with Google",
	}
}

// NewErrGoogleAuthFailed is the single opaque failure for the whole
// Google exchange. It never says which step failed.
func NewErrGoogleAuthFailed() *APIError {
	return &APIError{
		HTTPStatus: http.StatusUnauthorized,
		Message:    "google authentication failed",
	}
}

// NewErrMissingAuthorizationToken signals a protected request without a
// bearer token.
func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{
		HTTPStatus: http.StatusUnauthorized,
		Message:    "missing authorization token",
	}
}

// NewErrInvalidAuthorizationToken signals a bearer token that failed
// signature, expiry or type validation.
func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{
		HTTPStatus: http.StatusUnauthorized,
		Message:    "invalid authorization token",
	}
}

// NewErrMissingRefreshToken signals a refresh request with no refresh
// cookie: the client needs to log in.
func NewErrMissingRefreshToken() *APIError {
	return &APIError{
		HTTPStatus: http.StatusUnauthorized,
		Message:    "no refresh token",
	}
}

// NewErrInvalidRefreshToken signals a refresh cookie that failed
// signature or expiry validation: the session is no longer valid.
func NewErrInvalidRefreshToken() *APIError {
	return &APIError{
		HTTPStatus: http.StatusForbidden,
		Message:    "invalid refresh token",
	}
}

// NewErrRefreshUserGone signals a validly signed refresh token whose
// user no longer exists.
func NewErrRefreshUserGone() *APIError {
	return &APIError{
		HTTPStatus: http.StatusUnauthorized,
		Message:    "user not found",
	}
}

// NewErrForbidden signals a valid identity with insufficient role.
func NewErrForbidden() *APIError {
	return &APIError{
		HTTPStatus: http.StatusForbidden,
		Message:    "insufficient permissions",
	}
}

// NewErrTitleRequired signals a task create without a title.
func NewErrTitleRequired() *APIError {
	return &APIError{
		HTTPStatus: http.StatusBadRequest,
		Message:    "title is required",
	}
}

// NewErrTaskNotFound signals a task id that does not exist or is not
// owned by the caller. The two cases are indistinguishable on purpose.
func NewErrTaskNotFound() *APIError {
	return &APIError{
		HTTPStatus: http.StatusNotFound,
		Message:    "task not found",
	}
}

// NewErrInvalidInput signals a malformed or invalid request body.
func NewErrInvalidInput(msg string) *APIError {
	return &APIError{
		HTTPStatus: http.StatusBadRequest,
		Message:    msg,
	}
}
