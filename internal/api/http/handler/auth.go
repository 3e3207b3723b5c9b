package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// maxAvatarSize bounds avatar uploads.
const maxAvatarSize = 5 << 20

// AuthService defines local credential and profile operations.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (model.User, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, reader io.Reader) (model.User, error)
	GetAvatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error)
}

// GoogleAuthService defines the federated login operation.
type GoogleAuthService interface {
	ExchangeAndLogin(ctx context.Context, code string) (model.User, error)
}

// TokenService defines token issue and refresh operations.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}

// Auth handles the HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	googleService  GoogleAuthService
	tokenService   TokenService
	contextManager model.ContextManager
	cookie         RefreshCookie
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	googleService GoogleAuthService,
	tokenService TokenService,
	contextManager model.ContextManager,
	cookie RefreshCookie,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		googleService:  googleService,
		tokenService:   tokenService,
		contextManager: contextManager,
		cookie:         cookie,
		logger:         logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleRequest struct {
	Code string `json:"code"`
}

type userResponse struct {
	ID      string   `json:"id"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Picture string   `json:"picture,omitempty"`
	Roles   []string `json:"roles"`
}

type sessionResponse struct {
	AccessToken string       `json:"accessToken"`
	User        userResponse `json:"user"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
		Roles:   u.Roles,
	}
}

// Register creates a new local account and opens a session.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		errorJSON(w, http.StatusBadRequest, "email, password and name are required")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.logger.Info("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.openSession(w, r, user, http.StatusCreated)
}

// Login verifies a local password credential and opens a session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.openSession(w, r, user, http.StatusOK)
}

// Google exchanges an authorization code and opens a session.
func (h *Auth) Google(w http.ResponseWriter, r *http.Request) {
	var req googleRequest
	if err := decodeJSON(r, &req); err != nil || req.Code == "" {
		handleError(w, apperrors.NewErrGoogleAuthFailed())
		return
	}

	user, err := h.googleService.ExchangeAndLogin(r.Context(), req.Code)
	if err != nil {
		h.logger.Info("Auth handler: google login failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.openSession(w, r, user, http.StatusOK)
}

// Refresh re-validates the refresh cookie and returns a new access token.
// The refresh token itself is reused until it expires on its own.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	presented := h.cookie.Read(r)
	if presented == "" {
		handleError(w, apperrors.NewErrMissingRefreshToken())
		return
	}

	access, err := h.tokenService.Refresh(r.Context(), presented)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTokenInvalid):
			handleError(w, apperrors.NewErrInvalidRefreshToken())
		case errors.Is(err, model.ErrNotFound):
			handleError(w, apperrors.NewErrRefreshUserGone())
		default:
			h.logger.Error("Auth handler: refresh failed", "error", err.Error())
			handleError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"accessToken": access})
}

// Logout clears the refresh cookie. Idempotent: without an active cookie
// it is a no-op success.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if h.cookie.Read(r) == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.cookie.Clear(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "cookie cleared"})
}

// Profile returns the authenticated user's record, password excluded.
func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, apperrors.NewErrMissingAuthorizationToken())
		return
	}

	user, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Admin confirms admin access. The role check happens in middleware.
func (h *Auth) Admin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "admin access granted"})
}

// UploadAvatar stores a new avatar image for the authenticated user.
func (h *Auth) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		handleError(w, apperrors.NewErrMissingAuthorizationToken())
		return
	}

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("avatar")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	user, err := h.authService.UploadAvatar(r.Context(), userID, file)
	if err != nil {
		h.logger.Error("Auth handler: avatar upload failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// GetAvatar streams a stored avatar. The endpoint is public: avatars are
// display images referenced from profile payloads.
func (h *Auth) GetAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		errorJSON(w, http.StatusNotFound, "not found")
		return
	}

	reader, err := h.authService.GetAvatar(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("Auth handler: avatar stream failed",
			"user_id", userID,
			"error", err.Error())
	}
}

// openSession issues the token pair, sets the refresh cookie and writes
// the session payload.
func (h *Auth) openSession(w http.ResponseWriter, r *http.Request, user model.User, status int) {
	access, refresh, err := h.tokenService.Issue(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("Auth handler: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.cookie.Set(w, refresh)
	writeJSON(w, status, sessionResponse{
		AccessToken: access,
		User:        toUserResponse(user),
	})
}
