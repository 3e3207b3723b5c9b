package middleware

import (
	"net/http"

	"github.com/Divyansh8843/TaskMaster/internal/apperrors"
	"github.com/Divyansh8843/TaskMaster/internal/logger"
	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// Authorize is a secondary gate layered on top of Authenticate: it loads
// the resolved user and checks the role set against the route's
// requirements.
type Authorize struct {
	userStore      model.UserStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthorize creates a new Authorize middleware instance.
func NewAuthorize(userStore model.UserStore, contextManager model.ContextManager, logger *logger.Logger) *Authorize {
	return &Authorize{userStore: userStore, contextManager: contextManager, logger: logger}
}

// RequireRoles passes the request through when the user carries at least
// one of the given roles. Must run after Authenticate.
func (m *Authorize) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := m.contextManager.GetUserIDFromContext(r.Context())
			if !ok {
				writeAPIError(w, apperrors.NewErrMissingAuthorizationToken())
				return
			}

			user, err := m.userStore.GetByID(r.Context(), userID)
			if err != nil {
				m.logger.Debug("Authorize middleware: failed to load user",
					"user_id", userID,
					"error", err.Error())
				writeAPIError(w, apperrors.NewErrForbidden())
				return
			}

			if !user.HasRole(roles...) {
				m.logger.Info("Authorize middleware: insufficient role",
					"user_id", userID,
					"required", roles)
				writeAPIError(w, apperrors.NewErrForbidden())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
