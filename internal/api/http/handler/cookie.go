package handler

import (
	"net/http"
	"time"
)

const (
	refreshCookieName = "refresh_token"
	// Path-restricted to the auth endpoints so the cookie never rides
	// along on task requests.
	refreshCookiePath = "/api/auth"
	refreshCookieTTL  = 7 * 24 * time.Hour
)

// RefreshCookie writes and clears the refresh-token cookie. The cookie
// is httpOnly in every environment; production additionally requires
// encrypted transport and allows cross-site presentation, matching a
// frontend and API on different origins.
type RefreshCookie struct {
	secure   bool
	sameSite http.SameSite
}

// NewRefreshCookie picks the cookie policy for the environment.
func NewRefreshCookie(production bool) RefreshCookie {
	if production {
		return RefreshCookie{secure: true, sameSite: http.SameSiteNoneMode}
	}
	return RefreshCookie{secure: false, sameSite: http.SameSiteLaxMode}
}

// Set attaches the refresh token to the response.
func (c RefreshCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
		MaxAge:   int(refreshCookieTTL.Seconds()),
	})
}

// Clear expires the refresh cookie.
func (c RefreshCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: c.sameSite,
		MaxAge:   -1,
	})
}

// Read returns the presented refresh token, empty when absent.
func (c RefreshCookie) Read(r *http.Request) string {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
