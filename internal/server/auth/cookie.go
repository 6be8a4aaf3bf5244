package auth

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
)

// SetTokenCookie stores token in the HTTP-only session cookie. secure marks
// the cookie HTTPS-only and must be true outside development.
func SetTokenCookie(w http.ResponseWriter, token string, validity time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(validity.Seconds()),
		Expires:  time.Now().Add(validity),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie instructs the browser to drop the session cookie. Tokens
// already copied elsewhere stay valid until they expire.
func ClearTokenCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest returns the session token carried by r, or "" when the
// cookie is absent.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(common.TokenCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
