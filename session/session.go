// Package session gates dashboard pages on the presence of the backend's
// access token cookie. The token is never validated here; the backend
// rejects stale sessions on the calls it receives.
package session

import (
	"net/http"

	"github.com/coreybb/bookpot-admin/apiclient"
)

const (
	CookieName = "accessToken"
	LoginPath  = "/login"
)

// Token returns the session token carried by r, if any.
func Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Gate reports whether r belongs to a signed-in staff member and, if so,
// returns the credentials to forward to the backend: the inbound Cookie
// header as received.
func Gate(r *http.Request) (apiclient.Credentials, bool) {
	if _, ok := Token(r); !ok {
		return apiclient.Credentials{}, false
	}
	return apiclient.Credentials{Cookie: r.Header.Get("Cookie")}, true
}

// Require redirects requests without a session to the login page.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Token(r); !ok {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Expire returns a cookie that removes the session token from the browser.
func Expire(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
