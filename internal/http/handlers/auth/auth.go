package auth

import (
	"net/http"
	"strings"
	"time"
	"ums/internal/core/domain/user"
	"ums/internal/core/services/auth"
)

const (
	AUTH_TOKEN_PREFIX   = "Bearer "
	AUTH_TOKEN_MAX_LEN  = 1024
	SESSION_COOKIE_NAME = "session"
	SESSION_COOKIE_TTL  = 30 * 24 * time.Hour
)

// ParseToken reads the session token from the Authorization header, falling back to the session cookie.
func ParseToken(r *http.Request) (token user.SessionToken, ok bool) {
	if header := r.Header.Get("authorization"); header != "" {
		parts := strings.SplitN(header, AUTH_TOKEN_PREFIX, 2)
		if len(parts) != 2 || parts[1] == "" || len(parts[1]) > AUTH_TOKEN_MAX_LEN {
			return token, false
		}
		return user.SessionToken(parts[1]), true
	}

	cookie, err := r.Cookie(SESSION_COOKIE_NAME)
	if err != nil || cookie.Value == "" || len(cookie.Value) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(cookie.Value), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			r = r.WithContext(auth.WithAuthToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

func SetSessionCookie(rw http.ResponseWriter, token user.SessionToken, secure bool) {
	http.SetCookie(rw, &http.Cookie{
		Name:     SESSION_COOKIE_NAME,
		Value:    string(token),
		Path:     "/",
		MaxAge:   int(SESSION_COOKIE_TTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(rw http.ResponseWriter, secure bool) {
	http.SetCookie(rw, &http.Cookie{
		Name:     SESSION_COOKIE_NAME,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
