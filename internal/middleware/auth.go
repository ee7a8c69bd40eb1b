package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/caffebar919/server/internal/audit"
	"github.com/caffebar919/server/internal/auth"
	"github.com/caffebar919/server/internal/service"
)

type contextKey string

const SessionContextKey contextKey = "session"

const (
	SessionCookie = "admin-session"
	SessionMaxAge = 24 * time.Hour
)

func GetSession(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(SessionContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// AuthMiddleware guards mutating routes. It accepts the session token as a
// bearer header or, failing that, from the session cookie, so the admin page
// and scripted API clients authenticate the same way.
type AuthMiddleware struct {
	authService *service.AuthService
}

func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventAuthFailure,
				Details: map[string]interface{}{"path": r.URL.Path, "reason": "missing_token"},
			})
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Missing authentication token",
			})
			return
		}

		claims := m.authService.ValidateToken(token)
		if claims == nil {
			log.Warn().Str("path", r.URL.Path).Msg("auth middleware: invalid or expired token")
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventAuthFailure,
				Details: map[string]interface{}{"path": r.URL.Path, "reason": "invalid_token"},
			})
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Invalid token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest pulls the session token from the Authorization header,
// falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if token, err := auth.TokenFromHeader(r.Header.Get("Authorization")); err == nil {
		return token
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}

	return ""
}

func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
