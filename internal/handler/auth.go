package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/caffebar919/server/internal/audit"
	"github.com/caffebar919/server/internal/middleware"
	"github.com/caffebar919/server/internal/service"
)

type AuthHandler struct {
	authService  *service.AuthService
	loginLimiter *middleware.LoginRateLimiter
	isProduction bool
}

func NewAuthHandler(
	authService *service.AuthService,
	loginLimiter *middleware.LoginRateLimiter,
	isProduction bool,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.loginLimiter.Handler).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)

	return r
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			audit.LogFromRequest(r, audit.Event{
				Type:     audit.EventLoginFailure,
				Username: req.Username,
			})
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
			return
		}

		log.Error().Err(err).Msg("login error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Login failed"})
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:     audit.EventLoginSuccess,
		UserID:   user.ID,
		Username: user.Username,
	})

	middleware.SetSessionCookie(w, token, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": map[string]string{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if claims := h.authService.ValidateToken(cookie.Value); claims != nil {
			audit.LogFromRequest(r, audit.Event{
				Type:     audit.EventLogout,
				UserID:   claims.UserID,
				Username: claims.Username,
			})
		}
	}

	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Session reports whether the caller holds a live session cookie. A missing,
// malformed, or expired cookie all produce the same 401.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
		return
	}

	claims := h.authService.ValidateToken(cookie.Value)
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]string{
			"userId":   claims.UserID,
			"username": claims.Username,
		},
	})
}
