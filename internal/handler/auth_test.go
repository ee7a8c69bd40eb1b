package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/caffebar919/server/internal/auth"
	"github.com/caffebar919/server/internal/middleware"
	"github.com/caffebar919/server/internal/model"
	"github.com/caffebar919/server/internal/service"
)

type singleUserRepo struct {
	user           *model.AdminUser
	lastLoginCalls int
}

func (r *singleUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}

func (r *singleUserRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, nil
}

func (r *singleUserRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	return nil, nil
}

func (r *singleUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	r.lastLoginCalls++
	return nil
}

func newAuthRouter(t *testing.T, ttl time.Duration) (http.Handler, *singleUserRepo, *auth.TokenManager) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &singleUserRepo{
		user: &model.AdminUser{
			ID:           "user-1",
			Username:     "admin",
			PasswordHash: string(hash),
		},
	}

	tokens := auth.NewTokenManager("auth-handler-test-secret", ttl)
	authService := service.NewAuthService(repo, tokens)
	h := NewAuthHandler(authService, middleware.NewLoginRateLimiter(nil), false)

	return h.Routes(), repo, tokens
}

func postLogin(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/login", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	t.Run("sets session cookie on success", func(t *testing.T) {
		router, repo, _ := newAuthRouter(t, 24*time.Hour)

		rec := postLogin(t, router, map[string]string{"username": "admin", "password": "correct-password"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool `json:"success"`
			User    struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "user-1", resp.User.ID)
		assert.Equal(t, "admin", resp.User.Username)
		assert.NotContains(t, rec.Body.String(), "password_hash")

		cookie := sessionCookie(t, rec)
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, "/", cookie.Path)
		assert.NotEmpty(t, cookie.Value)
		assert.Equal(t, 1, repo.lastLoginCalls)
	})

	t.Run("rejects wrong password without a cookie", func(t *testing.T) {
		router, _, _ := newAuthRouter(t, 24*time.Hour)

		rec := postLogin(t, router, map[string]string{"username": "admin", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, sessionCookie(t, rec))
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		router, _, _ := newAuthRouter(t, 24*time.Hour)

		rec := postLogin(t, router, map[string]string{"username": "nobody", "password": "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		router, _, _ := newAuthRouter(t, 24*time.Hour)

		for _, body := range []map[string]string{
			{"username": "admin"},
			{"password": "x"},
			{},
		} {
			rec := postLogin(t, router, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		}
	})
}

func TestSession(t *testing.T) {
	t.Run("reports authenticated with valid cookie", func(t *testing.T) {
		router, _, tokens := newAuthRouter(t, 24*time.Hour)
		token, err := tokens.Generate("user-1", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/session", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Authenticated bool `json:"authenticated"`
			User          struct {
				UserID   string `json:"userId"`
				Username string `json:"username"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Authenticated)
		assert.Equal(t, "user-1", resp.User.UserID)
		assert.Equal(t, "admin", resp.User.Username)
	})

	t.Run("returns 401 without cookie", func(t *testing.T) {
		router, _, _ := newAuthRouter(t, 24*time.Hour)

		req := httptest.NewRequest("GET", "/session", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	})

	t.Run("expired cookie is treated like no cookie", func(t *testing.T) {
		router, _, _ := newAuthRouter(t, 24*time.Hour)
		expired := auth.NewTokenManager("auth-handler-test-secret", -time.Minute)
		token, err := expired.Generate("user-1", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/session", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage cookie is treated like no cookie", func(t *testing.T) {
		router, _, _ := newAuthRouter(t, 24*time.Hour)

		req := httptest.NewRequest("GET", "/session", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "garbage"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	router, _, tokens := newAuthRouter(t, 24*time.Hour)
	token, err := tokens.Generate("user-1", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
