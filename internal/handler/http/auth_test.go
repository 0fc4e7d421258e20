package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
)

func refreshCookieOf(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	return nil
}

func TestLogin(t *testing.T) {
	t.Run("success sets refresh cookie", func(t *testing.T) {
		var gotSession auth.SessionTrackingRequest
		svc := &fakeAuthService{
			login: func(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
				gotSession = session
				assert.Equal(t, "ana", req.Username)
				return auth.TokenResponse{
					AccessToken:           "access",
					RefreshToken:          "refresh-123",
					RefreshTokenExpiresIn: 4102444800,
					User:                  user.UserResponse{ID: "u1"},
				}, nil
			},
		}
		h := NewAuthHandler(newTestJWT(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"ana","password":"secret123"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "test-agent")
		req.RemoteAddr = "10.1.2.3:5555"
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		cookie := refreshCookieOf(w)
		require.NotNil(t, cookie)
		assert.Equal(t, "refresh-123", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "10.1.2.3", gotSession.IPAddress)
		assert.Equal(t, "test-agent", gotSession.UserAgent)

		resp := decodeBody(t, w)
		assert.Equal(t, true, resp["success"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			login: func(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
				return auth.TokenResponse{}, auth.ErrInvalidCredentials
			},
		}
		h := NewAuthHandler(newTestJWT(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"ana","password":"wrong"}`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, refreshCookieOf(w))
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewAuthHandler(newTestJWT(), &fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{`))
		w := httptest.NewRecorder()

		h.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogout(t *testing.T) {
	t.Run("cookie token is revoked and cleared", func(t *testing.T) {
		var revoked string
		svc := &fakeAuthService{
			logout: func(ctx context.Context, refreshToken string) error {
				revoked = refreshToken
				return nil
			},
		}
		h := NewAuthHandler(newTestJWT(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-abc"})
		w := httptest.NewRecorder()

		h.Logout(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "refresh-abc", revoked)
		cookie := refreshCookieOf(w)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	})

	t.Run("body token is accepted", func(t *testing.T) {
		var revoked string
		svc := &fakeAuthService{
			logout: func(ctx context.Context, refreshToken string) error {
				revoked = refreshToken
				return nil
			},
		}
		h := NewAuthHandler(newTestJWT(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", strings.NewReader(`{"refresh_token":"from-body"}`))
		w := httptest.NewRecorder()

		h.Logout(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "from-body", revoked)
	})

	t.Run("missing token", func(t *testing.T) {
		h := NewAuthHandler(newTestJWT(), &fakeAuthService{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		w := httptest.NewRecorder()

		h.Logout(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("reads cookie", func(t *testing.T) {
		svc := &fakeAuthService{
			refresh: func(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
				assert.Equal(t, "refresh-xyz", req.RefreshToken)
				return auth.AccessTokenResponse{AccessToken: "new-access", AccessTokenExpiresIn: 3600}, nil
			},
		}
		h := NewAuthHandler(newTestJWT(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-xyz"})
		w := httptest.NewRecorder()

		h.RefreshToken(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeBody(t, w)
		data, ok := resp["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "new-access", data["access_token"])
	})

	t.Run("revoked token", func(t *testing.T) {
		svc := &fakeAuthService{
			refresh: func(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
				return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
			},
		}
		h := NewAuthHandler(newTestJWT(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "old"})
		w := httptest.NewRecorder()

		h.RefreshToken(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
