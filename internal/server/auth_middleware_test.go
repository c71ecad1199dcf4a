package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/server/authctx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

type staticRoles struct {
	role domain.UserRole
}

func (s staticRoles) Role(ctx context.Context, userID int64) domain.UserRole {
	return s.role
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func accessToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"sub":        "7",
		"email":      "clerk@example.com",
		"name":       "Clerk One",
		"token_type": "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
}

func TestAuthMiddleware(t *testing.T) {
	var captured *authctx.CurrentUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = authctx.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	mw := AuthMiddleware(testSecret, staticRoles{role: domain.RoleReader})(next)

	t.Run("valid token resolves identity and role", func(t *testing.T) {
		captured = nil
		req := httptest.NewRequest(http.MethodGet, "/consumers", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken(t))
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, captured)
		assert.Equal(t, int64(7), captured.ID)
		assert.Equal(t, "clerk@example.com", captured.Email)
		assert.Equal(t, "Clerk One", captured.Name)
		assert.Equal(t, domain.RoleReader, captured.Role)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/consumers", nil)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":        "7",
			"token_type": "access",
			"exp":        time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("another-secret"))
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/consumers", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token cannot be used for access", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":        "7",
			"token_type": "refresh",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/consumers", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":        "7",
			"token_type": "access",
			"exp":        time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/consumers", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		mw.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(role domain.UserRole, allowed ...domain.UserRole) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(authctx.WithCurrentUser(req.Context(), authctx.CurrentUser{ID: 1, Role: role}))
		rec := httptest.NewRecorder()
		RequireRole(allowed...)(next).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(domain.RoleAdmin, domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, serve(domain.RoleUser, domain.RoleAdmin, domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, serve(domain.RoleReader, domain.RoleAdmin, domain.RoleUser))
	assert.Equal(t, http.StatusForbidden, serve(domain.RoleReader, domain.RoleAdmin))

	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		RequireRole(domain.RoleAdmin)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
