package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/docuvault/internal/auth"
	"github.com/lalith-99/docuvault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newTestRouter(secret string) (*gin.Engine, *auth.Identity) {
	gin.SetMode(gin.TestMode)
	captured := &auth.Identity{}

	r := gin.New()
	r.Use(AuthMiddleware(secret))
	r.GET("/protected", func(c *gin.Context) {
		*captured = GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, captured
}

func signedToken(t *testing.T, ttl time.Duration) (string, domain.User) {
	t.Helper()
	r := domain.NewUser("alice", "alice@example.com", "hash", domain.RoleAdmin)
	require.True(t, r.IsOk())
	token, err := auth.GenerateToken(r.Value(), testSecret, ttl)
	require.NoError(t, err)
	return token, r.Value()
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router, captured := newTestRouter(testSecret)
	token, user := signedToken(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, captured.UserID)
	assert.Equal(t, "alice", captured.Username)
	assert.True(t, captured.IsAdmin())
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router, _ := newTestRouter(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	router, _ := newTestRouter(testSecret)
	token, _ := signedToken(t, time.Hour)

	for _, header := range []string{token, "Basic " + token, "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	router, _ := newTestRouter("other-secret")
	token, _ := signedToken(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router, _ := newTestRouter(testSecret)
	token, _ := signedToken(t, -time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetIdentityWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	identity := GetIdentity(c)
	assert.Equal(t, auth.Identity{}, identity)
	assert.False(t, identity.IsAdmin())
}
