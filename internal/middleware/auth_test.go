package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/hyno-health-api/internal/utils"
)

func newRouter(t *testing.T, mw func(*utils.TokenManager) gin.HandlerFunc) (*gin.Engine, *utils.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/whoami", mw(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c), "role": Role(c)})
	})
	return r, tokens
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, tokens := newRouter(t, AuthMiddleware)
	token, err := tokens.Generate("user-1", "patient")
	require.NoError(t, err)

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authorization header required"}`, w.Body.String())

	w = get(r, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())

	w = get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"user-1","role":"patient"}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	r, tokens := newRouter(t, OptionalAuth)
	token, err := tokens.Generate("user-1", "admin")
	require.NoError(t, err)

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"","role":""}`, w.Body.String())

	w = get(r, "Bearer broken")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"","role":""}`, w.Body.String())

	w = get(r, "Bearer "+token)
	assert.JSONEq(t, `{"userId":"user-1","role":"admin"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(tokens), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c), "role": Role(c)})
	})

	patient, err := tokens.Generate("user-1", "patient")
	require.NoError(t, err)
	admin, err := tokens.Generate("user-2", "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)

	w := get(r, "Bearer "+patient)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Permission denied."}`, w.Body.String())

	w = get(r, "Bearer "+admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"user-2","role":"admin"}`, w.Body.String())
}
