package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorsily/users-api/internal/interface/middleware"
	"github.com/igorsily/users-api/pkg/helpers"
)

func newAuthServer(t *testing.T, jwt *helpers.JWTManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(middleware.ErrorHandler(nil))
	engine.GET("/protected", middleware.Auth(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(middleware.CtxUserIDKey)})
	})
	return engine
}

func doGet(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthMissingHeaderReturns401(t *testing.T) {
	jwt := helpers.NewJWTManager(strings.Repeat("s", 32), time.Hour)
	engine := newAuthServer(t, jwt)

	rec := doGet(engine, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body["error"])
	assert.Equal(t, "Invalid or missing token", body["message"])
	assert.EqualValues(t, http.StatusUnauthorized, body["statusCode"])
}

func TestAuthMalformedHeaderReturns401(t *testing.T) {
	jwt := helpers.NewJWTManager(strings.Repeat("s", 32), time.Hour)
	engine := newAuthServer(t, jwt)

	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		rec := doGet(engine, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthWrongSecretReturns401(t *testing.T) {
	signer := helpers.NewJWTManager(strings.Repeat("a", 32), time.Hour)
	verifier := helpers.NewJWTManager(strings.Repeat("b", 32), time.Hour)
	engine := newAuthServer(t, verifier)

	token, _, err := signer.Generate("2d1f8a48-7a30-4e8f-9f2b-48b14e6ad9a1")
	require.NoError(t, err)

	rec := doGet(engine, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthValidTokenInjectsUserID(t *testing.T) {
	jwt := helpers.NewJWTManager(strings.Repeat("s", 32), time.Hour)
	engine := newAuthServer(t, jwt)

	token, _, err := jwt.Generate("2d1f8a48-7a30-4e8f-9f2b-48b14e6ad9a1")
	require.NoError(t, err)

	rec := doGet(engine, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2d1f8a48-7a30-4e8f-9f2b-48b14e6ad9a1", body["userID"])
}
