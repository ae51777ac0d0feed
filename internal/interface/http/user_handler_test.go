package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/igorsily/users-api/internal/application"
	"github.com/igorsily/users-api/internal/infrastructure/inmemory"
	handlers "github.com/igorsily/users-api/internal/interface/http"
	"github.com/igorsily/users-api/internal/interface/middleware"
	"github.com/igorsily/users-api/internal/router"
	"github.com/igorsily/users-api/internal/router/modules"
	"github.com/igorsily/users-api/pkg/helpers"
	"github.com/igorsily/users-api/pkg/validation"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	repo := inmemory.NewUserRepository()
	svc := userapp.NewService(repo, nil, nil, nil, "")
	handler := handlers.NewUserHandler(svc)
	jwt := helpers.NewJWTManager(strings.Repeat("s", 32), 0)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.ErrorHandler(nil))

	reg := router.NewRegistry(engine)
	reg.Add(modules.NewUserModule(handler, jwt))
	reg.RegisterAll()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func createBody(email, username string) map[string]any {
	return map[string]any{
		"email":     email,
		"username":  username,
		"password":  "password123",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	}
}

func TestCreateUserReturns201WithoutPasswordHash(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", createBody("ada@example.com", "ada"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotEmpty(t, raw["id"])
	assert.Equal(t, "ada@example.com", raw["email"])
	assert.Equal(t, "ada", raw["username"])
	assert.Equal(t, "Ada", raw["firstName"])

	_, leaked := raw["passwordHash"]
	assert.False(t, leaked, "response must not expose the password hash")
	assert.NotContains(t, rec.Body.String(), "password_hash")
}

func TestCreateUserDuplicateEmailReturns409(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", createBody("ada@example.com", "ada"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/users", createBody("ada@example.com", "other"))
	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CONFLICT", body["error"])
	assert.Equal(t, "Email already exists", body["message"])
	assert.EqualValues(t, http.StatusConflict, body["statusCode"])
}

func TestCreateUserShortPasswordReturns400WithIssues(t *testing.T) {
	engine := newTestServer(t)

	payload := createBody("ada@example.com", "ada")
	payload["password"] = "short"
	rec := doJSON(t, engine, http.MethodPost, "/api/users", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string `json:"error"`
		Issues []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error)
	require.NotEmpty(t, body.Issues)

	fields := make([]string, 0, len(body.Issues))
	for _, issue := range body.Issues {
		fields = append(fields, issue.Field)
	}
	assert.Contains(t, fields, "password")
}

func TestGetUserMalformedIDReturns400(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/users/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}

func TestGetUserUnknownIDReturns404(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/users/2d1f8a48-7a30-4e8f-9f2b-48b14e6ad9a1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body["error"])
	assert.Equal(t, "User not found", body["message"])
}

func TestUpdateUserPartialMerge(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", createBody("ada@example.com", "ada"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"].(string)

	rec = doJSON(t, engine, http.MethodPatch, "/api/users/"+id, map[string]any{"firstName": "Augusta"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Augusta", updated["firstName"])
	assert.Equal(t, "Lovelace", updated["lastName"])
	assert.Equal(t, "ada@example.com", updated["email"])
}

func TestDeleteUserReturns204ThenGone(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/users", createBody("ada@example.com", "ada"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"].(string)

	rec = doJSON(t, engine, http.MethodDelete, "/api/users/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doJSON(t, engine, http.MethodDelete, "/api/users/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/users/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUsersDefaultsAndPaging(t *testing.T) {
	engine := newTestServer(t)

	for _, u := range []string{"ada", "grace", "edsger"} {
		rec := doJSON(t, engine, http.MethodPost, "/api/users", createBody(u+"@example.com", u))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, engine, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 3)

	rec = doJSON(t, engine, http.MethodGet, "/api/users?page=2&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = doJSON(t, engine, http.MethodGet, "/api/users?page=0", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
