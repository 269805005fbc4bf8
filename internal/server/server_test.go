package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"notevault-be/internal/bootstrap"
	"notevault-be/internal/config"
	"notevault-be/internal/dto"
	"notevault-be/internal/repository/memory"
	"notevault-be/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "test.log"),
			CorsAllowedOrigins: "http://localhost:5173",
		},
		Auth: config.AuthConfig{
			JWTSecret: "e2e-test-secret",
			TokenTTL:  time.Hour,
		},
	}

	container := bootstrap.NewContainerWithFactory(memory.NewRepositoryFactory(), cfg, nil)
	t.Cleanup(func() { container.Logger.Sync() })

	return server.New(cfg, container).GetApp()
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func doJSONList(t *testing.T, app *fiber.App, path, bearer string) (*http.Response, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded []map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp, decoded
}

func registerUser(t *testing.T, app *fiber.App, username, email, password string) (token string, id string) {
	t.Helper()

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, body["token"])
	return body["token"].(string), body["id"].(string)
}

func TestNoteLifecycle(t *testing.T) {
	app := newTestApp(t)

	token, userID := registerUser(t, app, "alice", "alice@example.com", "secret1")

	resp, list := doJSONList(t, app, "/api/notes", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list)

	resp, created := doJSON(t, app, http.MethodPost, "/api/notes", token, dto.CreateNoteRequest{
		Title:   "groceries",
		Content: "milk, eggs",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "groceries", created["title"])
	assert.Equal(t, "milk, eggs", created["content"])
	assert.Equal(t, userID, created["user_id"])
	noteID := created["id"].(string)

	resp, list = doJSONList(t, app, "/api/notes", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, noteID, list[0]["id"])

	resp, shown := doJSON(t, app, http.MethodGet, "/api/notes/"+noteID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "groceries", shown["title"])

	resp, updated := doJSON(t, app, http.MethodPut, "/api/notes/"+noteID, token, dto.UpdateNoteRequest{
		Title:   "groceries v2",
		Content: "milk, eggs, bread",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "groceries v2", updated["title"])
	assert.Equal(t, "milk, eggs, bread", updated["content"])

	resp, deleted := doJSON(t, app, http.MethodDelete, "/api/notes/"+noteID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "note deleted", deleted["message"])

	resp, list = doJSONList(t, app, "/api/notes", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list)
}

func TestRegister_DuplicateAndInvalid(t *testing.T) {
	app := newTestApp(t)

	registerUser(t, app, "bob", "bob@example.com", "hunter22")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "bob2", Email: "bob@example.com", Password: "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "user already exists with this email or username", body["message"])

	// Validation failure, email is malformed.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Username: "carol", Email: "not-an-email", Password: "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
}

func TestLogin_BadCredentials(t *testing.T) {
	app := newTestApp(t)

	registerUser(t, app, "dave", "dave@example.com", "correct-horse")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "dave@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["message"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: "nobody@example.com", Password: "correct-horse",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["message"])
}

func TestMe(t *testing.T) {
	app := newTestApp(t)

	token, userID := registerUser(t, app, "erin", "erin@example.com", "passw0rd")

	resp, body := doJSON(t, app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID, body["id"])
	assert.Equal(t, "erin", body["username"])
	assert.Equal(t, "erin@example.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "token")
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "not authorized, no token", body["message"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "not authorized, token failed", body["message"])
}

func TestCrossUserAccess(t *testing.T) {
	app := newTestApp(t)

	aliceToken, _ := registerUser(t, app, "alice", "alice@example.com", "secret1")
	bobToken, _ := registerUser(t, app, "bob", "bob@example.com", "secret2")

	resp, created := doJSON(t, app, http.MethodPost, "/api/notes", aliceToken, dto.CreateNoteRequest{
		Title: "private", Content: "alice only",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	noteID := created["id"].(string)

	resp, body := doJSON(t, app, http.MethodGet, "/api/notes/"+noteID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "not authorized to access this resource", body["message"])

	resp, _ = doJSON(t, app, http.MethodPut, "/api/notes/"+noteID, bobToken, dto.UpdateNoteRequest{
		Title: "stolen", Content: "x",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/notes/"+noteID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Bob's listing never includes Alice's note.
	resp, list := doJSONList(t, app, "/api/notes", bobToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list)
}

func TestNoteNotFound(t *testing.T) {
	app := newTestApp(t)

	token, _ := registerUser(t, app, "frank", "frank@example.com", "secret1")

	resp, body := doJSON(t, app, http.MethodGet, "/api/notes/7b0f4a9e-7a68-4f2a-bb1c-0a2f5f1c9d11", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["message"])

	// Non-UUID ids behave like missing notes, not server errors.
	resp, body = doJSON(t, app, http.MethodGet, "/api/notes/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
}

func TestNoteValidation(t *testing.T) {
	app := newTestApp(t)

	token, _ := registerUser(t, app, "gina", "gina@example.com", "secret1")

	resp, body := doJSON(t, app, http.MethodPost, "/api/notes", token, dto.CreateNoteRequest{
		Title: "", Content: "body without title",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["message"])
}
