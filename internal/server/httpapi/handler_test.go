package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalev/accountd/internal/logging"
	"github.com/dkovalev/accountd/internal/server/auth"
	"github.com/dkovalev/accountd/internal/server/config"
	"github.com/dkovalev/accountd/internal/server/models"
	usersrepo "github.com/dkovalev/accountd/internal/server/repositories/users"
	"github.com/dkovalev/accountd/internal/server/users"
)

func setupTestServer(t *testing.T) (*gin.Engine, *usersrepo.InMemoryRepository, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Addr:                  ":0",
		SecretKey:             "test-secret",
		TokenIssuer:           "accountd",
		TokenAudience:         "accountd-clients",
		TokenValidityDuration: 15 * time.Minute,
	}

	repo := usersrepo.NewInMemoryRepository()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	srv := NewServer(logger, users.NewService(repo, cfg), cfg)

	return srv.Router(), repo, cfg
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWithToken(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSignupAndLoginFlow(t *testing.T) {
	r, _, _ := setupTestServer(t)

	creds := map[string]string{"email": "a@x.com", "password": "secret1"}

	w := postJSON(t, r, "/api/user/signup", creds)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User created successfully", decodeBody(t, w)["message"])

	w = postJSON(t, r, "/api/user/signup", creds)
	require.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, r, "/api/user/login", creds)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeBody(t, w)["token"].(string)
	assert.NotEmpty(t, token)

	w = postJSON(t, r, "/api/user/login", map[string]string{"email": "a@x.com", "password": "wrong"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = postJSON(t, r, "/api/user/login", map[string]string{"email": "ghost@x.com", "password": "secret1"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignup_MissingFields(t *testing.T) {
	r, _, _ := setupTestServer(t)

	w := postJSON(t, r, "/api/user/signup", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/user/signup", map[string]string{"password": "secret1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsers(t *testing.T) {
	r, repo, cfg := setupTestServer(t)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := repo.Insert(ctx, &models.User{
			Email:        fmt.Sprintf("u%d@x.com", i),
			PasswordHash: "hash",
		})
		require.NoError(t, err)
	}

	// no token
	w := getWithToken(t, r, "/api/user", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.GenerateToken([]byte(cfg.SecretKey), cfg.TokenIssuer, cfg.TokenAudience, time.Now(), cfg.TokenValidityDuration)
	require.NoError(t, err)

	w = getWithToken(t, r, "/api/user?perPageCount=3", token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["count"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 3)
	for _, item := range data {
		record := item.(map[string]any)
		assert.NotEmpty(t, record["id"])
		assert.NotEmpty(t, record["email"])
		_, exposed := record["password"]
		assert.False(t, exposed, "password must never appear in responses")
	}

	w = getWithToken(t, r, "/api/user?perPageCount=abc", token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserByID(t *testing.T) {
	r, repo, cfg := setupTestServer(t)

	created, err := repo.Insert(context.Background(), &models.User{Email: "a@x.com", PasswordHash: "hash"})
	require.NoError(t, err)

	token, err := auth.GenerateToken([]byte(cfg.SecretKey), cfg.TokenIssuer, cfg.TokenAudience, time.Now(), cfg.TokenValidityDuration)
	require.NoError(t, err)

	w := getWithToken(t, r, "/api/user/"+created.ID, token)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "a@x.com", data["email"])
	_, exposed := data["password"]
	assert.False(t, exposed)

	w = getWithToken(t, r, "/api/user/no-such-id", token)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	r, _, cfg := setupTestServer(t)

	expired, err := auth.GenerateToken([]byte(cfg.SecretKey), cfg.TokenIssuer, cfg.TokenAudience,
		time.Now().Add(-time.Hour), 15*time.Minute)
	require.NoError(t, err)

	w := getWithToken(t, r, "/api/user", expired)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
