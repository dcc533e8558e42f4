package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/attendance-be/internal/config"
	"github.com/hongminglow/attendance-be/internal/storage/memory"
)

func testConfig(guarded bool) config.Config {
	return config.Config{
		Env:               "test",
		Port:              "0",
		StorageDriver:     config.DriverMemory,
		JWTSecret:         "test-secret",
		JWTIssuer:         "attendance-test",
		JWTTTL:            time.Hour,
		CORSOrigins:       []string{"*"},
		PasswordHashing:   config.HashingPlaintext,
		Location:          time.UTC,
		StoreTimeout:      time.Second,
		AdminAuthRequired: guarded,
		AdminEmail:        "boss@example.com",
		AdminPassword:     "root",
	}
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	srv := New(cfg, memory.NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, srv.Bootstrap(context.Background()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServerWiringWithAdminGuard(t *testing.T) {
	ts := newTestServer(t, testConfig(true))

	resp := get(t, ts.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Attendance API is running", string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = get(t, ts.URL+"/admin/pending", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// the seeded admin logs in with the plaintext hasher selected by config
	raw, err := json.Marshal(map[string]string{"email": "boss@example.com", "password": "root"})
	require.NoError(t, err)
	loginResp, err := http.Post(ts.URL+"/login", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(loginResp.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	resp = get(t, ts.URL+"/admin/pending", login.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerWiringWithoutAdminGuard(t *testing.T) {
	ts := newTestServer(t, testConfig(false))

	resp := get(t, ts.URL+"/admin/pending", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBootstrapWithoutAdminIsNoop(t *testing.T) {
	cfg := testConfig(false)
	cfg.AdminEmail, cfg.AdminPassword = "", ""
	srv := New(cfg, memory.NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, srv.Bootstrap(context.Background()))
}
