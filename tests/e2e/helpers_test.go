//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sujay090/Dynamic-form-sub001/internal/adapter/postgres/testhelper"
	"github.com/sujay090/Dynamic-form-sub001/internal/app"
	"github.com/sujay090/Dynamic-form-sub001/internal/auth"
	"github.com/sujay090/Dynamic-form-sub001/internal/config"
)

const (
	testSecret = "test-secret-at-least-32-chars-long!!"
	testIssuer = "test-issuer"
)

type testServer struct {
	URL    string
	Client *http.Client
	tokens *auth.Verifier
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer wires the full stack against the shared test database.
// Storage is left unconfigured, so file uploads are rejected.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: testSecret, JWTIssuer: testIssuer, AdminRole: "admin"},
		Forms: config.FormsConfig{
			BooleanFields: []string{"isActive", "isRegistered", "completedCourse"},
			FetchTimeout:  5 * time.Second,
			MaxUploadMB:   1,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}

	svc, err := app.NewServices(context.Background(), cfg, pool, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(app.NewHandler(cfg, svc, logger))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		tokens: auth.NewVerifier(testSecret, testIssuer),
	}
}

func (ts *testServer) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := ts.tokens.Issue(uuid.New(), role, time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends body as JSON (unless it is an io.Reader) and decodes a JSON reply
// into out when out is non-nil.
func (ts *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// uniqueCode returns a value no other test submits.
func uniqueCode(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}
