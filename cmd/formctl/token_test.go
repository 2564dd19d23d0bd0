package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujay090/Dynamic-form-sub001/internal/auth"
	"github.com/sujay090/Dynamic-form-sub001/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: strings.Repeat("s", 32),
			JWTIssuer: "institute-admin",
			AdminRole: "admin",
		},
	}
}

func run(t *testing.T, load func() (*config.Config, error), args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmdWith(&env{out: &out, load: load})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCmd(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	subject := uuid.New()
	out, err := run(t, func() (*config.Config, error) { return cfg, nil },
		"token", "--subject", subject.String())
	require.NoError(t, err)

	gotID, gotRole, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer).
		ValidateToken(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, subject, gotID)
	assert.Equal(t, "admin", gotRole)
}

func TestTokenCmd_Errors(t *testing.T) {
	t.Parallel()

	_, err := run(t, func() (*config.Config, error) { return testConfig(), nil }, "token", "--subject", "nope")
	assert.ErrorContains(t, err, "invalid --subject")

	loadErr := errors.New("config: validate: auth.jwt_secret must be at least 32 characters")
	_, err = run(t, func() (*config.Config, error) { return nil, loadErr }, "token")
	assert.ErrorIs(t, err, loadErr)

	_, err = run(t, func() (*config.Config, error) { return testConfig(), nil }, "forms", "schema")
	assert.Error(t, err)
}
