package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, "data/deskflow.db", cfg.Database.Path)
	require.Equal(t, "deskflow-session", cfg.Auth.CookieName)
	require.Equal(t, 168, cfg.Auth.TokenTTLHours)
	require.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	require.False(t, cfg.Production())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DESKFLOW_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("DESKFLOW_AUTH_JWTSECRET", "a-real-secret")
	t.Setenv("DESKFLOW_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Equal(t, "a-real-secret", cfg.Auth.JWTSecret)
	require.True(t, cfg.Production())
}
