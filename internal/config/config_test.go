package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	require.Empty(t, cfg.PostgresConn)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9090")
	t.Setenv("POSTGRES_CONN", "postgres://localhost/procurement?sslmode=disable")

	cfg := Load()
	require.Equal(t, "127.0.0.1:9090", cfg.ServerAddress)
	require.Equal(t, "postgres://localhost/procurement?sslmode=disable", cfg.PostgresConn)
}
