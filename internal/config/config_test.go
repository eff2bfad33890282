package config_test

import (
	"os"
	"path/filepath"
	"sentiment/internal/config"
	"sentiment/pkg/storage"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, 10*time.Second, cfg.HTTP.RequestTimeout)
	require.False(t, cfg.HTTP.HideErrorDetails)
	require.Equal(t, "https://www.wsb-analysis.ca", cfg.CORS.AllowOrigin)
	require.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", cfg.CORS.AllowMethods)
	require.Equal(t, "Content-Type, Authorization", cfg.CORS.AllowHeaders)
	require.False(t, cfg.CORS.ShortCircuitPreflight)
	require.Equal(t, storage.DriverMongo, cfg.StorageDriver)
	require.Empty(t, cfg.MongoDB.URI)
	require.Equal(t, "sentiment-analysis", cfg.MongoDB.Database)
	require.Equal(t, "posts", cfg.MongoDB.Collection)
	require.Equal(t, uint64(20), cfg.MongoDB.MaxPoolSize)
	require.Equal(t, 5*time.Second, cfg.MongoDB.ServerSelectionTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("HTTP_HIDE_ERROR_DETAILS", "true")
	t.Setenv("CORS_SHORT_CIRCUIT_PREFLIGHT", "true")
	t.Setenv("STORAGE_DRIVER", "postgres")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, "mongodb://db:27017", cfg.MongoDB.URI)
	require.True(t, cfg.HTTP.HideErrorDetails)
	require.True(t, cfg.CORS.ShortCircuitPreflight)
	require.Equal(t, storage.DriverPostgres, cfg.StorageDriver)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
http:
  addr: ":9090"
  hideErrorDetails: true
cors:
  shortCircuitPreflight: true
mongodb:
  database: other
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.True(t, cfg.HTTP.HideErrorDetails)
	require.True(t, cfg.CORS.ShortCircuitPreflight)
	require.Equal(t, "other", cfg.MongoDB.Database)
	require.Equal(t, "posts", cfg.MongoDB.Collection)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, storage.ErrUnknownDriver)
}
