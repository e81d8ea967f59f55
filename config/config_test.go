package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_URI", "postgres://localhost/joblynk")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("STORAGE_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 5*time.Minute, cfg.JobCacheTTL)
	assert.Equal(t, time.Minute, cfg.JobExpiryInterval)
	assert.Equal(t, "s3", cfg.Storage.Provider)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadBytes)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_URI", "postgres://localhost/joblynk")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JOB_EXPIRY_INTERVAL", "0s")
	t.Setenv("STORAGE_PROVIDER", "GCS")
	t.Setenv("FE_HOST", "https://joblynk.example/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Zero(t, cfg.JobExpiryInterval)
	assert.Equal(t, "gcs", cfg.Storage.Provider)
	assert.Equal(t, "https://joblynk.example", cfg.FrontendHost)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("POSTGRES_URI", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("JOB_CACHE_TTL", "soon")
	t.Setenv("STORAGE_PROVIDER", "ftp")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_URI")
	assert.Contains(t, err.Error(), "DB_MAX_OPEN_CONNS")
	assert.Contains(t, err.Error(), "JOB_CACHE_TTL")
	assert.Contains(t, err.Error(), "STORAGE_PROVIDER")
}
