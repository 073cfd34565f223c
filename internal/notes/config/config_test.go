package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeep/internal/notes/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, config.BackendLocal, cfg.Storage.Backend)
	assert.False(t, cfg.Storage.IsRemote())
	assert.Equal(t, "NOTES_DATA", cfg.Storage.NotesKey)
	assert.Equal(t, "SEARCH_HISTORY", cfg.Storage.HistoryKey)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5, cfg.Shutdown.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("NOTEKEEP_STORAGE_BACKEND", "remote")
	t.Setenv("NOTEKEEP_STORAGE_REMOTE_TIMEOUT", "2")
	t.Setenv("NOTEKEEP_POSTGRES_HOST", "db.internal")
	t.Setenv("NOTEKEEP_POSTGRES_PORT", "5433")
	t.Setenv("NOTEKEEP_HTTP_PORT", "9090")
	t.Setenv("NOTEKEEP_LOGGER_MODE", "production")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.Storage.IsRemote())
	assert.Equal(t, "2s", cfg.Storage.GetRemoteTimeout().String())
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Contains(t, cfg.Postgres.GetDSN(), "port=5433")
	assert.Contains(t, cfg.Postgres.GetConnectionURL(), "db.internal:5433")
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.GetAddress())
	assert.Equal(t, "production", cfg.Logging.Mode)
}
