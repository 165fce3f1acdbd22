package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobilityapi/internal/model"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORAGE_ROOT", "/srv/files")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join("/srv/files", "attachments"), cfg.Storage.Path(model.CategoryAttachment))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, "es", cfg.Locale)
	assert.Equal(t, "documentos.zip", cfg.ArchiveName)
	assert.Equal(t, 20, cfg.BodyLimitMB)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Len(t, cfg.Storage.Dirs(), 4)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("bad integer", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "invalid")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "ftp")
		_, err := Load()
		assert.ErrorContains(t, err, "unsupported storage backend")
	})

	t.Run("unknown timezone", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.ErrorContains(t, err, "APP_TIMEZONE")
	})
}
