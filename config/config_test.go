package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1816, cfg.Web.Port)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "vendorhub.yml")
	content := []byte(`
system:
  workdir: /tmp/vh
database:
  type: sqlite
  name: vendorhub.db
web:
  port: 9000
`)
	require.NoError(t, os.WriteFile(cfile, content, 0o600))

	t.Setenv("VENDORHUB_WEB_PORT", "9100")
	t.Setenv("VENDORHUB_DB_DEBUG", "true")

	cfg, err := LoadConfig(cfile)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vh", cfg.System.Workdir)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "vendorhub.db", cfg.Database.Name)
	assert.Equal(t, 9100, cfg.Web.Port)
	assert.True(t, cfg.Database.Debug)
	// untouched sections keep their defaults
	assert.Equal(t, "development", cfg.Logger.Mode)
	assert.Equal(t, "/tmp/vh/logs", cfg.GetLogDir())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
