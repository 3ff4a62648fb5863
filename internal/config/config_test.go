package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, "backend:\n  base_url: https://hrms.example.com/api\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://hrms.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "https://api.cloudinary.com", cfg.Upload.BaseURL)
	assert.EqualValues(t, 200, cfg.Upload.MinSizeKB)
	assert.EqualValues(t, 500, cfg.Upload.MaxSizeKB)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: https://hrms.example.com/api
  timeout: 10s
upload:
  folder: medical-certificates
  min_size_kb: 100
  max_size_kb: 1024
logger:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "medical-certificates", cfg.Upload.Folder)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HRMS_BASE_URL", "https://env.example.com/api")

	path := writeConfig(t, "backend:\n  base_url: https://file.example.com/api\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.Backend.BaseURL)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: info\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.base_url is required")
}

func TestLoad_InvertedSizeBounds(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: https://hrms.example.com/api
upload:
  min_size_kb: 500
  max_size_kb: 200
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size bounds")
}

func TestUploadConfig_Constraint(t *testing.T) {
	u := UploadConfig{
		MinSizeKB:    200,
		MaxSizeKB:    500,
		AllowedTypes: []string{"image/png", "application/pdf"},
	}

	c := u.Constraint()
	assert.True(t, c.AllowsType("image/png"))
	assert.False(t, c.AllowsType("image/gif"))
	assert.True(t, c.AllowsSize(200*1024))
	assert.True(t, c.AllowsSize(500*1024))
	assert.False(t, c.AllowsSize(500*1024+1))
}
