package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/madDev-12/fitnutrition/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvAPIURL, config.EnvAPIToken, config.EnvLogLevel} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.toml"), "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "https://fit.example.com/api"
token = "from-file"
timeout = "5s"

[cache]
size_mb = 8
ttl_seconds = 30

[search]
debounce = "250ms"

[log]
level = "info"
json = true

[profile]
age = 34
gender = "female"
height_cm = 168.5
activity_level = "moderate"
`), 0o600))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FITNUTRITION_API_TOKEN=from-dotenv\n"), 0o600))
	t.Setenv(config.EnvLogLevel, "debug")

	cfg, err := config.Load(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, "https://fit.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "from-dotenv", cfg.API.Token)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 8, cfg.Cache.SizeMB)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, config.Profile{Age: 34, Gender: "female", HeightCm: 168.5, ActivityLevel: "moderate"}, cfg.Profile)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\ntimeout = \"-1s\"\n"), 0o600))
	_, err := config.Load(path, "")
	assert.ErrorContains(t, err, "api.timeout")

	require.NoError(t, os.WriteFile(path, []byte("[api\n"), 0o600))
	_, err = config.Load(path, "")
	assert.ErrorContains(t, err, "read config")
}

func TestWriteAndEntries(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.API.Token = "secret"
	require.NoError(t, config.Write(path, cfg))
	assert.Error(t, config.Write(path, cfg), "existing config is never overwritten")

	loaded, err := config.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	entries := loaded.Entries()
	assert.Equal(t, [2]string{"api.token", "********"}, entries[1])
	assert.Equal(t, [2]string{"api.timeout", "12s"}, entries[2])
}
