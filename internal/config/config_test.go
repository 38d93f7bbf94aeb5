package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
port = 9090

[adsb]
source_url = "http://localhost:8181/api"
poll_interval_seconds = 5

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8181/api", cfg.ADSB.SourceURL)
	assert.Equal(t, 5, cfg.ADSB.PollIntervalSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Weather, cfg.Weather)
	assert.Equal(t, Default().Storage, cfg.Storage)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport ="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"empty source url", func(c *Config) { c.ADSB.SourceURL = "" }, true},
		{"zero poll interval", func(c *Config) { c.ADSB.PollIntervalSeconds = 0 }, true},
		{"negative radius", func(c *Config) { c.ADSB.SearchRadiusKm = -1 }, true},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "15s", cfg.ADSB.PollInterval().String())
	assert.Equal(t, "10s", cfg.ADSB.RequestTimeout().String())
	assert.Equal(t, "24h0m0s", cfg.Storage.TrackRetention().String())
	assert.Equal(t, "10m0s", cfg.Weather.RefreshInterval().String())
}
