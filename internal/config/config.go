// Package config loads the TOML service configuration. The prediction
// engine's thresholds are deliberately not configurable; this covers the
// service plumbing around it.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level service configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	ADSB    ADSBConfig    `toml:"adsb"`
	Storage StorageConfig `toml:"storage"`
	Weather WeatherConfig `toml:"weather"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	StaticFilesDir     string   `toml:"static_files_dir"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ADSBConfig holds the telemetry source settings. The source is expected to
// speak the OpenSky states API.
type ADSBConfig struct {
	SourceURL             string  `toml:"source_url"`
	APIToken              string  `toml:"api_token"`
	PollIntervalSeconds   int     `toml:"poll_interval_seconds"`
	RequestTimeoutSeconds int     `toml:"request_timeout_seconds"`
	SearchRadiusKm        float64 `toml:"search_radius_km"`
}

// PollInterval returns the poll interval as a duration.
func (c ADSBConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// RequestTimeout returns the request timeout as a duration.
func (c ADSBConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// StorageConfig holds the track history database settings.
type StorageConfig struct {
	Path                string `toml:"path"`
	TrackRetentionHours int    `toml:"track_retention_hours"`
}

// TrackRetention returns the retention window as a duration.
func (c StorageConfig) TrackRetention() time.Duration {
	return time.Duration(c.TrackRetentionHours) * time.Hour
}

// WeatherConfig holds the METAR source settings.
type WeatherConfig struct {
	APIBaseURL             string `toml:"api_base_url"`
	RefreshIntervalMinutes int    `toml:"refresh_interval_minutes"`
	RequestTimeoutSeconds  int    `toml:"request_timeout_seconds"`
}

// RefreshInterval returns the refresh interval as a duration.
func (c WeatherConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMinutes) * time.Minute
}

// RequestTimeout returns the request timeout as a duration.
func (c WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Default returns the configuration used when a field is absent from the
// config file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			StaticFilesDir: "static",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		ADSB: ADSBConfig{
			SourceURL:             "https://opensky-network.org/api",
			PollIntervalSeconds:   15,
			RequestTimeoutSeconds: 10,
			SearchRadiusKm:        120,
		},
		Storage: StorageConfig{
			Path:                "runwaycast.db",
			TrackRetentionHours: 24,
		},
		Weather: WeatherConfig{
			APIBaseURL:             "https://aviationweather.gov/api/data",
			RefreshIntervalMinutes: 10,
			RequestTimeoutSeconds:  10,
		},
	}
}

// Load reads the configuration file at path, applying defaults for missing
// fields. A missing file returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.ADSB.SourceURL == "" {
		return fmt.Errorf("adsb source_url must be set")
	}
	if c.ADSB.PollIntervalSeconds <= 0 {
		return fmt.Errorf("adsb poll_interval_seconds must be positive")
	}
	if c.ADSB.SearchRadiusKm <= 0 {
		return fmt.Errorf("adsb search_radius_km must be positive")
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path must be set")
	}
	return nil
}
