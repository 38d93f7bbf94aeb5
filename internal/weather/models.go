// Package weather polls the current METAR for the airport and reports which
// landing configuration the surface wind favors. This is a display aid: the
// configuration detector works purely from observed traffic and never reads
// wind data.
package weather

import (
	"sync"
	"time"

	"github.com/skysight-labs/runwaycast/internal/runways"
)

// METAR is the subset of the aviation weather report the service uses.
type METAR struct {
	StationID    string   `json:"icaoId"`
	RawText      string   `json:"rawOb"`
	Temperature  float64  `json:"temp"`
	WindDirDeg   *float64 `json:"-"`
	WindSpeedKt  *float64 `json:"-"`
	VariableWind bool     `json:"-"`
}

// Report is what the API serves: the observation plus the wind-favored
// configuration.
type Report struct {
	METAR       *METAR                 `json:"metar,omitempty"`
	Favored     *runways.Configuration `json:"wind_favored_configuration,omitempty"`
	LastUpdated time.Time              `json:"last_updated"`
	FetchError  string                 `json:"fetch_error,omitempty"`
}

// Cache holds the latest report with an expiry.
type Cache struct {
	mu        sync.RWMutex
	report    *Report
	expiresAt time.Time
}

// NewCache creates an empty weather cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached report, which may be nil before the first fetch.
func (c *Cache) Get() *Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report
}

// Set stores a report with the given time to live.
func (c *Cache) Set(report *Report, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report = report
	c.expiresAt = time.Now().Add(ttl)
}

// IsExpired reports whether the cached data is stale.
func (c *Cache) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.report == nil || time.Now().After(c.expiresAt)
}
