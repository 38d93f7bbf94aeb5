package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/skysight-labs/runwaycast/internal/geodesy"
	"github.com/skysight-labs/runwaycast/internal/runways"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

// Winds at or below this speed are treated as calm; calm wind favors
// neither configuration.
const calmWindThresholdKt = 3.0

// Service fetches and caches the airport METAR.
type Service struct {
	httpClient      *http.Client
	baseURL         string
	refreshInterval time.Duration
	cache           *Cache
	logger          *logger.Logger
}

// NewService creates a weather service.
func NewService(baseURL string, refreshInterval, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{
		httpClient:      &http.Client{Timeout: timeout},
		baseURL:         baseURL,
		refreshInterval: refreshInterval,
		cache:           NewCache(),
		logger:          log.Named("weather"),
	}
}

// Start refreshes the cache on a fixed interval until the context is
// cancelled.
func (s *Service) Start(ctx context.Context) {
	s.refresh(ctx)

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// Report returns the latest cached weather report, which may be nil before
// the first successful fetch.
func (s *Service) Report() *Report {
	return s.cache.Get()
}

func (s *Service) refresh(ctx context.Context) {
	report := &Report{LastUpdated: time.Now().UTC()}

	metar, err := s.fetchMETAR(ctx)
	if err != nil {
		s.logger.Warn("METAR fetch failed", logger.Error(err))
		report.FetchError = err.Error()
		// Keep the previous observation visible alongside the error
		if prev := s.cache.Get(); prev != nil {
			report.METAR = prev.METAR
			report.Favored = prev.Favored
		}
	} else {
		report.METAR = metar
		report.Favored = FavoredConfiguration(metar)
	}

	s.cache.Set(report, s.refreshInterval*2)
}

// metarResponse mirrors one observation from the weather API. Wind
// direction may be a number or the string "VRB".
type metarResponse struct {
	ICAOID string      `json:"icaoId"`
	RawOb  string      `json:"rawOb"`
	Temp   float64     `json:"temp"`
	WDir   interface{} `json:"wdir"`
	WSpd   *float64    `json:"wspd"`
}

func (s *Service) fetchMETAR(ctx context.Context) (*METAR, error) {
	url := fmt.Sprintf("%s/metar?ids=%s&format=json", s.baseURL, runways.Airport.ICAO)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var observations []metarResponse
	if err := json.Unmarshal(body, &observations); err != nil {
		return nil, fmt.Errorf("failed to parse METAR response: %w", err)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("no METAR available for %s", runways.Airport.ICAO)
	}

	obs := observations[0]
	metar := &METAR{
		StationID:   obs.ICAOID,
		RawText:     obs.RawOb,
		Temperature: obs.Temp,
		WindSpeedKt: obs.WSpd,
	}
	switch dir := obs.WDir.(type) {
	case float64:
		metar.WindDirDeg = &dir
	case string:
		metar.VariableWind = dir == "VRB"
	}

	return metar, nil
}

// FavoredConfiguration returns the configuration the surface wind favors:
// aircraft land into the wind, so a westerly wind favors the 25s. Calm,
// variable or unreported wind favors neither.
func FavoredConfiguration(m *METAR) *runways.Configuration {
	if m == nil || m.WindDirDeg == nil || m.VariableWind {
		return nil
	}
	if m.WindSpeedKt != nil && *m.WindSpeedKt <= calmWindThresholdKt {
		return nil
	}

	config := runways.Easterly
	if math.Abs(geodesy.AngleDiffDeg(*m.WindDirDeg, 249)) < 90 {
		config = runways.Westerly
	}
	return &config
}
