// Package adsb polls the ADS-B telemetry source and drives the prediction
// pipeline once per cycle.
package adsb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skysight-labs/runwaycast/internal/prediction"
	"github.com/skysight-labs/runwaycast/internal/runways"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

// Client fetches state vectors from an OpenSky-style states API, constrained
// to a bounding box around the airport.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	bbox       boundingBox
	logger     *logger.Logger
}

type boundingBox struct {
	latMin, latMax float64
	lonMin, lonMax float64
}

// NewClient creates a telemetry client covering radiusKm around the airport
// reference point.
func NewClient(baseURL, apiToken string, radiusKm float64, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		bbox:       bboxAround(runways.Airport.Position.Lat, runways.Airport.Position.Lon, radiusKm),
		logger:     log.Named("adsb-client"),
	}
}

// bboxAround returns a lat/lon box extending radiusKm in each direction from
// the given point.
func bboxAround(lat, lon, radiusKm float64) boundingBox {
	dLat := radiusKm / 111.32
	dLon := radiusKm / (111.32 * math.Cos(lat*math.Pi/180))
	return boundingBox{
		latMin: lat - dLat,
		latMax: lat + dLat,
		lonMin: lon - dLon,
		lonMax: lon + dLon,
	}
}

// statesResponse mirrors the JSON shape of /states/all. Each state is a
// positional array, with nulls for unreported fields.
type statesResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

// FetchStates retrieves current state vectors inside the bounding box and
// converts them to FlightStates. Records without a position and aircraft on
// the ground are dropped here, before the engine ever sees them.
func (c *Client) FetchStates(ctx context.Context) ([]*prediction.FlightState, error) {
	q := url.Values{}
	q.Set("lamin", fmt.Sprintf("%.4f", c.bbox.latMin))
	q.Set("lamax", fmt.Sprintf("%.4f", c.bbox.latMax))
	q.Set("lomin", fmt.Sprintf("%.4f", c.bbox.lonMin))
	q.Set("lomax", fmt.Sprintf("%.4f", c.bbox.lonMax))
	reqURL := c.baseURL + "/states/all?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	c.logger.Debug("Fetching state vectors", logger.String("url", reqURL))

	resp, err := c.httpClient.Do(req)
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

	var raw statesResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	flights := parseStates(raw)

	c.logger.Debug("Fetched state vectors",
		logger.Int("raw_count", len(raw.States)),
		logger.Int("usable_count", len(flights)),
	)

	return flights, nil
}

// State vector field indexes, per the OpenSky states API.
const (
	fieldICAO24       = 0
	fieldCallsign     = 1
	fieldLongitude    = 5
	fieldLatitude     = 6
	fieldBaroAltitude = 7
	fieldOnGround     = 8
	fieldVelocity     = 9
	fieldTrueTrack    = 10
	fieldVerticalRate = 11
)

func parseStates(raw statesResponse) []*prediction.FlightState {
	flights := make([]*prediction.FlightState, 0, len(raw.States))
	for _, s := range raw.States {
		if len(s) <= fieldVerticalRate {
			continue
		}

		lon, lonOK := floatVal(s[fieldLongitude])
		lat, latOK := floatVal(s[fieldLatitude])
		if !lonOK || !latOK {
			continue
		}
		if onGround := boolVal(s[fieldOnGround]); onGround {
			continue
		}

		f := &prediction.FlightState{
			ID:       stringVal(s[fieldICAO24]),
			Callsign: strings.TrimSpace(stringVal(s[fieldCallsign])),
			Lat:      lat,
			Lon:      lon,
		}
		f.BaroAltitudeM = floatPtr(s[fieldBaroAltitude])
		f.GroundSpeedMS = floatPtr(s[fieldVelocity])
		f.TrackDeg = floatPtr(s[fieldTrueTrack])
		f.VerticalRateMS = floatPtr(s[fieldVerticalRate])

		flights = append(flights, f)
	}
	return flights
}

func stringVal(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func boolVal(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

func floatVal(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func floatPtr(v interface{}) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}
