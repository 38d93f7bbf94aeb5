package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skysight-labs/runwaycast/internal/adsb"
	"github.com/skysight-labs/runwaycast/internal/config"
	"github.com/skysight-labs/runwaycast/internal/prediction"
	"github.com/skysight-labs/runwaycast/internal/runways"
	"github.com/skysight-labs/runwaycast/internal/storage/sqlite"
	"github.com/skysight-labs/runwaycast/internal/weather"
	"github.com/skysight-labs/runwaycast/internal/websocket"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

const defaultTrackLimit = 240

// Handler serves the REST API.
type Handler struct {
	adsbService    *adsb.Service
	weatherService *weather.Service
	tracks         *sqlite.TrackStorage
	wsServer       *websocket.Server
	config         *config.Config
	logger         *logger.Logger
	startedAt      time.Time
}

// NewHandler creates a new API handler.
func NewHandler(
	adsbService *adsb.Service,
	weatherService *weather.Service,
	tracks *sqlite.TrackStorage,
	wsServer *websocket.Server,
	cfg *config.Config,
	log *logger.Logger,
) *Handler {
	return &Handler{
		adsbService:    adsbService,
		weatherService: weatherService,
		tracks:         tracks,
		wsServer:       wsServer,
		config:         cfg,
		logger:         log.Named("api-handler"),
		startedAt:      time.Now().UTC(),
	}
}

// aircraftResponse is the envelope for aircraft listings.
type aircraftResponse struct {
	Timestamp     time.Time                 `json:"timestamp"`
	Configuration runways.Configuration     `json:"configuration,omitempty"`
	Count         int                       `json:"count"`
	Aircraft      []*prediction.FlightState `json:"aircraft"`
}

// GetAllAircraft returns the latest batch with predictions.
func (h *Handler) GetAllAircraft(w http.ResponseWriter, r *http.Request) {
	batch := h.adsbService.Latest()
	if batch == nil {
		h.writeJSON(w, http.StatusOK, aircraftResponse{
			Timestamp: time.Now().UTC(),
			Aircraft:  []*prediction.FlightState{},
		})
		return
	}
	h.writeJSON(w, http.StatusOK, aircraftResponse{
		Timestamp:     batch.GeneratedAt,
		Configuration: batch.Configuration,
		Count:         len(batch.Flights),
		Aircraft:      batch.Flights,
	})
}

// GetAircraftByID returns a single aircraft from the latest batch.
func (h *Handler) GetAircraftByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	flight := h.adsbService.FlightByID(id)
	if flight == nil {
		h.writeError(w, http.StatusNotFound, "aircraft not found")
		return
	}
	h.writeJSON(w, http.StatusOK, flight)
}

// GetAircraftTracks returns stored position history for an aircraft.
func (h *Handler) GetAircraftTracks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit := defaultTrackLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	points, err := h.tracks.GetTracks(id, limit)
	if err != nil {
		h.logger.Error("Failed to query tracks", logger.Error(err))
		h.writeError(w, http.StatusInternalServerError, "failed to query tracks")
		return
	}
	if points == nil {
		points = []*sqlite.TrackPoint{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"aircraft_id": id,
		"count":       len(points),
		"tracks":      points,
	})
}

// GetRunways returns the airport reference and the static runway table.
func (h *Handler) GetRunways(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"airport": runways.Airport,
		"runways": runways.All(),
	})
}

// GetConfiguration returns the detected landing configuration for the latest
// batch, alongside the configuration the surface wind favors.
func (h *Handler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{}

	if batch := h.adsbService.Latest(); batch != nil {
		resp["active"] = batch.Configuration
		resp["generated_at"] = batch.GeneratedAt
		resp["landing_runways"] = runways.Landing(batch.Configuration)
	}
	if h.weatherService != nil {
		if report := h.weatherService.Report(); report != nil && report.Favored != nil {
			resp["wind_favored"] = *report.Favored
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetWeather returns the latest METAR report.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	if h.weatherService == nil {
		h.writeError(w, http.StatusNotFound, "weather service disabled")
		return
	}
	report := h.weatherService.Report()
	if report == nil {
		h.writeError(w, http.StatusServiceUnavailable, "no weather data yet")
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// GetHealth returns service liveness plus basic batch freshness.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":     "ok",
		"uptime_sec": int(time.Since(h.startedAt).Seconds()),
		"ws_clients": h.wsServer.ClientCount(),
	}
	if batch := h.adsbService.Latest(); batch != nil {
		resp["last_batch"] = batch.GeneratedAt
		resp["aircraft"] = len(batch.Flights)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// GetConfig returns the non-sensitive parts of the runtime configuration.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"airport":               runways.Airport.ICAO,
		"poll_interval_seconds": h.config.ADSB.PollIntervalSeconds,
		"search_radius_km":      h.config.ADSB.SearchRadiusKm,
	})
}

// HandleWebSocket upgrades the connection and hands it to the hub.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.wsServer.HandleConnection(w, r, h.adsbService.Latest())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", logger.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
