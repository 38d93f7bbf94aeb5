package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skysight-labs/runwaycast/internal/adsb"
	"github.com/skysight-labs/runwaycast/internal/config"
	"github.com/skysight-labs/runwaycast/internal/storage/sqlite"
	"github.com/skysight-labs/runwaycast/internal/weather"
	"github.com/skysight-labs/runwaycast/internal/websocket"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(
	adsbService *adsb.Service,
	weatherService *weather.Service,
	tracks *sqlite.TrackStorage,
	wsServer *websocket.Server,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		handler:    NewHandler(adsbService, weatherService, tracks, wsServer, cfg, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Aircraft routes
		router.Get("/aircraft", r.handler.GetAllAircraft)
		router.Get("/aircraft/{id}", r.handler.GetAircraftByID)
		router.Get("/aircraft/{id}/tracks", r.handler.GetAircraftTracks)

		// Static airport geometry
		router.Get("/runways", r.handler.GetRunways)

		// Active landing configuration
		router.Get("/configuration", r.handler.GetConfiguration)

		// Weather data
		router.Get("/wx", r.handler.GetWeather)

		// WebSocket route
		router.Get("/ws", r.handler.HandleWebSocket)

		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Configuration
		router.Get("/config", r.handler.GetConfig)
	})

	// Serve static files from the configured directory
	staticHandler := NewStaticFileHandler(r.config.Server.StaticFilesDir, r.logger)
	router.Handle("/*", staticHandler)

	return router
}
