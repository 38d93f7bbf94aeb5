package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skysight-labs/runwaycast/internal/adsb"
	"github.com/skysight-labs/runwaycast/internal/api"
	"github.com/skysight-labs/runwaycast/internal/config"
	"github.com/skysight-labs/runwaycast/internal/prediction"
	"github.com/skysight-labs/runwaycast/internal/runways"
	"github.com/skysight-labs/runwaycast/internal/storage/sqlite"
	"github.com/skysight-labs/runwaycast/internal/weather"
	"github.com/skysight-labs/runwaycast/internal/websocket"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting runwaycast",
		logger.String("airport", runways.Airport.ICAO),
		logger.String("config", *configPath),
	)

	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("Failed to open track database", logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	tracks, err := sqlite.NewTrackStorage(db, log)
	if err != nil {
		log.Error("Failed to initialize track storage", logger.Error(err))
		os.Exit(1)
	}

	wsServer := websocket.NewServer(log)

	adsbClient := adsb.NewClient(
		cfg.ADSB.SourceURL,
		cfg.ADSB.APIToken,
		cfg.ADSB.SearchRadiusKm,
		cfg.ADSB.RequestTimeout(),
		log,
	)
	pipeline := prediction.NewPipeline(log)
	adsbService := adsb.NewService(adsbClient, pipeline, tracks, wsServer, cfg.ADSB.PollInterval(), log)

	weatherService := weather.NewService(
		cfg.Weather.APIBaseURL,
		cfg.Weather.RefreshInterval(),
		cfg.Weather.RequestTimeout(),
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go adsbService.Start(ctx)
	go weatherService.Start(ctx)
	go pruneLoop(ctx, tracks, cfg.Storage.TrackRetention(), log)

	router := api.NewRouter(adsbService, weatherService, tracks, wsServer, cfg, log)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router.Routes(),
	}

	go func() {
		log.Info("HTTP server listening", logger.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", logger.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		log.Info("Shutting down", logger.String("signal", s.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown failed", logger.Error(err))
	}
	cancel()
}

// pruneLoop periodically drops track points past the retention window.
func pruneLoop(ctx context.Context, tracks *sqlite.TrackStorage, retention time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := tracks.Prune(retention)
			if err != nil {
				log.Warn("Track pruning failed", logger.Error(err))
				continue
			}
			if pruned > 0 {
				log.Debug("Pruned old track points", logger.Int64("removed", pruned))
			}
		}
	}
}
