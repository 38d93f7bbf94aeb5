package adsb

import (
	"context"
	"sync"
	"time"

	"github.com/skysight-labs/runwaycast/internal/prediction"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

// TrackRecorder persists per-aircraft position samples. Implemented by the
// sqlite track storage.
type TrackRecorder interface {
	RecordBatch(flights []*prediction.FlightState, at time.Time) error
}

// Broadcaster pushes cycle results to connected UI clients. Implemented by
// the websocket server.
type Broadcaster interface {
	BroadcastBatch(batch *prediction.Batch, changes []Change)
}

// Service owns the poll loop: fetch telemetry, run the prediction pipeline,
// persist tracks and notify listeners. The latest batch is kept for the API
// layer; previous batches are discarded entirely.
type Service struct {
	client       *Client
	pipeline     *prediction.Pipeline
	tracks       TrackRecorder
	broadcaster  Broadcaster
	changes      *ChangeDetector
	pollInterval time.Duration
	logger       *logger.Logger

	mu    sync.RWMutex
	batch *prediction.Batch
}

// NewService creates the polling service. tracks and broadcaster may be nil,
// in which case the corresponding step is skipped.
func NewService(
	client *Client,
	pipeline *prediction.Pipeline,
	tracks TrackRecorder,
	broadcaster Broadcaster,
	pollInterval time.Duration,
	log *logger.Logger,
) *Service {
	return &Service{
		client:       client,
		pipeline:     pipeline,
		tracks:       tracks,
		broadcaster:  broadcaster,
		changes:      NewChangeDetector(log),
		pollInterval: pollInterval,
		logger:       log.Named("adsb-service"),
	}
}

// Start runs the poll loop until the context is cancelled. One cycle runs
// immediately so the API has data as soon as possible.
func (s *Service) Start(ctx context.Context) {
	s.logger.Info("Starting telemetry polling",
		logger.Duration("interval", s.pollInterval))

	s.Refresh(ctx)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Telemetry polling stopped")
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh performs one full cycle on demand. A failed fetch skips the cycle;
// the previous batch stays available to the API until fresh data arrives.
func (s *Service) Refresh(ctx context.Context) {
	flights, err := s.client.FetchStates(ctx)
	if err != nil {
		s.logger.Warn("Telemetry fetch failed, skipping cycle", logger.Error(err))
		return
	}

	batch := s.pipeline.Run(flights)

	s.mu.Lock()
	s.batch = batch
	s.mu.Unlock()

	if s.tracks != nil {
		if err := s.tracks.RecordBatch(batch.Flights, batch.GeneratedAt); err != nil {
			s.logger.Warn("Failed to record position tracks", logger.Error(err))
		}
	}

	changes := s.changes.DetectChanges(batch.Flights)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastBatch(batch, changes)
	}

	s.logger.Debug("Cycle complete",
		logger.Int("flights", len(batch.Flights)),
		logger.Int("changes", len(changes)),
		logger.String("configuration", string(batch.Configuration)),
	)
}

// Latest returns the most recent batch, or nil before the first successful
// cycle.
func (s *Service) Latest() *prediction.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch
}

// FlightByID returns the flight with the given identifier from the latest
// batch.
func (s *Service) FlightByID(id string) *prediction.FlightState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.batch == nil {
		return nil
	}
	for _, f := range s.batch.Flights {
		if f.ID == id {
			return f
		}
	}
	return nil
}
