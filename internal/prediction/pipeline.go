package prediction

import (
	"time"

	"github.com/skysight-labs/runwaycast/internal/geodesy"
	"github.com/skysight-labs/runwaycast/internal/runways"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

// Batch is the result of one full pipeline run: the classified and scored
// flights plus the configuration they were all scored under.
type Batch struct {
	Flights       []*FlightState        `json:"flights"`
	Configuration runways.Configuration `json:"configuration"`
	GeneratedAt   time.Time             `json:"generated_at"`
}

// Pipeline runs the full prediction sequence over a telemetry batch:
// distances, per-flight classification, one shared configuration decision,
// then per-flight runway scoring.
type Pipeline struct {
	logger *logger.Logger
}

// NewPipeline creates a prediction pipeline.
func NewPipeline(log *logger.Logger) *Pipeline {
	return &Pipeline{logger: log.Named("prediction")}
}

// Run processes one batch. The input flights are mutated in place and
// returned inside the batch result. Callers must have filtered out records
// with unknown positions or the on-ground flag set.
//
// The configuration decision must complete before any flight is scored;
// everything else is per-flight and order independent.
func (p *Pipeline) Run(flights []*FlightState) *Batch {
	for _, f := range flights {
		f.DistanceKm = geodesy.DistanceKm(f.Lat, f.Lon,
			runways.Airport.Position.Lat, runways.Airport.Position.Lon)
		f.Departing = IsDeparting(f)
		f.Arriving = IsArriving(f)
	}

	// The detector only looks at traffic that could plausibly be inbound
	inbound := make([]*FlightState, 0, len(flights))
	for _, f := range flights {
		if f.Arriving || !f.Departing {
			inbound = append(inbound, f)
		}
	}
	config := DetectConfiguration(inbound)

	arrivals := 0
	departures := 0
	for _, f := range flights {
		pred := PredictRunway(f, config)
		f.PredictedRunway = pred.Runway
		f.Confidence = pred.Confidence
		if f.Arriving {
			arrivals++
		}
		if f.Departing {
			departures++
		}
	}

	p.logger.Debug("Prediction cycle complete",
		logger.Int("flights", len(flights)),
		logger.Int("arrivals", arrivals),
		logger.Int("departures", departures),
		logger.String("configuration", string(config)),
	)

	return &Batch{
		Flights:       flights,
		Configuration: config,
		GeneratedAt:   time.Now().UTC(),
	}
}
