package prediction

import (
	"math"

	"github.com/skysight-labs/runwaycast/internal/geodesy"
	"github.com/skysight-labs/runwaycast/internal/runways"
)

// Scoring weights and confidence adjustments.
const (
	headingPenaltyWeight = 5.0

	shortFinalDistanceKm = 20.0
	shortFinalHeadingTol = 10.0
	shortFinalBonus      = 0.2
	farDistanceKm        = 50.0
	farConfidenceFactor  = 0.6
	midDistanceKm        = 30.0
	midConfidenceFactor  = 0.8
	steadyDescentRateMS  = -2.0
	steadyDescentBonus   = 0.1
	separationConfidence = 0.5
)

// Prediction is the scorer's verdict for a single flight.
type Prediction struct {
	Runway     string  `json:"runway,omitempty"`
	Confidence float64 `json:"confidence"`
}

// runwayScore is how well one candidate runway fits the flight: cross-track
// distance to the extended centerline plus a scaled heading mismatch
// penalty. Lower is better.
func runwayScore(f *FlightState, rwy runways.Definition) float64 {
	crossTrack := geodesy.CrossTrackKm(f.Lat, f.Lon,
		rwy.Threshold.Lat, rwy.Threshold.Lon,
		rwy.Opposite.Lat, rwy.Opposite.Lon)
	headingPenalty := math.Abs(geodesy.AngleDiffDeg(*f.TrackDeg, rwy.HeadingDeg)) / 180.0 * headingPenaltyWeight
	return crossTrack + headingPenalty
}

// PredictRunway scores each runway of the active configuration for an
// arriving flight and returns the best with a confidence value. Flights not
// classified as arriving get no runway and zero confidence.
func PredictRunway(f *FlightState, config runways.Configuration) Prediction {
	if !f.Arriving || f.TrackDeg == nil {
		return Prediction{}
	}

	candidates := runways.Landing(config)
	scores := make([]float64, len(candidates))
	best := 0
	for i, rwy := range candidates {
		scores[i] = runwayScore(f, rwy)
		// Strict less-than keeps the first minimum on ties, matching the
		// configuration's fixed runway order
		if scores[i] < scores[best] {
			best = i
		}
	}

	// Separation between the winner and the first score that differs from
	// it. When every runway scores identically there is no separation at
	// all.
	otherScore := scores[best]
	for _, s := range scores {
		if s != scores[best] {
			otherScore = s
			break
		}
	}
	separation := otherScore - scores[best]
	confidence := math.Min(1, separationConfidence+separation*separationConfidence)

	// Lined up close-in with the primary landing runway of the
	// configuration
	if f.DistanceKm < shortFinalDistanceKm &&
		math.Abs(geodesy.AngleDiffDeg(*f.TrackDeg, candidates[0].HeadingDeg)) < shortFinalHeadingTol {
		confidence = math.Min(1, confidence+shortFinalBonus)
	}

	// Far-out predictions are inherently less certain
	if f.DistanceKm > farDistanceKm {
		confidence *= farConfidenceFactor
	} else if f.DistanceKm > midDistanceKm {
		confidence *= midConfidenceFactor
	}

	// An established descent is a strong landing signal
	if f.VerticalRateMS != nil && *f.VerticalRateMS < steadyDescentRateMS {
		confidence = math.Min(1, confidence+steadyDescentBonus)
	}

	return Prediction{Runway: candidates[best].ID, Confidence: confidence}
}
