package prediction

import (
	"math"

	"github.com/skysight-labs/runwaycast/internal/geodesy"
	"github.com/skysight-labs/runwaycast/internal/runways"
)

// Configuration vote thresholds. Candidates are aircraft actively descending
// within range; each votes for whichever landing direction its track aligns
// with.
const (
	configMaxAltitudeM     = 4000.0
	configMinDescentRateMS = -1.0
	configMaxDistanceKm    = 80.0
	configVoteHeadingTol   = 40.0

	configWesterlyVoteHeading = 250.0
	configEasterlyVoteHeading = 70.0
)

// DetectConfiguration decides the airport-wide landing configuration from
// the descending traffic in the batch. It is called exactly once per cycle
// and its result is shared by every flight scored in that cycle.
//
// With no eligible candidates the answer is westerly: westerly operations
// are the majority case at Frankfurt.
func DetectConfiguration(flights []*FlightState) runways.Configuration {
	westerly := 0
	easterly := 0

	for _, f := range flights {
		if f.BaroAltitudeM == nil || *f.BaroAltitudeM >= configMaxAltitudeM {
			continue
		}
		if f.TrackDeg == nil {
			continue
		}
		if f.VerticalRateMS == nil || *f.VerticalRateMS >= configMinDescentRateMS {
			continue
		}
		if f.DistanceKm >= configMaxDistanceKm {
			continue
		}

		hdg := *f.TrackDeg
		// A candidate may vote for both directions or for neither
		if math.Abs(geodesy.AngleDiffDeg(hdg, configWesterlyVoteHeading)) < configVoteHeadingTol {
			westerly++
		}
		if math.Abs(geodesy.AngleDiffDeg(hdg, configEasterlyVoteHeading)) < configVoteHeadingTol {
			easterly++
		}
	}

	if westerly >= easterly {
		return runways.Westerly
	}
	return runways.Easterly
}
