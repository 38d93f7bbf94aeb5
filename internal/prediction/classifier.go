package prediction

import (
	"math"

	"github.com/skysight-labs/runwaycast/internal/geodesy"
	"github.com/skysight-labs/runwaycast/internal/runways"
)

// Landing headings for the two configurations, used both by the arrival
// classifier and the configuration detector.
const (
	westerlyLandingHeadingDeg = 249.0
	easterlyLandingHeadingDeg = 69.0
)

// Departure rule thresholds. These are part of the engine's behavioral
// contract and are deliberately not runtime configuration.
const (
	departClimbDistanceKm    = 30.0
	departClimbRateMS        = 2.0
	departLowDistanceKm      = 15.0
	departLowAltitudeM       = 1500.0
	departLowClimbRateMS     = 0.5
	departRunwayDistanceKm   = 25.0
	departRunwayAltitudeM    = 2000.0
	departRunwayHeadingTol   = 25.0
	departOutboundDistKm     = 40.0
	departOutboundAltM       = 3000.0
	departOutboundRateMS     = 1.0
	departOutboundHeadingTol = 40.0
)

// Arrival gate thresholds.
const (
	arriveMaxDistanceKm     = 80.0
	arriveMaxAltitudeM      = 4000.0
	arriveMaxClimbRateMS    = 3.0
	arriveLandingHeadingTol = 50.0
	arriveTrackingDistKm    = 5.0
	arriveTrackingTol       = 70.0
)

// IsDeparting reports whether the flight looks like a departure climbing out
// of the airport. Four independent rules are evaluated in order; the first
// match wins. A rule whose required field is missing simply does not match.
func IsDeparting(f *FlightState) bool {
	if f.BaroAltitudeM == nil {
		return false
	}
	alt := *f.BaroAltitudeM
	dist := f.DistanceKm

	// Rule 1: strong climb close to the field
	if f.VerticalRateMS != nil && dist < departClimbDistanceKm && *f.VerticalRateMS > departClimbRateMS {
		return true
	}

	// Rule 2: low and slow climb right above the field
	if f.VerticalRateMS != nil && dist < departLowDistanceKm &&
		alt < departLowAltitudeM && *f.VerticalRateMS > departLowClimbRateMS {
		return true
	}

	// Rule 3: climbing out on the north-south departure runway axis
	if f.VerticalRateMS != nil && f.TrackDeg != nil &&
		dist < departRunwayDistanceKm && alt < departRunwayAltitudeM && *f.VerticalRateMS > 0 {
		hdg := *f.TrackDeg
		if math.Abs(geodesy.AngleDiffDeg(hdg, 180)) < departRunwayHeadingTol ||
			math.Abs(geodesy.AngleDiffDeg(hdg, 360)) < departRunwayHeadingTol {
			return true
		}
	}

	// Rule 4: climbing and heading directly away from the field
	if f.VerticalRateMS != nil && f.TrackDeg != nil &&
		dist < departOutboundDistKm && alt < departOutboundAltM && *f.VerticalRateMS > departOutboundRateMS {
		outbound := geodesy.BearingDeg(
			runways.Airport.Position.Lat, runways.Airport.Position.Lon, f.Lat, f.Lon)
		if math.Abs(geodesy.AngleDiffDeg(*f.TrackDeg, outbound)) < departOutboundHeadingTol {
			return true
		}
	}

	return false
}

// IsArriving reports whether the flight looks like it is landing at the
// airport. Every gate must pass; any missing required field fails the whole
// check.
func IsArriving(f *FlightState) bool {
	if f.BaroAltitudeM == nil || f.TrackDeg == nil {
		return false
	}
	if f.DistanceKm > arriveMaxDistanceKm {
		return false
	}
	if *f.BaroAltitudeM > arriveMaxAltitudeM {
		return false
	}
	if IsDeparting(f) {
		return false
	}
	// Climbing too strongly to be landing
	if f.VerticalRateMS != nil && *f.VerticalRateMS > arriveMaxClimbRateMS {
		return false
	}

	hdg := *f.TrackDeg
	onWesterly := math.Abs(geodesy.AngleDiffDeg(hdg, westerlyLandingHeadingDeg)) < arriveLandingHeadingTol
	onEasterly := math.Abs(geodesy.AngleDiffDeg(hdg, easterlyLandingHeadingDeg)) < arriveLandingHeadingTol
	if !onWesterly && !onEasterly {
		return false
	}

	// Outside the immediate vicinity the aircraft must be tracking toward
	// the field, not just pointed vaguely down a landing heading.
	if f.DistanceKm > arriveTrackingDistKm {
		inbound := geodesy.BearingDeg(f.Lat, f.Lon,
			runways.Airport.Position.Lat, runways.Airport.Position.Lon)
		if math.Abs(geodesy.AngleDiffDeg(hdg, inbound)) >= arriveTrackingTol {
			return false
		}
	}

	return true
}
