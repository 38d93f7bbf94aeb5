// Package geodesy provides the great-circle math used by the prediction
// engine: haversine distance, initial bearing, cross-track distance and
// angle normalization. All functions are pure and allocation-free.
package geodesy

import "math"

// EarthRadiusKm is the mean Earth radius used for all great-circle math.
const EarthRadiusKm = 6371.0

const degToRad = math.Pi / 180.0

// DistanceKm returns the haversine great-circle distance in kilometers
// between two lat/lon points.
func DistanceKm(latA, lonA, latB, lonB float64) float64 {
	latARad := latA * degToRad
	latBRad := latB * degToRad
	dLat := (latB - latA) * degToRad
	dLon := (lonB - lonA) * degToRad

	a := math.Pow(math.Sin(dLat/2), 2) + math.Cos(latARad)*math.Cos(latBRad)*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// BearingDeg returns the initial bearing in degrees from point A to point B,
// normalized to [0, 360). 0 = North, 90 = East.
func BearingDeg(latA, lonA, latB, lonB float64) float64 {
	latARad := latA * degToRad
	latBRad := latB * degToRad
	dLon := (lonB - lonA) * degToRad

	y := math.Sin(dLon) * math.Cos(latBRad)
	x := math.Cos(latARad)*math.Sin(latBRad) - math.Sin(latARad)*math.Cos(latBRad)*math.Cos(dLon)
	bearing := math.Atan2(y, x) / degToRad

	return math.Mod(bearing+360.0, 360.0)
}

// CrossTrackKm returns the perpendicular distance in kilometers from a point
// to the great circle through lineStart and lineEnd. Always non-negative.
func CrossTrackKm(lat, lon, startLat, startLon, endLat, endLon float64) float64 {
	// Angular distance from the line start to the point
	delta13 := DistanceKm(startLat, startLon, lat, lon) / EarthRadiusKm
	// Bearing from the line start to the point, and along the line
	theta13 := BearingDeg(startLat, startLon, lat, lon) * degToRad
	theta12 := BearingDeg(startLat, startLon, endLat, endLon) * degToRad

	return math.Abs(math.Asin(math.Sin(delta13)*math.Sin(theta13-theta12))) * EarthRadiusKm
}

// AngleDiffDeg returns the signed minimal angular difference a-b in degrees,
// always within [-180, 180].
func AngleDiffDeg(a, b float64) float64 {
	diff := math.Mod(a-b+180.0, 360.0) - 180.0
	// math.Mod keeps the sign of the dividend, so correct the residual wrap
	if diff < -180.0 {
		diff += 360.0
	} else if diff > 180.0 {
		diff -= 360.0
	}
	return diff
}
