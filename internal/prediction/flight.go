// Package prediction implements the runway prediction engine: per-aircraft
// flight phase classification, airport-wide landing configuration detection
// and per-runway scoring. The engine is a pure function of the telemetry
// batch it is handed; it keeps no state between cycles.
package prediction

// FlightState is the per-aircraft working record for one processing cycle.
// Instances are rebuilt from scratch every cycle from the latest raw sample.
// Optional telemetry fields are pointers; nil means the source did not report
// the value.
type FlightState struct {
	ID       string `json:"id"`
	Callsign string `json:"callsign,omitempty"`

	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	OnGround bool    `json:"on_ground"`

	BaroAltitudeM  *float64 `json:"baro_altitude_m,omitempty"`
	GroundSpeedMS  *float64 `json:"ground_speed_ms,omitempty"`
	TrackDeg       *float64 `json:"track_deg,omitempty"`
	VerticalRateMS *float64 `json:"vertical_rate_ms,omitempty"`

	// Derived fields, recomputed by the pipeline each cycle.
	DistanceKm      float64 `json:"distance_km"`
	Departing       bool    `json:"departing"`
	Arriving        bool    `json:"arriving"`
	PredictedRunway string  `json:"predicted_runway,omitempty"`
	Confidence      float64 `json:"confidence"`
}
