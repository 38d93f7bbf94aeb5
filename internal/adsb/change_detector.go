package adsb

import (
	"github.com/skysight-labs/runwaycast/internal/prediction"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

// ChangeDetector tracks aircraft changes between polling cycles so the
// websocket layer only pushes what actually moved.
type ChangeDetector struct {
	previous map[string]*prediction.FlightState
	logger   *logger.Logger
}

// NewChangeDetector creates a new change detector.
func NewChangeDetector(log *logger.Logger) *ChangeDetector {
	return &ChangeDetector{
		previous: make(map[string]*prediction.FlightState),
		logger:   log.Named("change-detector"),
	}
}

// Change represents a change in one aircraft between cycles.
type Change struct {
	Type   string                  `json:"type"` // "added", "updated", "removed"
	ID     string                  `json:"id"`
	Flight *prediction.FlightState `json:"flight,omitempty"`
}

// DetectChanges compares the current batch with the previous one and returns
// the differences. The full flight record is sent for adds and updates.
func (cd *ChangeDetector) DetectChanges(current []*prediction.FlightState) []Change {
	changes := []Change{}
	currentMap := make(map[string]*prediction.FlightState, len(current))
	for _, f := range current {
		currentMap[f.ID] = f
	}

	for id, cur := range currentMap {
		prev, exists := cd.previous[id]
		if !exists {
			changes = append(changes, Change{Type: "added", ID: id, Flight: cur})
			continue
		}
		if hasChanges(prev, cur) {
			changes = append(changes, Change{Type: "updated", ID: id, Flight: cur})
		}
	}

	for id := range cd.previous {
		if _, exists := currentMap[id]; !exists {
			changes = append(changes, Change{Type: "removed", ID: id})
		}
	}

	cd.previous = currentMap
	return changes
}

// hasChanges reports whether any field the UI cares about moved. No
// thresholds: any change at all counts.
func hasChanges(prev, cur *prediction.FlightState) bool {
	if prev.Lat != cur.Lat || prev.Lon != cur.Lon {
		return true
	}
	if !floatPtrEqual(prev.BaroAltitudeM, cur.BaroAltitudeM) {
		return true
	}
	if !floatPtrEqual(prev.GroundSpeedMS, cur.GroundSpeedMS) {
		return true
	}
	if !floatPtrEqual(prev.TrackDeg, cur.TrackDeg) {
		return true
	}
	if !floatPtrEqual(prev.VerticalRateMS, cur.VerticalRateMS) {
		return true
	}
	if prev.Callsign != cur.Callsign {
		return true
	}
	if prev.DistanceKm != cur.DistanceKm {
		return true
	}
	if prev.Departing != cur.Departing || prev.Arriving != cur.Arriving {
		return true
	}
	if prev.PredictedRunway != cur.PredictedRunway || prev.Confidence != cur.Confidence {
		return true
	}
	return false
}

func floatPtrEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return *a == *b
}
