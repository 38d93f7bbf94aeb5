package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysight-labs/runwaycast/internal/geodesy"
	"github.com/skysight-labs/runwaycast/internal/runways"
)

// arrivalOnFinal builds an arriving flight on the extended centerline of the
// given runway, extendKm beyond the threshold, tracking the landing heading.
func arrivalOnFinal(t *testing.T, runwayID string, extendKm float64) *FlightState {
	t.Helper()
	rwy, err := runways.ByID(runwayID)
	require.NoError(t, err)

	length := geodesy.DistanceKm(rwy.Threshold.Lat, rwy.Threshold.Lon,
		rwy.Opposite.Lat, rwy.Opposite.Lon)
	// Linear extrapolation past the threshold, away from the opposite end.
	// Good to within meters at these ranges.
	factor := extendKm / length
	lat := rwy.Threshold.Lat + (rwy.Threshold.Lat-rwy.Opposite.Lat)*factor
	lon := rwy.Threshold.Lon + (rwy.Threshold.Lon-rwy.Opposite.Lon)*factor

	f := &FlightState{
		ID:             "final-" + runwayID,
		Lat:            lat,
		Lon:            lon,
		BaroAltitudeM:  fptr(900),
		TrackDeg:       fptr(rwy.HeadingDeg),
		VerticalRateMS: fptr(-3),
	}
	f.DistanceKm = geodesy.DistanceKm(lat, lon,
		runways.Airport.Position.Lat, runways.Airport.Position.Lon)
	f.Arriving = true
	return f
}

func TestPredictRunway(t *testing.T) {
	t.Run("non arrivals get no runway and zero confidence", func(t *testing.T) {
		f := flightAt(90, 10)
		f.TrackDeg = fptr(250)
		pred := PredictRunway(f, runways.Westerly)
		assert.Empty(t, pred.Runway)
		assert.Zero(t, pred.Confidence)
	})

	t.Run("established on 25C final predicts 25C", func(t *testing.T) {
		f := arrivalOnFinal(t, "25C", 10)
		pred := PredictRunway(f, runways.Westerly)
		assert.Equal(t, "25C", pred.Runway)
		// On centerline, on heading, close in and descending: every
		// confidence adjustment fires
		assert.Greater(t, pred.Confidence, 0.8)
		assert.LessOrEqual(t, pred.Confidence, 1.0)
	})

	t.Run("each westerly final maps to its own runway", func(t *testing.T) {
		for _, id := range []string{"25R", "25C", "25L"} {
			f := arrivalOnFinal(t, id, 12)
			pred := PredictRunway(f, runways.Westerly)
			assert.Equal(t, id, pred.Runway, "final for %s", id)
		}
	})

	t.Run("each easterly final maps to its own runway", func(t *testing.T) {
		for _, id := range []string{"07L", "07C", "07R"} {
			f := arrivalOnFinal(t, id, 12)
			pred := PredictRunway(f, runways.Easterly)
			assert.Equal(t, id, pred.Runway, "final for %s", id)
		}
	})

	t.Run("the active configuration constrains the choice", func(t *testing.T) {
		// An aircraft lined up for 25C scored under easterly still gets
		// an 07, because only the active configuration's runways are
		// candidates
		f := arrivalOnFinal(t, "25C", 10)
		pred := PredictRunway(f, runways.Easterly)
		assert.Contains(t, []string{"07L", "07C", "07R"}, pred.Runway)
	})

	t.Run("distance discounts confidence", func(t *testing.T) {
		near := PredictRunway(arrivalOnFinal(t, "25C", 10), runways.Westerly)
		mid := PredictRunway(arrivalOnFinal(t, "25C", 33), runways.Westerly)
		far := PredictRunway(arrivalOnFinal(t, "25C", 55), runways.Westerly)

		assert.Greater(t, near.Confidence, mid.Confidence)
		assert.Greater(t, mid.Confidence, far.Confidence)
	})

	t.Run("confidence always within bounds", func(t *testing.T) {
		for extend := 1.0; extend < 70; extend += 3.7 {
			for _, id := range []string{"25R", "25C", "25L"} {
				pred := PredictRunway(arrivalOnFinal(t, id, extend), runways.Westerly)
				assert.GreaterOrEqual(t, pred.Confidence, 0.0)
				assert.LessOrEqual(t, pred.Confidence, 1.0)
			}
		}
	})
}
