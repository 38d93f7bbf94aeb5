package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysight-labs/runwaycast/internal/runways"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

func sampleFlights() []*FlightState {
	arrivingWest := flightAt(70, 12)
	arrivingWest.ID = "arr-west"
	arrivingWest.BaroAltitudeM = fptr(1100)
	arrivingWest.TrackDeg = fptr(250)
	arrivingWest.VerticalRateMS = fptr(-2.5)

	departing := flightAt(110, 8)
	departing.ID = "dep"
	departing.BaroAltitudeM = fptr(900)
	departing.TrackDeg = fptr(110)
	departing.VerticalRateMS = fptr(6)

	overflight := flightAt(0, 70)
	overflight.ID = "cruise"
	overflight.BaroAltitudeM = fptr(11000)
	overflight.TrackDeg = fptr(95)
	overflight.VerticalRateMS = fptr(0)

	return []*FlightState{arrivingWest, departing, overflight}
}

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(logger.NewNop())

	t.Run("classifies and scores a mixed batch", func(t *testing.T) {
		batch := p.Run(sampleFlights())
		require.Len(t, batch.Flights, 3)
		assert.Equal(t, runways.Westerly, batch.Configuration)

		byID := map[string]*FlightState{}
		for _, f := range batch.Flights {
			byID[f.ID] = f
		}

		arr := byID["arr-west"]
		assert.True(t, arr.Arriving)
		assert.False(t, arr.Departing)
		assert.NotEmpty(t, arr.PredictedRunway)
		assert.Greater(t, arr.Confidence, 0.0)

		dep := byID["dep"]
		assert.True(t, dep.Departing)
		assert.False(t, dep.Arriving)
		assert.Empty(t, dep.PredictedRunway)
		assert.Zero(t, dep.Confidence)

		cruise := byID["cruise"]
		assert.False(t, cruise.Arriving)
		assert.False(t, cruise.Departing)
		assert.Empty(t, cruise.PredictedRunway)
	})

	t.Run("distance is always recomputed", func(t *testing.T) {
		flights := sampleFlights()
		for _, f := range flights {
			f.DistanceKm = -1
		}
		batch := p.Run(flights)
		for _, f := range batch.Flights {
			assert.GreaterOrEqual(t, f.DistanceKm, 0.0)
		}
	})

	t.Run("prediction present exactly when arriving", func(t *testing.T) {
		batch := p.Run(sampleFlights())
		for _, f := range batch.Flights {
			if f.Arriving {
				assert.NotEmpty(t, f.PredictedRunway, "flight %s", f.ID)
			} else {
				assert.Empty(t, f.PredictedRunway, "flight %s", f.ID)
				assert.Zero(t, f.Confidence, "flight %s", f.ID)
			}
			assert.GreaterOrEqual(t, f.Confidence, 0.0)
			assert.LessOrEqual(t, f.Confidence, 1.0)
		}
	})

	t.Run("empty batch detects the westerly default", func(t *testing.T) {
		batch := p.Run(nil)
		assert.Empty(t, batch.Flights)
		assert.Equal(t, runways.Westerly, batch.Configuration)
	})

	t.Run("idempotent over identical input", func(t *testing.T) {
		first := p.Run(sampleFlights())
		second := p.Run(sampleFlights())

		require.Len(t, second.Flights, len(first.Flights))
		assert.Equal(t, first.Configuration, second.Configuration)
		for i := range first.Flights {
			a, b := first.Flights[i], second.Flights[i]
			assert.Equal(t, a.DistanceKm, b.DistanceKm)
			assert.Equal(t, a.Arriving, b.Arriving)
			assert.Equal(t, a.Departing, b.Departing)
			assert.Equal(t, a.PredictedRunway, b.PredictedRunway)
			assert.Equal(t, a.Confidence, b.Confidence)
		}
	})

	t.Run("easterly traffic flips the configuration for everyone", func(t *testing.T) {
		east1 := flightAt(250, 15)
		east1.ID = "arr-east-1"
		east1.BaroAltitudeM = fptr(1200)
		east1.TrackDeg = fptr(70)
		east1.VerticalRateMS = fptr(-3)

		east2 := flightAt(250, 25)
		east2.ID = "arr-east-2"
		east2.BaroAltitudeM = fptr(1800)
		east2.TrackDeg = fptr(68)
		east2.VerticalRateMS = fptr(-2)

		batch := p.Run([]*FlightState{east1, east2})
		assert.Equal(t, runways.Easterly, batch.Configuration)
		for _, f := range batch.Flights {
			if f.Arriving {
				assert.Contains(t, []string{"07L", "07C", "07R"}, f.PredictedRunway)
			}
		}
	})
}
