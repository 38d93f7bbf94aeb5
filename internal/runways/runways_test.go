package runways

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysight-labs/runwaycast/internal/geodesy"
)

func TestLanding(t *testing.T) {
	t.Run("westerly lands on the 25s in order", func(t *testing.T) {
		rwys := Landing(Westerly)
		require.Len(t, rwys, 3)
		assert.Equal(t, "25R", rwys[0].ID)
		assert.Equal(t, "25C", rwys[1].ID)
		assert.Equal(t, "25L", rwys[2].ID)
	})

	t.Run("easterly lands on the 07s in order", func(t *testing.T) {
		rwys := Landing(Easterly)
		require.Len(t, rwys, 3)
		assert.Equal(t, "07L", rwys[0].ID)
		assert.Equal(t, "07C", rwys[1].ID)
		assert.Equal(t, "07R", rwys[2].ID)
	})
}

func TestByID(t *testing.T) {
	rwy, err := ByID("25C")
	require.NoError(t, err)
	assert.Equal(t, 249.0, rwy.HeadingDeg)
	assert.Equal(t, Westerly, rwy.Configuration)

	_, err = ByID("36")
	assert.Error(t, err)
}

func TestRunwayGeometry(t *testing.T) {
	t.Run("headings match the threshold to opposite bearing", func(t *testing.T) {
		for _, rwy := range All() {
			// Landing direction runs from threshold toward the opposite end
			bearing := geodesy.BearingDeg(
				rwy.Threshold.Lat, rwy.Threshold.Lon,
				rwy.Opposite.Lat, rwy.Opposite.Lon,
			)
			diff := geodesy.AngleDiffDeg(bearing, rwy.HeadingDeg)
			assert.InDelta(t, 0, diff, 2.5, "runway %s bearing %f", rwy.ID, bearing)
		}
	})

	t.Run("all thresholds are near the reference point", func(t *testing.T) {
		for _, rwy := range All() {
			d := geodesy.DistanceKm(
				Airport.Position.Lat, Airport.Position.Lon,
				rwy.Threshold.Lat, rwy.Threshold.Lon,
			)
			assert.Less(t, d, 6.0, "runway %s", rwy.ID)
		}
	})
}
