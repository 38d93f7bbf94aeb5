package geodesy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("identical points are zero distance", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(50.0333, 8.5706, 50.0333, 8.5706))
		assert.Equal(t, 0.0, DistanceKm(0, 0, 0, 0))
		assert.Equal(t, 0.0, DistanceKm(-33.95, 18.6, -33.95, 18.6))
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := DistanceKm(50.0333, 8.5706, 48.3538, 11.7861)
		ba := DistanceKm(48.3538, 11.7861, 50.0333, 8.5706)
		assert.InDelta(t, ab, ba, 1e-12)
	})

	t.Run("known distance Frankfurt to Munich", func(t *testing.T) {
		// EDDF to EDDM is roughly 300 km
		d := DistanceKm(50.0333, 8.5706, 48.3538, 11.7861)
		assert.InDelta(t, 300, d, 10)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		d := DistanceKm(50.0, 8.5, 51.0, 8.5)
		assert.InDelta(t, 111.2, d, 0.5)
	})
}

func TestBearingDeg(t *testing.T) {
	t.Run("due north", func(t *testing.T) {
		assert.InDelta(t, 0, BearingDeg(50.0, 8.5, 51.0, 8.5), 0.01)
	})

	t.Run("due south", func(t *testing.T) {
		assert.InDelta(t, 180, BearingDeg(51.0, 8.5, 50.0, 8.5), 0.01)
	})

	t.Run("eastbound at mid latitude", func(t *testing.T) {
		b := BearingDeg(50.0, 8.5, 50.0, 9.5)
		// Great circle bearing starts slightly north of due east
		assert.InDelta(t, 90, b, 1.0)
	})

	t.Run("always in [0,360)", func(t *testing.T) {
		b := BearingDeg(50.0, 8.5, 49.0, 7.5)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	})
}

func TestCrossTrackKm(t *testing.T) {
	t.Run("point on the line is near zero", func(t *testing.T) {
		// Midpoint of a short meridian segment lies on its great circle
		d := CrossTrackKm(50.5, 8.5, 50.0, 8.5, 51.0, 8.5)
		assert.InDelta(t, 0, d, 1e-6)
	})

	t.Run("point abeam a meridian", func(t *testing.T) {
		// ~0.01 deg of longitude at 50N is about 0.715 km
		d := CrossTrackKm(50.5, 8.51, 50.0, 8.5, 51.0, 8.5)
		assert.InDelta(t, 0.715, d, 0.01)
	})

	t.Run("never negative", func(t *testing.T) {
		left := CrossTrackKm(50.5, 8.4, 50.0, 8.5, 51.0, 8.5)
		right := CrossTrackKm(50.5, 8.6, 50.0, 8.5, 51.0, 8.5)
		assert.Greater(t, left, 0.0)
		assert.Greater(t, right, 0.0)
	})
}

func TestAngleDiffDeg(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		want float64
	}{
		{"wrap across north negative", 350, 10, -20},
		{"wrap across north positive", 10, 350, 20},
		{"zero", 180, 180, 0},
		{"simple positive", 90, 45, 45},
		{"simple negative", 45, 90, -45},
		{"opposite headings", 0, 180, -180},
		{"large values", 720, 90, -90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, AngleDiffDeg(tc.a, tc.b), 1e-9)
		})
	}

	t.Run("always within closed range", func(t *testing.T) {
		for a := -720.0; a <= 720.0; a += 7.3 {
			for b := -720.0; b <= 720.0; b += 11.1 {
				d := AngleDiffDeg(a, b)
				assert.GreaterOrEqual(t, d, -180.0)
				assert.LessOrEqual(t, d, 180.0)
			}
		}
	})
}
