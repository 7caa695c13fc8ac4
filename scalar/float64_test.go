package scalar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat64Orient(t *testing.T) {
	tr := Float64{}
	a := Vec2[float64]{X: 0, Y: 0}
	b := Vec2[float64]{X: 1, Y: 0}
	c := Vec2[float64]{X: 0, Y: 1}

	require.Equal(t, 1, tr.Orient(a, b, c), "expected CCW")
	require.Equal(t, -1, tr.Orient(c, b, a), "expected CW")
	require.Equal(t, 0, tr.Orient(a, b, Vec2[float64]{X: 2, Y: 0}), "expected collinear")
}

func TestFloat64InCircleUnitSquare(t *testing.T) {
	tr := Float64{}
	a := Vec2[float64]{X: 0, Y: 0}
	b := Vec2[float64]{X: 1, Y: 0}
	c := Vec2[float64]{X: 1, Y: 1}
	inside := Vec2[float64]{X: 0.5, Y: 0.5}
	outside := Vec2[float64]{X: 10, Y: 10}

	require.Greater(t, tr.InCircle(a, b, c, inside), 0)
	require.Less(t, tr.InCircle(a, b, c, outside), 0)
}

func TestFloat64Circumcenter(t *testing.T) {
	tr := Float64{}
	a := Vec2[float64]{X: 0, Y: 0}
	b := Vec2[float64]{X: 2, Y: 0}
	c := Vec2[float64]{X: 0, Y: 2}

	center, r2, ok := tr.Circumcenter(a, b, c)
	require.True(t, ok)
	require.InDelta(t, 1.0, center.X, 1e-9)
	require.InDelta(t, 1.0, center.Y, 1e-9)
	require.InDelta(t, 2.0, r2, 1e-9)
}

func TestFloat64CircumcenterCollinear(t *testing.T) {
	tr := Float64{}
	a := Vec2[float64]{X: 0, Y: 0}
	b := Vec2[float64]{X: 1, Y: 0}
	c := Vec2[float64]{X: 2, Y: 0}

	_, _, ok := tr.Circumcenter(a, b, c)
	require.False(t, ok)
}

func TestFloat64HashKeyMonotonic(t *testing.T) {
	tr := Float64{}
	center := Vec2[float64]{}
	buckets := 64

	seen := make(map[int]bool)
	for deg := 0; deg < 360; deg += 30 {
		rad := float64(deg) * math.Pi / 180
		p := Vec2[float64]{X: math.Cos(rad), Y: math.Sin(rad)}
		key := tr.HashKey(p, center, buckets)
		require.GreaterOrEqual(t, key, 0)
		require.Less(t, key, buckets)
		seen[key] = true
	}
	require.Greater(t, len(seen), 1, "expected distinct buckets around the circle")
}
