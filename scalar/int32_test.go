package scalar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt32InCircleExact(t *testing.T) {
	tr := Int32{}
	a := Vec2[int32]{X: 0, Y: 0}
	b := Vec2[int32]{X: 100, Y: 0}
	c := Vec2[int32]{X: 100, Y: 100}
	inside := Vec2[int32]{X: 50, Y: 50}
	outside := Vec2[int32]{X: 100000, Y: 100000}

	require.Greater(t, tr.InCircle(a, b, c, inside), 0)
	require.Less(t, tr.InCircle(a, b, c, outside), 0)
}

func TestInt32InCircleLargeCoordinatesDoNotOverflow(t *testing.T) {
	// Coordinates near the 2^20 diameter guidance from spec 9; the
	// products involved exceed 64 bits, exercising the int128 path.
	tr := Int32{}
	a := Vec2[int32]{X: -1 << 19, Y: -1 << 19}
	b := Vec2[int32]{X: 1 << 19, Y: -1 << 19}
	c := Vec2[int32]{X: 0, Y: 1 << 19}
	d := Vec2[int32]{X: 0, Y: 0}

	require.NotPanics(t, func() {
		tr.InCircle(a, b, c, d)
	})
}

func TestInt32SupportsRefinementFalse(t *testing.T) {
	require.False(t, Int32{}.SupportsRefinement())
}

func TestInt32CircumcenterCollinearSentinel(t *testing.T) {
	tr := Int32{}
	a := Vec2[int32]{X: 0, Y: 0}
	b := Vec2[int32]{X: 1, Y: 0}
	c := Vec2[int32]{X: 2, Y: 0}

	center, _, ok := tr.Circumcenter(a, b, c)
	require.False(t, ok)
	require.Equal(t, tr.Min(), center.X)
}

func TestMul64Exact(t *testing.T) {
	p := mul64(1<<40, 1<<40)
	require.Equal(t, 1, p.sign())
	// 2^80 in hi/lo: hi = 2^(80-64) = 2^16
	require.Equal(t, uint64(1)<<16, p.hi)
	require.Equal(t, uint64(0), p.lo)
}
