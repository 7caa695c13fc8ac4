package scalar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixed64RoundTrip(t *testing.T) {
	tr := Fixed64{}
	for _, f := range []float64{0, 1, -1, 3.5, -2.25, 0.001, 1234.5} {
		fx := tr.FromFloat64(f)
		require.InDelta(t, f, tr.ToFloat64(fx), 1e-6)
	}
}

func TestFixed64Mul(t *testing.T) {
	tr := Fixed64{}
	a := tr.FromFloat64(1.5)
	b := tr.FromFloat64(2.0)
	got := tr.Mul(a, b)
	require.InDelta(t, 3.0, tr.ToFloat64(got), 1e-6)

	c := tr.FromFloat64(-1.5)
	got2 := tr.Mul(c, b)
	require.InDelta(t, -3.0, tr.ToFloat64(got2), 1e-6)
}

func TestFixed64SqDist(t *testing.T) {
	tr := Fixed64{}
	a := Vec2[int64]{X: tr.FromFloat64(0), Y: tr.FromFloat64(0)}
	b := Vec2[int64]{X: tr.FromFloat64(3), Y: tr.FromFloat64(4)}
	d2 := tr.SqDist(a, b)
	require.InDelta(t, 25.0, tr.ToFloat64(d2), 1e-4)
}

func TestFixed64SupportsRefinement(t *testing.T) {
	require.True(t, Fixed64{}.SupportsRefinement())
}

func TestFixed64OrientMatchesFloat64Sign(t *testing.T) {
	tr := Fixed64{}
	vec := func(x, y float64) Vec2[int64] {
		return Vec2[int64]{X: tr.FromFloat64(x), Y: tr.FromFloat64(y)}
	}
	cases := []struct {
		a, b, c Vec2[int64]
		want    int
	}{
		{vec(0, 0), vec(1, 0), vec(1, 1), 1},   // left turn, CCW
		{vec(0, 0), vec(1, 1), vec(1, 0), -1},  // right turn, CW
		{vec(0, 0), vec(1, 0), vec(2, 0), 0},   // collinear
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tr.Orient(tc.a, tc.b, tc.c))
	}
}

func TestFixed64OrientLargeMagnitude(t *testing.T) {
	tr := Fixed64{}
	// Raw deltas of 2^40 each: their product is 2^80, which overflows a
	// plain int64 multiply (max ~2^63) and requires the int128 widening
	// mul64 performs.
	a := Vec2[int64]{X: 0, Y: 0}
	b := Vec2[int64]{X: int64(1) << 40, Y: 0}
	c := Vec2[int64]{X: int64(1) << 39, Y: int64(1) << 40}
	require.Equal(t, 1, tr.Orient(a, b, c))
	c.Y = -(int64(1) << 40)
	require.Equal(t, -1, tr.Orient(a, b, c))
}

func TestFixed64InCircle(t *testing.T) {
	tr := Fixed64{}
	vec := func(x, y float64) Vec2[int64] {
		return Vec2[int64]{X: tr.FromFloat64(x), Y: tr.FromFloat64(y)}
	}
	// Unit circle through (1,0),(0,1),(-1,0); (0,0.5) is strictly inside,
	// (0,5) is strictly outside.
	a, b, c := vec(1, 0), vec(0, 1), vec(-1, 0)
	require.Equal(t, 1, tr.InCircle(a, b, c, vec(0, 0.5)))
	require.Equal(t, -1, tr.InCircle(a, b, c, vec(0, 5)))
}
