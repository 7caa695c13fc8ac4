package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/cdt2d/scalar"
)

func TestCOMForwardInverseRoundTrip(t *testing.T) {
	tr := scalar.Float64{}
	pts := []scalar.Vec2[float64]{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
	com := NewCOM(tr, pts)

	for _, p := range pts {
		back := com.Inverse(com.Forward(p))
		require.InDelta(t, p.X, back.X, 1e-9)
		require.InDelta(t, p.Y, back.Y, 1e-9)
	}
}

func TestCOMCentersAndScalesIntoUnitBox(t *testing.T) {
	tr := scalar.Float64{}
	pts := []scalar.Vec2[float64]{
		{X: 0, Y: 0},
		{X: 20, Y: 0},
		{X: 20, Y: 20},
		{X: 0, Y: 20},
	}
	com := NewCOM(tr, pts)

	for _, p := range pts {
		q := com.Forward(p)
		require.LessOrEqual(t, q.X, 1.0+1e-9)
		require.GreaterOrEqual(t, q.X, -1.0-1e-9)
		require.LessOrEqual(t, q.Y, 1.0+1e-9)
		require.GreaterOrEqual(t, q.Y, -1.0-1e-9)
	}
}

func TestCOMDegenerateSinglePoint(t *testing.T) {
	tr := scalar.Float64{}
	pts := []scalar.Vec2[float64]{{X: 5, Y: 5}}
	com := NewCOM(tr, pts)

	q := com.Forward(pts[0])
	require.Equal(t, 0.0, q.X)
	require.Equal(t, 0.0, q.Y)
}
