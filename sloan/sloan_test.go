package sloan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/cdt2d/delaunay"
	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/status"
)

func TestForceMarksDirectEdgeConstrained(t *testing.T) {
	positions := []scalar.Vec2[float64]{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(positions, tr)
	require.True(t, st.OK())

	forceStatus := Force(mesh, tr, []int{0, 2}, nil, 1000)
	require.True(t, forceStatus.OK())

	found := false
	for h := range mesh.Triangles {
		a, b := mesh.Triangles[h], mesh.Triangles[nextIdx(h)]
		if (a == 0 && b == 2) || (a == 2 && b == 0) {
			if mesh.Constrained[h] {
				found = true
			}
		}
	}
	require.True(t, found)
}

func nextIdx(h int) int {
	if h%3 == 2 {
		return h - 2
	}
	return h + 1
}

// zigzagStrip builds a nearly-collinear two-row point set whose Delaunay
// triangulation is a long chain of thin triangles, the shape that produced
// spec 8's historic 98-point bug: forcing the diagonal between its two far
// endpoints tunnels across dozens of triangles, and every flip but the last
// one closing the gap defers its new diagonal to the next resolve pass
// rather than completing within the pass it was queued in, so the number of
// passes needed tracks the number of triangles tunneled through.
func zigzagStrip(rows int) []scalar.Vec2[float64] {
	positions := make([]scalar.Vec2[float64], 0, 2*rows)
	for i := 0; i < rows; i++ {
		x := float64(i)
		positions = append(positions,
			scalar.Vec2[float64]{X: x, Y: 0},
			scalar.Vec2[float64]{X: x + 0.5, Y: 0.05},
		)
	}
	return positions
}

func TestForceResolvesDegenerateZigzagWithinDefaultCap(t *testing.T) {
	positions := zigzagStrip(49)
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(positions, tr)
	require.True(t, st.OK())

	forceStatus := Force(mesh, tr, []int{0, len(positions) - 1}, nil, 1_000_000)
	require.True(t, forceStatus.OK())
}

func TestForceExceedsItersOnDegenerateZigzagWithTightCap(t *testing.T) {
	positions := zigzagStrip(49)
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(positions, tr)
	require.True(t, st.OK())

	forceStatus := Force(mesh, tr, []int{0, len(positions) - 1}, nil, 5)
	require.True(t, forceStatus.Is(status.SloanItersExceeded))
}
