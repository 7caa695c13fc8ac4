package triangulate

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/status"
	"github.com/halfmesh/cdt2d/transform"
)

func sortedTriples(triangles []int) [][3]int {
	out := make([][3]int, len(triangles)/3)
	for t := range out {
		tri := [3]int{triangles[t*3], triangles[t*3+1], triangles[t*3+2]}
		sort.Ints(tri[:])
		out[t] = tri
	}
	sort.Slice(out, func(a, b int) bool {
		for k := 0; k < 3; k++ {
			if out[a][k] != out[b][k] {
				return out[a][k] < out[b][k]
			}
		}
		return false
	})
	return out
}

func TestRunUnitSquareNoOptions(t *testing.T) {
	tr := scalar.Float64{}
	in := Input[float64]{
		Positions: []scalar.Vec2[float64]{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
	}
	out, err := Run(in, tr)
	require.NoError(t, err)
	require.True(t, out.Status.OK())

	triples := sortedTriples(out.Triangles)
	require.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}}, triples)

	m := &halfedge.Mesh[float64]{
		Positions:          out.Positions,
		Triangles:          out.Triangles,
		Halfedges:          out.Halfedges,
		Constrained:        out.Constrained,
		IgnoredForPlanting: out.IgnoredForPlanting,
	}
	require.NoError(t, m.CheckInvariants(tr))
}

func TestRunUnitSquareWithRefinement(t *testing.T) {
	tr := scalar.Float64{}
	in := Input[float64]{
		Positions: []scalar.Vec2[float64]{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
	}
	out, err := Run(in, tr,
		WithRefinement(true),
		WithRefinementAreaThreshold(0.3),
		WithRefinementAngleThreshold(20*math.Pi/180),
	)
	require.NoError(t, err)
	require.True(t, out.Status.OK())
	require.Greater(t, len(out.Positions), 4)

	m := &halfedge.Mesh[float64]{
		Positions:          out.Positions,
		Triangles:          out.Triangles,
		Halfedges:          out.Halfedges,
		Constrained:        out.Constrained,
		IgnoredForPlanting: out.IgnoredForPlanting,
	}
	require.NoError(t, m.CheckInvariants(tr))
}

func TestRunSquareWithHoleAnnulus(t *testing.T) {
	tr := scalar.Float64{}
	in := Input[float64]{
		Positions: []scalar.Vec2[float64]{
			{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}, {X: 0, Y: 3},
			{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2},
		},
		ConstraintEdges: []int{
			0, 1, 1, 2, 2, 3, 3, 0,
			4, 5, 5, 6, 6, 7, 7, 4,
		},
		HoleSeeds: []scalar.Vec2[float64]{{X: 1.5, Y: 1.5}},
	}
	out, err := Run(in, tr)
	require.NoError(t, err)
	require.True(t, out.Status.OK())
	require.Equal(t, 8, len(out.Triangles)/3)

	m := &halfedge.Mesh[float64]{
		Positions:          out.Positions,
		Triangles:          out.Triangles,
		Halfedges:          out.Halfedges,
		Constrained:        out.Constrained,
		IgnoredForPlanting: out.IgnoredForPlanting,
	}
	require.NoError(t, m.CheckInvariants(tr))
}

func TestRunForcesInteriorEdge(t *testing.T) {
	tr := scalar.Float64{}
	in := Input[float64]{
		Positions: []scalar.Vec2[float64]{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		ConstraintEdges: []int{0, 2},
	}
	out, err := Run(in, tr)
	require.NoError(t, err)
	require.True(t, out.Status.OK())

	found := false
	for h := 0; h < len(out.Triangles); h++ {
		next := halfedge.Next(h)
		a, b := out.Triangles[h], out.Triangles[next]
		if (a == 0 && b == 2) || (a == 2 && b == 0) {
			require.True(t, out.Constrained[h])
			found = true
		}
	}
	require.True(t, found, "expected a halfedge between vertex 0 and 2")
}

func TestRunValidationErrors(t *testing.T) {
	tr := scalar.Float64{}

	t.Run("duplicate position", func(t *testing.T) {
		in := Input[float64]{Positions: []scalar.Vec2[float64]{
			{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1},
		}}
		_, err := Run(in, tr)
		require.ErrorIs(t, err, status.ErrDuplicatePosition)
	})

	t.Run("constraint self loop", func(t *testing.T) {
		in := Input[float64]{
			Positions:       []scalar.Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
			ConstraintEdges: []int{1, 1},
		}
		_, err := Run(in, tr)
		require.ErrorIs(t, err, status.ErrConstraintSelfLoop)
	})

	t.Run("odd length constraint buffer", func(t *testing.T) {
		in := Input[float64]{
			Positions:       []scalar.Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
			ConstraintEdges: []int{0, 1, 2},
		}
		_, err := Run(in, tr)
		require.ErrorIs(t, err, status.ErrConstraintsLengthOdd)
	})

	t.Run("constraint index out of range", func(t *testing.T) {
		in := Input[float64]{
			Positions:       []scalar.Vec2[float64]{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
			ConstraintEdges: []int{0, 5},
		}
		_, err := Run(in, tr)
		require.ErrorIs(t, err, status.ErrConstraintOutOfRange)
	})
}

func TestRunKindDispatchesFloat32(t *testing.T) {
	in := KindInput{
		Positions: []scalar.Vec2[float64]{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
	}
	out, err := RunKind(scalar.Float32Kind, in)
	require.NoError(t, err)
	require.True(t, out.Status.OK())
	require.Equal(t, 2, len(out.Triangles)/3)
}

func TestRunRejectsPCAForInt32(t *testing.T) {
	in := Input[int32]{
		Positions: []scalar.Vec2[int32]{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		},
	}
	_, err := Run(in, scalar.Int32{}, WithPreprocessor(transform.PCAKind))
	require.ErrorIs(t, err, ErrPCAUnsupportedForScalar)
}

func TestRunRejectsOversizedIntegerDiameterByDefault(t *testing.T) {
	in := Input[int32]{
		Positions: []scalar.Vec2[int32]{
			{X: 0, Y: 0}, {X: 2_000_000, Y: 0}, {X: 0, Y: 2_000_000},
		},
	}
	_, err := Run(in, scalar.Int32{})
	require.ErrorIs(t, err, status.ErrOversizedIntegerDiameter)
}

func TestRunAllowsOversizedFloatDiameterByDefault(t *testing.T) {
	in := Input[float64]{
		Positions: []scalar.Vec2[float64]{
			{X: 0, Y: 0}, {X: 2_000_000, Y: 0}, {X: 0, Y: 2_000_000},
		},
	}
	out, err := Run(in, scalar.Float64{})
	require.NoError(t, err)
	require.True(t, out.Status.OK())
}
