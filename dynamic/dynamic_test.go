package dynamic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/cdt2d/delaunay"
	"github.com/halfmesh/cdt2d/scalar"
)

func gridPositions() []scalar.Vec2[float64] {
	return []scalar.Vec2[float64]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
}

func TestInsertAtBarycentricAddsInteriorPoint(t *testing.T) {
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(gridPositions(), tr)
	require.True(t, st.OK())

	before := mesh.NumTriangles()
	beforePoints := len(mesh.Positions)

	err := InsertAtBarycentric(mesh, tr, 0, [3]float64{0.2, 0.3, 0.5})
	require.NoError(t, err)

	require.Greater(t, mesh.NumTriangles(), before)
	require.Equal(t, beforePoints+1, len(mesh.Positions))
	require.NoError(t, mesh.CheckInvariants(tr))
}

func TestInsertAtBarycentricRejectsOutOfRange(t *testing.T) {
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(gridPositions(), tr)
	require.True(t, st.OK())

	err := InsertAtBarycentric(mesh, tr, 0, [3]float64{0, 0.5, 0.5})
	require.ErrorIs(t, err, ErrInvalidBarycentric)
}

func TestSplitHalfedgePreservesConstrainedFlag(t *testing.T) {
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(gridPositions(), tr)
	require.True(t, st.OK())

	h := 0
	mesh.SetConstrained(h, true)

	before := mesh.NumTriangles()
	err := SplitHalfedge(mesh, tr, h, 0.5)
	require.NoError(t, err)

	require.Greater(t, mesh.NumTriangles(), before)
	require.NoError(t, mesh.CheckInvariants(tr))

	var found bool
	for hh := 0; hh < len(mesh.Triangles); hh++ {
		if mesh.Constrained[hh] {
			found = true
		}
	}
	require.True(t, found, "split edge should still carry a constrained halfedge")
}

func TestSplitHalfedgeRejectsOutOfRangeAlpha(t *testing.T) {
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(gridPositions(), tr)
	require.True(t, st.OK())

	err := SplitHalfedge(mesh, tr, 0, 1.5)
	require.ErrorIs(t, err, ErrInvalidAlpha)
}

func TestRemoveBulkPointRestoresOneRing(t *testing.T) {
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(gridPositions(), tr)
	require.True(t, st.OK())

	require.NoError(t, InsertAtBarycentric(mesh, tr, 0, [3]float64{0.34, 0.33, 0.33}))
	require.NoError(t, mesh.CheckInvariants(tr))

	interior := len(mesh.Positions) - 1
	beforeTriangles := mesh.NumTriangles()

	err := RemoveBulkPoint(mesh, tr, interior)
	require.NoError(t, err)

	require.Less(t, mesh.NumTriangles(), beforeTriangles)
	require.Equal(t, 4, len(mesh.Positions))
	require.NoError(t, mesh.CheckInvariants(tr))
}

func TestRemoveBulkPointRejectsBoundaryVertex(t *testing.T) {
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(gridPositions(), tr)
	require.True(t, st.OK())

	err := RemoveBulkPoint(mesh, tr, 0)
	require.ErrorIs(t, err, ErrBoundaryVertex)
}
