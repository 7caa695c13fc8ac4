package seed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/cdt2d/delaunay"
	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/sloan"
)

func TestPlantHoleSeedRemovesInteriorTriangles(t *testing.T) {
	positions := []scalar.Vec2[float64]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6},
	}
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(positions, tr)
	require.True(t, st.OK())

	edges := []int{0, 1, 1, 2, 2, 3, 3, 0, 4, 5, 5, 6, 6, 7, 7, 4}
	fs := sloan.Force(mesh, tr, edges, nil, 100000)
	require.True(t, fs.OK())

	before := mesh.NumTriangles()
	Plant(mesh, tr, Options[float64]{
		HoleSeeds: []scalar.Vec2[float64]{{X: 5, Y: 5}},
	})
	after := mesh.NumTriangles()

	require.Less(t, after, before)
	require.NoError(t, mesh.CheckInvariants(tr))
}

func TestPlantRestoreBoundaryIsNoopOnConvexOutline(t *testing.T) {
	positions := []scalar.Vec2[float64]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(positions, tr)
	require.True(t, st.OK())

	edges := []int{0, 1, 1, 2, 2, 3, 3, 0}
	fs := sloan.Force(mesh, tr, edges, nil, 100000)
	require.True(t, fs.OK())

	before := mesh.NumTriangles()
	Plant(mesh, tr, Options[float64]{RestoreBoundary: true})
	require.Equal(t, before, mesh.NumTriangles())
}
