package bw

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/cdt2d/delaunay"
	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/scalar"
)

func TestInsertBulkAddsPointInsideTriangle(t *testing.T) {
	positions := []scalar.Vec2[float64]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(positions, tr)
	require.True(t, st.OK())

	before := mesh.NumTriangles()
	mesh.Positions = append(mesh.Positions, scalar.Vec2[float64]{X: 5, Y: 5})
	newVertex := len(mesh.Positions) - 1

	startTriangle := 0
	removed, added := InsertBulk(mesh, tr, startTriangle, newVertex)
	require.NotEmpty(t, removed)
	require.NotEmpty(t, added)

	old2new := halfedge.NewCompactor(mesh).Remove(removed)
	_ = old2new

	require.Greater(t, mesh.NumTriangles(), before-len(removed))
	require.NoError(t, mesh.CheckInvariants(tr))
}
