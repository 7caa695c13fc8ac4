package refine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmesh/cdt2d/delaunay"
	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/sloan"
)

func TestRunRefinesSquareUnderAreaThreshold(t *testing.T) {
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
	settings := Settings[float64]{
		AreaThreshold:     2.0,
		CosAngleThreshold: math.Cos(20 * math.Pi / 180),
		ShellsParameter:   0.001,
	}
	Run(mesh, tr, settings, len(positions))

	require.Greater(t, mesh.NumTriangles(), before)
	require.NoError(t, mesh.CheckInvariants(tr))
}

func TestRunTerminatesWithGenerousThresholds(t *testing.T) {
	positions := []scalar.Vec2[float64]{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	tr := scalar.Float64{}
	mesh, st := delaunay.Build(positions, tr)
	require.True(t, st.OK())

	edges := []int{0, 1, 1, 2, 2, 3, 3, 0}
	fs := sloan.Force(mesh, tr, edges, nil, 100000)
	require.True(t, fs.OK())

	settings := Settings[float64]{
		AreaThreshold:     1000.0,
		CosAngleThreshold: math.Cos(1 * math.Pi / 180),
		ShellsParameter:   0.001,
	}
	require.NotPanics(t, func() {
		Run(mesh, tr, settings, len(positions))
	})
}
