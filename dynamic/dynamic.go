// Package dynamic exposes post-triangulation mutations on an existing
// valid mesh: inserting a point inside a triangle or along an edge, and
// removing an interior vertex by re-triangulating the resulting cavity.
package dynamic

import (
	"errors"

	"github.com/halfmesh/cdt2d/delaunay"
	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/internal/bw"
	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/seed"
	"github.com/halfmesh/cdt2d/sloan"
)

var (
	ErrInvalidBarycentric = errors.New("dynamic: barycentric coordinates must be positive and sum to 1")
	ErrInvalidAlpha       = errors.New("dynamic: split parameter must be in (0,1)")
	ErrBoundaryVertex     = errors.New("dynamic: cannot bulk-remove a boundary vertex")
)

// InsertAtBarycentric inserts a new point inside triangle t at barycentric
// coordinates beta (must be strictly positive and sum to 1) via bulk
// Bowyer-Watson.
func InsertAtBarycentric[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], t int, beta [3]S) error {
	zero := tr.Zero()
	for _, b := range beta {
		if !tr.Less(zero, b) {
			return ErrInvalidBarycentric
		}
	}

	base := t * 3
	a := mesh.Positions[mesh.Triangles[base]]
	b := mesh.Positions[mesh.Triangles[base+1]]
	c := mesh.Positions[mesh.Triangles[base+2]]

	x := tr.Add(tr.Add(tr.Mul(beta[0], a.X), tr.Mul(beta[1], b.X)), tr.Mul(beta[2], c.X))
	y := tr.Add(tr.Add(tr.Mul(beta[0], a.Y), tr.Mul(beta[1], b.Y)), tr.Mul(beta[2], c.Y))

	mesh.Positions = append(mesh.Positions, scalar.Vec2[S]{X: x, Y: y})
	newVertex := len(mesh.Positions) - 1

	removed, _ := bw.InsertBulk(mesh, tr, t, newVertex)
	halfedge.NewCompactor(mesh).Remove(removed)
	return nil
}

// SplitHalfedge inserts a new point at parameter alpha along h, using the
// boundary Bowyer-Watson variant if h is a true mesh boundary and the
// bulk variant otherwise. Both resulting subsegments preserve h's
// constrained state.
func SplitHalfedge[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], h int, alpha S) error {
	zero, one := tr.Zero(), tr.FromFloat64(1)
	if !tr.Less(zero, alpha) || !tr.Less(alpha, one) {
		return ErrInvalidAlpha
	}

	wasConstrained := mesh.Constrained[h]
	i := mesh.Triangles[h]
	j := mesh.Triangles[halfedge.Next(h)]
	pi, pj := mesh.Positions[i], mesh.Positions[j]

	newPoint := tr.Lerp(pi, pj, alpha)
	mesh.Positions = append(mesh.Positions, newPoint)
	newVertex := len(mesh.Positions) - 1

	isBoundary := mesh.Halfedges[h] == halfedge.Boundary
	mesh.SetConstrained(h, false)

	t := halfedge.TriangleOf(h)
	var removed []int
	if isBoundary {
		removed, _ = bw.InsertBoundary(mesh, tr, t, newVertex)
	} else {
		removed, _ = bw.InsertBulk(mesh, tr, t, newVertex)
	}
	halfedge.NewCompactor(mesh).Remove(removed)

	if wasConstrained {
		for hh := 0; hh < len(mesh.Triangles); hh++ {
			a, b := mesh.Triangles[hh], mesh.Triangles[halfedge.Next(hh)]
			if (a == i && b == newVertex) || (a == newVertex && b == j) {
				mesh.SetConstrained(hh, true)
			}
		}
	}
	return nil
}

// ringBoundaryEdge is one edge of v's one-ring outline: the halfedge on
// the far (surviving) side of the edge, paired with its two endpoints in
// the direction v's incident triangles traverse them.
type ringBoundaryEdge struct {
	outerHalfedge int
	v0, v1        int
}

// RemoveBulkPoint deletes a non-boundary vertex v. It re-triangulates the
// star-shaped polygon left behind (forcing the polygon's own outline back
// in as constraints, since the one-ring need not be convex) and stitches
// the result back into the mesh in place of v's incident triangles.
func RemoveBulkPoint[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], v int) error {
	dead, boundary, err := oneRingBoundary(mesh, v)
	if err != nil {
		return err
	}

	n := len(boundary)
	cavityPositions := make([]scalar.Vec2[S], n)
	vertexMap := make([]int, n)
	extOf := make(map[[2]int]int, n)
	for i, e := range boundary {
		cavityPositions[i] = mesh.Positions[e.v0]
		vertexMap[i] = e.v0
		extOf[[2]int{e.v0, e.v1}] = e.outerHalfedge
	}

	cavityMesh, st := delaunay.Build(cavityPositions, tr)
	if !st.OK() {
		return errors.New("dynamic: cavity re-triangulation failed")
	}

	ringEdges := make([]int, 0, n*2)
	for i := 0; i < n; i++ {
		ringEdges = append(ringEdges, i, (i+1)%n)
	}
	sloan.Force(cavityMesh, tr, ringEdges, nil, 10000)
	seed.Plant(cavityMesh, tr, seed.Options[S]{RestoreBoundary: true})

	internal := map[[2]int]int{}
	for t := 0; t < cavityMesh.NumTriangles(); t++ {
		cb := t * 3
		verts := [3]int{
			vertexMap[cavityMesh.Triangles[cb]],
			vertexMap[cavityMesh.Triangles[cb+1]],
			vertexMap[cavityMesh.Triangles[cb+2]],
		}
		newT := mesh.AppendTriangle(verts[0], verts[1], verts[2])
		for slot := 0; slot < 3; slot++ {
			a, b := verts[slot], verts[(slot+1)%3]
			h := newT + slot
			if ext, ok := extOf[[2]int{a, b}]; ok {
				mesh.Halfedges[h] = ext
				if ext != halfedge.Boundary {
					mesh.Halfedges[ext] = h
				}
				continue
			}
			if other, ok := internal[[2]int{b, a}]; ok {
				mesh.Link(h, other)
				continue
			}
			internal[[2]int{a, b}] = h
		}
	}

	halfedge.NewCompactor(mesh).Remove(dead)
	removeVertex(mesh, v)
	return nil
}

// oneRingBoundary finds every triangle incident to v (the cavity left by
// its removal) and traces the ordered polygon boundary around it, in the
// same style as the Bowyer-Watson cavity tracer: build a v0->edge map over
// every outward-facing edge of the cavity triangles, then follow it
// around. Returns an error if v lies on the mesh boundary.
func oneRingBoundary[S any](mesh *halfedge.Mesh[S], v int) (dead []int, boundary []ringBoundaryEdge, err error) {
	n := mesh.NumTriangles()
	inCavity := make([]bool, n)
	for t := 0; t < n; t++ {
		base := t * 3
		if mesh.Triangles[base] == v || mesh.Triangles[base+1] == v || mesh.Triangles[base+2] == v {
			inCavity[t] = true
			dead = append(dead, t)
		}
	}
	if len(dead) == 0 {
		return nil, nil, ErrBoundaryVertex
	}

	edgeOf := map[int]ringBoundaryEdge{}
	for _, t := range dead {
		base := t * 3
		for slot := 0; slot < 3; slot++ {
			h := base + slot
			if mesh.Triangles[h] == v || mesh.Triangles[halfedge.Next(h)] == v {
				if mesh.Halfedges[h] == halfedge.Boundary {
					return nil, nil, ErrBoundaryVertex // hull edge touching v
				}
				continue // spoke edge touching v
			}
			twin := mesh.Halfedges[h]
			if twin != halfedge.Boundary && inCavity[halfedge.TriangleOf(twin)] {
				continue
			}
			v0, v1 := mesh.Triangles[h], mesh.Triangles[halfedge.Next(h)]
			edgeOf[v0] = ringBoundaryEdge{outerHalfedge: twin, v0: v0, v1: v1}
		}
	}

	var start int
	for k := range edgeOf {
		start = k
		break
	}
	cur := start
	for i := 0; i < len(edgeOf); i++ {
		e, ok := edgeOf[cur]
		if !ok {
			break
		}
		boundary = append(boundary, e)
		cur = e.v1
		if cur == start {
			break
		}
	}
	return dead, boundary, nil
}

// removeVertex deletes position v and decrements every higher vertex index
// referenced by the mesh.
func removeVertex[S any](mesh *halfedge.Mesh[S], v int) {
	mesh.Positions = append(mesh.Positions[:v], mesh.Positions[v+1:]...)
	for h := range mesh.Triangles {
		if mesh.Triangles[h] > v {
			mesh.Triangles[h]--
		}
	}
}
