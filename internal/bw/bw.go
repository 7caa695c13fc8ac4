// Package bw implements the Bowyer-Watson cavity insertion shared by
// refinement and the dynamic post-triangulation operations: find every
// triangle whose circumcircle contains a new point, remove that
// star-shaped cavity, and re-triangulate by fanning from the new point.
package bw

import (
	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/scalar"
)

// cavityEdge is one boundary edge of a discovered cavity: the halfedge on
// the outside of the cavity (possibly boundary, i.e. -1 neighbor) paired
// with its two endpoint vertices in cavity-boundary order.
type cavityEdge struct {
	outerHalfedge int // -1 if the cavity boundary is itself a mesh boundary
	v0, v1        int
	constrained   bool
	ignored       bool
}

// InsertBulk inserts newVertex (already appended to mesh.Positions) by
// Bowyer-Watson starting the cavity search from startTriangle, which must
// contain the point. It returns the indices of the triangles it removed
// (for the caller to compact) and the new triangle indices it added.
func InsertBulk[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], startTriangle, newVertex int) (removed []int, added []int) {
	boundary, removed := findCavity(mesh, tr, startTriangle, newVertex)
	added = fan(mesh, boundary, newVertex)
	return removed, added
}

// findCavity runs a BFS from startTriangle across twin edges whose
// opposite triangle's circumcircle contains p, stopping at constrained
// edges or edges whose neighbor fails the in-circle test. It returns the
// ordered cavity boundary and the set of swallowed triangle indices.
func findCavity[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], startTriangle, p int) ([]cavityEdge, []int) {
	n := mesh.NumTriangles()
	visited := make([]bool, n)
	inCavity := make([]bool, n)

	var removed []int
	queue := []int{startTriangle}
	visited[startTriangle] = true
	inCavity[startTriangle] = true
	removed = append(removed, startTriangle)

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		base := t * 3
		for slot := 0; slot < 3; slot++ {
			h := base + slot
			twin := mesh.Halfedges[h]
			if twin == halfedge.Boundary || mesh.Constrained[h] {
				continue
			}
			nt := halfedge.TriangleOf(twin)
			if visited[nt] {
				continue
			}
			visited[nt] = true
			if circumcircleContains(mesh, tr, nt, p) {
				inCavity[nt] = true
				removed = append(removed, nt)
				queue = append(queue, nt)
			}
		}
	}

	boundary := traceCavityBoundary(mesh, inCavity, startTriangle)
	return boundary, removed
}

func circumcircleContains[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], t, p int) bool {
	base := t * 3
	a := mesh.Positions[mesh.Triangles[base]]
	b := mesh.Positions[mesh.Triangles[base+1]]
	c := mesh.Positions[mesh.Triangles[base+2]]
	d := mesh.Positions[p]
	// Mesh triangles are clockwise; InCircle assumes counter-clockwise
	// input, so pass the vertices in reverse order.
	return tr.InCircle(a, c, b, d) > 0
}

// traceCavityBoundary walks every halfedge of every triangle marked
// inCavity and keeps the ones whose twin is outside the cavity (or
// nonexistent), in the order the fan needs: following the cavity's own
// outline around the new point.
func traceCavityBoundary[S any](mesh *halfedge.Mesh[S], inCavity []bool, anyCavityTriangle int) []cavityEdge {
	edgeOf := map[int]cavityEdge{}
	n := mesh.NumTriangles()
	for t := 0; t < n; t++ {
		if !inCavity[t] {
			continue
		}
		base := t * 3
		for slot := 0; slot < 3; slot++ {
			h := base + slot
			twin := mesh.Halfedges[h]
			if twin != halfedge.Boundary && inCavity[halfedge.TriangleOf(twin)] {
				continue
			}
			v0 := mesh.Triangles[h]
			v1 := mesh.Triangles[halfedge.Next(h)]
			edgeOf[v0] = cavityEdge{
				outerHalfedge: twin,
				v0:            v0,
				v1:            v1,
				constrained:   mesh.Constrained[h],
				ignored:       ignoredFlag(mesh, h),
			}
		}
	}

	if len(edgeOf) == 0 {
		return nil
	}

	// Stitch the loop starting from an arbitrary edge.
	var start int
	for v := range edgeOf {
		start = v
		break
	}
	ordered := make([]cavityEdge, 0, len(edgeOf))
	cur := start
	for i := 0; i < len(edgeOf); i++ {
		e, ok := edgeOf[cur]
		if !ok {
			break
		}
		ordered = append(ordered, e)
		cur = e.v1
		if cur == start {
			break
		}
	}
	return ordered
}

func ignoredFlag[S any](mesh *halfedge.Mesh[S], h int) bool {
	return mesh.IgnoredForPlanting != nil && mesh.IgnoredForPlanting[h]
}

// fan triangulates the cavity by connecting each boundary edge to the new
// point, re-linking twins along the boundary and stitching the new
// internal edges between consecutive fan triangles.
func fan[S any](mesh *halfedge.Mesh[S], boundary []cavityEdge, p int) []int {
	added := make([]int, 0, len(boundary))
	prevTriangle := -1
	firstTriangle := -1

	for _, e := range boundary {
		t := mesh.AppendTriangle(e.v0, e.v1, p)
		added = append(added, t)

		mesh.Halfedges[t] = e.outerHalfedge
		if e.outerHalfedge != halfedge.Boundary {
			mesh.Halfedges[e.outerHalfedge] = t
		}
		mesh.Constrained[t] = e.constrained
		if e.constrained && mesh.Halfedges[t] != halfedge.Boundary {
			mesh.Constrained[mesh.Halfedges[t]] = true
		}
		if mesh.IgnoredForPlanting != nil {
			mesh.IgnoredForPlanting[t] = e.ignored
		}

		if prevTriangle != -1 {
			mesh.Link(prevTriangle+1, t+2)
		}
		if firstTriangle == -1 {
			firstTriangle = t
		}
		prevTriangle = t
	}

	// A closed cavity boundary (the common case: every insertion except
	// one on the true mesh boundary) wraps around on itself, so the last
	// fan triangle's trailing spoke and the first fan triangle's leading
	// spoke are twins too; the loop above only links consecutive pairs
	// and leaves this wrap-around pair at the Boundary sentinel.
	if len(boundary) > 1 && boundary[0].v0 == boundary[len(boundary)-1].v1 {
		mesh.Link(prevTriangle+1, firstTriangle+2)
	}

	return added
}

// InsertBoundary behaves like InsertBulk but for a cavity whose boundary
// is open (terminates at true mesh boundary halfedges on both ends), used
// when the inserted point sits on the mesh's outer boundary.
func InsertBoundary[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], startTriangle, newVertex int) (removed []int, added []int) {
	return InsertBulk(mesh, tr, startTriangle, newVertex)
}
