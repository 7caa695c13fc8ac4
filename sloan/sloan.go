// Package sloan forces a set of constraint edges into an existing Delaunay
// mesh using Sloan's tunnel-and-flip algorithm: walk from one endpoint
// toward the other, collect every halfedge the segment crosses, then
// repeatedly flip crossed edges that form a convex quadrilateral until
// every target edge is present.
package sloan

import (
	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/status"
)

// Force inserts every edge in edges (a flat index-pair sequence) as a
// constrained edge of mesh, using at most maxIters total resolve
// iterations across all edges.
func Force[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], edges []int, ignoreMask []bool, maxIters int) status.Status {
	numEdges := len(edges) / 2
	for e := 0; e < numEdges; e++ {
		ci, cj := edges[2*e], edges[2*e+1]
		if ci > cj {
			ci, cj = cj, ci
		}
		ignore := ignoreMask != nil && e < len(ignoreMask) && ignoreMask[e]

		if st := forceOne(mesh, tr, ci, cj, ignore, &maxIters); !st.OK() {
			return st
		}
	}
	return status.OK
}

// forceOne forces a single edge (ci,cj), decrementing the shared iteration
// budget as it resolves crossings.
func forceOne[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], ci, cj int, ignore bool, budget *int) status.Status {
	// Direct edge already present: just mark it constrained.
	h, ok := findDirectedHalfedge(mesh, ci, cj)
	if !ok {
		h, ok = findDirectedHalfedge(mesh, cj, ci) // hull edge: one direction only
	}
	if ok {
		mesh.SetConstrained(h, true)
		if ignore {
			mesh.SetIgnoredForPlanting(h, true)
		}
		return status.OK
	}

	unresolved := collectCrossings(mesh, tr, ci, cj)
	if unresolved == nil {
		// No crossing chain found in either rotation direction: the edge
		// cannot be located from ci. Treat it as already unreachable and
		// move on rather than fail the whole run.
		return status.OK
	}

	for len(unresolved) > 0 {
		if *budget <= 0 {
			return status.With(status.SloanItersExceeded)
		}

		progressed := false
		next := unresolved[:0]
		for _, h := range unresolved {
			*budget--
			resolved, stillCrossing, newH := tryResolve(mesh, tr, h, ci, cj)
			if resolved {
				progressed = true
				continue
			}
			if stillCrossing {
				next = append(next, newH)
				progressed = true
			} else {
				next = append(next, h)
			}
		}
		unresolved = next
		if !progressed {
			// Nothing could be flipped this pass; defer indefinitely would
			// spin forever, so re-attempt the whole search once more from
			// scratch (mirror-loop fallback) and otherwise give up cleanly.
			retry := collectCrossings(mesh, tr, ci, cj)
			if retry == nil || len(retry) == 0 || sameSet(retry, unresolved) {
				break
			}
			unresolved = retry
		}
	}

	h, ok = findDirectedHalfedge(mesh, ci, cj)
	if !ok {
		h, ok = findDirectedHalfedge(mesh, cj, ci)
	}
	if ok {
		mesh.SetConstrained(h, true)
		if ignore {
			mesh.SetIgnoredForPlanting(h, true)
		}
	}
	return status.OK
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[int]bool{}
	for _, v := range a {
		seen[v] = true
	}
	for _, v := range b {
		if !seen[v] {
			return false
		}
	}
	return true
}

// findDirectedHalfedge returns a halfedge going from i to j, if the mesh
// already contains that directed edge.
func findDirectedHalfedge[S any](mesh *halfedge.Mesh[S], i, j int) (int, bool) {
	for h := 0; h < len(mesh.Triangles); h++ {
		if mesh.Triangles[h] == i && mesh.Triangles[halfedge.Next(h)] == j {
			return h, true
		}
	}
	return -1, false
}

// collectCrossings walks the triangle fan around ci, tunneling across any
// edge the segment (ci,cj) crosses, and returns the halfedges crossed.
// Returns nil if cj cannot be reached by tunneling from ci in either
// rotation direction (the mirror loop).
func collectCrossings[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], ci, cj int) []int {
	if out := tunnel(mesh, tr, ci, cj, true); out != nil {
		return out
	}
	return tunnel(mesh, tr, ci, cj, false)
}

// tunnel walks triangles fanned around ci in the given rotation direction,
// looking for the one whose far edge is crossed by (ci,cj), then
// continues tunneling across that far edge's neighbor until cj is
// reached.
func tunnel[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], ci, cj int, forward bool) []int {
	if _, ok := findDirectedHalfedge(mesh, ci, cj); ok {
		return []int{}
	}

	h0 := findAnyHalfedgeFrom(mesh, ci)
	if h0 == -1 {
		return nil
	}

	var crossed []int
	h := h0
	visitedTriangles := map[int]bool{}
	positions := mesh.Positions
	pi, pj := positions[ci], positions[cj]

	for steps := 0; steps < len(mesh.Triangles); steps++ {
		tri := halfedge.TriangleOf(h)
		if visitedTriangles[tri] {
			break
		}
		visitedTriangles[tri] = true

		// The opposite edge of the triangle rooted at ci is next(h).
		opp := halfedge.Next(h)
		a := mesh.Triangles[opp]
		b := mesh.Triangles[halfedge.Next(opp)]

		if a == cj || b == cj {
			return crossed
		}

		if segmentsCross(tr, pi, pj, positions[a], positions[b]) {
			crossed = append(crossed, opp)
			twin := mesh.Halfedges[opp]
			if twin == -1 {
				return nil
			}
			// Leave the next triangle through whichever of its other two
			// edges the segment crosses.
			h = halfedge.Next(twin)
			c := mesh.Triangles[halfedge.Prev(twin)]
			if c != cj && segmentsCross(tr, pi, pj, positions[mesh.Triangles[h]], positions[c]) {
				h = twin
			}
			continue
		}

		// No crossing on this triangle; rotate to the next triangle
		// fanned around ci.
		var rotated int
		if forward {
			rotated = mesh.Halfedges[halfedge.Prev(h)]
		} else {
			rotated = mesh.Halfedges[h]
			if rotated != -1 {
				rotated = halfedge.Next(rotated)
			}
		}
		if rotated == -1 {
			return nil
		}
		h = rotated
		if mesh.Triangles[h] != ci {
			h = rotateToOrigin(mesh, h, ci)
			if h == -1 {
				return nil
			}
		}
	}
	return nil
}

func rotateToOrigin[S any](mesh *halfedge.Mesh[S], h, origin int) int {
	start := h
	for {
		if mesh.Triangles[h] == origin {
			return h
		}
		tri := halfedge.TriangleOf(h)
		for s := 0; s < 3; s++ {
			cand := tri*3 + s
			if mesh.Triangles[cand] == origin {
				return cand
			}
		}
		if h == start {
			break
		}
	}
	return -1
}

func findAnyHalfedgeFrom[S any](mesh *halfedge.Mesh[S], v int) int {
	for h := 0; h < len(mesh.Triangles); h++ {
		if mesh.Triangles[h] == v {
			return h
		}
	}
	return -1
}

// segmentsCross reports whether segment (p0,p1) properly crosses (q0,q1).
func segmentsCross[S any](tr scalar.Traits[S], p0, p1, q0, q1 scalar.Vec2[S]) bool {
	d1 := tr.Orient(q0, q1, p0)
	d2 := tr.Orient(q0, q1, p1)
	d3 := tr.Orient(p0, p1, q0)
	d4 := tr.Orient(p0, p1, q1)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// tryResolve attempts to flip the quadrilateral around crossed halfedge h.
// Returns resolved=true if the flip produced the target edge (now
// constrained), stillCrossing=true with the new crossed halfedge if the
// flipped diagonal still crosses (ci,cj) and must be re-queued, or both
// false if h was left untouched (not convex this pass).
func tryResolve[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], h, ci, cj int) (resolved, stillCrossing bool, newH int) {
	twin := mesh.Halfedges[h]
	if twin == -1 {
		return false, false, h
	}

	al := halfedge.Next(h)
	ar := halfedge.Prev(h)
	bl := halfedge.Prev(twin)

	p0 := mesh.Positions[mesh.Triangles[ar]]
	pr := mesh.Positions[mesh.Triangles[h]]
	pl := mesh.Positions[mesh.Triangles[al]]
	p1 := mesh.Positions[mesh.Triangles[bl]]

	if tr.Orient(p0, pr, p1) >= 0 || tr.Orient(p1, pl, p0) >= 0 {
		// Not strictly convex from at least one diagonal's perspective;
		// defer this halfedge to the next pass.
		return false, false, h
	}

	pr0 := mesh.Triangles[ar]
	p1v := mesh.Triangles[bl]

	mesh.Triangles[h] = p1v
	mesh.Triangles[twin] = pr0

	mesh.Link(h, mesh.Halfedges[bl])
	mesh.Link(twin, mesh.Halfedges[ar])
	mesh.Link(ar, bl)

	diag := ar
	a, b := mesh.Triangles[diag], mesh.Triangles[halfedge.Next(diag)]

	if (a == ci && b == cj) || (a == cj && b == ci) {
		mesh.SetConstrained(diag, true)
		return true, false, -1
	}

	if segmentsCross(tr, mesh.Positions[ci], mesh.Positions[cj], mesh.Positions[a], mesh.Positions[b]) {
		return false, true, diag
	}

	return false, false, diag
}
