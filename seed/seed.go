// Package seed plants holes into a constrained mesh: a breadth-first
// flood-fill across non-constrained (or ignore-flagged) halfedges starting
// from hole seeds, boundary triangles, or both, followed by in-place
// compaction of the removed triangles.
package seed

import (
	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/internal/queue"
	"github.com/halfmesh/cdt2d/scalar"
)

// Options selects which seeding modes run; any subset may be set.
type Options[S any] struct {
	HoleSeeds            []scalar.Vec2[S]
	RestoreBoundary      bool
	AutoHolesAndBoundary bool
}

// Plant removes every triangle reachable from the selected seeds by
// crossing only non-constrained (or ignored) halfedges, then compacts the
// mesh. queues lists work queues (e.g. refinement's bad-triangle and
// encroachment queues) that must be rebased across the compaction.
func Plant[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], opts Options[S], queues ...*queue.Queue) {
	n := mesh.NumTriangles()
	dead := make([]bool, n)
	visited := make([]bool, n)

	floodFrom := func(start int) {
		if start < 0 || start >= n || visited[start] || dead[start] {
			return
		}
		q := []int{start}
		visited[start] = true
		dead[start] = true
		for len(q) > 0 {
			t := q[0]
			q = q[1:]
			base := t * 3
			for slot := 0; slot < 3; slot++ {
				h := base + slot
				if mesh.Constrained[h] && !ignoredFlag(mesh, h) {
					continue
				}
				twin := mesh.Halfedges[h]
				if twin == halfedge.Boundary {
					continue
				}
				nt := halfedge.TriangleOf(twin)
				if visited[nt] {
					continue
				}
				visited[nt] = true
				dead[nt] = true
				q = append(q, nt)
			}
		}
	}

	for _, seedPoint := range opts.HoleSeeds {
		if t, ok := locateTriangle(mesh, tr, seedPoint); ok {
			floodFrom(t)
		}
	}

	if opts.RestoreBoundary {
		for t := 0; t < n; t++ {
			base := t * 3
			for slot := 0; slot < 3; slot++ {
				h := base + slot
				if mesh.Halfedges[h] == halfedge.Boundary && !mesh.Constrained[h] {
					floodFrom(t)
					break
				}
			}
		}
	}

	if opts.AutoHolesAndBoundary {
		for t := 0; t < n; t++ {
			base := t * 3
			for slot := 0; slot < 3; slot++ {
				h := base + slot
				if mesh.Halfedges[h] != halfedge.Boundary {
					continue
				}
				if !mesh.Constrained[h] {
					floodFrom(t)
				} else {
					// Constrained boundary: propagate one level inward to
					// discover a single island, per spec (deeper nesting
					// is not detected).
					twinSide := oppositeBoundaryNeighbor(mesh, h)
					if twinSide >= 0 {
						floodFrom(twinSide)
					}
				}
			}
		}
	}

	deadList := make([]int, 0)
	for t := 0; t < n; t++ {
		if dead[t] {
			deadList = append(deadList, t)
		}
	}
	if len(deadList) == 0 {
		return
	}

	old2new := halfedge.NewCompactor(mesh).Remove(deadList)
	remap := func(old int) int {
		oldTri := old / 3
		slot := old % 3
		if oldTri < 0 || oldTri >= len(old2new) || old2new[oldTri] < 0 {
			return -1
		}
		return old2new[oldTri]*3 + slot
	}
	for _, q := range queues {
		if q != nil {
			q.Rebase(remap)
		}
	}
}

func ignoredFlag[S any](mesh *halfedge.Mesh[S], h int) bool {
	return mesh.IgnoredForPlanting != nil && mesh.IgnoredForPlanting[h]
}

// oppositeBoundaryNeighbor finds, for a constrained boundary halfedge h,
// a neighboring interior triangle across one of its non-boundary sides,
// used as the seed for the one-level auto-hole sweep.
func oppositeBoundaryNeighbor[S any](mesh *halfedge.Mesh[S], h int) int {
	tri := halfedge.TriangleOf(h)
	base := tri * 3
	for slot := 0; slot < 3; slot++ {
		g := base + slot
		if g == h {
			continue
		}
		if twin := mesh.Halfedges[g]; twin != halfedge.Boundary && !mesh.Constrained[g] {
			return halfedge.TriangleOf(twin)
		}
	}
	return -1
}

// locateTriangle finds the triangle containing p via linear scan with an
// inclusive barycentric inside-test.
func locateTriangle[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], p scalar.Vec2[S]) (int, bool) {
	for t := 0; t < mesh.NumTriangles(); t++ {
		base := t * 3
		a := mesh.Positions[mesh.Triangles[base]]
		b := mesh.Positions[mesh.Triangles[base+1]]
		c := mesh.Positions[mesh.Triangles[base+2]]
		// Triangles are clockwise, so all three orient tests against the
		// (reversed) edges should be <= 0 for an interior/boundary point.
		o1 := tr.Orient(a, b, p)
		o2 := tr.Orient(b, c, p)
		o3 := tr.Orient(c, a, p)
		if o1 <= 0 && o2 <= 0 && o3 <= 0 {
			return t, true
		}
	}
	return -1, false
}
