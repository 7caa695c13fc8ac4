// Package delaunay builds the initial convex-hull Delaunay triangulation
// from a flat set of positions, following the incremental sweep used by
// delaunator: pick a seed triangle near the bounding-box center, sort the
// rest by distance to its circumcenter, then fan each point into the
// growing hull, legalizing new edges with an explicit flip stack.
//
// The sweep itself is carried out with points wound counter-clockwise
// (matching Traits.Orient and Traits.InCircle's documented convention);
// the finished mesh is flipped to the clockwise winding the rest of the
// pipeline requires in a single pass at the end.
package delaunay

import (
	"math"
	"sort"

	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/status"
)

// Build triangulates positions into the convex hull Delaunay mesh. The
// returned mesh has Constrained and IgnoredForPlanting all false.
func Build[S any](positions []scalar.Vec2[S], tr scalar.Traits[S]) (*halfedge.Mesh[S], status.Status) {
	n := len(positions)
	mesh := halfedge.New(positions)

	i0, i1, i2, ok := seedTriangle(positions, tr)
	if !ok {
		return mesh, status.With(status.DelaunayDegenerate)
	}

	if tr.Orient(positions[i0], positions[i1], positions[i2]) < 0 {
		i1, i2 = i2, i1
	}

	center, _, _ := tr.Circumcenter(positions[i0], positions[i1], positions[i2])

	order := make([]int, 0, n-3)
	for i := 0; i < n; i++ {
		if i == i0 || i == i1 || i == i2 {
			continue
		}
		order = append(order, i)
	}
	sort.Slice(order, func(a, b int) bool {
		return tr.ToFloat64(tr.SqDist(positions[order[a]], center)) < tr.ToFloat64(tr.SqDist(positions[order[b]], center))
	})

	b := &builder[S]{
		mesh:     mesh,
		tr:       tr,
		hashSize: hullHashSize(n),
	}
	b.hullHash = make([]int, b.hashSize)
	for i := range b.hullHash {
		b.hullHash[i] = -1
	}
	b.hullPrev = make([]int, n)
	b.hullNext = make([]int, n)
	for i := range b.hullNext {
		b.hullNext[i] = -1 // not on the hull until inserted
	}
	b.hullTri = make([]int, n)

	h0 := mesh.AppendTriangle(i0, i1, i2)
	b.hullNext[i0], b.hullPrev[i1] = i1, i0
	b.hullNext[i1], b.hullPrev[i2] = i2, i1
	b.hullNext[i2], b.hullPrev[i0] = i0, i2
	b.hullTri[i0] = h0
	b.hullTri[i1] = h0 + 1
	b.hullTri[i2] = h0 + 2
	b.hashInsert(i0, center)
	b.hashInsert(i1, center)
	b.hashInsert(i2, center)

	for _, p := range order {
		b.insert(p, center)
	}

	reverseWinding(mesh)
	return mesh, status.OK
}

// seedTriangle picks the three non-collinear, non-duplicate points closest
// to the bounding-box center and closest to each other, per spec 4.4.
func seedTriangle[S any](positions []scalar.Vec2[S], tr scalar.Traits[S]) (i0, i1, i2 int, ok bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range positions {
		x, y := tr.ToFloat64(p.X), tr.ToFloat64(p.Y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	center := scalar.Vec2[S]{X: tr.FromFloat64((minX + maxX) / 2), Y: tr.FromFloat64((minY + maxY) / 2)}

	i0 = 0
	best := math.Inf(1)
	for i, p := range positions {
		d := tr.ToFloat64(tr.SqDist(p, center))
		if d < best {
			best, i0 = d, i
		}
	}

	i1 = -1
	best = math.Inf(1)
	for i, p := range positions {
		if i == i0 {
			continue
		}
		d := tr.ToFloat64(tr.SqDist(p, positions[i0]))
		if d < best {
			best, i1 = d, i
		}
	}
	if i1 < 0 {
		return 0, 0, 0, false
	}

	i2 = -1
	bestRadius := math.Inf(1)
	for i, p := range positions {
		if i == i0 || i == i1 {
			continue
		}
		if tr.Orient(positions[i0], positions[i1], p) == 0 {
			continue
		}
		_, radiusSq, okC := tr.Circumcenter(positions[i0], positions[i1], p)
		if !okC {
			continue
		}
		r := tr.ToFloat64(radiusSq)
		if r < bestRadius {
			bestRadius, i2 = r, i
		}
	}
	if i2 < 0 {
		return 0, 0, 0, false
	}

	return i0, i1, i2, true
}

func hullHashSize(n int) int {
	h := int(math.Ceil(math.Sqrt(float64(n))))
	if h < 1 {
		h = 1
	}
	return h
}

type builder[S any] struct {
	mesh     *halfedge.Mesh[S]
	tr       scalar.Traits[S]
	hashSize int
	hullHash []int
	hullPrev []int
	hullNext []int
	hullTri  []int
	edgeStack []int
}

func (b *builder[S]) hashKey(p, center scalar.Vec2[S]) int {
	return b.tr.HashKey(p, center, b.hashSize)
}

func (b *builder[S]) hashInsert(v int, center scalar.Vec2[S]) {
	b.hullHash[b.hashKey(b.mesh.Positions[v], center)] = v
}

func (b *builder[S]) findVisibleStart(p scalar.Vec2[S], center scalar.Vec2[S]) int {
	key := b.hashKey(p, center)
	for i := 0; i < b.hashSize; i++ {
		e := b.hullHash[(key+i)%b.hashSize]
		if e != -1 && b.hullNext[e] != -1 {
			return e
		}
	}
	// Fallback: any still-live hull vertex.
	for v, nxt := range b.hullNext {
		if nxt != -1 {
			return v
		}
	}
	return -1
}

// insert fans vertex p into the hull, legalizing each new edge. hullTri[v]
// is kept as the mesh halfedge representing the directed hull edge
// v -> hullNext[v].
func (b *builder[S]) insert(p int, center scalar.Vec2[S]) {
	tr := b.tr
	positions := b.mesh.Positions
	pp := positions[p]

	start := b.findVisibleStart(pp, center)
	if start == -1 {
		return
	}

	// Walk backward while the preceding edge is still visible from p, to
	// find the start of the visible run.
	for {
		pe := b.hullPrev[start]
		if tr.Orient(positions[pe], positions[start], pp) >= 0 {
			break
		}
		start = pe
	}

	// If that edge is not visible either, the visible run (if any) starts
	// further along the hull.
	for first := start; tr.Orient(positions[start], positions[b.hullNext[start]], pp) >= 0; {
		start = b.hullNext[start]
		if start == first {
			return // nothing visible from p; degenerate/collinear point, skip
		}
	}

	firstTriangle := -1
	prevTriangle := -1
	cur := start
	for {
		next := b.hullNext[cur]
		if tr.Orient(positions[cur], positions[next], pp) >= 0 {
			break
		}

		t := b.mesh.AppendTriangle(cur, p, next)
		b.mesh.Link(t+2, b.hullTri[cur])
		if prevTriangle != -1 {
			b.mesh.Link(prevTriangle+1, t)
		} else {
			firstTriangle = t
		}
		b.legalize(t + 2)

		if cur != start {
			b.hullNext[cur] = -1 // cur is now interior, removed from hull
		}
		prevTriangle = t
		cur = next
	}
	final := cur

	b.hullNext[start] = p
	b.hullPrev[p] = start
	b.hullNext[p] = final
	b.hullPrev[final] = p
	b.hullTri[start] = firstTriangle // edge start->p
	b.hullTri[p] = prevTriangle + 1  // edge p->final

	b.hashInsert(p, center)
	b.hashInsert(start, center)
}

// edgeStackCap bounds legalize's explicit stack; a push beyond it is
// dropped, so legalization stops along that branch.
const edgeStackCap = 512

// legalize flips a (and recursively its neighbors, via an explicit stack)
// until every new edge satisfies the in-circle test.
func (b *builder[S]) legalize(a int) {
	m := b.mesh
	tr := b.tr
	b.edgeStack = b.edgeStack[:0]

	for {
		bTwin := m.Halfedges[a]
		ar := halfedge.Prev(a)

		if bTwin == -1 {
			if len(b.edgeStack) == 0 {
				return
			}
			a = b.edgeStack[len(b.edgeStack)-1]
			b.edgeStack = b.edgeStack[:len(b.edgeStack)-1]
			continue
		}

		al := halfedge.Next(a)
		bl := halfedge.Prev(bTwin)

		p0 := m.Triangles[ar]
		pr := m.Triangles[a]
		pl := m.Triangles[al]
		p1 := m.Triangles[bl]

		illegal := tr.InCircle(positions(m, p0), positions(m, pr), positions(m, pl), positions(m, p1)) > 0

		if !illegal {
			if len(b.edgeStack) == 0 {
				return
			}
			a = b.edgeStack[len(b.edgeStack)-1]
			b.edgeStack = b.edgeStack[:len(b.edgeStack)-1]
			continue
		}

		m.Triangles[a] = p1
		m.Triangles[bTwin] = p0

		hbl := m.Halfedges[bl]
		if hbl == -1 {
			b.fixHullTriAfterFlip(bl, a)
		}
		m.Link(a, hbl)
		m.Link(bTwin, m.Halfedges[ar])
		m.Link(ar, bl)

		br := halfedge.Next(bTwin)
		if len(b.edgeStack) < edgeStackCap {
			b.edgeStack = append(b.edgeStack, br)
		}
	}
}

func (b *builder[S]) fixHullTriAfterFlip(oldHalfedge, newHalfedge int) {
	for v := range b.hullTri {
		if b.hullNext[v] != -1 && b.hullTri[v] == oldHalfedge {
			b.hullTri[v] = newHalfedge
			return
		}
	}
}

func positions[S any](m *halfedge.Mesh[S], v int) scalar.Vec2[S] {
	return m.Positions[v]
}

// reverseWinding flips every triangle from the builder's counter-clockwise
// working convention to the mesh's required clockwise winding, preserving
// twin/constrained/ignore symmetry.
func reverseWinding[S any](m *halfedge.Mesh[S]) {
	n := len(m.Triangles)
	newTriangles := make([]int, n)
	newHalfedges := make([]int, n)
	newConstrained := make([]bool, n)
	var newIgnored []bool
	if m.IgnoredForPlanting != nil {
		newIgnored = make([]bool, n)
	}

	// vperm relabels triangle vertices (v0,v1,v2) -> (v0,v2,v1); dperm
	// carries each halfedge's twin/flag data to its new slot under that
	// same relabeling.
	vperm := func(slot int) int { return (3 - slot) % 3 }
	dperm := func(slot int) int { return 2 - slot }

	for t := 0; t < n/3; t++ {
		base := t * 3
		for slot := 0; slot < 3; slot++ {
			newTriangles[base+slot] = m.Triangles[base+vperm(slot)]
		}
	}

	for h := 0; h < n; h++ {
		t := h / 3
		slot := h % 3
		newH := t*3 + dperm(slot)

		oldTwin := m.Halfedges[h]
		if oldTwin == -1 {
			newHalfedges[newH] = -1
		} else {
			tt := oldTwin / 3
			ts := oldTwin % 3
			newHalfedges[newH] = tt*3 + dperm(ts)
		}
		newConstrained[newH] = m.Constrained[h]
		if newIgnored != nil {
			newIgnored[newH] = m.IgnoredForPlanting[h]
		}
	}

	m.Triangles = newTriangles
	m.Halfedges = newHalfedges
	m.Constrained = newConstrained
	m.IgnoredForPlanting = newIgnored
}
