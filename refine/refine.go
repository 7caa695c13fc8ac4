// Package refine implements Ruppert's quality mesh refinement: repeatedly
// split encroached constrained segments and bad-quality triangles using
// Bowyer-Watson point insertion until both queues drain.
package refine

import (
	"math"

	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/internal/bw"
	"github.com/halfmesh/cdt2d/internal/queue"
	"github.com/halfmesh/cdt2d/scalar"
)

// Settings configures the refinement loop; fields mirror the relevant
// subset of the top-level triangulation settings.
type Settings[S any] struct {
	AreaThreshold     S
	CosAngleThreshold S
	ShellsParameter   S
}

// circleEntry caches a triangle's circumcenter and circumradius squared.
type circleEntry[S any] struct {
	center   scalar.Vec2[S]
	radiusSq S
	valid    bool
}

// Run performs Ruppert refinement in place on mesh, appending new points
// to mesh.Positions as needed. originalPointCount is the vertex count
// before refinement began (used by the concentric-shells split rule).
func Run[S any](mesh *halfedge.Mesh[S], tr scalar.Traits[S], settings Settings[S], originalPointCount int) {
	r := &refiner[S]{
		mesh:               mesh,
		tr:                 tr,
		settings:           settings,
		originalPointCount: originalPointCount,
		badQueue:           queue.New(),
		encroachQueue:      queue.New(),
	}
	r.rebuildCircleCache()
	r.seedQueues()
	r.drain()
}

type refiner[S any] struct {
	mesh               *halfedge.Mesh[S]
	tr                 scalar.Traits[S]
	settings           Settings[S]
	originalPointCount int
	circles            []circleEntry[S]
	badQueue           *queue.Queue
	encroachQueue      *queue.Queue
}

func (r *refiner[S]) rebuildCircleCache() {
	n := r.mesh.NumTriangles()
	r.circles = make([]circleEntry[S], n)
	for t := 0; t < n; t++ {
		r.refreshCircle(t)
	}
}

func (r *refiner[S]) refreshCircle(t int) {
	base := t * 3
	a := r.mesh.Positions[r.mesh.Triangles[base]]
	b := r.mesh.Positions[r.mesh.Triangles[base+1]]
	c := r.mesh.Positions[r.mesh.Triangles[base+2]]
	center, radiusSq, ok := r.tr.Circumcenter(a, c, b) // reverse for CCW input
	r.circles[t] = circleEntry[S]{center: center, radiusSq: radiusSq, valid: ok}
}

func (r *refiner[S]) seedQueues() {
	n := r.mesh.NumTriangles()
	for t := 0; t < n; t++ {
		base := t * 3
		for slot := 0; slot < 3; slot++ {
			h := base + slot
			if !r.mesh.Constrained[h] {
				continue
			}
			twin := r.mesh.Halfedges[h]
			if twin != halfedge.Boundary && h >= twin {
				continue // dedup: only queue once per undirected edge
			}
			if r.isEncroached(h) {
				r.encroachQueue.Push(h)
			}
		}
		if r.isBad(t) {
			r.badQueue.Push(t)
		}
	}
}

// isEncroached tests a constrained halfedge against the opposite
// vertex(es) of its incident triangle(s).
func (r *refiner[S]) isEncroached(h int) bool {
	m := r.mesh
	opp := m.Triangles[oppositeSlot(h)]
	p0 := m.Positions[m.Triangles[h]]
	p1 := m.Positions[m.Triangles[halfedge.Next(h)]]
	p2 := m.Positions[opp]
	if dotEncroach(r.tr, p0, p1, p2) {
		return true
	}
	if twin := m.Halfedges[h]; twin != halfedge.Boundary {
		opp2 := m.Triangles[oppositeSlot(twin)]
		p3 := m.Positions[opp2]
		if dotEncroach(r.tr, p0, p1, p3) {
			return true
		}
	}
	return false
}

func oppositeSlot(h int) int {
	return halfedge.Next(halfedge.Next(h))
}

func dotEncroach[S any](tr scalar.Traits[S], p0, p1, p2 scalar.Vec2[S]) bool {
	d0 := scalar.Vec2[S]{X: tr.Sub(p0.X, p2.X), Y: tr.Sub(p0.Y, p2.Y)}
	d1 := scalar.Vec2[S]{X: tr.Sub(p1.X, p2.X), Y: tr.Sub(p1.Y, p2.Y)}
	dot := tr.Add(tr.Mul(d0.X, d1.X), tr.Mul(d0.Y, d1.Y))
	return !tr.Less(tr.Zero(), dot) // dot <= 0
}

func (r *refiner[S]) isBad(t int) bool {
	m := r.mesh
	base := t * 3
	a := m.Positions[m.Triangles[base]]
	b := m.Positions[m.Triangles[base+1]]
	c := m.Positions[m.Triangles[base+2]]

	twiceArea := r.tr.Abs(tri2Area(r.tr, a, b, c))
	if r.tr.Less(r.settings.AreaThreshold, twiceArea) {
		return true
	}

	return r.hasSmallAngle(a, b, c) || r.hasSmallAngle(b, c, a) || r.hasSmallAngle(c, a, b)
}

func tri2Area[S any](tr scalar.Traits[S], a, b, c scalar.Vec2[S]) S {
	ab := scalar.Vec2[S]{X: tr.Sub(b.X, a.X), Y: tr.Sub(b.Y, a.Y)}
	ac := scalar.Vec2[S]{X: tr.Sub(c.X, a.X), Y: tr.Sub(c.Y, a.Y)}
	return tr.Sub(tr.Mul(ab.X, ac.Y), tr.Mul(ab.Y, ac.X))
}

// hasSmallAngle tests the angle at vertex p (between edges to q and r)
// against the configured minimum, without calling acos: cos(angle) =
// (u.v)/(|u||v|), compared against cos(thetaMin).
func (r *refiner[S]) hasSmallAngle(p, q, rr scalar.Vec2[S]) bool {
	tr := r.tr
	u := scalar.Vec2[S]{X: tr.Sub(q.X, p.X), Y: tr.Sub(q.Y, p.Y)}
	v := scalar.Vec2[S]{X: tr.Sub(rr.X, p.X), Y: tr.Sub(rr.Y, p.Y)}
	dot := tr.Add(tr.Mul(u.X, v.X), tr.Mul(u.Y, v.Y))
	lu := math.Sqrt(tr.ToFloat64(tr.Dot(u, u)))
	lv := math.Sqrt(tr.ToFloat64(tr.Dot(v, v)))
	if lu == 0 || lv == 0 {
		return false
	}
	cosAngle := tr.ToFloat64(dot) / (lu * lv)
	return cosAngle > tr.ToFloat64(r.settings.CosAngleThreshold)
}

func (r *refiner[S]) drain() {
	for !r.encroachQueue.Empty() || !r.badQueue.Empty() {
		for !r.encroachQueue.Empty() {
			h := r.encroachQueue.Pop()
			if h >= len(r.mesh.Constrained) || !r.mesh.Constrained[h] {
				continue
			}
			r.splitSegment(h)
		}
		if !r.badQueue.Empty() {
			t := r.badQueue.Pop()
			if t >= r.mesh.NumTriangles() {
				continue
			}
			r.splitTriangle(t)
		}
	}
}

func (r *refiner[S]) splitSegment(h int) {
	m := r.mesh
	tr := r.tr
	i := m.Triangles[h]
	j := m.Triangles[halfedge.Next(h)]

	pi, pj := m.Positions[i], m.Positions[j]
	var newPoint scalar.Vec2[S]

	iOrig := i < r.originalPointCount
	jOrig := j < r.originalPointCount
	if iOrig == jOrig {
		newPoint = tr.Lerp(pi, pj, tr.FromFloat64(0.5))
	} else {
		// Concentric shells: keep the input-vertex endpoint as p0.
		p0, p1 := pi, pj
		if !iOrig {
			p0, p1 = pj, pi
		}
		d := math.Sqrt(tr.ToFloat64(tr.SqDist(p0, p1)))
		shells := tr.ToFloat64(r.settings.ShellsParameter)
		if shells <= 0 {
			shells = 0.001
		}
		k := math.Round(math.Log2(d / (2 * shells)))
		alpha := shells / d * math.Pow(2, k)
		if alpha > 1 {
			alpha = 1
		}
		newPoint = tr.Lerp(p0, p1, tr.FromFloat64(alpha))
	}

	m.Positions = append(m.Positions, newPoint)
	newVertex := len(m.Positions) - 1

	m.SetConstrained(h, false)

	startTriangle := halfedge.TriangleOf(h)
	removed, added := bw.InsertBulk(m, tr, startTriangle, newVertex)
	r.rebaseAfterInsert(removed, added)

	h1, h2, ok := findEdgesBetween(m, i, newVertex, j)
	if ok {
		m.SetConstrained(h1, true)
		m.SetConstrained(h2, true)
		if r.isEncroached(h1) {
			r.encroachQueue.Push(h1)
		}
		if r.isEncroached(h2) {
			r.encroachQueue.Push(h2)
		}
	}
}

func (r *refiner[S]) splitTriangle(t int) {
	if t >= len(r.circles) || !r.circles[t].valid {
		return
	}
	m := r.mesh
	tr := r.tr
	center := r.circles[t].center

	base := t * 3
	for slot := 0; slot < 3; slot++ {
		h := base + slot
		if !m.Constrained[h] {
			continue
		}
		twin := m.Halfedges[h]
		if twin != halfedge.Boundary && h >= twin {
			continue
		}
		p0 := m.Positions[m.Triangles[h]]
		p1 := m.Positions[m.Triangles[halfedge.Next(h)]]
		d0 := scalar.Vec2[S]{X: tr.Sub(p0.X, center.X), Y: tr.Sub(p0.Y, center.Y)}
		d1 := scalar.Vec2[S]{X: tr.Sub(p1.X, center.X), Y: tr.Sub(p1.Y, center.Y)}
		dot := tr.Add(tr.Mul(d0.X, d1.X), tr.Mul(d0.Y, d1.Y))
		if !tr.Less(tr.Zero(), dot) {
			r.encroachQueue.Push(h)
			return
		}
	}

	m.Positions = append(m.Positions, center)
	newVertex := len(m.Positions) - 1
	removed, added := bw.InsertBulk(m, tr, t, newVertex)
	r.rebaseAfterInsert(removed, added)
}

func (r *refiner[S]) rebaseAfterInsert(removed, added []int) {
	old2new := halfedge.NewCompactor(r.mesh).Remove(removed)
	remap := func(old int) int {
		if old < 0 || old >= len(old2new) {
			return -1
		}
		return old2new[old]
	}
	r.badQueue.Rebase(func(old int) int { return remap(old) })
	r.encroachQueue.Rebase(func(old int) int {
		tri := old / 3
		slot := old % 3
		nt := remap(tri)
		if nt < 0 {
			return -1
		}
		return nt*3 + slot
	})
	r.rebuildCircleCache()

	for _, t := range added {
		if nt := remap(t); nt >= 0 && nt < r.mesh.NumTriangles() {
			if r.isBad(nt) {
				r.badQueue.Push(nt)
			}
		}
	}
}

// findEdgesBetween locates, after an insertion splits (i,j) at mid, the
// two resulting halfedges i->mid and mid->j.
func findEdgesBetween[S any](m *halfedge.Mesh[S], i, mid, j int) (h1, h2 int, ok bool) {
	h1, h2 = -1, -1
	for h := 0; h < len(m.Triangles); h++ {
		a, b := m.Triangles[h], m.Triangles[halfedge.Next(h)]
		if a == i && b == mid {
			h1 = h
		}
		if a == mid && b == j {
			h2 = h
		}
	}
	return h1, h2, h1 != -1 && h2 != -1
}
