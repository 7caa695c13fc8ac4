// Package halfedge implements the flat-array half-edge mesh representation
// shared by every stage of the triangulation pipeline: three index-aligned
// sequences (triangles, halfedges, constrained) of length 3T, plus the
// optional ignore-for-planting mask.
package halfedge

import (
	"errors"
	"fmt"

	"github.com/halfmesh/cdt2d/scalar"
)

// Boundary is the twin sentinel for a halfedge with no neighbor.
const Boundary = -1

// Mesh is the primary triangulation state for scalar type S.
type Mesh[S any] struct {
	Positions []scalar.Vec2[S]

	Triangles          []int
	Halfedges          []int
	Constrained        []bool
	IgnoredForPlanting []bool
}

// New builds an empty mesh over the given positions slice (owned by the
// caller; the mesh may append to it during refinement).
func New[S any](positions []scalar.Vec2[S]) *Mesh[S] {
	return &Mesh[S]{Positions: positions}
}

// NumTriangles returns the current triangle count T = |Triangles| / 3.
func (m *Mesh[S]) NumTriangles() int {
	return len(m.Triangles) / 3
}

// Next returns the next halfedge around the same triangle.
func Next(h int) int {
	if h%3 == 2 {
		return h - 2
	}
	return h + 1
}

// Prev returns the previous halfedge around the same triangle.
func Prev(h int) int {
	if h%3 == 0 {
		return h + 2
	}
	return h - 1
}

// TriangleOf returns the triangle index owning halfedge h.
func TriangleOf(h int) int {
	return h / 3
}

// FirstHalfedgeOf returns the lowest-numbered halfedge of triangle t.
func FirstHalfedgeOf(t int) int {
	return t * 3
}

// Origin returns the origin vertex of halfedge h.
func (m *Mesh[S]) Origin(h int) int {
	return m.Triangles[h]
}

// Destination returns the origin vertex of next(h), i.e. the far end of h.
func (m *Mesh[S]) Destination(h int) int {
	return m.Triangles[Next(h)]
}

// Link sets a and b as twins of one another. b may be Boundary (a may
// not), but both sides are never set to the same non-boundary value; passing
// Boundary clears only the referenced end, the caller is responsible for
// breaking the far side too if needed.
func (m *Mesh[S]) Link(a, b int) {
	m.Halfedges[a] = b
	if b != Boundary {
		m.Halfedges[b] = a
	}
}

// AppendTriangle appends one triangle (three halfedges) given its three
// origin vertices in clockwise order, with all twins initialized to
// Boundary. It returns the index of the new triangle's first halfedge.
func (m *Mesh[S]) AppendTriangle(v0, v1, v2 int) int {
	h := len(m.Triangles)
	m.Triangles = append(m.Triangles, v0, v1, v2)
	m.Halfedges = append(m.Halfedges, Boundary, Boundary, Boundary)
	m.Constrained = append(m.Constrained, false, false, false)
	if m.IgnoredForPlanting != nil {
		m.IgnoredForPlanting = append(m.IgnoredForPlanting, false, false, false)
	}
	return h
}

// SetConstrained marks the undirected edge through h (and its twin, if
// any) as constrained.
func (m *Mesh[S]) SetConstrained(h int, v bool) {
	m.Constrained[h] = v
	if t := m.Halfedges[h]; t != Boundary {
		m.Constrained[t] = v
	}
}

// SetIgnoredForPlanting marks the undirected edge through h (and its twin,
// if any) as permeable during seed planting, lazily allocating the mask.
func (m *Mesh[S]) SetIgnoredForPlanting(h int, v bool) {
	if m.IgnoredForPlanting == nil {
		m.IgnoredForPlanting = make([]bool, len(m.Triangles))
	}
	m.IgnoredForPlanting[h] = v
	if t := m.Halfedges[h]; t != Boundary {
		m.IgnoredForPlanting[t] = v
	}
}

var (
	ErrBufferLengthMismatch = errors.New("halfedge: triangles/halfedges/constrained length mismatch or not a multiple of 3")
	ErrVertexOutOfRange     = errors.New("halfedge: triangle references a vertex index out of range")
	ErrAsymmetricTwin       = errors.New("halfedge: twin link is not symmetric")
	ErrAsymmetricFlag       = errors.New("halfedge: constrained or ignore flag is not symmetric across twins")
	ErrCounterclockwise     = errors.New("halfedge: triangle is not clockwise")
)

// CheckInvariants verifies the seven mesh invariants from the data model
// and returns the first violation found, wrapped with its location.
func (m *Mesh[S]) CheckInvariants(tr scalar.Traits[S]) error {
	n := len(m.Triangles)
	if n%3 != 0 || len(m.Halfedges) != n || len(m.Constrained) != n {
		return ErrBufferLengthMismatch
	}
	if m.IgnoredForPlanting != nil && len(m.IgnoredForPlanting) != n {
		return ErrBufferLengthMismatch
	}

	for h := 0; h < n; h++ {
		v := m.Triangles[h]
		if v < 0 || v >= len(m.Positions) {
			return fmt.Errorf("%w: halfedge %d -> vertex %d", ErrVertexOutOfRange, h, v)
		}
	}

	for h := 0; h < n; h++ {
		twin := m.Halfedges[h]
		if twin == Boundary {
			continue
		}
		if twin < 0 || twin >= n || m.Halfedges[twin] != h {
			return fmt.Errorf("%w: halfedge %d <-> %d", ErrAsymmetricTwin, h, twin)
		}
		if m.Constrained[h] != m.Constrained[twin] {
			return fmt.Errorf("%w: constrained mismatch at halfedge %d/%d", ErrAsymmetricFlag, h, twin)
		}
		if m.IgnoredForPlanting != nil && m.IgnoredForPlanting[h] != m.IgnoredForPlanting[twin] {
			return fmt.Errorf("%w: ignore mismatch at halfedge %d/%d", ErrAsymmetricFlag, h, twin)
		}
	}

	for t := 0; t < n/3; t++ {
		h := t * 3
		a := m.Positions[m.Triangles[h]]
		b := m.Positions[m.Triangles[h+1]]
		c := m.Positions[m.Triangles[h+2]]
		if tr.Orient(a, b, c) > 0 {
			return fmt.Errorf("%w: triangle %d", ErrCounterclockwise, t)
		}
	}

	return nil
}
