package halfedge

// Compactor removes a set of "dead" triangles from a mesh in place,
// rewriting every surviving halfedge's twin reference to account for the
// shift, and reports the old->new triangle index map (a removed triangle
// maps to -1). Shared by the seed planter and the refiner (spec invariant
// 7: after planting, removed triangles leave no dangling halfedge
// references).
type Compactor[S any] struct {
	mesh *Mesh[S]
}

// NewCompactor wraps mesh for compaction.
func NewCompactor[S any](mesh *Mesh[S]) *Compactor[S] {
	return &Compactor[S]{mesh: mesh}
}

// Remove deletes the triangles whose indices are in dead (unsorted,
// deduplicated internally) and returns a slice old2new of length
// (previous) NumTriangles, where old2new[t] is the triangle's new index,
// or -1 if it was removed.
func (c *Compactor[S]) Remove(dead []int) []int {
	m := c.mesh
	oldT := m.NumTriangles()
	isDead := make([]bool, oldT)
	for _, t := range dead {
		if t >= 0 && t < oldT {
			isDead[t] = true
		}
	}

	old2new := make([]int, oldT)
	write := 0
	for t := 0; t < oldT; t++ {
		if isDead[t] {
			old2new[t] = -1
			continue
		}
		old2new[t] = write
		write++
	}

	newTriangles := make([]int, 0, write*3)
	newHalfedges := make([]int, 0, write*3)
	newConstrained := make([]bool, 0, write*3)
	var newIgnored []bool
	if m.IgnoredForPlanting != nil {
		newIgnored = make([]bool, 0, write*3)
	}

	remapHalfedge := func(h int) int {
		if h == Boundary {
			return Boundary
		}
		oldTri := h / 3
		slot := h % 3
		nt := old2new[oldTri]
		if nt < 0 {
			return Boundary
		}
		return nt*3 + slot
	}

	for t := 0; t < oldT; t++ {
		if isDead[t] {
			continue
		}
		base := t * 3
		for slot := 0; slot < 3; slot++ {
			h := base + slot
			newTriangles = append(newTriangles, m.Triangles[h])
			newHalfedges = append(newHalfedges, remapHalfedge(m.Halfedges[h]))
			newConstrained = append(newConstrained, m.Constrained[h])
			if newIgnored != nil {
				newIgnored = append(newIgnored, m.IgnoredForPlanting[h])
			}
		}
	}

	m.Triangles = newTriangles
	m.Halfedges = newHalfedges
	m.Constrained = newConstrained
	m.IgnoredForPlanting = newIgnored

	return old2new
}
