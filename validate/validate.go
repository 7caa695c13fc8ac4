// Package validate implements the input-shape and input-geometry checks
// that run before Delaunay construction. Run applies the checks in a fixed
// order and returns at the first failure.
package validate

import (
	"math"

	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/status"
)

// Input mirrors the subset of triangulate.Input the validator inspects.
type Input[S any] struct {
	Positions       []scalar.Vec2[S]
	ConstraintEdges []int
	HoleSeeds       []scalar.Vec2[S]
	IgnoreMask      []bool

	RefineMesh               bool
	RefinementAreaThreshold  S
	RefinementAngleThreshold S
	SloanMaxIters            int

	// RejectOversizedIntegerDiameter enables the optional bounding-box
	// diameter guard of spec 9's open question: scalar.Int32's in-circle
	// predicate is undefined once the input spans more than 2^20 units,
	// and the original implementation enforces no runtime check for it.
	// This is off by default (see triangulate.Run, which turns it on by
	// default only when tr.SupportsRefinement() is false).
	RejectOversizedIntegerDiameter bool
}

// maxIntegerDiameter is the 2^20 bound spec 9 names as the integer
// in-circle predicate's safe range.
const maxIntegerDiameter = 1 << 20

// Result carries the first detected status category, or status.OK.
type Result struct {
	Status status.Status
	Err    error
}

func fail(category status.Status) Result {
	s := status.With(category)
	return Result{Status: s, Err: status.Err(category)}
}

// Run executes every check in spec order, returning the first failure.
func Run[S any](in Input[S], tr scalar.Traits[S]) Result {
	if len(in.Positions) < 3 {
		return fail(status.PositionsLength)
	}

	for _, p := range in.Positions {
		if !finite2(tr, p) {
			return fail(status.UndefinedPosition)
		}
	}

	if r := checkDuplicatePositions(in.Positions, tr); !r.Status.OK() {
		return r
	}

	if in.RejectOversizedIntegerDiameter && !finiteDiameter(in.Positions, tr) {
		return fail(status.OversizedIntegerDiameter)
	}

	if len(in.ConstraintEdges)%2 != 0 {
		return fail(status.ConstraintsLengthOdd)
	}

	n := len(in.Positions)
	numEdges := len(in.ConstraintEdges) / 2
	for e := 0; e < numEdges; e++ {
		i, j := in.ConstraintEdges[2*e], in.ConstraintEdges[2*e+1]
		if i < 0 || i >= n || j < 0 || j >= n {
			return fail(status.ConstraintOutOfRange)
		}
		if i == j {
			return fail(status.ConstraintSelfLoop)
		}
	}

	if r := checkDuplicateEdges(in.ConstraintEdges); !r.Status.OK() {
		return r
	}

	if r := checkCollinearForeignVertex(in.Positions, in.ConstraintEdges, tr); !r.Status.OK() {
		return r
	}

	if r := checkIntersectingEdges(in.Positions, in.ConstraintEdges, tr); !r.Status.OK() {
		return r
	}

	for _, p := range in.HoleSeeds {
		if !finite2(tr, p) {
			return fail(status.UndefinedHole)
		}
	}

	if in.IgnoreMask != nil && len(in.IgnoreMask) != numEdges {
		return fail(status.IgnoreMaskLengthMismatch)
	}

	if in.RefineMesh && !tr.SupportsRefinement() {
		return fail(status.RefinementUnsupported)
	}

	zero := tr.Zero()
	if tr.Less(in.RefinementAngleThreshold, zero) || tr.Less(tr.FromFloat64(math.Pi/4), in.RefinementAngleThreshold) {
		return fail(status.InvalidThreshold)
	}
	if tr.Less(in.RefinementAreaThreshold, zero) {
		return fail(status.InvalidThreshold)
	}
	if in.SloanMaxIters < 1 {
		return fail(status.InvalidThreshold)
	}

	return Result{Status: status.OK}
}

// finiteDiameter reports whether positions' bounding-box diameter stays
// within maxIntegerDiameter.
func finiteDiameter[S any](positions []scalar.Vec2[S], tr scalar.Traits[S]) bool {
	if len(positions) == 0 {
		return true
	}
	minX, maxX := tr.ToFloat64(positions[0].X), tr.ToFloat64(positions[0].X)
	minY, maxY := tr.ToFloat64(positions[0].Y), tr.ToFloat64(positions[0].Y)
	for _, p := range positions[1:] {
		x, y := tr.ToFloat64(p.X), tr.ToFloat64(p.Y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return maxX-minX <= maxIntegerDiameter && maxY-minY <= maxIntegerDiameter
}

func finite2[S any](tr scalar.Traits[S], p scalar.Vec2[S]) bool {
	x, y := tr.ToFloat64(p.X), tr.ToFloat64(p.Y)
	return !math.IsNaN(x) && !math.IsInf(x, 0) && !math.IsNaN(y) && !math.IsInf(y, 0)
}

func checkDuplicatePositions[S any](positions []scalar.Vec2[S], tr scalar.Traits[S]) Result {
	eps := tr.ToFloat64(tr.Epsilon())
	type bucketKey struct{ x, y int64 }
	cell := func(v float64) int64 {
		if eps <= 0 {
			return int64(v)
		}
		return int64(math.Floor(v / eps))
	}
	buckets := map[bucketKey][]int{}
	for idx, p := range positions {
		x, y := tr.ToFloat64(p.X), tr.ToFloat64(p.Y)
		cx, cy := cell(x), cell(y)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for _, other := range buckets[bucketKey{cx + dx, cy + dy}] {
					op := positions[other]
					ox, oy := tr.ToFloat64(op.X), tr.ToFloat64(op.Y)
					if math.Hypot(x-ox, y-oy) <= eps {
						return fail(status.DuplicatePosition)
					}
				}
			}
		}
		buckets[bucketKey{cx, cy}] = append(buckets[bucketKey{cx, cy}], idx)
	}
	return Result{Status: status.OK}
}

func canonical(i, j int) (int, int) {
	if i < j {
		return i, j
	}
	return j, i
}

func checkDuplicateEdges(edges []int) Result {
	seen := map[[2]int]bool{}
	for e := 0; e*2 < len(edges); e++ {
		i, j := canonical(edges[2*e], edges[2*e+1])
		key := [2]int{i, j}
		if seen[key] {
			return fail(status.DuplicateConstraint)
		}
		seen[key] = true
	}
	return Result{Status: status.OK}
}

func checkCollinearForeignVertex[S any](positions []scalar.Vec2[S], edges []int, tr scalar.Traits[S]) Result {
	numEdges := len(edges) / 2
	for e := 0; e < numEdges; e++ {
		i, j := edges[2*e], edges[2*e+1]
		a, b := positions[i], positions[j]
		for v := range positions {
			if v == i || v == j {
				continue
			}
			p := positions[v]
			if tr.Orient(a, b, p) != 0 && tr.Orient(b, a, p) != 0 {
				continue
			}
			if onSegmentInclusive(a, b, p, tr) {
				return fail(status.ConstraintCollinearForeignVertex)
			}
		}
	}
	return Result{Status: status.OK}
}

func onSegmentInclusive[S any](a, b, p scalar.Vec2[S], tr scalar.Traits[S]) bool {
	if tr.Orient(a, b, p) != 0 {
		return false
	}
	ax, ay := tr.ToFloat64(a.X), tr.ToFloat64(a.Y)
	bx, by := tr.ToFloat64(b.X), tr.ToFloat64(b.Y)
	px, py := tr.ToFloat64(p.X), tr.ToFloat64(p.Y)
	minX, maxX := math.Min(ax, bx), math.Max(ax, bx)
	minY, maxY := math.Min(ay, by), math.Max(ay, by)
	return px >= minX && px <= maxX && py >= minY && py <= maxY
}

func checkIntersectingEdges[S any](positions []scalar.Vec2[S], edges []int, tr scalar.Traits[S]) Result {
	numEdges := len(edges) / 2
	for e1 := 0; e1 < numEdges; e1++ {
		a0, a1 := positions[edges[2*e1]], positions[edges[2*e1+1]]
		for e2 := e1 + 1; e2 < numEdges; e2++ {
			i2, j2 := edges[2*e2], edges[2*e2+1]
			if i2 == edges[2*e1] || i2 == edges[2*e1+1] || j2 == edges[2*e1] || j2 == edges[2*e1+1] {
				continue // shared endpoint: excluded per spec
			}
			b0, b1 := positions[i2], positions[j2]
			if segmentsProperlyIntersect(a0, a1, b0, b1, tr) {
				return fail(status.IntersectingConstraints)
			}
		}
	}
	return Result{Status: status.OK}
}

func segmentsProperlyIntersect[S any](a0, a1, b0, b1 scalar.Vec2[S], tr scalar.Traits[S]) bool {
	d1 := tr.Orient(b0, b1, a0)
	d2 := tr.Orient(b0, b1, a1)
	d3 := tr.Orient(a0, a1, b0)
	d4 := tr.Orient(a0, a1, b1)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return false
}
