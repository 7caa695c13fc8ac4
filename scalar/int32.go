package scalar

import "math"

// Int32 is the Traits witness for 32-bit integer coordinates. The
// widening product used by the in-circle determinant is computed exactly
// via the signed int128 helper (spec 4.1: "the product of three 32-bit
// differences grows beyond 64 bits"). Refinement is not supported for
// this scalar type; the validator rejects WithRefinement requests against
// it (spec 4.1, 4.3).
type Int32 struct{}

func (Int32) Zero() int32             { return 0 }
func (Int32) Add(a, b int32) int32    { return a + b }
func (Int32) Sub(a, b int32) int32    { return a - b }
func (Int32) Mul(a, b int32) int32    { return a * b }
func (Int32) Neg(a int32) int32       { return -a }
func (Int32) Less(a, b int32) bool    { return a < b }

func (Int32) Abs(a int32) int32 {
	if a < 0 {
		return -a
	}
	return a
}

func (Int32) Epsilon() int32            { return 0 }
func (Int32) Min() int32                { return math.MinInt32 }
func (Int32) Max() int32                { return math.MaxInt32 }
func (Int32) ToFloat64(a int32) float64 { return float64(a) }
func (Int32) FromFloat64(f float64) int32 {
	return int32(math.Round(f))
}
func (Int32) SupportsRefinement() bool { return false }

func (Int32) Dot(a, b Vec2[int32]) int32 {
	return a.X*b.X + a.Y*b.Y
}

// WideningProduct returns x*y exactly as an int64, used where the spec
// requires "the widening product returns a 64-bit integer" (spec 4.1).
func (Int32) WideningProduct(x, y int32) int64 {
	return int64(x) * int64(y)
}

func (Int32) SqDist(a, b Vec2[int32]) int32 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func (t Int32) Lerp(a, b Vec2[int32], tt int32) Vec2[int32] {
	ft := float64(tt)
	return Vec2[int32]{
		X: t.FromFloat64(float64(a.X) + (float64(b.X)-float64(a.X))*ft),
		Y: t.FromFloat64(float64(a.Y) + (float64(b.Y)-float64(a.Y))*ft),
	}
}

func (t Int32) Cos(radians float64) int32 { return t.FromFloat64(math.Cos(radians)) }

func (t Int32) NormalizeSafe(a Vec2[int32]) Vec2[int32] {
	n := math.Hypot(float64(a.X), float64(a.Y))
	if n <= 1e-9 {
		return Vec2[int32]{}
	}
	return Vec2[int32]{X: t.FromFloat64(float64(a.X) / n), Y: t.FromFloat64(float64(a.Y) / n)}
}

func (Int32) Orient(a, b, c Vec2[int32]) int {
	ax, ay := int64(b.X-a.X), int64(b.Y-a.Y)
	bx, by := int64(c.X-a.X), int64(c.Y-a.Y)
	det := ax*by - ay*bx
	switch {
	case det > 0:
		return 1
	case det < 0:
		return -1
	default:
		return 0
	}
}

// InCircle implements the exact signed-128-bit in-circle determinant the
// spec's integer contract requires (4.1, design notes: "hi/lo pair,
// sign-magnitude multiplication").
func (Int32) InCircle(a, b, c, d Vec2[int32]) int {
	adx, ady := int64(a.X-d.X), int64(a.Y-d.Y)
	bdx, bdy := int64(b.X-d.X), int64(b.Y-d.Y)
	cdx, cdy := int64(c.X-d.X), int64(c.Y-d.Y)

	ad2 := adx*adx + ady*ady
	bd2 := bdx*bdx + bdy*bdy
	cd2 := cdx*cdx + cdy*cdy

	crossBC := bdx*cdy - bdy*cdx
	crossAC := adx*cdy - ady*cdx
	crossAB := adx*bdy - ady*bdx

	term1 := mul64(ad2, crossBC)
	term2 := mul64(bd2, crossAC)
	term3 := mul64(cd2, crossAB)

	det := term1.sub(term2).add(term3)
	return det.sign()
}

// Circumcenter promotes to float64 for the divisor/solve (the result is
// only used for hull-hash centering and i0/i1/i2 candidate ranking, never
// for refinement, since SupportsRefinement is false); the sentinel Min()
// point is returned with ok=false when the three points are collinear or
// duplicate, matching spec 4.4's "circumcenter sentinel" detection of
// the Delaunay degenerate-seed case.
func (t Int32) Circumcenter(a, b, c Vec2[int32]) (Vec2[int32], int32, bool) {
	fa := Vec2[float64]{X: float64(a.X), Y: float64(a.Y)}
	fb := Vec2[float64]{X: float64(b.X), Y: float64(b.Y)}
	fc := Vec2[float64]{X: float64(c.X), Y: float64(c.Y)}
	center, r2, ok := Float64{}.Circumcenter(fa, fb, fc)
	if !ok {
		return Vec2[int32]{X: t.Min(), Y: t.Min()}, 0, false
	}
	return Vec2[int32]{X: t.FromFloat64(center.X), Y: t.FromFloat64(center.Y)}, t.FromFloat64(r2), true
}

func (Int32) HashKey(d Vec2[int32], center Vec2[int32], buckets int) int {
	fd := Vec2[float64]{X: float64(d.X), Y: float64(d.Y)}
	fc := Vec2[float64]{X: float64(center.X), Y: float64(center.Y)}
	return Float64{}.HashKey(fd, fc, buckets)
}
