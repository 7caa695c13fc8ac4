package scalar

import (
	"math"
	"math/big"
)

// Float64 is the Traits witness for double-precision coordinates. The
// orientation and in-circle formulas are the expanded-determinant
// evaluations from the source's float predicates, with an exact
// big.Float fallback near the zero crossing (grounded on the teacher's
// algorithm/robust.Orient2D / InCircle adaptive-filter pattern).
type Float64 struct{}

const float64OrientFilter = 1e-15

func (Float64) Zero() float64                { return 0 }
func (Float64) Add(a, b float64) float64     { return a + b }
func (Float64) Sub(a, b float64) float64     { return a - b }
func (Float64) Mul(a, b float64) float64     { return a * b }
func (Float64) Neg(a float64) float64        { return -a }
func (Float64) Less(a, b float64) bool       { return a < b }
func (Float64) Abs(a float64) float64        { return math.Abs(a) }
func (Float64) Epsilon() float64             { return 1e-12 }
func (Float64) Min() float64                 { return -math.MaxFloat64 }
func (Float64) Max() float64                 { return math.MaxFloat64 }
func (Float64) ToFloat64(a float64) float64  { return a }
func (Float64) FromFloat64(f float64) float64 { return f }
func (Float64) SupportsRefinement() bool     { return true }

func (Float64) Dot(a, b Vec2[float64]) float64 { return a.X*b.X + a.Y*b.Y }

func (Float64) SqDist(a, b Vec2[float64]) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func (Float64) Lerp(a, b Vec2[float64], t float64) Vec2[float64] {
	return Vec2[float64]{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func (Float64) Cos(radians float64) float64 { return math.Cos(radians) }

func (Float64) NormalizeSafe(a Vec2[float64]) Vec2[float64] {
	n := math.Hypot(a.X, a.Y)
	if n <= 1e-300 {
		return Vec2[float64]{}
	}
	return Vec2[float64]{X: a.X / n, Y: a.Y / n}
}

func (Float64) Orient(a, b, c Vec2[float64]) int {
	ax, ay := b.X-a.X, b.Y-a.Y
	bx, by := c.X-a.X, c.Y-a.Y
	det := ax*by - ay*bx

	mag := maxAbs64(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	eps := mag * mag * float64OrientFilter
	if eps < float64OrientFilter {
		eps = float64OrientFilter
	}
	switch {
	case det > eps:
		return 1
	case det < -eps:
		return -1
	default:
		return orient2DExact(a, b, c)
	}
}

func orient2DExact(a, b, c Vec2[float64]) int {
	ax := bigF(b.X - a.X)
	ay := bigF(b.Y - a.Y)
	bx := bigF(c.X - a.X)
	by := bigF(c.Y - a.Y)

	t1 := new(big.Float).SetPrec(256).Mul(ax, by)
	t2 := new(big.Float).SetPrec(256).Mul(ay, bx)
	det := new(big.Float).SetPrec(256).Sub(t1, t2)
	return det.Sign()
}

func (Float64) InCircle(a, b, c, d Vec2[float64]) int {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	ad2 := adx*adx + ady*ady
	bd2 := bdx*bdx + bdy*bdy
	cd2 := cdx*cdx + cdy*cdy

	det := ad2*(bdx*cdy-bdy*cdx) -
		bd2*(adx*cdy-ady*cdx) +
		cd2*(adx*bdy-ady*bdx)

	mag := maxAbs64(adx, ady, bdx, bdy, cdx, cdy)
	eps := math.Pow(mag, 3) * float64OrientFilter
	if eps < float64OrientFilter {
		eps = float64OrientFilter
	}
	switch {
	case det > eps:
		return 1
	case det < -eps:
		return -1
	default:
		return inCircleExact64(a, b, c, d)
	}
}

func inCircleExact64(a, b, c, d Vec2[float64]) int {
	ax, ay := bigF(a.X-d.X), bigF(a.Y-d.Y)
	bx, by := bigF(b.X-d.X), bigF(b.Y-d.Y)
	cx, cy := bigF(c.X-d.X), bigF(c.Y-d.Y)

	sq := func(v *big.Float) *big.Float { return new(big.Float).SetPrec(256).Mul(v, v) }
	ad2 := new(big.Float).SetPrec(256).Add(sq(ax), sq(ay))
	bd2 := new(big.Float).SetPrec(256).Add(sq(bx), sq(by))
	cd2 := new(big.Float).SetPrec(256).Add(sq(cx), sq(cy))

	det2 := func(px, py, qx, qy *big.Float) *big.Float {
		t1 := new(big.Float).SetPrec(256).Mul(px, qy)
		t2 := new(big.Float).SetPrec(256).Mul(py, qx)
		return new(big.Float).SetPrec(256).Sub(t1, t2)
	}

	term1 := new(big.Float).SetPrec(256).Mul(ad2, det2(bx, by, cx, cy))
	term2 := new(big.Float).SetPrec(256).Mul(bd2, det2(ax, ay, cx, cy))
	term3 := new(big.Float).SetPrec(256).Mul(cd2, det2(ax, ay, bx, by))

	det := new(big.Float).SetPrec(256).Add(term1, term3)
	det.Sub(det, term2)
	return det.Sign()
}

func (t Float64) Circumcenter(a, b, c Vec2[float64]) (Vec2[float64], float64, bool) {
	ax, ay := a.X-a.X, a.Y-a.Y // relative to a
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	_ = ax
	_ = ay

	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < t.Epsilon() {
		return Vec2[float64]{X: t.Min(), Y: t.Min()}, 0, false
	}

	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d

	center := Vec2[float64]{X: a.X + ux, Y: a.Y + uy}
	r2 := ux*ux + uy*uy
	return center, r2, true
}

// HashKey implements the delaunator-style pseudo-angle pass used for the
// Delaunay hull hash (spec 4.4): dx/(|dx|+|dy|), monotonic with angle but
// cheaper than atan2, mapped into [0,buckets).
func (Float64) HashKey(d Vec2[float64], center Vec2[float64], buckets int) int {
	dx := d.X - center.X
	dy := d.Y - center.Y
	p := pseudoAngle(dx, dy)
	key := int(math.Floor(p * float64(buckets)))
	if key < 0 {
		key = 0
	}
	if key >= buckets {
		key = buckets - 1
	}
	return key
}

// pseudoAngle returns a value in [0,1) that increases monotonically with
// the angle of (dx,dy), without needing atan2.
func pseudoAngle(dx, dy float64) float64 {
	den := math.Abs(dx) + math.Abs(dy)
	if den == 0 {
		return 0
	}
	p := dx / den
	if dy > 0 {
		p = (3 - p) / 4
	} else {
		p = (1 + p) / 4
	}
	return p
}

func maxAbs64(vals ...float64) float64 {
	m := 0.0
	for _, v := range vals {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func bigF(v float64) *big.Float {
	return new(big.Float).SetPrec(256).SetFloat64(v)
}
