package scalar

import "math"

// Float32 is the Traits witness for single-precision coordinates. It
// reuses the Float64 formulas by promoting operands to float64 for the
// determinant evaluation (so the adaptive filter and exact fallback
// stay in one place) and rounds results back down to float32.
type Float32 struct{}

func (Float32) Zero() float32                  { return 0 }
func (Float32) Add(a, b float32) float32       { return a + b }
func (Float32) Sub(a, b float32) float32       { return a - b }
func (Float32) Mul(a, b float32) float32       { return a * b }
func (Float32) Neg(a float32) float32          { return -a }
func (Float32) Less(a, b float32) bool         { return a < b }
func (Float32) Abs(a float32) float32          { return float32(math.Abs(float64(a))) }
func (Float32) Epsilon() float32               { return 1e-6 }
func (Float32) Min() float32                   { return -math.MaxFloat32 }
func (Float32) Max() float32                   { return math.MaxFloat32 }
func (Float32) ToFloat64(a float32) float64    { return float64(a) }
func (Float32) FromFloat64(f float64) float32  { return float32(f) }
func (Float32) SupportsRefinement() bool       { return true }

func (Float32) Dot(a, b Vec2[float32]) float32 {
	return a.X*b.X + a.Y*b.Y
}

func (Float32) SqDist(a, b Vec2[float32]) float32 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func (Float32) Lerp(a, b Vec2[float32], t float32) Vec2[float32] {
	return Vec2[float32]{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func (Float32) Cos(radians float64) float32 { return float32(math.Cos(radians)) }

func (Float32) NormalizeSafe(a Vec2[float32]) Vec2[float32] {
	n := math.Hypot(float64(a.X), float64(a.Y))
	if n <= 1e-30 {
		return Vec2[float32]{}
	}
	return Vec2[float32]{X: float32(float64(a.X) / n), Y: float32(float64(a.Y) / n)}
}

func to64(v Vec2[float32]) Vec2[float64] { return Vec2[float64]{X: float64(v.X), Y: float64(v.Y)} }

func (Float32) Orient(a, b, c Vec2[float32]) int {
	return Float64{}.Orient(to64(a), to64(b), to64(c))
}

func (Float32) InCircle(a, b, c, d Vec2[float32]) int {
	return Float64{}.InCircle(to64(a), to64(b), to64(c), to64(d))
}

func (t Float32) Circumcenter(a, b, c Vec2[float32]) (Vec2[float32], float32, bool) {
	center, r2, ok := Float64{}.Circumcenter(to64(a), to64(b), to64(c))
	if !ok {
		return Vec2[float32]{X: t.Min(), Y: t.Min()}, 0, false
	}
	return Vec2[float32]{X: float32(center.X), Y: float32(center.Y)}, float32(r2), true
}

func (Float32) HashKey(d Vec2[float32], center Vec2[float32], buckets int) int {
	return Float64{}.HashKey(to64(d), to64(center), buckets)
}
