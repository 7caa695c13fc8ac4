package scalar

import (
	"math"
	"math/big"
)

// fixedShift is the number of fractional bits in the Q31.32 representation.
const fixedShift = 32
const fixedOne = int64(1) << fixedShift

// Fixed64 is the Traits witness for Q31.32 fixed-point coordinates,
// represented as a raw int64 scaled by 2^32. Addition/subtraction are
// native int64 operations; multiplication widens through the signed
// int128 helper so the fractional bits are not lost to overflow before
// the down-shift (the "fixed-point arithmetic library" the spec asks for).
// Orient/InCircle are sign-only robustness predicates evaluated exactly on
// the raw fixed-point units: Orient through the int128 helper, InCircle
// via math/big.Int (see DESIGN.md): the in-circle determinant's degree-4 product of Q31.32 differences
// overflows even the 128-bit widening int32.go uses for its degree-2
// case, so big.Int stands in for a hand-rolled 256-bit widener.
// Circumcenter/HashKey are quantitative (not sign) computations that
// need a division or square root regardless of scalar type, so they
// promote to float64 the same way Int32's do.
type Fixed64 struct{}

func (Fixed64) Zero() int64            { return 0 }
func (Fixed64) Add(a, b int64) int64   { return a + b }
func (Fixed64) Sub(a, b int64) int64   { return a - b }
func (Fixed64) Neg(a int64) int64      { return -a }
func (Fixed64) Less(a, b int64) bool   { return a < b }

func (Fixed64) Abs(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

func (Fixed64) Epsilon() int64 { return 1 << 8 } // 2^-24, ~6.0e-8, in Q31.32 units
func (Fixed64) Min() int64     { return math.MinInt64 }
func (Fixed64) Max() int64     { return math.MaxInt64 }

func (Fixed64) ToFloat64(a int64) float64 {
	return float64(a) / float64(fixedOne)
}

func (Fixed64) FromFloat64(f float64) int64 {
	return int64(math.Round(f * float64(fixedOne)))
}

func (Fixed64) SupportsRefinement() bool { return true }

// Mul multiplies two Q31.32 values via an exact 128-bit widening product,
// then shifts the magnitude back down by fixedShift, truncating toward zero.
func (Fixed64) Mul(a, b int64) int64 {
	p := mul64(a, b)
	// Shift the 128-bit magnitude right by fixedShift, keeping sign.
	shifted := shiftRight128(p, fixedShift)
	if p.neg {
		return -int64(shifted)
	}
	return int64(shifted)
}

func shiftRight128(p int128, n uint) uint64 {
	if n == 0 {
		return p.lo
	}
	if n >= 64 {
		return p.hi >> (n - 64)
	}
	return (p.hi << (64 - n)) | (p.lo >> n)
}

func (f Fixed64) Dot(a, b Vec2[int64]) int64 {
	return f.Add(f.Mul(a.X, b.X), f.Mul(a.Y, b.Y))
}

func (f Fixed64) SqDist(a, b Vec2[int64]) int64 {
	dx := f.Sub(a.X, b.X)
	dy := f.Sub(a.Y, b.Y)
	return f.Add(f.Mul(dx, dx), f.Mul(dy, dy))
}

func (f Fixed64) Lerp(a, b Vec2[int64], t int64) Vec2[int64] {
	return Vec2[int64]{
		X: f.Add(a.X, f.Mul(f.Sub(b.X, a.X), t)),
		Y: f.Add(a.Y, f.Mul(f.Sub(b.Y, a.Y), t)),
	}
}

func (f Fixed64) Cos(radians float64) int64 { return f.FromFloat64(math.Cos(radians)) }

func (f Fixed64) NormalizeSafe(a Vec2[int64]) Vec2[int64] {
	fx, fy := f.ToFloat64(a.X), f.ToFloat64(a.Y)
	n := math.Hypot(fx, fy)
	if n <= 1e-9 {
		return Vec2[int64]{}
	}
	return Vec2[int64]{X: f.FromFloat64(fx / n), Y: f.FromFloat64(fy / n)}
}

func fixedToVec64(v Vec2[int64]) Vec2[float64] {
	return Vec2[float64]{X: Fixed64{}.ToFloat64(v.X), Y: Fixed64{}.ToFloat64(v.Y)}
}

// Orient evaluates the orientation determinant exactly on the raw Q31.32
// units: both cross-product terms share the same 2^64 scale factor, so
// their sign (the only thing Orient reports) is unaffected by the
// fixed-point scaling and a plain int128 product/subtract suffices.
func (Fixed64) Orient(a, b, c Vec2[int64]) int {
	axBy := mul64(b.X-a.X, c.Y-a.Y)
	ayBx := mul64(b.Y-a.Y, c.X-a.X)
	return axBy.sub(ayBx).sign()
}

// InCircle evaluates the in-circle determinant exactly via math/big.Int:
// each term is a degree-4 product of raw Q31.32 differences, which
// overflows the 128-bit int128 helper int32.go's degree-2 case relies
// on, so arbitrary-precision integers stand in for a hand-rolled wider
// widening multiply.
func (Fixed64) InCircle(a, b, c, d Vec2[int64]) int {
	adx, ady := big.NewInt(a.X-d.X), big.NewInt(a.Y-d.Y)
	bdx, bdy := big.NewInt(b.X-d.X), big.NewInt(b.Y-d.Y)
	cdx, cdy := big.NewInt(c.X-d.X), big.NewInt(c.Y-d.Y)

	sq := func(v *big.Int) *big.Int { return new(big.Int).Mul(v, v) }
	ad2 := new(big.Int).Add(sq(adx), sq(ady))
	bd2 := new(big.Int).Add(sq(bdx), sq(bdy))
	cd2 := new(big.Int).Add(sq(cdx), sq(cdy))

	cross := func(x1, y1, x2, y2 *big.Int) *big.Int {
		return new(big.Int).Sub(new(big.Int).Mul(x1, y2), new(big.Int).Mul(y1, x2))
	}
	crossBC := cross(bdx, bdy, cdx, cdy)
	crossAC := cross(adx, ady, cdx, cdy)
	crossAB := cross(adx, ady, bdx, bdy)

	det := new(big.Int).Mul(ad2, crossBC)
	det.Sub(det, new(big.Int).Mul(bd2, crossAC))
	det.Add(det, new(big.Int).Mul(cd2, crossAB))
	return det.Sign()
}

func (f Fixed64) Circumcenter(a, b, c Vec2[int64]) (Vec2[int64], int64, bool) {
	center, r2, ok := Float64{}.Circumcenter(fixedToVec64(a), fixedToVec64(b), fixedToVec64(c))
	if !ok {
		return Vec2[int64]{X: f.Min(), Y: f.Min()}, 0, false
	}
	return Vec2[int64]{X: f.FromFloat64(center.X), Y: f.FromFloat64(center.Y)}, f.FromFloat64(r2), true
}

func (Fixed64) HashKey(d Vec2[int64], center Vec2[int64], buckets int) int {
	return Float64{}.HashKey(fixedToVec64(d), fixedToVec64(center), buckets)
}
