package scalar

import "math/bits"

// int128 is a signed 128-bit integer represented as sign-magnitude: neg
// reports whether the value is negative, and hi:lo is the unsigned
// magnitude. This mirrors the design note's "hi/lo pair, abs-then-sign"
// construction needed because the product of three 32-bit differences
// (used by the integer in-circle determinant) overflows 64 bits.
type int128 struct {
	neg    bool
	hi, lo uint64
}

func i128FromInt64(v int64) int128 {
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	return int128{neg: neg, lo: u}
}

// mul64 returns the signed 128-bit product of two int64 values.
func mul64(a, b int64) int128 {
	neg := (a < 0) != (b < 0)
	ua := uint64(a)
	if a < 0 {
		ua = uint64(-a)
	}
	ub := uint64(b)
	if b < 0 {
		ub = uint64(-b)
	}
	hi, lo := bits.Mul64(ua, ub)
	if hi == 0 && lo == 0 {
		neg = false
	}
	return int128{neg: neg, hi: hi, lo: lo}
}

func (x int128) add(y int128) int128 {
	if x.neg == y.neg {
		lo, carry := bits.Add64(x.lo, y.lo, 0)
		hi, _ := bits.Add64(x.hi, y.hi, carry)
		return int128{neg: x.neg, hi: hi, lo: lo}
	}
	// Different signs: subtract the smaller magnitude from the larger.
	if magGreaterEq(x, y) {
		lo, borrow := bits.Sub64(x.lo, y.lo, 0)
		hi, _ := bits.Sub64(x.hi, y.hi, borrow)
		neg := x.neg
		if hi == 0 && lo == 0 {
			neg = false
		}
		return int128{neg: neg, hi: hi, lo: lo}
	}
	lo, borrow := bits.Sub64(y.lo, x.lo, 0)
	hi, _ := bits.Sub64(y.hi, x.hi, borrow)
	neg := y.neg
	if hi == 0 && lo == 0 {
		neg = false
	}
	return int128{neg: neg, hi: hi, lo: lo}
}

func (x int128) sub(y int128) int128 {
	y.neg = !y.neg
	if y.hi == 0 && y.lo == 0 {
		y.neg = false
	}
	return x.add(y)
}

func magGreaterEq(x, y int128) bool {
	if x.hi != y.hi {
		return x.hi > y.hi
	}
	return x.lo >= y.lo
}

// sign returns -1, 0, or 1.
func (x int128) sign() int {
	if x.hi == 0 && x.lo == 0 {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// i128Term computes sign * (a*b) as an int128, used to accumulate the
// three-term in-circle determinant exactly.
func i128Term(sign int, a, b int64) int128 {
	p := mul64(a, b)
	if sign < 0 {
		p.neg = !p.neg
		if p.hi == 0 && p.lo == 0 {
			p.neg = false
		}
	}
	return p
}
