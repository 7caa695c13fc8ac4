package scalar

// Traits is the arithmetic/predicate witness for a coordinate scalar type.
// It plays the role the source's generic-parameter-plus-utils-witness pair
// plays: one value per scalar kind, carrying every operation the pipeline
// needs without the pipeline itself knowing which concrete type S is.
type Traits[S any] interface {
	Zero() S
	Add(a, b S) S
	Sub(a, b S) S
	Mul(a, b S) S
	Neg(a S) S
	Less(a, b S) bool
	Abs(a S) S

	// Epsilon returns the tolerance appropriate for this scalar type,
	// used by predicates that need a near-zero cutoff.
	Epsilon() S

	// Min and Max return sentinel extreme values (used e.g. as the
	// saturated circumcenter result when a divisor is zero).
	Min() S
	Max() S

	ToFloat64(a S) float64
	FromFloat64(f float64) S

	// SupportsRefinement reports whether Ruppert refinement may run for
	// this scalar type. False for Int32.
	SupportsRefinement() bool

	Dot(a, b Vec2[S]) S
	SqDist(a, b Vec2[S]) S
	Lerp(a, b Vec2[S], t S) Vec2[S]

	// Cos returns the cosine of an angle given in radians as a float64
	// threshold, converted into S. Used once per run to precompute the
	// refinement angle threshold's cosine.
	Cos(radians float64) S

	// NormalizeSafe returns a unit vector in direction a, or the zero
	// vector if a is (numerically) the zero vector.
	NormalizeSafe(a Vec2[S]) Vec2[S]

	// Orient returns >0 if a,b,c turn counter-clockwise, <0 if clockwise,
	// 0 if (near-)collinear.
	Orient(a, b, c Vec2[S]) int

	// InCircle returns >0 if d lies strictly inside the circumcircle of
	// a,b,c (assumed CCW), <0 if strictly outside, 0 if cocircular.
	InCircle(a, b, c, d Vec2[S]) int

	// Circumcenter returns the circumcenter and circumradius-squared of
	// triangle a,b,c. ok is false when the three points are collinear or
	// duplicate (the center is returned as the saturated Min()/Max()
	// sentinel point in that case, per spec 4.1's integer contract).
	Circumcenter(a, b, c Vec2[S]) (center Vec2[S], radiusSq S, ok bool)

	// HashKey maps d-center to a bucket in [0,buckets) via the
	// pseudo-angle around center, used by the Delaunay hull hash.
	HashKey(d Vec2[S], center Vec2[S], buckets int) int
}
