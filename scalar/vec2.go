// Package scalar provides the generic numeric witness ("traits") that lets
// the rest of the triangulator operate over float32, float64, Q31.32
// fixed-point, and 32-bit integer coordinates without duplicating the
// pipeline once per type.
package scalar

// Vec2 is a coordinate pair in the scalar type S. It carries no identity
// beyond its position in a Positions slice.
type Vec2[S any] struct {
	X, Y S
}

// Kind enumerates the coordinate representations the engine supports, for
// callers that need to select a scalar type at runtime (e.g. from a config
// file) rather than at compile time via the generic parameter.
type Kind int

const (
	Float32Kind Kind = iota
	Float64Kind
	Fixed64Kind
	Int32Kind
)

func (k Kind) String() string {
	switch k {
	case Float32Kind:
		return "float32"
	case Float64Kind:
		return "float64"
	case Fixed64Kind:
		return "fixed64"
	case Int32Kind:
		return "int32"
	default:
		return "unknown"
	}
}
