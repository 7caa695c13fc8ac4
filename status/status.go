// Package status implements the single-surface error/warning bitmask
// returned alongside every triangulate.Output. Categories are reported as
// individual bits so a caller can test for a specific failure without
// parsing an error string.
package status

import "errors"

// Status is a bitmask of OK, the generic error bit, and zero or more
// category bits. A composite error status always combines Error with
// exactly one category bit.
type Status uint32

// OK reports a completed run with no detected problems.
const OK Status = 0

const (
	// Error is set on every non-OK status; category bits narrow down why.
	Error Status = 1 << iota

	// Argument errors.
	RefinementUnsupported
	InvalidThreshold

	// Input-shape errors.
	PositionsLength
	UndefinedPosition
	DuplicatePosition
	ConstraintsLengthOdd
	ConstraintOutOfRange
	ConstraintSelfLoop
	IgnoreMaskLengthMismatch

	// Input-geometry errors.
	ConstraintCollinearForeignVertex
	DuplicateConstraint
	IntersectingConstraints
	UndefinedHole

	// Numerical / algorithmic errors.
	DelaunayDegenerate
	SloanItersExceeded

	// Input-shape errors, continued: the optional integer-diameter guard
	// (spec 9's open question on scalar.Int32's undefined-beyond-2^20
	// in-circle predicate).
	OversizedIntegerDiameter
)

// Is reports whether status carries every bit of the given category. The
// generic Error bit is not checked unless category includes it.
func (s Status) Is(category Status) bool {
	return s&category == category
}

// OK reports whether the status carries no error bit.
func (s Status) OK() bool {
	return s&Error == 0
}

// With composes the generic error bit with a single category bit.
func With(category Status) Status {
	return Error | category
}

// Errors surfaced through the Go error-return path alongside a Status.
// These wrap with fmt.Errorf("...: %w", Err*) at the call site so callers
// can errors.Is against a specific sentinel as well as test the bitmask.
var (
	ErrRefinementUnsupported            = errors.New("cdt2d: refinement requested on a scalar type that does not support it")
	ErrInvalidThreshold                 = errors.New("cdt2d: threshold or iteration cap out of range")
	ErrPositionsLength                  = errors.New("cdt2d: fewer than 3 positions")
	ErrUndefinedPosition                = errors.New("cdt2d: non-finite position")
	ErrDuplicatePosition                = errors.New("cdt2d: duplicate position")
	ErrConstraintsLengthOdd             = errors.New("cdt2d: constraint edge buffer has odd length")
	ErrConstraintOutOfRange             = errors.New("cdt2d: constraint edge index out of range")
	ErrConstraintSelfLoop               = errors.New("cdt2d: constraint edge is a self-loop")
	ErrIgnoreMaskLengthMismatch         = errors.New("cdt2d: ignore-for-planting mask length does not match constraint edge count")
	ErrConstraintCollinearForeignVertex = errors.New("cdt2d: constraint edge is collinear with a foreign vertex")
	ErrDuplicateConstraint              = errors.New("cdt2d: duplicate constraint edge")
	ErrIntersectingConstraints          = errors.New("cdt2d: constraint edges intersect")
	ErrUndefinedHole                    = errors.New("cdt2d: non-finite hole seed")
	ErrDelaunayDegenerate                = errors.New("cdt2d: initial Delaunay triangle is degenerate")
	ErrSloanItersExceeded                = errors.New("cdt2d: sloan constraint forcing exceeded its iteration cap")
	ErrOversizedIntegerDiameter          = errors.New("cdt2d: input bounding-box diameter exceeds the integer in-circle predicate's safe range")
)

// categoryError maps each category bit to its sentinel error.
var categoryError = map[Status]error{
	RefinementUnsupported:            ErrRefinementUnsupported,
	InvalidThreshold:                 ErrInvalidThreshold,
	PositionsLength:                  ErrPositionsLength,
	UndefinedPosition:                ErrUndefinedPosition,
	DuplicatePosition:                ErrDuplicatePosition,
	ConstraintsLengthOdd:             ErrConstraintsLengthOdd,
	ConstraintOutOfRange:             ErrConstraintOutOfRange,
	ConstraintSelfLoop:               ErrConstraintSelfLoop,
	IgnoreMaskLengthMismatch:         ErrIgnoreMaskLengthMismatch,
	ConstraintCollinearForeignVertex: ErrConstraintCollinearForeignVertex,
	DuplicateConstraint:              ErrDuplicateConstraint,
	IntersectingConstraints:          ErrIntersectingConstraints,
	UndefinedHole:                    ErrUndefinedHole,
	DelaunayDegenerate:               ErrDelaunayDegenerate,
	SloanItersExceeded:               ErrSloanItersExceeded,
	OversizedIntegerDiameter:         ErrOversizedIntegerDiameter,
}

// Err returns the sentinel error for category, ignoring the Error bit
// whether present or not, or nil if what remains is not a recognized
// single category.
func Err(category Status) error {
	return categoryError[category&^Error]
}
