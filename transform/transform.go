// Package transform implements the preprocessing coordinate changes (spec
// 4.2) that keep the Delaunay/refinement numerics well-conditioned:
// Identity, center-of-mass (COM), and principal-component (PCA).
package transform

import "github.com/halfmesh/cdt2d/scalar"

// Transform is a coordinate change applied before triangulation and
// inverted on the output positions.
type Transform[S any] interface {
	Forward(p scalar.Vec2[S]) scalar.Vec2[S]
	Inverse(p scalar.Vec2[S]) scalar.Vec2[S]

	// AreaScalingFactor rescales the refinement area threshold into the
	// transformed frame (spec 4.2).
	AreaScalingFactor() S
}

// Kind selects which Transform a Settings value should build.
type Kind int

const (
	None Kind = iota
	COMKind
	PCAKind
)
