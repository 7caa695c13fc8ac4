package transform

import "github.com/halfmesh/cdt2d/scalar"

// Identity leaves coordinates unchanged. It is the default preprocessor
// and the one always available for every scalar type.
type Identity[S any] struct {
	tr scalar.Traits[S]
}

// NewIdentity builds the no-op transform for scalar type S.
func NewIdentity[S any](tr scalar.Traits[S]) Identity[S] {
	return Identity[S]{tr: tr}
}

func (t Identity[S]) Forward(p scalar.Vec2[S]) scalar.Vec2[S] { return p }
func (t Identity[S]) Inverse(p scalar.Vec2[S]) scalar.Vec2[S] { return p }
func (t Identity[S]) AreaScalingFactor() S                    { return t.tr.FromFloat64(1) }
