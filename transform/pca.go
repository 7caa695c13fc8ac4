package transform

import (
	"math"

	"github.com/halfmesh/cdt2d/scalar"
)

// PCA centers on the centroid, rotates onto the principal axes of the
// covariance matrix, then rescales into [-1, 1] on both axes (spec 4.2).
//
// The rotation angle is always solved in float64 regardless of S; the
// result is cast back through scalar.Traits[S].FromFloat64. Refinement's
// minimum-angle threshold is defined relative to the untransformed
// coordinates, so a bad-triangle test run in the PCA frame no longer
// corresponds exactly to that threshold after an anisotropic rescale —
// callers that need the angle guarantee should prefer COM or Identity.
type PCA[S any] struct {
	tr       scalar.Traits[S]
	centroid scalar.Vec2[S]
	cos, sin float64
	scaleX   float64
	scaleY   float64
}

// NewPCA computes the PCA transform parameters from the input positions.
func NewPCA[S any](tr scalar.Traits[S], positions []scalar.Vec2[S]) PCA[S] {
	c := centroidOf(tr, positions)
	cx, cy := tr.ToFloat64(c.X), tr.ToFloat64(c.Y)

	var a00, a01, a11 float64
	for _, p := range positions {
		dx := tr.ToFloat64(p.X) - cx
		dy := tr.ToFloat64(p.Y) - cy
		a00 += dx * dx
		a01 += dx * dy
		a11 += dy * dy
	}
	if n := float64(len(positions)); n > 0 {
		a00 /= n
		a01 /= n
		a11 /= n
	}

	theta := 0.5 * math.Atan2(2*a01, a00-a11)
	cosT, sinT := math.Cos(theta), math.Sin(theta)

	maxX, maxY := 0.0, 0.0
	for _, p := range positions {
		dx := tr.ToFloat64(p.X) - cx
		dy := tr.ToFloat64(p.Y) - cy
		rx := dx*cosT + dy*sinT
		ry := -dx*sinT + dy*cosT
		if a := math.Abs(rx); a > maxX {
			maxX = a
		}
		if a := math.Abs(ry); a > maxY {
			maxY = a
		}
	}

	scaleX, scaleY := 1.0, 1.0
	if maxX > 0 {
		scaleX = 1.0 / maxX
	}
	if maxY > 0 {
		scaleY = 1.0 / maxY
	}

	return PCA[S]{tr: tr, centroid: c, cos: cosT, sin: sinT, scaleX: scaleX, scaleY: scaleY}
}

func (t PCA[S]) Forward(p scalar.Vec2[S]) scalar.Vec2[S] {
	dx := t.tr.ToFloat64(p.X) - t.tr.ToFloat64(t.centroid.X)
	dy := t.tr.ToFloat64(p.Y) - t.tr.ToFloat64(t.centroid.Y)
	rx := (dx*t.cos + dy*t.sin) * t.scaleX
	ry := (-dx*t.sin + dy*t.cos) * t.scaleY
	return scalar.Vec2[S]{X: t.tr.FromFloat64(rx), Y: t.tr.FromFloat64(ry)}
}

func (t PCA[S]) Inverse(p scalar.Vec2[S]) scalar.Vec2[S] {
	rx := t.tr.ToFloat64(p.X) / t.scaleX
	ry := t.tr.ToFloat64(p.Y) / t.scaleY
	dx := rx*t.cos - ry*t.sin
	dy := rx*t.sin + ry*t.cos
	x := dx + t.tr.ToFloat64(t.centroid.X)
	y := dy + t.tr.ToFloat64(t.centroid.Y)
	return scalar.Vec2[S]{X: t.tr.FromFloat64(x), Y: t.tr.FromFloat64(y)}
}

func (t PCA[S]) AreaScalingFactor() S {
	return t.tr.FromFloat64(t.scaleX * t.scaleY)
}
