package transform

import (
	"math"

	"github.com/halfmesh/cdt2d/scalar"
)

// COM translates by the negative centroid, then scales isotropically by
// 1/max(|p-centroid|) (spec 4.2). It is the only non-identity transform
// available for scalar.Int32 coordinates.
type COM[S any] struct {
	tr       scalar.Traits[S]
	centroid scalar.Vec2[S]
	scale    float64 // forward multiplies by scale, inverse divides
}

// NewCOM computes the COM transform parameters from the input positions.
func NewCOM[S any](tr scalar.Traits[S], positions []scalar.Vec2[S]) COM[S] {
	c := centroidOf(tr, positions)

	maxComponent := 0.0
	for _, p := range positions {
		dx := math.Abs(tr.ToFloat64(p.X) - tr.ToFloat64(c.X))
		dy := math.Abs(tr.ToFloat64(p.Y) - tr.ToFloat64(c.Y))
		if dx > maxComponent {
			maxComponent = dx
		}
		if dy > maxComponent {
			maxComponent = dy
		}
	}

	scale := 1.0
	if maxComponent > 0 {
		scale = 1.0 / maxComponent
	}

	return COM[S]{tr: tr, centroid: c, scale: scale}
}

func centroidOf[S any](tr scalar.Traits[S], positions []scalar.Vec2[S]) scalar.Vec2[S] {
	if len(positions) == 0 {
		return scalar.Vec2[S]{}
	}
	sumX, sumY := 0.0, 0.0
	for _, p := range positions {
		sumX += tr.ToFloat64(p.X)
		sumY += tr.ToFloat64(p.Y)
	}
	n := float64(len(positions))
	return scalar.Vec2[S]{X: tr.FromFloat64(sumX / n), Y: tr.FromFloat64(sumY / n)}
}

func (t COM[S]) Forward(p scalar.Vec2[S]) scalar.Vec2[S] {
	x := (t.tr.ToFloat64(p.X) - t.tr.ToFloat64(t.centroid.X)) * t.scale
	y := (t.tr.ToFloat64(p.Y) - t.tr.ToFloat64(t.centroid.Y)) * t.scale
	return scalar.Vec2[S]{X: t.tr.FromFloat64(x), Y: t.tr.FromFloat64(y)}
}

func (t COM[S]) Inverse(p scalar.Vec2[S]) scalar.Vec2[S] {
	x := t.tr.ToFloat64(p.X)/t.scale + t.tr.ToFloat64(t.centroid.X)
	y := t.tr.ToFloat64(p.Y)/t.scale + t.tr.ToFloat64(t.centroid.Y)
	return scalar.Vec2[S]{X: t.tr.FromFloat64(x), Y: t.tr.FromFloat64(y)}
}

func (t COM[S]) AreaScalingFactor() S {
	return t.tr.FromFloat64(t.scale * t.scale)
}
