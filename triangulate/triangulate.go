// Package triangulate is the top-level entry point: it wires the scalar
// traits, transform, validator, Delaunay builder, Sloan constrainer, seed
// planter and refiner into the single sequential pipeline spec 2
// describes (Preprocess -> Validate -> Delaunay -> Constrain -> PlantSeeds
// -> Refine -> Postprocess) and exposes it as Run / RunKind.
package triangulate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/halfmesh/cdt2d/delaunay"
	"github.com/halfmesh/cdt2d/halfedge"
	"github.com/halfmesh/cdt2d/refine"
	"github.com/halfmesh/cdt2d/scalar"
	"github.com/halfmesh/cdt2d/seed"
	"github.com/halfmesh/cdt2d/sloan"
	"github.com/halfmesh/cdt2d/status"
	"github.com/halfmesh/cdt2d/transform"
	"github.com/halfmesh/cdt2d/validate"
)

// Input is the caller-supplied triangulation request (spec 6).
type Input[S any] struct {
	Positions       []scalar.Vec2[S]
	ConstraintEdges []int
	HoleSeeds       []scalar.Vec2[S]
	IgnoreMask      []bool
}

// Output is the finished mesh plus status (spec 6).
type Output[S any] struct {
	Positions          []scalar.Vec2[S]
	Triangles          []int
	Halfedges          []int
	Constrained        []bool
	IgnoredForPlanting []bool
	Status             status.Status
}

// ErrPCAUnsupportedForScalar is returned when PCA preprocessing is
// requested for a scalar type that does not support refinement (i.e.
// scalar.Int32, per spec 4.1: "Only COM (translation-only) transform is
// available" for integer coordinates).
var ErrPCAUnsupportedForScalar = fmt.Errorf("cdt2d: PCA preprocessing is only available for scalar types that support refinement")

// Run executes the full pipeline for scalar type S and returns the
// finished mesh together with an error wrapping the same failure a caller
// can also read off Output.Status.
func Run[S any](in Input[S], tr scalar.Traits[S], opts ...Option) (Output[S], error) {
	cfg := newDefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.preprocessor == transform.PCAKind && !tr.SupportsRefinement() {
		return Output[S]{Status: status.With(status.InvalidThreshold)}, ErrPCAUnsupportedForScalar
	}

	originalPointCount := len(in.Positions)

	// Preprocess (spec 2) runs first, ahead of Validate: the checks below
	// must see the same coordinates Delaunay construction will, so a
	// validation failure reflects the geometry actually triangulated.
	prep := buildPreprocessor(cfg.preprocessor, tr, in.Positions)

	positions := make([]scalar.Vec2[S], len(in.Positions))
	for i, p := range in.Positions {
		positions[i] = prep.Forward(p)
	}

	transformedHoles := make([]scalar.Vec2[S], len(in.HoleSeeds))
	for i, p := range in.HoleSeeds {
		transformedHoles[i] = prep.Forward(p)
	}

	if cfg.validateInput {
		rejectOversizedIntegerDiameter := !tr.SupportsRefinement()
		if cfg.rejectOversizedIntegerDiameter != nil {
			rejectOversizedIntegerDiameter = *cfg.rejectOversizedIntegerDiameter
		}
		vin := validate.Input[S]{
			Positions:                      positions,
			ConstraintEdges:                in.ConstraintEdges,
			HoleSeeds:                      transformedHoles,
			IgnoreMask:                     in.IgnoreMask,
			RefineMesh:                     cfg.refineMesh,
			RefinementAreaThreshold:        tr.FromFloat64(cfg.refinementAreaThreshold),
			RefinementAngleThreshold:       tr.FromFloat64(cfg.refinementAngleThreshold),
			SloanMaxIters:                  cfg.sloanMaxIters,
			RejectOversizedIntegerDiameter: rejectOversizedIntegerDiameter,
		}
		if r := validate.Run(vin, tr); !r.Status.OK() {
			return Output[S]{Status: r.Status}, fmt.Errorf("cdt2d: validation failed: %w", r.Err)
		}
	}

	if cfg.verbose {
		logWarnings(cfg.logger, in, cfg.autoHolesAndBoundary || cfg.restoreBoundary)
	}

	areaThreshold := tr.Mul(tr.FromFloat64(cfg.refinementAreaThreshold), prep.AreaScalingFactor())

	mesh, st := delaunay.Build(positions, tr)
	if !st.OK() {
		return Output[S]{Status: st}, fmt.Errorf("cdt2d: delaunay construction failed: %w", status.Err(st))
	}

	if st := sloan.Force(mesh, tr, in.ConstraintEdges, in.IgnoreMask, cfg.sloanMaxIters); !st.OK() {
		return Output[S]{Status: st}, fmt.Errorf("cdt2d: sloan constraint forcing failed: %w", status.Err(st))
	}

	seed.Plant(mesh, tr, seed.Options[S]{
		HoleSeeds:            transformedHoles,
		RestoreBoundary:      cfg.restoreBoundary,
		AutoHolesAndBoundary: cfg.autoHolesAndBoundary,
	})

	if cfg.refineMesh && tr.SupportsRefinement() {
		refine.Run(mesh, tr, refine.Settings[S]{
			AreaThreshold:     areaThreshold,
			CosAngleThreshold: tr.Cos(cfg.refinementAngleThreshold),
			ShellsParameter:   tr.FromFloat64(cfg.concentricShellsParameter),
		}, originalPointCount)
	}

	outPositions := make([]scalar.Vec2[S], len(mesh.Positions))
	for i, p := range mesh.Positions {
		outPositions[i] = prep.Inverse(p)
	}

	return Output[S]{
		Positions:          outPositions,
		Triangles:          mesh.Triangles,
		Halfedges:          mesh.Halfedges,
		Constrained:        mesh.Constrained,
		IgnoredForPlanting: ignoredOrFalse(mesh),
		Status:             status.OK,
	}, nil
}

func ignoredOrFalse[S any](mesh *halfedge.Mesh[S]) []bool {
	if mesh.IgnoredForPlanting != nil {
		return mesh.IgnoredForPlanting
	}
	return make([]bool, len(mesh.Triangles))
}

func buildPreprocessor[S any](kind transform.Kind, tr scalar.Traits[S], positions []scalar.Vec2[S]) transform.Transform[S] {
	switch kind {
	case transform.COMKind:
		return transform.NewCOM(tr, positions)
	case transform.PCAKind:
		return transform.NewPCA(tr, positions)
	default:
		return transform.NewIdentity(tr)
	}
}

func logWarnings[S any](logger *zap.Logger, in Input[S], boundaryPlanting bool) {
	hasConstraints := len(in.ConstraintEdges) > 0
	if !hasConstraints && boundaryPlanting {
		logger.Warn("auto-holes or restore-boundary requested without constraint edges")
	}
	if !hasConstraints && len(in.HoleSeeds) > 0 {
		logger.Warn("hole seeds provided without constraint edges")
	}
	if !hasConstraints && len(in.IgnoreMask) > 0 {
		logger.Warn("ignore-for-planting mask provided without constraint edges")
	}
}

// KindInput/KindOutput let a caller select the scalar type by value
// (scalar.Kind) instead of only at compile time via the type parameter S,
// exchanging coordinates in float64 as the universal interchange format.
type KindInput struct {
	Positions       []scalar.Vec2[float64]
	ConstraintEdges []int
	HoleSeeds       []scalar.Vec2[float64]
	IgnoreMask      []bool
}

type KindOutput struct {
	Positions          []scalar.Vec2[float64]
	Triangles          []int
	Halfedges          []int
	Constrained        []bool
	IgnoredForPlanting []bool
	Status             status.Status
}

// RunKind dispatches to Run for the Traits implementation matching kind,
// converting positions to and from that scalar type's representation.
func RunKind(kind scalar.Kind, in KindInput, opts ...Option) (KindOutput, error) {
	switch kind {
	case scalar.Float32Kind:
		return runKind(scalar.Float32{}, in, opts...)
	case scalar.Float64Kind:
		return runKind(scalar.Float64{}, in, opts...)
	case scalar.Fixed64Kind:
		return runKind(scalar.Fixed64{}, in, opts...)
	case scalar.Int32Kind:
		return runKind(scalar.Int32{}, in, opts...)
	default:
		return KindOutput{Status: status.With(status.InvalidThreshold)}, fmt.Errorf("cdt2d: unknown scalar kind %v", kind)
	}
}

func runKind[S any](tr scalar.Traits[S], in KindInput, opts ...Option) (KindOutput, error) {
	toS := func(p scalar.Vec2[float64]) scalar.Vec2[S] {
		return scalar.Vec2[S]{X: tr.FromFloat64(p.X), Y: tr.FromFloat64(p.Y)}
	}
	fromS := func(p scalar.Vec2[S]) scalar.Vec2[float64] {
		return scalar.Vec2[float64]{X: tr.ToFloat64(p.X), Y: tr.ToFloat64(p.Y)}
	}

	positions := make([]scalar.Vec2[S], len(in.Positions))
	for i, p := range in.Positions {
		positions[i] = toS(p)
	}
	holes := make([]scalar.Vec2[S], len(in.HoleSeeds))
	for i, p := range in.HoleSeeds {
		holes[i] = toS(p)
	}

	out, err := Run(Input[S]{
		Positions:       positions,
		ConstraintEdges: in.ConstraintEdges,
		HoleSeeds:       holes,
		IgnoreMask:      in.IgnoreMask,
	}, tr, opts...)

	outPositions := make([]scalar.Vec2[float64], len(out.Positions))
	for i, p := range out.Positions {
		outPositions[i] = fromS(p)
	}

	return KindOutput{
		Positions:          outPositions,
		Triangles:          out.Triangles,
		Halfedges:          out.Halfedges,
		Constrained:        out.Constrained,
		IgnoredForPlanting: out.IgnoredForPlanting,
		Status:             out.Status,
	}, err
}
