package triangulate

import (
	"math"

	"go.uber.org/zap"

	"github.com/halfmesh/cdt2d/transform"
)

// config holds every tunable of a triangulation run. Thresholds are kept
// in float64 regardless of the run's scalar type S and converted via
// Traits.FromFloat64 inside Run, the same way the teacher's mesh.config
// keeps everything in float64 and lets call sites convert as needed.
type config struct {
	validateInput bool
	verbose       bool
	preprocessor  transform.Kind

	autoHolesAndBoundary bool
	restoreBoundary      bool

	sloanMaxIters int

	refineMesh                 bool
	refinementAreaThreshold    float64
	refinementAngleThreshold   float64
	concentricShellsParameter float64

	// rejectOversizedIntegerDiameter is a tri-state: nil means "use the
	// scalar type's own default" (on for types that don't support
	// refinement, i.e. scalar.Int32; off otherwise), a non-nil value is
	// an explicit caller override set via WithRejectOversizedIntegerDiameter.
	rejectOversizedIntegerDiameter *bool

	logger *zap.Logger
}

// DefaultSloanMaxIters mirrors spec 4.5's default iteration cap.
const DefaultSloanMaxIters = 1000000

// DefaultConcentricShellsParameter mirrors spec 6's default shells value.
const DefaultConcentricShellsParameter = 0.001

// DefaultRefinementAngleThreshold is 20 degrees in radians, a conventional
// quality-mesh default comfortably under the π/4 ceiling the validator
// enforces.
const DefaultRefinementAngleThreshold = 20 * math.Pi / 180

func newDefaultConfig() config {
	return config{
		validateInput:              true,
		preprocessor:               transform.None,
		sloanMaxIters:              DefaultSloanMaxIters,
		refinementAngleThreshold:   DefaultRefinementAngleThreshold,
		concentricShellsParameter: DefaultConcentricShellsParameter,
		logger:                     zap.NewNop(),
	}
}

// Option configures a triangulation run.
type Option func(*config)

// WithValidateInput toggles the pre-flight validator (spec 4.3). Disabling
// it is the caller's responsibility; a malformed input may then panic or
// produce a nonsensical mesh deeper in the pipeline.
func WithValidateInput(enable bool) Option {
	return func(c *config) { c.validateInput = enable }
}

// WithVerbose enables the non-fatal warning log lines spec 7 describes
// (auto-holes/restore-boundary/ignore-mask requested without constraints).
func WithVerbose(enable bool) Option {
	return func(c *config) { c.verbose = enable }
}

// WithLogger installs the zap.Logger used for verbose warnings. The
// default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPreprocessor selects the coordinate preprocessor (spec 4.2).
func WithPreprocessor(kind transform.Kind) Option {
	return func(c *config) { c.preprocessor = kind }
}

// WithAutoHolesAndBoundary enables the two-sweep auto-hole/boundary seed
// mode (spec 4.6).
func WithAutoHolesAndBoundary(enable bool) Option {
	return func(c *config) { c.autoHolesAndBoundary = enable }
}

// WithRestoreBoundary enables the restore-boundary seed mode (spec 4.6).
func WithRestoreBoundary(enable bool) Option {
	return func(c *config) { c.restoreBoundary = enable }
}

// WithSloanMaxIters overrides the Sloan constrainer's iteration cap.
// Values below 1 are rejected by the validator, not clamped here.
func WithSloanMaxIters(maxIters int) Option {
	return func(c *config) { c.sloanMaxIters = maxIters }
}

// WithRefinement toggles Ruppert refinement (spec 4.7). Requesting it for
// a scalar type with SupportsRefinement() == false is a validation error,
// not silently ignored.
func WithRefinement(enable bool) Option {
	return func(c *config) { c.refineMesh = enable }
}

// WithRefinementAreaThreshold sets the maximum twice-area a triangle may
// have before refinement splits it.
func WithRefinementAreaThreshold(threshold float64) Option {
	return func(c *config) { c.refinementAreaThreshold = threshold }
}

// WithRefinementAngleThreshold sets the minimum interior angle (radians)
// refinement enforces, in [0, π/4].
func WithRefinementAngleThreshold(radians float64) Option {
	return func(c *config) { c.refinementAngleThreshold = radians }
}

// WithConcentricShellsParameter sets the D parameter of the concentric
// shells segment-splitting rule (spec 4.7).
func WithConcentricShellsParameter(d float64) Option {
	return func(c *config) { c.concentricShellsParameter = d }
}

// WithRejectOversizedIntegerDiameter overrides the default-by-scalar-type
// behavior of the spec 9 integer-diameter guard: when enabled, input
// whose bounding-box diameter exceeds 2^20 units is rejected at
// validation time rather than handed to a scalar.Int32 in-circle
// predicate the spec documents as undefined beyond that range.
func WithRejectOversizedIntegerDiameter(enable bool) Option {
	return func(c *config) { c.rejectOversizedIntegerDiameter = &enable }
}
