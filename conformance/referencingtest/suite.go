package referencingtest

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/geoapi/geoconform/conformance"
	"github.com/geoapi/geoconform/referencing/operation"
)

// DefaultTolerance is half the precision of the EPSG sample points, in
// metres.
const DefaultTolerance = 0.005

// domainPoints is the number of points along each dimension of the
// VerifyInDomain grid.
const domainPoints = 50

// MathTransformSuite checks the map projections of a MathTransformFactory
// against the sample points of Samples.
type MathTransformSuite struct {
	Factory operation.MathTransformFactory
	// Tolerance is in metres for direct transforms; the inverse and
	// derivative thresholds derive from it.
	Tolerance             float64
	IsInverseSupported    bool
	IsDerivativeSupported bool
	Validators            *conformance.Container
	Logger                *zap.Logger
}

// NewMathTransformSuite returns a suite with every check enabled.
func NewMathTransformSuite(f operation.MathTransformFactory) *MathTransformSuite {
	return &MathTransformSuite{
		Factory:               f,
		Tolerance:             DefaultTolerance,
		IsInverseSupported:    true,
		IsDerivativeSupported: true,
		Validators:            conformance.Default,
		Logger:                zap.NewNop(),
	}
}

// Configuration returns the effective settings of the suite.
func (s *MathTransformSuite) Configuration() conformance.Configuration {
	cfg := conformance.DefaultConfiguration()
	cfg.TransformTolerance = s.Tolerance
	cfg.IsInverseTransformSupported = s.IsInverseSupported
	cfg.IsDerivativeSupported = s.IsDerivativeSupported
	return cfg
}

// Configure copies the transform settings of cfg to the suite. The relative
// cfg.Tolerance is for object validators and is not used here.
func (s *MathTransformSuite) Configure(cfg conformance.Configuration) {
	if cfg.TransformTolerance > 0 {
		s.Tolerance = cfg.TransformTolerance
	}
	s.IsInverseSupported = cfg.IsInverseTransformSupported
	s.IsDerivativeSupported = cfg.IsDerivativeSupported
}

// ToleranceFor is the tolerance policy for map projections: the direct
// tolerance is in metres, the inverse one is converted to degrees with
// 1852 metres per minute of arc except for longitudes at a pole, and the
// derivative one is relative to the compared value.
func ToleranceFor(tolerance float64, isProjection bool) ToleranceFunc {
	return func(point []float64, dim int, mode CalculationType) float64 {
		switch mode {
		case Strict:
			return 0
		case Derivative:
			return math.Max(10*tolerance, tolerance*math.Abs(point[dim]))
		case Inverse:
			if isProjection {
				if dim == 0 && len(point) > 1 && math.Abs(point[1]) == 90 {
					return 360
				}
				return tolerance / (1852 * 60)
			}
		}
		return tolerance
	}
}

// CreateMathTransform creates and validates the transform of the projected
// CRS identified by code, and returns a case configured for it.
func (s *MathTransformSuite) CreateMathTransform(ctx context.Context, code int) (*TransformCase, error) {
	params, err := PseudoEPSG(s.Factory, code)
	if err != nil {
		return nil, err
	}
	if err := s.validators().Validate(ctx, params); err != nil {
		return nil, fmt.Errorf("EPSG:%d parameters: %w", code, err)
	}
	t, err := s.Factory.CreateParameterizedTransform(params)
	if err != nil {
		return nil, fmt.Errorf("EPSG:%d: %w", code, err)
	}
	deltas := make([]float64, t.SourceDimensions())
	for i := range deltas {
		deltas[i] = derivativeDelta
	}
	return &TransformCase{
		Transform:             t,
		Tolerance:             s.Tolerance,
		DerivativeDeltas:      deltas,
		IsInverseSupported:    s.IsInverseSupported,
		IsDerivativeSupported: s.IsDerivativeSupported,
		ToleranceFunc:         ToleranceFor(s.Tolerance, true),
		Logger:                s.logger().With(zap.Int("code", code)),
	}, nil
}

// Run checks the projection of code: transform validation, the sample
// point, then a 50×50 grid of random points in the area of validity
// seeded by the code.
func (s *MathTransformSuite) Run(ctx context.Context, code int) error {
	sample, err := Samples(code)
	if err != nil {
		return err
	}
	c, err := s.CreateMathTransform(ctx, code)
	if err != nil {
		return err
	}
	if err := s.validators().Validate(ctx, c.Transform); err != nil {
		return fmt.Errorf("EPSG:%d transform: %w", code, err)
	}
	if err := c.VerifyTransform(sample.Source, sample.Target); err != nil {
		return fmt.Errorf("EPSG:%d: %w", code, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = c.VerifyInDomain(sample.DomainMin[:], sample.DomainMax[:], []int{domainPoints, domainPoints},
		rand.New(rand.NewSource(int64(code))))
	if err != nil {
		return fmt.Errorf("EPSG:%d: %w", code, err)
	}
	s.logger().Debug("projection verified", zap.Int("code", code))
	return nil
}

// Result is the outcome of one Run.
type Result struct {
	Code   int
	Method string
	Err    error
}

// RunAll runs the given codes, or every predefined code when none is
// given, and returns one result per code.
func (s *MathTransformSuite) RunAll(ctx context.Context, codes ...int) []Result {
	if len(codes) == 0 {
		codes = Codes()
	}
	var results []Result
	for _, code := range codes {
		res := Result{Code: code, Method: definitions[code].method}
		res.Err = s.Run(ctx, code)
		results = append(results, res)
		if ctx.Err() != nil {
			break
		}
	}
	return results
}

func (s *MathTransformSuite) validators() *conformance.Container {
	if s.Validators == nil {
		return conformance.Default
	}
	return s.Validators
}

func (s *MathTransformSuite) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
