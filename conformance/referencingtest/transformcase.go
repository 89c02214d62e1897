// Package referencingtest checks math transforms numerically: transformed
// points against expected values, inverse round trips, derivatives against
// finite differences and consistency between the ways of calling
// Transform. MathTransformSuite runs these checks for a set of map
// projections with known sample points.
package referencingtest

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/geoapi/geoconform/referencing/operation"
)

// CalculationType tells a tolerance function which kind of value is being
// compared.
type CalculationType int

const (
	// Direct compares the output of the transform with expected values.
	Direct CalculationType = iota
	// Inverse compares the output of the inverse transform with the
	// original source point.
	Inverse
	// Derivative compares Jacobian elements with finite differences.
	Derivative
	// Identity compares the output of an identity transform with its input.
	Identity
	// Strict requires exact equality.
	Strict
)

func (t CalculationType) String() string {
	switch t {
	case Direct:
		return "direct"
	case Inverse:
		return "inverse"
	case Derivative:
		return "derivative"
	case Identity:
		return "identity"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("CalculationType(%d)", int(t))
}

// TransformFailure reports an ordinate outside the tolerance threshold.
type TransformFailure struct {
	Mode      CalculationType
	Point     []float64
	Dimension int
	Expected  float64
	Actual    float64
	Tolerance float64
	Message   string
}

func (f *TransformFailure) Error() string {
	return fmt.Sprintf("%s: %s mismatch at %v, dimension %d: expected %v but got %v (tolerance %g)",
		f.Message, f.Mode, f.Point, f.Dimension, f.Expected, f.Actual, f.Tolerance)
}

// ToleranceFunc returns the threshold for comparing ordinate dim of point.
type ToleranceFunc func(point []float64, dim int, mode CalculationType) float64

// TransformCase holds a transform and the settings of its checks.
type TransformCase struct {
	Transform operation.MathTransform
	// Tolerance is the default threshold in target units.
	Tolerance float64
	// DerivativeDeltas are the finite difference steps, one per source
	// dimension.
	DerivativeDeltas      []float64
	IsInverseSupported    bool
	IsDerivativeSupported bool
	// ToleranceFunc replaces the fixed Tolerance when set.
	ToleranceFunc ToleranceFunc
	Logger        *zap.Logger
}

// NewTransformCase returns a case with inverse and derivative checks
// enabled and unit derivative deltas.
func NewTransformCase(t operation.MathTransform, tolerance float64) *TransformCase {
	deltas := make([]float64, t.SourceDimensions())
	for i := range deltas {
		deltas[i] = 1
	}
	return &TransformCase{
		Transform:             t,
		Tolerance:             tolerance,
		DerivativeDeltas:      deltas,
		IsInverseSupported:    true,
		IsDerivativeSupported: true,
		Logger:                zap.NewNop(),
	}
}

func (c *TransformCase) tolerance(point []float64, dim int, mode CalculationType) float64 {
	if c.ToleranceFunc != nil {
		return c.ToleranceFunc(point, dim, mode)
	}
	if mode == Strict {
		return 0
	}
	return c.Tolerance
}

func (c *TransformCase) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// compare checks actual against expected, point by point. reference holds
// the points given to the tolerance function.
func (c *TransformCase) compare(msg string, mode CalculationType, dim int, reference, expected, actual []float64) error {
	for i := range expected {
		e, a := expected[i], actual[i]
		if e == a || (math.IsNaN(e) && math.IsNaN(a)) {
			continue
		}
		start := i - i%dim
		point := reference[start : start+dim]
		tol := c.tolerance(point, i%dim, mode)
		if math.Abs(e-a) <= tol {
			continue
		}
		f := &TransformFailure{Mode: mode, Point: slices.Clone(point), Dimension: i % dim,
			Expected: e, Actual: a, Tolerance: tol, Message: msg}
		c.logger().Debug("transform check failed", zap.Error(f))
		return f
	}
	return nil
}

// VerifyTransform transforms src and compares the result with expected.
// When the inverse is supported, expected is transformed back and compared
// with src. An identity transform must return its input.
func (c *TransformCase) VerifyTransform(src, expected []float64) error {
	t := c.Transform
	if len(src)%t.SourceDimensions() != 0 || len(expected) != len(src)/t.SourceDimensions()*t.TargetDimensions() {
		return fmt.Errorf("%w: %d source and %d expected ordinates do not describe the same points",
			operation.ErrTransform, len(src), len(expected))
	}
	actual := make([]float64, len(expected))
	if err := t.Transform(actual, src); err != nil {
		return err
	}
	if err := c.compare("MathTransform.Transform", Direct, t.TargetDimensions(), expected, expected, actual); err != nil {
		return err
	}
	if t.IsIdentity() {
		if err := c.compare("identity transform", Identity, t.SourceDimensions(), src, src, actual); err != nil {
			return err
		}
	}
	if !c.IsInverseSupported {
		return nil
	}
	inv, err := t.Inverse()
	if err != nil {
		return err
	}
	back := make([]float64, len(src))
	if err := inv.Transform(back, expected); err != nil {
		return err
	}
	return c.compare("inverse MathTransform.Transform", Inverse, t.SourceDimensions(), src, src, back)
}

// VerifyConsistency transforms coords in every supported way and requires
// identical results: point by point, in one call, in place, and between
// overlapping regions of the same array shifted in both directions.
func (c *TransformCase) VerifyConsistency(coords []float64) error {
	t := c.Transform
	srcDim, dstDim := t.SourceDimensions(), t.TargetDimensions()
	n := len(coords) / srcDim
	coords = coords[:n*srcDim]

	reference := make([]float64, n*dstDim)
	for i := 0; i < n; i++ {
		out, err := operation.TransformPoint(t, coords[i*srcDim:(i+1)*srcDim])
		if err != nil {
			return err
		}
		copy(reference[i*dstDim:], out)
	}
	check := func(msg string, actual []float64) error {
		return c.compare(msg, Strict, dstDim, reference, reference, actual)
	}

	batch := make([]float64, n*dstDim)
	if err := t.Transform(batch, coords); err != nil {
		return err
	}
	if err := check("transform in one call", batch); err != nil {
		return err
	}
	if srcDim != dstDim {
		return nil
	}
	buf := slices.Clone(coords)
	if err := t.Transform(buf, buf); err != nil {
		return err
	}
	if err := check("transform in place", buf); err != nil {
		return err
	}
	// Source after the destination, then before it, in one array.
	for _, forward := range []bool{true, false} {
		buf := make([]float64, len(coords)+srcDim)
		srcAt, dstAt := srcDim, 0
		if !forward {
			srcAt, dstAt = 0, srcDim
		}
		copy(buf[srcAt:], coords)
		if err := t.Transform(buf[dstAt:dstAt+len(coords)], buf[srcAt:srcAt+len(coords)]); err != nil {
			return err
		}
		if err := check("transform between overlapping regions", buf[dstAt:dstAt+len(coords)]); err != nil {
			return err
		}
	}
	return nil
}

// VerifyInverse transforms coords then transforms the result back, and
// compares with coords. It does nothing when the inverse is not supported.
func (c *TransformCase) VerifyInverse(coords []float64) error {
	if !c.IsInverseSupported {
		return nil
	}
	t := c.Transform
	n := len(coords) / t.SourceDimensions()
	coords = coords[:n*t.SourceDimensions()]
	inv, err := t.Inverse()
	if err != nil {
		return err
	}
	target := make([]float64, n*t.TargetDimensions())
	if err := t.Transform(target, coords); err != nil {
		return err
	}
	back := make([]float64, len(coords))
	if err := inv.Transform(back, target); err != nil {
		return err
	}
	return c.compare("inverse round trip", Inverse, t.SourceDimensions(), coords, coords, back)
}

// VerifyDerivative compares the Jacobian at point with central finite
// differences using DerivativeDeltas. Each element is compared with the
// tolerance computed for the approximated row and the element column.
func (c *TransformCase) VerifyDerivative(point []float64) error {
	if !c.IsDerivativeSupported {
		return nil
	}
	t := c.Transform
	srcDim, dstDim := t.SourceDimensions(), t.TargetDimensions()
	if len(point) != srcDim || len(c.DerivativeDeltas) != srcDim {
		return fmt.Errorf("%w: need %d ordinates and deltas", operation.ErrTransform, srcDim)
	}
	jacobian, err := t.Derivative(point)
	if err != nil {
		return err
	}
	if r, cols := jacobian.Dims(); r != dstDim || cols != srcDim {
		return &TransformFailure{Mode: Derivative, Point: slices.Clone(point), Tolerance: 0,
			Message: fmt.Sprintf("derivative is %d×%d, expected %d×%d", r, cols, dstDim, srcDim)}
	}
	approx := mat.NewDense(dstDim, srcDim, nil)
	p := slices.Clone(point)
	for i, delta := range c.DerivativeDeltas {
		p[i] = point[i] + delta
		plus, err := operation.TransformPoint(t, p)
		if err != nil {
			return err
		}
		p[i] = point[i] - delta
		minus, err := operation.TransformPoint(t, p)
		if err != nil {
			return err
		}
		p[i] = point[i]
		for j := 0; j < dstDim; j++ {
			approx.Set(j, i, (plus[j]-minus[j])/(2*delta))
		}
	}
	for j := 0; j < dstDim; j++ {
		row := approx.RawRowView(j)
		for i, e := range row {
			a := jacobian.At(j, i)
			if e == a || (math.IsNaN(e) && math.IsNaN(a)) {
				continue
			}
			tol := c.tolerance(row, i, Derivative)
			if math.Abs(e-a) > tol {
				f := &TransformFailure{Mode: Derivative, Point: slices.Clone(point), Dimension: j,
					Expected: e, Actual: a, Tolerance: tol,
					Message: fmt.Sprintf("MathTransform.Derivative element (%d, %d)", j, i)}
				c.logger().Debug("derivative check failed", zap.Error(f))
				return f
			}
		}
	}
	return nil
}

// VerifyInDomain builds num[i] points along each dimension i between min
// and max, moves each of them randomly inside its grid cell, then checks
// the inverse and the derivative on every point. The points are returned.
func (c *TransformCase) VerifyInDomain(min, max []float64, num []int, rnd *rand.Rand) ([]float64, error) {
	dim := c.Transform.SourceDimensions()
	if len(min) != dim || len(max) != dim || len(num) != dim {
		return nil, fmt.Errorf("%w: domain must have %d dimensions", operation.ErrTransform, dim)
	}
	total := 1
	for _, n := range num {
		total *= n
	}
	points := make([]float64, 0, total*dim)
	index := make([]int, dim)
	for k := 0; k < total; k++ {
		for i := range index {
			step := (max[i] - min[i]) / float64(num[i])
			points = append(points, min[i]+step*(float64(index[i])+rnd.Float64()))
		}
		for i := range index {
			if index[i]++; index[i] < num[i] {
				break
			}
			index[i] = 0
		}
	}
	if err := c.VerifyConsistency(points); err != nil {
		return points, err
	}
	if err := c.VerifyInverse(points); err != nil {
		return points, err
	}
	for k := 0; k < total; k++ {
		if err := c.VerifyDerivative(points[k*dim : (k+1)*dim]); err != nil {
			return points, err
		}
	}
	return points, nil
}
