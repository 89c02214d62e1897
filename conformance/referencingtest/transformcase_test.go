package referencingtest_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/geoapi/geoconform/conformance/referencingtest"
	exop "github.com/geoapi/geoconform/example/operation"
	"github.com/geoapi/geoconform/referencing/operation"
)

func scale(t *testing.T) *referencingtest.TransformCase {
	t.Helper()
	return referencingtest.NewTransformCase(exop.Scale([]float64{10, 100}, []float64{0, 0}), 1e-9)
}

func failureOf(t *testing.T, err error) *referencingtest.TransformFailure {
	t.Helper()
	var f *referencingtest.TransformFailure
	require.True(t, errors.As(err, &f), "expected a TransformFailure, got %v", err)
	return f
}

func TestTransformCase_Scale(t *testing.T) {
	c := scale(t)
	require.NoError(t, c.VerifyTransform([]float64{1, 2, -3, 4}, []float64{10, 200, -30, 400}))
	require.NoError(t, c.VerifyConsistency([]float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, c.VerifyInverse([]float64{1, 2, 3, 4}))
	require.NoError(t, c.VerifyDerivative([]float64{7, 8}))
}

func TestTransformCase_WrongExpected(t *testing.T) {
	c := scale(t)
	f := failureOf(t, c.VerifyTransform([]float64{1, 2}, []float64{10, 201}))
	assert.Equal(t, referencingtest.Direct, f.Mode)
	assert.Equal(t, 1, f.Dimension)
	assert.Equal(t, 201.0, f.Expected)
	assert.Equal(t, 200.0, f.Actual)
	assert.Contains(t, f.Error(), "direct mismatch")
}

func TestTransformCase_Lengths(t *testing.T) {
	err := scale(t).VerifyTransform([]float64{1, 2, 3}, []float64{10, 200})
	require.ErrorIs(t, err, operation.ErrTransform)

	err = scale(t).VerifyDerivative([]float64{1})
	require.ErrorIs(t, err, operation.ErrTransform)
}

func TestTransformCase_Identity(t *testing.T) {
	c := referencingtest.NewTransformCase(exop.Scale([]float64{1, 1}, []float64{0, 0}), 0)
	require.NoError(t, c.VerifyTransform([]float64{1, 2}, []float64{1, 2}))
}

func TestTransformCase_Disabled(t *testing.T) {
	c := referencingtest.NewTransformCase(wrongDerivative{exop.Scale([]float64{10, 100}, []float64{0, 0})}, 1e-9)
	c.IsDerivativeSupported = false
	c.IsInverseSupported = false
	require.NoError(t, c.VerifyDerivative([]float64{1, 1}))
	require.NoError(t, c.VerifyInverse([]float64{1, 1}))
}

// batchDrift returns slightly different results when given more than one
// point at a time.
type batchDrift struct{ *exop.Affine }

func (b batchDrift) Transform(dst, src []float64) error {
	if err := b.Affine.Transform(dst, src); err != nil {
		return err
	}
	if len(src) > b.SourceDimensions() {
		dst[0] += 1e-12
	}
	return nil
}

func TestTransformCase_Inconsistent(t *testing.T) {
	c := referencingtest.NewTransformCase(batchDrift{exop.Scale([]float64{2, 2}, []float64{0, 0})}, 1)
	f := failureOf(t, c.VerifyConsistency([]float64{1, 2, 3, 4}))
	assert.Equal(t, referencingtest.Strict, f.Mode)
	assert.Equal(t, 0.0, f.Tolerance)
	assert.Equal(t, "transform in one call", f.Message)
}

// wrongDerivative reports the identity as its Jacobian.
type wrongDerivative struct{ *exop.Affine }

func (w wrongDerivative) Derivative([]float64) (*mat.Dense, error) {
	return mat.NewDense(2, 2, []float64{1, 0, 0, 1}), nil
}

func TestTransformCase_WrongDerivative(t *testing.T) {
	c := referencingtest.NewTransformCase(wrongDerivative{exop.Scale([]float64{10, 100}, []float64{0, 0})}, 1e-9)
	f := failureOf(t, c.VerifyDerivative([]float64{1, 1}))
	assert.Equal(t, referencingtest.Derivative, f.Mode)
	assert.Equal(t, 0, f.Dimension)
	assert.InDelta(t, 10, f.Expected, 1e-9)
	assert.Equal(t, 1.0, f.Actual)
}

// flatDerivative has a Jacobian of the wrong size.
type flatDerivative struct{ *exop.Affine }

func (flatDerivative) Derivative([]float64) (*mat.Dense, error) {
	return mat.NewDense(1, 2, nil), nil
}

func TestTransformCase_DerivativeSize(t *testing.T) {
	c := referencingtest.NewTransformCase(flatDerivative{exop.Scale([]float64{1, 2}, []float64{0, 0})}, 1e-9)
	f := failureOf(t, c.VerifyDerivative([]float64{0, 0}))
	assert.Contains(t, f.Message, "1×2")
}

func TestTransformCase_ToleranceFunc(t *testing.T) {
	c := scale(t)
	c.IsInverseSupported = false
	c.ToleranceFunc = func(_ []float64, dim int, mode referencingtest.CalculationType) float64 {
		if dim == 1 && mode == referencingtest.Direct {
			return 2
		}
		return 0
	}
	require.NoError(t, c.VerifyTransform([]float64{1, 2}, []float64{10, 201}))
	failureOf(t, c.VerifyTransform([]float64{1, 2}, []float64{11, 200}))
}

func TestTransformCase_InDomain(t *testing.T) {
	c := referencingtest.NewTransformCase(exop.Scale([]float64{2, -3}, []float64{100, 5}), 1e-9)
	points, err := c.VerifyInDomain([]float64{-10, 0}, []float64{10, 5}, []int{4, 3}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, points, 4*3*2)
	for i := 0; i < len(points); i += 2 {
		assert.GreaterOrEqual(t, points[i], -10.0)
		assert.Less(t, points[i], 10.0)
		assert.GreaterOrEqual(t, points[i+1], 0.0)
		assert.Less(t, points[i+1], 5.0)
	}

	_, err = c.VerifyInDomain([]float64{0}, []float64{1}, []int{1}, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, operation.ErrTransform)
}

func TestCalculationType_String(t *testing.T) {
	assert.Equal(t, "inverse", referencingtest.Inverse.String())
	assert.Equal(t, "CalculationType(9)", referencingtest.CalculationType(9).String())
}
