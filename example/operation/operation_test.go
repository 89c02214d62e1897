package operation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	exop "github.com/geoapi/geoconform/example/operation"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/operation"
)

func TestAffine(t *testing.T) {
	_, err := exop.NewAffine(mat.NewDense(2, 2, []float64{1, 0, 1, 1}))
	require.ErrorIs(t, err, operation.ErrTransform)

	a := exop.Scale([]float64{2, 4}, []float64{1, -1})
	assert.False(t, a.IsIdentity())
	out, err := operation.TransformPoint(a, []float64{3, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 19}, out)

	inv, err := a.Inverse()
	require.NoError(t, err)
	back, err := operation.TransformPoint(inv, out)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 5}, back, 1e-12)

	d, err := a.Derivative(nil)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{2, 0, 0, 4}), d))

	same, err := exop.NewAffine(a.Matrix())
	require.NoError(t, err)
	assert.True(t, a.Equal(same))
	assert.False(t, a.Equal(exop.Scale([]float64{2, 4}, []float64{0, 0})))
	assert.True(t, exop.Scale([]float64{1, 1, 1}, []float64{0, 0, 0}).IsIdentity())
}

func TestAffine_NonSquare(t *testing.T) {
	// Drops the third ordinate.
	a, err := exop.NewAffine(mat.NewDense(3, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, a.SourceDimensions())
	assert.Equal(t, 2, a.TargetDimensions())

	dst := make([]float64, 4)
	require.NoError(t, a.Transform(dst, []float64{1, 2, 3, 4, 5, 6}))
	assert.Equal(t, []float64{1, 2, 4, 5}, dst)

	_, err = a.Inverse()
	require.ErrorIs(t, err, operation.ErrNoninvertible)
}

func TestAffine_Overlap(t *testing.T) {
	a := exop.Scale([]float64{10}, []float64{0})
	buf := []float64{1, 2, 3, 0}
	require.NoError(t, a.Transform(buf[1:], buf[:3]))
	assert.Equal(t, []float64{1, 10, 20, 30}, buf)

	require.ErrorIs(t, a.Transform(make([]float64, 1), []float64{1, 2}), operation.ErrTransform)
}

func TestConcatenate(t *testing.T) {
	c, err := exop.Concatenate(exop.Scale([]float64{2, 2}, []float64{0, 1}), exop.Scale([]float64{3, 3}, []float64{0, 0}))
	require.NoError(t, err)
	require.IsType(t, &exop.Affine{}, c)
	out, err := operation.TransformPoint(c, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 9}, out)

	id := exop.Scale([]float64{1, 1}, []float64{0, 0})
	s := exop.Scale([]float64{5, 5}, []float64{0, 0})
	c, err = exop.Concatenate(id, s)
	require.NoError(t, err)
	assert.Same(t, s, c)

	_, err = exop.Concatenate(s, exop.Scale([]float64{1, 1, 1}, []float64{0, 0, 0}))
	require.ErrorIs(t, err, operation.ErrTransform)
}

func mercator(t *testing.T, f *exop.Factory) operation.MathTransform {
	t.Helper()
	params, err := f.Parameters("Popular_Visualisation_Pseudo_Mercator", map[string]float64{
		"semi_major": 6378137,
		"semi_minor": 6378137,
	})
	require.NoError(t, err)
	tr, err := f.CreateParameterizedTransform(params)
	require.NoError(t, err)
	return tr
}

func TestPseudoMercator(t *testing.T) {
	tr := mercator(t, exop.NewFactory())
	require.IsType(t, &exop.Concatenated{}, tr)

	out, err := operation.TransformPoint(tr, []float64{-100.333333333, 24.381786944})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-11169055.58, 2800000.00}, out, 0.01)

	inv, err := tr.Inverse()
	require.NoError(t, err)
	back, err := operation.TransformPoint(inv, out)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-100.333333333, 24.381786944}, back, 1e-9)

	d, err := tr.Derivative([]float64{0, 0})
	require.NoError(t, err)
	// One degree of longitude at the equator.
	assert.InDelta(t, 6378137*3.141592653589793/180, d.At(0, 0), 1e-6)
	assert.InDelta(t, 0, d.At(0, 1), 1e-9)
}

func TestFactory_Methods(t *testing.T) {
	f := exop.NewFactory()
	assert.Len(t, f.AvailableMethods(), 8)

	m, err := f.Method("mercator (VARIANT a)")
	require.NoError(t, err)
	assert.Equal(t, "Mercator_1SP", m.Name().Code())
	assert.True(t, m.IsProjection())
	assert.Equal(t, 2, m.SourceDimensions())

	_, err = f.Method("Transverse_Mercator")
	require.ErrorIs(t, err, operation.ErrNoSuchMethod)
	_, err = f.CreateParameterizedTransform(nil)
	require.ErrorIs(t, err, operation.ErrNoSuchMethod)

	g, err := f.DefaultParameters("Lambert_Conformal_Conic_1SP")
	require.NoError(t, err)
	assert.Len(t, g.Values(), 7)
}

func TestFactory_InvalidParameters(t *testing.T) {
	f := exop.NewFactory()

	_, err := f.Parameters("Mercator_1SP", map[string]float64{"latitude_of_origin": 100})
	require.ErrorIs(t, err, parameter.ErrInvalidValue)
	_, err = f.Parameters("Mercator_1SP", map[string]float64{"zone": 1})
	require.ErrorIs(t, err, parameter.ErrParameterNotFound)

	prolate, err := f.Parameters("Mercator_1SP", map[string]float64{"semi_major": 6356752, "semi_minor": 6378137})
	require.NoError(t, err)
	_, err = f.CreateParameterizedTransform(prolate)
	require.ErrorIs(t, err, parameter.ErrInvalidValue)

	missing, err := f.DefaultParameters("Mercator_1SP")
	require.NoError(t, err)
	_, err = f.CreateParameterizedTransform(missing)
	require.Error(t, err)

	opposite, err := f.Parameters("Lambert_Conformal_Conic_2SP", map[string]float64{
		"semi_major": 6378137, "semi_minor": 6356752.314245179,
		"standard_parallel_1": 30, "standard_parallel_2": -30,
	})
	require.NoError(t, err)
	_, err = f.CreateParameterizedTransform(opposite)
	require.ErrorIs(t, err, parameter.ErrInvalidValue)
}

func TestFactory_AffineMethod(t *testing.T) {
	f := exop.NewFactory()
	params, err := f.Parameters("Affine", map[string]float64{"elt_0_0": 2, "elt_1_2": 5})
	require.NoError(t, err)
	op, err := f.CreateConversion(referencing.Named("Stretch"), params)
	require.NoError(t, err)
	assert.Equal(t, operation.Conversion, op.Type())
	assert.Same(t, params, op.ParameterValues())

	out, err := operation.TransformPoint(op.MathTransform(), []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 6}, out)
}

func TestConversion(t *testing.T) {
	f := exop.NewFactory()
	params, err := f.Parameters("Mercator_2SP", map[string]float64{
		"semi_major": 6378245, "semi_minor": 6356863.018773047,
		"standard_parallel_1": 42, "central_meridian": 51,
	})
	require.NoError(t, err)
	op, err := f.CreateConversion(referencing.Named("Pulkovo 1942 / Caspian Sea Mercator"), params)
	require.NoError(t, err)
	assert.Equal(t, operation.Projection, op.Type())
	assert.Equal(t, "Mercator_2SP", op.Method().Name().Code())
	assert.Nil(t, op.SourceCRS())

	out, err := operation.TransformPoint(op.MathTransform(), []float64{53, 53})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{165704.29, 5171848.07}, out, 0.01)

	step, err := f.CreateConversion(referencing.Named("Scale"), must(f.Parameters("Affine", map[string]float64{"elt_0_0": 2})))
	require.NoError(t, err)
	chained, err := exop.NewConcatenatedOperation(referencing.Named("Chained"), op, step)
	require.NoError(t, err)
	assert.Equal(t, operation.Concatenated, chained.Type())
	assert.Len(t, chained.Operations(), 2)
	got, err := operation.TransformPoint(chained.MathTransform(), []float64{53, 53})
	require.NoError(t, err)
	assert.InDelta(t, 2*out[0], got[0], 1e-6)

	_, err = exop.NewConcatenatedOperation(referencing.Named("Lonely"), op)
	require.ErrorIs(t, err, operation.ErrTransform)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
