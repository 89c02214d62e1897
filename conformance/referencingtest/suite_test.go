package referencingtest_test

import (
	"context"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/geoapi/geoconform/conformance"
	"github.com/geoapi/geoconform/conformance/referencingtest"
	exop "github.com/geoapi/geoconform/example/operation"
	exref "github.com/geoapi/geoconform/example/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMathTransformSuite(t *testing.T) {
	suite := referencingtest.NewMathTransformSuite(exop.NewFactory())
	for _, code := range referencingtest.Codes() {
		t.Run(strconv.Itoa(code), func(t *testing.T) {
			require.NoError(t, suite.Run(context.Background(), code))
		})
	}
}

func TestMathTransformSuite_Belgium(t *testing.T) {
	suite := referencingtest.NewMathTransformSuite(exop.NewFactory())
	c, err := suite.CreateMathTransform(context.Background(), 31300)
	require.NoError(t, err)
	sample, err := referencingtest.Samples(31300)
	require.NoError(t, err)

	got := make([]float64, 2)
	require.NoError(t, c.Transform.Transform(got, sample.Source))
	assert.InDelta(t, 251763.20, got[0], 0.005)
	assert.InDelta(t, 153034.13, got[1], 0.005)
	assert.InDelta(t, sample.Target[0], got[0], 1e-4)
	assert.InDelta(t, sample.Target[1], got[1], 1e-4)

	inv, err := c.Transform.Inverse()
	require.NoError(t, err)
	back := make([]float64, 2)
	require.NoError(t, inv.Transform(back, sample.Target))
	tol := referencingtest.ToleranceFor(referencingtest.DefaultTolerance, true)
	for i := range back {
		assert.InDelta(t, sample.Source[i], back[i], tol(sample.Source, i, referencingtest.Inverse))
	}
	require.NoError(t, suite.Run(context.Background(), 31300))
}

func TestMathTransformSuite_RunAll(t *testing.T) {
	suite := referencingtest.NewMathTransformSuite(exop.NewFactory())
	results := suite.RunAll(context.Background(), 3857, 42)
	require.Len(t, results, 2)
	assert.Equal(t, "Popular_Visualisation_Pseudo_Mercator", results[0].Method)
	assert.NoError(t, results[0].Err)
	assert.Empty(t, results[1].Method)
	assert.ErrorIs(t, results[1].Err, referencingtest.ErrUnknownCode)
}

func TestMathTransformSuite_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := referencingtest.NewMathTransformSuite(exop.NewFactory()).RunAll(ctx)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestMathTransformSuite_Configuration(t *testing.T) {
	suite := referencingtest.NewMathTransformSuite(exop.NewFactory())
	cfg := suite.Configuration()
	assert.Equal(t, referencingtest.DefaultTolerance, cfg.TransformTolerance)
	assert.Equal(t, conformance.DefaultTolerance, cfg.Tolerance)
	assert.True(t, cfg.IsInverseTransformSupported)
	assert.True(t, cfg.IsDerivativeSupported)

	cfg.IsDerivativeSupported = false
	suite.Configure(cfg)
	c, err := suite.CreateMathTransform(context.Background(), 3002)
	require.NoError(t, err)
	assert.False(t, c.IsDerivativeSupported)
	assert.True(t, c.IsInverseSupported)
	assert.Equal(t, 2, c.Transform.SourceDimensions())
}

func TestMathTransformSuite_ConfigureTolerance(t *testing.T) {
	suite := referencingtest.NewMathTransformSuite(exop.NewFactory())
	suite.Configure(conformance.DefaultConfiguration())
	assert.Equal(t, referencingtest.DefaultTolerance, suite.Tolerance)

	cfg, err := conformance.LoadConfiguration(strings.NewReader("tolerance: 1e-9\ntransformTolerance: 0.01\n"))
	require.NoError(t, err)
	suite.Configure(cfg)
	assert.Equal(t, 0.01, suite.Tolerance)
	assert.Equal(t, 0.01, suite.Configuration().TransformTolerance)

	c, err := suite.CreateMathTransform(context.Background(), 3857)
	require.NoError(t, err)
	assert.Equal(t, 0.01, c.Tolerance)

	_, err = conformance.LoadConfiguration(strings.NewReader("transformTolerance: -1\n"))
	require.Error(t, err)
}

func TestPseudoEPSG(t *testing.T) {
	f := exop.NewFactory()
	g, err := referencingtest.PseudoEPSG(f, 32040)
	require.NoError(t, err)
	require.NoError(t, conformance.Validate(context.Background(), g))
	assert.Equal(t, "Lambert_Conformal_Conic_2SP", g.Descriptor().Name().Code())

	_, err = referencingtest.PseudoEPSG(f, 4326)
	require.ErrorIs(t, err, referencingtest.ErrUnknownCode)
	_, err = referencingtest.Samples(4326)
	require.ErrorIs(t, err, referencingtest.ErrUnknownCode)

	assert.Equal(t, []int{3002, 3388, 3857, 24200, 31300, 32040, 310642901}, referencingtest.Codes())
	for _, code := range referencingtest.Codes() {
		s, err := referencingtest.Samples(code)
		require.NoError(t, err)
		assert.Equal(t, code, s.Code)
		assert.Len(t, s.Target, len(s.Source))
	}
}

func TestToleranceFor(t *testing.T) {
	f := referencingtest.ToleranceFor(0.01, true)
	point := []float64{10, 45}
	assert.Equal(t, 0.01, f(point, 0, referencingtest.Direct))
	assert.Equal(t, 0.0, f(point, 0, referencingtest.Strict))
	assert.InDelta(t, 0.01/(1852*60), f(point, 1, referencingtest.Inverse), 1e-15)
	assert.Equal(t, 360.0, f([]float64{10, -90}, 0, referencingtest.Inverse))
	assert.InDelta(t, 0.45, f(point, 1, referencingtest.Derivative), 1e-15)
	assert.InDelta(t, 0.1, f([]float64{0, 0}, 1, referencingtest.Derivative), 1e-15)

	plain := referencingtest.ToleranceFor(0.01, false)
	assert.Equal(t, 0.01, plain([]float64{10, 90}, 0, referencingtest.Inverse))
	assert.False(t, math.IsNaN(plain(point, 0, referencingtest.Identity)))
}

func TestObjectSuite(t *testing.T) {
	f := exref.Factory{}
	suite := referencingtest.NewObjectSuite(f, f, f)
	wgs84, err := suite.CreateWGS84(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "WGS 84", wgs84.Name().Code())
	assert.Equal(t, 2, crs.Dimension(wgs84))

	compound, err := suite.CreateEllipsoidalHeight(context.Background(), wgs84)
	require.NoError(t, err)
	assert.Len(t, compound.Components(), 2)
}
