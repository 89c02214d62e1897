package geometry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exgeom "github.com/geoapi/geoconform/example/geometry"
	exref "github.com/geoapi/geoconform/example/referencing"
)

func TestPosition(t *testing.T) {
	_, err := exgeom.NewPosition(exref.WGS84(), 1, 2, 3)
	require.Error(t, err)

	p, err := exgeom.NewPosition(exref.WGS84(), 45, 10)
	require.NoError(t, err)
	assert.Equal(t, "POINT(45 10)", p.String())

	coords := p.Coordinates()
	coords[0] = 0
	assert.Equal(t, 45.0, p.Ordinate(0))

	q, err := exgeom.NewPosition(exref.WGS84(), 45, 10)
	require.NoError(t, err)
	assert.True(t, p.Equal(q))
	assert.Equal(t, p.Hash(), q.Hash())

	q.SetOrdinate(1, 11)
	assert.False(t, p.Equal(q))
	assert.False(t, p.Equal(nil))
	assert.False(t, p.Equal((*exgeom.Position)(nil)))
}

func TestPosition_NaNAndZero(t *testing.T) {
	a, err := exgeom.NewPosition(nil, math.NaN(), 0)
	require.NoError(t, err)
	b, err := exgeom.NewPosition(nil, math.NaN(), math.Copysign(0, -1))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestEnvelope(t *testing.T) {
	_, err := exgeom.NewEnvelope(nil, []float64{0}, []float64{1, 2})
	require.Error(t, err)
	_, err = exgeom.NewEnvelope(nil, []float64{2, 0}, []float64{1, 1})
	require.Error(t, err)
	// Latitude does not wrap around.
	_, err = exgeom.NewEnvelope(exref.WGS84(), []float64{10, 0}, []float64{-10, 1})
	require.Error(t, err)

	e, err := exgeom.NewEnvelope(nil, []float64{0, -5}, []float64{10, 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, e.Median(0))
	assert.Equal(t, 10.0, e.Span(1))
	assert.Equal(t, -5.0, e.Minimum(1))
	assert.Equal(t, []float64{10, 5}, e.UpperCorner().Coordinates())
	assert.Equal(t, "BOX([0 -5], [10 5])", e.String())
}

func TestEnvelope_AntiMeridian(t *testing.T) {
	e, err := exgeom.NewEnvelope(exref.WGS84(), []float64{-10, 170}, []float64{10, -170})
	require.NoError(t, err)
	assert.Equal(t, -180.0, e.Minimum(1))
	assert.Equal(t, 180.0, e.Maximum(1))
	assert.Equal(t, 180.0, e.Median(1))
	assert.Equal(t, 20.0, e.Span(1))

	e, err = exgeom.NewEnvelope(exref.WGS84(), []float64{-10, 160}, []float64{10, -170})
	require.NoError(t, err)
	assert.Equal(t, 175.0, e.Median(1))

	e, err = exgeom.NewEnvelope(exref.WGS84(), []float64{-10, 170}, []float64{10, -160})
	require.NoError(t, err)
	assert.Equal(t, -175.0, e.Median(1))

	tests := []struct {
		name     string
		lat, lon float64
		inside   bool
	}{
		{"east of the line", 0, 175, true},
		{"west of the line", 0, -175, true},
		{"on the line", 0, 180, true},
		{"greenwich", 0, 0, false},
		{"north", 20, 175, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := exgeom.NewPosition(exref.WGS84(), tt.lat, tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.inside, e.Contains(p))
		})
	}
}
