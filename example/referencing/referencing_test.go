package referencing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exop "github.com/geoapi/geoconform/example/operation"
	exref "github.com/geoapi/geoconform/example/referencing"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/units"
)

func TestNewIdentified(t *testing.T) {
	_, err := exref.NewIdentified(referencing.Properties{})
	require.ErrorIs(t, err, crs.ErrFactory)
	_, err = exref.NewIdentified(referencing.Properties{referencing.NameKey: 4326})
	require.ErrorIs(t, err, crs.ErrFactory)

	id, err := exref.NewIdentified(referencing.Properties{
		referencing.NameKey:        "WGS 84",
		referencing.AliasKey:       []string{"WGS84", "World Geodetic System 1984"},
		referencing.IdentifiersKey: "EPSG:4326",
		referencing.RemarksKey:     "Used by GPS.",
	})
	require.NoError(t, err)
	assert.Equal(t, "WGS 84", id.Name().Code())
	assert.Equal(t, "WGS 84", id.String())
	require.Len(t, id.Alias(), 2)
	assert.Equal(t, "WGS84", id.Alias()[0].Tip().String())
	require.Len(t, id.Identifiers(), 1)
	assert.Equal(t, "EPSG", id.Identifiers()[0].CodeSpace())
	assert.Equal(t, "4326", id.Identifiers()[0].Code())
	assert.Equal(t, "Used by GPS.", id.Remarks().String())
}

func TestEllipsoid(t *testing.T) {
	_, err := exref.NewEllipsoid(referencing.Named("Prolate"), 6356752, 6378137, units.Metre)
	require.ErrorIs(t, err, crs.ErrFactory)
	_, err = exref.NewFlattenedSphere(referencing.Named("Flat"), 6378137, 1, units.Metre)
	require.ErrorIs(t, err, crs.ErrFactory)

	wgs84, err := exref.NewFlattenedSphere(referencing.Named("WGS 84"), 6378137, 298.257223563, units.Metre)
	require.NoError(t, err)
	assert.True(t, wgs84.IsIvfDefinitive())
	assert.InDelta(t, 6356752.314245179, wgs84.SemiMinorAxis(), 1e-6)
	assert.InDelta(t, 0.0818191908426, wgs84.Eccentricity(), 1e-12)

	sphere, err := exref.NewFlattenedSphere(referencing.Named("Sphere"), 6371007, math.Inf(1), units.Metre)
	require.NoError(t, err)
	assert.True(t, sphere.IsSphere())
	assert.Equal(t, 0.0, sphere.Eccentricity())

	byAxes, err := exref.NewEllipsoid(referencing.Named("Clarke 1866"), 6378206.4, 6356583.8, units.Metre)
	require.NoError(t, err)
	assert.False(t, byAxes.IsIvfDefinitive())
	assert.InDelta(t, 294.9786982, byAxes.InverseFlattening(), 1e-6)

	round, err := exref.NewEllipsoid(referencing.Named("Round"), 1, 1, units.Metre)
	require.NoError(t, err)
	assert.True(t, math.IsInf(round.InverseFlattening(), 1))
}

func TestPrimeMeridian(t *testing.T) {
	_, err := exref.NewPrimeMeridian(referencing.Named("Metres"), 0, units.Metre)
	require.ErrorIs(t, err, crs.ErrFactory)
	assert.Equal(t, "Greenwich", exref.Greenwich().Name().Code())
	assert.Equal(t, units.Degree, exref.Greenwich().AngularUnit())
}

func TestAxis(t *testing.T) {
	lat, err := exref.NewAxis(referencing.Named("Latitude"), "φ", cs.South, units.Grad)
	require.NoError(t, err)
	assert.InDelta(t, -100, lat.MinimumValue(), 1e-12)
	assert.InDelta(t, 100, lat.MaximumValue(), 1e-12)
	assert.Equal(t, cs.Exact, lat.RangeMeaning())

	lon, err := exref.NewAxis(referencing.Named("Longitude"), "λ", cs.West, units.Degree)
	require.NoError(t, err)
	assert.Equal(t, cs.Wraparound, lon.RangeMeaning())
	assert.Equal(t, 180.0, lon.MaximumValue())

	h, err := exref.NewAxis(referencing.Named("Height"), "h", cs.Up, units.Metre)
	require.NoError(t, err)
	assert.True(t, math.IsInf(h.MinimumValue(), -1))

	bounded := h.WithRange(0, 100, cs.Exact)
	assert.Equal(t, 100.0, bounded.MaximumValue())
	assert.True(t, math.IsInf(h.MaximumValue(), 1))
}

func TestCRS(t *testing.T) {
	wgs84 := exref.WGS84()
	assert.Same(t, wgs84, exref.WGS84())
	assert.Equal(t, crs.Geographic, wgs84.Type())
	assert.Equal(t, 2, crs.Dimension(wgs84))
	assert.Equal(t, cs.North, wgs84.CoordinateSystem().Axis(0).Direction())
	require.NotNil(t, exref.GeodeticDatumOf(wgs84))
	assert.Same(t, exref.Greenwich(), exref.GeodeticDatumOf(wgs84).PrimeMeridian())

	_, err := exref.NewSingleCRS(referencing.Named("No CS"), crs.Geographic, nil, nil)
	require.ErrorIs(t, err, crs.ErrFactory)
	_, err = exref.NewCompoundCRS(referencing.Named("Lonely"), wgs84)
	require.ErrorIs(t, err, crs.ErrFactory)
	_, err = exref.NewDerivedCRS(referencing.Named("No base"), crs.Projected, nil, nil, wgs84.CoordinateSystem())
	require.ErrorIs(t, err, crs.ErrFactory)
}

func TestFactory(t *testing.T) {
	var f exref.Factory
	c, err := f.CreateCompoundCRS(referencing.Named("Lonely"), exref.WGS84())
	require.Error(t, err)
	assert.Nil(t, c)

	e, err := f.CreateAxis(referencing.Named("Easting"), "E", cs.East, units.Metre)
	require.NoError(t, err)
	n, err := f.CreateAxis(referencing.Named("Northing"), "N", cs.North, units.Metre)
	require.NoError(t, err)
	cartesian, err := f.CreateCartesianCS(referencing.Named("Cartesian 2D"), e, n)
	require.NoError(t, err)
	assert.Equal(t, cs.Cartesian, cartesian.Type())

	ops := exop.NewFactory()
	params, err := ops.Parameters("Popular_Visualisation_Pseudo_Mercator", map[string]float64{"semi_major": 6378137, "semi_minor": 6378137})
	require.NoError(t, err)
	conv, err := ops.CreateConversion(referencing.Named("Popular Visualisation Pseudo-Mercator"), params)
	require.NoError(t, err)
	projected, err := f.CreateProjectedCRS(exref.EPSG("WGS 84 / Pseudo-Mercator", "3857"), exref.WGS84(), conv, cartesian)
	require.NoError(t, err)
	assert.Equal(t, crs.Projected, projected.Type())
	assert.Same(t, exref.WGS84(), projected.BaseCRS())
	assert.Equal(t, exref.WGS84().Datum(), projected.Datum())

	bound := projected.ConversionFromBase()
	assert.Same(t, exref.WGS84(), bound.SourceCRS())
	assert.Same(t, projected, bound.TargetCRS())
	assert.Nil(t, conv.SourceCRS())
}
