package conformance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/conformance"
	exref "github.com/geoapi/geoconform/example/referencing"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/units"
)

// skewedEllipsoid reports a semi-minor axis that disagrees with its
// inverse flattening.
type skewedEllipsoid struct {
	*exref.Ellipsoid
	b float64
}

func (e skewedEllipsoid) SemiMinorAxis() float64 { return e.b }

// linearMeridian reports its longitude in metres, which the constructor
// would refuse.
type linearMeridian struct {
	*exref.PrimeMeridian
}

func (linearMeridian) AngularUnit() units.Unit { return units.Metre }

func TestEllipsoid(t *testing.T) {
	clarke, err := exref.NewFlattenedSphere(exref.EPSG("Clarke 1866", "7008"), 6378206.4, 294.9786982, units.Metre)
	require.NoError(t, err)
	sphere, err := exref.NewEllipsoid(referencing.Named("Sphere"), 6371007, 6371007, units.Metre)
	require.NoError(t, err)
	feet, err := exref.NewFlattenedSphere(referencing.Named("Feet"), 20925832.16, 294.9786982, units.Foot)
	require.NoError(t, err)

	tests := []struct {
		name string
		obj  any
		code string
		path string
	}{
		{name: "flattened", obj: clarke},
		{name: "sphere", obj: sphere},
		{name: "feet", obj: feet},
		{
			name: "inconsistent ivf",
			obj:  skewedEllipsoid{Ellipsoid: clarke, b: 6356000},
			code: geoconform.CodeInconsistentValue,
			path: "/semiMinorAxis",
		},
		{
			name: "greater minor axis",
			obj:  skewedEllipsoid{Ellipsoid: clarke, b: 6378300},
			code: geoconform.CodeInvalidRange,
			path: "/semiMinorAxis",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := conformance.NewContainer().Validate(context.Background(), tt.obj)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			iss := issuesOf(t, err)
			assert.Equal(t, tt.code, iss[0].Code)
			assert.Equal(t, tt.path, iss[0].Path)
		})
	}
}

func TestEllipsoid_Tolerance(t *testing.T) {
	clarke, err := exref.NewFlattenedSphere(referencing.Named("Clarke 1866"), 6378206.4, 294.9786982, units.Metre)
	require.NoError(t, err)
	// 1 m off, about 1.6e-7 of the semi-major axis.
	off := skewedEllipsoid{Ellipsoid: clarke, b: clarke.SemiMinorAxis() + 1}

	c := conformance.NewContainer()
	require.NoError(t, c.Validate(context.Background(), off))

	c.SetTolerance(1e-9)
	iss := issuesOf(t, c.Validate(context.Background(), off))
	assert.Equal(t, geoconform.CodeInconsistentValue, iss[0].Code)
	assert.InDelta(t, clarke.SemiMinorAxis(), iss[0].Params["expected"], 1e-6)
}

func TestPrimeMeridian(t *testing.T) {
	paris, err := exref.NewPrimeMeridian(exref.EPSG("Paris", "8903"), 2.5969213, units.Grad)
	require.NoError(t, err)
	require.NoError(t, conformance.NewContainer().Validate(context.Background(), paris))

	bad, err := exref.NewPrimeMeridian(referencing.Named("Bad"), 200, units.Degree)
	require.NoError(t, err)
	iss := issuesOf(t, conformance.NewContainer().Validate(context.Background(), bad))
	assert.Equal(t, geoconform.CodeInvalidRange, iss[0].Code)
	assert.Equal(t, "/greenwichLongitude", iss[0].Path)

	iss = issuesOf(t, conformance.NewContainer().Validate(context.Background(), linearMeridian{paris}))
	assert.Equal(t, geoconform.CodeInconsistentValue, iss[0].Code)
	assert.Equal(t, "/angularUnit", iss[0].Path)
}

func TestGeodeticDatum_Nested(t *testing.T) {
	d := exref.GeodeticDatumOf(exref.WGS84())
	require.NotNil(t, d)
	require.NoError(t, conformance.NewContainer().Datum.Validate(context.Background(), d))

	skewed := skewedEllipsoid{Ellipsoid: d.Ellipsoid().(*exref.Ellipsoid), b: 6300000}
	bad, err := exref.NewGeodeticDatum(referencing.Named("Bad"), skewed, exref.Greenwich())
	require.NoError(t, err)
	iss := issuesOf(t, conformance.NewContainer().Validate(context.Background(), bad))
	assert.Equal(t, "/ellipsoid/semiMinorAxis", iss[0].Path)
}
