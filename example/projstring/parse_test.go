package projstring_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoapi/geoconform/conformance"
	"github.com/geoapi/geoconform/example/projstring"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/operation"
	"github.com/geoapi/geoconform/units"
)

func TestParse(t *testing.T) {
	d, err := projstring.Parse("+proj=lcc +lat_1=49.833 +lat_2=51.167 +lat_0=90 +lon_0=4.357 " +
		"+x_0=150000.013 +y_0=5400088.438 +ellps=intl +units=m +no_defs")
	require.NoError(t, err)
	assert.Equal(t, "lcc", d.Proj)
	assert.Equal(t, "International 1924", d.Ellipsoid.Name)
	assert.Equal(t, 6378388.0, d.Ellipsoid.A)
	assert.Equal(t, 49.833, d.Params["lat_1"])
	assert.Equal(t, units.Metre, d.Unit)
	assert.Equal(t, "enu", d.Axis)

	method, values, err := d.Parameters()
	require.NoError(t, err)
	assert.Equal(t, "Lambert_Conformal_Conic_2SP", method)
	assert.Equal(t, 90.0, values["latitude_of_origin"])
	assert.Equal(t, 150000.013, values["false_easting"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		def  string
		err  error
	}{
		{"no plus", "proj=merc", projstring.ErrSyntax},
		{"twice", "+proj=merc +proj=merc", projstring.ErrSyntax},
		{"unknown key", "+proj=merc +zone=31", projstring.ErrUnsupported},
		{"no value", "+proj=merc +lon_0", projstring.ErrSyntax},
		{"not a number", "+proj=merc +lon_0=east", projstring.ErrSyntax},
		{"infinite", "+proj=merc +lon_0=Inf", projstring.ErrSyntax},
		{"missing proj", "+ellps=WGS84", projstring.ErrSyntax},
		{"ellipsoid", "+proj=merc +ellps=airy", projstring.ErrUnsupported},
		{"datum", "+proj=merc +datum=OSGB36", projstring.ErrUnsupported},
		{"angular units", "+proj=merc +units=deg", projstring.ErrUnsupported},
		{"axis repeated", "+proj=merc +axis=eeu", projstring.ErrSyntax},
		{"axis letter", "+proj=merc +axis=enx", projstring.ErrSyntax},
		{"vertical first", "+proj=merc +axis=une", projstring.ErrSyntax},
		{"to_meter", "+proj=merc +to_meter=0", projstring.ErrSyntax},
		{"prolate", "+proj=merc +a=6000000 +b=7000000", projstring.ErrSyntax},
		{"prime meridian", "+proj=longlat +pm=atlantis", projstring.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := projstring.Parse(tt.def)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParse_Ellipsoid(t *testing.T) {
	tests := []struct {
		def  string
		a, b float64
	}{
		{"+proj=merc", 6378137, 6356752.314245179},
		{"+proj=merc +R=6371000", 6371000, 6371000},
		{"+proj=merc +a=6378206.4 +b=6356583.8", 6378206.4, 6356583.8},
		{"+proj=merc +a=6378137 +rf=298.257223563", 6378137, 6356752.314245179},
		{"+proj=merc +a=6378137 +f=0.5", 6378137, 3189068.5},
		{"+proj=merc +datum=NAD27", 6378206.4, 6356583.8},
	}
	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			d, err := projstring.Parse(tt.def)
			require.NoError(t, err)
			assert.InDelta(t, tt.a, d.Ellipsoid.A, 1e-6)
			assert.InDelta(t, tt.b, d.Ellipsoid.B, 1e-6)
		})
	}
}

func TestParse_Units(t *testing.T) {
	d, err := projstring.Parse("+proj=merc +units=us-ft")
	require.NoError(t, err)
	assert.Equal(t, units.USSurveyFoot, d.Unit)

	d, err = projstring.Parse("+proj=merc +to_meter=0.201168")
	require.NoError(t, err)
	assert.Equal(t, 0.201168, d.Unit.Factor)
	assert.True(t, d.Unit.IsLinear())

	d, err = projstring.Parse("+proj=longlat +pm=paris")
	require.NoError(t, err)
	assert.InDelta(t, 2.33722917, d.PrimeMeridian, 1e-12)
}

func TestDefinition_String(t *testing.T) {
	d, err := projstring.Parse("+proj=merc +x_0=10 +lon_0=5 +R=6371000 +axis=neu +type=crs")
	require.NoError(t, err)
	assert.Equal(t, "+proj=merc +lon_0=5 +x_0=10 +a=6371000 +b=6371000 +axis=neu", d.String())
}

func TestDefinition_StringRoundTrip(t *testing.T) {
	tests := []struct {
		def  string
		want string
	}{
		{
			def:  "+proj=merc +units=us-ft +pm=paris +x_0=2000000",
			want: "+proj=merc +x_0=2000000 +a=6378137 +b=6356752.314245179 +units=us-ft +pm=paris",
		},
		{
			def:  "+proj=merc +title=Zone +datum=NAD27 +to_meter=0.201168 +pm=-3.5",
			want: "+proj=merc +title=Zone +datum=NAD27 +to_meter=0.201168 +a=6378206.4 +b=6356583.8 +pm=-3.5",
		},
		{
			def:  "+proj=lcc +lat_1=0.00001 +units=km",
			want: "+proj=lcc +lat_1=0.00001 +a=6378137 +b=6356752.314245179 +units=km",
		},
	}
	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			d, err := projstring.Parse(tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())

			again, err := projstring.Parse(d.String())
			require.NoError(t, err)
			assert.Equal(t, d.Unit, again.Unit)
			assert.Equal(t, d.PrimeMeridian, again.PrimeMeridian)
			assert.Equal(t, d.Datum, again.Datum)
			assert.Equal(t, d.Title, again.Title)
			assert.Equal(t, d.Ellipsoid.A, again.Ellipsoid.A)
			assert.Equal(t, d.Ellipsoid.B, again.Ellipsoid.B)
			assert.Equal(t, d.String(), again.String())
		})
	}
}

func TestParameters_Methods(t *testing.T) {
	tests := []struct {
		def    string
		method string
	}{
		{"+proj=merc +k=0.997", "Mercator_1SP"},
		{"+proj=merc +lat_ts=42", "Mercator_2SP"},
		{"+proj=webmerc +R=6378137", "Popular_Visualisation_Pseudo_Mercator"},
		{"+proj=mill +R=6378137", "Miller_Cylindrical"},
		{"+proj=lcc +lat_1=18 +lat_0=18", "Lambert_Conformal_Conic_1SP"},
		{"+proj=lcc +lat_1=18 +lat_2=18", "Lambert_Conformal_Conic_1SP"},
	}
	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			d, err := projstring.Parse(tt.def)
			require.NoError(t, err)
			method, _, err := d.Parameters()
			require.NoError(t, err)
			assert.Equal(t, tt.method, method)
		})
	}

	for _, def := range []string{"+proj=lcc", "+proj=tmerc"} {
		d, err := projstring.Parse(def)
		require.NoError(t, err)
		_, _, err = d.Parameters()
		require.Error(t, err, def)
	}
}

func TestDecode_Geographic(t *testing.T) {
	c, err := projstring.Decode("+proj=longlat +datum=WGS84 +no_defs")
	require.NoError(t, err)
	assert.Equal(t, crs.Geographic, c.Type())
	assert.Equal(t, "WGS84", c.Name().Code())
	assert.Equal(t, cs.East, c.CoordinateSystem().Axis(0).Direction())
	require.NoError(t, conformance.Validate(context.Background(), c))

	c, err = projstring.Decode("+proj=longlat +ellps=GRS80 +axis=neu +title=GRS80")
	require.NoError(t, err)
	assert.Equal(t, "GRS80", c.Name().Code())
	assert.Equal(t, cs.North, c.CoordinateSystem().Axis(0).Direction())
}

func TestDecode_Geocentric(t *testing.T) {
	c, err := projstring.Decode("+proj=geocent +datum=WGS84 +units=km")
	require.NoError(t, err)
	assert.Equal(t, crs.Geocentric, c.Type())
	assert.Equal(t, 3, crs.Dimension(c))
	assert.Equal(t, units.Kilometre, c.CoordinateSystem().Axis(0).Unit())
	require.NoError(t, conformance.Validate(context.Background(), c))
}

func TestDecode_Projected(t *testing.T) {
	c, err := projstring.Decode("+proj=merc +lon_0=110 +k=0.997 +x_0=3900000 +y_0=900000 +ellps=bessel +units=m +no_defs")
	require.NoError(t, err)
	assert.Equal(t, crs.Projected, c.Type())
	assert.Contains(t, c.Name().Code(), "Mercator_1SP")
	require.NoError(t, conformance.Validate(context.Background(), c))

	derived, ok := c.(crs.GeneralDerived)
	require.True(t, ok)
	out, err := operation.TransformPoint(derived.ConversionFromBase().MathTransform(), []float64{120, -3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5009726.58, 569150.82}, out, 0.01)
}

func TestDecode_Axes(t *testing.T) {
	c, err := projstring.Decode("+proj=merc +R=6378137 +axis=wsu +units=km")
	require.NoError(t, err)
	derived := c.(crs.GeneralDerived)
	out, err := operation.TransformPoint(derived.ConversionFromBase().MathTransform(), []float64{1, 1})
	require.NoError(t, err)
	assert.Less(t, out[0], 0.0)
	assert.Less(t, out[1], 0.0)
	assert.InDelta(t, -111.319, out[0], 1e-3)
	assert.Equal(t, cs.West, c.CoordinateSystem().Axis(0).Direction())
}
