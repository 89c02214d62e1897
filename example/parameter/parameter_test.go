package parameter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exparam "github.com/geoapi/geoconform/example/parameter"
	exref "github.com/geoapi/geoconform/example/referencing"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/units"
)

func latitude(t *testing.T) *exparam.Descriptor {
	t.Helper()
	d, err := exparam.NewDescriptor(referencing.Properties{
		referencing.NameKey:  "latitude_of_origin",
		referencing.AliasKey: []string{"Latitude of natural origin"},
	}, 0, units.Degree)
	require.NoError(t, err)
	return d.WithRange(-90, 90)
}

func TestDescriptor(t *testing.T) {
	lat := latitude(t)
	assert.Equal(t, parameter.KindFloat, lat.Kind())
	assert.Equal(t, 1, lat.MinimumOccurs())
	assert.Equal(t, 0, lat.Optional().MinimumOccurs())
	assert.Equal(t, 1, lat.MinimumOccurs())
	min, max := lat.Range()
	assert.Equal(t, -90.0, min)
	assert.Equal(t, 90.0, max)
	assert.Equal(t, 0.0, lat.DefaultValue())

	mandatory, err := exparam.NewDescriptor(referencing.Named("semi_major"), math.NaN(), units.Metre)
	require.NoError(t, err)
	assert.Nil(t, mandatory.DefaultValue())
	_, err = mandatory.CreateValue().Float()
	require.ErrorIs(t, err, parameter.ErrInvalidValue)

	_, err = exparam.NewDescriptor(referencing.Properties{}, 0, units.Metre)
	require.Error(t, err)
}

func TestValue_SetValue(t *testing.T) {
	v := latitude(t).CreateValue()

	require.NoError(t, v.SetValue(45, units.Unit{}))
	assert.Equal(t, 45.0, v.Value())
	assert.Equal(t, units.Degree, v.Unit())

	require.NoError(t, v.SetValue(1.0, units.Radian))
	assert.Equal(t, units.Radian, v.Unit())
	deg, err := v.FloatIn(units.Degree)
	require.NoError(t, err)
	assert.InDelta(t, 180/math.Pi, deg, 1e-12)

	require.ErrorIs(t, v.SetValue(math.Pi, units.Radian), parameter.ErrInvalidValue)
	require.ErrorIs(t, v.SetValue(91.0, units.Degree), parameter.ErrInvalidValue)
	require.ErrorIs(t, v.SetValue(10.0, units.Metre), parameter.ErrInvalidValue)
	require.ErrorIs(t, v.SetValue("north", units.Degree), parameter.ErrInvalidValue)

	// Rejected values leave the previous one in place.
	assert.Equal(t, 1.0, v.Value())
	assert.Equal(t, units.Radian, v.Unit())
}

func TestValue_Accessors(t *testing.T) {
	d, err := exparam.NewDescriptor(referencing.Named("zone"), 31, units.Unit{})
	require.NoError(t, err)
	v := d.CreateValue()
	n, err := v.Int()
	require.NoError(t, err)
	assert.Equal(t, 31, n)

	require.NoError(t, v.SetValue(31.5, units.Unit{}))
	_, err = v.Int()
	require.ErrorIs(t, err, parameter.ErrInvalidValue)
	_, err = v.Text()
	require.ErrorIs(t, err, parameter.ErrInvalidValue)
	_, err = v.Bool()
	require.ErrorIs(t, err, parameter.ErrInvalidValue)
	f, err := v.FloatIn(units.Metre)
	require.NoError(t, err)
	assert.Equal(t, 31.5, f)
}

func TestTextDescriptor(t *testing.T) {
	d, err := exparam.NewTextDescriptor(referencing.Named("hemisphere"), "north", "north", "south")
	require.NoError(t, err)
	assert.Equal(t, parameter.KindString, d.Kind())
	assert.Equal(t, []any{"north", "south"}, d.ValidValues())

	v := d.CreateValue()
	s, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "north", s)

	require.NoError(t, v.SetValue("south", units.Unit{}))
	require.ErrorIs(t, v.SetValue("east", units.Unit{}), parameter.ErrInvalidValue)
	require.ErrorIs(t, v.SetValue(1.0, units.Unit{}), parameter.ErrInvalidValue)

	free, err := exparam.NewTextDescriptor(referencing.Named("comment"), "")
	require.NoError(t, err)
	assert.Nil(t, free.DefaultValue())
	require.NoError(t, free.CreateValue().SetValue("anything", units.Unit{}))
}

func TestValueGroup(t *testing.T) {
	lat := latitude(t)
	major, err := exparam.NewDescriptor(referencing.Named("semi_major"), math.NaN(), units.Metre)
	require.NoError(t, err)
	towgs84, err := exparam.NewDescriptorGroup(referencing.Named("towgs84"), lat)
	require.NoError(t, err)
	group, err := exparam.NewDescriptorGroup(exref.EPSG("Mercator (variant A)", "9804"), lat, major, towgs84)
	require.NoError(t, err)

	_, err = group.Descriptor("SEMI_MAJOR")
	require.NoError(t, err)
	_, err = group.Descriptor("zone")
	require.ErrorIs(t, err, parameter.ErrParameterNotFound)

	values := group.CreateValue()
	assert.Len(t, values.Values(), 3)
	assert.Same(t, group, values.Descriptor())

	require.NoError(t, values.Set("semi_major", 6378.137, units.Kilometre))
	major2, err := exparam.Float(values, "semi_major", units.Metre)
	require.NoError(t, err)
	assert.InDelta(t, 6378137, major2, 1e-6)

	p, err := values.Parameter("latitude of NATURAL origin")
	require.NoError(t, err)
	assert.Equal(t, "latitude_of_origin", p.Descriptor().Name().Code())

	_, err = values.Parameter("towgs84")
	require.ErrorIs(t, err, parameter.ErrParameterNotFound)
	assert.Len(t, values.Groups("towgs84"), 1)
	assert.Empty(t, values.Groups("semi_major"))

	require.ErrorIs(t, values.Set("zone", 1, units.Unit{}), parameter.ErrParameterNotFound)
	_, err = exparam.Float(values, "zone", units.Metre)
	require.ErrorIs(t, err, parameter.ErrParameterNotFound)
}
