package units_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geoapi/geoconform/units"
)

func TestConvert(t *testing.T) {
	v, err := units.Convert(180, units.Degree, units.Radian)
	require.NoError(t, err)
	require.InDelta(t, math.Pi, v, 1e-15)

	v, err = units.Convert(2000000, units.USSurveyFoot, units.Metre)
	require.NoError(t, err)
	require.InDelta(t, 609601.2192024385, v, 1e-6)

	_, err = units.Convert(1, units.Metre, units.Degree)
	require.ErrorIs(t, err, units.ErrIncompatible)
}

func TestByName(t *testing.T) {
	u, ok := units.ByName("Meter")
	require.True(t, ok)
	require.Equal(t, units.Metre, u)

	u, ok = units.ByName("us-ft")
	require.True(t, ok)
	require.Equal(t, units.USSurveyFoot, u)

	_, ok = units.ByName("furlong")
	require.False(t, ok)
}

func TestZeroUnit(t *testing.T) {
	var u units.Unit
	require.True(t, u.IsZero())
	require.False(t, u.IsCompatible(units.Metre))
	require.True(t, units.Degree.IsAngular())
	require.True(t, units.Kilometre.IsLinear())
}
