package cs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoapi/geoconform/referencing/cs"
)

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		in   string
		want cs.AxisDirection
		ok   bool
	}{
		{"north", cs.North, true},
		{"NORTH_EAST", cs.NorthEast, true},
		{"geocentricX", cs.GeocentricX, true},
		{"e", cs.East, true},
		{"D", cs.Down, true},
		{"sideways", cs.DirectionOther, false},
	}
	for _, tt := range tests {
		got, ok := cs.DirectionOf(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestAxisDirection_Opposite(t *testing.T) {
	assert.Equal(t, cs.South, cs.North.Opposite())
	assert.Equal(t, cs.NorthNorthWest, cs.SouthSouthEast.Opposite())
	assert.Equal(t, cs.Up, cs.Down.Opposite())
	assert.Equal(t, cs.DisplayLeft, cs.DisplayRight.Opposite())
	assert.Equal(t, cs.GeocentricY, cs.GeocentricY.Opposite())

	assert.Equal(t, cs.North, cs.South.Absolute())
	assert.Equal(t, cs.East, cs.West.Absolute())
	assert.Equal(t, cs.Future, cs.Past.Absolute())
}

func TestCompassAngle(t *testing.T) {
	a, ok := cs.CompassAngle(cs.North, cs.East)
	assert.True(t, ok)
	assert.Equal(t, 90.0, a)
	a, ok = cs.CompassAngle(cs.East, cs.North)
	assert.True(t, ok)
	assert.Equal(t, 270.0, a)
	_, ok = cs.CompassAngle(cs.North, cs.Up)
	assert.False(t, ok)
}

func TestAxisDirection_CodeList(t *testing.T) {
	assert.Equal(t, "NORTH_EAST", cs.NorthEast.Name())
	assert.Equal(t, "northEast", cs.NorthEast.String())
	assert.Empty(t, cs.AxisDirection(999).Identifier())
	assert.Len(t, cs.North.Family(), int(cs.DisplayDown)+1)

	m, ok := cs.RangeMeaningOf("WRAPAROUND")
	assert.True(t, ok)
	assert.Equal(t, cs.Wraparound, m)
}
