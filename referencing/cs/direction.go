package cs

import (
	"strings"

	"github.com/geoapi/geoconform/util"
)

// AxisDirection is the direction of positive increments of an axis
// (CS_AxisDirection).
type AxisDirection int

const (
	DirectionOther AxisDirection = iota
	North
	NorthNorthEast
	NorthEast
	EastNorthEast
	East
	EastSouthEast
	SouthEast
	SouthSouthEast
	South
	SouthSouthWest
	SouthWest
	WestSouthWest
	West
	WestNorthWest
	NorthWest
	NorthNorthWest
	Up
	Down
	GeocentricX
	GeocentricY
	GeocentricZ
	Future
	Past
	ColumnPositive
	ColumnNegative
	RowPositive
	RowNegative
	DisplayRight
	DisplayLeft
	DisplayUp
	DisplayDown
)

var directionCodes = [...]struct{ name, id string }{
	{"OTHER", "other"},
	{"NORTH", "north"},
	{"NORTH_NORTH_EAST", "northNorthEast"},
	{"NORTH_EAST", "northEast"},
	{"EAST_NORTH_EAST", "eastNorthEast"},
	{"EAST", "east"},
	{"EAST_SOUTH_EAST", "eastSouthEast"},
	{"SOUTH_EAST", "southEast"},
	{"SOUTH_SOUTH_EAST", "southSouthEast"},
	{"SOUTH", "south"},
	{"SOUTH_SOUTH_WEST", "southSouthWest"},
	{"SOUTH_WEST", "southWest"},
	{"WEST_SOUTH_WEST", "westSouthWest"},
	{"WEST", "west"},
	{"WEST_NORTH_WEST", "westNorthWest"},
	{"NORTH_WEST", "northWest"},
	{"NORTH_NORTH_WEST", "northNorthWest"},
	{"UP", "up"},
	{"DOWN", "down"},
	{"GEOCENTRIC_X", "geocentricX"},
	{"GEOCENTRIC_Y", "geocentricY"},
	{"GEOCENTRIC_Z", "geocentricZ"},
	{"FUTURE", "future"},
	{"PAST", "past"},
	{"COLUMN_POSITIVE", "columnPositive"},
	{"COLUMN_NEGATIVE", "columnNegative"},
	{"ROW_POSITIVE", "rowPositive"},
	{"ROW_NEGATIVE", "rowNegative"},
	{"DISPLAY_RIGHT", "displayRight"},
	{"DISPLAY_LEFT", "displayLeft"},
	{"DISPLAY_UP", "displayUp"},
	{"DISPLAY_DOWN", "displayDown"},
}

func (d AxisDirection) valid() bool { return d >= 0 && int(d) < len(directionCodes) }

func (d AxisDirection) Ordinal() int { return int(d) }

func (d AxisDirection) Name() string {
	if !d.valid() {
		return ""
	}
	return directionCodes[d].name
}

func (d AxisDirection) Identifier() string {
	if !d.valid() {
		return ""
	}
	return directionCodes[d].id
}

func (d AxisDirection) String() string { return d.Identifier() }

// Family returns every AxisDirection in ordinal order.
func (d AxisDirection) Family() []util.CodeList {
	out := make([]util.CodeList, len(directionCodes))
	for i := range out {
		out[i] = AxisDirection(i)
	}
	return out
}

// IsCompass reports whether d is one of the sixteen compass directions.
func (d AxisDirection) IsCompass() bool { return d >= North && d <= NorthNorthWest }

// Opposite returns the direction pointing the other way, or d itself when
// there is none (geocentric axes, other).
func (d AxisDirection) Opposite() AxisDirection {
	switch {
	case d.IsCompass():
		return North + (d-North+8)%16
	}
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Future:
		return Past
	case Past:
		return Future
	case ColumnPositive:
		return ColumnNegative
	case ColumnNegative:
		return ColumnPositive
	case RowPositive:
		return RowNegative
	case RowNegative:
		return RowPositive
	case DisplayRight:
		return DisplayLeft
	case DisplayLeft:
		return DisplayRight
	case DisplayUp:
		return DisplayDown
	case DisplayDown:
		return DisplayUp
	}
	return d
}

// Absolute returns the canonical member of the {d, d.Opposite()} pair:
// North for South, Up for Down, Future for Past, and so on.
func (d AxisDirection) Absolute() AxisDirection {
	o := d.Opposite()
	if o < d {
		return o
	}
	return d
}

// CompassAngle returns the clockwise angle in degrees from source to target
// when both are compass directions.
func CompassAngle(source, target AxisDirection) (float64, bool) {
	if !source.IsCompass() || !target.IsCompass() {
		return 0, false
	}
	steps := int(target-source) % 16
	if steps < 0 {
		steps += 16
	}
	return float64(steps) * 22.5, true
}

// DirectionOf parses a direction name or identifier, case-insensitively.
// Single-letter PROJ orientations (e, w, n, s, u, d) are also accepted.
func DirectionOf(s string) (AxisDirection, bool) {
	switch strings.ToLower(s) {
	case "e":
		return East, true
	case "w":
		return West, true
	case "n":
		return North, true
	case "s":
		return South, true
	case "u":
		return Up, true
	case "d":
		return Down, true
	}
	norm := strings.ReplaceAll(strings.ToLower(s), "_", "")
	for i, c := range directionCodes {
		if norm == strings.ToLower(c.id) {
			return AxisDirection(i), true
		}
	}
	return DirectionOther, false
}

// RangeMeaning is the meaning of the axis value range (CS_RangeMeaning).
type RangeMeaning int

const (
	// Exact means any value between and including minimum and maximum is valid.
	Exact RangeMeaning = iota
	// Wraparound means the axis is continuous, values wrapping around at the
	// minimum and maximum.
	Wraparound
)

func (r RangeMeaning) Ordinal() int { return int(r) }

func (r RangeMeaning) Name() string {
	switch r {
	case Exact:
		return "EXACT"
	case Wraparound:
		return "WRAPAROUND"
	}
	return ""
}

func (r RangeMeaning) Identifier() string {
	switch r {
	case Exact:
		return "exact"
	case Wraparound:
		return "wraparound"
	}
	return ""
}

func (r RangeMeaning) String() string { return r.Identifier() }

// RangeMeaningOf parses "exact" or "wraparound".
func RangeMeaningOf(s string) (RangeMeaning, bool) {
	switch strings.ToLower(s) {
	case "exact":
		return Exact, true
	case "wraparound":
		return Wraparound, true
	}
	return Exact, false
}
