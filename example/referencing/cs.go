package referencing

import (
	"fmt"
	"math"

	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/units"
)

// Axis is a coordinate system axis.
type Axis struct {
	Identified
	abbreviation string
	direction    cs.AxisDirection
	unit         units.Unit
	min, max     float64
	meaning      cs.RangeMeaning
}

// NewAxis creates an axis. Latitude axes (north or south in angular units)
// are bounded to ±90°, longitude axes to ±180° with wraparound; other axes
// are unbounded.
func NewAxis(props referencing.Properties, abbreviation string, direction cs.AxisDirection, unit units.Unit) (*Axis, error) {
	id, err := NewIdentified(props)
	if err != nil {
		return nil, err
	}
	a := &Axis{Identified: id, abbreviation: abbreviation, direction: direction, unit: unit,
		min: math.Inf(-1), max: math.Inf(1), meaning: cs.Exact}
	if unit.IsAngular() {
		deg := units.Degree.Factor / unit.Factor
		switch direction.Absolute() {
		case cs.North:
			a.min, a.max = -90*deg, 90*deg
		case cs.East:
			a.min, a.max, a.meaning = -180*deg, 180*deg, cs.Wraparound
		}
	}
	return a, nil
}

// WithRange returns a copy of a with the given value range.
func (a *Axis) WithRange(min, max float64, meaning cs.RangeMeaning) *Axis {
	c := *a
	c.min, c.max, c.meaning = min, max, meaning
	return &c
}

func (a *Axis) Abbreviation() string          { return a.abbreviation }
func (a *Axis) Direction() cs.AxisDirection   { return a.direction }
func (a *Axis) Unit() units.Unit              { return a.unit }
func (a *Axis) MinimumValue() float64         { return a.min }
func (a *Axis) MaximumValue() float64         { return a.max }
func (a *Axis) RangeMeaning() cs.RangeMeaning { return a.meaning }

// CoordinateSystem is a coordinate system of any type.
type CoordinateSystem struct {
	Identified
	kind cs.Type
	axes []cs.Axis
}

// NewCoordinateSystem creates a coordinate system. Axis count is not checked
// against the type; the conformance validators do that.
func NewCoordinateSystem(props referencing.Properties, kind cs.Type, axes ...cs.Axis) (*CoordinateSystem, error) {
	id, err := NewIdentified(props)
	if err != nil {
		return nil, err
	}
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: %s needs at least one axis", crs.ErrFactory, kind)
	}
	return &CoordinateSystem{Identified: id, kind: kind, axes: append([]cs.Axis(nil), axes...)}, nil
}

func (c *CoordinateSystem) Type() cs.Type      { return c.kind }
func (c *CoordinateSystem) Dimension() int     { return len(c.axes) }
func (c *CoordinateSystem) Axis(i int) cs.Axis { return c.axes[i] }
