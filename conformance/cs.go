package conformance

import (
	"context"
	"fmt"
	"math"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/referencing/cs"
)

// CSValidator validates coordinate systems and their axes.
type CSValidator struct {
	ReferencingValidator
}

// NewCSValidator creates a validator delegating other packages to c.
func NewCSValidator(c *Container) *CSValidator {
	return &CSValidator{ReferencingValidator: newReferencingValidator(c, "geoapi.referencing.cs")}
}

// Validate dispatches to the checks of the coordinate system type.
func (v *CSValidator) Validate(ctx context.Context, obj cs.CoordinateSystem) error {
	r := geoconform.NewReport(ctx)
	v.dispatch(r, geoconform.Root(), obj)
	return r.Err()
}

// ValidateAxis validates a single axis.
func (v *CSValidator) ValidateAxis(ctx context.Context, axis cs.Axis) error {
	r := geoconform.NewReport(ctx)
	v.validateAxis(r, geoconform.Root(), axis)
	return r.Err()
}

// dimensions bounds the number of axes per coordinate system type.
var dimensions = map[cs.Type][2]int{
	cs.Affine:      {2, 3},
	cs.Cartesian:   {2, 3},
	cs.Ellipsoidal: {2, 3},
	cs.Spherical:   {3, 3},
	cs.Cylindrical: {3, 3},
	cs.Polar:       {2, 2},
	cs.Linear:      {1, 1},
	cs.Vertical:    {1, 1},
	cs.Time:        {1, 1},
	cs.UserDefined: {2, 3},
}

func (v *CSValidator) dispatch(r *geoconform.Report, p geoconform.PathRef, obj cs.CoordinateSystem) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, obj)
	if !v.validateAxes(r, p, obj) {
		return
	}
	t := obj.Type()
	dim := obj.Dimension()
	if b, ok := dimensions[t]; ok {
		if b[0] == b[1] {
			v.checkEqualInt(r, p.Field("dimension"), geoconform.CodeInvalidDimension,
				fmt.Sprintf("%s: wrong number of dimensions.", t), b[0], dim)
		} else {
			v.check(r, dim >= b[0] && dim <= b[1], p.Field("dimension"), geoconform.CodeInvalidDimension,
				fmt.Sprintf("%s: wrong number of dimensions. Expected %d to %d but got %d.", t, b[0], b[1], dim),
				"minimum", b[0], "maximum", b[1], "actual", dim)
		}
	}
	switch t {
	case cs.Cartesian:
		v.validateCartesian(r, p, obj)
	case cs.Ellipsoidal:
		v.validateEllipsoidal(r, p, obj)
	case cs.Vertical:
		v.validateSingleAxis(r, p, obj, "VerticalCS", cs.Up)
	case cs.Time:
		v.validateSingleAxis(r, p, obj, "TimeCS", cs.Future)
	}
}

// validateAxes checks that every axis exists and that no two axes are
// colinear. It returns false when the dimension is not usable.
func (v *CSValidator) validateAxes(r *geoconform.Report, p geoconform.PathRef, obj cs.CoordinateSystem) bool {
	dim := obj.Dimension()
	if !v.check(r, dim > 0, p.Field("dimension"), geoconform.CodeInvalidDimension,
		"CoordinateSystem: dimension must be greater than zero.", "actual", dim) {
		return false
	}
	seen := make(map[cs.AxisDirection]int, dim)
	for i := 0; i < dim; i++ {
		ap := p.Field("axis").Index(i)
		axis := obj.Axis(i)
		if !v.mandatory(r, ap, "CS_CoordinateSystem.axis", "CoordinateSystem: axis can't be nil.", axis) {
			continue
		}
		v.validateAxis(r, ap, axis)
		d := axis.Direction()
		if d == cs.DirectionOther {
			continue
		}
		abs := d.Absolute()
		if j, dup := seen[abs]; dup {
			v.fail(r, ap.Field("direction"), geoconform.CodeAxisDirection,
				fmt.Sprintf("CoordinateSystem: axes %d and %d have colinear directions %s.", j, i, abs),
				"direction", d.Name(), "other", j)
			continue
		}
		seen[abs] = i
	}
	return true
}

func (v *CSValidator) validateAxis(r *geoconform.Report, p geoconform.PathRef, axis cs.Axis) {
	if geoconform.IsNil(axis) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, axis)
	v.mandatory(r, p.Field("abbreviation"), "CS_CoordinateSystemAxis.axisAbbrev", "Axis: abbreviation is mandatory.", axis.Abbreviation())
	v.container.Naming.validateCodeList(r, p.Field("direction"), axis.Direction())
	v.mandatory(r, p.Field("unit"), "CS_CoordinateSystemAxis.axisUnitID", "Axis: unit is mandatory.", axis.Unit())
	v.container.Naming.validateCodeList(r, p.Field("rangeMeaning"), axis.RangeMeaning())
	minimum, maximum := axis.MinimumValue(), axis.MaximumValue()
	v.checkRange(r, p, "Axis: expected maximum >= minimum.", minimum, maximum)
	if axis.RangeMeaning() == cs.Wraparound {
		v.check(r, !math.IsInf(minimum, 0) && !math.IsInf(maximum, 0), p.Field("rangeMeaning"), geoconform.CodeInvalidRange,
			"Axis: a wraparound range shall be finite.", "minimum", minimum, "maximum", maximum)
	}
}

// validateCartesian checks that axes are perpendicular and measured in
// linear units.
func (v *CSValidator) validateCartesian(r *geoconform.Report, p geoconform.PathRef, obj cs.CoordinateSystem) {
	dim := obj.Dimension()
	for i := 0; i < dim; i++ {
		a := obj.Axis(i)
		if geoconform.IsNil(a) {
			continue
		}
		if u := a.Unit(); !u.IsZero() {
			v.check(r, u.IsLinear(), p.Field("axis").Index(i).Field("unit"), geoconform.CodeInconsistentValue,
				"CartesianCS: axis unit shall be linear.", "unit", u.String())
		}
		for j := i + 1; j < dim; j++ {
			b := obj.Axis(j)
			if geoconform.IsNil(b) {
				continue
			}
			angle, ok := cs.CompassAngle(a.Direction(), b.Direction())
			if !ok {
				continue
			}
			v.check(r, math.Mod(angle, 180) == 90, p.Field("axis").Index(j).Field("direction"), geoconform.CodeAxisDirection,
				fmt.Sprintf("CartesianCS: axes %d and %d shall be perpendicular.", i, j), "angle", angle)
		}
	}
}

// validateEllipsoidal checks that horizontal axes are angular and the
// optional height axis is linear.
func (v *CSValidator) validateEllipsoidal(r *geoconform.Report, p geoconform.PathRef, obj cs.CoordinateSystem) {
	for i := 0; i < obj.Dimension(); i++ {
		a := obj.Axis(i)
		if geoconform.IsNil(a) || a.Unit().IsZero() {
			continue
		}
		u := a.Unit()
		switch d := a.Direction().Absolute(); {
		case d == cs.Up:
			v.check(r, u.IsLinear(), p.Field("axis").Index(i).Field("unit"), geoconform.CodeInconsistentValue,
				"EllipsoidalCS: height unit shall be linear.", "unit", u.String())
		case d.IsCompass():
			v.check(r, u.IsAngular(), p.Field("axis").Index(i).Field("unit"), geoconform.CodeInconsistentValue,
				"EllipsoidalCS: latitude and longitude units shall be angular.", "unit", u.String())
		}
	}
}

// validateSingleAxis checks the direction of a one-dimensional system
// against the expected absolute direction.
func (v *CSValidator) validateSingleAxis(r *geoconform.Report, p geoconform.PathRef, obj cs.CoordinateSystem, kind string, expected cs.AxisDirection) {
	if obj.Dimension() != 1 {
		return
	}
	a := obj.Axis(0)
	if geoconform.IsNil(a) {
		return
	}
	d := a.Direction()
	v.check(r, d.Absolute() == expected, p.Field("axis").Index(0).Field("direction"), geoconform.CodeAxisDirection,
		fmt.Sprintf("%s: axis direction shall be %s or %s.", kind, expected, expected.Opposite()), "direction", d.Name())
}
