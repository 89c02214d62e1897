// Package cs declares coordinate systems and their axes (ISO 19111).
package cs

import (
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/units"
)

// Type discriminates the coordinate system kinds.
type Type int

const (
	TypeUnknown Type = iota
	Affine
	Cartesian
	Ellipsoidal
	Spherical
	Cylindrical
	Polar
	Linear
	Vertical
	Time
	UserDefined
)

var typeNames = [...]string{
	"CoordinateSystem", "AffineCS", "CartesianCS", "EllipsoidalCS", "SphericalCS",
	"CylindricalCS", "PolarCS", "LinearCS", "VerticalCS", "TimeCS", "UserDefinedCS",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[0]
	}
	return typeNames[t]
}

// Axis is the definition of a coordinate system axis (CS_CoordinateSystemAxis).
type Axis interface {
	referencing.IdentifiedObject
	Abbreviation() string
	Direction() AxisDirection
	Unit() units.Unit
	// MinimumValue is the minimum value normally allowed, or -Inf.
	MinimumValue() float64
	// MaximumValue is the maximum value normally allowed, or +Inf.
	MaximumValue() float64
	RangeMeaning() RangeMeaning
}

// CoordinateSystem is a sequence of axes (CS_CoordinateSystem).
type CoordinateSystem interface {
	referencing.IdentifiedObject
	Type() Type
	Dimension() int
	// Axis returns the axis at index i, 0 <= i < Dimension().
	Axis(i int) Axis
}

// Factory builds coordinate systems from their components.
type Factory interface {
	CreateAxis(props referencing.Properties, abbreviation string, direction AxisDirection, unit units.Unit) (Axis, error)
	CreateCartesianCS(props referencing.Properties, axes ...Axis) (CoordinateSystem, error)
	CreateEllipsoidalCS(props referencing.Properties, axes ...Axis) (CoordinateSystem, error)
	CreateSphericalCS(props referencing.Properties, axes ...Axis) (CoordinateSystem, error)
	CreateVerticalCS(props referencing.Properties, axis Axis) (CoordinateSystem, error)
	CreateTimeCS(props referencing.Properties, axis Axis) (CoordinateSystem, error)
}
