// Package crs declares coordinate reference systems (ISO 19111 SC_CRS).
package crs

import (
	"errors"

	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/referencing/operation"
)

// ErrFactory is wrapped by factories refusing to build an object.
var ErrFactory = errors.New("crs: cannot create object")

// Type discriminates the coordinate reference system kinds.
type Type int

const (
	TypeUnknown Type = iota
	Geographic
	Geocentric
	Projected
	Derived
	Vertical
	Temporal
	Engineering
	Image
	Compound
)

var typeNames = [...]string{
	"CoordinateReferenceSystem", "GeographicCRS", "GeocentricCRS", "ProjectedCRS",
	"DerivedCRS", "VerticalCRS", "TemporalCRS", "EngineeringCRS", "ImageCRS", "CompoundCRS",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[0]
	}
	return typeNames[t]
}

// CRS is a coordinate reference system. Compound systems return a nil
// coordinate system.
type CRS interface {
	referencing.ReferenceSystem
	Type() Type
	CoordinateSystem() cs.CoordinateSystem
}

// Single is a CRS made of one coordinate system and one datum.
type Single interface {
	CRS
	Datum() datum.Datum
}

// GeneralDerived is a CRS defined by a conversion from another CRS.
// Projected CRS are derived from a geographic base.
type GeneralDerived interface {
	Single
	BaseCRS() CRS
	ConversionFromBase() operation.SingleOperation
}

// CompoundCRS is the association of two or more non-repeating CRS.
type CompoundCRS interface {
	CRS
	Components() []CRS
}

// Dimension returns the number of dimensions of c, summing components of
// compound systems.
func Dimension(c CRS) int {
	if cc, ok := c.(CompoundCRS); ok {
		n := 0
		for _, comp := range cc.Components() {
			if comp != nil {
				n += Dimension(comp)
			}
		}
		return n
	}
	if s := c.CoordinateSystem(); s != nil {
		return s.Dimension()
	}
	return 0
}

// Factory builds coordinate reference systems from their components.
type Factory interface {
	CreateGeographicCRS(props referencing.Properties, d datum.GeodeticDatum, c cs.CoordinateSystem) (Single, error)
	CreateGeocentricCRS(props referencing.Properties, d datum.GeodeticDatum, c cs.CoordinateSystem) (Single, error)
	CreateProjectedCRS(props referencing.Properties, base Single, conversion operation.SingleOperation, c cs.CoordinateSystem) (GeneralDerived, error)
	CreateVerticalCRS(props referencing.Properties, d datum.VerticalDatum, c cs.CoordinateSystem) (Single, error)
	CreateTemporalCRS(props referencing.Properties, d datum.TemporalDatum, c cs.CoordinateSystem) (Single, error)
	CreateCompoundCRS(props referencing.Properties, components ...CRS) (CompoundCRS, error)
}
