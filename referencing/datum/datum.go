// Package datum declares datums, ellipsoids and prime meridians (ISO 19111).
package datum

import (
	"strings"
	"time"

	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/units"
	"github.com/geoapi/geoconform/util"
)

// Type discriminates the datum kinds.
type Type int

const (
	TypeUnknown Type = iota
	Geodetic
	Vertical
	Temporal
	Image
	Engineering
)

func (t Type) String() string {
	switch t {
	case Geodetic:
		return "GeodeticDatum"
	case Vertical:
		return "VerticalDatum"
	case Temporal:
		return "TemporalDatum"
	case Image:
		return "ImageDatum"
	case Engineering:
		return "EngineeringDatum"
	}
	return "Datum"
}

// Datum specifies the relationship of a coordinate system to the earth or
// another object (CD_Datum).
type Datum interface {
	referencing.IdentifiedObject
	Type() Type
	AnchorPoint() util.InternationalString
	// RealizationEpoch is the time the datum was realized; zero when unknown.
	RealizationEpoch() time.Time
	DomainOfValidity() metadata.Extent
	Scope() util.InternationalString
}

// Ellipsoid is a geometric figure approximating the earth (CD_Ellipsoid).
type Ellipsoid interface {
	referencing.IdentifiedObject
	AxisUnit() units.Unit
	SemiMajorAxis() float64
	SemiMinorAxis() float64
	// InverseFlattening is +Inf for a sphere.
	InverseFlattening() float64
	// IsIvfDefinitive reports whether the inverse flattening is the defining
	// parameter, the semi-minor axis being derived.
	IsIvfDefinitive() bool
	IsSphere() bool
}

// PrimeMeridian defines the origin from which longitudes are determined.
type PrimeMeridian interface {
	referencing.IdentifiedObject
	GreenwichLongitude() float64
	AngularUnit() units.Unit
}

// GeodeticDatum defines the position of an ellipsoid relative to the earth.
type GeodeticDatum interface {
	Datum
	Ellipsoid() Ellipsoid
	PrimeMeridian() PrimeMeridian
}

// VerticalDatum is a textual description of the relationship of gravity-related
// heights to the earth.
type VerticalDatum interface {
	Datum
	VerticalDatumType() VerticalDatumType
}

// TemporalDatum defines the origin of a temporal coordinate system.
type TemporalDatum interface {
	Datum
	Origin() time.Time
}

// ImageDatum defines the origin of an image coordinate system.
type ImageDatum interface {
	Datum
	PixelInCell() PixelInCell
}

// VerticalDatumType is the type of a vertical datum (CD_VerticalDatumType).
type VerticalDatumType int

const (
	VerticalOther VerticalDatumType = iota
	VerticalOrthometric
	VerticalEllipsoidal
	VerticalBarometric
	VerticalGeoidal
	VerticalDepth
)

var verticalCodes = [...]struct{ name, id string }{
	{"OTHER_SURFACE", "other surface"},
	{"ORTHOMETRIC", "orthometric"},
	{"ELLIPSOIDAL", "ellipsoidal"},
	{"BAROMETRIC", "barometric"},
	{"GEOIDAL", "geoidal"},
	{"DEPTH", "depth"},
}

func (v VerticalDatumType) Ordinal() int { return int(v) }

func (v VerticalDatumType) Name() string {
	if v < 0 || int(v) >= len(verticalCodes) {
		return ""
	}
	return verticalCodes[v].name
}

func (v VerticalDatumType) Identifier() string {
	if v < 0 || int(v) >= len(verticalCodes) {
		return ""
	}
	return verticalCodes[v].id
}

func (v VerticalDatumType) String() string { return v.Identifier() }

// VerticalDatumTypeOf parses a vertical datum type name or identifier.
func VerticalDatumTypeOf(s string) (VerticalDatumType, bool) {
	for i, c := range verticalCodes {
		if strings.EqualFold(s, c.name) || strings.EqualFold(s, c.id) {
			return VerticalDatumType(i), true
		}
	}
	return VerticalOther, false
}

// PixelInCell tells whether image grid coordinates refer to the cell centre
// or corner (CD_PixelInCell).
type PixelInCell int

const (
	CellCenter PixelInCell = iota
	CellCorner
)

func (p PixelInCell) Ordinal() int { return int(p) }

func (p PixelInCell) Name() string {
	switch p {
	case CellCenter:
		return "CELL_CENTER"
	case CellCorner:
		return "CELL_CORNER"
	}
	return ""
}

func (p PixelInCell) Identifier() string {
	switch p {
	case CellCenter:
		return "cellCenter"
	case CellCorner:
		return "cellCorner"
	}
	return ""
}

func (p PixelInCell) String() string { return p.Identifier() }

// Factory builds datums and their components.
type Factory interface {
	CreateEllipsoid(props referencing.Properties, semiMajor, semiMinor float64, unit units.Unit) (Ellipsoid, error)
	CreateFlattenedSphere(props referencing.Properties, semiMajor, inverseFlattening float64, unit units.Unit) (Ellipsoid, error)
	CreatePrimeMeridian(props referencing.Properties, greenwichLongitude float64, unit units.Unit) (PrimeMeridian, error)
	CreateGeodeticDatum(props referencing.Properties, ellipsoid Ellipsoid, pm PrimeMeridian) (GeodeticDatum, error)
	CreateVerticalDatum(props referencing.Properties, t VerticalDatumType) (VerticalDatum, error)
	CreateTemporalDatum(props referencing.Properties, origin time.Time) (TemporalDatum, error)
}
