package referencing

import (
	"fmt"
	"math"
	"time"

	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/units"
	"github.com/geoapi/geoconform/util"
)

// Ellipsoid is an ellipsoid defined either by its two semi-axes or by its
// semi-major axis and inverse flattening.
type Ellipsoid struct {
	Identified
	a, b, ivf  float64
	definitive bool
	unit       units.Unit
}

// NewEllipsoid creates an ellipsoid from its semi-axis lengths.
func NewEllipsoid(props referencing.Properties, semiMajor, semiMinor float64, unit units.Unit) (*Ellipsoid, error) {
	id, err := NewIdentified(props)
	if err != nil {
		return nil, err
	}
	if !(semiMajor > 0 && semiMinor > 0 && semiMinor <= semiMajor) {
		return nil, fmt.Errorf("%w: invalid semi-axes %g and %g", crs.ErrFactory, semiMajor, semiMinor)
	}
	ivf := math.Inf(1)
	if semiMinor != semiMajor {
		ivf = semiMajor / (semiMajor - semiMinor)
	}
	return &Ellipsoid{Identified: id, a: semiMajor, b: semiMinor, ivf: ivf, unit: unit}, nil
}

// NewFlattenedSphere creates an ellipsoid from its semi-major axis and
// inverse flattening. An infinite inverse flattening makes a sphere.
func NewFlattenedSphere(props referencing.Properties, semiMajor, inverseFlattening float64, unit units.Unit) (*Ellipsoid, error) {
	id, err := NewIdentified(props)
	if err != nil {
		return nil, err
	}
	if !(semiMajor > 0 && inverseFlattening > 1) {
		return nil, fmt.Errorf("%w: invalid semi-major axis %g or inverse flattening %g", crs.ErrFactory, semiMajor, inverseFlattening)
	}
	b := semiMajor
	if !math.IsInf(inverseFlattening, 1) {
		b = semiMajor * (1 - 1/inverseFlattening)
	}
	return &Ellipsoid{Identified: id, a: semiMajor, b: b, ivf: inverseFlattening, definitive: true, unit: unit}, nil
}

func (e *Ellipsoid) AxisUnit() units.Unit       { return e.unit }
func (e *Ellipsoid) SemiMajorAxis() float64     { return e.a }
func (e *Ellipsoid) SemiMinorAxis() float64     { return e.b }
func (e *Ellipsoid) InverseFlattening() float64 { return e.ivf }
func (e *Ellipsoid) IsIvfDefinitive() bool      { return e.definitive }
func (e *Ellipsoid) IsSphere() bool             { return e.a == e.b }

// Eccentricity returns the first eccentricity.
func (e *Ellipsoid) Eccentricity() float64 {
	return math.Sqrt(1 - (e.b*e.b)/(e.a*e.a))
}

// PrimeMeridian is the origin of longitudes.
type PrimeMeridian struct {
	Identified
	longitude float64
	unit      units.Unit
}

// NewPrimeMeridian creates a prime meridian.
func NewPrimeMeridian(props referencing.Properties, greenwichLongitude float64, unit units.Unit) (*PrimeMeridian, error) {
	id, err := NewIdentified(props)
	if err != nil {
		return nil, err
	}
	if !unit.IsAngular() {
		return nil, fmt.Errorf("%w: prime meridian unit %s is not angular", crs.ErrFactory, unit)
	}
	return &PrimeMeridian{Identified: id, longitude: greenwichLongitude, unit: unit}, nil
}

func (p *PrimeMeridian) GreenwichLongitude() float64 { return p.longitude }
func (p *PrimeMeridian) AngularUnit() units.Unit     { return p.unit }

// AnchorPointKey is the property holding the anchor point of a datum, as a
// string or util.InternationalString.
const AnchorPointKey = "anchorPoint"

// Datum holds the attributes shared by every datum type. Engineering
// datums use it directly.
type Datum struct {
	Identified
	kind   datum.Type
	anchor util.InternationalString
	epoch  time.Time
	domain metadata.Extent
	scope  util.InternationalString
}

func newDatum(props referencing.Properties, kind datum.Type) (Datum, error) {
	s, err := NewSystem(props)
	if err != nil {
		return Datum{}, err
	}
	return Datum{Identified: s.Identified, kind: kind, domain: s.domain, scope: s.scope,
		anchor: internationalString(props[AnchorPointKey])}, nil
}

// NewEngineeringDatum creates a datum for a local coordinate system.
func NewEngineeringDatum(props referencing.Properties) (*Datum, error) {
	d, err := newDatum(props, datum.Engineering)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Datum) Type() datum.Type                      { return d.kind }
func (d *Datum) AnchorPoint() util.InternationalString { return d.anchor }
func (d *Datum) RealizationEpoch() time.Time           { return d.epoch }
func (d *Datum) DomainOfValidity() metadata.Extent     { return d.domain }
func (d *Datum) Scope() util.InternationalString       { return d.scope }

// GeodeticDatum positions an ellipsoid relative to the earth.
type GeodeticDatum struct {
	Datum
	ellipsoid datum.Ellipsoid
	pm        datum.PrimeMeridian
}

// NewGeodeticDatum creates a geodetic datum.
func NewGeodeticDatum(props referencing.Properties, ellipsoid datum.Ellipsoid, pm datum.PrimeMeridian) (*GeodeticDatum, error) {
	d, err := newDatum(props, datum.Geodetic)
	if err != nil {
		return nil, err
	}
	if ellipsoid == nil || pm == nil {
		return nil, fmt.Errorf("%w: geodetic datum needs an ellipsoid and a prime meridian", crs.ErrFactory)
	}
	return &GeodeticDatum{Datum: d, ellipsoid: ellipsoid, pm: pm}, nil
}

func (d *GeodeticDatum) Ellipsoid() datum.Ellipsoid         { return d.ellipsoid }
func (d *GeodeticDatum) PrimeMeridian() datum.PrimeMeridian { return d.pm }

// VerticalDatum is the reference of gravity-related heights.
type VerticalDatum struct {
	Datum
	vtype datum.VerticalDatumType
}

// NewVerticalDatum creates a vertical datum.
func NewVerticalDatum(props referencing.Properties, t datum.VerticalDatumType) (*VerticalDatum, error) {
	d, err := newDatum(props, datum.Vertical)
	if err != nil {
		return nil, err
	}
	return &VerticalDatum{Datum: d, vtype: t}, nil
}

func (d *VerticalDatum) VerticalDatumType() datum.VerticalDatumType { return d.vtype }

// TemporalDatum is the origin of a time axis.
type TemporalDatum struct {
	Datum
	origin time.Time
}

// NewTemporalDatum creates a temporal datum.
func NewTemporalDatum(props referencing.Properties, origin time.Time) (*TemporalDatum, error) {
	d, err := newDatum(props, datum.Temporal)
	if err != nil {
		return nil, err
	}
	return &TemporalDatum{Datum: d, origin: origin}, nil
}

func (d *TemporalDatum) Origin() time.Time { return d.origin }

// ImageDatum is the origin of an image grid.
type ImageDatum struct {
	Datum
	pixel datum.PixelInCell
}

// NewImageDatum creates an image datum.
func NewImageDatum(props referencing.Properties, pixel datum.PixelInCell) (*ImageDatum, error) {
	d, err := newDatum(props, datum.Image)
	if err != nil {
		return nil, err
	}
	return &ImageDatum{Datum: d, pixel: pixel}, nil
}

func (d *ImageDatum) PixelInCell() datum.PixelInCell { return d.pixel }
