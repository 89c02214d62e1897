package referencing

import (
	"time"

	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/referencing/operation"
	"github.com/geoapi/geoconform/units"
)

// Factory creates the objects of this package. It implements cs.Factory,
// datum.Factory and crs.Factory.
type Factory struct{}

var (
	_ cs.Factory    = Factory{}
	_ datum.Factory = Factory{}
	_ crs.Factory   = Factory{}
)

func (Factory) CreateAxis(props referencing.Properties, abbreviation string, direction cs.AxisDirection, unit units.Unit) (cs.Axis, error) {
	return nonNil[cs.Axis](NewAxis(props, abbreviation, direction, unit))
}

func (Factory) CreateCartesianCS(props referencing.Properties, axes ...cs.Axis) (cs.CoordinateSystem, error) {
	return nonNil[cs.CoordinateSystem](NewCoordinateSystem(props, cs.Cartesian, axes...))
}

func (Factory) CreateEllipsoidalCS(props referencing.Properties, axes ...cs.Axis) (cs.CoordinateSystem, error) {
	return nonNil[cs.CoordinateSystem](NewCoordinateSystem(props, cs.Ellipsoidal, axes...))
}

func (Factory) CreateSphericalCS(props referencing.Properties, axes ...cs.Axis) (cs.CoordinateSystem, error) {
	return nonNil[cs.CoordinateSystem](NewCoordinateSystem(props, cs.Spherical, axes...))
}

func (Factory) CreateVerticalCS(props referencing.Properties, axis cs.Axis) (cs.CoordinateSystem, error) {
	return nonNil[cs.CoordinateSystem](NewCoordinateSystem(props, cs.Vertical, axis))
}

func (Factory) CreateTimeCS(props referencing.Properties, axis cs.Axis) (cs.CoordinateSystem, error) {
	return nonNil[cs.CoordinateSystem](NewCoordinateSystem(props, cs.Time, axis))
}

func (Factory) CreateEllipsoid(props referencing.Properties, semiMajor, semiMinor float64, unit units.Unit) (datum.Ellipsoid, error) {
	return nonNil[datum.Ellipsoid](NewEllipsoid(props, semiMajor, semiMinor, unit))
}

func (Factory) CreateFlattenedSphere(props referencing.Properties, semiMajor, inverseFlattening float64, unit units.Unit) (datum.Ellipsoid, error) {
	return nonNil[datum.Ellipsoid](NewFlattenedSphere(props, semiMajor, inverseFlattening, unit))
}

func (Factory) CreatePrimeMeridian(props referencing.Properties, greenwichLongitude float64, unit units.Unit) (datum.PrimeMeridian, error) {
	return nonNil[datum.PrimeMeridian](NewPrimeMeridian(props, greenwichLongitude, unit))
}

func (Factory) CreateGeodeticDatum(props referencing.Properties, ellipsoid datum.Ellipsoid, pm datum.PrimeMeridian) (datum.GeodeticDatum, error) {
	return nonNil[datum.GeodeticDatum](NewGeodeticDatum(props, ellipsoid, pm))
}

func (Factory) CreateVerticalDatum(props referencing.Properties, t datum.VerticalDatumType) (datum.VerticalDatum, error) {
	return nonNil[datum.VerticalDatum](NewVerticalDatum(props, t))
}

func (Factory) CreateTemporalDatum(props referencing.Properties, origin time.Time) (datum.TemporalDatum, error) {
	return nonNil[datum.TemporalDatum](NewTemporalDatum(props, origin))
}

func (Factory) CreateGeographicCRS(props referencing.Properties, d datum.GeodeticDatum, c cs.CoordinateSystem) (crs.Single, error) {
	return nonNil[crs.Single](NewSingleCRS(props, crs.Geographic, d, c))
}

func (Factory) CreateGeocentricCRS(props referencing.Properties, d datum.GeodeticDatum, c cs.CoordinateSystem) (crs.Single, error) {
	return nonNil[crs.Single](NewSingleCRS(props, crs.Geocentric, d, c))
}

func (Factory) CreateProjectedCRS(props referencing.Properties, base crs.Single, conversion operation.SingleOperation, c cs.CoordinateSystem) (crs.GeneralDerived, error) {
	return nonNil[crs.GeneralDerived](NewDerivedCRS(props, crs.Projected, base, conversion, c))
}

func (Factory) CreateVerticalCRS(props referencing.Properties, d datum.VerticalDatum, c cs.CoordinateSystem) (crs.Single, error) {
	return nonNil[crs.Single](NewSingleCRS(props, crs.Vertical, d, c))
}

func (Factory) CreateTemporalCRS(props referencing.Properties, d datum.TemporalDatum, c cs.CoordinateSystem) (crs.Single, error) {
	return nonNil[crs.Single](NewSingleCRS(props, crs.Temporal, d, c))
}

func (Factory) CreateCompoundCRS(props referencing.Properties, components ...crs.CRS) (crs.CompoundCRS, error) {
	return nonNil[crs.CompoundCRS](NewCompoundCRS(props, components...))
}

// nonNil converts a concrete result to an interface without turning a nil
// pointer into a non-nil interface.
func nonNil[I any, T comparable](v T, err error) (I, error) {
	var zero I
	var none T
	if err != nil || v == none {
		return zero, err
	}
	return any(v).(I), nil
}
