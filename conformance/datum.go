package conformance

import (
	"context"
	"math"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/referencing/datum"
)

// DatumValidator validates datums, ellipsoids and prime meridians.
type DatumValidator struct {
	ReferencingValidator
	// Tolerance is the relative tolerance between the inverse flattening and
	// the semi-axis lengths.
	Tolerance float64
}

// NewDatumValidator creates a validator delegating other packages to c.
func NewDatumValidator(c *Container) *DatumValidator {
	return &DatumValidator{ReferencingValidator: newReferencingValidator(c, "geoapi.referencing.datum"), Tolerance: DefaultTolerance}
}

// Validate dispatches to the checks of the datum type.
func (v *DatumValidator) Validate(ctx context.Context, obj datum.Datum) error {
	r := geoconform.NewReport(ctx)
	v.dispatch(r, geoconform.Root(), obj)
	return r.Err()
}

// ValidateEllipsoid validates an ellipsoid.
func (v *DatumValidator) ValidateEllipsoid(ctx context.Context, obj datum.Ellipsoid) error {
	r := geoconform.NewReport(ctx)
	v.validateEllipsoid(r, geoconform.Root(), obj)
	return r.Err()
}

// ValidatePrimeMeridian validates a prime meridian.
func (v *DatumValidator) ValidatePrimeMeridian(ctx context.Context, obj datum.PrimeMeridian) error {
	r := geoconform.NewReport(ctx)
	v.validatePrimeMeridian(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *DatumValidator) dispatch(r *geoconform.Report, p geoconform.PathRef, obj datum.Datum) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, obj)
	v.container.Naming.validateInternationalString(r, p.Field("anchorPoint"), obj.AnchorPoint())
	v.container.Naming.validateInternationalString(r, p.Field("scope"), obj.Scope())
	v.container.Extent.validateExtent(r, p.Field("domainOfValidity"), obj.DomainOfValidity())
	switch d := obj.(type) {
	case datum.GeodeticDatum:
		v.validateGeodetic(r, p, d)
	case datum.VerticalDatum:
		v.container.Naming.validateCodeList(r, p.Field("verticalDatumType"), d.VerticalDatumType())
	case datum.TemporalDatum:
		v.mandatory(r, p.Field("origin"), "CD_TemporalDatum.origin", "TemporalDatum: shall have an origin.", d.Origin())
	case datum.ImageDatum:
		v.container.Naming.validateCodeList(r, p.Field("pixelInCell"), d.PixelInCell())
	default:
		switch obj.Type() {
		case datum.Geodetic, datum.Vertical, datum.Temporal, datum.Image:
			v.fail(r, p, geoconform.CodeUnexpectedType, obj.Type().String()+": datum type is not backed by the matching interface.")
		}
	}
}

func (v *DatumValidator) validateGeodetic(r *geoconform.Report, p geoconform.PathRef, d datum.GeodeticDatum) {
	v.check(r, d.Type() == datum.Geodetic, p, geoconform.CodeUnexpectedType, "GeodeticDatum: Type() shall be Geodetic.", "actual", d.Type().String())
	if e := d.Ellipsoid(); v.mandatory(r, p.Field("ellipsoid"), "CD_GeodeticDatum.ellipsoid", "GeodeticDatum: shall have an ellipsoid.", e) {
		v.validateEllipsoid(r, p.Field("ellipsoid"), e)
	}
	if pm := d.PrimeMeridian(); v.mandatory(r, p.Field("primeMeridian"), "CD_GeodeticDatum.primeMeridian", "GeodeticDatum: shall have a prime meridian.", pm) {
		v.validatePrimeMeridian(r, p.Field("primeMeridian"), pm)
	}
}

func (v *DatumValidator) validateEllipsoid(r *geoconform.Report, p geoconform.PathRef, e datum.Ellipsoid) {
	if geoconform.IsNil(e) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, e)
	if u := e.AxisUnit(); v.mandatory(r, p.Field("axisUnit"), "CD_Ellipsoid.axisUnit", "Ellipsoid: shall have a unit of measurement.", u) {
		v.check(r, u.IsLinear(), p.Field("axisUnit"), geoconform.CodeInconsistentValue, "Ellipsoid: axis unit shall be linear.", "unit", u.String())
	}
	a, b := e.SemiMajorAxis(), e.SemiMinorAxis()
	v.check(r, a > 0, p.Field("semiMajorAxis"), geoconform.CodeInvalidRange, "Ellipsoid: semi-major axis shall be positive.", "actual", a)
	v.check(r, b > 0, p.Field("semiMinorAxis"), geoconform.CodeInvalidRange, "Ellipsoid: semi-minor axis shall be positive.", "actual", b)
	v.check(r, b <= a, p.Field("semiMinorAxis"), geoconform.CodeInvalidRange,
		"Ellipsoid: semi-minor axis shall not be greater than semi-major axis.", "semiMajorAxis", a, "semiMinorAxis", b)
	ivf := e.InverseFlattening()
	if e.IsSphere() {
		v.check(r, a == b, p.Field("semiMinorAxis"), geoconform.CodeInconsistentValue, "Ellipsoid: a sphere shall have equal semi-axes.",
			"semiMajorAxis", a, "semiMinorAxis", b)
		v.check(r, math.IsInf(ivf, 1), p.Field("inverseFlattening"), geoconform.CodeInconsistentValue,
			"Ellipsoid: a sphere shall have an infinite inverse flattening.", "actual", ivf)
		return
	}
	if !v.check(r, ivf > 1, p.Field("inverseFlattening"), geoconform.CodeInvalidRange, "Ellipsoid: inverse flattening shall be greater than 1.", "actual", ivf) {
		return
	}
	if a > 0 && !math.IsInf(ivf, 0) {
		expected := a - a/ivf
		v.check(r, math.Abs(expected-b) <= a*v.Tolerance, p.Field("semiMinorAxis"), geoconform.CodeInconsistentValue,
			"Ellipsoid: semi-minor axis shall agree with the inverse flattening.", "expected", expected, "actual", b)
	}
}

func (v *DatumValidator) validatePrimeMeridian(r *geoconform.Report, p geoconform.PathRef, pm datum.PrimeMeridian) {
	if geoconform.IsNil(pm) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, pm)
	u := pm.AngularUnit()
	if !v.mandatory(r, p.Field("angularUnit"), "CD_PrimeMeridian.angularUnit", "PrimeMeridian: shall have an angular unit.", u) {
		return
	}
	if !v.check(r, u.IsAngular(), p.Field("angularUnit"), geoconform.CodeInconsistentValue, "PrimeMeridian: unit shall be angular.", "unit", u.String()) {
		return
	}
	degrees := pm.GreenwichLongitude() * u.Factor * 180 / math.Pi
	v.checkBetween(r, p.Field("greenwichLongitude"), geoconform.CodeInvalidRange,
		"PrimeMeridian: Greenwich longitude shall be in the [-180 … 180]° range.", -180, 180, degrees)
}
