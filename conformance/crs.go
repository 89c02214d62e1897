package conformance

import (
	"context"
	"fmt"
	"strings"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
)

// CRSValidator validates coordinate reference systems. Coordinate systems and
// datums are delegated to the container.
type CRSValidator struct {
	ReferencingValidator
	// EnforceStandardNames requires ISO 19111 axis names ("Geodetic latitude",
	// "Easting", ...) on geographic, geocentric and projected systems.
	EnforceStandardNames bool
}

// NewCRSValidator creates a validator delegating other packages to c.
func NewCRSValidator(c *Container) *CRSValidator {
	return &CRSValidator{ReferencingValidator: newReferencingValidator(c, "geoapi.referencing.crs")}
}

// Validate dispatches to the checks of the CRS type.
func (v *CRSValidator) Validate(ctx context.Context, obj crs.CRS) error {
	r := geoconform.NewReport(ctx)
	v.dispatch(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *CRSValidator) dispatch(r *geoconform.Report, p geoconform.PathRef, obj crs.CRS) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, obj)
	v.container.Extent.validateExtent(r, p.Field("domainOfValidity"), obj.DomainOfValidity())
	v.container.Naming.validateInternationalString(r, p.Field("scope"), obj.Scope())
	t := obj.Type()
	switch t {
	case crs.Geocentric:
		v.validateGeocentric(r, p, obj)
	case crs.Geographic:
		v.validateCS(r, p, obj, cs.Ellipsoidal)
		v.validateDatum(r, p, obj, datum.Geodetic)
		v.validateStandardNames(r, p, obj.CoordinateSystem(), geographicNames)
	case crs.Projected:
		v.validateCS(r, p, obj, cs.Cartesian)
		v.validateDatum(r, p, obj, datum.Geodetic)
		v.validateDerived(r, p, obj)
		v.validateStandardNames(r, p, obj.CoordinateSystem(), projectedNames)
	case crs.Derived:
		v.validateCS(r, p, obj, cs.TypeUnknown)
		v.validateDatum(r, p, obj, datum.TypeUnknown)
		v.validateDerived(r, p, obj)
	case crs.Image:
		v.validateCS(r, p, obj, cs.Affine, cs.Cartesian)
		v.validateDatum(r, p, obj, datum.Image)
	case crs.Engineering:
		v.validateCS(r, p, obj, cs.TypeUnknown)
		v.validateDatum(r, p, obj, datum.TypeUnknown)
	case crs.Vertical:
		v.validateCS(r, p, obj, cs.Vertical)
		v.validateDatum(r, p, obj, datum.Vertical)
	case crs.Temporal:
		v.validateCS(r, p, obj, cs.Time)
		v.validateDatum(r, p, obj, datum.Temporal)
	case crs.Compound:
		v.validateCompound(r, p, obj)
	default:
		v.container.CS.dispatch(r, p.Field("coordinateSystem"), obj.CoordinateSystem())
	}
}

// validateCS checks the coordinate system is present and of one of the
// accepted types. cs.TypeUnknown accepts any type.
func (v *CRSValidator) validateCS(r *geoconform.Report, p geoconform.PathRef, obj crs.CRS, accepted ...cs.Type) cs.CoordinateSystem {
	cp := p.Field("coordinateSystem")
	c := obj.CoordinateSystem()
	if !v.mandatory(r, cp, "SC_CRS.coordinateSystem", obj.Type().String()+": must have a CoordinateSystem.", c) {
		return nil
	}
	if !typeAccepted(c.Type(), accepted) {
		v.fail(r, cp, geoconform.CodeUnexpectedType,
			fmt.Sprintf("%s: unexpected coordinate system of type %s.", obj.Type(), c.Type()), "actual", c.Type().String())
	}
	v.container.CS.dispatch(r, cp, c)
	return c
}

func typeAccepted(t cs.Type, accepted []cs.Type) bool {
	for _, a := range accepted {
		if a == cs.TypeUnknown || a == t {
			return true
		}
	}
	return false
}

// validateDatum checks the datum of a single CRS. datum.TypeUnknown accepts
// any type.
func (v *CRSValidator) validateDatum(r *geoconform.Report, p geoconform.PathRef, obj crs.CRS, expected datum.Type) {
	dp := p.Field("datum")
	single, ok := obj.(crs.Single)
	if !ok {
		v.fail(r, p, geoconform.CodeUnexpectedType, obj.Type().String()+": shall be a single CRS with a datum.")
		return
	}
	d := single.Datum()
	if !v.mandatory(r, dp, "SC_SingleCRS.datum", obj.Type().String()+": must have a Datum.", d) {
		return
	}
	if expected != datum.TypeUnknown && d.Type() != expected {
		v.fail(r, dp, geoconform.CodeUnexpectedType,
			fmt.Sprintf("%s: expected a %s but got %s.", obj.Type(), expected, d.Type()), "actual", d.Type().String())
	}
	v.container.Datum.dispatch(r, dp, d)
}

func (v *CRSValidator) validateGeocentric(r *geoconform.Report, p geoconform.PathRef, obj crs.CRS) {
	cp := p.Field("coordinateSystem")
	c := obj.CoordinateSystem()
	if v.mandatory(r, cp, "SC_CRS.coordinateSystem", "GeocentricCRS: must have a CoordinateSystem.", c) {
		v.container.CS.dispatch(r, cp, c)
		switch c.Type() {
		case cs.Cartesian:
			directions := v.axisDirections(r, cp, c)
			for _, d := range []cs.AxisDirection{cs.GeocentricX, cs.GeocentricY, cs.GeocentricZ} {
				if !directions[d] {
					v.fail(r, cp, geoconform.CodeAxisDirection, fmt.Sprintf("GeocentricCRS: expected %s axis direction.", d), "expected", d.Name())
				}
				delete(directions, d)
			}
			for d := range directions {
				v.fail(r, cp, geoconform.CodeAxisDirection, "GeocentricCRS: unknown axis direction "+d.Name()+".", "direction", d.Name())
			}
			v.validateStandardNames(r, p, c, geocentricNames)
		case cs.Spherical:
		default:
			v.fail(r, cp, geoconform.CodeUnexpectedType, "GeocentricCRS: unknown CoordinateSystem of type "+c.Type().String()+".")
		}
	}
	v.validateDatum(r, p, obj, datum.Geodetic)
}

// axisDirections collects the directions of c, reporting duplicates.
func (v *CRSValidator) axisDirections(r *geoconform.Report, p geoconform.PathRef, c cs.CoordinateSystem) map[cs.AxisDirection]bool {
	directions := make(map[cs.AxisDirection]bool, c.Dimension())
	for i := 0; i < c.Dimension(); i++ {
		axis := c.Axis(i)
		if geoconform.IsNil(axis) {
			continue
		}
		d := axis.Direction()
		if directions[d] {
			v.fail(r, p.Field("axis").Index(i).Field("direction"), geoconform.CodeAxisDirection,
				"CoordinateSystem: duplicated axis direction for "+d.Name()+".", "direction", d.Name())
		}
		directions[d] = true
	}
	return directions
}

func (v *CRSValidator) validateDerived(r *geoconform.Report, p geoconform.PathRef, obj crs.CRS) {
	derived, ok := obj.(crs.GeneralDerived)
	if !ok {
		v.fail(r, p, geoconform.CodeUnexpectedType, obj.Type().String()+": shall provide a base CRS and a conversion.")
		return
	}
	base := derived.BaseCRS()
	if v.mandatory(r, p.Field("baseCRS"), "SC_DerivedCRS.baseCRS", obj.Type().String()+": must have a base CRS.", base) {
		if obj.Type() == crs.Projected {
			v.check(r, base.Type() == crs.Geographic || base.Type() == crs.Geocentric, p.Field("baseCRS"), geoconform.CodeUnexpectedType,
				"ProjectedCRS: base CRS shall be geodetic.", "actual", base.Type().String())
		}
		v.dispatch(r, p.Field("baseCRS"), base)
	}
	conv := derived.ConversionFromBase()
	cp := p.Field("conversionFromBase")
	if !v.mandatory(r, cp, "SC_DerivedCRS.conversion", obj.Type().String()+": must have a conversion from base.", conv) {
		return
	}
	v.check(r, conv.Type().IsConversion(), cp, geoconform.CodeUnexpectedType,
		obj.Type().String()+": the operation from base shall be a conversion.", "actual", conv.Type().String())
	v.container.Operation.dispatch(r, cp, conv)
	mt := conv.MathTransform()
	if geoconform.IsNil(mt) {
		return
	}
	if !geoconform.IsNil(base) {
		if n := crs.Dimension(base); n > 0 {
			v.checkEqualInt(r, cp.Field("mathTransform").Field("sourceDimensions"), geoconform.CodeInvalidDimension,
				obj.Type().String()+": conversion source dimension shall match the base CRS.", n, mt.SourceDimensions())
		}
	}
	if c := obj.CoordinateSystem(); !geoconform.IsNil(c) {
		v.checkEqualInt(r, cp.Field("mathTransform").Field("targetDimensions"), geoconform.CodeInvalidDimension,
			obj.Type().String()+": conversion target dimension shall match the coordinate system.", c.Dimension(), mt.TargetDimensions())
	}
}

func (v *CRSValidator) validateCompound(r *geoconform.Report, p geoconform.PathRef, obj crs.CRS) {
	compound, ok := obj.(crs.CompoundCRS)
	if !ok {
		v.fail(r, p, geoconform.CodeUnexpectedType, "CompoundCRS: shall provide its components.")
		return
	}
	comps := compound.Components()
	if !v.mandatory(r, p.Field("components"), "SC_CompoundCRS.componentReferenceSystem", "CompoundCRS: shall have components.", comps) {
		return
	}
	v.check(r, len(comps) >= 2, p.Field("components"), geoconform.CodeInvalidDimension,
		"CompoundCRS: shall have at least two components.", "actual", len(comps))
	sum := 0
	for i, c := range comps {
		cp := p.Field("components").Index(i)
		if !v.mandatory(r, cp, "SC_CompoundCRS.componentReferenceSystem", "CompoundCRS: components shall not be nil.", c) {
			continue
		}
		v.check(r, c.Type() != crs.Compound, cp, geoconform.CodeUnexpectedType, "CompoundCRS: components shall not be compound.")
		v.dispatch(r, cp, c)
		sum += crs.Dimension(c)
	}
	if c := obj.CoordinateSystem(); !geoconform.IsNil(c) {
		v.checkEqualInt(r, p.Field("coordinateSystem").Field("dimension"), geoconform.CodeInvalidDimension,
			"CompoundCRS: dimension shall be the sum of component dimensions.", sum, c.Dimension())
	}
}

var (
	geographicNames = map[cs.AxisDirection]string{
		cs.North: "Geodetic latitude", cs.South: "Geodetic latitude",
		cs.East: "Geodetic longitude", cs.West: "Geodetic longitude",
		cs.Up: "Ellipsoidal height", cs.Down: "Ellipsoidal depth",
	}
	geocentricNames = map[cs.AxisDirection]string{
		cs.GeocentricX: "Geocentric X", cs.GeocentricY: "Geocentric Y", cs.GeocentricZ: "Geocentric Z",
	}
	projectedNames = map[cs.AxisDirection]string{
		cs.North: "Northing", cs.South: "Southing", cs.East: "Easting", cs.West: "Westing",
	}
)

func (v *CRSValidator) validateStandardNames(r *geoconform.Report, p geoconform.PathRef, c cs.CoordinateSystem, names map[cs.AxisDirection]string) {
	if !v.EnforceStandardNames || geoconform.IsNil(c) {
		return
	}
	for i := 0; i < c.Dimension(); i++ {
		axis := c.Axis(i)
		if geoconform.IsNil(axis) || geoconform.IsNil(axis.Name()) {
			continue
		}
		expected, ok := names[axis.Direction()]
		if !ok {
			continue
		}
		actual := axis.Name().Code()
		v.check(r, strings.EqualFold(actual, expected), p.Field("coordinateSystem").Field("axis").Index(i).Field("name"),
			geoconform.CodeInvalidName, fmt.Sprintf("Axis: expected name %q but got %q.", expected, actual),
			"expected", expected, "actual", actual)
	}
}
