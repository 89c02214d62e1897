package referencingtest

import (
	"context"
	"fmt"
	"math"

	"github.com/geoapi/geoconform/conformance"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/units"
)

// ObjectSuite creates referencing objects through factories and validates
// every object it creates.
type ObjectSuite struct {
	CSFactory    cs.Factory
	DatumFactory datum.Factory
	CRSFactory   crs.Factory
	Validators   *conformance.Container
	// Tolerance applies to ellipsoid axis lengths and angles.
	Tolerance float64
}

// NewObjectSuite returns a suite using the default validators.
func NewObjectSuite(csf cs.Factory, df datum.Factory, cf crs.Factory) *ObjectSuite {
	return &ObjectSuite{CSFactory: csf, DatumFactory: df, CRSFactory: cf, Validators: conformance.Default, Tolerance: 1e-9}
}

func (s *ObjectSuite) validate(ctx context.Context, what string, obj any) error {
	v := s.Validators
	if v == nil {
		v = conformance.Default
	}
	if err := v.Validate(ctx, obj); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

func (s *ObjectSuite) expect(what string, expected, actual float64) error {
	if math.Abs(expected-actual) > s.Tolerance*math.Max(1, math.Abs(expected)) {
		return fmt.Errorf("%s: expected %v but got %v", what, expected, actual)
	}
	return nil
}

func named(name string) referencing.Properties { return referencing.Named(name) }

// CreateWGS84 builds the WGS 84 geographic CRS with latitude first, checking
// each created object and the attribute values read back from it.
func (s *ObjectSuite) CreateWGS84(ctx context.Context) (crs.Single, error) {
	pm, err := s.DatumFactory.CreatePrimeMeridian(named("Greenwich"), 0, units.Degree)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, "prime meridian", pm); err != nil {
		return nil, err
	}
	if err := s.expect("Greenwich longitude", 0, pm.GreenwichLongitude()); err != nil {
		return nil, err
	}
	ellipsoid, err := s.DatumFactory.CreateFlattenedSphere(named("WGS 84"), 6378137, 298.257223563, units.Metre)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, "ellipsoid", ellipsoid); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		what             string
		expected, actual float64
	}{
		{"semi-major axis", 6378137, ellipsoid.SemiMajorAxis()},
		{"inverse flattening", 298.257223563, ellipsoid.InverseFlattening()},
		{"semi-minor axis", 6356752.314245179, ellipsoid.SemiMinorAxis()},
	} {
		if err := s.expect(c.what, c.expected, c.actual); err != nil {
			return nil, err
		}
	}
	d, err := s.DatumFactory.CreateGeodeticDatum(named("World Geodetic System 1984"), ellipsoid, pm)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, "datum", d); err != nil {
		return nil, err
	}
	lat, err := s.CSFactory.CreateAxis(named("Geodetic latitude"), "φ", cs.North, units.Degree)
	if err != nil {
		return nil, err
	}
	lon, err := s.CSFactory.CreateAxis(named("Geodetic longitude"), "λ", cs.East, units.Degree)
	if err != nil {
		return nil, err
	}
	for _, a := range []cs.Axis{lat, lon} {
		if err := s.validate(ctx, "axis "+a.Name().Code(), a); err != nil {
			return nil, err
		}
	}
	ellipsoidal, err := s.CSFactory.CreateEllipsoidalCS(named("Ellipsoidal 2D"), lat, lon)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, "coordinate system", ellipsoidal); err != nil {
		return nil, err
	}
	wgs84, err := s.CRSFactory.CreateGeographicCRS(named("WGS 84"), d, ellipsoidal)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, "CRS", wgs84); err != nil {
		return nil, err
	}
	if err := checkAxisOrder(wgs84.CoordinateSystem(), cs.North, cs.East); err != nil {
		return nil, err
	}
	return wgs84, nil
}

// CreateEllipsoidalHeight builds a vertical CRS for heights above the
// ellipsoid and a compound CRS joining it to base.
func (s *ObjectSuite) CreateEllipsoidalHeight(ctx context.Context, base crs.Single) (crs.CompoundCRS, error) {
	axis, err := s.CSFactory.CreateAxis(named("Ellipsoidal height"), "h", cs.Up, units.Metre)
	if err != nil {
		return nil, err
	}
	vcs, err := s.CSFactory.CreateVerticalCS(named("height"), axis)
	if err != nil {
		return nil, err
	}
	vd, err := s.DatumFactory.CreateVerticalDatum(named("Ellipsoid"), datum.VerticalEllipsoidal)
	if err != nil {
		return nil, err
	}
	vertical, err := s.CRSFactory.CreateVerticalCRS(named("Ellipsoidal height"), vd, vcs)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, "vertical CRS", vertical); err != nil {
		return nil, err
	}
	compound, err := s.CRSFactory.CreateCompoundCRS(named(base.Name().Code()+" + height"), base, vertical)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, "compound CRS", compound); err != nil {
		return nil, err
	}
	if n := crs.Dimension(compound); n != 3 {
		return nil, fmt.Errorf("compound CRS: expected 3 dimensions, got %d", n)
	}
	return compound, nil
}

func checkAxisOrder(c cs.CoordinateSystem, directions ...cs.AxisDirection) error {
	if c.Dimension() != len(directions) {
		return fmt.Errorf("expected %d axes, got %d", len(directions), c.Dimension())
	}
	for i, d := range directions {
		if got := c.Axis(i).Direction(); got != d {
			return fmt.Errorf("axis %d: expected direction %s, got %s", i, d, got)
		}
	}
	return nil
}
