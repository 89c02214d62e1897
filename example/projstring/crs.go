package projstring

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	exop "github.com/geoapi/geoconform/example/operation"
	exref "github.com/geoapi/geoconform/example/referencing"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/referencing/operation"
	"github.com/geoapi/geoconform/units"
)

// Builder creates referencing objects from definitions.
type Builder struct {
	Objects    exref.Factory
	Operations *exop.Factory
}

// NewBuilder returns a builder using the example factories.
func NewBuilder() *Builder {
	return &Builder{Operations: exop.NewFactory()}
}

// Decode parses s and builds its CRS.
func Decode(s string) (crs.CRS, error) {
	d, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return NewBuilder().CRS(d)
}

func named(name string) referencing.Properties { return referencing.Named(name) }

// CRS builds a geographic, geocentric or projected CRS.
func (b *Builder) CRS(d *Definition) (crs.CRS, error) {
	gd, err := b.datum(d)
	if err != nil {
		return nil, err
	}
	switch d.Proj {
	case "longlat", "latlong", "lonlat", "latlon":
		return b.geographic(d, gd, d.Axis)
	case "geocent":
		return b.geocentric(d, gd)
	}
	base, err := b.geographic(d, gd, "enu")
	if err != nil {
		return nil, err
	}
	conv, err := b.Conversion(d)
	if err != nil {
		return nil, err
	}
	c, err := b.projectedCS(d)
	if err != nil {
		return nil, err
	}
	return b.Objects.CreateProjectedCRS(named(b.title(d, base.Name().Code()+" / "+conv.Method().Name().Code())), base, conv, c)
}

func (b *Builder) title(d *Definition, fallback string) string {
	if d.Title != "" {
		return d.Title
	}
	return fallback
}

func (b *Builder) datum(d *Definition) (datum.GeodeticDatum, error) {
	e, err := b.Objects.CreateEllipsoid(named(d.Ellipsoid.Name), d.Ellipsoid.A, d.Ellipsoid.B, units.Metre)
	if err != nil {
		return nil, err
	}
	pmName := "Greenwich"
	if d.PrimeMeridian != 0 {
		pmName = fmt.Sprintf("%g°", d.PrimeMeridian)
	}
	pm, err := b.Objects.CreatePrimeMeridian(named(pmName), d.PrimeMeridian, units.Degree)
	if err != nil {
		return nil, err
	}
	name := d.Datum
	if name == "" {
		name = "Unknown datum based upon the " + d.Ellipsoid.Name + " ellipsoid"
	}
	return b.Objects.CreateGeodeticDatum(named(name), e, pm)
}

// geographic creates a two-dimensional geographic CRS with axes in the
// order given by the first two letters of axis.
func (b *Builder) geographic(d *Definition, gd datum.GeodeticDatum, axis string) (crs.Single, error) {
	var axes []cs.Axis
	for _, c := range axis[:2] {
		var (
			name, abbr string
			dir        cs.AxisDirection
		)
		switch c {
		case 'e', 'w':
			name, abbr, dir = "Geodetic longitude", "λ", cs.East
		case 'n', 's':
			name, abbr, dir = "Geodetic latitude", "φ", cs.North
		}
		if c == 'w' || c == 's' {
			dir = dir.Opposite()
		}
		a, err := b.Objects.CreateAxis(named(name), abbr, dir, units.Degree)
		if err != nil {
			return nil, err
		}
		axes = append(axes, a)
	}
	c, err := b.Objects.CreateEllipsoidalCS(named("Ellipsoidal 2D"), axes...)
	if err != nil {
		return nil, err
	}
	return b.Objects.CreateGeographicCRS(named(b.title(d, gd.Name().Code())), gd, c)
}

func (b *Builder) geocentric(d *Definition, gd datum.GeodeticDatum) (crs.Single, error) {
	var axes []cs.Axis
	for i, dir := range []cs.AxisDirection{cs.GeocentricX, cs.GeocentricY, cs.GeocentricZ} {
		name := string(rune('X' + i))
		a, err := b.Objects.CreateAxis(named("Geocentric "+name), name, dir, d.Unit)
		if err != nil {
			return nil, err
		}
		axes = append(axes, a)
	}
	c, err := b.Objects.CreateCartesianCS(named("Earth centred"), axes...)
	if err != nil {
		return nil, err
	}
	return b.Objects.CreateGeocentricCRS(named(b.title(d, gd.Name().Code())), gd, c)
}

var projectedAxes = map[rune]struct {
	name, abbr string
	dir        cs.AxisDirection
}{
	'e': {"Easting", "E", cs.East},
	'w': {"Westing", "W", cs.West},
	'n': {"Northing", "N", cs.North},
	's': {"Southing", "S", cs.South},
}

func (b *Builder) projectedCS(d *Definition) (cs.CoordinateSystem, error) {
	var axes []cs.Axis
	for _, c := range d.Axis[:2] {
		p := projectedAxes[c]
		a, err := b.Objects.CreateAxis(named(p.name), p.abbr, p.dir, d.Unit)
		if err != nil {
			return nil, err
		}
		axes = append(axes, a)
	}
	return b.Objects.CreateCartesianCS(named("Cartesian 2D"), axes...)
}

// Parameters returns the method name and parameter values of a projected
// definition.
func (d *Definition) Parameters() (string, map[string]float64, error) {
	p := map[string]float64{
		"semi_major":       d.Ellipsoid.A,
		"semi_minor":       d.Ellipsoid.B,
		"central_meridian": d.param("lon_0", 0),
		"false_easting":    d.param("x_0", 0),
		"false_northing":   d.param("y_0", 0),
	}
	k := d.param("k_0", d.param("k", 1))
	switch d.Proj {
	case "merc":
		if ts, ok := d.Params["lat_ts"]; ok {
			p["standard_parallel_1"] = ts
			return "Mercator_2SP", p, nil
		}
		p["latitude_of_origin"] = 0
		p["scale_factor"] = k
		return "Mercator_1SP", p, nil
	case "webmerc":
		p["latitude_of_origin"] = 0
		return "Popular_Visualisation_Pseudo_Mercator", p, nil
	case "mill":
		p["latitude_of_origin"] = 0
		return "Miller_Cylindrical", p, nil
	case "lcc":
		lat1, ok := d.Params["lat_1"]
		if !ok {
			return "", nil, fmt.Errorf("%w: lcc needs +lat_1", ErrSyntax)
		}
		lat2, two := d.Params["lat_2"]
		if two && lat2 != lat1 {
			p["latitude_of_origin"] = d.param("lat_0", lat1)
			p["standard_parallel_1"] = lat1
			p["standard_parallel_2"] = lat2
			return "Lambert_Conformal_Conic_2SP", p, nil
		}
		p["latitude_of_origin"] = d.param("lat_0", lat1)
		p["scale_factor"] = k
		return "Lambert_Conformal_Conic_1SP", p, nil
	}
	return "", nil, fmt.Errorf("%w: projection %q", ErrUnsupported, d.Proj)
}

// Conversion creates the conversion from the base geographic CRS, in
// (longitude, latitude) degrees, to the projected axes.
func (b *Builder) Conversion(d *Definition) (*exop.Operation, error) {
	method, values, err := d.Parameters()
	if err != nil {
		return nil, err
	}
	params, err := b.Operations.Parameters(method, values)
	if err != nil {
		return nil, err
	}
	m, err := b.Operations.Method(method)
	if err != nil {
		return nil, err
	}
	projection, err := m.CreateTransform(params)
	if err != nil {
		return nil, err
	}
	axes, err := exop.NewAffine(axisMatrix(d.Axis, 1/d.Unit.Factor))
	if err != nil {
		return nil, err
	}
	t, err := exop.Concatenate(projection, axes)
	if err != nil {
		return nil, err
	}
	return exop.NewOperation(named(method), operation.Projection, m, params, t)
}

// axisMatrix maps (east, north) to the order and orientation of axis,
// multiplying by scale.
func axisMatrix(axis string, scale float64) *mat.Dense {
	m := mat.NewDense(3, 3, nil)
	for i, c := range axis[:2] {
		switch c {
		case 'e':
			m.Set(i, 0, scale)
		case 'w':
			m.Set(i, 0, -scale)
		case 'n':
			m.Set(i, 1, scale)
		case 's':
			m.Set(i, 1, -scale)
		}
	}
	m.Set(2, 2, 1)
	return m
}
