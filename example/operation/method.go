package operation

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	exparam "github.com/geoapi/geoconform/example/parameter"
	exref "github.com/geoapi/geoconform/example/referencing"
	exutil "github.com/geoapi/geoconform/example/util"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/operation"
	"github.com/geoapi/geoconform/units"
	"github.com/geoapi/geoconform/util"
)

// Method is an operation method able to build its math transform.
type Method struct {
	exref.Identified
	formula    util.InternationalString
	params     *exparam.DescriptorGroup
	projection bool
	build      func(parameter.ValueGroup) (operation.MathTransform, error)
}

var _ operation.OperationMethod = (*Method)(nil)

func (m *Method) Formula() util.InternationalString     { return m.formula }
func (m *Method) SourceDimensions() int                 { return 2 }
func (m *Method) TargetDimensions() int                 { return 2 }
func (m *Method) Parameters() parameter.DescriptorGroup { return m.params }

// IsProjection reports whether the method is a map projection, which makes
// the operations using it of type operation.Projection.
func (m *Method) IsProjection() bool { return m.projection }

// Matches reports whether name is the method name or one of its aliases.
func (m *Method) Matches(name string) bool {
	if strings.EqualFold(m.Name().Code(), name) {
		return true
	}
	for _, a := range m.Alias() {
		if strings.EqualFold(a.Tip().String(), name) {
			return true
		}
	}
	return false
}

// CreateTransform builds the transform for the given values.
func (m *Method) CreateTransform(values parameter.ValueGroup) (operation.MathTransform, error) {
	return m.build(values)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// named returns properties with an OGC name, an EPSG alias and the EPSG
// code when known.
func named(ogc, epsg, code string) referencing.Properties {
	props := referencing.Properties{referencing.NameKey: ogc}
	if code != "" {
		props = exref.EPSG(ogc, code)
	}
	if epsg != "" {
		props[referencing.AliasKey] = []string{epsg}
	}
	return props
}

func length(ogc string, def float64) *exparam.Descriptor {
	return must(exparam.NewDescriptor(named(ogc, "", ""), def, units.Metre)).WithRange(0, math.Inf(1))
}

func angle(ogc, epsg, code string, limit float64) *exparam.Descriptor {
	return must(exparam.NewDescriptor(named(ogc, epsg, code), 0, units.Degree)).WithRange(-limit, limit)
}

func offset(ogc, epsg, code string) *exparam.Descriptor {
	return must(exparam.NewDescriptor(named(ogc, epsg, code), 0, units.Metre))
}

func ratio(ogc, epsg, code string) *exparam.Descriptor {
	return must(exparam.NewDescriptor(named(ogc, epsg, code), 1, units.Unity)).WithRange(0, math.Inf(1))
}

var (
	semiMajor            = length("semi_major", math.NaN())
	semiMinor            = length("semi_minor", math.NaN())
	latitudeOfOrigin     = angle("latitude_of_origin", "Latitude of natural origin", "8801", 90)
	centralMeridian      = angle("central_meridian", "Longitude of natural origin", "8802", 180)
	scaleFactor          = ratio("scale_factor", "Scale factor at natural origin", "8805")
	falseEasting         = offset("false_easting", "False easting", "8806")
	falseNorthing        = offset("false_northing", "False northing", "8807")
	standardParallel1    = angle("standard_parallel_1", "Latitude of 1st standard parallel", "8823", 90)
	standardParallel2    = angle("standard_parallel_2", "Latitude of 2nd standard parallel", "8824", 90)
	falseOriginLatitude  = angle("latitude_of_origin", "Latitude of false origin", "8821", 90)
	falseOriginLongitude = angle("central_meridian", "Longitude of false origin", "8822", 180)
	falseOriginEasting   = offset("false_easting", "Easting at false origin", "8826")
	falseOriginNorthing  = offset("false_northing", "Northing at false origin", "8827")
)

func group(name string, members ...*exparam.Descriptor) *exparam.DescriptorGroup {
	gd := make([]parameter.GeneralDescriptor, len(members))
	for i, m := range members {
		gd[i] = m
	}
	return must(exparam.NewDescriptorGroup(referencing.Named(name), gd...))
}

func newMethod(props referencing.Properties, formula string, projection bool,
	build func(parameter.ValueGroup) (operation.MathTransform, error), members ...*exparam.Descriptor) *Method {
	id := must(exref.NewIdentified(props))
	return &Method{
		Identified: id,
		formula:    exutil.Text(formula),
		params:     group(id.Name().Code(), members...),
		projection: projection,
		build:      build,
	}
}

// Methods returns a new list of every supported method.
func Methods() []*Method {
	return []*Method{
		newMethod(named("Mercator_1SP", "Mercator (variant A)", "9804"),
			"EPSG guidance note 7-2, Mercator (variant A)", true, buildMercator(mercatorA),
			semiMajor, semiMinor, latitudeOfOrigin, centralMeridian, scaleFactor, falseEasting, falseNorthing),
		newMethod(named("Mercator_2SP", "Mercator (variant B)", "9805"),
			"EPSG guidance note 7-2, Mercator (variant B)", true, buildMercator(mercatorB),
			semiMajor, semiMinor, standardParallel1, centralMeridian, falseEasting, falseNorthing),
		newMethod(named("Popular_Visualisation_Pseudo_Mercator", "Popular Visualisation Pseudo Mercator", "1024"),
			"EPSG guidance note 7-2, Popular Visualisation Pseudo Mercator", true, buildMercator(pseudoMercator),
			semiMajor, semiMinor, latitudeOfOrigin, centralMeridian, falseEasting, falseNorthing),
		newMethod(named("Miller_Cylindrical", "Miller Cylindrical", ""),
			"Miller cylindrical, spherical form", true, buildMiller,
			semiMajor, semiMinor, latitudeOfOrigin, centralMeridian, falseEasting, falseNorthing),
		newMethod(named("Lambert_Conformal_Conic_1SP", "Lambert Conic Conformal (1SP)", "9801"),
			"EPSG guidance note 7-2, Lambert Conic Conformal (1SP)", true, buildLambert(lambert1SP),
			semiMajor, semiMinor, latitudeOfOrigin, centralMeridian, scaleFactor, falseEasting, falseNorthing),
		newMethod(named("Lambert_Conformal_Conic_2SP", "Lambert Conic Conformal (2SP)", "9802"),
			"EPSG guidance note 7-2, Lambert Conic Conformal (2SP)", true, buildLambert(lambert2SP),
			semiMajor, semiMinor, falseOriginLatitude, falseOriginLongitude, standardParallel1, standardParallel2,
			falseOriginEasting, falseOriginNorthing),
		newMethod(named("Lambert_Conformal_Conic_2SP_Belgium", "Lambert Conic Conformal (2SP Belgium)", "9803"),
			"EPSG guidance note 7-2, Lambert Conic Conformal (2SP Belgium)", true, buildLambert(lambertBelgium),
			semiMajor, semiMinor, falseOriginLatitude, falseOriginLongitude, standardParallel1, standardParallel2,
			falseOriginEasting, falseOriginNorthing),
		newMethod(named("Affine", "Affine parametric transformation", "9624"),
			"x' = elt_0_0·x + elt_0_1·y + elt_0_2, y' = elt_1_0·x + elt_1_1·y + elt_1_2", false, buildAffine,
			affineElements()...),
	}
}

// values reads the named parameters in unit u, in order.
func values(g parameter.ValueGroup, u units.Unit, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := exparam.Float(g, name, u)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[i] = v
	}
	return out, nil
}

// ellipsoid reads the semi-axes and returns the semi-major axis and the
// eccentricity.
func ellipsoid(g parameter.ValueGroup) (a, e float64, err error) {
	v, err := values(g, units.Metre, "semi_major", "semi_minor")
	if err != nil {
		return 0, 0, err
	}
	a, b := v[0], v[1]
	if !(a > 0) || !(b > 0) || b > a {
		return 0, 0, fmt.Errorf("%w: semi-axes a=%g b=%g", parameter.ErrInvalidValue, a, b)
	}
	return a, math.Sqrt(1 - (b*b)/(a*a)), nil
}

const toRadians = math.Pi / 180

// normalize converts degrees to radians relative to the central meridian,
// multiplying the longitude by n and subtracting a rotation.
func normalize(λ0, n, rotation float64) *Affine {
	return Scale([]float64{n * toRadians, toRadians}, []float64{-n*λ0*toRadians - rotation, 0})
}

// denormalize scales kernel output to metres and adds the false origin.
func denormalize(scale, fe, fn float64) *Affine {
	return Scale([]float64{scale, scale}, []float64{fe, fn})
}

func chain(name string, norm *Affine, k kernel, denorm *Affine) (operation.MathTransform, error) {
	t, err := Concatenate(norm, &projection{name: name, k: k})
	if err != nil {
		return nil, err
	}
	return Concatenate(t, denorm)
}

type mercatorVariant int

const (
	mercatorA mercatorVariant = iota
	mercatorB
	pseudoMercator
)

func buildMercator(variant mercatorVariant) func(parameter.ValueGroup) (operation.MathTransform, error) {
	return func(g parameter.ValueGroup) (operation.MathTransform, error) {
		a, e, err := ellipsoid(g)
		if err != nil {
			return nil, err
		}
		lin, err := values(g, units.Metre, "false_easting", "false_northing")
		if err != nil {
			return nil, err
		}
		k0, φ0 := 1.0, 0.0
		switch variant {
		case mercatorA:
			v, err := values(g, units.Degree, "latitude_of_origin")
			if err != nil {
				return nil, err
			}
			φ0 = v[0] * toRadians
			if k0, err = exparam.Float(g, "scale_factor", units.Unity); err != nil {
				return nil, err
			}
		case mercatorB:
			v, err := values(g, units.Degree, "standard_parallel_1")
			if err != nil {
				return nil, err
			}
			k0 = conformalFactor(v[0]*toRadians, e)
		case pseudoMercator:
			v, err := values(g, units.Degree, "latitude_of_origin")
			if err != nil {
				return nil, err
			}
			φ0 = v[0] * toRadians
		}
		λ0, err := exparam.Float(g, "central_meridian", units.Degree)
		if err != nil {
			return nil, err
		}
		k := mercator{e: e}
		name := "Mercator"
		if variant == pseudoMercator {
			k.e, name = 0, "PseudoMercator"
		}
		_, y0 := k.project(0, φ0)
		s := a * k0
		return chain(name, normalize(λ0, 1, 0), k, denormalize(s, lin[0], lin[1]-s*y0))
	}
}

func buildMiller(g parameter.ValueGroup) (operation.MathTransform, error) {
	a, _, err := ellipsoid(g)
	if err != nil {
		return nil, err
	}
	ang, err := values(g, units.Degree, "central_meridian", "latitude_of_origin")
	if err != nil {
		return nil, err
	}
	lin, err := values(g, units.Metre, "false_easting", "false_northing")
	if err != nil {
		return nil, err
	}
	_, y0 := miller{}.project(0, ang[1]*toRadians)
	return chain("Miller", normalize(ang[0], 1, 0), miller{}, denormalize(a, lin[0], lin[1]-a*y0))
}

type lambertVariant int

const (
	lambert1SP lambertVariant = iota
	lambert2SP
	lambertBelgium
)

// belgiumRotation is the 29.2985″ angle of EPSG method 9803.
const belgiumRotation = 29.2985 / 3600 * toRadians

func buildLambert(variant lambertVariant) func(parameter.ValueGroup) (operation.MathTransform, error) {
	return func(g parameter.ValueGroup) (operation.MathTransform, error) {
		a, e, err := ellipsoid(g)
		if err != nil {
			return nil, err
		}
		lin, err := values(g, units.Metre, "false_easting", "false_northing")
		if err != nil {
			return nil, err
		}
		ang, err := values(g, units.Degree, "latitude_of_origin", "central_meridian")
		if err != nil {
			return nil, err
		}
		φ0, λ0 := ang[0]*toRadians, ang[1]
		n, F, k0, rotation := 0.0, 0.0, 1.0, 0.0
		if variant == lambert1SP {
			if k0, err = exparam.Float(g, "scale_factor", units.Unity); err != nil {
				return nil, err
			}
			n = math.Sin(φ0)
			F = conformalFactor(φ0, e) / (n * math.Pow(isometricT(φ0, e), n))
		} else {
			sp, err := values(g, units.Degree, "standard_parallel_1", "standard_parallel_2")
			if err != nil {
				return nil, err
			}
			φ1, φ2 := sp[0]*toRadians, sp[1]*toRadians
			if φ1 == φ2 {
				n = math.Sin(φ1)
			} else {
				n = (math.Log(conformalFactor(φ1, e)) - math.Log(conformalFactor(φ2, e))) /
					(math.Log(isometricT(φ1, e)) - math.Log(isometricT(φ2, e)))
			}
			F = conformalFactor(φ1, e) / (n * math.Pow(isometricT(φ1, e), n))
			if variant == lambertBelgium {
				rotation = belgiumRotation
			}
		}
		if n == 0 || math.IsNaN(n) || math.IsInf(F, 0) {
			return nil, fmt.Errorf("%w: the cone constant is undefined for these parallels", parameter.ErrInvalidValue)
		}
		s := a * F * k0
		ρ0 := math.Pow(isometricT(φ0, e), n)
		return chain("LambertConicConformal", normalize(λ0, n, rotation), lambert{e: e, n: n},
			denormalize(s, lin[0], lin[1]+s*ρ0))
	}
}

func affineElements() []*exparam.Descriptor {
	var out []*exparam.Descriptor
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			def := 0.0
			if i == j {
				def = 1
			}
			name := fmt.Sprintf("elt_%d_%d", i, j)
			out = append(out, must(exparam.NewDescriptor(referencing.Named(name), def, units.Unit{})))
		}
	}
	return out
}

func buildAffine(g parameter.ValueGroup) (operation.MathTransform, error) {
	m := mat.NewDense(3, 3, nil)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			p, err := g.Parameter(fmt.Sprintf("elt_%d_%d", i, j))
			if err != nil {
				return nil, err
			}
			v, err := p.Float()
			if err != nil {
				return nil, err
			}
			m.Set(i, j, v)
		}
	}
	m.Set(2, 2, 1)
	return NewAffine(m)
}
