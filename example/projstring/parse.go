// Package projstring builds coordinate reference systems and transforms
// from PROJ definition strings such as
//
//	+proj=lcc +lat_1=49.833 +lat_2=51.167 +lat_0=90 +lon_0=4.357 +x_0=150000.013 +y_0=5400088.438 +ellps=intl +units=m
//
// Only the projections implemented by the example/operation package are
// supported.
package projstring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/geoapi/geoconform/units"
)

var (
	// ErrSyntax is returned for malformed definitions.
	ErrSyntax = errors.New("projstring: syntax error")
	// ErrUnsupported is returned for valid but unsupported definitions.
	ErrUnsupported = errors.New("projstring: unsupported definition")
)

// ignored keys are accepted but have no effect.
var ignored = map[string]bool{
	"no_defs": true, "type": true, "wktext": true, "towgs84": true, "nadgrids": true, "over": true,
}

// known keys and whether they need a value.
var known = map[string]bool{
	"proj": true, "ellps": true, "datum": true, "a": true, "b": true, "rf": true, "f": true, "R": true,
	"lat_0": true, "lon_0": true, "lat_1": true, "lat_2": true, "lat_ts": true, "k": true, "k_0": true,
	"x_0": true, "y_0": true, "units": true, "to_meter": true, "axis": true, "pm": true, "title": true,
}

// Ellipsoid is a named PROJ ellipsoid.
type Ellipsoid struct {
	Name string
	A, B float64
}

// ellipsoids are the +ellps values understood by Parse.
var ellipsoids = map[string]Ellipsoid{
	"WGS84":  flattened("WGS 84", 6378137, 298.257223563),
	"GRS80":  flattened("GRS 1980", 6378137, 298.257222101),
	"intl":   flattened("International 1924", 6378388, 297),
	"clrk66": {"Clarke 1866", 6378206.4, 6356583.8},
	"krass":  flattened("Krassowsky 1940", 6378245, 298.3),
	"bessel": flattened("Bessel 1841", 6377397.155, 299.1528128),
	"sphere": {"Normal Sphere", 6370997, 6370997},
}

// datums map +datum values to their ellipsoid.
var datums = map[string]string{"WGS84": "WGS84", "NAD83": "GRS80", "NAD27": "clrk66"}

var primeMeridians = map[string]float64{"greenwich": 0, "paris": 2.33722917, "brussels": 4.367975}

func flattened(name string, a, rf float64) Ellipsoid {
	return Ellipsoid{Name: name, A: a, B: a - a/rf}
}

// Definition is a parsed PROJ string.
type Definition struct {
	Proj      string
	Title     string
	Datum     string
	Ellipsoid Ellipsoid
	// PrimeMeridian is the Greenwich longitude in degrees.
	PrimeMeridian float64
	// Params holds the numeric parameters, angles in degrees.
	Params map[string]float64
	Unit   units.Unit
	// Axis is the three-letter orientation, "enu" by default.
	Axis string
}

// Parse decodes a PROJ definition.
func Parse(s string) (*Definition, error) {
	d := &Definition{Params: map[string]float64{}, Unit: units.Metre, Axis: "enu"}
	var ellps string
	seen := map[string]bool{}
	for _, tok := range strings.Fields(s) {
		if !strings.HasPrefix(tok, "+") {
			return nil, fmt.Errorf("%w: %q does not start with '+'", ErrSyntax, tok)
		}
		key, value, hasValue := strings.Cut(tok[1:], "=")
		if seen[key] {
			return nil, fmt.Errorf("%w: %q given twice", ErrSyntax, key)
		}
		seen[key] = true
		if ignored[key] {
			continue
		}
		if !known[key] {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrUnsupported, key)
		}
		if !hasValue || value == "" {
			return nil, fmt.Errorf("%w: %q needs a value", ErrSyntax, key)
		}
		switch key {
		case "proj":
			d.Proj = value
		case "title":
			d.Title = value
		case "ellps":
			ellps = value
		case "datum":
			e, ok := datums[value]
			if !ok {
				return nil, fmt.Errorf("%w: datum %q", ErrUnsupported, value)
			}
			d.Datum = value
			if ellps == "" {
				ellps = e
			}
		case "units":
			u, ok := units.ByName(value)
			if !ok || !u.IsLinear() {
				return nil, fmt.Errorf("%w: units %q", ErrUnsupported, value)
			}
			d.Unit = u
		case "axis":
			if err := checkAxis(value); err != nil {
				return nil, err
			}
			d.Axis = value
		case "pm":
			pm, ok := primeMeridians[strings.ToLower(value)]
			if !ok {
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: prime meridian %q", ErrSyntax, value)
				}
				pm = v
			}
			d.PrimeMeridian = pm
		default:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s=%q is not a number", ErrSyntax, key, value)
			}
			d.Params[key] = v
		}
	}
	if d.Proj == "" {
		return nil, fmt.Errorf("%w: missing +proj", ErrSyntax)
	}
	if tm, ok := d.Params["to_meter"]; ok {
		if !(tm > 0) {
			return nil, fmt.Errorf("%w: to_meter shall be positive", ErrSyntax)
		}
		d.Unit = units.Unit{Symbol: "", Name: fmt.Sprintf("%g metres", tm), Quantity: units.Length, Factor: tm}
	}
	e, err := resolveEllipsoid(ellps, d.Params)
	if err != nil {
		return nil, err
	}
	d.Ellipsoid = e
	return d, nil
}

func resolveEllipsoid(name string, p map[string]float64) (Ellipsoid, error) {
	if r, ok := p["R"]; ok {
		return Ellipsoid{Name: "Sphere", A: r, B: r}, nil
	}
	e := ellipsoids["WGS84"]
	if name != "" {
		var ok bool
		if e, ok = ellipsoids[name]; !ok {
			return e, fmt.Errorf("%w: ellipsoid %q", ErrUnsupported, name)
		}
	}
	if a, ok := p["a"]; ok {
		e = Ellipsoid{Name: "Unnamed", A: a, B: a}
		switch {
		case p["b"] > 0:
			e.B = p["b"]
		case p["rf"] > 0:
			e.B = a - a/p["rf"]
		case p["f"] > 0:
			e.B = a * (1 - p["f"])
		}
	}
	if !(e.A > 0) || !(e.B > 0) || e.B > e.A {
		return e, fmt.Errorf("%w: invalid ellipsoid axes a=%g b=%g", ErrSyntax, e.A, e.B)
	}
	return e, nil
}

func checkAxis(s string) error {
	if len(s) != 3 {
		return fmt.Errorf("%w: axis %q shall have three letters", ErrSyntax, s)
	}
	var horizontal [2]bool
	for i, c := range s {
		switch c {
		case 'e', 'w':
			if horizontal[0] {
				return fmt.Errorf("%w: axis %q repeats east-west", ErrSyntax, s)
			}
			horizontal[0] = true
		case 'n', 's':
			if horizontal[1] {
				return fmt.Errorf("%w: axis %q repeats north-south", ErrSyntax, s)
			}
			horizontal[1] = true
		case 'u', 'd':
			if i != 2 {
				return fmt.Errorf("%w: axis %q shall end with the vertical direction", ErrSyntax, s)
			}
		default:
			return fmt.Errorf("%w: axis %q has an invalid letter %q", ErrSyntax, s, c)
		}
	}
	return nil
}

// projUnits are the +units names written by String.
var projUnits = map[units.Unit]string{units.Kilometre: "km", units.USSurveyFoot: "us-ft", units.Foot: "ft"}

// String formats the definition with sorted numeric parameters and the
// ellipsoid axes. Parsing the result gives back an equivalent definition.
func (d *Definition) String() string {
	parts := []string{"+proj=" + d.Proj}
	if d.Title != "" {
		parts = append(parts, "+title="+d.Title)
	}
	if d.Datum != "" {
		parts = append(parts, "+datum="+d.Datum)
	}
	keys := make([]string, 0, len(d.Params))
	for k := range d.Params {
		switch k {
		case "a", "b", "rf", "f", "R":
		default:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, "+"+k+"="+formatFloat(d.Params[k]))
	}
	parts = append(parts, "+a="+formatFloat(d.Ellipsoid.A), "+b="+formatFloat(d.Ellipsoid.B))
	if _, ok := d.Params["to_meter"]; !ok && !d.Unit.IsZero() && d.Unit != units.Metre {
		if name, ok := projUnits[d.Unit]; ok {
			parts = append(parts, "+units="+name)
		} else {
			parts = append(parts, "+to_meter="+formatFloat(d.Unit.Factor))
		}
	}
	if d.PrimeMeridian != 0 {
		parts = append(parts, "+pm="+primeMeridianName(d.PrimeMeridian))
	}
	if d.Axis != "" && d.Axis != "enu" {
		parts = append(parts, "+axis="+d.Axis)
	}
	return strings.Join(parts, " ")
}

func primeMeridianName(lon float64) string {
	for name, v := range primeMeridians {
		if v == lon {
			return name
		}
	}
	return formatFloat(lon)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func (d *Definition) param(key string, def float64) float64 {
	if v, ok := d.Params[key]; ok {
		return v
	}
	return def
}
