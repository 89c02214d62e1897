// Package units provides the small set of units of measurement needed by the
// referencing interfaces: lengths, angles, durations and scale factors.
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrIncompatible indicates a conversion between units of different quantities.
var ErrIncompatible = errors.New("units: incompatible units")

// Quantity is the kind of measure a unit applies to.
type Quantity int

const (
	Dimensionless Quantity = iota
	Length
	Angle
	Time
	Scale
)

func (q Quantity) String() string {
	switch q {
	case Length:
		return "length"
	case Angle:
		return "angle"
	case Time:
		return "time"
	case Scale:
		return "scale"
	default:
		return "dimensionless"
	}
}

// Unit is a unit of measurement. Factor converts a value in this unit to the
// system unit of its quantity (metre, radian, second, unity).
// The zero Unit means "no unit".
type Unit struct {
	Symbol   string
	Name     string
	Quantity Quantity
	Factor   float64
}

var (
	Metre        = Unit{Symbol: "m", Name: "metre", Quantity: Length, Factor: 1}
	Kilometre    = Unit{Symbol: "km", Name: "kilometre", Quantity: Length, Factor: 1000}
	USSurveyFoot = Unit{Symbol: "ftUS", Name: "US survey foot", Quantity: Length, Factor: 1200.0 / 3937}
	Foot         = Unit{Symbol: "ft", Name: "foot", Quantity: Length, Factor: 0.3048}
	Radian       = Unit{Symbol: "rad", Name: "radian", Quantity: Angle, Factor: 1}
	Degree       = Unit{Symbol: "°", Name: "degree", Quantity: Angle, Factor: math.Pi / 180}
	Grad         = Unit{Symbol: "grad", Name: "grad", Quantity: Angle, Factor: math.Pi / 200}
	ArcSecond    = Unit{Symbol: "″", Name: "arc-second", Quantity: Angle, Factor: math.Pi / (180 * 3600)}
	Second       = Unit{Symbol: "s", Name: "second", Quantity: Time, Factor: 1}
	Day          = Unit{Symbol: "d", Name: "day", Quantity: Time, Factor: 86400}
	Unity        = Unit{Symbol: "", Name: "unity", Quantity: Scale, Factor: 1}
)

var byName = map[string]Unit{}

func init() {
	for _, u := range []Unit{Metre, Kilometre, USSurveyFoot, Foot, Radian, Degree, Grad, ArcSecond, Second, Day, Unity} {
		byName[strings.ToLower(u.Name)] = u
		if u.Symbol != "" {
			byName[strings.ToLower(u.Symbol)] = u
		}
	}
	byName["meter"] = Metre
	byName["deg"] = Degree
	byName["us-ft"] = USSurveyFoot
	byName["day"] = Day
}

// ByName finds a predefined unit by name or symbol, case-insensitively.
func ByName(name string) (Unit, bool) {
	u, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return u, ok
}

// IsZero reports whether u is the absent unit.
func (u Unit) IsZero() bool { return u == Unit{} }

// IsAbsent lets attribute checks treat the zero unit as missing.
func (u Unit) IsAbsent() bool { return u.IsZero() }

// IsCompatible reports whether values in u can be converted to other.
func (u Unit) IsCompatible(other Unit) bool {
	return !u.IsZero() && !other.IsZero() && u.Quantity == other.Quantity
}

// IsLinear reports whether u measures lengths.
func (u Unit) IsLinear() bool { return u.Quantity == Length }

// IsAngular reports whether u measures angles.
func (u Unit) IsAngular() bool { return u.Quantity == Angle }

func (u Unit) String() string {
	if u.Symbol != "" {
		return u.Symbol
	}
	return u.Name
}

// Convert converts v from one unit to another.
func Convert(v float64, from, to Unit) (float64, error) {
	if !from.IsCompatible(to) {
		return math.NaN(), fmt.Errorf("%w: %s to %s", ErrIncompatible, from.Name, to.Name)
	}
	if from == to {
		return v, nil
	}
	return v * from.Factor / to.Factor, nil
}
