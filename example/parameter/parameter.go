// Package parameter provides simple parameter descriptors and values.
package parameter

import (
	"fmt"
	"math"
	"strings"

	exref "github.com/geoapi/geoconform/example/referencing"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/units"
)

// Descriptor describes a single parameter.
type Descriptor struct {
	exref.Identified
	kind     parameter.Kind
	def      any
	min, max float64
	valid    []any
	unit     units.Unit
	required bool
}

// NewDescriptor creates a float parameter with a default value and unit.
// A NaN default means no default, making the parameter mandatory.
func NewDescriptor(props referencing.Properties, def float64, unit units.Unit) (*Descriptor, error) {
	id, err := exref.NewIdentified(props)
	if err != nil {
		return nil, err
	}
	d := &Descriptor{Identified: id, kind: parameter.KindFloat, min: math.Inf(-1), max: math.Inf(1), unit: unit, required: true}
	if !math.IsNaN(def) {
		d.def = def
	}
	return d, nil
}

// NewTextDescriptor creates a string parameter restricted to valid values
// when any are given.
func NewTextDescriptor(props referencing.Properties, def string, valid ...string) (*Descriptor, error) {
	id, err := exref.NewIdentified(props)
	if err != nil {
		return nil, err
	}
	d := &Descriptor{Identified: id, kind: parameter.KindString, min: math.NaN(), max: math.NaN(), required: true}
	if def != "" {
		d.def = def
	}
	for _, v := range valid {
		d.valid = append(d.valid, v)
	}
	return d, nil
}

// WithRange returns a copy of d accepting values in [min, max].
func (d *Descriptor) WithRange(min, max float64) *Descriptor {
	c := *d
	c.min, c.max = min, max
	return &c
}

// Optional returns a copy of d that may be omitted from groups.
func (d *Descriptor) Optional() *Descriptor {
	c := *d
	c.required = false
	return &c
}

func (d *Descriptor) MinimumOccurs() int {
	if d.required {
		return 1
	}
	return 0
}

func (d *Descriptor) MaximumOccurs() int        { return 1 }
func (d *Descriptor) Kind() parameter.Kind      { return d.kind }
func (d *Descriptor) DefaultValue() any         { return d.def }
func (d *Descriptor) Range() (min, max float64) { return d.min, d.max }
func (d *Descriptor) ValidValues() []any        { return d.valid }
func (d *Descriptor) Unit() units.Unit          { return d.unit }

// CreateValue returns a new value initialized to the default.
func (d *Descriptor) CreateValue() *Value {
	return &Value{descriptor: d, value: d.def, unit: d.unit}
}

// validate checks v against the kind, range and valid values.
func (d *Descriptor) validate(v any) error {
	switch d.kind {
	case parameter.KindFloat:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("%w: %s expects a float, got %T", parameter.ErrInvalidValue, d, v)
		}
		if f < d.min || f > d.max {
			return fmt.Errorf("%w: %s value %g is not in [%g … %g]", parameter.ErrInvalidValue, d, f, d.min, d.max)
		}
	case parameter.KindString:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", parameter.ErrInvalidValue, d, v)
		}
	}
	if len(d.valid) > 0 {
		for _, c := range d.valid {
			if c == v {
				return nil
			}
		}
		return fmt.Errorf("%w: %s value %v is not one of %v", parameter.ErrInvalidValue, d, v, d.valid)
	}
	return nil
}

// Value is a single parameter value.
type Value struct {
	descriptor *Descriptor
	value      any
	unit       units.Unit
}

func (v *Value) GeneralDescriptor() parameter.GeneralDescriptor { return v.descriptor }
func (v *Value) Descriptor() parameter.Descriptor               { return v.descriptor }
func (v *Value) Value() any                                     { return v.value }
func (v *Value) Unit() units.Unit                               { return v.unit }

func (v *Value) Float() (float64, error) {
	f, ok := v.value.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %s holds %T, not a float", parameter.ErrInvalidValue, v.descriptor, v.value)
	}
	return f, nil
}

// FloatIn converts the value from its unit to u. Values without unit are
// returned unchanged.
func (v *Value) FloatIn(u units.Unit) (float64, error) {
	f, err := v.Float()
	if err != nil || v.unit.IsZero() || u.IsZero() {
		return f, err
	}
	return units.Convert(f, v.unit, u)
}

func (v *Value) Int() (int, error) {
	f, err := v.Float()
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %s is not an integer", parameter.ErrInvalidValue, v.descriptor)
	}
	return int(f), nil
}

func (v *Value) Text() (string, error) {
	s, ok := v.value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s holds %T, not a string", parameter.ErrInvalidValue, v.descriptor, v.value)
	}
	return s, nil
}

func (v *Value) Bool() (bool, error) {
	b, ok := v.value.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s holds %T, not a boolean", parameter.ErrInvalidValue, v.descriptor, v.value)
	}
	return b, nil
}

// SetValue stores x after checking it against the descriptor. Integers are
// stored as floats for float parameters. A zero unit keeps the descriptor unit.
func (v *Value) SetValue(x any, u units.Unit) error {
	if n, ok := x.(int); ok && v.descriptor.kind == parameter.KindFloat {
		x = float64(n)
	}
	if u.IsZero() {
		u = v.descriptor.unit
	}
	if !v.descriptor.unit.IsZero() && !u.IsCompatible(v.descriptor.unit) {
		return fmt.Errorf("%w: unit %s is not compatible with %s", parameter.ErrInvalidValue, u, v.descriptor.unit)
	}
	check := x
	if f, ok := x.(float64); ok && !v.descriptor.unit.IsZero() {
		c, err := units.Convert(f, u, v.descriptor.unit)
		if err != nil {
			return fmt.Errorf("%w: %v", parameter.ErrInvalidValue, err)
		}
		check = c
	}
	if err := v.descriptor.validate(check); err != nil {
		return err
	}
	v.value, v.unit = x, u
	return nil
}

// DescriptorGroup describes a group of parameters, typically the parameters
// of an operation method.
type DescriptorGroup struct {
	exref.Identified
	members []parameter.GeneralDescriptor
}

// NewDescriptorGroup creates a group.
func NewDescriptorGroup(props referencing.Properties, members ...parameter.GeneralDescriptor) (*DescriptorGroup, error) {
	id, err := exref.NewIdentified(props)
	if err != nil {
		return nil, err
	}
	return &DescriptorGroup{Identified: id, members: members}, nil
}

func (g *DescriptorGroup) MinimumOccurs() int                         { return 1 }
func (g *DescriptorGroup) MaximumOccurs() int                         { return 1 }
func (g *DescriptorGroup) Descriptors() []parameter.GeneralDescriptor { return g.members }

// Descriptor finds a member by name or alias, ignoring case.
func (g *DescriptorGroup) Descriptor(name string) (parameter.GeneralDescriptor, error) {
	for _, m := range g.members {
		if matches(m, name) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", parameter.ErrParameterNotFound, name, g)
}

func matches(obj referencing.IdentifiedObject, name string) bool {
	if n := obj.Name(); n != nil && strings.EqualFold(n.Code(), name) {
		return true
	}
	for _, a := range obj.Alias() {
		if a != nil && strings.EqualFold(a.Tip().String(), name) {
			return true
		}
	}
	return false
}

// CreateValue returns a group holding a default value for every member.
func (g *DescriptorGroup) CreateValue() *ValueGroup {
	vg := &ValueGroup{descriptor: g}
	for _, m := range g.members {
		switch d := m.(type) {
		case *Descriptor:
			vg.values = append(vg.values, d.CreateValue())
		case *DescriptorGroup:
			vg.values = append(vg.values, d.CreateValue())
		}
	}
	return vg
}

// ValueGroup is a group of parameter values.
type ValueGroup struct {
	descriptor *DescriptorGroup
	values     []parameter.GeneralValue
}

func (g *ValueGroup) GeneralDescriptor() parameter.GeneralDescriptor { return g.descriptor }
func (g *ValueGroup) Descriptor() parameter.DescriptorGroup          { return g.descriptor }
func (g *ValueGroup) Values() []parameter.GeneralValue               { return g.values }

// Parameter returns the named value, creating it when the group has a
// descriptor but no value yet.
func (g *ValueGroup) Parameter(name string) (parameter.Value, error) {
	for _, v := range g.values {
		if pv, ok := v.(*Value); ok && matches(pv.descriptor, name) {
			return pv, nil
		}
	}
	d, err := g.descriptor.Descriptor(name)
	if err != nil {
		return nil, err
	}
	pd, ok := d.(*Descriptor)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a group", parameter.ErrParameterNotFound, name)
	}
	v := pd.CreateValue()
	g.values = append(g.values, v)
	return v, nil
}

func (g *ValueGroup) Groups(name string) []parameter.ValueGroup {
	var out []parameter.ValueGroup
	for _, v := range g.values {
		if vg, ok := v.(*ValueGroup); ok && matches(vg.descriptor, name) {
			out = append(out, vg)
		}
	}
	return out
}

// Set is a shortcut for Parameter(name) followed by SetValue.
func (g *ValueGroup) Set(name string, value any, u units.Unit) error {
	p, err := g.Parameter(name)
	if err != nil {
		return err
	}
	return p.SetValue(value, u)
}

// Float is a shortcut reading the named value in unit u.
func Float(g parameter.ValueGroup, name string, u units.Unit) (float64, error) {
	p, err := g.Parameter(name)
	if err != nil {
		return math.NaN(), err
	}
	return p.FloatIn(u)
}
