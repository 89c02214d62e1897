// Package parameter declares parameter descriptors and values (ISO 19111
// CC_GeneralOperationParameter and CC_GeneralParameterValue).
package parameter

import (
	"errors"

	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/units"
)

var (
	// ErrParameterNotFound is returned when a group has no parameter of the
	// requested name.
	ErrParameterNotFound = errors.New("parameter: not found")
	// ErrInvalidValue is returned when a value does not fit its descriptor.
	ErrInvalidValue = errors.New("parameter: invalid value")
)

// Kind is the type of value a parameter holds.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return "float"
}

// GeneralDescriptor is the definition of a parameter or group of parameters.
type GeneralDescriptor interface {
	referencing.IdentifiedObject
	MinimumOccurs() int
	MaximumOccurs() int
}

// Descriptor defines a single parameter.
type Descriptor interface {
	GeneralDescriptor
	Kind() Kind
	// DefaultValue is nil when the parameter has no default.
	DefaultValue() any
	// Range returns the bounds of numeric values, infinite when unbounded.
	Range() (min, max float64)
	// ValidValues is the set of allowed values, empty when unrestricted.
	ValidValues() []any
	Unit() units.Unit
}

// DescriptorGroup defines a group of parameters.
type DescriptorGroup interface {
	GeneralDescriptor
	Descriptors() []GeneralDescriptor
	Descriptor(name string) (GeneralDescriptor, error)
}

// GeneralValue is a parameter value or a group of values.
type GeneralValue interface {
	GeneralDescriptor() GeneralDescriptor
}

// Value is a single parameter value.
type Value interface {
	GeneralValue
	Descriptor() Descriptor
	// Value is the raw value, nil when unset.
	Value() any
	Unit() units.Unit
	Float() (float64, error)
	// FloatIn converts the value to the given unit.
	FloatIn(u units.Unit) (float64, error)
	Int() (int, error)
	Text() (string, error)
	Bool() (bool, error)
	// SetValue validates v against the descriptor before storing it.
	SetValue(v any, u units.Unit) error
}

// ValueGroup is a group of parameter values.
type ValueGroup interface {
	GeneralValue
	Descriptor() DescriptorGroup
	Values() []GeneralValue
	// Parameter returns the value of the named parameter, creating it from
	// its descriptor when the group does not hold it yet.
	Parameter(name string) (Value, error)
	Groups(name string) []ValueGroup
}
