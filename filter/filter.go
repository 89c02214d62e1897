// Package filter declares filter predicates and expressions (ISO 19143).
package filter

import "github.com/geoapi/geoconform/util"

// OperatorType names the operation performed by a filter.
type OperatorType int

const (
	OperatorUnknown OperatorType = iota
	// Special filters.
	OperatorInclude
	OperatorExclude
	OperatorResourceID
	// Comparison operators.
	OperatorEqual
	OperatorNotEqual
	OperatorLess
	OperatorGreater
	OperatorLessOrEqual
	OperatorGreaterOrEqual
	OperatorLike
	OperatorNull
	OperatorNil
	OperatorBetween
	// Logical operators.
	OperatorAnd
	OperatorOr
	OperatorNot
	// Spatial operators.
	OperatorBBox
	OperatorEquals
	OperatorDisjoint
	OperatorIntersects
	OperatorTouches
	OperatorCrosses
	OperatorWithin
	OperatorContains
	OperatorOverlaps
)

var operatorCodes = [...]struct{ name, id string }{
	{"UNKNOWN", ""},
	{"INCLUDE", "Include"},
	{"EXCLUDE", "Exclude"},
	{"RESOURCE_ID", "ResourceId"},
	{"PROPERTY_IS_EQUAL_TO", "PropertyIsEqualTo"},
	{"PROPERTY_IS_NOT_EQUAL_TO", "PropertyIsNotEqualTo"},
	{"PROPERTY_IS_LESS_THAN", "PropertyIsLessThan"},
	{"PROPERTY_IS_GREATER_THAN", "PropertyIsGreaterThan"},
	{"PROPERTY_IS_LESS_THAN_OR_EQUAL_TO", "PropertyIsLessThanOrEqualTo"},
	{"PROPERTY_IS_GREATER_THAN_OR_EQUAL_TO", "PropertyIsGreaterThanOrEqualTo"},
	{"PROPERTY_IS_LIKE", "PropertyIsLike"},
	{"PROPERTY_IS_NULL", "PropertyIsNull"},
	{"PROPERTY_IS_NIL", "PropertyIsNil"},
	{"PROPERTY_IS_BETWEEN", "PropertyIsBetween"},
	{"AND", "And"},
	{"OR", "Or"},
	{"NOT", "Not"},
	{"BBOX", "BBOX"},
	{"EQUALS", "Equals"},
	{"DISJOINT", "Disjoint"},
	{"INTERSECTS", "Intersects"},
	{"TOUCHES", "Touches"},
	{"CROSSES", "Crosses"},
	{"WITHIN", "Within"},
	{"CONTAINS", "Contains"},
	{"OVERLAPS", "Overlaps"},
}

func (o OperatorType) Ordinal() int { return int(o) }

func (o OperatorType) Name() string {
	if o < 0 || int(o) >= len(operatorCodes) {
		return ""
	}
	return operatorCodes[o].name
}

func (o OperatorType) Identifier() string {
	if o < 0 || int(o) >= len(operatorCodes) {
		return ""
	}
	return operatorCodes[o].id
}

func (o OperatorType) String() string { return o.Identifier() }

// IsComparison reports whether o is a comparison operator.
func (o OperatorType) IsComparison() bool { return o >= OperatorEqual && o <= OperatorBetween }

// IsLogical reports whether o is a logical operator.
func (o OperatorType) IsLogical() bool { return o >= OperatorAnd && o <= OperatorNot }

// IsSpatial reports whether o is a spatial operator.
func (o OperatorType) IsSpatial() bool { return o >= OperatorBBox && o <= OperatorOverlaps }

// Operands returns the number of expressions an operator takes, -1 when
// variable (at least one).
func (o OperatorType) Operands() int {
	switch {
	case o == OperatorInclude || o == OperatorExclude:
		return 0
	case o == OperatorNull || o == OperatorNil || o == OperatorLike:
		return 1
	case o == OperatorBetween:
		return 3
	case o.IsComparison(), o.IsSpatial():
		return 2
	}
	return -1
}

// OperatorTypeOf parses an operator name or identifier.
func OperatorTypeOf(s string) (OperatorType, bool) {
	for i, c := range operatorCodes {
		if i > 0 && (s == c.name || s == c.id) {
			return OperatorType(i), true
		}
	}
	return OperatorUnknown, false
}

// Expression computes a value from a resource.
type Expression interface {
	FunctionName() util.GenericName
	Parameters() []Expression
	Apply(resource any) (any, error)
}

// Literal is a constant value.
type Literal interface {
	Expression
	Value() any
}

// ValueReference reads a property of the resource.
type ValueReference interface {
	Expression
	XPath() string
}

// Filter is a predicate on resources.
type Filter interface {
	OperatorType() OperatorType
	// Expressions are the operands. Logical operators have none and expose
	// their operands through Operands.
	Expressions() []Expression
	Test(resource any) bool
}

// ComparisonOperator compares its expressions.
type ComparisonOperator interface {
	Filter
	IsMatchingCase() bool
}

// LogicalOperator combines other filters.
type LogicalOperator interface {
	Filter
	Operands() []Filter
}

// BinarySpatialOperator relates two geometry expressions.
type BinarySpatialOperator interface {
	Filter
	Operand1() Expression
	Operand2() Expression
}

// Include is the filter accepting every resource.
var Include Filter = constFilter(true)

// Exclude is the filter rejecting every resource.
var Exclude Filter = constFilter(false)

type constFilter bool

func (f constFilter) OperatorType() OperatorType {
	if f {
		return OperatorInclude
	}
	return OperatorExclude
}

func (constFilter) Expressions() []Expression { return nil }
func (f constFilter) Test(any) bool           { return bool(f) }

// Expressions exposes filters as boolean expressions, for example to pass
// them as function parameters.
func Expressions(filters ...Filter) []Expression {
	out := make([]Expression, len(filters))
	for i, f := range filters {
		out[i] = filterExpression{f}
	}
	return out
}

type filterExpression struct{ f Filter }

func (e filterExpression) FunctionName() util.GenericName { return localName(e.f.OperatorType().Identifier()) }
func (filterExpression) Parameters() []Expression         { return nil }
func (e filterExpression) Apply(resource any) (any, error) {
	return e.f.Test(resource), nil
}

// Conformance lists the optional conformance classes an implementation
// supports (FES_Conformance).
type Conformance interface {
	ImplementsQuery() bool
	ImplementsAdHocQuery() bool
	ImplementsFunctions() bool
	ImplementsResourceID() bool
	ImplementsMinStandardFilter() bool
	ImplementsStandardFilter() bool
	ImplementsMinSpatialFilter() bool
	ImplementsSpatialFilter() bool
	ImplementsMinTemporalFilter() bool
	ImplementsTemporalFilter() bool
	ImplementsVersionNav() bool
	ImplementsSorting() bool
	ImplementsExtendedOperators() bool
}

// Capabilities describes the filters an implementation supports
// (FES_FilterCapabilities).
type Capabilities interface {
	Conformance() Conformance
	// IDCapabilities lists the resource identifier names, empty when the
	// ResourceId filter is not supported.
	IDCapabilities() []string
	// ScalarCapabilities lists the comparison and logical operators supported.
	ScalarCapabilities() []OperatorType
	// SpatialCapabilities lists the spatial operators supported.
	SpatialCapabilities() []OperatorType
	// Functions maps function names to their argument count.
	Functions() map[string]int
}

// localName is a name of depth one in the global name space.
type localName string

func (n localName) Scope() util.NameSpace                           { return globalNameSpace{} }
func (localName) Depth() int                                        { return 1 }
func (n localName) ParsedNames() []util.GenericName                 { return []util.GenericName{n} }
func (n localName) Head() util.GenericName                          { return n }
func (n localName) Tip() util.GenericName                           { return n }
func (n localName) String() string                                  { return string(n) }
func (n localName) ToInternationalString() util.InternationalString { return n }
func (n localName) Localized(string) string                         { return string(n) }

type globalNameSpace struct{}

func (globalNameSpace) IsGlobal() bool         { return true }
func (globalNameSpace) Name() util.GenericName { return nil }
