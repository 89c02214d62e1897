// Package filter provides filters and expressions evaluated against
// resources represented as property maps. A property value may itself be
// a map, reached with a slash-separated path.
package filter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	exutil "github.com/geoapi/geoconform/example/util"
	"github.com/geoapi/geoconform/filter"
	"github.com/geoapi/geoconform/util"
)

// Resource is the type filters are evaluated against.
type Resource = map[string]any

var fes = exutil.NewNameSpace(":", "fes")

// Literal is a constant value.
type Literal struct{ V any }

var _ filter.Literal = Literal{}

func (Literal) FunctionName() util.GenericName  { return exutil.NewName(fes, "Literal") }
func (Literal) Parameters() []filter.Expression { return nil }
func (l Literal) Value() any                    { return l.V }
func (l Literal) Apply(any) (any, error)        { return l.V, nil }

// Property is a value reference to a property of a Resource.
type Property struct{ Path string }

var _ filter.ValueReference = Property{}

func (Property) FunctionName() util.GenericName  { return exutil.NewName(fes, "ValueReference") }
func (Property) Parameters() []filter.Expression { return nil }
func (p Property) XPath() string                 { return p.Path }

// Apply returns the property value, or nil when it is missing.
func (p Property) Apply(resource any) (any, error) {
	var cur any = resource
	for _, step := range strings.Split(strings.TrimPrefix(p.Path, "/"), "/") {
		m, ok := cur.(Resource)
		if !ok {
			return nil, nil
		}
		cur = m[step]
	}
	return cur, nil
}

// Function applies a named function to the values of its parameters.
type Function struct {
	Name   string
	Params []filter.Expression
	impl   func(args []any) (any, error)
}

var _ filter.Expression = (*Function)(nil)

// functions maps names to argument counts and implementations.
var functions = map[string]struct {
	args int
	impl func(args []any) (any, error)
}{
	"strToUpperCase": {1, func(a []any) (any, error) { return strings.ToUpper(fmt.Sprint(a[0])), nil }},
	"strToLowerCase": {1, func(a []any) (any, error) { return strings.ToLower(fmt.Sprint(a[0])), nil }},
	"strLength":      {1, func(a []any) (any, error) { return float64(utf8.RuneCountInString(fmt.Sprint(a[0]))), nil }},
	"strConcat":      {2, func(a []any) (any, error) { return fmt.Sprint(a[0]) + fmt.Sprint(a[1]), nil }},
}

// NewFunction returns one of the functions listed by Functions.
func NewFunction(name string, params ...filter.Expression) (*Function, error) {
	f, ok := functions[name]
	if !ok {
		return nil, fmt.Errorf("filter: unknown function %q", name)
	}
	if len(params) != f.args {
		return nil, fmt.Errorf("filter: %s expects %d arguments, got %d", name, f.args, len(params))
	}
	return &Function{Name: name, Params: params, impl: f.impl}, nil
}

// Functions lists the available functions with their argument counts.
func Functions() map[string]int {
	out := make(map[string]int, len(functions))
	for name, f := range functions {
		out[name] = f.args
	}
	return out
}

func (f *Function) FunctionName() util.GenericName  { return exutil.NewName(exutil.Global, f.Name) }
func (f *Function) Parameters() []filter.Expression { return f.Params }

func (f *Function) Apply(resource any) (any, error) {
	args := make([]any, len(f.Params))
	for i, p := range f.Params {
		v, err := p.Apply(resource)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		args[i] = v
	}
	return f.impl(args)
}
