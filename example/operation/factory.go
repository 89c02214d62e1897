package operation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	exparam "github.com/geoapi/geoconform/example/parameter"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/operation"
)

// Factory creates math transforms and conversions from parameter values.
type Factory struct {
	methods []*Method
}

var _ operation.MathTransformFactory = (*Factory)(nil)

// NewFactory returns a factory knowing every method of this package.
func NewFactory() *Factory {
	return &Factory{methods: Methods()}
}

func (f *Factory) AvailableMethods() []operation.OperationMethod {
	out := make([]operation.OperationMethod, len(f.methods))
	for i, m := range f.methods {
		out[i] = m
	}
	return out
}

// Method finds a method by name or alias, ignoring case.
func (f *Factory) Method(name string) (*Method, error) {
	for _, m := range f.methods {
		if m.Matches(name) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", operation.ErrNoSuchMethod, name)
}

func (f *Factory) DefaultParameters(method string) (parameter.ValueGroup, error) {
	m, err := f.Method(method)
	if err != nil {
		return nil, err
	}
	return m.params.CreateValue(), nil
}

// CreateParameterizedTransform finds the method named by the descriptor of
// params and builds its transform.
func (f *Factory) CreateParameterizedTransform(params parameter.ValueGroup) (operation.MathTransform, error) {
	m, err := f.methodOf(params)
	if err != nil {
		return nil, err
	}
	return m.CreateTransform(params)
}

func (f *Factory) methodOf(params parameter.ValueGroup) (*Method, error) {
	if params == nil || params.Descriptor() == nil || params.Descriptor().Name() == nil {
		return nil, fmt.Errorf("%w: parameters without a named descriptor", operation.ErrNoSuchMethod)
	}
	return f.Method(params.Descriptor().Name().Code())
}

func (f *Factory) CreateAffineTransform(m mat.Matrix) (operation.MathTransform, error) {
	return NewAffine(m)
}

func (f *Factory) CreateConcatenatedTransform(first, second operation.MathTransform) (operation.MathTransform, error) {
	return Concatenate(first, second)
}

// CreateConversion builds the transform for params and wraps it in a
// conversion, typed as a projection when the method is a map projection.
func (f *Factory) CreateConversion(props referencing.Properties, params parameter.ValueGroup) (*Operation, error) {
	m, err := f.methodOf(params)
	if err != nil {
		return nil, err
	}
	t, err := m.CreateTransform(params)
	if err != nil {
		return nil, err
	}
	kind := operation.Conversion
	if m.IsProjection() {
		kind = operation.Projection
	}
	return NewOperation(props, kind, m, params, t)
}

// Parameters returns the default values of method with the given values
// set. Values are float64 in the descriptor units.
func (f *Factory) Parameters(method string, values map[string]float64) (*exparam.ValueGroup, error) {
	m, err := f.Method(method)
	if err != nil {
		return nil, err
	}
	g := m.params.CreateValue()
	for name, v := range values {
		p, err := g.Parameter(name)
		if err != nil {
			return nil, err
		}
		if err := p.SetValue(v, p.Descriptor().Unit()); err != nil {
			return nil, err
		}
	}
	return g, nil
}
