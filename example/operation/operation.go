package operation

import (
	"fmt"

	exref "github.com/geoapi/geoconform/example/referencing"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/operation"
)

// VersionKey is the property holding the operation version, mandatory for
// transformations.
const VersionKey = "operationVersion"

// Operation is a single coordinate operation.
type Operation struct {
	exref.System
	kind           operation.Type
	version        string
	source, target referencing.ReferenceSystem
	method         operation.OperationMethod
	values         parameter.ValueGroup
	transform      operation.MathTransform
}

var _ operation.SingleOperation = (*Operation)(nil)

// NewOperation creates a single operation. Source and target CRS are
// attached later with WithCRS.
func NewOperation(props referencing.Properties, kind operation.Type, method operation.OperationMethod,
	values parameter.ValueGroup, transform operation.MathTransform) (*Operation, error) {
	s, err := exref.NewSystem(props)
	if err != nil {
		return nil, err
	}
	if method == nil || transform == nil {
		return nil, fmt.Errorf("%w: %s needs a method and a transform", operation.ErrTransform, kind)
	}
	version, _ := props[VersionKey].(string)
	return &Operation{System: s, kind: kind, version: version, method: method, values: values, transform: transform}, nil
}

// WithCRS returns a copy of o between the given reference systems.
func (o *Operation) WithCRS(source, target referencing.ReferenceSystem) operation.SingleOperation {
	c := *o
	c.source, c.target = source, target
	return &c
}

func (o *Operation) Type() operation.Type                   { return o.kind }
func (o *Operation) SourceCRS() referencing.ReferenceSystem { return o.source }
func (o *Operation) TargetCRS() referencing.ReferenceSystem { return o.target }
func (o *Operation) OperationVersion() string               { return o.version }
func (o *Operation) MathTransform() operation.MathTransform { return o.transform }
func (o *Operation) Method() operation.OperationMethod      { return o.method }
func (o *Operation) ParameterValues() parameter.ValueGroup  { return o.values }

// ConcatenatedOperation chains operations; the target of each step is the
// source of the next one.
type ConcatenatedOperation struct {
	exref.System
	steps     []operation.CoordinateOperation
	transform operation.MathTransform
}

var _ operation.ConcatenatedOperation = (*ConcatenatedOperation)(nil)

// NewConcatenatedOperation concatenates the transforms of every step.
func NewConcatenatedOperation(props referencing.Properties, steps ...operation.CoordinateOperation) (*ConcatenatedOperation, error) {
	s, err := exref.NewSystem(props)
	if err != nil {
		return nil, err
	}
	if len(steps) < 2 {
		return nil, fmt.Errorf("%w: a concatenated operation needs at least two steps", operation.ErrTransform)
	}
	t := steps[0].MathTransform()
	for i, step := range steps[1:] {
		if t, err = Concatenate(t, step.MathTransform()); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &ConcatenatedOperation{System: s, steps: append([]operation.CoordinateOperation(nil), steps...), transform: t}, nil
}

func (c *ConcatenatedOperation) Type() operation.Type                        { return operation.Concatenated }
func (c *ConcatenatedOperation) OperationVersion() string                    { return "" }
func (c *ConcatenatedOperation) MathTransform() operation.MathTransform      { return c.transform }
func (c *ConcatenatedOperation) Operations() []operation.CoordinateOperation { return c.steps }

func (c *ConcatenatedOperation) SourceCRS() referencing.ReferenceSystem {
	return c.steps[0].SourceCRS()
}

func (c *ConcatenatedOperation) TargetCRS() referencing.ReferenceSystem {
	return c.steps[len(c.steps)-1].TargetCRS()
}
