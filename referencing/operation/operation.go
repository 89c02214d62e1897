// Package operation declares coordinate operations and the math transforms
// executing them (ISO 19111, OGC 01-009).
package operation

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/util"
)

var (
	// ErrNoSuchMethod is returned by factories for unknown operation methods.
	ErrNoSuchMethod = errors.New("operation: no such method")
	// ErrNoninvertible is returned when a transform has no inverse.
	ErrNoninvertible = errors.New("operation: transform is not invertible")
	// ErrTransform is returned when a point cannot be transformed.
	ErrTransform = errors.New("operation: transform failed")
)

// MathTransform transforms multi-dimensional coordinate points.
type MathTransform interface {
	SourceDimensions() int
	TargetDimensions() int
	IsIdentity() bool
	// Transform converts the points packed in src and stores them in dst.
	// len(src) must be a multiple of SourceDimensions. dst may alias src.
	Transform(dst, src []float64) error
	// Derivative returns the Jacobian matrix (target x source) at point.
	Derivative(point []float64) (*mat.Dense, error)
	// Inverse returns ErrNoninvertible when no inverse exists.
	Inverse() (MathTransform, error)
}

// TransformPoint transforms a single point into a new slice.
func TransformPoint(t MathTransform, p []float64) ([]float64, error) {
	if len(p) != t.SourceDimensions() {
		return nil, fmt.Errorf("%w: expected %d ordinates, got %d", ErrTransform, t.SourceDimensions(), len(p))
	}
	out := make([]float64, t.TargetDimensions())
	if len(out) == len(p) {
		copy(out, p)
		return out, t.Transform(out, out)
	}
	return out, t.Transform(out, p)
}

// Type discriminates the coordinate operation kinds.
type Type int

const (
	TypeUnknown Type = iota
	Conversion
	Transformation
	Projection
	Concatenated
)

func (t Type) String() string {
	switch t {
	case Conversion:
		return "Conversion"
	case Transformation:
		return "Transformation"
	case Projection:
		return "Projection"
	case Concatenated:
		return "ConcatenatedOperation"
	}
	return "CoordinateOperation"
}

// IsConversion reports whether operations of this type are conversions
// (projections included).
func (t Type) IsConversion() bool { return t == Conversion || t == Projection }

// OperationMethod is the algorithm used by a single operation.
type OperationMethod interface {
	referencing.IdentifiedObject
	Formula() util.InternationalString
	// SourceDimensions is zero when the method works for any dimension.
	SourceDimensions() int
	TargetDimensions() int
	Parameters() parameter.DescriptorGroup
}

// CoordinateOperation changes coordinates from a source CRS to a target CRS.
// The CRS are typed as reference systems; the crs package narrows them.
type CoordinateOperation interface {
	referencing.IdentifiedObject
	Type() Type
	SourceCRS() referencing.ReferenceSystem
	TargetCRS() referencing.ReferenceSystem
	// OperationVersion is mandatory for transformations and forbidden for
	// conversions.
	OperationVersion() string
	DomainOfValidity() metadata.Extent
	Scope() util.InternationalString
	MathTransform() MathTransform
}

// SingleOperation is an operation consisting of one method.
type SingleOperation interface {
	CoordinateOperation
	Method() OperationMethod
	ParameterValues() parameter.ValueGroup
}

// ConcatenatedOperation is an ordered sequence of operations.
type ConcatenatedOperation interface {
	CoordinateOperation
	Operations() []CoordinateOperation
}

// MathTransformFactory creates transforms from parameter values.
type MathTransformFactory interface {
	// AvailableMethods lists the methods known to this factory.
	AvailableMethods() []OperationMethod
	// DefaultParameters returns a fresh group with default values for the
	// named method, or ErrNoSuchMethod.
	DefaultParameters(method string) (parameter.ValueGroup, error)
	CreateParameterizedTransform(params parameter.ValueGroup) (MathTransform, error)
	// CreateAffineTransform creates a transform from a (target+1)x(source+1)
	// matrix.
	CreateAffineTransform(m mat.Matrix) (MathTransform, error)
	// CreateConcatenatedTransform applies first then second.
	CreateConcatenatedTransform(first, second MathTransform) (MathTransform, error)
}
