package conformance

import (
	"context"
	"errors"
	"fmt"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/operation"
)

// OperationValidator validates coordinate operations, operation methods and
// math transforms.
type OperationValidator struct {
	ReferencingValidator
}

// NewOperationValidator creates a validator delegating other packages to c.
func NewOperationValidator(c *Container) *OperationValidator {
	return &OperationValidator{ReferencingValidator: newReferencingValidator(c, "geoapi.referencing.operation")}
}

// Validate validates an operation together with its source and target CRS.
func (v *OperationValidator) Validate(ctx context.Context, op operation.CoordinateOperation) error {
	r := geoconform.NewReport(ctx)
	v.validateWithCRS(r, geoconform.Root(), op)
	return r.Err()
}

// ValidateTransform validates the dimensions of a math transform and its inverse.
func (v *OperationValidator) ValidateTransform(ctx context.Context, mt operation.MathTransform) error {
	r := geoconform.NewReport(ctx)
	v.validateTransform(r, geoconform.Root(), mt)
	return r.Err()
}

// ValidateMethod validates an operation method.
func (v *OperationValidator) ValidateMethod(ctx context.Context, m operation.OperationMethod) error {
	r := geoconform.NewReport(ctx)
	v.validateMethod(r, geoconform.Root(), m)
	return r.Err()
}

func (v *OperationValidator) validateWithCRS(r *geoconform.Report, p geoconform.PathRef, op operation.CoordinateOperation) {
	if geoconform.IsNil(op) {
		return
	}
	v.dispatch(r, p, op)
	if c, ok := op.SourceCRS().(crs.CRS); ok {
		v.container.CRS.dispatch(r, p.Field("sourceCRS"), c)
	}
	if c, ok := op.TargetCRS().(crs.CRS); ok {
		v.container.CRS.dispatch(r, p.Field("targetCRS"), c)
	}
}

// dispatch validates op without descending into its source and target CRS,
// since a derived CRS is usually the target of its own conversion.
func (v *OperationValidator) dispatch(r *geoconform.Report, p geoconform.PathRef, op operation.CoordinateOperation) {
	if geoconform.IsNil(op) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, op)
	v.container.Extent.validateExtent(r, p.Field("domainOfValidity"), op.DomainOfValidity())
	v.container.Naming.validateInternationalString(r, p.Field("scope"), op.Scope())
	source, target := op.SourceCRS(), op.TargetCRS()
	switch t := op.Type(); t {
	case operation.Transformation:
		v.mandatory(r, p.Field("sourceCRS"), "CC_CoordinateOperation.sourceCRS", "Transformation: shall have a source CRS.", source)
		v.mandatory(r, p.Field("targetCRS"), "CC_CoordinateOperation.targetCRS", "Transformation: shall have a target CRS.", target)
		v.mandatory(r, p.Field("operationVersion"), "CC_CoordinateOperation.operationVersion", "Transformation: shall have a version.", op.OperationVersion())
	case operation.Conversion, operation.Projection:
		v.forbidden(r, p.Field("operationVersion"), "CC_CoordinateOperation.operationVersion", t.String()+": shall not have a version.", op.OperationVersion())
	}
	mt := op.MathTransform()
	if !geoconform.IsNil(mt) {
		v.validateTransform(r, p.Field("mathTransform"), mt)
		v.checkCRSDimension(r, p.Field("sourceCRS"), source, mt.SourceDimensions(), "source")
		v.checkCRSDimension(r, p.Field("targetCRS"), target, mt.TargetDimensions(), "target")
	}
	switch o := op.(type) {
	case operation.SingleOperation:
		v.validateSingle(r, p, o)
	case operation.ConcatenatedOperation:
		v.validateConcatenated(r, p, o)
	}
}

func (v *OperationValidator) checkCRSDimension(r *geoconform.Report, p geoconform.PathRef, rs referencing.ReferenceSystem, dim int, role string) {
	c, ok := rs.(crs.CRS)
	if !ok || geoconform.IsNil(c) {
		return
	}
	if n := crs.Dimension(c); n > 0 {
		v.checkEqualInt(r, p, geoconform.CodeInvalidDimension,
			fmt.Sprintf("CoordinateOperation: %s CRS dimension shall match the transform.", role), n, dim)
	}
}

func (v *OperationValidator) validateSingle(r *geoconform.Report, p geoconform.PathRef, op operation.SingleOperation) {
	m := op.Method()
	if v.mandatory(r, p.Field("method"), "CC_SingleOperation.method", "SingleOperation: shall have a method.", m) {
		v.validateMethod(r, p.Field("method"), m)
		if mt := op.MathTransform(); !geoconform.IsNil(mt) {
			if n := m.SourceDimensions(); n > 0 {
				v.checkEqualInt(r, p.Field("method").Field("sourceDimensions"), geoconform.CodeInvalidDimension,
					"SingleOperation: method source dimension shall match the transform.", n, mt.SourceDimensions())
			}
			if n := m.TargetDimensions(); n > 0 {
				v.checkEqualInt(r, p.Field("method").Field("targetDimensions"), geoconform.CodeInvalidDimension,
					"SingleOperation: method target dimension shall match the transform.", n, mt.TargetDimensions())
			}
		}
	}
	values := op.ParameterValues()
	if !v.mandatory(r, p.Field("parameterValues"), "CC_SingleOperation.parameterValue", "SingleOperation: shall have parameter values.", values) {
		return
	}
	v.container.Parameter.dispatchValue(r, p.Field("parameterValues"), values)
	if !geoconform.IsNil(m) && !geoconform.IsNil(m.Parameters()) && !geoconform.IsNil(values.Descriptor()) {
		expected, actual := nameOf(m.Parameters()), nameOf(values.Descriptor())
		v.check(r, expected == actual, p.Field("parameterValues").Field("descriptor"), geoconform.CodeInconsistentValue,
			"SingleOperation: parameter values shall be described by the method parameters.", "expected", expected, "actual", actual)
	}
}

func (v *OperationValidator) validateMethod(r *geoconform.Report, p geoconform.PathRef, m operation.OperationMethod) {
	if geoconform.IsNil(m) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, m)
	if f := m.Formula(); v.mandatory(r, p.Field("formula"), "CC_OperationMethod.formula", "OperationMethod: shall have a formula.", f) {
		v.container.Naming.validateInternationalString(r, p.Field("formula"), f)
	}
	v.check(r, m.SourceDimensions() >= 0, p.Field("sourceDimensions"), geoconform.CodeInvalidDimension,
		"OperationMethod: source dimension shall not be negative.", "actual", m.SourceDimensions())
	v.check(r, m.TargetDimensions() >= 0, p.Field("targetDimensions"), geoconform.CodeInvalidDimension,
		"OperationMethod: target dimension shall not be negative.", "actual", m.TargetDimensions())
	if params := m.Parameters(); !geoconform.IsNil(params) {
		v.container.Parameter.dispatchDescriptor(r, p.Field("parameters"), params)
	}
}

func (v *OperationValidator) validateConcatenated(r *geoconform.Report, p geoconform.PathRef, op operation.ConcatenatedOperation) {
	steps := op.Operations()
	if !v.check(r, len(steps) >= 2, p.Field("operations"), geoconform.CodeInvalidDimension,
		"ConcatenatedOperation: shall contain at least two operations.", "actual", len(steps)) {
		return
	}
	var previous operation.MathTransform
	for i, step := range steps {
		sp := p.Field("operations").Index(i)
		if !v.mandatory(r, sp, "", "ConcatenatedOperation: operations shall not be nil.", step) {
			previous = nil
			continue
		}
		v.dispatch(r, sp, step)
		mt := step.MathTransform()
		if !geoconform.IsNil(mt) && !geoconform.IsNil(previous) {
			v.checkEqualInt(r, sp.Field("mathTransform").Field("sourceDimensions"), geoconform.CodeInvalidDimension,
				"ConcatenatedOperation: each step shall accept the output of the previous one.", previous.TargetDimensions(), mt.SourceDimensions())
		}
		previous = mt
	}
	if mt := op.MathTransform(); !geoconform.IsNil(mt) {
		if first := steps[0]; !geoconform.IsNil(first) && !geoconform.IsNil(first.MathTransform()) {
			v.checkEqualInt(r, p.Field("mathTransform").Field("sourceDimensions"), geoconform.CodeInvalidDimension,
				"ConcatenatedOperation: source dimension shall be the one of the first step.", first.MathTransform().SourceDimensions(), mt.SourceDimensions())
		}
		if last := steps[len(steps)-1]; !geoconform.IsNil(last) && !geoconform.IsNil(last.MathTransform()) {
			v.checkEqualInt(r, p.Field("mathTransform").Field("targetDimensions"), geoconform.CodeInvalidDimension,
				"ConcatenatedOperation: target dimension shall be the one of the last step.", last.MathTransform().TargetDimensions(), mt.TargetDimensions())
		}
	}
}

func (v *OperationValidator) validateTransform(r *geoconform.Report, p geoconform.PathRef, mt operation.MathTransform) {
	if geoconform.IsNil(mt) || r.Done() {
		return
	}
	src, tgt := mt.SourceDimensions(), mt.TargetDimensions()
	v.check(r, src > 0, p.Field("sourceDimensions"), geoconform.CodeInvalidDimension, "MathTransform: source dimension shall be positive.", "actual", src)
	v.check(r, tgt > 0, p.Field("targetDimensions"), geoconform.CodeInvalidDimension, "MathTransform: target dimension shall be positive.", "actual", tgt)
	if mt.IsIdentity() {
		v.checkEqualInt(r, p.Field("targetDimensions"), geoconform.CodeInvalidDimension,
			"MathTransform: an identity transform shall have the same source and target dimensions.", src, tgt)
	}
	inv, err := mt.Inverse()
	switch {
	case errors.Is(err, operation.ErrNoninvertible):
	case err != nil:
		it := p.Issue(geoconform.CodeUnsupportedOperation, "MathTransform: Inverse() failed: "+err.Error())
		it.Validator, it.Cause, it.Severity = v.name, err, geoconform.Warn
		r.Add(it)
	case geoconform.IsNil(inv):
		v.fail(r, p.Field("inverse"), geoconform.CodeMandatoryMissing, "MathTransform: Inverse() returned nil without error.")
	default:
		v.checkEqualInt(r, p.Field("inverse").Field("sourceDimensions"), geoconform.CodeInvalidDimension,
			"MathTransform: inverse source dimension shall be the target dimension.", tgt, inv.SourceDimensions())
		v.checkEqualInt(r, p.Field("inverse").Field("targetDimensions"), geoconform.CodeInvalidDimension,
			"MathTransform: inverse target dimension shall be the source dimension.", src, inv.TargetDimensions())
		v.check(r, inv.IsIdentity() == mt.IsIdentity(), p.Field("inverse").Field("identity"), geoconform.CodeInconsistentValue,
			"MathTransform: the inverse of an identity shall be an identity.")
	}
}
