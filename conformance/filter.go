package conformance

import (
	"context"
	"fmt"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/filter"
)

// FilterValidator validates filters, expressions and filter capabilities
// (ISO 19143).
type FilterValidator struct {
	Validator
}

// NewFilterValidator creates a validator delegating other packages to c.
func NewFilterValidator(c *Container) *FilterValidator {
	return &FilterValidator{Validator: newValidator(c, "geoapi.filter")}
}

// Validate validates a filter and its operands.
func (v *FilterValidator) Validate(ctx context.Context, obj filter.Filter) error {
	r := geoconform.NewReport(ctx)
	v.validateFilter(r, geoconform.Root(), obj)
	return r.Err()
}

// ValidateExpression validates an expression and its parameters.
func (v *FilterValidator) ValidateExpression(ctx context.Context, obj filter.Expression) error {
	r := geoconform.NewReport(ctx)
	v.validateExpression(r, geoconform.Root(), obj)
	return r.Err()
}

// ValidateCapabilities validates filter capabilities against the declared
// conformance classes.
func (v *FilterValidator) ValidateCapabilities(ctx context.Context, obj filter.Capabilities) error {
	r := geoconform.NewReport(ctx)
	v.validateCapabilities(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *FilterValidator) validateFilter(r *geoconform.Report, p geoconform.PathRef, obj filter.Filter) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	op := obj.OperatorType()
	if op == filter.OperatorUnknown || op.Name() == "" {
		v.mandatory(r, p.Field("operatorType"), "Filter.operatorType", "Filter: shall have an operator type.", nil)
		return
	}
	v.container.Naming.validateCodeList(r, p.Field("operatorType"), op)
	exprs := obj.Expressions()
	for i, e := range exprs {
		ep := p.Field("expressions").Index(i)
		if v.mandatory(r, ep, "", "Filter: expressions shall not be nil.", e) {
			v.validateExpression(r, ep, e)
		}
	}
	if logical, ok := obj.(filter.LogicalOperator); ok {
		v.check(r, op.IsLogical(), p.Field("operatorType"), geoconform.CodeUnexpectedType,
			"LogicalOperator: operator type shall be And, Or or Not.", "actual", op.Name())
		operands := logical.Operands()
		if op == filter.OperatorNot {
			v.checkEqualInt(r, p.Field("operands"), geoconform.CodeInvalidDimension, "Not: shall have exactly one operand.", 1, len(operands))
		} else {
			v.check(r, len(operands) >= 2, p.Field("operands"), geoconform.CodeInvalidDimension,
				fmt.Sprintf("%s: shall have at least two operands.", op), "actual", len(operands))
		}
		for i, f := range operands {
			fp := p.Field("operands").Index(i)
			if v.mandatory(r, fp, "", "LogicalOperator: operands shall not be nil.", f) {
				v.validateFilter(r, fp, f)
			}
		}
		return
	}
	if n := op.Operands(); n >= 0 {
		v.checkEqualInt(r, p.Field("expressions"), geoconform.CodeInvalidDimension,
			fmt.Sprintf("%s: wrong number of operands.", op), n, len(exprs))
	}
	if spatial, ok := obj.(filter.BinarySpatialOperator); ok {
		v.check(r, op.IsSpatial(), p.Field("operatorType"), geoconform.CodeUnexpectedType,
			"BinarySpatialOperator: operator type shall be spatial.", "actual", op.Name())
		v.mandatory(r, p.Field("operand1"), "", "BinarySpatialOperator: shall have a first operand.", spatial.Operand1())
		v.mandatory(r, p.Field("operand2"), "", "BinarySpatialOperator: shall have a second operand.", spatial.Operand2())
	}
	if _, ok := obj.(filter.ComparisonOperator); ok {
		v.check(r, op.IsComparison(), p.Field("operatorType"), geoconform.CodeUnexpectedType,
			"ComparisonOperator: operator type shall be a comparison.", "actual", op.Name())
	}
}

func (v *FilterValidator) validateExpression(r *geoconform.Report, p geoconform.PathRef, obj filter.Expression) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	if name := obj.FunctionName(); v.mandatory(r, p.Field("functionName"), "Expression.functionName", "Expression: shall have a function name.", name) {
		v.container.Naming.validateName(r, p.Field("functionName"), name)
	}
	if ref, ok := obj.(filter.ValueReference); ok {
		v.mandatory(r, p.Field("xpath"), "ValueReference.xpath", "ValueReference: shall have an XPath.", ref.XPath())
	}
	for i, e := range obj.Parameters() {
		ep := p.Field("parameters").Index(i)
		if v.mandatory(r, ep, "", "Expression: parameters shall not be nil.", e) {
			v.validateExpression(r, ep, e)
		}
	}
}

func (v *FilterValidator) validateCapabilities(r *geoconform.Report, p geoconform.PathRef, obj filter.Capabilities) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	c := obj.Conformance()
	if !v.mandatory(r, p.Field("conformance"), "FilterCapabilities.conformance", "FilterCapabilities: shall declare its conformance.", c) {
		return
	}
	cp := p.Field("conformance")
	implies := func(a, b bool, name, msg string) {
		v.check(r, !a || b, cp.Field(name), geoconform.CodeInconsistentValue, msg)
	}
	implies(c.ImplementsAdHocQuery(), c.ImplementsQuery(), "implementsAdHocQuery", "Conformance: ad hoc query requires query.")
	implies(c.ImplementsStandardFilter(), c.ImplementsMinStandardFilter(), "implementsStandardFilter", "Conformance: standard filter requires minimum standard filter.")
	implies(c.ImplementsSpatialFilter(), c.ImplementsMinSpatialFilter(), "implementsSpatialFilter", "Conformance: spatial filter requires minimum spatial filter.")
	implies(c.ImplementsTemporalFilter(), c.ImplementsMinTemporalFilter(), "implementsTemporalFilter", "Conformance: temporal filter requires minimum temporal filter.")
	if c.ImplementsResourceID() {
		v.mandatory(r, p.Field("idCapabilities"), "", "FilterCapabilities: resource identifiers are declared but not described.", obj.IDCapabilities())
	}
	scalar := obj.ScalarCapabilities()
	if c.ImplementsMinStandardFilter() {
		v.mandatory(r, p.Field("scalarCapabilities"), "", "FilterCapabilities: standard filter is declared but no scalar operator is listed.", scalar)
	}
	for i, op := range scalar {
		v.check(r, op.IsComparison() || op.IsLogical(), p.Field("scalarCapabilities").Index(i), geoconform.CodeUnexpectedType,
			"FilterCapabilities: scalar capabilities shall list comparison or logical operators.", "actual", op.Name())
	}
	spatial := obj.SpatialCapabilities()
	if c.ImplementsMinSpatialFilter() {
		hasBBox := false
		for _, op := range spatial {
			hasBBox = hasBBox || op == filter.OperatorBBox
		}
		v.check(r, hasBBox, p.Field("spatialCapabilities"), geoconform.CodeInconsistentValue,
			"FilterCapabilities: minimum spatial filter requires the BBOX operator.")
	}
	for i, op := range spatial {
		v.check(r, op.IsSpatial(), p.Field("spatialCapabilities").Index(i), geoconform.CodeUnexpectedType,
			"FilterCapabilities: spatial capabilities shall list spatial operators.", "actual", op.Name())
	}
	functions := obj.Functions()
	if c.ImplementsFunctions() {
		v.mandatory(r, p.Field("functions"), "", "FilterCapabilities: functions are declared but none is listed.", functions)
	}
	for name, n := range functions {
		v.check(r, name != "" && n >= 0, p.Field("functions").Field(name), geoconform.CodeInvalidName,
			"FilterCapabilities: functions shall have a name and a non-negative argument count.")
	}
}
