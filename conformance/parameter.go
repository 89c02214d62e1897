package conformance

import (
	"context"
	"fmt"
	"math"
	"strings"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/parameter"
	"github.com/geoapi/geoconform/referencing"
)

// ParameterValidator validates parameter descriptors and values.
type ParameterValidator struct {
	ReferencingValidator
}

// NewParameterValidator creates a validator delegating other packages to c.
func NewParameterValidator(c *Container) *ParameterValidator {
	return &ParameterValidator{ReferencingValidator: newReferencingValidator(c, "geoapi.parameter")}
}

// Validate validates a parameter value or group of values.
func (v *ParameterValidator) Validate(ctx context.Context, obj parameter.GeneralValue) error {
	r := geoconform.NewReport(ctx)
	v.dispatchValue(r, geoconform.Root(), obj)
	return r.Err()
}

// ValidateDescriptor validates a parameter descriptor or group of descriptors.
func (v *ParameterValidator) ValidateDescriptor(ctx context.Context, obj parameter.GeneralDescriptor) error {
	r := geoconform.NewReport(ctx)
	v.dispatchDescriptor(r, geoconform.Root(), obj)
	return r.Err()
}

func nameOf(obj referencing.IdentifiedObject) string {
	if geoconform.IsNil(obj) || geoconform.IsNil(obj.Name()) {
		return ""
	}
	return obj.Name().Code()
}

func (v *ParameterValidator) dispatchDescriptor(r *geoconform.Report, p geoconform.PathRef, obj parameter.GeneralDescriptor) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	v.validateIdentifiedObject(r, p, obj)
	minOccurs, maxOccurs := obj.MinimumOccurs(), obj.MaximumOccurs()
	v.check(r, minOccurs >= 0, p.Field("minimumOccurs"), geoconform.CodeInvalidRange,
		"ParameterDescriptor: minimum occurrences shall not be negative.", "actual", minOccurs)
	v.check(r, maxOccurs >= minOccurs, p.Field("maximumOccurs"), geoconform.CodeInvalidRange,
		"ParameterDescriptor: maximum occurrences shall not be less than minimum occurrences.", "minimum", minOccurs, "maximum", maxOccurs)
	switch d := obj.(type) {
	case parameter.DescriptorGroup:
		v.validateDescriptorGroup(r, p, d)
	case parameter.Descriptor:
		v.validateDescriptor(r, p, d)
	}
}

func (v *ParameterValidator) validateDescriptorGroup(r *geoconform.Report, p geoconform.PathRef, g parameter.DescriptorGroup) {
	names := map[string]int{}
	for i, d := range g.Descriptors() {
		dp := p.Field("descriptors").Index(i)
		if !v.mandatory(r, dp, "", "ParameterDescriptorGroup: descriptors shall not be nil.", d) {
			continue
		}
		v.dispatchDescriptor(r, dp, d)
		name := strings.ToLower(nameOf(d))
		if j, dup := names[name]; dup && name != "" {
			v.fail(r, dp.Field("name"), geoconform.CodeInvalidName,
				fmt.Sprintf("ParameterDescriptorGroup: descriptors %d and %d have the same name %q.", j, i, nameOf(d)))
			continue
		}
		names[name] = i
		found, err := g.Descriptor(nameOf(d))
		v.check(r, err == nil && !geoconform.IsNil(found), dp.Field("name"), geoconform.CodeInconsistentValue,
			"ParameterDescriptorGroup: Descriptor(name) shall find every member.", "name", nameOf(d))
	}
}

func (v *ParameterValidator) validateDescriptor(r *geoconform.Report, p geoconform.PathRef, d parameter.Descriptor) {
	minimum, maximum := d.Range()
	v.checkRange(r, p.Field("range"), "ParameterDescriptor: expected maximum >= minimum.", minimum, maximum)
	if u := d.Unit(); !u.IsZero() {
		v.check(r, d.Kind() == parameter.KindFloat || d.Kind() == parameter.KindInt, p.Field("unit"), geoconform.CodeInconsistentValue,
			"ParameterDescriptor: only numeric parameters may have a unit.", "kind", d.Kind().String())
	}
	if def := d.DefaultValue(); def != nil {
		v.validateContent(r, p.Field("defaultValue"), d, def)
	}
	for i, valid := range d.ValidValues() {
		v.check(r, kindMatches(d.Kind(), valid), p.Field("validValues").Index(i), geoconform.CodeInconsistentValue,
			"ParameterDescriptor: valid value does not match the parameter kind.", "kind", d.Kind().String())
	}
}

// validateContent checks a raw value against the descriptor kind, range
// and valid values.
func (v *ParameterValidator) validateContent(r *geoconform.Report, p geoconform.PathRef, d parameter.Descriptor, value any) {
	if !v.check(r, kindMatches(d.Kind(), value), p, geoconform.CodeInconsistentValue,
		fmt.Sprintf("ParameterValue: value of type %T does not match kind %s.", value, d.Kind()), "kind", d.Kind().String()) {
		return
	}
	if f, ok := toFloat(value); ok {
		minimum, maximum := d.Range()
		v.checkBetween(r, p, geoconform.CodeInvalidRange, "ParameterValue: value out of range.", minimum, maximum, f)
	}
	if valid := d.ValidValues(); len(valid) > 0 {
		found := false
		for _, c := range valid {
			if c == value {
				found = true
				break
			}
		}
		v.check(r, found, p, geoconform.CodeInvalidRange, "ParameterValue: value is not one of the valid values.", "actual", value)
	}
}

func kindMatches(k parameter.Kind, value any) bool {
	switch value.(type) {
	case float64, float32:
		return k == parameter.KindFloat
	case int, int32, int64:
		return k == parameter.KindInt || k == parameter.KindFloat
	case string:
		return k == parameter.KindString
	case bool:
		return k == parameter.KindBool
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return math.NaN(), false
}

func (v *ParameterValidator) dispatchValue(r *geoconform.Report, p geoconform.PathRef, obj parameter.GeneralValue) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	switch val := obj.(type) {
	case parameter.ValueGroup:
		v.validateValueGroup(r, p, val)
	case parameter.Value:
		v.validateValue(r, p, val)
	default:
		v.dispatchDescriptor(r, p.Field("descriptor"), obj.GeneralDescriptor())
	}
}

func (v *ParameterValidator) validateValue(r *geoconform.Report, p geoconform.PathRef, val parameter.Value) {
	d := val.Descriptor()
	if !v.mandatory(r, p.Field("descriptor"), "CC_GeneralParameterValue.parameter", "ParameterValue: shall have a descriptor.", d) {
		return
	}
	v.dispatchDescriptor(r, p.Field("descriptor"), d)
	value := val.Value()
	if d.MinimumOccurs() > 0 && d.DefaultValue() == nil {
		v.mandatory(r, p.Field("value"), "CC_ParameterValue.value", "ParameterValue: a mandatory parameter shall have a value.", value)
	}
	if value == nil {
		return
	}
	v.validateContent(r, p.Field("value"), d, value)
	if du, vu := d.Unit(), val.Unit(); !du.IsZero() && !vu.IsZero() {
		v.check(r, du.IsCompatible(vu), p.Field("unit"), geoconform.CodeInconsistentValue,
			"ParameterValue: unit shall be compatible with the descriptor unit.", "expected", du.String(), "actual", vu.String())
	}
}

func (v *ParameterValidator) validateValueGroup(r *geoconform.Report, p geoconform.PathRef, g parameter.ValueGroup) {
	d := g.Descriptor()
	if !v.mandatory(r, p.Field("descriptor"), "CC_GeneralParameterValue.parameter", "ParameterValueGroup: shall have a descriptor.", d) {
		return
	}
	v.dispatchDescriptor(r, p.Field("descriptor"), d)
	counts := map[string]int{}
	for i, val := range g.Values() {
		vp := p.Field("values").Index(i)
		if !v.mandatory(r, vp, "", "ParameterValueGroup: values shall not be nil.", val) {
			continue
		}
		v.dispatchValue(r, vp, val)
		gd := val.GeneralDescriptor()
		if geoconform.IsNil(gd) {
			continue
		}
		name := nameOf(gd)
		if _, err := d.Descriptor(name); err != nil {
			v.fail(r, vp, geoconform.CodeInconsistentValue, "ParameterValueGroup: value "+name+" is not declared by the group descriptor.", "name", name)
			continue
		}
		counts[strings.ToLower(name)]++
	}
	for _, member := range d.Descriptors() {
		if geoconform.IsNil(member) {
			continue
		}
		name := nameOf(member)
		n := counts[strings.ToLower(name)]
		// Members with a default value may be created on demand.
		minOccurs := member.MinimumOccurs()
		if pd, ok := member.(parameter.Descriptor); ok && pd.DefaultValue() != nil {
			minOccurs = 0
		}
		v.check(r, n >= minOccurs && n <= member.MaximumOccurs(), p.Field("values"), geoconform.CodeInvalidDimension,
			fmt.Sprintf("ParameterValueGroup: %q occurs %d times, expected %d to %d.", name, n, minOccurs, member.MaximumOccurs()),
			"name", name, "actual", n)
	}
}
