package conformance

import (
	"context"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/util"
)

// NameValidator validates names, name spaces, international strings and
// code list values (ISO 19103).
type NameValidator struct {
	Validator
}

// NewNameValidator creates a validator delegating other packages to c.
func NewNameValidator(c *Container) *NameValidator {
	return &NameValidator{Validator: newValidator(c, "geoapi.util")}
}

// Validate validates a generic name.
func (v *NameValidator) Validate(ctx context.Context, name util.GenericName) error {
	r := geoconform.NewReport(ctx)
	v.validateName(r, geoconform.Root(), name)
	return r.Err()
}

func (v *NameValidator) validateName(r *geoconform.Report, p geoconform.PathRef, name util.GenericName) {
	if geoconform.IsNil(name) || r.Done() {
		return
	}
	if scope := name.Scope(); v.mandatory(r, p.Field("scope"), "GenericName.scope", "GenericName: shall have a scope.", scope) {
		v.validateNameSpace(r, p.Field("scope"), scope)
	}
	v.check(r, name.String() != "", p, geoconform.CodeInvalidName, "GenericName: string representation shall not be empty.")
	parsed := name.ParsedNames()
	if !v.mandatory(r, p.Field("parsedNames"), "GenericName.parsedName", "GenericName: shall have at least one parsed name.", parsed) {
		return
	}
	depth := name.Depth()
	v.checkEqualInt(r, p.Field("depth"), geoconform.CodeInconsistentValue, "GenericName: depth shall be the number of parsed names.", len(parsed), depth)
	for i, local := range parsed {
		lp := p.Field("parsedNames").Index(i)
		if !v.mandatory(r, lp, "GenericName.parsedName", "GenericName: parsed names shall not be nil.", local) {
			continue
		}
		v.checkEqualInt(r, lp.Field("depth"), geoconform.CodeInconsistentValue, "GenericName: parsed names shall be local names.", 1, local.Depth())
		v.check(r, local.String() != "", lp, geoconform.CodeInvalidName, "GenericName: parsed names shall not be empty.")
	}
	first, last := parsed[0], parsed[len(parsed)-1]
	if head := name.Head(); v.mandatory(r, p.Field("head"), "GenericName.parsedName", "GenericName: shall have a head.", head) && !geoconform.IsNil(first) {
		v.check(r, head.String() == first.String(), p.Field("head"), geoconform.CodeInconsistentValue,
			"GenericName: head shall be the first parsed name.", "expected", first.String(), "actual", head.String())
	}
	if tip := name.Tip(); v.mandatory(r, p.Field("tip"), "GenericName.parsedName", "GenericName: shall have a tip.", tip) && !geoconform.IsNil(last) {
		v.check(r, tip.String() == last.String(), p.Field("tip"), geoconform.CodeInconsistentValue,
			"GenericName: tip shall be the last parsed name.", "expected", last.String(), "actual", tip.String())
	}
	if s := name.ToInternationalString(); !geoconform.IsNil(s) {
		v.validateInternationalString(r, p.Field("toInternationalString"), s)
	}
	if scoped, ok := name.(util.ScopedName); ok {
		v.check(r, depth >= 2, p.Field("depth"), geoconform.CodeInconsistentValue, "ScopedName: depth shall be at least 2.", "actual", depth)
		if path := scoped.Path(); v.mandatory(r, p.Field("path"), "GenericName.parsedName", "ScopedName: shall have a path.", path) {
			v.checkEqualInt(r, p.Field("path").Field("depth"), geoconform.CodeInconsistentValue, "ScopedName: path shall exclude the tip.", depth-1, path.Depth())
		}
		if tail := scoped.Tail(); v.mandatory(r, p.Field("tail"), "GenericName.parsedName", "ScopedName: shall have a tail.", tail) {
			v.checkEqualInt(r, p.Field("tail").Field("depth"), geoconform.CodeInconsistentValue, "ScopedName: tail shall exclude the head.", depth-1, tail.Depth())
		}
	}
}

func (v *NameValidator) validateNameSpace(r *geoconform.Report, p geoconform.PathRef, ns util.NameSpace) {
	if geoconform.IsNil(ns) || ns.IsGlobal() {
		return
	}
	name := ns.Name()
	if v.mandatory(r, p.Field("name"), "", "NameSpace: a non-global name space shall have a name.", name) {
		v.validateName(r, p.Field("name"), name)
	}
}

func (v *NameValidator) validateInternationalString(r *geoconform.Report, p geoconform.PathRef, s util.InternationalString) {
	if geoconform.IsNil(s) {
		return
	}
	def := s.String()
	v.check(r, s.Localized("") == def, p, geoconform.CodeInconsistentValue,
		"InternationalString: text for the default locale shall be the same as String().",
		"expected", def, "actual", s.Localized(""))
}

func (v *NameValidator) validateCodeList(r *geoconform.Report, p geoconform.PathRef, code util.CodeList) {
	if geoconform.IsNil(code) {
		return
	}
	name := code.Name()
	v.check(r, name != "", p.Field("name"), geoconform.CodeInvalidCodeList, "CodeList: shall have a name.")
	ordinal := code.Ordinal()
	if !v.check(r, ordinal >= 0, p.Field("ordinal"), geoconform.CodeInvalidCodeList, "CodeList: ordinal shall not be negative.", "actual", ordinal) {
		return
	}
	f, ok := code.(interface{ Family() []util.CodeList })
	if !ok {
		return
	}
	family := f.Family()
	if !v.check(r, ordinal < len(family), p.Field("ordinal"), geoconform.CodeInvalidCodeList,
		"CodeList: ordinal shall be an index in the family of values.", "actual", ordinal, "size", len(family)) {
		return
	}
	v.check(r, family[ordinal].Name() == name, p.Field("name"), geoconform.CodeInvalidCodeList,
		"CodeList: value at the ordinal position shall have the same name.", "expected", name, "actual", family[ordinal].Name())
}
