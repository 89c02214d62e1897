package conformance

import (
	"context"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/referencing"
)

// ReferencingValidator holds the checks shared by every ISO 19111 object:
// name, aliases, identifiers and remarks.
type ReferencingValidator struct {
	Validator
}

func newReferencingValidator(c *Container, name string) ReferencingValidator {
	return ReferencingValidator{Validator: newValidator(c, name)}
}

// ValidateIdentifiedObject validates only the identification of obj.
func (v *ReferencingValidator) ValidateIdentifiedObject(ctx context.Context, obj referencing.IdentifiedObject) error {
	r := geoconform.NewReport(ctx)
	v.validateIdentifiedObject(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *ReferencingValidator) validateIdentifiedObject(r *geoconform.Report, p geoconform.PathRef, obj referencing.IdentifiedObject) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	if name := obj.Name(); v.mandatory(r, p.Field("name"), "IO_IdentifiedObject.name", "IdentifiedObject: shall have a name.", name) {
		v.validateIdentifier(r, p.Field("name"), name)
	}
	ids := obj.Identifiers()
	for i, id := range ids {
		v.validateIdentifier(r, p.Field("identifiers").Index(i), id)
	}
	v.validateCollection(r, p.Field("identifiers"), anySlice(ids))
	aliases := obj.Alias()
	for i, alias := range aliases {
		v.container.Naming.validateName(r, p.Field("alias").Index(i), alias)
	}
	v.validateCollection(r, p.Field("alias"), anySlice(aliases))
	v.container.Naming.validateInternationalString(r, p.Field("remarks"), obj.Remarks())
}

func (v *ReferencingValidator) validateIdentifier(r *geoconform.Report, p geoconform.PathRef, id metadata.Identifier) {
	if geoconform.IsNil(id) {
		return
	}
	v.mandatory(r, p.Field("code"), "RS_Identifier.code", "Identifier: shall have a code.", id.Code())
	v.container.Citation.validateCitation(r, p.Field("authority"), id.Authority())
}
