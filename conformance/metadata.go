package conformance

import (
	"context"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/util"
)

// MetadataValidator validates the root of metadata records. Citations,
// extents and identification are delegated to the container.
type MetadataValidator struct {
	Validator
}

// NewMetadataValidator creates a validator delegating other packages to c.
func NewMetadataValidator(c *Container) *MetadataValidator {
	return &MetadataValidator{Validator: newValidator(c, "geoapi.metadata")}
}

// Validate validates a metadata record and every nested element.
func (v *MetadataValidator) Validate(ctx context.Context, obj metadata.Metadata) error {
	r := geoconform.NewReport(ctx)
	v.validateMetadata(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *MetadataValidator) validateMetadata(r *geoconform.Report, p geoconform.PathRef, obj metadata.Metadata) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	contacts := obj.Contacts()
	if v.mandatory(r, p.Field("contacts"), "MD_Metadata.contact", "Metadata: shall have at least one contact.", contacts) {
		for i, c := range contacts {
			v.container.Citation.validateResponsibility(r, p.Field("contacts").Index(i), c)
		}
	}
	v.mandatory(r, p.Field("dateStamp"), "MD_Metadata.dateStamp", "Metadata: shall have a date stamp.", obj.DateStamp())
	infos := obj.IdentificationInfo()
	if v.mandatory(r, p.Field("identificationInfo"), "MD_Metadata.identificationInfo", "Metadata: shall have identification information.", infos) {
		for i, info := range infos {
			v.container.Identification.dispatch(r, p.Field("identificationInfo").Index(i), info)
		}
	}
}

// CitationValidator validates citations, responsible parties and identifiers.
type CitationValidator struct {
	Validator
}

// NewCitationValidator creates a validator delegating other packages to c.
func NewCitationValidator(c *Container) *CitationValidator {
	return &CitationValidator{Validator: newValidator(c, "geoapi.metadata.citation")}
}

// Validate validates a citation.
func (v *CitationValidator) Validate(ctx context.Context, obj metadata.Citation) error {
	r := geoconform.NewReport(ctx)
	v.validateCitation(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *CitationValidator) validateCitation(r *geoconform.Report, p geoconform.PathRef, obj metadata.Citation) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	if title := obj.Title(); v.mandatory(r, p.Field("title"), "CI_Citation.title", "Citation: shall have a title.", title) {
		v.container.Naming.validateInternationalString(r, p.Field("title"), title)
	}
	for i, t := range obj.AlternateTitles() {
		v.container.Naming.validateInternationalString(r, p.Field("alternateTitles").Index(i), t)
	}
	for i, d := range obj.Dates() {
		dp := p.Field("dates").Index(i)
		if !v.mandatory(r, dp, "", "Citation: dates shall not be nil.", d) {
			continue
		}
		v.mandatory(r, dp.Field("date"), "CI_Date.date", "CitationDate: shall have a date.", d.Date())
		v.container.Naming.validateCodeList(r, dp.Field("dateType"), d.DateType())
	}
	ids := obj.Identifiers()
	for i, id := range ids {
		v.validateIdentifier(r, p.Field("identifiers").Index(i), id)
	}
	v.validateCollection(r, p.Field("identifiers"), anySlice(ids))
	for i, party := range obj.CitedResponsibleParties() {
		v.validateResponsibility(r, p.Field("citedResponsibleParties").Index(i), party)
	}
}

func (v *CitationValidator) validateIdentifier(r *geoconform.Report, p geoconform.PathRef, id metadata.Identifier) {
	if geoconform.IsNil(id) {
		return
	}
	v.mandatory(r, p.Field("code"), "MD_Identifier.code", "Identifier: shall have a code.", id.Code())
	if auth := id.Authority(); !geoconform.IsNil(auth) {
		v.validateCitation(r, p.Field("authority"), auth)
	}
}

// ValidateResponsibility validates a responsible party.
func (v *CitationValidator) ValidateResponsibility(ctx context.Context, obj metadata.Responsibility) error {
	r := geoconform.NewReport(ctx)
	v.validateResponsibility(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *CitationValidator) validateResponsibility(r *geoconform.Report, p geoconform.PathRef, obj metadata.Responsibility) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	v.container.Naming.validateCodeList(r, p.Field("role"), obj.Role())
	var party any
	switch {
	case obj.IndividualName() != "":
		party = obj.IndividualName()
	case !geoconform.IsNil(obj.OrganisationName()) && obj.OrganisationName().String() != "":
		party = obj.OrganisationName()
	case !geoconform.IsNil(obj.PositionName()) && obj.PositionName().String() != "":
		party = obj.PositionName()
	}
	v.mandatory(r, p.Field("party"), "CI_Responsibility.party", "Responsibility: shall have an individual, organisation or position name.", party)
	v.container.Naming.validateInternationalString(r, p.Field("organisationName"), obj.OrganisationName())
	v.container.Naming.validateInternationalString(r, p.Field("positionName"), obj.PositionName())
	contact := obj.ContactInfo()
	if geoconform.IsNil(contact) {
		return
	}
	cp := p.Field("contactInfo")
	if res := contact.OnlineResource(); !geoconform.IsNil(res) {
		v.mandatory(r, cp.Field("onlineResource").Field("linkage"), "CI_OnlineResource.linkage", "OnlineResource: shall have a linkage.", res.Linkage())
	}
	if addr := contact.Address(); !geoconform.IsNil(addr) {
		v.container.Naming.validateInternationalString(r, cp.Field("address").Field("city"), addr.City())
		v.container.Naming.validateInternationalString(r, cp.Field("address").Field("country"), addr.Country())
	}
}

// ExtentValidator validates spatial and temporal extents.
type ExtentValidator struct {
	Validator
}

// NewExtentValidator creates a validator delegating other packages to c.
func NewExtentValidator(c *Container) *ExtentValidator {
	return &ExtentValidator{Validator: newValidator(c, "geoapi.metadata.extent")}
}

// Validate validates an extent.
func (v *ExtentValidator) Validate(ctx context.Context, obj metadata.Extent) error {
	r := geoconform.NewReport(ctx)
	v.validateExtent(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *ExtentValidator) validateExtent(r *geoconform.Report, p geoconform.PathRef, obj metadata.Extent) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	geographic, vertical, temporal := obj.GeographicElements(), obj.VerticalElements(), obj.TemporalElements()
	var elements []any
	if d := nonEmpty(obj.Description()); d != nil {
		elements = append(elements, d)
	}
	elements = append(elements, anySlice(geographic)...)
	elements = append(elements, anySlice(vertical)...)
	elements = append(elements, anySlice(temporal)...)
	v.mandatory(r, p, "EX_Extent.geographicElement", "Extent: shall have at least one description, geographic, vertical or temporal element.", elements)
	v.container.Naming.validateInternationalString(r, p.Field("description"), obj.Description())
	for i, g := range geographic {
		v.validateGeographic(r, p.Field("geographicElements").Index(i), g)
	}
	for i, e := range vertical {
		if geoconform.IsNil(e) {
			continue
		}
		v.checkRange(r, p.Field("verticalElements").Index(i), "VerticalExtent: expected maximum >= minimum.", e.MinimumValue(), e.MaximumValue())
	}
	for i, e := range temporal {
		if geoconform.IsNil(e) {
			continue
		}
		tp := p.Field("temporalElements").Index(i)
		begin, end := e.Extent()
		if v.mandatory(r, tp.Field("extent"), "EX_TemporalExtent.extent", "TemporalExtent: shall have a beginning.", begin) && !end.IsZero() {
			v.check(r, !end.Before(begin), tp.Field("extent"), geoconform.CodeInvalidRange,
				"TemporalExtent: end shall not be before beginning.", "begin", begin, "end", end)
		}
	}
}

// ValidateGeographic validates a geographic extent.
func (v *ExtentValidator) ValidateGeographic(ctx context.Context, obj metadata.GeographicExtent) error {
	r := geoconform.NewReport(ctx)
	v.validateGeographic(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *ExtentValidator) validateGeographic(r *geoconform.Report, p geoconform.PathRef, obj metadata.GeographicExtent) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	switch g := obj.(type) {
	case metadata.GeographicBoundingBox:
		west, east := g.WestBoundLongitude(), g.EastBoundLongitude()
		south, north := g.SouthBoundLatitude(), g.NorthBoundLatitude()
		v.checkBetween(r, p.Field("westBoundLongitude"), geoconform.CodeInvalidRange, "GeographicBoundingBox: illegal west bound.", -180, 180, west)
		v.checkBetween(r, p.Field("eastBoundLongitude"), geoconform.CodeInvalidRange, "GeographicBoundingBox: illegal east bound.", -180, 180, east)
		v.checkBetween(r, p.Field("southBoundLatitude"), geoconform.CodeInvalidRange, "GeographicBoundingBox: illegal south bound.", -90, 90, south)
		v.checkBetween(r, p.Field("northBoundLatitude"), geoconform.CodeInvalidRange, "GeographicBoundingBox: illegal north bound.", -90, 90, north)
		// West may exceed east when the box spans the anti-meridian.
		v.check(r, !(south > north), p, geoconform.CodeInvalidRange,
			"GeographicBoundingBox: invalid latitude range.", "south", south, "north", north)
	case metadata.GeographicDescription:
		id := g.GeographicIdentifier()
		if v.mandatory(r, p.Field("geographicIdentifier"), "EX_GeographicDescription.geographicIdentifier",
			"GeographicDescription: shall have a geographic identifier.", id) {
			v.container.Citation.validateIdentifier(r, p.Field("geographicIdentifier"), id)
		}
	}
}

// IdentificationValidator validates resource identification.
type IdentificationValidator struct {
	Validator
}

// NewIdentificationValidator creates a validator delegating other packages to c.
func NewIdentificationValidator(c *Container) *IdentificationValidator {
	return &IdentificationValidator{Validator: newValidator(c, "geoapi.metadata.identification")}
}

// Validate validates an identification and its nested elements.
func (v *IdentificationValidator) Validate(ctx context.Context, obj metadata.Identification) error {
	r := geoconform.NewReport(ctx)
	v.dispatch(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *IdentificationValidator) dispatch(r *geoconform.Report, p geoconform.PathRef, obj metadata.Identification) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	if c := obj.Citation(); v.mandatory(r, p.Field("citation"), "MD_Identification.citation", "Identification: shall have a citation.", c) {
		v.container.Citation.validateCitation(r, p.Field("citation"), c)
	}
	abstract := obj.Abstract()
	if v.mandatory(r, p.Field("abstract"), "MD_Identification.abstract", "Identification: shall have an abstract.", nonEmpty(abstract)) {
		v.container.Naming.validateInternationalString(r, p.Field("abstract"), abstract)
	}
	v.container.Naming.validateInternationalString(r, p.Field("purpose"), obj.Purpose())
	for i, c := range obj.PointOfContacts() {
		v.container.Citation.validateResponsibility(r, p.Field("pointOfContacts").Index(i), c)
	}
	for i, k := range obj.DescriptiveKeywords() {
		kp := p.Field("descriptiveKeywords").Index(i)
		if geoconform.IsNil(k) {
			continue
		}
		keywords := k.Keywords()
		v.mandatory(r, kp.Field("keywords"), "MD_Keywords.keyword", "Keywords: shall have at least one keyword.", keywords)
		for j, kw := range keywords {
			v.container.Naming.validateInternationalString(r, kp.Field("keywords").Index(j), kw)
		}
		v.container.Citation.validateCitation(r, kp.Field("thesaurusName"), k.ThesaurusName())
	}
	for i, t := range obj.SpatialRepresentationTypes() {
		v.container.Naming.validateCodeList(r, p.Field("spatialRepresentationTypes").Index(i), t)
	}
	for i, e := range obj.Extents() {
		v.container.Extent.validateExtent(r, p.Field("extents").Index(i), e)
	}
	if data, ok := obj.(metadata.DataIdentification); ok {
		v.mandatory(r, p.Field("languages"), "MD_DataIdentification.language", "DataIdentification: shall have at least one language.", data.Languages())
		for i, t := range data.TopicCategories() {
			v.container.Naming.validateCodeList(r, p.Field("topicCategories").Index(i), t)
		}
	}
}

// nonEmpty returns nil for absent or blank international strings.
func nonEmpty(s util.InternationalString) util.InternationalString {
	if geoconform.IsNil(s) || s.String() == "" {
		return nil
	}
	return s
}
