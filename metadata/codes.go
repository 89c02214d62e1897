package metadata

import "strings"

// Role is the function performed by a responsible party (CI_RoleCode).
type Role int

const (
	RoleResourceProvider Role = iota
	RoleCustodian
	RoleOwner
	RoleUser
	RoleDistributor
	RoleOriginator
	RolePointOfContact
	RolePrincipalInvestigator
	RoleProcessor
	RolePublisher
	RoleAuthor
)

var roleCodes = []struct{ name, id string }{
	{"RESOURCE_PROVIDER", "resourceProvider"},
	{"CUSTODIAN", "custodian"},
	{"OWNER", "owner"},
	{"USER", "user"},
	{"DISTRIBUTOR", "distributor"},
	{"ORIGINATOR", "originator"},
	{"POINT_OF_CONTACT", "pointOfContact"},
	{"PRINCIPAL_INVESTIGATOR", "principalInvestigator"},
	{"PROCESSOR", "processor"},
	{"PUBLISHER", "publisher"},
	{"AUTHOR", "author"},
}

func (r Role) Ordinal() int { return int(r) }

func (r Role) Name() string {
	if r < 0 || int(r) >= len(roleCodes) {
		return ""
	}
	return roleCodes[r].name
}

func (r Role) Identifier() string {
	if r < 0 || int(r) >= len(roleCodes) {
		return ""
	}
	return roleCodes[r].id
}

func (r Role) String() string { return r.Identifier() }

// Roles returns every Role in ordinal order.
func Roles() []Role {
	out := make([]Role, len(roleCodes))
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

// RoleOf finds a role by name or identifier, case-insensitively.
func RoleOf(s string) (Role, bool) {
	for i, c := range roleCodes {
		if strings.EqualFold(s, c.name) || strings.EqualFold(s, c.id) {
			return Role(i), true
		}
	}
	return 0, false
}

// DateType identifies the event a citation date refers to (CI_DateTypeCode).
type DateType int

const (
	DateCreation DateType = iota
	DatePublication
	DateRevision
)

var dateTypeCodes = []struct{ name, id string }{
	{"CREATION", "creation"},
	{"PUBLICATION", "publication"},
	{"REVISION", "revision"},
}

func (d DateType) Ordinal() int { return int(d) }

func (d DateType) Name() string {
	if d < 0 || int(d) >= len(dateTypeCodes) {
		return ""
	}
	return dateTypeCodes[d].name
}

func (d DateType) Identifier() string {
	if d < 0 || int(d) >= len(dateTypeCodes) {
		return ""
	}
	return dateTypeCodes[d].id
}

func (d DateType) String() string { return d.Identifier() }

// DateTypes returns every DateType in ordinal order.
func DateTypes() []DateType { return []DateType{DateCreation, DatePublication, DateRevision} }

// SpatialRepresentationType is the method used to represent geographic
// information in a dataset (MD_SpatialRepresentationTypeCode).
type SpatialRepresentationType int

const (
	RepresentationVector SpatialRepresentationType = iota
	RepresentationGrid
	RepresentationTextTable
	RepresentationTIN
	RepresentationStereoModel
	RepresentationVideo
)

var representationCodes = []struct{ name, id string }{
	{"VECTOR", "vector"},
	{"GRID", "grid"},
	{"TEXT_TABLE", "textTable"},
	{"TIN", "tin"},
	{"STEREO_MODEL", "stereoModel"},
	{"VIDEO", "video"},
}

func (s SpatialRepresentationType) Ordinal() int { return int(s) }

func (s SpatialRepresentationType) Name() string {
	if s < 0 || int(s) >= len(representationCodes) {
		return ""
	}
	return representationCodes[s].name
}

func (s SpatialRepresentationType) Identifier() string {
	if s < 0 || int(s) >= len(representationCodes) {
		return ""
	}
	return representationCodes[s].id
}

func (s SpatialRepresentationType) String() string { return s.Identifier() }

// SpatialRepresentationTypeOf finds a representation type by name or identifier.
func SpatialRepresentationTypeOf(v string) (SpatialRepresentationType, bool) {
	for i, c := range representationCodes {
		if strings.EqualFold(v, c.name) || strings.EqualFold(v, c.id) {
			return SpatialRepresentationType(i), true
		}
	}
	return 0, false
}

// TopicCategory is a high-level classification of a dataset
// (MD_TopicCategoryCode). Only the subset used by the bundled datasets is declared.
type TopicCategory int

const (
	TopicFarming TopicCategory = iota
	TopicBiota
	TopicBoundaries
	TopicClimatologyMeteorologyAtmosphere
	TopicElevation
	TopicEnvironment
	TopicImageryBaseMapsEarthCover
	TopicOceans
)

var topicCodes = []struct{ name, id string }{
	{"FARMING", "farming"},
	{"BIOTA", "biota"},
	{"BOUNDARIES", "boundaries"},
	{"CLIMATOLOGY_METEOROLOGY_ATMOSPHERE", "climatologyMeteorologyAtmosphere"},
	{"ELEVATION", "elevation"},
	{"ENVIRONMENT", "environment"},
	{"IMAGERY_BASE_MAPS_EARTH_COVER", "imageryBaseMapsEarthCover"},
	{"OCEANS", "oceans"},
}

func (t TopicCategory) Ordinal() int { return int(t) }

func (t TopicCategory) Name() string {
	if t < 0 || int(t) >= len(topicCodes) {
		return ""
	}
	return topicCodes[t].name
}

func (t TopicCategory) Identifier() string {
	if t < 0 || int(t) >= len(topicCodes) {
		return ""
	}
	return topicCodes[t].id
}

func (t TopicCategory) String() string { return t.Identifier() }

// TopicCategoryOf finds a topic category by name or identifier.
func TopicCategoryOf(v string) (TopicCategory, bool) {
	for i, c := range topicCodes {
		if strings.EqualFold(v, c.name) || strings.EqualFold(v, c.id) {
			return TopicCategory(i), true
		}
	}
	return 0, false
}
