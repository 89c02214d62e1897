// Package metadata declares the ISO 19115 interfaces describing geographic
// datasets: citations, responsible parties, identification and extents.
package metadata

import (
	"time"

	"github.com/geoapi/geoconform/util"
)

// Identifier is a value uniquely identifying an object within a namespace
// (MD_Identifier).
type Identifier interface {
	// Code is the alphanumeric value identifying an instance in the namespace.
	Code() string
	// CodeSpace is the namespace, e.g. "EPSG". Optional.
	CodeSpace() string
	// Version of the code space. Optional.
	Version() string
	// Authority is the organization responsible for the code. Optional.
	Authority() Citation
}

// Citation is a standardized resource reference (CI_Citation).
type Citation interface {
	Title() util.InternationalString
	AlternateTitles() []util.InternationalString
	Dates() []CitationDate
	Edition() util.InternationalString
	Identifiers() []Identifier
	CitedResponsibleParties() []Responsibility
}

// CitationDate is a reference date and the event used to describe it (CI_Date).
type CitationDate interface {
	Date() time.Time
	DateType() DateType
}

// Responsibility identifies a party and its role (CI_Responsibility,
// CI_ResponsibleParty in the 2003 edition).
type Responsibility interface {
	Role() Role
	IndividualName() string
	OrganisationName() util.InternationalString
	PositionName() util.InternationalString
	ContactInfo() Contact
}

// Contact is the information required to enable contact with a party.
type Contact interface {
	Phone() string
	Address() Address
	OnlineResource() OnlineResource
}

// Address is the location of a party.
type Address interface {
	DeliveryPoints() []string
	City() util.InternationalString
	PostalCode() string
	Country() util.InternationalString
	ElectronicMailAddresses() []string
}

// OnlineResource is an online location (CI_OnlineResource).
type OnlineResource interface {
	Linkage() string // URI
	Protocol() string
	Name() string
}

// Keywords groups keywords from a thesaurus (MD_Keywords).
type Keywords interface {
	Keywords() []util.InternationalString
	ThesaurusName() Citation
}

// Identification is the basic information required to identify a resource
// (MD_Identification).
type Identification interface {
	Citation() Citation
	Abstract() util.InternationalString
	Purpose() util.InternationalString
	PointOfContacts() []Responsibility
	DescriptiveKeywords() []Keywords
	SpatialRepresentationTypes() []SpatialRepresentationType
	Extents() []Extent
}

// DataIdentification identifies a dataset (MD_DataIdentification).
type DataIdentification interface {
	Identification
	Languages() []string
	TopicCategories() []TopicCategory
}

// Extent is the spatial and temporal extent of a resource (EX_Extent).
type Extent interface {
	Description() util.InternationalString
	GeographicElements() []GeographicExtent
	VerticalElements() []VerticalExtent
	TemporalElements() []TemporalExtent
}

// GeographicExtent is the base of geographic areas (EX_GeographicExtent).
type GeographicExtent interface {
	// InclusionPresent tells whether the bounding area encompasses (true) or
	// excludes (false) the resource. Nil when unspecified.
	InclusionPresent() *bool
}

// GeographicBoundingBox is a geographic area expressed in decimal degrees
// (EX_GeographicBoundingBox). West may be greater than east when the box
// crosses the anti-meridian.
type GeographicBoundingBox interface {
	GeographicExtent
	WestBoundLongitude() float64
	EastBoundLongitude() float64
	SouthBoundLatitude() float64
	NorthBoundLatitude() float64
}

// GeographicDescription is an area identified by a code (EX_GeographicDescription).
type GeographicDescription interface {
	GeographicExtent
	GeographicIdentifier() Identifier
}

// VerticalExtent is a vertical domain (EX_VerticalExtent).
type VerticalExtent interface {
	MinimumValue() float64
	MaximumValue() float64
}

// TemporalExtent is a time period (EX_TemporalExtent).
type TemporalExtent interface {
	// Extent returns the period bounds. A zero end means an instant.
	Extent() (begin, end time.Time)
}

// Metadata is the root of a metadata record (MD_Metadata).
type Metadata interface {
	FileIdentifier() string
	Language() string
	Contacts() []Responsibility
	DateStamp() time.Time
	MetadataStandardName() string
	IdentificationInfo() []Identification
}
