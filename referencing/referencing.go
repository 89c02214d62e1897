// Package referencing declares the ISO 19111 base interfaces shared by
// coordinate systems, datums, coordinate reference systems and operations.
package referencing

import (
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/util"
)

// Keys of the Properties map given to factories.
const (
	NameKey             = "name"
	AliasKey            = "alias"
	IdentifiersKey      = "identifiers"
	RemarksKey          = "remarks"
	DomainOfValidityKey = "domainOfValidity"
	ScopeKey            = "scope"
)

// Properties carries the identification of an object given to factories.
// NameKey holds a string or metadata.Identifier, AliasKey a []util.GenericName
// or []string, IdentifiersKey a []metadata.Identifier, RemarksKey a string or
// util.InternationalString.
type Properties map[string]any

// Named returns Properties holding only a name.
func Named(name string) Properties { return Properties{NameKey: name} }

// IdentifiedObject is identification information common to referencing objects.
type IdentifiedObject interface {
	// Name is the primary name by which the object is identified.
	Name() metadata.Identifier
	Alias() []util.GenericName
	Identifiers() []metadata.Identifier
	Remarks() util.InternationalString
}

// ReferenceSystem is the description of a spatial or temporal reference system.
type ReferenceSystem interface {
	IdentifiedObject
	DomainOfValidity() metadata.Extent
	Scope() util.InternationalString
}
