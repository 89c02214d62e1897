// Package referencing provides simple implementations of coordinate systems,
// datums and coordinate reference systems, and a factory creating them.
package referencing

import (
	"fmt"
	"strings"

	exmeta "github.com/geoapi/geoconform/example/metadata"
	exutil "github.com/geoapi/geoconform/example/util"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/util"
)

// Identified holds the identification common to every object of this
// package. It is embedded by the concrete types.
type Identified struct {
	name    metadata.Identifier
	aliases []util.GenericName
	ids     []metadata.Identifier
	remarks util.InternationalString
}

// NewIdentified decodes the identification properties. A name is required.
func NewIdentified(props referencing.Properties) (Identified, error) {
	var id Identified
	switch n := props[referencing.NameKey].(type) {
	case string:
		if n != "" {
			id.name = &exmeta.Identifier{Value: n}
		}
	case metadata.Identifier:
		id.name = n
	case nil:
	default:
		return id, fmt.Errorf("%w: unsupported name of type %T", crs.ErrFactory, n)
	}
	if id.name == nil {
		return id, fmt.Errorf("%w: missing %q property", crs.ErrFactory, referencing.NameKey)
	}
	switch a := props[referencing.AliasKey].(type) {
	case []util.GenericName:
		id.aliases = a
	case []string:
		for _, s := range a {
			id.aliases = append(id.aliases, exutil.NewName(exutil.Global, s))
		}
	case string:
		id.aliases = []util.GenericName{exutil.NewName(exutil.Global, a)}
	}
	switch ids := props[referencing.IdentifiersKey].(type) {
	case []metadata.Identifier:
		id.ids = ids
	case metadata.Identifier:
		id.ids = []metadata.Identifier{ids}
	case string:
		id.ids = []metadata.Identifier{parseIdentifier(ids)}
	}
	id.remarks = internationalString(props[referencing.RemarksKey])
	return id, nil
}

// parseIdentifier splits "EPSG:4326" at the first colon.
func parseIdentifier(s string) metadata.Identifier {
	if space, code, ok := strings.Cut(s, ":"); ok {
		return exmeta.NewIdentifier(space, code)
	}
	return &exmeta.Identifier{Value: s}
}

func internationalString(v any) util.InternationalString {
	switch s := v.(type) {
	case string:
		return exutil.OrNil(s)
	case util.InternationalString:
		return s
	}
	return nil
}

func (o *Identified) Name() metadata.Identifier          { return o.name }
func (o *Identified) Alias() []util.GenericName          { return o.aliases }
func (o *Identified) Identifiers() []metadata.Identifier { return o.ids }
func (o *Identified) Remarks() util.InternationalString  { return o.remarks }

// String returns the name code.
func (o *Identified) String() string {
	if o.name == nil {
		return ""
	}
	return o.name.Code()
}

// System adds the reference system attributes to Identified.
type System struct {
	Identified
	domain metadata.Extent
	scope  util.InternationalString
}

// NewSystem decodes the identification and reference system properties.
func NewSystem(props referencing.Properties) (System, error) {
	id, err := NewIdentified(props)
	if err != nil {
		return System{}, err
	}
	s := System{Identified: id, scope: internationalString(props[referencing.ScopeKey])}
	if e, ok := props[referencing.DomainOfValidityKey].(metadata.Extent); ok {
		s.domain = e
	}
	return s, nil
}

func (s *System) DomainOfValidity() metadata.Extent { return s.domain }
func (s *System) Scope() util.InternationalString   { return s.scope }
