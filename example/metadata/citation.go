// Package metadata provides plain struct implementations of the ISO 19115
// interfaces. Fields are exported so records can be built with composite
// literals; accessor methods implement the interfaces.
package metadata

import (
	"time"

	exutil "github.com/geoapi/geoconform/example/util"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/util"
)

// Identifier is a code in a code space.
type Identifier struct {
	Value    string
	Space    string
	Revision string
	Issuer   metadata.Citation
}

// NewIdentifier creates an identifier whose authority is cited by the code
// space name.
func NewIdentifier(codeSpace, code string) *Identifier {
	id := &Identifier{Value: code, Space: codeSpace}
	if codeSpace != "" {
		id.Issuer = &Citation{Heading: exutil.Text(codeSpace)}
	}
	return id
}

func (id *Identifier) Code() string                 { return id.Value }
func (id *Identifier) CodeSpace() string            { return id.Space }
func (id *Identifier) Version() string              { return id.Revision }
func (id *Identifier) Authority() metadata.Citation { return id.Issuer }

func (id *Identifier) String() string {
	if id.Space == "" {
		return id.Value
	}
	return id.Space + ":" + id.Value
}

// Equal compares code space, code and version.
func (id *Identifier) Equal(other any) bool {
	o, ok := other.(*Identifier)
	return ok && o != nil && id.Value == o.Value && id.Space == o.Space && id.Revision == o.Revision
}

// Citation is a standardized resource reference.
type Citation struct {
	Heading    util.InternationalString
	Alternates []util.InternationalString
	When       []metadata.CitationDate
	EditionOf  util.InternationalString
	IDs        []metadata.Identifier
	Parties    []metadata.Responsibility
}

func (c *Citation) Title() util.InternationalString                    { return c.Heading }
func (c *Citation) AlternateTitles() []util.InternationalString        { return c.Alternates }
func (c *Citation) Dates() []metadata.CitationDate                     { return c.When }
func (c *Citation) Edition() util.InternationalString                  { return c.EditionOf }
func (c *Citation) Identifiers() []metadata.Identifier                 { return c.IDs }
func (c *Citation) CitedResponsibleParties() []metadata.Responsibility { return c.Parties }

// CitationDate is a date and the event it describes.
type CitationDate struct {
	At   time.Time
	Type metadata.DateType
}

func (d *CitationDate) Date() time.Time             { return d.At }
func (d *CitationDate) DateType() metadata.DateType { return d.Type }

// Responsibility is a party and its role.
type Responsibility struct {
	Function     metadata.Role
	Individual   string
	Organisation util.InternationalString
	Position     util.InternationalString
	Contact      metadata.Contact
}

func (r *Responsibility) Role() metadata.Role                        { return r.Function }
func (r *Responsibility) IndividualName() string                     { return r.Individual }
func (r *Responsibility) OrganisationName() util.InternationalString { return r.Organisation }
func (r *Responsibility) PositionName() util.InternationalString     { return r.Position }
func (r *Responsibility) ContactInfo() metadata.Contact              { return r.Contact }

// Contact is the information required to contact a party.
type Contact struct {
	Telephone string
	Location  metadata.Address
	Online    metadata.OnlineResource
}

func (c *Contact) Phone() string                           { return c.Telephone }
func (c *Contact) Address() metadata.Address               { return c.Location }
func (c *Contact) OnlineResource() metadata.OnlineResource { return c.Online }

// Address is the physical and electronic address of a party.
type Address struct {
	Delivery []string
	CityName util.InternationalString
	Postal   string
	Nation   util.InternationalString
	Emails   []string
}

func (a *Address) DeliveryPoints() []string          { return a.Delivery }
func (a *Address) City() util.InternationalString    { return a.CityName }
func (a *Address) PostalCode() string                { return a.Postal }
func (a *Address) Country() util.InternationalString { return a.Nation }
func (a *Address) ElectronicMailAddresses() []string { return a.Emails }

// OnlineResource is an online location.
type OnlineResource struct {
	URL          string
	ProtocolName string
	Label        string
}

func (o *OnlineResource) Linkage() string  { return o.URL }
func (o *OnlineResource) Protocol() string { return o.ProtocolName }
func (o *OnlineResource) Name() string     { return o.Label }
