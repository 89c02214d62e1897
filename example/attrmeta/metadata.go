package attrmeta

import (
	"errors"
	"io"
	"strings"

	exmeta "github.com/geoapi/geoconform/example/metadata"
	exutil "github.com/geoapi/geoconform/example/util"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/util"
)

// StandardName is reported when the attributes do not name their convention.
const StandardName = "ISO 19115"

// Read decodes attributes from r and converts them.
func Read(r io.Reader) (*exmeta.Metadata, error) {
	a, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return a.Metadata()
}

// Metadata converts the attributes. Absent attributes leave the matching
// metadata element empty; malformed numbers or dates are reported together.
func (a Attributes) Metadata() (*exmeta.Metadata, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	parties := a.parties()
	m := &exmeta.Metadata{
		ID:           a.FileIdentifier(),
		Lang:         a.String(MetadataLanguage),
		Parties:      parties,
		StandardName: a.String(MetadataConventions),
	}
	if m.StandardName == "" {
		m.StandardName = StandardName
	}
	citation, err := a.citation()
	collect(err)
	if m.Stamp, err = a.Time(DateModified); err == nil && m.Stamp.IsZero() {
		m.Stamp, err = a.Time(DateCreated)
	}
	collect(err)
	extent, err := a.extent()
	collect(err)

	info := &exmeta.DataIdentification{
		Summary:  exutil.OrNil(a.String(Summary)),
		Intent:   exutil.OrNil(a.String(Purpose)),
		Contacts: parties,
	}
	if citation != nil {
		info.Cited = citation
	}
	if k := a.keywords(); k != nil {
		info.KeywordGroups = []metadata.Keywords{k}
	}
	if t, ok := representation(a.String(CDMDataType)); ok {
		info.Representations = []metadata.SpatialRepresentationType{t}
	}
	if extent != nil {
		info.Coverage = []metadata.Extent{extent}
	}
	if m.Lang != "" {
		info.Langs = []string{m.Lang}
	}
	for _, s := range a.List(TopicCategory) {
		if t, ok := metadata.TopicCategoryOf(s); ok {
			info.Topics = append(info.Topics, t)
		}
	}
	m.Identification = []metadata.Identification{info}
	if len(errs) > 0 {
		return m, errors.Join(errs...)
	}
	return m, nil
}

// FileIdentifier is "naming_authority:id", or id alone when no authority is
// given.
func (a Attributes) FileIdentifier() string {
	id := a.String(ID)
	if id == "" {
		return ""
	}
	if auth := a.String(NamingAuthority); auth != "" {
		return auth + ":" + id
	}
	return id
}

func (a Attributes) citation() (*exmeta.Citation, error) {
	c := &exmeta.Citation{Heading: exutil.OrNil(a.String(Title))}
	if id := a.String(ID); id != "" {
		c.IDs = []metadata.Identifier{exmeta.NewIdentifier(a.String(NamingAuthority), id)}
	}
	var errs []error
	for _, d := range []struct {
		name string
		kind metadata.DateType
	}{
		{DateCreated, metadata.DateCreation},
		{DateIssued, metadata.DatePublication},
		{DateModified, metadata.DateRevision},
	} {
		t, err := a.Time(d.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !t.IsZero() {
			c.When = append(c.When, &exmeta.CitationDate{At: t, Type: d.kind})
		}
	}
	if c.Heading == nil && c.IDs == nil && c.When == nil {
		return nil, errors.Join(errs...)
	}
	return c, errors.Join(errs...)
}

// parties returns the creator as originator and the publisher.
func (a Attributes) parties() []metadata.Responsibility {
	var out []metadata.Responsibility
	if p := a.party(metadata.RoleOriginator, CreatorName, CreatorEmail, CreatorURL, CreatorInstitution); p != nil {
		out = append(out, p)
	}
	if p := a.party(metadata.RolePublisher, PublisherName, PublisherEmail, PublisherURL, ""); p != nil {
		out = append(out, p)
	}
	return out
}

func (a Attributes) party(role metadata.Role, name, email, url, institution string) metadata.Responsibility {
	r := &exmeta.Responsibility{Function: role, Individual: a.String(name)}
	if institution != "" {
		r.Organisation = exutil.OrNil(a.String(institution))
	}
	contact := &exmeta.Contact{}
	if e := a.String(email); e != "" {
		contact.Location = &exmeta.Address{Emails: []string{e}}
	}
	if u := a.String(url); u != "" {
		contact.Online = &exmeta.OnlineResource{URL: u, ProtocolName: protocol(u)}
	}
	if contact.Location != nil || contact.Online != nil {
		r.Contact = contact
	}
	if r.Individual == "" && r.Organisation == nil && r.Contact == nil {
		return nil
	}
	return r
}

func protocol(url string) string {
	if i := strings.Index(url, "://"); i > 0 {
		return strings.ToLower(url[:i])
	}
	return ""
}

func (a Attributes) keywords() metadata.Keywords {
	words := a.List(Keywords)
	if len(words) == 0 {
		return nil
	}
	k := &exmeta.Keywords{Words: make([]util.InternationalString, len(words))}
	for i, w := range words {
		k.Words[i] = exutil.Text(w)
	}
	if v := a.String(KeywordsVocabulary); v != "" {
		k.Thesaurus = &exmeta.Citation{Heading: exutil.Text(v)}
	}
	return k
}

// representation maps a CDM feature type to a spatial representation.
func representation(cdm string) (metadata.SpatialRepresentationType, bool) {
	switch strings.ToLower(cdm) {
	case "grid", "image", "radial", "swath":
		return metadata.RepresentationGrid, true
	case "point", "station", "trajectory", "profile", "section":
		return metadata.RepresentationVector, true
	}
	return 0, false
}

// extent builds a bounding box when the four bounds are present, a vertical
// extent when both limits are present and a temporal extent from the
// coverage start. It returns nil when none applies.
func (a Attributes) extent() (*exmeta.Extent, error) {
	var errs []error
	float := func(name string) (float64, bool) {
		v, ok, err := a.Float(name)
		if err != nil {
			errs = append(errs, err)
		}
		return v, ok
	}
	e := &exmeta.Extent{}
	west, okW := float(GeospatialLonMin)
	east, okE := float(GeospatialLonMax)
	south, okS := float(GeospatialLatMin)
	north, okN := float(GeospatialLatMax)
	if okW && okE && okS && okN {
		e.Geographic = []metadata.GeographicExtent{&exmeta.BoundingBox{West: west, East: east, South: south, North: north}}
	}
	low, okLow := float(GeospatialVerticalMin)
	high, okHigh := float(GeospatialVerticalMax)
	if okLow && okHigh {
		e.Vertical = []metadata.VerticalExtent{&exmeta.VerticalExtent{Min: low, Max: high}}
	}
	begin, err := a.Time(TimeCoverageStart)
	if err != nil {
		errs = append(errs, err)
	}
	end, err := a.Time(TimeCoverageEnd)
	if err != nil {
		errs = append(errs, err)
	}
	if !begin.IsZero() {
		e.Temporal = []metadata.TemporalExtent{&exmeta.TemporalExtent{Begin: begin, End: end}}
	}
	if e.Geographic == nil && e.Vertical == nil && e.Temporal == nil {
		return nil, errors.Join(errs...)
	}
	return e, errors.Join(errs...)
}
