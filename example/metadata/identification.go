package metadata

import (
	"time"

	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/util"
)

// Keywords groups keywords from a thesaurus.
type Keywords struct {
	Words     []util.InternationalString
	Thesaurus metadata.Citation
}

func (k *Keywords) Keywords() []util.InternationalString { return k.Words }
func (k *Keywords) ThesaurusName() metadata.Citation     { return k.Thesaurus }

// DataIdentification identifies a dataset.
type DataIdentification struct {
	Cited           metadata.Citation
	Summary         util.InternationalString
	Intent          util.InternationalString
	Contacts        []metadata.Responsibility
	KeywordGroups   []metadata.Keywords
	Representations []metadata.SpatialRepresentationType
	Coverage        []metadata.Extent
	Langs           []string
	Topics          []metadata.TopicCategory
}

func (d *DataIdentification) Citation() metadata.Citation                { return d.Cited }
func (d *DataIdentification) Abstract() util.InternationalString         { return d.Summary }
func (d *DataIdentification) Purpose() util.InternationalString          { return d.Intent }
func (d *DataIdentification) PointOfContacts() []metadata.Responsibility { return d.Contacts }
func (d *DataIdentification) DescriptiveKeywords() []metadata.Keywords   { return d.KeywordGroups }
func (d *DataIdentification) Extents() []metadata.Extent                 { return d.Coverage }
func (d *DataIdentification) Languages() []string                        { return d.Langs }
func (d *DataIdentification) TopicCategories() []metadata.TopicCategory  { return d.Topics }

func (d *DataIdentification) SpatialRepresentationTypes() []metadata.SpatialRepresentationType {
	return d.Representations
}

// Metadata is the root of a metadata record.
type Metadata struct {
	ID             string
	Lang           string
	Parties        []metadata.Responsibility
	Stamp          time.Time
	StandardName   string
	Identification []metadata.Identification
}

func (m *Metadata) FileIdentifier() string                        { return m.ID }
func (m *Metadata) Language() string                              { return m.Lang }
func (m *Metadata) Contacts() []metadata.Responsibility           { return m.Parties }
func (m *Metadata) DateStamp() time.Time                          { return m.Stamp }
func (m *Metadata) MetadataStandardName() string                  { return m.StandardName }
func (m *Metadata) IdentificationInfo() []metadata.Identification { return m.Identification }
