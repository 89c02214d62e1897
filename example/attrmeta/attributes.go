// Package attrmeta exposes a dictionary of global attributes, following the
// Attribute Convention for Data Discovery (ACDD), as ISO 19115 metadata.
package attrmeta

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Attribute names read by this package.
const (
	ID                    = "id"
	NamingAuthority       = "naming_authority"
	Title                 = "title"
	Summary               = "summary"
	Purpose               = "purpose"
	Keywords              = "keywords"
	KeywordsVocabulary    = "keywords_vocabulary"
	CDMDataType           = "cdm_data_type"
	TopicCategory         = "topic_category"
	CreatorName           = "creator_name"
	CreatorEmail          = "creator_email"
	CreatorURL            = "creator_url"
	CreatorInstitution    = "creator_institution"
	PublisherName         = "publisher_name"
	PublisherEmail        = "publisher_email"
	PublisherURL          = "publisher_url"
	DateCreated           = "date_created"
	DateModified          = "date_modified"
	DateIssued            = "date_issued"
	MetadataLanguage      = "language"
	GeospatialLonMin      = "geospatial_lon_min"
	GeospatialLonMax      = "geospatial_lon_max"
	GeospatialLatMin      = "geospatial_lat_min"
	GeospatialLatMax      = "geospatial_lat_max"
	GeospatialVerticalMin = "geospatial_vertical_min"
	GeospatialVerticalMax = "geospatial_vertical_max"
	TimeCoverageStart     = "time_coverage_start"
	TimeCoverageEnd       = "time_coverage_end"
	MetadataConventions   = "Metadata_Conventions"
)

// ErrAttribute reports an attribute whose value can not be interpreted.
var ErrAttribute = errors.New("attrmeta: invalid attribute")

// Attributes maps global attribute names to their values. Values are strings,
// json.Number, float64 or slices of those.
type Attributes map[string]any

// Decode reads a JSON object of attributes. Numbers keep their textual form
// until they are read.
func Decode(r io.Reader) (Attributes, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var a Attributes
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("attrmeta: decode: %w", err)
	}
	return a, nil
}

// String returns the trimmed text of an attribute, or "" when absent.
// Array values are joined with ", ".
func (a Attributes) String(name string) string {
	switch v := a[name].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, strings.TrimSpace(fmt.Sprint(e)))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// Float returns a numeric attribute. Text values are parsed. ok is false when
// the attribute is absent or blank.
func (a Attributes) Float(name string) (value float64, ok bool, err error) {
	var s string
	switch v := a[name].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
	default:
		return 0, false, fmt.Errorf("%w: %s is a %T", ErrAttribute, name, v)
	}
	value, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s: %v", ErrAttribute, name, err)
	}
	return value, true, nil
}

// dateLayouts are tried after RFC 3339. ACDD recommends ISO 8601 but files
// in the wild often omit seconds or the zone.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Time returns a date attribute in UTC. Dates without a zone are UTC. The
// zero time is returned when the attribute is absent.
func (a Attributes) Time(name string) (time.Time, error) {
	s := a.String(name)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	local := strings.TrimSuffix(s, "Z")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s: unparseable date %q", ErrAttribute, name, s)
}

// List splits a comma separated attribute into trimmed, non-blank items.
func (a Attributes) List(name string) []string {
	var out []string
	for _, s := range strings.Split(a.String(name), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
