package conformance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/conformance"
	exmeta "github.com/geoapi/geoconform/example/metadata"
	exutil "github.com/geoapi/geoconform/example/util"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/util"
)

func sampleMetadata() *exmeta.Metadata {
	originator := &exmeta.Responsibility{
		Function:     metadata.RoleOriginator,
		Organisation: exutil.Text("NOAA/NCEP"),
		Contact: &exmeta.Contact{
			Location: &exmeta.Address{Emails: []string{"sst@example.org"}},
			Online:   &exmeta.OnlineResource{URL: "https://www.ncep.noaa.gov/", ProtocolName: "https"},
		},
	}
	return &exmeta.Metadata{
		ID:      "NCEP/SST/Global_5x2p5deg/SST_Global_5x2p5deg_20050922_0000.nc",
		Lang:    "en",
		Parties: []metadata.Responsibility{originator},
		Stamp:   time.Date(2005, 9, 22, 0, 0, 0, 0, time.UTC),
		Identification: []metadata.Identification{&exmeta.DataIdentification{
			Cited:    &exmeta.Citation{Heading: exutil.Text("Sea Surface Temperature Analysis Model")},
			Summary:  exutil.Text("NCEP SST Global 5.0 x 2.5 degree model data"),
			Contacts: []metadata.Responsibility{originator},
			KeywordGroups: []metadata.Keywords{&exmeta.Keywords{
				Words: []util.InternationalString{exutil.Text("EARTH SCIENCE"), exutil.Text("Oceans")},
			}},
			Coverage: []metadata.Extent{exmeta.NewBoundingBoxExtent(-180, 180, -90, 90)},
			Langs:    []string{"en"},
			Topics:   []metadata.TopicCategory{metadata.TopicOceans},
		}},
	}
}

func TestMetadata_Valid(t *testing.T) {
	require.NoError(t, conformance.NewContainer().Validate(context.Background(), sampleMetadata()))
}

func TestMetadata_Missing(t *testing.T) {
	md := sampleMetadata()
	md.Parties = nil
	md.Stamp = time.Time{}
	info := md.Identification[0].(*exmeta.DataIdentification)
	info.Summary = exutil.Text("")
	info.Langs = nil

	iss := issuesOf(t, conformance.NewContainer().Validate(context.Background(), md))
	type finding struct{ Code, Path, Attribute string }
	var got []finding
	for _, it := range iss {
		got = append(got, finding{it.Code, it.Path, it.Params["attribute"].(string)})
	}
	want := []finding{
		{geoconform.CodeMandatoryMissing, "/contacts", "MD_Metadata.contact"},
		{geoconform.CodeMandatoryMissing, "/dateStamp", "MD_Metadata.dateStamp"},
		{geoconform.CodeMandatoryMissing, "/identificationInfo/0/abstract", "MD_Identification.abstract"},
		{geoconform.CodeMandatoryMissing, "/identificationInfo/0/languages", "MD_DataIdentification.language"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadata_Lenient(t *testing.T) {
	md := sampleMetadata()
	md.Stamp = time.Time{}

	c := conformance.NewContainer()
	c.Metadata.RequireMandatoryAttributes = false
	r := c.Inspect(context.Background(), md)
	require.NoError(t, r.Err())
	require.Len(t, r.Issues().Warnings(), 1)
	assert.Equal(t, "/dateStamp", r.Issues()[0].Path)
}

func TestResponsibility_Party(t *testing.T) {
	anonymous := &exmeta.Responsibility{Function: metadata.RoleOriginator}
	iss := issuesOf(t, conformance.NewContainer().Validate(context.Background(), anonymous))
	require.Len(t, iss, 1)
	assert.Equal(t, "/party", iss[0].Path)

	anonymous.Individual = "J. Doe"
	anonymous.Contact = &exmeta.Contact{Online: &exmeta.OnlineResource{Label: "home"}}
	iss = issuesOf(t, conformance.NewContainer().Validate(context.Background(), anonymous))
	require.Len(t, iss, 1)
	assert.Equal(t, "/contactInfo/onlineResource/linkage", iss[0].Path)
}

func TestExtent(t *testing.T) {
	tests := []struct {
		name string
		obj  any
		path string
	}{
		{name: "world", obj: exmeta.NewBoundingBoxExtent(-180, 180, -90, 90)},
		{name: "anti-meridian", obj: exmeta.NewBoundingBoxExtent(170, -170, -10, 10)},
		{name: "empty", obj: &exmeta.Extent{}, path: "/"},
		{name: "west", obj: exmeta.NewBoundingBoxExtent(-200, 10, 0, 10), path: "/geographicElements/0/westBoundLongitude"},
		{name: "latitudes", obj: exmeta.NewBoundingBoxExtent(0, 10, 20, 10), path: "/geographicElements/0"},
		{
			name: "vertical",
			obj:  &exmeta.Extent{Vertical: []metadata.VerticalExtent{&exmeta.VerticalExtent{Min: 10, Max: -10}}},
			path: "/verticalElements/0",
		},
		{
			name: "temporal",
			obj: &exmeta.Extent{Temporal: []metadata.TemporalExtent{&exmeta.TemporalExtent{
				Begin: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			}}},
			path: "/temporalElements/0/extent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := conformance.NewContainer().Validate(context.Background(), tt.obj)
			if tt.path == "" {
				require.NoError(t, err)
				return
			}
			iss := issuesOf(t, err)
			assert.Equal(t, tt.path, iss[0].Path)
		})
	}
}
