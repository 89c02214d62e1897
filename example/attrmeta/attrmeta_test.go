package attrmeta_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoapi/geoconform/conformance"
	"github.com/geoapi/geoconform/example/attrmeta"
	exmeta "github.com/geoapi/geoconform/example/metadata"
	"github.com/geoapi/geoconform/metadata"
)

const sst = `{
  "title": "Sea Surface Temperature Analysis Model",
  "version": 1.0,
  "Metadata_Conventions": "Unidata Dataset Discovery v1.0",
  "summary": "NCEP SST Global 5.0 x 2.5 degree model data",
  "keywords": "EARTH SCIENCE > Oceans > Ocean Temperature > Sea Surface Temperature",
  "keywords_vocabulary": "GCMD Science Keywords",
  "id": "NCEP/SST/Global_5x2p5deg/SST_Global_5x2p5deg_20050922_0000.nc",
  "naming_authority": "edu.ucar.unidata",
  "cdm_data_type": "Grid",
  "topic_category": "oceans, climatologyMeteorologyAtmosphere, seafloor",
  "language": "en",
  "date_created": "2005-09-22T00:00",
  "creator_name": "NOAA/NWS/NCEP",
  "creator_url": "https://www.ncep.noaa.gov/",
  "creator_email": "",
  "geospatial_lat_min": "-90.0",
  "geospatial_lat_max": "90.0",
  "geospatial_lon_min": -180,
  "geospatial_lon_max": "180.0",
  "time_coverage_start": "2005-09-22T00:00"
}`

func TestRead(t *testing.T) {
	m, err := attrmeta.Read(strings.NewReader(sst))
	require.NoError(t, err)
	assert.Equal(t, "edu.ucar.unidata:NCEP/SST/Global_5x2p5deg/SST_Global_5x2p5deg_20050922_0000.nc", m.ID)
	assert.Equal(t, "Unidata Dataset Discovery v1.0", m.StandardName)
	assert.Equal(t, time.Date(2005, 9, 22, 0, 0, 0, 0, time.UTC), m.Stamp)

	require.Len(t, m.Parties, 1)
	creator := m.Parties[0].(*exmeta.Responsibility)
	assert.Equal(t, metadata.RoleOriginator, creator.Function)
	assert.Equal(t, "NOAA/NWS/NCEP", creator.Individual)
	contact := creator.Contact.(*exmeta.Contact)
	assert.Nil(t, contact.Location)
	assert.Equal(t, "https", contact.Online.Protocol())

	require.Len(t, m.Identification, 1)
	info := m.Identification[0].(*exmeta.DataIdentification)
	assert.Equal(t, "NCEP SST Global 5.0 x 2.5 degree model data", info.Summary.String())
	assert.Nil(t, info.Intent)
	assert.Equal(t, []metadata.TopicCategory{metadata.TopicOceans, metadata.TopicClimatologyMeteorologyAtmosphere}, info.Topics)
	assert.Equal(t, []metadata.SpatialRepresentationType{metadata.RepresentationGrid}, info.Representations)
	assert.Equal(t, []string{"en"}, info.Langs)

	require.Len(t, info.KeywordGroups, 1)
	keywords := info.KeywordGroups[0].(*exmeta.Keywords)
	require.Len(t, keywords.Words, 1)
	assert.Equal(t, "GCMD Science Keywords", keywords.Thesaurus.Title().String())

	cited := info.Cited.(*exmeta.Citation)
	assert.Equal(t, "Sea Surface Temperature Analysis Model", cited.Heading.String())
	require.Len(t, cited.When, 1)
	assert.Equal(t, metadata.DateCreation, cited.When[0].DateType())

	require.Len(t, info.Coverage, 1)
	extent := info.Coverage[0].(*exmeta.Extent)
	assert.Equal(t, &exmeta.BoundingBox{West: -180, East: 180, South: -90, North: 90}, extent.Geographic[0])
	assert.Empty(t, extent.Vertical)
	require.Len(t, extent.Temporal, 1)

	require.NoError(t, conformance.Validate(context.Background(), m))
}

func TestMetadata_Errors(t *testing.T) {
	a := attrmeta.Attributes{
		attrmeta.Title:            "Broken",
		attrmeta.DateCreated:      "yesterday",
		attrmeta.GeospatialLonMin: "west",
		attrmeta.GeospatialLonMax: "10",
		attrmeta.GeospatialLatMin: "0",
		attrmeta.GeospatialLatMax: "10",
	}
	m, err := a.Metadata()
	require.ErrorIs(t, err, attrmeta.ErrAttribute)
	assert.Contains(t, err.Error(), "date_created")
	assert.Contains(t, err.Error(), "geospatial_lon_min")
	require.NotNil(t, m)
	assert.Equal(t, attrmeta.StandardName, m.StandardName)
	assert.Empty(t, m.Parties)
}

func TestAttributes(t *testing.T) {
	a, err := attrmeta.Decode(strings.NewReader(`{
		"n": 42.5, "s": " 3.5 ", "blank": "  ", "list": ["a", " b "], "csv": "x, ,y",
		"bool": true, "day": "2020-02-29", "minute": "2020-02-29 12:30", "zoned": "2020-02-29T12:30:00+02:00"
	}`))
	require.NoError(t, err)

	v, ok, err := a.Float("n")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42.5, v)
	v, ok, err = a.Float("s")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)
	_, ok, err = a.Float("blank")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = a.Float("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	_, _, err = a.Float("bool")
	require.ErrorIs(t, err, attrmeta.ErrAttribute)
	v, ok, err = attrmeta.Attributes{"f": 1.5}.Float("f")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	assert.Equal(t, "a, b", a.String("list"))
	assert.Equal(t, "42.5", a.String("n"))
	assert.Equal(t, []string{"x", "y"}, a.List("csv"))
	assert.Nil(t, a.List("missing"))

	day, err := a.Time("day")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), day)
	minute, err := a.Time("minute")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 2, 29, 12, 30, 0, 0, time.UTC), minute)
	zoned, err := a.Time("zoned")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 2, 29, 10, 30, 0, 0, time.UTC), zoned)
	missing, err := a.Time("missing")
	require.NoError(t, err)
	assert.True(t, missing.IsZero())

	_, err = attrmeta.Decode(strings.NewReader(`[1, 2]`))
	require.Error(t, err)
}

func TestFileIdentifier(t *testing.T) {
	assert.Equal(t, "", attrmeta.Attributes{}.FileIdentifier())
	assert.Equal(t, "sst", attrmeta.Attributes{attrmeta.ID: "sst"}.FileIdentifier())
}
