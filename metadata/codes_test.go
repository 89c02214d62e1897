package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoapi/geoconform/metadata"
)

func TestCodeLists(t *testing.T) {
	r, ok := metadata.RoleOf("pointOfContact")
	assert.True(t, ok)
	assert.Equal(t, metadata.RolePointOfContact, r)
	assert.Equal(t, "POINT_OF_CONTACT", r.Name())

	topic, ok := metadata.TopicCategoryOf("CLIMATOLOGY_METEOROLOGY_ATMOSPHERE")
	assert.True(t, ok)
	assert.Equal(t, metadata.TopicClimatologyMeteorologyAtmosphere, topic)
	_, ok = metadata.TopicCategoryOf("seafloor")
	assert.False(t, ok)

	grid, ok := metadata.SpatialRepresentationTypeOf("grid")
	assert.True(t, ok)
	assert.Equal(t, metadata.RepresentationGrid, grid)

	assert.Equal(t, "creation", metadata.DateCreation.String())
	assert.Len(t, metadata.DateTypes(), 3)
	assert.Empty(t, metadata.TopicCategory(-1).Identifier())
}
