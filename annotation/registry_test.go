package annotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoapi/geoconform/annotation"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, annotation.Mandatory, annotation.ObligationOf("SC_CRS.coordinateSystem"))
	assert.Equal(t, annotation.Unspecified, annotation.ObligationOf("XX_Nothing.here"))

	annotation.Register(annotation.UML{Identifier: "XX_Test.value", Obligation: annotation.Forbidden, Specification: annotation.ISO19115})
	u, ok := annotation.Lookup("XX_Test.value")
	assert.True(t, ok)
	assert.Equal(t, "ISO 19115", u.Specification.String())

	text, err := annotation.Forbidden.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "forbidden", string(text))
	assert.Empty(t, annotation.Unspecified.String())
}
