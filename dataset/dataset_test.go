package dataset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoapi/geoconform/conformance"
	"github.com/geoapi/geoconform/dataset"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/referencing/crs"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"belge-lambert-72.yaml",
		"crm-grid.attrs.json",
		"ncep-sst.attrs.json",
		"pseudo-mercator.json",
		"texas-south-central.proj",
		"wgs84-egm96.yaml",
		"wgs84-geocentric.yaml",
		"wgs84.yaml",
	}, dataset.Names())
}

func TestLoad(t *testing.T) {
	for _, name := range dataset.Names() {
		t.Run(name, func(t *testing.T) {
			obj, err := dataset.Load(name)
			require.NoError(t, err)
			switch dataset.KindOf(name) {
			case dataset.Attributes:
				assert.Implements(t, (*metadata.Metadata)(nil), obj)
			default:
				assert.Implements(t, (*crs.CRS)(nil), obj)
			}
			require.NoError(t, conformance.Validate(context.Background(), obj))
		})
	}
}

func TestLoad_Dimensions(t *testing.T) {
	tests := map[string]int{
		"wgs84.yaml":               2,
		"wgs84-geocentric.yaml":    3,
		"wgs84-egm96.yaml":         3,
		"pseudo-mercator.json":     2,
		"texas-south-central.proj": 2,
	}
	for name, dim := range tests {
		obj, err := dataset.Load(name)
		require.NoError(t, err, name)
		assert.Equal(t, dim, crs.Dimension(obj.(crs.CRS)), name)
	}

	obj, err := dataset.Load("texas-south-central.proj")
	require.NoError(t, err)
	assert.Equal(t, "texas-south-central", obj.(crs.CRS).Name().Code())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := dataset.Load("nad83.yaml")
	require.ErrorIs(t, err, dataset.ErrNotFound)
	_, err = dataset.Content("../dataset.go")
	require.ErrorIs(t, err, dataset.ErrNotFound)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		want dataset.Kind
	}{
		{"sst.ATTRS.JSON", dataset.Attributes},
		{"crs.json", dataset.CRSDocument},
		{"crs.yml", dataset.CRSDocument},
		{"crs.yaml", dataset.CRSDocument},
		{"lcc.proj", dataset.ProjDefinition},
		{"README.md", dataset.Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dataset.KindOf(tt.name), tt.name)
	}
	assert.Equal(t, "attributes", dataset.Attributes.String())
	assert.Equal(t, "unknown", dataset.Kind(42).String())
}

func TestDecodeDocument_UnknownFields(t *testing.T) {
	_, err := dataset.DecodeDocument("bad.yaml", []byte("type: geographic\nname: X\ncolour: red\n"))
	require.ErrorIs(t, err, dataset.ErrDocument)
	_, err = dataset.DecodeDocument("bad.json", []byte(`{"type": "geographic", "name": "X", "colour": "red"}`))
	require.ErrorIs(t, err, dataset.ErrDocument)
}

func TestDecode_Errors(t *testing.T) {
	_, err := dataset.Decode("notes.txt", nil)
	require.ErrorIs(t, err, dataset.ErrDocument)
	_, err = dataset.Decode("odd.yaml", []byte("type: polar\nname: X\n"))
	require.ErrorIs(t, err, dataset.ErrDocument)
	_, err = (&dataset.Builder{}).Build(nil)
	require.ErrorIs(t, err, dataset.ErrDocument)
}

func TestBuilder_Proj(t *testing.T) {
	d := &dataset.Document{Name: "Mercator", Proj: "+proj=merc +ellps=WGS84"}
	obj, err := dataset.NewBuilder().Build(d)
	require.NoError(t, err)
	assert.Equal(t, "Mercator", obj.Name().Code())
	require.NoError(t, conformance.Validate(context.Background(), obj))
}
