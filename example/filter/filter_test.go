package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exfilter "github.com/geoapi/geoconform/example/filter"
	exgeom "github.com/geoapi/geoconform/example/geometry"
	exref "github.com/geoapi/geoconform/example/referencing"
	"github.com/geoapi/geoconform/filter"
)

var city = exfilter.Resource{
	"name":       "Paris",
	"population": 2102650,
	"founded":    time.Date(-250, 1, 1, 0, 0, 0, 0, time.UTC),
	"address":    exfilter.Resource{"country": "France"},
	"capital":    true,
}

func TestComparison(t *testing.T) {
	name := exfilter.Property{Path: "name"}
	pop := exfilter.Property{Path: "population"}
	tests := []struct {
		name string
		f    filter.Filter
		want bool
	}{
		{"equal", exfilter.Equal(name, exfilter.Literal{V: "Paris"}), true},
		{"case sensitive", exfilter.Equal(name, exfilter.Literal{V: "paris"}), false},
		{"case insensitive", &exfilter.Comparison{Op: filter.OperatorEqual, Left: name, Right: exfilter.Literal{V: "PARIS"}}, true},
		{"nested path", exfilter.Equal(exfilter.Property{Path: "/address/country"}, exfilter.Literal{V: "France"}), true},
		{"int against float", exfilter.Compare(filter.OperatorGreater, pop, exfilter.Literal{V: 2e6}), true},
		{"less or equal", exfilter.Compare(filter.OperatorLessOrEqual, pop, exfilter.Literal{V: 2102650}), true},
		{"missing property", exfilter.Equal(exfilter.Property{Path: "mayor"}, exfilter.Literal{V: "x"}), false},
		{"mixed types", exfilter.Compare(filter.OperatorLess, name, exfilter.Literal{V: 3}), false},
		{"mixed types differ", exfilter.Compare(filter.OperatorNotEqual, name, exfilter.Literal{V: 3}), true},
		{"bool", exfilter.Equal(exfilter.Property{Path: "capital"}, exfilter.Literal{V: true}), true},
		{
			"time",
			exfilter.Compare(filter.OperatorLess, exfilter.Property{Path: "founded"}, exfilter.Literal{V: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)}),
			true,
		},
		{"between", &exfilter.Between{Value: pop, Lower: exfilter.Literal{V: 1e6}, Upper: exfilter.Literal{V: 3e6}}, true},
		{"not between", &exfilter.Between{Value: pop, Lower: exfilter.Literal{V: 3e6}, Upper: exfilter.Literal{V: 4e6}}, false},
		{"is null", &exfilter.IsNull{Value: exfilter.Property{Path: "mayor"}}, true},
		{"is not null", &exfilter.IsNull{Value: name}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.Test(city))
		})
	}
}

func TestLike(t *testing.T) {
	name := exfilter.Property{Path: "name"}
	tests := []struct {
		pattern   string
		matchCase bool
		want      bool
	}{
		{"P%", true, true},
		{"p%", true, false},
		{"p%", false, true},
		{"Par_s", true, true},
		{"Par_", true, false},
		{"%.%", true, false},
		{`Pari\s`, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, exfilter.NewLike(name, tt.pattern, tt.matchCase).Test(city))
		})
	}
	assert.True(t, exfilter.NewLike(exfilter.Literal{V: "100%"}, `100\%`, true).Test(nil))
	assert.False(t, exfilter.NewLike(exfilter.Literal{V: "1000"}, `100\%`, true).Test(nil))
}

func TestLogical(t *testing.T) {
	yes := exfilter.Equal(exfilter.Property{Path: "name"}, exfilter.Literal{V: "Paris"})
	no := &exfilter.IsNull{Value: exfilter.Property{Path: "name"}}

	assert.True(t, exfilter.And(yes, filter.Include).Test(city))
	assert.False(t, exfilter.And(yes, no).Test(city))
	assert.True(t, exfilter.Or(no, yes).Test(city))
	assert.False(t, exfilter.Or(no, filter.Exclude).Test(city))
	assert.True(t, exfilter.Not(no).Test(city))
	assert.False(t, (&exfilter.Logical{Op: filter.OperatorNot, Children: []filter.Filter{no, no}}).Test(city))
	assert.Len(t, exfilter.And(yes, no).Expressions(), 2)
}

func TestFunction(t *testing.T) {
	upper, err := exfilter.NewFunction("strToUpperCase", exfilter.Property{Path: "name"})
	require.NoError(t, err)
	assert.True(t, exfilter.Equal(upper, exfilter.Literal{V: "PARIS"}).Test(city))

	length, err := exfilter.NewFunction("strLength", exfilter.Property{Path: "name"})
	require.NoError(t, err)
	v, err := length.Apply(city)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, "strLength", length.FunctionName().Tip().String())

	missing, err := exfilter.NewFunction("strToLowerCase", exfilter.Property{Path: "mayor"})
	require.NoError(t, err)
	v, err = missing.Apply(city)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = exfilter.NewFunction("strTrim", exfilter.Property{Path: "name"})
	require.Error(t, err)
	_, err = exfilter.NewFunction("strConcat", exfilter.Property{Path: "name"})
	require.Error(t, err)
	assert.Equal(t, 2, exfilter.Functions()["strConcat"])
}

func TestBBox(t *testing.T) {
	box, err := exgeom.NewEnvelope(exref.WGS84(), []float64{40, 170}, []float64{50, -170})
	require.NoError(t, err)
	inside, err := exgeom.NewPosition(exref.WGS84(), 45, -175)
	require.NoError(t, err)
	overlap, err := exgeom.NewEnvelope(exref.WGS84(), []float64{48, 0}, []float64{60, 10})
	require.NoError(t, err)
	north, err := exgeom.NewEnvelope(exref.WGS84(), []float64{60, 0}, []float64{70, 10})
	require.NoError(t, err)

	f := &exfilter.BBox{Geometry: exfilter.Property{Path: "geom"}, Box: box}
	assert.True(t, f.Test(exfilter.Resource{"geom": inside}))
	assert.True(t, f.Test(exfilter.Resource{"geom": overlap}))
	assert.False(t, f.Test(exfilter.Resource{"geom": north}))
	assert.False(t, f.Test(exfilter.Resource{"geom": "POINT(0 0)"}))
	assert.Equal(t, box, f.Operand2().(filter.Literal).Value())
}
