package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exutil "github.com/geoapi/geoconform/example/util"
)

func TestNames(t *testing.T) {
	epsg := exutil.NewNameSpace("", "EPSG")
	assert.Equal(t, ":", epsg.Separator())
	assert.False(t, epsg.IsGlobal())
	assert.True(t, exutil.Global.IsGlobal())
	assert.Nil(t, exutil.NewName(epsg))

	local := exutil.NewName(epsg, "4326")
	assert.Equal(t, 1, local.Depth())
	assert.Same(t, epsg, local.Scope())
	assert.Equal(t, "4326", local.Tip().String())

	scoped := exutil.ParseName(exutil.NewNameSpace("/"), "a/b/c")
	require.Equal(t, 3, scoped.Depth())
	assert.Equal(t, "a/b/c", scoped.String())
	assert.Equal(t, "a", scoped.Head().String())
	assert.Equal(t, "c", scoped.Tip().String())
	assert.Len(t, scoped.ParsedNames(), 3)
	assert.Equal(t, "a/b/c", scoped.ToInternationalString().String())

	s := scoped.(*exutil.ScopedName)
	assert.Equal(t, "a/b", s.Path().String())
	assert.Equal(t, "b/c", s.Tail().String())
	assert.Nil(t, exutil.ParseName(exutil.Global, ""))
}

func TestNames_Equal(t *testing.T) {
	a := exutil.NewName(exutil.NewNameSpace(":", "EPSG"), "EPSG", "4326").(*exutil.ScopedName)
	b := exutil.NewName(exutil.NewNameSpace(":", "EPSG"), "EPSG", "4326").(*exutil.ScopedName)
	c := exutil.NewName(exutil.Global, "EPSG", "4326")
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(exutil.NewName(nil, "4326")))

	x := exutil.NewName(nil, "x").(*exutil.LocalName)
	assert.True(t, x.Equal(exutil.NewName(exutil.Global, "x")))
	assert.False(t, x.Equal(exutil.NewName(exutil.NewNameSpace(":", "EPSG"), "x")))
	assert.Same(t, exutil.Global, x.Scope())
}

func TestInternationalString(t *testing.T) {
	s := exutil.NewInternationalString("Sea surface temperature").
		Add("FR", "Température de surface").
		Add("de-CH", "Meeresoberflächentemperatur")
	assert.Equal(t, "Sea surface temperature", s.String())
	assert.Equal(t, "Température de surface", s.Localized("fr-CA"))
	assert.Equal(t, "Meeresoberflächentemperatur", s.Localized("DE-ch"))
	assert.Equal(t, "Sea surface temperature", s.Localized("de"))
	assert.False(t, s.IsAbsent())

	var none *exutil.InternationalString
	assert.True(t, none.IsAbsent())
	assert.True(t, exutil.NewInternationalString("").IsAbsent())
	assert.True(t, exutil.Text("").IsAbsent())
	assert.Nil(t, exutil.OrNil(""))
	assert.Equal(t, exutil.Text("x"), exutil.OrNil("x"))
}
