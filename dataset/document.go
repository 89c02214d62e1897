package dataset

import (
	"errors"
	"fmt"
	"strings"

	exmeta "github.com/geoapi/geoconform/example/metadata"
	exop "github.com/geoapi/geoconform/example/operation"
	"github.com/geoapi/geoconform/example/projstring"
	exref "github.com/geoapi/geoconform/example/referencing"
	exutil "github.com/geoapi/geoconform/example/util"
	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/units"
)

// ErrDocument reports a CRS document that can not be built.
var ErrDocument = errors.New("dataset: invalid document")

// Document describes a coordinate reference system in YAML or JSON. A
// document either gives a PROJ definition in Proj or describes the CRS
// explicitly.
type Document struct {
	Type       string      `yaml:"type" json:"type"`
	Name       string      `yaml:"name" json:"name"`
	Identifier string      `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Aliases    []string    `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Remarks    string      `yaml:"remarks,omitempty" json:"remarks,omitempty"`
	Scope      string      `yaml:"scope,omitempty" json:"scope,omitempty"`
	Area       *Area       `yaml:"area,omitempty" json:"area,omitempty"`
	Proj       string      `yaml:"proj,omitempty" json:"proj,omitempty"`
	Datum      *Datum      `yaml:"datum,omitempty" json:"datum,omitempty"`
	CS         *CS         `yaml:"coordinateSystem,omitempty" json:"coordinateSystem,omitempty"`
	Base       *Document   `yaml:"base,omitempty" json:"base,omitempty"`
	Conversion *Conversion `yaml:"conversion,omitempty" json:"conversion,omitempty"`
	Components []*Document `yaml:"components,omitempty" json:"components,omitempty"`
}

// Area is a domain of validity in decimal degrees.
type Area struct {
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	West        float64 `yaml:"west" json:"west"`
	East        float64 `yaml:"east" json:"east"`
	South       float64 `yaml:"south" json:"south"`
	North       float64 `yaml:"north" json:"north"`
}

// Datum describes a geodetic or vertical datum.
type Datum struct {
	Name          string         `yaml:"name" json:"name"`
	Identifier    string         `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Ellipsoid     *Ellipsoid     `yaml:"ellipsoid,omitempty" json:"ellipsoid,omitempty"`
	PrimeMeridian *PrimeMeridian `yaml:"primeMeridian,omitempty" json:"primeMeridian,omitempty"`
	VerticalType  string         `yaml:"verticalType,omitempty" json:"verticalType,omitempty"`
}

// Ellipsoid gives either the semi-minor axis or the inverse flattening.
type Ellipsoid struct {
	Name              string  `yaml:"name" json:"name"`
	Identifier        string  `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	SemiMajorAxis     float64 `yaml:"semiMajorAxis" json:"semiMajorAxis"`
	SemiMinorAxis     float64 `yaml:"semiMinorAxis,omitempty" json:"semiMinorAxis,omitempty"`
	InverseFlattening float64 `yaml:"inverseFlattening,omitempty" json:"inverseFlattening,omitempty"`
	Unit              string  `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// PrimeMeridian defaults to Greenwich when omitted.
type PrimeMeridian struct {
	Name       string  `yaml:"name" json:"name"`
	Identifier string  `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Longitude  float64 `yaml:"longitude" json:"longitude"`
	Unit       string  `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// CS describes a coordinate system.
type CS struct {
	Type string  `yaml:"type" json:"type"`
	Name string  `yaml:"name" json:"name"`
	Axes []*Axis `yaml:"axes" json:"axes"`
}

// Axis describes a coordinate system axis.
type Axis struct {
	Name         string `yaml:"name" json:"name"`
	Abbreviation string `yaml:"abbreviation" json:"abbreviation"`
	Direction    string `yaml:"direction" json:"direction"`
	Unit         string `yaml:"unit" json:"unit"`
}

// Conversion names a method and its parameter values, each in the unit of
// the parameter descriptor.
type Conversion struct {
	Name       string             `yaml:"name,omitempty" json:"name,omitempty"`
	Method     string             `yaml:"method" json:"method"`
	Parameters map[string]float64 `yaml:"parameters" json:"parameters"`
}

// Builder creates CRS objects from documents.
type Builder struct {
	Objects    exref.Factory
	Operations *exop.Factory
}

// NewBuilder returns a builder using the example factories.
func NewBuilder() *Builder {
	return &Builder{Operations: exop.NewFactory()}
}

// Build creates the CRS described by d.
func (b *Builder) Build(d *Document) (crs.CRS, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: empty document", ErrDocument)
	}
	if d.Proj != "" {
		def, err := projstring.Parse(d.Proj)
		if err != nil {
			return nil, err
		}
		if def.Title == "" {
			def.Title = d.Name
		}
		return (&projstring.Builder{Objects: b.Objects, Operations: b.Operations}).CRS(def)
	}
	switch strings.ToLower(d.Type) {
	case "geographic", "geocentric":
		return b.geodetic(d)
	case "projected":
		return b.projected(d)
	case "vertical":
		return b.vertical(d)
	case "compound":
		return b.compound(d)
	}
	return nil, fmt.Errorf("%w: %s: unknown type %q", ErrDocument, d.Name, d.Type)
}

func (d *Document) properties() referencing.Properties {
	p := props(d.Name, d.Identifier)
	if len(d.Aliases) > 0 {
		p[referencing.AliasKey] = d.Aliases
	}
	if d.Remarks != "" {
		p[referencing.RemarksKey] = d.Remarks
	}
	if d.Scope != "" {
		p[referencing.ScopeKey] = d.Scope
	}
	if d.Area != nil {
		e := exmeta.NewBoundingBoxExtent(d.Area.West, d.Area.East, d.Area.South, d.Area.North)
		if d.Area.Description != "" {
			e.Text = exutil.Text(d.Area.Description)
		}
		p[referencing.DomainOfValidityKey] = metadata.Extent(e)
	}
	return p
}

func props(name, identifier string) referencing.Properties {
	p := referencing.Named(name)
	if identifier != "" {
		p[referencing.IdentifiersKey] = identifier
	}
	return p
}

func unit(name string, def units.Unit) (units.Unit, error) {
	if name == "" {
		return def, nil
	}
	u, ok := units.ByName(name)
	if !ok {
		return units.Unit{}, fmt.Errorf("%w: unknown unit %q", ErrDocument, name)
	}
	return u, nil
}

func (b *Builder) geodeticDatum(d *Datum) (datum.GeodeticDatum, error) {
	if d == nil || d.Ellipsoid == nil {
		return nil, fmt.Errorf("%w: geodetic datum needs an ellipsoid", ErrDocument)
	}
	e := d.Ellipsoid
	u, err := unit(e.Unit, units.Metre)
	if err != nil {
		return nil, err
	}
	var ellipsoid datum.Ellipsoid
	if e.InverseFlattening != 0 {
		ellipsoid, err = b.Objects.CreateFlattenedSphere(props(e.Name, e.Identifier), e.SemiMajorAxis, e.InverseFlattening, u)
	} else {
		minor := e.SemiMinorAxis
		if minor == 0 {
			minor = e.SemiMajorAxis
		}
		ellipsoid, err = b.Objects.CreateEllipsoid(props(e.Name, e.Identifier), e.SemiMajorAxis, minor, u)
	}
	if err != nil {
		return nil, err
	}
	var pm datum.PrimeMeridian = exref.Greenwich()
	if m := d.PrimeMeridian; m != nil {
		u, err := unit(m.Unit, units.Degree)
		if err != nil {
			return nil, err
		}
		if pm, err = b.Objects.CreatePrimeMeridian(props(m.Name, m.Identifier), m.Longitude, u); err != nil {
			return nil, err
		}
	}
	return b.Objects.CreateGeodeticDatum(props(d.Name, d.Identifier), ellipsoid, pm)
}

func (b *Builder) coordinateSystem(c *CS) (cs.CoordinateSystem, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: missing coordinate system", ErrDocument)
	}
	axes := make([]cs.Axis, len(c.Axes))
	for i, a := range c.Axes {
		dir, ok := cs.DirectionOf(a.Direction)
		if !ok {
			return nil, fmt.Errorf("%w: axis %q: unknown direction %q", ErrDocument, a.Name, a.Direction)
		}
		u, err := unit(a.Unit, units.Unit{})
		if err != nil {
			return nil, err
		}
		if axes[i], err = b.Objects.CreateAxis(referencing.Named(a.Name), a.Abbreviation, dir, u); err != nil {
			return nil, err
		}
	}
	name := referencing.Named(c.Name)
	switch strings.ToLower(c.Type) {
	case "ellipsoidal":
		return b.Objects.CreateEllipsoidalCS(name, axes...)
	case "cartesian":
		return b.Objects.CreateCartesianCS(name, axes...)
	case "spherical":
		return b.Objects.CreateSphericalCS(name, axes...)
	case "vertical":
		if len(axes) != 1 {
			return nil, fmt.Errorf("%w: vertical coordinate system needs one axis", ErrDocument)
		}
		return b.Objects.CreateVerticalCS(name, axes[0])
	}
	return nil, fmt.Errorf("%w: unknown coordinate system type %q", ErrDocument, c.Type)
}

func (b *Builder) geodetic(d *Document) (crs.CRS, error) {
	gd, err := b.geodeticDatum(d.Datum)
	if err != nil {
		return nil, err
	}
	c, err := b.coordinateSystem(d.CS)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(d.Type, "geocentric") {
		return b.Objects.CreateGeocentricCRS(d.properties(), gd, c)
	}
	return b.Objects.CreateGeographicCRS(d.properties(), gd, c)
}

func (b *Builder) projected(d *Document) (crs.CRS, error) {
	if d.Base == nil || d.Conversion == nil {
		return nil, fmt.Errorf("%w: %s: projected CRS needs a base and a conversion", ErrDocument, d.Name)
	}
	built, err := b.Build(d.Base)
	if err != nil {
		return nil, err
	}
	base, ok := built.(crs.Single)
	if !ok {
		return nil, fmt.Errorf("%w: %s: base is not a single CRS", ErrDocument, d.Name)
	}
	params, err := b.Operations.Parameters(d.Conversion.Method, d.Conversion.Parameters)
	if err != nil {
		return nil, err
	}
	name := d.Conversion.Name
	if name == "" {
		name = d.Name
	}
	conversion, err := b.Operations.CreateConversion(referencing.Named(name), params)
	if err != nil {
		return nil, err
	}
	c, err := b.coordinateSystem(d.CS)
	if err != nil {
		return nil, err
	}
	return b.Objects.CreateProjectedCRS(d.properties(), base, conversion, c)
}

func (b *Builder) vertical(d *Document) (crs.CRS, error) {
	if d.Datum == nil {
		return nil, fmt.Errorf("%w: %s: vertical CRS needs a datum", ErrDocument, d.Name)
	}
	t, ok := datum.VerticalDatumTypeOf(d.Datum.VerticalType)
	if !ok && d.Datum.VerticalType != "" {
		return nil, fmt.Errorf("%w: unknown vertical datum type %q", ErrDocument, d.Datum.VerticalType)
	}
	vd, err := b.Objects.CreateVerticalDatum(props(d.Datum.Name, d.Datum.Identifier), t)
	if err != nil {
		return nil, err
	}
	c, err := b.coordinateSystem(d.CS)
	if err != nil {
		return nil, err
	}
	return b.Objects.CreateVerticalCRS(d.properties(), vd, c)
}

func (b *Builder) compound(d *Document) (crs.CRS, error) {
	components := make([]crs.CRS, len(d.Components))
	for i, c := range d.Components {
		var err error
		if components[i], err = b.Build(c); err != nil {
			return nil, fmt.Errorf("%s: component %d: %w", d.Name, i, err)
		}
	}
	return b.Objects.CreateCompoundCRS(d.properties(), components...)
}
