package metadata

import (
	"time"

	"github.com/geoapi/geoconform/metadata"
	"github.com/geoapi/geoconform/util"
)

// Extent is the spatial and temporal extent of a resource.
type Extent struct {
	Text       util.InternationalString
	Geographic []metadata.GeographicExtent
	Vertical   []metadata.VerticalExtent
	Temporal   []metadata.TemporalExtent
}

func (e *Extent) Description() util.InternationalString           { return e.Text }
func (e *Extent) GeographicElements() []metadata.GeographicExtent { return e.Geographic }
func (e *Extent) VerticalElements() []metadata.VerticalExtent     { return e.Vertical }
func (e *Extent) TemporalElements() []metadata.TemporalExtent     { return e.Temporal }

// NewBoundingBoxExtent creates an extent made of a single bounding box.
func NewBoundingBoxExtent(west, east, south, north float64) *Extent {
	return &Extent{Geographic: []metadata.GeographicExtent{&BoundingBox{West: west, East: east, South: south, North: north}}}
}

// BoundingBox is a geographic area in decimal degrees.
type BoundingBox struct {
	West, East   float64
	South, North float64
	// Inclusion is nil when unspecified.
	Inclusion *bool
}

func (b *BoundingBox) InclusionPresent() *bool     { return b.Inclusion }
func (b *BoundingBox) WestBoundLongitude() float64 { return b.West }
func (b *BoundingBox) EastBoundLongitude() float64 { return b.East }
func (b *BoundingBox) SouthBoundLatitude() float64 { return b.South }
func (b *BoundingBox) NorthBoundLatitude() float64 { return b.North }

// GeographicDescription is an area identified by a code.
type GeographicDescription struct {
	Code      metadata.Identifier
	Inclusion *bool
}

func (g *GeographicDescription) InclusionPresent() *bool                   { return g.Inclusion }
func (g *GeographicDescription) GeographicIdentifier() metadata.Identifier { return g.Code }

// VerticalExtent is a vertical domain.
type VerticalExtent struct {
	Min, Max float64
}

func (v *VerticalExtent) MinimumValue() float64 { return v.Min }
func (v *VerticalExtent) MaximumValue() float64 { return v.Max }

// TemporalExtent is a time period. A zero End is an instant.
type TemporalExtent struct {
	Begin, End time.Time
}

func (t *TemporalExtent) Extent() (begin, end time.Time) { return t.Begin, t.End }
