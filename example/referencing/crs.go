package referencing

import (
	"fmt"

	"github.com/geoapi/geoconform/referencing"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
	"github.com/geoapi/geoconform/referencing/datum"
	"github.com/geoapi/geoconform/referencing/operation"
)

// SingleCRS is a CRS made of one coordinate system and one datum.
type SingleCRS struct {
	System
	kind  crs.Type
	cs    cs.CoordinateSystem
	datum datum.Datum
}

// NewSingleCRS creates a CRS of the given type. The coordinate system and
// datum types are not checked; the conformance validators do that.
func NewSingleCRS(props referencing.Properties, kind crs.Type, d datum.Datum, c cs.CoordinateSystem) (*SingleCRS, error) {
	s, err := NewSystem(props)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s needs a coordinate system", crs.ErrFactory, kind)
	}
	return &SingleCRS{System: s, kind: kind, cs: c, datum: d}, nil
}

func (c *SingleCRS) Type() crs.Type                        { return c.kind }
func (c *SingleCRS) CoordinateSystem() cs.CoordinateSystem { return c.cs }
func (c *SingleCRS) Datum() datum.Datum                    { return c.datum }

// DerivedCRS is a CRS defined by a conversion from a base CRS. Projected
// CRS are derived CRS of type crs.Projected.
type DerivedCRS struct {
	SingleCRS
	base       crs.CRS
	conversion operation.SingleOperation
}

// NewDerivedCRS creates a derived or projected CRS. The datum is the one of
// the base CRS. A conversion providing WithCRS is attached to base and to
// the new CRS.
func NewDerivedCRS(props referencing.Properties, kind crs.Type, base crs.Single, conversion operation.SingleOperation, c cs.CoordinateSystem) (*DerivedCRS, error) {
	if base == nil || conversion == nil {
		return nil, fmt.Errorf("%w: %s needs a base CRS and a conversion", crs.ErrFactory, kind)
	}
	single, err := NewSingleCRS(props, kind, base.Datum(), c)
	if err != nil {
		return nil, err
	}
	d := &DerivedCRS{SingleCRS: *single, base: base, conversion: conversion}
	if b, ok := conversion.(crsBinder); ok {
		d.conversion = b.WithCRS(base, d)
	}
	return d, nil
}

// crsBinder is implemented by conversions able to return a copy of
// themselves attached to a source and target CRS.
type crsBinder interface {
	WithCRS(source, target referencing.ReferenceSystem) operation.SingleOperation
}

func (c *DerivedCRS) BaseCRS() crs.CRS                              { return c.base }
func (c *DerivedCRS) ConversionFromBase() operation.SingleOperation { return c.conversion }

// CompoundCRS is the association of two or more CRS.
type CompoundCRS struct {
	System
	components []crs.CRS
}

// NewCompoundCRS creates a compound CRS.
func NewCompoundCRS(props referencing.Properties, components ...crs.CRS) (*CompoundCRS, error) {
	s, err := NewSystem(props)
	if err != nil {
		return nil, err
	}
	if len(components) < 2 {
		return nil, fmt.Errorf("%w: compound CRS needs at least two components", crs.ErrFactory)
	}
	return &CompoundCRS{System: s, components: append([]crs.CRS(nil), components...)}, nil
}

func (c *CompoundCRS) Type() crs.Type                        { return crs.Compound }
func (c *CompoundCRS) CoordinateSystem() cs.CoordinateSystem { return nil }
func (c *CompoundCRS) Components() []crs.CRS                 { return c.components }
