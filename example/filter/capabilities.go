package filter

import "github.com/geoapi/geoconform/filter"

// Conformance lists the implemented conformance classes.
type Conformance struct {
	Query, AdHocQuery, Funcs, ResourceID   bool
	MinStandardFilter, StandardFilter      bool
	MinSpatialFilter, SpatialFilter        bool
	MinTemporalFilter, TemporalFilter      bool
	VersionNav, Sorting, ExtendedOperators bool
}

var _ filter.Conformance = Conformance{}

func (c Conformance) ImplementsQuery() bool             { return c.Query }
func (c Conformance) ImplementsAdHocQuery() bool        { return c.AdHocQuery }
func (c Conformance) ImplementsFunctions() bool         { return c.Funcs }
func (c Conformance) ImplementsResourceID() bool        { return c.ResourceID }
func (c Conformance) ImplementsMinStandardFilter() bool { return c.MinStandardFilter }
func (c Conformance) ImplementsStandardFilter() bool    { return c.StandardFilter }
func (c Conformance) ImplementsMinSpatialFilter() bool  { return c.MinSpatialFilter }
func (c Conformance) ImplementsSpatialFilter() bool     { return c.SpatialFilter }
func (c Conformance) ImplementsMinTemporalFilter() bool { return c.MinTemporalFilter }
func (c Conformance) ImplementsTemporalFilter() bool    { return c.TemporalFilter }
func (c Conformance) ImplementsVersionNav() bool        { return c.VersionNav }
func (c Conformance) ImplementsSorting() bool           { return c.Sorting }
func (c Conformance) ImplementsExtendedOperators() bool { return c.ExtendedOperators }

// Capabilities describes what this package implements.
type Capabilities struct {
	Conf    Conformance
	IDs     []string
	Scalar  []filter.OperatorType
	Spatial []filter.OperatorType
	Funcs   map[string]int
}

var _ filter.Capabilities = (*Capabilities)(nil)

// DefaultCapabilities returns the capabilities of the filters of this
// package.
func DefaultCapabilities() *Capabilities {
	return &Capabilities{
		Conf: Conformance{
			Query: true, AdHocQuery: true, Funcs: true,
			MinStandardFilter: true, StandardFilter: true,
			MinSpatialFilter: true,
		},
		Scalar: []filter.OperatorType{
			filter.OperatorEqual, filter.OperatorNotEqual, filter.OperatorLess, filter.OperatorGreater,
			filter.OperatorLessOrEqual, filter.OperatorGreaterOrEqual, filter.OperatorLike, filter.OperatorNull,
			filter.OperatorBetween, filter.OperatorAnd, filter.OperatorOr, filter.OperatorNot,
		},
		Spatial: []filter.OperatorType{filter.OperatorBBox},
		Funcs:   Functions(),
	}
}

func (c *Capabilities) Conformance() filter.Conformance            { return c.Conf }
func (c *Capabilities) IDCapabilities() []string                   { return c.IDs }
func (c *Capabilities) ScalarCapabilities() []filter.OperatorType  { return c.Scalar }
func (c *Capabilities) SpatialCapabilities() []filter.OperatorType { return c.Spatial }
func (c *Capabilities) Functions() map[string]int                  { return c.Funcs }
