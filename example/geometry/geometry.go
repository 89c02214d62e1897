// Package geometry provides direct positions and envelopes backed by plain
// float slices.
package geometry

import (
	"fmt"
	"hash/fnv"
	"math"
	"slices"
	"strings"

	"github.com/geoapi/geoconform/geometry"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
)

// Position is a geometry.DirectPosition.
type Position struct {
	crs    crs.CRS
	coords []float64
}

var _ geometry.DirectPosition = (*Position)(nil)

// NewPosition creates a position. The CRS may be nil. When it is not, the
// number of ordinates must match its dimension.
func NewPosition(c crs.CRS, coords ...float64) (*Position, error) {
	if c != nil {
		if dim := crs.Dimension(c); dim != len(coords) {
			return nil, fmt.Errorf("geometry: %d ordinates given for a %d-dimensional CRS", len(coords), dim)
		}
	}
	return &Position{crs: c, coords: slices.Clone(coords)}, nil
}

func (p *Position) CRS() crs.CRS           { return p.crs }
func (p *Position) Dimension() int         { return len(p.coords) }
func (p *Position) Coordinates() []float64 { return slices.Clone(p.coords) }
func (p *Position) Ordinate(i int) float64 { return p.coords[i] }

// SetOrdinate changes one ordinate in place.
func (p *Position) SetOrdinate(i int, v float64) { p.coords[i] = v }

// Equal compares the CRS and the ordinates. NaN ordinates are equal to
// each other.
func (p *Position) Equal(other any) bool {
	o, ok := other.(geometry.DirectPosition)
	if !ok || o == nil {
		return false
	}
	if op, ok := o.(*Position); ok && op == nil {
		return false
	}
	if o.Dimension() != p.Dimension() {
		return false
	}
	if p.crs != o.CRS() {
		return false
	}
	for i, v := range p.coords {
		w := o.Ordinate(i)
		if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
			return false
		}
	}
	return true
}

func (p *Position) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range p.coords {
		switch {
		case math.IsNaN(v):
			v = math.NaN()
		case v == 0:
			v = 0 // -0 and +0 are equal
		}
		bits := math.Float64bits(v)
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

// String formats the position as POINT(x y ...).
func (p *Position) String() string {
	parts := make([]string, len(p.coords))
	for i, v := range p.coords {
		parts[i] = fmt.Sprint(v)
	}
	return "POINT(" + strings.Join(parts, " ") + ")"
}

// Envelope is a geometry.Envelope. The lower ordinate may exceed the upper
// one along a wraparound axis.
type Envelope struct {
	crs          crs.CRS
	lower, upper []float64
}

var _ geometry.Envelope = (*Envelope)(nil)

// NewEnvelope creates an envelope from two corners of the same dimension.
// A lower ordinate greater than the upper one is accepted only along
// wraparound axes of the CRS.
func NewEnvelope(c crs.CRS, lower, upper []float64) (*Envelope, error) {
	if len(lower) != len(upper) {
		return nil, fmt.Errorf("geometry: corner dimensions differ (%d and %d)", len(lower), len(upper))
	}
	if c != nil {
		if dim := crs.Dimension(c); dim != len(lower) {
			return nil, fmt.Errorf("geometry: %d ordinates given for a %d-dimensional CRS", len(lower), dim)
		}
	}
	e := &Envelope{crs: c, lower: slices.Clone(lower), upper: slices.Clone(upper)}
	for i := range lower {
		if lower[i] > upper[i] && !e.wraps(i) {
			return nil, fmt.Errorf("geometry: lower ordinate %g greater than upper %g in dimension %d", lower[i], upper[i], i)
		}
	}
	return e, nil
}

func (e *Envelope) CRS() crs.CRS   { return e.crs }
func (e *Envelope) Dimension() int { return len(e.lower) }

func (e *Envelope) LowerCorner() geometry.DirectPosition {
	return &Position{crs: e.crs, coords: slices.Clone(e.lower)}
}

func (e *Envelope) UpperCorner() geometry.DirectPosition {
	return &Position{crs: e.crs, coords: slices.Clone(e.upper)}
}

// Minimum is the lower ordinate, or the axis minimum when the envelope
// crosses the wraparound limit.
func (e *Envelope) Minimum(dim int) float64 {
	if e.lower[dim] > e.upper[dim] {
		if a := e.axis(dim); a != nil {
			return a.MinimumValue()
		}
		return math.Inf(-1)
	}
	return e.lower[dim]
}

func (e *Envelope) Maximum(dim int) float64 {
	if e.lower[dim] > e.upper[dim] {
		if a := e.axis(dim); a != nil {
			return a.MaximumValue()
		}
		return math.Inf(1)
	}
	return e.upper[dim]
}

// Median is the middle of the span. For an envelope crossing the
// wraparound limit it is computed in the continuous range then wrapped back.
func (e *Envelope) Median(dim int) float64 {
	lo, up := e.lower[dim], e.upper[dim]
	if lo <= up {
		return (lo + up) / 2
	}
	a := e.axis(dim)
	if a == nil {
		return math.NaN()
	}
	period := a.MaximumValue() - a.MinimumValue()
	m := (lo + up + period) / 2
	if m > a.MaximumValue() {
		m -= period
	}
	return m
}

func (e *Envelope) Span(dim int) float64 {
	lo, up := e.lower[dim], e.upper[dim]
	if lo <= up {
		return up - lo
	}
	a := e.axis(dim)
	if a == nil {
		return math.NaN()
	}
	return up - lo + a.MaximumValue() - a.MinimumValue()
}

func (e *Envelope) axis(dim int) cs.Axis {
	if e.crs == nil {
		return nil
	}
	c := e.crs.CoordinateSystem()
	if c == nil || dim >= c.Dimension() {
		return nil
	}
	return c.Axis(dim)
}

func (e *Envelope) wraps(dim int) bool {
	a := e.axis(dim)
	return a != nil && a.RangeMeaning() == cs.Wraparound &&
		!math.IsInf(a.MinimumValue(), 0) && !math.IsInf(a.MaximumValue(), 0)
}

// Contains reports whether p lies inside the envelope, honoring
// wraparound crossing.
func (e *Envelope) Contains(p geometry.DirectPosition) bool {
	if p.Dimension() != e.Dimension() {
		return false
	}
	for i := range e.lower {
		v, lo, up := p.Ordinate(i), e.lower[i], e.upper[i]
		if lo <= up {
			if v < lo || v > up {
				return false
			}
		} else if v < lo && v > up {
			return false
		}
	}
	return true
}

func (e *Envelope) String() string {
	return fmt.Sprintf("BOX(%v, %v)", e.lower, e.upper)
}
