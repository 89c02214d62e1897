// Package geometry declares positions and envelopes (ISO 19107).
package geometry

import "github.com/geoapi/geoconform/referencing/crs"

// DirectPosition holds the coordinates of a position within some CRS.
type DirectPosition interface {
	// CRS may be nil when the position is held by a geometry knowing its CRS.
	CRS() crs.CRS
	Dimension() int
	// Coordinates returns a copy of the ordinates.
	Coordinates() []float64
	Ordinate(i int) float64
}

// Envelope is a minimum bounding box. Along a wraparound axis the lower
// ordinate may be greater than the upper one when the envelope crosses the
// anti-meridian.
type Envelope interface {
	CRS() crs.CRS
	Dimension() int
	LowerCorner() DirectPosition
	UpperCorner() DirectPosition
	Minimum(dim int) float64
	Maximum(dim int) float64
	Median(dim int) float64
	Span(dim int) float64
}
