package conformance

import (
	"context"
	"math"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/geometry"
	"github.com/geoapi/geoconform/referencing/crs"
	"github.com/geoapi/geoconform/referencing/cs"
)

// GeometryValidator validates direct positions and envelopes.
type GeometryValidator struct {
	Validator
	// Tolerance is relative to the envelope span or the axis range.
	Tolerance float64
}

// NewGeometryValidator creates a validator delegating other packages to c.
func NewGeometryValidator(c *Container) *GeometryValidator {
	return &GeometryValidator{Validator: newValidator(c, "geoapi.geometry"), Tolerance: DefaultTolerance}
}

// ValidateEnvelope validates an envelope and its corners.
func (v *GeometryValidator) ValidateEnvelope(ctx context.Context, obj geometry.Envelope) error {
	r := geoconform.NewReport(ctx)
	v.validateEnvelope(r, geoconform.Root(), obj)
	return r.Err()
}

// ValidatePosition validates a direct position.
func (v *GeometryValidator) ValidatePosition(ctx context.Context, obj geometry.DirectPosition) error {
	r := geoconform.NewReport(ctx)
	v.validatePosition(r, geoconform.Root(), obj)
	return r.Err()
}

func (v *GeometryValidator) validateEnvelope(r *geoconform.Report, p geoconform.PathRef, obj geometry.Envelope) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	dim := obj.Dimension()
	if !v.check(r, dim >= 0, p.Field("dimension"), geoconform.CodeInvalidDimension, "Envelope: dimension can not be negative.", "actual", dim) {
		return
	}
	ref := obj.CRS()
	var system cs.CoordinateSystem
	if !geoconform.IsNil(ref) {
		v.container.CRS.dispatch(r, p.Field("crs"), ref)
		if system = ref.CoordinateSystem(); !geoconform.IsNil(system) {
			v.checkEqualInt(r, p.Field("dimension"), geoconform.CodeInvalidDimension,
				"Envelope: CRS dimension shall be equal to the envelope dimension.", system.Dimension(), dim)
		}
	}
	lower, upper := obj.LowerCorner(), obj.UpperCorner()
	hasLower := v.mandatory(r, p.Field("lowerCorner"), "GM_Envelope.lowerCorner", "Envelope: shall have a lower corner.", lower)
	hasUpper := v.mandatory(r, p.Field("upperCorner"), "GM_Envelope.upperCorner", "Envelope: shall have an upper corner.", upper)
	var lowerCRS, upperCRS crs.CRS
	if hasLower {
		v.validatePosition(r, p.Field("lowerCorner"), lower)
		lowerCRS = lower.CRS()
		v.checkEqualInt(r, p.Field("lowerCorner").Field("dimension"), geoconform.CodeInvalidDimension,
			"Envelope: lower corner dimension shall be equal to the envelope dimension.", dim, lower.Dimension())
	}
	if hasUpper {
		v.validatePosition(r, p.Field("upperCorner"), upper)
		upperCRS = upper.CRS()
		v.checkEqualInt(r, p.Field("upperCorner").Field("dimension"), geoconform.CodeInvalidDimension,
			"Envelope: upper corner dimension shall be equal to the envelope dimension.", dim, upper.Dimension())
	}
	switch {
	case !geoconform.IsNil(ref):
		if !geoconform.IsNil(lowerCRS) {
			v.check(r, sameObject(ref, lowerCRS), p.Field("lowerCorner").Field("crs"), geoconform.CodeInconsistentValue,
				"Envelope: lower CRS shall be the same than the envelope CRS.")
		}
		if !geoconform.IsNil(upperCRS) {
			v.check(r, sameObject(ref, upperCRS), p.Field("upperCorner").Field("crs"), geoconform.CodeInconsistentValue,
				"Envelope: upper CRS shall be the same than the envelope CRS.")
		}
	case !geoconform.IsNil(lowerCRS) && !geoconform.IsNil(upperCRS):
		v.check(r, sameObject(lowerCRS, upperCRS), p.Field("upperCorner").Field("crs"), geoconform.CodeInconsistentValue,
			"Envelope: the two corners shall have the same CRS.")
	}
	for i := 0; i < dim; i++ {
		dp := p.Field("dimensions").Index(i)
		lo, up := math.NaN(), math.NaN()
		if hasLower && i < lower.Dimension() {
			lo = lower.Ordinate(i)
		}
		if hasUpper && i < upper.Dimension() {
			up = upper.Ordinate(i)
		}
		minimum, maximum := obj.Minimum(i), obj.Maximum(i)
		median, span := obj.Median(i), obj.Span(i)
		if !math.IsNaN(minimum) && !math.IsNaN(maximum) {
			if lo <= up {
				eps := (up - lo) * v.Tolerance
				v.checkClose(r, dp.Field("minimum"), "Envelope: minimum value shall be equal to the lower corner ordinate.", lo, minimum, eps)
				v.checkClose(r, dp.Field("maximum"), "Envelope: maximum value shall be equal to the upper corner ordinate.", up, maximum, eps)
				v.checkClose(r, dp.Field("span"), "Envelope: unexpected span value.", maximum-minimum, span, eps)
				v.checkClose(r, dp.Field("median"), "Envelope: unexpected median value.", (maximum+minimum)/2, median, eps)
			} else {
				v.checkRange(r, dp, "Envelope: invalid minimum or maximum.", minimum, maximum)
				v.checkBetween(r, dp.Field("lower"), geoconform.CodeInvalidRange, "Envelope: invalid lower ordinate.", minimum, maximum, lo)
				v.checkBetween(r, dp.Field("upper"), geoconform.CodeInvalidRange, "Envelope: invalid upper ordinate.", minimum, maximum, up)
				v.checkBetween(r, dp.Field("median"), geoconform.CodeInvalidRange, "Envelope: invalid median ordinate.", minimum, maximum, median)
			}
		}
		if lo > up && !geoconform.IsNil(system) && i < system.Dimension() {
			if axis := system.Axis(i); !geoconform.IsNil(axis) {
				v.check(r, axis.RangeMeaning() == cs.Wraparound, dp, geoconform.CodeInvalidRange,
					"Envelope: lower ordinate value may be greater than upper ordinate value only on axis having wraparound range.",
					"lower", lo, "upper", up)
			}
		}
	}
}

// checkClose compares with an absolute tolerance. NaN expected values are
// only equal to NaN.
func (v *GeometryValidator) checkClose(r *geoconform.Report, p geoconform.PathRef, msg string, expected, actual, eps float64) bool {
	if math.IsNaN(expected) && math.IsNaN(actual) {
		return true
	}
	if expected == actual || math.Abs(expected-actual) <= eps {
		return true
	}
	v.fail(r, p, geoconform.CodeInconsistentValue, msg, "expected", expected, "actual", actual, "tolerance", eps)
	return false
}

func (v *GeometryValidator) validatePosition(r *geoconform.Report, p geoconform.PathRef, obj geometry.DirectPosition) {
	if geoconform.IsNil(obj) || r.Done() {
		return
	}
	dim := obj.Dimension()
	if !v.check(r, dim >= 0, p.Field("dimension"), geoconform.CodeInvalidDimension, "DirectPosition: dimension can not be negative.", "actual", dim) {
		return
	}
	coords := obj.Coordinates()
	if !v.mandatory(r, p.Field("coordinates"), "DirectPosition.coordinate", "DirectPosition: coordinate array can not be nil.", coords) && dim > 0 {
		return
	}
	if !v.checkEqualInt(r, p.Field("coordinates"), geoconform.CodeInvalidDimension,
		"DirectPosition: coordinate array length shall be equal to the dimension.", dim, len(coords)) {
		return
	}
	for i := 0; i < dim; i++ {
		o := obj.Ordinate(i)
		if !(o == coords[i] || math.IsNaN(o) && math.IsNaN(coords[i])) {
			v.fail(r, p.Field("coordinates").Index(i), geoconform.CodeInconsistentValue,
				"DirectPosition: Ordinate(i) shall be the same than Coordinates()[i].", "expected", coords[i], "actual", o)
		}
	}
	if ref := obj.CRS(); !geoconform.IsNil(ref) {
		v.container.CRS.dispatch(r, p.Field("crs"), ref)
		if system := ref.CoordinateSystem(); !geoconform.IsNil(system) {
			if v.checkEqualInt(r, p.Field("dimension"), geoconform.CodeInvalidDimension,
				"DirectPosition: CRS dimension must matches the position dimension.", system.Dimension(), dim) {
				for i := 0; i < dim; i++ {
					axis := system.Axis(i)
					if geoconform.IsNil(axis) {
						continue
					}
					minimum, maximum := axis.MinimumValue(), axis.MaximumValue()
					lo, hi := minimum, maximum
					if !math.IsInf(minimum, 0) && !math.IsInf(maximum, 0) {
						eps := (maximum - minimum) * v.Tolerance
						lo, hi = minimum-eps, maximum+eps
					}
					v.checkBetween(r, p.Field("coordinates").Index(i), geoconform.CodeInvalidRange,
						"DirectPosition: ordinate out of axis bounds.", lo, hi, coords[i])
				}
			}
		}
	}
	// Coordinates shall return a copy.
	for i := 0; i < dim; i++ {
		old := coords[i]
		coords[i] = old*2 + 1
		if o := obj.Ordinate(i); !(o == old || math.IsNaN(o) && math.IsNaN(old)) {
			v.fail(r, p.Field("coordinates"), geoconform.CodeInconsistentValue, "DirectPosition: coordinate array shall be cloned.")
			break
		}
	}
	if eq, ok := obj.(Equaler); ok {
		v.check(r, eq.Equal(obj), p, geoconform.CodeEqualityContract, "DirectPosition: shall be equal to itself.")
	}
}
