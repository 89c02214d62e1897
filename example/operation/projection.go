package operation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/geoapi/geoconform/referencing/operation"
)

const (
	maxIterations      = 15
	iterationTolerance = 1e-12
)

// kernel is the non-linear part of a map projection. It works on angles in
// radians relative to the projection origin and produces coordinates on an
// ellipsoid of semi-major axis 1. Scale factors, false easting/northing and
// unit conversions live in the affine steps around it.
type kernel interface {
	project(λ, φ float64) (x, y float64)
	// jacobian returns ∂x/∂λ, ∂x/∂φ, ∂y/∂λ, ∂y/∂φ.
	jacobian(λ, φ float64) (xλ, xφ, yλ, yφ float64)
	unproject(x, y float64) (λ, φ float64, err error)
}

// projection wraps a kernel as a two-dimensional math transform.
type projection struct {
	name    string
	k       kernel
	inverse bool
}

var _ operation.MathTransform = (*projection)(nil)

func (p *projection) SourceDimensions() int { return 2 }
func (p *projection) TargetDimensions() int { return 2 }
func (p *projection) IsIdentity() bool      { return false }

// Transform projects or unprojects every point. A point failing to
// converge is set to NaN and the first such failure is returned after
// every point has been processed.
func (p *projection) Transform(dst, src []float64) error {
	n, err := pointCount(p, dst, src)
	if err != nil {
		return err
	}
	src = readable(dst, src, 2, 2)
	var failure error
	for i := 0; i < n; i++ {
		a, b := src[2*i], src[2*i+1]
		var x, y float64
		if p.inverse {
			x, y, err = p.k.unproject(a, b)
			if err != nil && failure == nil {
				failure = err
			}
		} else {
			x, y = p.k.project(a, b)
		}
		dst[2*i], dst[2*i+1] = x, y
	}
	return failure
}

func (p *projection) Derivative(point []float64) (*mat.Dense, error) {
	if len(point) != 2 {
		return nil, fmt.Errorf("%w: expected 2 ordinates, got %d", operation.ErrTransform, len(point))
	}
	if !p.inverse {
		xλ, xφ, yλ, yφ := p.k.jacobian(point[0], point[1])
		return mat.NewDense(2, 2, []float64{xλ, xφ, yλ, yφ}), nil
	}
	λ, φ, err := p.k.unproject(point[0], point[1])
	if err != nil {
		return nil, err
	}
	xλ, xφ, yλ, yφ := p.k.jacobian(λ, φ)
	var d mat.Dense
	if err := d.Inverse(mat.NewDense(2, 2, []float64{xλ, xφ, yλ, yφ})); err != nil {
		return nil, fmt.Errorf("%w: singular derivative at (%g, %g): %v", operation.ErrTransform, point[0], point[1], err)
	}
	return &d, nil
}

func (p *projection) Inverse() (operation.MathTransform, error) {
	return &projection{name: p.name, k: p.k, inverse: !p.inverse}, nil
}

func (p *projection) String() string {
	if p.inverse {
		return "Inverse" + p.name
	}
	return p.name
}

// isometricT is the t function of EPSG guidance note 7-2, equal to
// exp(-ψ) where ψ is the isometric latitude.
func isometricT(φ, e float64) float64 {
	es := e * math.Sin(φ)
	return math.Tan(math.Pi/4-φ/2) / math.Pow((1-es)/(1+es), e/2)
}

// dLnT is the derivative of ln t with respect to φ.
func dLnT(φ, e float64) float64 {
	s := math.Sin(φ)
	return -(1 - e*e) / ((1 - e*e*s*s) * math.Cos(φ))
}

// latitude inverts isometricT by fixed-point iteration.
func latitude(t, e float64) (float64, error) {
	φ := math.Pi/2 - 2*math.Atan(t)
	if e == 0 || math.IsNaN(t) {
		return φ, nil
	}
	for i := 0; i < maxIterations; i++ {
		es := e * math.Sin(φ)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-es)/(1+es), e/2))
		if math.Abs(next-φ) <= iterationTolerance {
			return next, nil
		}
		φ = next
	}
	return math.NaN(), fmt.Errorf("%w: latitude did not converge for t=%g", operation.ErrTransform, t)
}

// conformalFactor is the m function of EPSG guidance note 7-2.
func conformalFactor(φ, e float64) float64 {
	s := math.Sin(φ)
	return math.Cos(φ) / math.Sqrt(1-e*e*s*s)
}

// mercator is the normal case of the Mercator projection. With e = 0 it is
// the spherical formula used by Pseudo-Mercator.
type mercator struct{ e float64 }

func (m mercator) project(λ, φ float64) (float64, float64) {
	if math.Abs(φ) > math.Pi/2 {
		return math.NaN(), math.NaN()
	}
	return λ, -math.Log(isometricT(φ, m.e))
}

func (m mercator) jacobian(_, φ float64) (float64, float64, float64, float64) {
	return 1, 0, 0, -dLnT(φ, m.e)
}

func (m mercator) unproject(x, y float64) (float64, float64, error) {
	φ, err := latitude(math.Exp(-y), m.e)
	return x, φ, err
}

// miller is the spherical Miller cylindrical projection.
type miller struct{}

func (miller) project(λ, φ float64) (float64, float64) {
	if math.Abs(φ) > math.Pi/2 {
		return math.NaN(), math.NaN()
	}
	return λ, 1.25 * math.Log(math.Tan(math.Pi/4+0.4*φ))
}

func (miller) jacobian(_, φ float64) (float64, float64, float64, float64) {
	return 1, 0, 0, 1 / math.Cos(0.8*φ)
}

func (miller) unproject(x, y float64) (float64, float64, error) {
	return x, 2.5*math.Atan(math.Exp(0.8*y)) - 0.625*math.Pi, nil
}

// lambert is the Lambert Conic Conformal projection. Its input longitude
// is already multiplied by the cone constant n, so it is the polar angle θ.
// It outputs (ρ·sin θ, -ρ·cos θ) with ρ = tⁿ.
type lambert struct{ e, n float64 }

func (l lambert) project(θ, φ float64) (float64, float64) {
	if math.Abs(φ) > math.Pi/2 {
		return math.NaN(), math.NaN()
	}
	ρ := math.Pow(isometricT(φ, l.e), l.n)
	return ρ * math.Sin(θ), -ρ * math.Cos(θ)
}

func (l lambert) jacobian(θ, φ float64) (float64, float64, float64, float64) {
	ρ := math.Pow(isometricT(φ, l.e), l.n)
	dρ := l.n * ρ * dLnT(φ, l.e)
	sin, cos := math.Sincos(θ)
	return ρ * cos, dρ * sin, ρ * sin, -dρ * cos
}

func (l lambert) unproject(x, y float64) (float64, float64, error) {
	ρ := math.Hypot(x, y)
	θ := math.Atan2(x, -y)
	φ, err := latitude(math.Pow(ρ, 1/l.n), l.e)
	return θ, φ, err
}
