// Package operation provides math transforms for affine conversions and a
// few map projections, the operation methods describing them, and a
// MathTransformFactory creating them from parameter values.
package operation

import (
	"fmt"
	"slices"
	"unsafe"

	"gonum.org/v1/gonum/mat"

	"github.com/geoapi/geoconform/referencing/operation"
)

// pointCount checks the array lengths given to Transform and returns the
// number of points to transform.
func pointCount(t operation.MathTransform, dst, src []float64) (int, error) {
	srcDim, dstDim := t.SourceDimensions(), t.TargetDimensions()
	if len(src)%srcDim != 0 {
		return 0, fmt.Errorf("%w: %d ordinates is not a multiple of %d", operation.ErrTransform, len(src), srcDim)
	}
	n := len(src) / srcDim
	if len(dst) < n*dstDim {
		return 0, fmt.Errorf("%w: destination holds %d ordinates, need %d", operation.ErrTransform, len(dst), n*dstDim)
	}
	return n, nil
}

// readable returns src, or a copy of it when writing dst point by point
// would overwrite source ordinates not yet read.
func readable(dst, src []float64, srcDim, dstDim int) []float64 {
	if !overlaps(dst, src) {
		return src
	}
	if &dst[0] == &src[0] && dstDim <= srcDim {
		return src
	}
	return slices.Clone(src)
}

func overlaps(a, b []float64) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	const size = unsafe.Sizeof(float64(0))
	pa := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	pb := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return pa < pb+uintptr(len(b))*size && pb < pa+uintptr(len(a))*size
}

// Affine is a linear transform followed by a translation, stored as a
// (target+1)×(source+1) matrix whose last row is [0 … 0 1].
type Affine struct {
	m        *mat.Dense
	src, dst int
}

var _ operation.MathTransform = (*Affine)(nil)

// NewAffine copies m into an affine transform.
func NewAffine(m mat.Matrix) (*Affine, error) {
	r, c := m.Dims()
	if r < 2 || c < 2 {
		return nil, fmt.Errorf("%w: affine matrix must be at least 2×2, got %d×%d", operation.ErrTransform, r, c)
	}
	for j := 0; j < c; j++ {
		want := 0.0
		if j == c-1 {
			want = 1
		}
		if m.At(r-1, j) != want {
			return nil, fmt.Errorf("%w: last matrix row must be [0 … 0 1]", operation.ErrTransform)
		}
	}
	return &Affine{m: mat.DenseCopyOf(m), src: c - 1, dst: r - 1}, nil
}

// Scale returns an affine transform multiplying ordinate i by factors[i]
// then adding offsets[i].
func Scale(factors, offsets []float64) *Affine {
	n := len(factors)
	m := mat.NewDense(n+1, n+1, nil)
	for i, f := range factors {
		m.Set(i, i, f)
		m.Set(i, n, offsets[i])
	}
	m.Set(n, n, 1)
	return &Affine{m: m, src: n, dst: n}
}

func (a *Affine) SourceDimensions() int { return a.src }
func (a *Affine) TargetDimensions() int { return a.dst }

// Matrix returns a copy of the affine matrix.
func (a *Affine) Matrix() *mat.Dense { return mat.DenseCopyOf(a.m) }

func (a *Affine) IsIdentity() bool {
	if a.src != a.dst {
		return false
	}
	r, c := a.m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			if a.m.At(i, j) != want {
				return false
			}
		}
	}
	return true
}

func (a *Affine) Transform(dst, src []float64) error {
	n, err := pointCount(a, dst, src)
	if err != nil {
		return err
	}
	src = readable(dst, src, a.src, a.dst)
	out := make([]float64, a.dst)
	for p := 0; p < n; p++ {
		in := src[p*a.src : (p+1)*a.src]
		for j := range out {
			sum := a.m.At(j, a.src)
			for k, v := range in {
				if e := a.m.At(j, k); e != 0 {
					sum += e * v
				}
			}
			out[j] = sum
		}
		copy(dst[p*a.dst:], out)
	}
	return nil
}

// Derivative is the linear part of the matrix, the same everywhere.
func (a *Affine) Derivative([]float64) (*mat.Dense, error) {
	return mat.DenseCopyOf(a.m.Slice(0, a.dst, 0, a.src)), nil
}

func (a *Affine) Inverse() (operation.MathTransform, error) {
	if a.src != a.dst {
		return nil, fmt.Errorf("%w: %d×%d affine matrix is not square", operation.ErrNoninvertible, a.dst+1, a.src+1)
	}
	var inv mat.Dense
	if err := inv.Inverse(a.m); err != nil {
		return nil, fmt.Errorf("%w: %v", operation.ErrNoninvertible, err)
	}
	return &Affine{m: &inv, src: a.dst, dst: a.src}, nil
}

// Equal compares the matrices exactly.
func (a *Affine) Equal(other any) bool {
	o, ok := other.(*Affine)
	return ok && o != nil && mat.Equal(a.m, o.m)
}

func (a *Affine) String() string {
	return fmt.Sprintf("Affine%v", mat.Formatted(a.m, mat.Squeeze()))
}

// Concatenated applies First then Second.
type Concatenated struct {
	First, Second operation.MathTransform
}

var _ operation.MathTransform = (*Concatenated)(nil)

// Concatenate returns a transform applying first then second. Identity
// steps are dropped and consecutive affine steps are multiplied together.
func Concatenate(first, second operation.MathTransform) (operation.MathTransform, error) {
	if first.TargetDimensions() != second.SourceDimensions() {
		return nil, fmt.Errorf("%w: cannot chain a %dD output into a %dD input",
			operation.ErrTransform, first.TargetDimensions(), second.SourceDimensions())
	}
	switch {
	case first.IsIdentity():
		return second, nil
	case second.IsIdentity():
		return first, nil
	}
	a1, ok1 := first.(*Affine)
	a2, ok2 := second.(*Affine)
	if ok1 && ok2 {
		var m mat.Dense
		m.Mul(a2.m, a1.m)
		return &Affine{m: &m, src: a1.src, dst: a2.dst}, nil
	}
	return &Concatenated{First: first, Second: second}, nil
}

func (c *Concatenated) SourceDimensions() int { return c.First.SourceDimensions() }
func (c *Concatenated) TargetDimensions() int { return c.Second.TargetDimensions() }
func (c *Concatenated) IsIdentity() bool      { return false }

func (c *Concatenated) Transform(dst, src []float64) error {
	n, err := pointCount(c, dst, src)
	if err != nil {
		return err
	}
	mid := make([]float64, n*c.First.TargetDimensions())
	if err := c.First.Transform(mid, src); err != nil {
		return err
	}
	return c.Second.Transform(dst, mid)
}

// Derivative applies the chain rule: D₂(first(p)) · D₁(p).
func (c *Concatenated) Derivative(point []float64) (*mat.Dense, error) {
	d1, err := c.First.Derivative(point)
	if err != nil {
		return nil, err
	}
	p, err := operation.TransformPoint(c.First, point)
	if err != nil {
		return nil, err
	}
	d2, err := c.Second.Derivative(p)
	if err != nil {
		return nil, err
	}
	var d mat.Dense
	d.Mul(d2, d1)
	return &d, nil
}

func (c *Concatenated) Inverse() (operation.MathTransform, error) {
	i2, err := c.Second.Inverse()
	if err != nil {
		return nil, err
	}
	i1, err := c.First.Inverse()
	if err != nil {
		return nil, err
	}
	return Concatenate(i2, i1)
}

func (c *Concatenated) String() string {
	return fmt.Sprintf("Concat(%v, %v)", c.First, c.Second)
}
