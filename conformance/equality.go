package conformance

import (
	"reflect"
	"slices"

	geoconform "github.com/geoapi/geoconform"
)

// Equaler is implemented by objects defining value equality.
type Equaler interface {
	Equal(other any) bool
}

// Hasher is implemented by objects whose hash must agree with Equal.
type Hasher interface {
	Hash() uint64
}

func anySlice[T any](s []T) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = e
	}
	return out
}

// validateCollection checks that the elements of a collection honour the
// equality contract: Equal is reflexive, symmetric and transitive, never
// equal to nil, and equal elements have the same stable hash. Nil elements
// and elements not implementing Equaler are ignored. Elements themselves are
// not validated.
func (v *Validator) validateCollection(r *geoconform.Report, p geoconform.PathRef, collection []any) {
	var elements []Equaler
	for _, e := range collection {
		if geoconform.IsNil(e) {
			continue
		}
		if eq, ok := e.(Equaler); ok {
			elements = append(elements, eq)
		}
	}
	n := len(elements)
	if n == 0 {
		return
	}
	hashes := make([]uint64, n)
	for i, e := range elements {
		if h, ok := e.(Hasher); ok {
			hashes[i] = h.Hash()
		}
	}
	masks := make([][]bool, n)
	for i, e := range elements {
		masks[i] = make([]bool, n)
		for j, candidate := range elements {
			if !e.Equal(candidate) {
				continue
			}
			masks[i][j] = true
			if h, ok := candidate.(Hasher); ok {
				if _, ok := e.(Hasher); ok && h.Hash() != hashes[i] {
					v.fail(r, p.Index(j), geoconform.CodeEqualityContract, "Inconsistent hash codes.", "index", i)
				}
			}
		}
		if e.Equal(nil) {
			v.fail(r, p.Index(i), geoconform.CodeEqualityContract, "Equal(nil) shall be false.")
		}
	}
	for i, mask := range masks {
		if !mask[i] {
			v.fail(r, p.Index(i), geoconform.CodeEqualityContract, "Equal(self) shall be reflexive.")
		}
		for j, set := range mask {
			if set && !slices.Equal(mask, masks[j]) {
				v.fail(r, p.Index(i), geoconform.CodeEqualityContract, "A.Equal(B) shall be symmetric and transitive.", "other", j)
			}
		}
		if h, ok := elements[i].(Hasher); ok && h.Hash() != hashes[i] {
			v.fail(r, p.Index(i), geoconform.CodeEqualityContract, "The hash code value has changed.")
		}
	}
}

// sameObject reports whether a and b are the same object: identical when
// comparable, Equal when they implement Equaler.
func sameObject(a, b any) bool {
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil {
		return ta == tb
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
