package geoconform

import (
	"reflect"
	"time"
)

// IsAbsent applies the repository-wide rule deciding whether an attribute
// value counts as missing: nil (including typed nil pointers and interfaces),
// empty slices, maps and strings, and the zero time.Time.
func IsAbsent(v any) bool {
	if IsNil(v) {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case time.Time:
		return t.IsZero()
	case interface{ IsAbsent() bool }:
		return t.IsAbsent()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// IsNil reports whether v is nil or a typed nil. Unlike IsAbsent, empty
// collections are not nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}
