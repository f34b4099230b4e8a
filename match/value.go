package match

import (
	"fmt"
	"math"
	"reflect"
)

type undefinedValue struct{}

func (undefinedValue) String() string { return "<undefined>" }

// Undefined is the sentinel for a value that was never provided, as opposed
// to one that was explicitly nil. Discovery uses it for absent module
// exports; ToBeDefined tests against it.
var Undefined = undefinedValue{}

// strictEquals is reference identity for composite values and value equality
// for everything comparable. Slices, maps and funcs compare by pointer, so
// two distinct but structurally identical composites are not strictly equal;
// that is what ToEqual's deep path is for.
func strictEquals(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Slice, reflect.Map, reflect.Func:
		if ra.IsNil() || rb.IsNil() {
			return ra.IsNil() && rb.IsNil()
		}
		return ra.Pointer() == rb.Pointer()
	}
	if !ra.Type().Comparable() {
		return false
	}
	return a == b
}

// isComposite reports whether a value takes the structural path in deep
// equality: anything that has own keys or elements to compare.
func isComposite(v interface{}) bool {
	if v == nil || v == Undefined {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct, reflect.Ptr:
		return true
	}
	return false
}

// deepEquals is the structural-equality algorithm behind ToEqual: both sides
// must agree on array-ness, expose the same number of own keys, and every
// key's values must be strictly equal or, when both are composite,
// recursively deep-equal.
//
// There is deliberately no cycle guard: this will not terminate on circular
// structures. The limitation is inherited and documented rather than patched,
// so that equal-by-isomorphism cycles do not silently start passing.
func deepEquals(a, b interface{}) bool {
	if strictEquals(a, b) {
		return true
	}
	if !isComposite(a) || !isComposite(b) {
		return looseEquals(a, b)
	}
	ra, rb := deref(reflect.ValueOf(a)), deref(reflect.ValueOf(b))
	aIsList := ra.Kind() == reflect.Slice || ra.Kind() == reflect.Array
	bIsList := rb.Kind() == reflect.Slice || rb.Kind() == reflect.Array
	if aIsList != bIsList {
		return false
	}
	if aIsList {
		if ra.Len() != rb.Len() {
			return false
		}
		for i := 0; i < ra.Len(); i++ {
			if !deepEquals(ra.Index(i).Interface(), rb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	am, bm := ownKeys(ra), ownKeys(rb)
	if am == nil || bm == nil {
		// pointers to scalars land here once dereferenced
		if am == nil && bm == nil {
			return looseEquals(ra.Interface(), rb.Interface())
		}
		return false
	}
	if len(am) != len(bm) {
		return false
	}
	for k, av := range am {
		bv, ok := bm[k]
		if !ok {
			return false
		}
		if strictEquals(av, bv) {
			continue
		}
		if isComposite(av) && isComposite(bv) {
			if deepEquals(av, bv) {
				continue
			}
		}
		if looseEquals(av, bv) {
			continue
		}
		return false
	}
	return true
}

// looseEquals relaxes strict equality only across numeric representations,
// so that an int and a float64 holding the same number compare equal.
func looseEquals(a, b interface{}) bool {
	if strictEquals(a, b) {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// ownKeys flattens a map or struct into its own enumerable key/value pairs.
// Returns nil for shapes that have no keys to enumerate.
func ownKeys(v reflect.Value) map[string]interface{} {
	switch v.Kind() {
	case reflect.Map:
		out := make(map[string]interface{}, v.Len())
		for _, k := range v.MapKeys() {
			out[keyString(k)] = v.MapIndex(k).Interface()
		}
		return out
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]interface{}, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).PkgPath != "" { // unexported
				continue
			}
			out[t.Field(i).Name] = v.Field(i).Interface()
		}
		return out
	}
	return nil
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprintf("%v", k.Interface())
}

// isNil reports nil-ness through typed nils (a nil *T stored in an interface
// still counts).
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// isTruthy applies the source semantics' boolean coercion: nil, Undefined,
// false, zero or NaN numbers, and the empty string are falsy; everything
// else, composites included, is truthy.
func isTruthy(v interface{}) bool {
	if isNil(v) || v == Undefined {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != ""
	}
	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

func toFloat(v interface{}) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
