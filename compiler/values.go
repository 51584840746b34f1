package compiler

import (
	"math"
	"reflect"
)

// scalarKey returns a canonical representation for scalar values, such
// that equal scalars have equal keys: numbers of different Go types are
// compared by value, named string and bool types like their underlying
// types. The second result is false for non-scalars.
func scalarKey(v any) (any, bool) {
	if v == nil {
		return nil, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return int64(u), true
		}
		return u, true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f), true
		}
		return f, true
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		if imag(c) == 0 {
			return scalarKey(real(c))
		}
		return c, true
	}
	return nil, false
}

// valuesEqual is the equality of constant patterns. Scalars compare by
// canonical key, sequences element-wise, everything else deeply.
func valuesEqual(a, b any) bool {
	ka, aIsScalar := scalarKey(a)
	kb, bIsScalar := scalarKey(b)
	if aIsScalar || bIsScalar {
		return aIsScalar && bIsScalar && ka == kb
	}
	sa, aIsSeq := seqOf(a)
	sb, bIsSeq := seqOf(b)
	if aIsSeq && bIsSeq {
		if sa.Len() != sb.Len() {
			return false
		}
		for i := 0; i < sa.Len(); i++ {
			if !valuesEqual(sa.Index(i).Interface(), sb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// --- Sequences -------------------------------------------------------------

// seqOf returns v as a reflected slice or array. Strings are not
// sequences.
func seqOf(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	}
	return reflect.Value{}, false
}

// subseq returns the elements [i:j] of a sequence. Slices are re-sliced
// and keep their type, arrays are copied into a []any.
func subseq(rv reflect.Value, i, j int) any {
	if rv.Kind() == reflect.Slice {
		return rv.Slice(i, j).Interface()
	}
	part := make([]any, 0, j-i)
	for k := i; k < j; k++ {
		part = append(part, rv.Index(k).Interface())
	}
	return part
}

// --- Mappings --------------------------------------------------------------

// Mapping may be implemented by candidate values to take part in
// dict-pattern matching without being a Go map.
type Mapping interface {
	Lookup(key any) (any, bool)
}

func isMapping(v any) bool {
	if _, ok := v.(Mapping); ok {
		return true
	}
	return v != nil && reflect.ValueOf(v).Kind() == reflect.Map
}

// lookup finds the value for key in a keyed container. The second result
// is false if v has no entry for key, and is the only indicator of
// absence: a present entry may well hold nil.
func lookup(v any, key any) (any, bool) {
	if m, ok := v.(Mapping); ok {
		return m.Lookup(key)
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	if key != nil {
		kv := reflect.ValueOf(key)
		if kv.Type().Comparable() && kv.Type().AssignableTo(rv.Type().Key()) {
			if x := rv.MapIndex(kv); x.IsValid() {
				return x.Interface(), true
			}
		}
	}
	k, isScalar := scalarKey(key)
	if !isScalar {
		return nil, false
	}
	iter := rv.MapRange()
	for iter.Next() {
		if mk, ok := scalarKey(iter.Key().Interface()); ok && mk == k {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}
