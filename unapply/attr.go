package unapply

import (
	"fmt"
	"reflect"
	"strings"
)

// Attributed is implemented by values which expose named attributes.
type Attributed interface {
	Attr(name string) (any, bool)
}

// Attribute looks up a named attribute of v. The second return value is
// false if v has no such attribute.
func Attribute(v any, name string) (any, bool) {
	if v == nil {
		return nil, false
	}
	if a, ok := v.(Attributed); ok {
		return a.Attr(name)
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return nil, false
		}
		return rv.FieldByIndex(f.Index).Interface(), true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		x := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !x.IsValid() {
			return nil, false
		}
		return x.Interface(), true
	}
	return nil, false
}

// --- Records ---------------------------------------------------------------

// Record is a generic tagged value with named, ordered fields. It
// implements Tagged, Unapplier and Attributed, and is the natural target
// for data decoded from untyped sources (YAML, JSON).
type Record struct {
	Tag    string
	Names  []string
	Values []any
}

// NewRecord creates a record from alternating names and values.
func NewRecord(tag string, namesAndValues ...any) *Record {
	r := &Record{Tag: tag}
	for i := 0; i+1 < len(namesAndValues); i += 2 {
		name, _ := namesAndValues[i].(string)
		r.Names = append(r.Names, name)
		r.Values = append(r.Values, namesAndValues[i+1])
	}
	return r
}

// TypeTag is part of interface Tagged.
func (r *Record) TypeTag() string {
	return r.Tag
}

// Unapply is part of interface Unapplier.
func (r *Record) Unapply() []any {
	return r.Values
}

// Attr is part of interface Attributed.
func (r *Record) Attr(name string) (any, bool) {
	for i, n := range r.Names {
		if n == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.Tag)
	sb.WriteByte('(')
	for i, n := range r.Names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(n)
		sb.WriteByte('=')
		fmt.Fprintf(&sb, "%v", r.Values[i])
	}
	sb.WriteByte(')')
	return sb.String()
}
