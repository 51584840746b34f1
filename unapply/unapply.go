package unapply

import (
	"reflect"
	"sync"

	"github.com/npillmayer/pmatch/maybe"
)

// Func decomposes a value into its parts. It returns false if v cannot be
// decomposed for the tag it has been registered for.
type Func func(v any) ([]any, bool)

// Predicate tests if a value is an instance of a tag.
type Predicate func(v any) bool

// Tagged is implemented by values which know their type tag.
type Tagged interface {
	TypeTag() string
}

// Unapplier is implemented by values which know how to decompose
// themselves.
type Unapplier interface {
	Unapply() []any
}

// Registry maps type tags to extraction functions and instance
// predicates. A Registry is safe for concurrent use.
type Registry struct {
	sync.RWMutex
	funcs map[string]Func
	preds map[string]Predicate
}

// NewRegistry creates an empty registry. Tags not registered are handled
// by the default rules (see package documentation).
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]Func),
		preds: make(map[string]Predicate),
	}
}

var std = NewRegistry()

// Default returns the global registry.
func Default() *Registry {
	return std
}

// Register sets the extraction function for tag in the global registry.
func Register(tag string, f Func) {
	std.Register(tag, f)
}

// Extract decomposes v using the global registry.
func Extract(v any, tags ...string) maybe.Maybe[[]any] {
	return std.Extract(v, tags...)
}

// IsInstance checks v against tags using the global registry.
func IsInstance(v any, tags ...string) bool {
	return std.IsInstance(v, tags...)
}

// Register sets the extraction function for tag. Registering nil removes
// a previously registered function.
func (r *Registry) Register(tag string, f Func) {
	r.Lock()
	defer r.Unlock()
	if f == nil {
		delete(r.funcs, tag)
		return
	}
	tracer().Debugf("registering unapply function for tag %q", tag)
	r.funcs[tag] = f
}

// RegisterInstance sets the instance predicate for tag. Registering nil
// removes a previously registered predicate.
func (r *Registry) RegisterInstance(tag string, pred Predicate) {
	r.Lock()
	defer r.Unlock()
	if pred == nil {
		delete(r.preds, tag)
		return
	}
	r.preds[tag] = pred
}

// Extract decomposes v for the first of tags which accepts v.
// If no tag accepts v, Extract returns Nothing.
func (r *Registry) Extract(v any, tags ...string) maybe.Maybe[[]any] {
	for _, tag := range tags {
		r.RLock()
		f, ok := r.funcs[tag]
		r.RUnlock()
		if ok {
			if parts, ok := f(v); ok {
				return maybe.Just(parts)
			}
			continue
		}
		if r.IsInstance(v, tag) {
			return maybe.Just(decompose(v))
		}
	}
	return maybe.Nothing[[]any]()
}

// IsInstance is true if v is an instance of at least one of tags.
// Values with a registered extraction function but without a registered
// predicate are instances if the extraction function accepts them.
func (r *Registry) IsInstance(v any, tags ...string) bool {
	for _, tag := range tags {
		r.RLock()
		pred, hasPred := r.preds[tag]
		f, hasFunc := r.funcs[tag]
		r.RUnlock()
		switch {
		case hasPred:
			if pred(v) {
				return true
			}
		case hasFunc:
			if _, ok := f(v); ok {
				return true
			}
		default:
			if TagOf(v) == tag {
				return true
			}
		}
	}
	return false
}

// TagOf returns the type tag of a value: the tag reported by a Tagged
// value, the name of a named Go type (pointers are dereferenced), or the
// type's literal for unnamed types. The tag of nil is "nil".
func TagOf(v any) string {
	if v == nil {
		return "nil"
	}
	if t, ok := v.(Tagged); ok {
		return t.TypeTag()
	}
	typ := reflect.TypeOf(v)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Name() != "" {
		return typ.Name()
	}
	return typ.String()
}

func decompose(v any) []any {
	if u, ok := v.(Unapplier); ok {
		return u.Unapply()
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return []any{v}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return []any{v}
	}
	typ := rv.Type()
	parts := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).IsExported() {
			parts = append(parts, rv.Field(i).Interface())
		}
	}
	return parts
}
