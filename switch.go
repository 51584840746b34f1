package pmatch

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pmatch/compiler"
	"github.com/npillmayer/pmatch/maybe"
	"github.com/npillmayer/pmatch/result"
)

// Switch matches a value against a chain of case units. Once a case
// matched, the switch is handled and no further case will match.
//
// Methods Case and Default return the switch itself if the case applies,
// and nil otherwise. This lets a Go switch statement on the Switch select
// the first matching case.
type Switch struct {
	value   any
	sources map[string]any
	matched *compiler.Unit
	handled bool
	err     error
}

// On starts a switch for value. sources are handed to every case unit.
func On(value any, sources map[string]any) *Switch {
	return &Switch{value: value, sources: sources}
}

// Case tests the switch value against unit u. If it matches, the
// captures are stored into the pointers of captures, which correspond to
// u.Targets() by position. A nil pointer skips a capture.
//
// If matching fails with an error, the switch records the error, is
// considered handled and Case returns nil.
func (sw *Switch) Case(u *compiler.Unit, captures ...any) *Switch {
	if sw.handled {
		return nil
	}
	c, err := u.New(sw.value, sw.sources)
	if err != nil {
		sw.fail(err)
		return nil
	}
	ok, values, err := c.Enter()
	if err != nil {
		sw.fail(errors.Wrapf(err, "case %s", u.Name()))
		return nil
	}
	if !ok {
		return nil
	}
	if err := assign(values, captures); err != nil {
		sw.fail(errors.Wrapf(err, "case %s", u.Name()))
		return nil
	}
	tracer().Debugf("switch handled by case %s", u.Name())
	sw.handled, sw.matched = true, u
	return sw
}

// Default applies if no case matched and no error occurred.
func (sw *Switch) Default() *Switch {
	if sw.handled {
		return nil
	}
	sw.handled = true
	return sw
}

// Err returns the error which aborted the switch, if any.
func (sw *Switch) Err() error {
	return sw.err
}

// Matched returns the unit which handled the switch, or nil.
func (sw *Switch) Matched() *compiler.Unit {
	return sw.matched
}

func (sw *Switch) fail(err error) {
	tracer().Errorf("switch aborted: %v", err)
	sw.err, sw.handled = err, true
}

// First tests value against units in order and returns the first unit
// which matches, together with its captures. It returns a nil unit if no
// unit matches.
func First(value any, sources map[string]any, units ...*compiler.Unit) (*compiler.Unit, []any, error) {
	for _, u := range units {
		ok, captures, err := u.Match(value, sources)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "case %s", u.Name())
		}
		if ok {
			return u, captures, nil
		}
	}
	return nil, nil, nil
}

// Try matches value against u. The result is Ok with Just the captures
// if value matches, Ok with Nothing if it does not, and Err if matching
// aborted.
func Try(u *compiler.Unit, value any, sources map[string]any) result.Result[maybe.Maybe[[]any]] {
	ok, captures, err := u.Match(value, sources)
	if err != nil {
		return result.Err[maybe.Maybe[[]any]](errors.Wrapf(err, "case %s", u.Name()))
	}
	return result.Ok(maybe.Of(captures, ok))
}

// assign stores values into the pointers of targets.
func assign(values []any, targets []any) error {
	if len(targets) > len(values) {
		return errors.Newf("%d capture variables for %d captures", len(targets), len(values))
	}
	for i, t := range targets {
		if t == nil {
			continue
		}
		if p, ok := t.(*any); ok {
			*p = values[i]
			continue
		}
		ptr := reflect.ValueOf(t)
		if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
			return errors.Newf("capture variable %d is not a pointer", i)
		}
		dest := ptr.Elem()
		if values[i] == nil {
			dest.Set(reflect.Zero(dest.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		switch {
		case v.Type().AssignableTo(dest.Type()):
			dest.Set(v)
		case v.Type().ConvertibleTo(dest.Type()) && v.Kind() != reflect.String && dest.Kind() != reflect.String:
			dest.Set(v.Convert(dest.Type()))
		default:
			return errors.Newf("cannot assign capture of type %T to variable of type %s",
				values[i], dest.Type())
		}
	}
	return nil
}
