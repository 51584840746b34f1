/*
Package result implements the outcome of a computation which may fail.

Package pmatch reports attempts to match a value against a case unit as
a Result: Ok, holding Just the captures or Nothing for a non-match, or
Err if matching aborted. Clients inspect a Result with a type-safe switch:

    var captures maybe.Maybe[[]any]
    var err error
    switch m := pmatch.Try(u, v, nil).Match(); m {
    case m.Ok(&captures):
        …
    case m.Err(&err):
        …
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package result

// Result holds either a value of type T or an error.
type Result[T any] interface {
	Match() Matcher[T]
	Get() (T, error)
	IsOk() bool
	WithDefault(T) T
}

type result[T any] struct {
	value T
	err   error
}

// Ok wraps x.
func Ok[T any](x T) Result[T] {
	return result[T]{value: x}
}

// Err wraps an error. err must not be nil.
func Err[T any](err error) Result[T] {
	return result[T]{err: err}
}

// Of converts a Go result pair into a Result. A non-nil err wins over x.
func Of[T any](x T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(x)
}

func (r result[T]) Match() Matcher[T] {
	return &matcher[T]{r: r}
}

func (r result[T]) Get() (T, error) {
	return r.value, r.err
}

func (r result[T]) IsOk() bool {
	return r.err == nil
}

func (r result[T]) WithDefault(def T) T {
	if r.err == nil {
		return r.value
	}
	return def
}

// AndThen chains a computation which itself may fail.
func AndThen[T, S any](f func(T) Result[S], x Result[T]) Result[S] {
	v, err := x.Get()
	if err != nil {
		return Err[S](err)
	}
	return f(v)
}

// --- Matching --------------------------------------------------------------

// Matcher is returned by Result.Match. Exactly one of its methods returns
// a non-nil matcher.
type Matcher[T any] interface {
	Ok(*T) Matcher[T]
	Err(*error) Matcher[T]
}

type matcher[T any] struct {
	r result[T]
}

func (rm *matcher[T]) Ok(v *T) Matcher[T] {
	if rm.r.err == nil {
		if v != nil {
			*v = rm.r.value
		}
		return rm
	}
	return nil
}

func (rm *matcher[T]) Err(err *error) Matcher[T] {
	if rm.r.err != nil {
		if err != nil {
			*err = rm.r.err
		}
		return rm
	}
	return nil
}
