/*
Package guard implements guards for case units.

A guard is a boolean condition evaluated after a pattern matched
structurally. It may refer to source values, supplied by the client when
a case is initialized, and to the captures the pattern just bound.

Guards are either Go functions (type Func) or script expressions
(see Script), evaluated by an embedded JavaScript interpreter.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package guard

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pmatch.guard'.
func tracer() tracing.Trace {
	return tracing.Select("pmatch.guard")
}

// Env is the view a guard has of a case: the source values and the
// captures bound by the pattern.
type Env interface {
	Source(name string) (any, bool)
	Capture(name string) (any, bool)
	SourceNames() []string
	CaptureNames() []string
}

// Guard is a condition over an Env.
type Guard interface {
	Test(env Env) (bool, error)
}

// Referrer is implemented by guards which know the source names they
// depend on. Case units require these sources to be present when a case
// is initialized.
type Referrer interface {
	Sources() []string
}

// Func adapts a Go function to a Guard.
type Func func(env Env) bool

// Test is part of interface Guard.
func (f Func) Test(env Env) (bool, error) {
	return f(env), nil
}

// Requiring decorates g with a list of required source names.
func Requiring(g Guard, sources ...string) Guard {
	return requiring{Guard: g, sources: uniqueSorted(sources)}
}

type requiring struct {
	Guard
	sources []string
}

func (r requiring) Sources() []string {
	return r.sources
}

// SourcesOf returns the source names a guard depends on, if it tells.
func SourcesOf(g Guard) []string {
	if r, ok := g.(Referrer); ok {
		return r.Sources()
	}
	return nil
}

func uniqueSorted(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	u := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			u = append(u, n)
		}
	}
	sort.Strings(u)
	return u
}
