package compiler

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pmatch/guard"
)

// Unit is a compiled case: the test for a pattern, the names of the
// captures the pattern binds and an optional guard.
// A Unit is immutable and may be shared; matching happens on instances of
// the unit (see New).
type Unit struct {
	name       string
	targets    []string // sorted
	sources    []string // sorted
	test       Test
	guard      guard.Guard
	procedures []Procedure
}

// Name returns the name the unit has been compiled with.
func (u *Unit) Name() string {
	return u.name
}

// Targets returns the capture names of the unit, in lexical order. This
// is the order in which Enter returns captured values.
func (u *Unit) Targets() []string {
	return append([]string(nil), u.targets...)
}

// Sources returns the names of source values the unit requires.
func (u *Unit) Sources() []string {
	return append([]string(nil), u.sources...)
}

// HasGuard is true if the unit has been compiled with a guard.
func (u *Unit) HasGuard() bool {
	return u.guard != nil
}

// Procedures lists the test procedures synthesized for the unit.
func (u *Unit) Procedures() []Procedure {
	return append([]Procedure(nil), u.procedures...)
}

// New creates a case for a candidate value. sources supplies values the
// guard may refer to; every name in u.Sources() has to be present.
func (u *Unit) New(candidate any, sources map[string]any) (*Case, error) {
	for _, name := range u.sources {
		if _, ok := sources[name]; !ok {
			return nil, errors.Wrapf(ErrMissingSource, "case %s requires source %q", u.name, name)
		}
	}
	return &Case{
		unit:    u,
		value:   candidate,
		sources: sources,
		scope:   newScope(u.targets),
	}, nil
}

// Match is a shortcut for creating a case for candidate and entering it.
func (u *Unit) Match(candidate any, sources map[string]any) (bool, []any, error) {
	c, err := u.New(candidate, sources)
	if err != nil {
		return false, nil, err
	}
	return c.Enter()
}

// --- Cases -----------------------------------------------------------------

// Case is an instance of a unit for a candidate value. A Case holds the
// captures of its latest test and must not be used concurrently.
type Case struct {
	unit    *Unit
	value   any
	sources map[string]any
	scope   *Scope
}

// Unit returns the unit c is an instance of.
func (c *Case) Unit() *Unit {
	return c.unit
}

// Enter tests the candidate of c. It returns the result of the test and
// the captures, ordered by name. Captures are meaningful only if the
// result is true.
func (c *Case) Enter() (bool, []any, error) {
	ok, err := c.Test(c.value)
	if err != nil {
		return false, nil, err
	}
	return ok, c.scope.Values(), nil
}

// Test tests v against the pattern and, if it matches, against the
// guard. Captures are reset before the test.
func (c *Case) Test(v any) (bool, error) {
	c.scope.reset()
	ok, err := c.unit.test(v, c.scope)
	if err != nil || !ok {
		return false, err
	}
	if c.unit.guard == nil {
		return true, nil
	}
	return c.TestGuard()
}

// TestGuard evaluates the guard with the current captures. A unit
// without a guard always passes.
func (c *Case) TestGuard() (bool, error) {
	if c.unit.guard == nil {
		return true, nil
	}
	return c.unit.guard.Test(c)
}

// TestPattern tests v against the pattern, ignoring the guard.
func (c *Case) TestPattern(v any) (bool, error) {
	c.scope.reset()
	return c.unit.test(v, c.scope)
}

// Captures returns the scope holding the captures of c.
func (c *Case) Captures() *Scope {
	return c.scope
}

// Source is part of interface guard.Env.
func (c *Case) Source(name string) (any, bool) {
	v, ok := c.sources[name]
	return v, ok
}

// Capture is part of interface guard.Env.
func (c *Case) Capture(name string) (any, bool) {
	return c.scope.Get(name)
}

// SourceNames is part of interface guard.Env.
func (c *Case) SourceNames() []string {
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CaptureNames is part of interface guard.Env.
func (c *Case) CaptureNames() []string {
	return c.unit.targets
}

var _ guard.Env = (*Case)(nil)
