/*
Package compiler translates patterns into executable case units.

A Compiler walks a pattern tree (package pattern) and synthesizes a test
function for every node. Tests are closures of type Test: they take the
value under test and the capture scope of a case, and report a match.
Composite patterns compose the tests of their sub-patterns.

While compiling, the names of captures are tracked in a binding table.
Names must be unique within a pattern, and no capture may be introduced
within an alternative: if a branch of an alternative does not match, its
captures would be left undefined.

The result of a compilation is a Unit. A unit is instantiated for a
candidate value and a set of source values,

    unit, err := compiler.New().Compile("Diagonal", p, g)
    …
    c, err := unit.New(point, nil)
    ok, captures, err := c.Enter()

and Enter tests the candidate, evaluates the guard (if any, and only if
the pattern matched) and returns the captures in lexical order of their
names.

Errors

Compilation fails with a *SyntaxError for invalid patterns, with
ErrUnsupported for pattern kinds not supported (string deconstruction),
and with an assertion failure (see errors.IsAssertionFailure of
github.com/cockroachdb/errors) if the compiler itself is defective.
Matching fails with an *ArityError if an extraction function delivers
fewer parts than a deconstructor expects. Everything else which does not
fit is a simple non-match.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compiler

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pmatch.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("pmatch.compiler")
}

// assertThat panics with an assertion failure if that is false.
// Compile turns these panics into errors.
func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		panic(errors.AssertionFailedf("pmatch.compiler: %s", fmt.Sprintf(msg, msgargs...)))
	}
}
