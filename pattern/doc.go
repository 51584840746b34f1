/*
Package pattern defines the abstract syntax of patterns.

A pattern describes what a value has to look like to match: literal
constants, wildcards, named captures, structural deconstruction of values
by type tag, alternatives, sequences with variable middle parts, keyed
containers, regular expressions and string-convertibility tests.

Patterns are produced by a parser (not part of this module) or decoded
from the YAML interchange format (see DecodeYAML). They are read-only
once built and are consumed by package compiler.

The set of node kinds is closed: every node type implements the
unexported marker method of interface Pattern, so clients cannot add new
kinds and a type switch over the types of this package is exhaustive.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pattern

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pmatch.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("pmatch.pattern")
}
