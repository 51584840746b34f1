/*
Package unapply implements the structural extraction protocol.

Deconstructor patterns need a way to take a value apart: given a value
and a type tag, produce the ordered list of the value's parts, or report
that the value is not of that type. This operation is called "unapply".
It is global and keyed by type tag: clients register extraction functions
for their tags with the default registry,

    unapply.Register("Point", func(v any) ([]any, bool) {
        p, ok := v.(Point)
        if !ok {
            return nil, false
        }
        return []any{p.X, p.Y}, true
    })

and compiled matchers will call them at match time.

For tags without a registered function a default applies: a value is an
instance of a tag if it reports the tag itself (interface Tagged) or if
the name of its Go type equals the tag. Instances implementing Unapplier
decompose into whatever they return, structs decompose into their
exported fields in declaration order, all other values into themselves.

Attributes (for attribute deconstructors) are looked up through
interface Attributed, by exported struct field name, or by string key for
maps.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package unapply

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pmatch.unapply'.
func tracer() tracing.Trace {
	return tracing.Select("pmatch.unapply")
}
