/*
Package pmatch brings structural pattern matching to Go.

Patterns (package pattern) are compiled into case units (package
compiler). A case unit tests a value against its pattern, binds captures
and checks an optional guard (package guard). This package chains case
units into multi-branch switches:

    var x, y any
    sw := pmatch.On(p, nil)
    switch sw {
    case sw.Case(diagonal, &x, &y):
        fmt.Printf("on the diagonal at %v\n", x)
    case sw.Case(point, &x, &y):
        fmt.Printf("at (%v, %v)\n", x, y)
    case sw.Default():
        fmt.Println("not a point")
    }
    if sw.Err() != nil { … }

Captures are assigned in lexical order of their names, not in the order
they appear in the pattern.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pmatch

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pmatch'.
func tracer() tracing.Trace {
	return tracing.Select("pmatch")
}
