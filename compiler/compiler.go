package compiler

import (
	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pmatch/guard"
	"github.com/npillmayer/pmatch/pattern"
	"github.com/npillmayer/pmatch/unapply"
)

// Compiler compiles patterns to case units.
//
// All state of a compilation lives for the duration of a call to
// Compile, and is fresh for every call. A Compiler may therefore be
// re-used for any number of patterns.
type Compiler struct {
	filename  string
	text      string
	registry  *unapply.Registry
	cacheSize int
	regexes   *regexCache
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithSource tells the compiler where patterns come from. Syntax errors
// will carry the filename and, if text is not empty, the offending line.
func WithSource(filename, text string) Option {
	return func(c *Compiler) {
		c.filename = filename
		c.text = text
	}
}

// WithRegistry sets the registry of extraction functions compiled units
// use. The default is the global registry of package unapply.
func WithRegistry(r *unapply.Registry) Option {
	return func(c *Compiler) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithRegexCacheSize sets the number of compiled regular expressions to
// keep for re-use.
func WithRegexCacheSize(n int) Option {
	return func(c *Compiler) {
		c.cacheSize = n
	}
}

// New creates a compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		registry:  unapply.Default(),
		cacheSize: DefaultRegexCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.regexes = newRegexCache(c.cacheSize)
	return c
}

// Compile compiles pattern p and an optional guard g into a case unit
// called name.
func (c *Compiler) Compile(name string, p pattern.Pattern, g guard.Guard) (u *Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.IsAssertionFailure(e) {
				u, err = nil, e
				return
			}
			panic(r)
		}
	}()
	if p == nil {
		return nil, errors.New("cannot compile nil pattern")
	}
	tracer().Debugf("compiling case %s", name)
	src := newSource(c.filename, c.text)
	syn := &synthesizer{
		src:      src,
		registry: c.registry,
		regexes:  c.regexes,
		bindings: newBindingTable(src),
	}
	test, err := syn.compile(p)
	if err != nil {
		tracer().Infof("case %s does not compile: %v", name, err)
		return nil, err
	}
	assertThat(syn.bindings.lock == 0, "alternation lock still held after compiling %s", name)
	u = &Unit{
		name:       name,
		targets:    syn.bindings.sorted(),
		sources:    guard.SourcesOf(g),
		test:       test,
		guard:      g,
		procedures: syn.procs,
	}
	tracer().Debugf("case %s: targets=%v, sources=%v, %d procedures", name,
		u.targets, u.sources, len(u.procedures))
	return u, nil
}

// MustCompile is like Compile but panics if the pattern cannot be
// compiled. It simplifies initialization of global case units.
func (c *Compiler) MustCompile(name string, p pattern.Pattern, g guard.Guard) *Unit {
	u, err := c.Compile(name, p, g)
	if err != nil {
		panic(err)
	}
	return u
}
