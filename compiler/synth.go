package compiler

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set"
	"github.com/npillmayer/pmatch/pattern"
	"github.com/npillmayer/pmatch/unapply"
)

// Procedure describes a test procedure synthesized for a pattern node
// which needs more than a single expression. Procedures are listed in
// order of completion, i.e. sub-patterns before their parents.
type Procedure struct {
	Name string
	Kind pattern.Kind
	Pos  pattern.Pos
}

func (p Procedure) String() string {
	return fmt.Sprintf("%s %s @%s", p.Name, p.Kind, p.Pos)
}

// synthesizer holds the state of one compilation.
type synthesizer struct {
	src      *source
	registry *unapply.Registry
	regexes  *regexCache
	bindings *bindingTable
	procs    []Procedure
}

// procedure registers a named test procedure for node p.
func (syn *synthesizer) procedure(p pattern.Pattern, test Test) Test {
	proc := Procedure{
		Name: fmt.Sprintf("_test_%d", len(syn.procs)),
		Kind: pattern.KindOf(p),
		Pos:  p.Position(),
	}
	syn.procs = append(syn.procs, proc)
	tracer().Debugf("synthesized %s", proc)
	return test
}

func (syn *synthesizer) compile(p pattern.Pattern) (Test, error) {
	switch n := p.(type) {
	case *pattern.Constant:
		return syn.constant(n), nil
	case *pattern.Wildcard:
		return syn.wildcard(n)
	case *pattern.Binding:
		return syn.binding(n)
	case *pattern.Deconstructor:
		return syn.deconstructor(n)
	case *pattern.AttributeDeconstructor:
		return syn.attributes(n)
	case *pattern.Alternatives:
		return syn.alternatives(n)
	case *pattern.Sequence:
		return syn.sequence(n)
	case *pattern.Dict:
		return syn.dict(n)
	case *pattern.Regex:
		return syn.regex(n)
	case *pattern.RegexType:
		return syn.regexType(n)
	case *pattern.StringDeconstructor:
		return nil, errors.Wrapf(ErrUnsupported, "string deconstructor at %s", n.Pos)
	case nil:
		return nil, errors.AssertionFailedf("missing pattern node")
	}
	return nil, errors.AssertionFailedf("unexpected node in pattern matching: %T", p)
}

func (syn *synthesizer) compileAll(ps []pattern.Pattern) ([]Test, error) {
	tests := make([]Test, len(ps))
	for i, p := range ps {
		t, err := syn.compile(p)
		if err != nil {
			return nil, err
		}
		tests[i] = t
	}
	return tests, nil
}

// isAny is true for patterns which match anything without side effects.
func isAny(p pattern.Pattern) bool {
	w, ok := p.(*pattern.Wildcard)
	return ok && !w.Seq
}

// --- Leaves ----------------------------------------------------------------

func (syn *synthesizer) constant(n *pattern.Constant) Test {
	c := n.Value
	return predicate(func(v any) bool {
		return valuesEqual(v, c)
	})
}

func (syn *synthesizer) wildcard(n *pattern.Wildcard) (Test, error) {
	if n.Seq {
		return nil, syn.src.errorAt(n.Pos, "unexpected sequence wildcard")
	}
	return always, nil
}

func (syn *synthesizer) regex(n *pattern.Regex) (Test, error) {
	re, err := syn.regexes.fullMatch(n.Expr)
	if err != nil {
		return nil, syn.src.errorAt(n.Pos, "invalid regular expression %q: %v", n.Expr, err)
	}
	return syn.procedure(n, func(v any, _ *Scope) (bool, error) {
		s, ok := stringOf(v)
		if !ok {
			return false, nil
		}
		return re.MatchString(s)
	}), nil
}

func (syn *synthesizer) regexType(n *pattern.RegexType) (Test, error) {
	pred, ok := typeTest(n.TypeName)
	if !ok {
		return nil, syn.src.errorAt(n.Pos, "unknown type %q for string conversion", n.TypeName)
	}
	return syn.procedure(n, predicate(pred)), nil
}

// --- Bindings --------------------------------------------------------------

// binding stores the value before the wrapped test runs. If that test
// fails, the capture keeps the value, though the match as a whole fails.
func (syn *synthesizer) binding(n *pattern.Binding) (Test, error) {
	if err := syn.bindings.register(n.Target, n.Pos); err != nil {
		return nil, err
	}
	sub, err := syn.compile(n.Value)
	if err != nil {
		return nil, err
	}
	target := n.Target
	return syn.procedure(n, func(v any, s *Scope) (bool, error) {
		s.bind(target, v)
		return sub(v, s)
	}), nil
}

// --- Deconstruction --------------------------------------------------------

func (syn *synthesizer) deconstructor(n *pattern.Deconstructor) (Test, error) {
	registry, tags := syn.registry, n.Tags
	if len(n.Args) == 0 {
		return predicate(func(v any) bool {
			return !registry.Extract(v, tags...).IsNothing()
		}), nil
	}
	args, err := syn.compileAll(n.Args)
	if err != nil {
		return nil, err
	}
	// positions of sub-patterns which do not match everything
	var checked []int
	for i, arg := range n.Args {
		if !isAny(arg) {
			checked = append(checked, i)
		}
	}
	arity := len(args)
	return syn.procedure(n, func(v any, s *Scope) (bool, error) {
		parts, ok := registry.Extract(v, tags...).Get()
		if !ok {
			return false, nil
		}
		if len(parts) < arity {
			return false, &ArityError{Tags: tags, Want: arity, Have: len(parts)}
		}
		if arity == 1 {
			return args[0](parts[0], s)
		}
		for _, i := range checked {
			if ok, err := args[i](parts[i], s); !ok || err != nil {
				return false, err
			}
		}
		return true, nil
	}), nil
}

func (syn *synthesizer) attributes(n *pattern.AttributeDeconstructor) (Test, error) {
	type field struct {
		name string
		test Test
	}
	fields := make([]field, len(n.Fields))
	for i, f := range n.Fields {
		t, err := syn.compile(f.Value)
		if err != nil {
			return nil, err
		}
		fields[i] = field{name: f.Name, test: t}
	}
	registry, tags := syn.registry, n.Tags
	return syn.procedure(n, func(v any, s *Scope) (bool, error) {
		if !registry.IsInstance(v, tags...) {
			return false, nil
		}
		for _, f := range fields {
			x, ok := unapply.Attribute(v, f.name)
			if !ok {
				return false, nil
			}
			if ok, err := f.test(x, s); !ok || err != nil {
				return false, err
			}
		}
		return true, nil
	}), nil
}

// --- Alternatives ----------------------------------------------------------

func (syn *synthesizer) alternatives(n *pattern.Alternatives) (Test, error) {
	if len(n.Elts) == 0 {
		return predicate(func(any) bool { return false }), nil
	}
	if t, ok := constantSet(n.Elts); ok {
		return t, nil
	}
	var prefix Test
	if tags, ok := tagSet(n.Elts); ok {
		registry := syn.registry
		prefix = predicate(func(v any) bool {
			return registry.IsInstance(v, tags...)
		})
		if allPlainDeconstructors(n.Elts) {
			return prefix, nil
		}
	}
	syn.bindings.enterAlternation()
	branches, err := syn.compileAll(n.Elts)
	syn.bindings.leaveAlternation()
	if err != nil {
		return nil, err
	}
	test := anyOf(branches...)
	if prefix != nil {
		test = allOf(prefix, test)
	}
	return syn.procedure(n, test), nil
}

// constantSet creates a membership test if all alternatives are scalar
// constants.
func constantSet(elts []pattern.Pattern) (Test, bool) {
	set := mapset.NewSet()
	for _, elt := range elts {
		c, ok := elt.(*pattern.Constant)
		if !ok {
			return nil, false
		}
		key, ok := scalarKey(c.Value)
		if !ok {
			return nil, false
		}
		set.Add(key)
	}
	return predicate(func(v any) bool {
		key, ok := scalarKey(v)
		return ok && set.Contains(key)
	}), true
}

// tagSet collects the type tags of all alternatives, if every alternative
// is a deconstructor.
func tagSet(elts []pattern.Pattern) ([]string, bool) {
	set := mapset.NewSet()
	for _, elt := range elts {
		var tags []string
		switch d := elt.(type) {
		case *pattern.Deconstructor:
			tags = d.Tags
		case *pattern.AttributeDeconstructor:
			tags = d.Tags
		default:
			return nil, false
		}
		for _, tag := range tags {
			set.Add(tag)
		}
	}
	tags := make([]string, 0, set.Cardinality())
	for _, tag := range set.ToSlice() {
		tags = append(tags, tag.(string))
	}
	sort.Strings(tags)
	return tags, true
}

func allPlainDeconstructors(elts []pattern.Pattern) bool {
	for _, elt := range elts {
		if d, ok := elt.(*pattern.Deconstructor); !ok || len(d.Args) > 0 {
			return false
		}
	}
	return true
}

// --- Dicts -----------------------------------------------------------------

func (syn *synthesizer) dict(n *pattern.Dict) (Test, error) {
	type entry struct {
		key  any
		test Test
	}
	entries := make([]entry, len(n.Entries))
	for i, e := range n.Entries {
		t, err := syn.compile(e.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = entry{key: e.Key, test: t}
	}
	return syn.procedure(n, func(v any, s *Scope) (bool, error) {
		if !isMapping(v) {
			return false, nil
		}
		for _, e := range entries {
			x, found := lookup(v, e.key)
			if !found {
				return false, nil
			}
			if ok, err := e.test(x, s); !ok || err != nil {
				return false, err
			}
		}
		return true, nil
	}), nil
}
