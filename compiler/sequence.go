package compiler

import (
	"reflect"

	"github.com/npillmayer/pmatch/pattern"
)

// sequence compiles a sequence pattern.
//
// After checking the length constraint, the fixed elements are tested
// from the front and from the back. Then every group is searched for by a
// forward scan between the fixed parts, starting after the previous
// group. The leftmost position where all elements of the group match is
// taken; there is no backtracking to later positions if subsequent groups
// fail to match. Elements skipped on the way are captured by the target
// of the group, if it has one. A group window never overlaps the fixed
// elements on the right.
//
// Runtime faults while testing the elements are non-matches. Errors
// reported by element tests are not.
func (syn *synthesizer) sequence(n *pattern.Sequence) (Test, error) {
	nfixed := len(n.Left) + len(n.Right)
	if n.Length.Kind != pattern.NoLength && n.Length.N < nfixed {
		return nil, syn.src.errorAt(n.Pos, "sequence of length %s cannot hold %d fixed elements",
			n.Length, nfixed)
	}
	if len(n.Targets) > len(n.Groups)+1 {
		return nil, syn.src.errorAt(n.Pos, "too many capture targets for sequence with %d groups",
			len(n.Groups))
	}
	left, err := syn.compileAll(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := syn.compileAll(n.Right)
	if err != nil {
		return nil, err
	}
	groups := make([][]Test, len(n.Groups))
	targets := make([]string, len(n.Targets))
	for j, g := range n.Groups {
		if groups[j], err = syn.compileAll(g); err != nil {
			return nil, err
		}
		if j < len(n.Targets) && n.Targets[j] != "" {
			if err = syn.bindings.register(n.Targets[j], n.Pos); err != nil {
				return nil, err
			}
			targets[j] = n.Targets[j]
		}
	}
	var rest string // capture for everything between the fixed parts or after the last group
	if len(n.Targets) == len(n.Groups)+1 && n.Targets[len(n.Groups)] != "" {
		rest = n.Targets[len(n.Groups)]
		if err = syn.bindings.register(rest, n.Pos); err != nil {
			return nil, err
		}
	}
	m := &seqMatcher{
		length:  n.Length,
		left:    left,
		right:   right,
		groups:  groups,
		targets: targets,
		rest:    rest,
	}
	return syn.procedure(n, m.test), nil
}

type seqMatcher struct {
	length  pattern.Length
	left    []Test
	right   []Test
	groups  [][]Test
	targets []string // per group, may be shorter than groups
	rest    string
}

func (m *seqMatcher) test(v any, s *Scope) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Debugf("sequence test recovered from %v", r)
			ok, err = false, nil
		}
	}()
	seq, isSeq := seqOf(v)
	if !isSeq {
		return false, nil
	}
	n := seq.Len()
	switch m.length.Kind {
	case pattern.ExactLength:
		if n != m.length.N {
			return false, nil
		}
	case pattern.MinLength:
		if n < m.length.N {
			return false, nil
		}
	}
	if n < len(m.left)+len(m.right) {
		return false, nil
	}
	for i, t := range m.left {
		if ok, err = t(seq.Index(i).Interface(), s); !ok || err != nil {
			return false, err
		}
	}
	for i, t := range m.right {
		if ok, err = t(seq.Index(n-1-i).Interface(), s); !ok || err != nil {
			return false, err
		}
	}
	i, ceiling := len(m.left), n-len(m.right)
	if len(m.groups) == 0 {
		if m.rest != "" {
			s.bind(m.rest, subseq(seq, i, ceiling))
		}
		return true, nil
	}
	for j, group := range m.groups {
		start := i
		found := false
		for ; i+len(group) <= ceiling; i++ {
			if found, err = m.window(seq, i, group, s); found || err != nil {
				break
			}
		}
		if err != nil || !found {
			return false, err
		}
		if j < len(m.targets) && m.targets[j] != "" {
			s.bind(m.targets[j], subseq(seq, start, i))
		}
		i += len(group)
	}
	if m.rest != "" {
		s.bind(m.rest, subseq(seq, i, ceiling))
	}
	return true, nil
}

// window tests the elements of a group against the run of elements
// starting at position at.
func (m *seqMatcher) window(seq reflect.Value, at int, group []Test, s *Scope) (bool, error) {
	for k, t := range group {
		if ok, err := t(seq.Index(at+k).Interface(), s); !ok || err != nil {
			return false, err
		}
	}
	return true, nil
}
