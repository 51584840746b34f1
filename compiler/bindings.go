package compiler

import (
	"sort"

	"github.com/npillmayer/pmatch/pattern"
)

// bindingTable tracks the capture names introduced during one
// compilation. register is the only way to introduce a name; it refuses
// duplicates and names within alternatives, which guarantees that every
// capture is defined on every path through a matcher reporting a match.
type bindingTable struct {
	src   *source
	slots map[string]int // name -> slot, in order of introduction
	lock  int            // > 0 while compiling branches of alternatives
}

func newBindingTable(src *source) *bindingTable {
	return &bindingTable{
		src:   src,
		slots: make(map[string]int),
	}
}

func (bt *bindingTable) register(name string, pos pattern.Pos) error {
	if bt.lock > 0 {
		return bt.src.errorAt(pos, "name bindings are not allowed inside alternative branches")
	}
	if _, exists := bt.slots[name]; exists {
		return bt.src.errorAt(pos, "redefinition of name %s", name)
	}
	bt.slots[name] = len(bt.slots)
	tracer().Debugf("capture %q bound to slot %d", name, bt.slots[name])
	return nil
}

func (bt *bindingTable) enterAlternation() {
	bt.lock++
}

func (bt *bindingTable) leaveAlternation() {
	assertThat(bt.lock > 0, "alternation lock released more often than acquired")
	bt.lock--
}

// sorted returns the capture names in lexical order.
func (bt *bindingTable) sorted() []string {
	names := make([]string, 0, len(bt.slots))
	for name := range bt.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
