package pattern

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders a pattern tree for debugging.
//
//    Deconstructor Point
//    ├── Binding x
//    │   └── Wildcard
//    └── Binding y
//        └── Wildcard
//
func Dump(p Pattern) string {
	printer := tp.New()
	printer.SetValue(label(p))
	dumpChildren(printer, p)
	return printer.String()
}

func dumpNode(printer tp.Tree, p Pattern) {
	if p == nil {
		printer.AddNode("<nil>")
		return
	}
	if !hasChildren(p) {
		printer.AddNode(label(p))
		return
	}
	branch := printer.AddBranch(label(p))
	dumpChildren(branch, p)
}

func dumpChildren(printer tp.Tree, p Pattern) {
	switch n := p.(type) {
	case *Binding:
		dumpNode(printer, n.Value)
	case *Deconstructor:
		for _, arg := range n.Args {
			dumpNode(printer, arg)
		}
	case *AttributeDeconstructor:
		for _, f := range n.Fields {
			dumpNode(printer.AddMetaBranch(f.Name, "="), f.Value)
		}
	case *Alternatives:
		for _, elt := range n.Elts {
			dumpNode(printer, elt)
		}
	case *StringDeconstructor:
		for _, elt := range n.Elts {
			dumpNode(printer, elt)
		}
	case *Dict:
		for _, e := range n.Entries {
			dumpNode(printer.AddMetaBranch(fmt.Sprintf("%#v", e.Key), ":"), e.Value)
		}
	case *Sequence:
		dumpList(printer, "left", n.Left)
		for j, g := range n.Groups {
			dumpList(printer, fmt.Sprintf("group %d", j), g)
		}
		dumpList(printer, "right", n.Right)
		for j, t := range n.Targets {
			if t != "" {
				printer.AddMetaNode(fmt.Sprintf("target %d", j), t)
			}
		}
	}
}

func dumpList(printer tp.Tree, name string, elts []Pattern) {
	if len(elts) == 0 {
		return
	}
	branch := printer.AddBranch(name)
	for _, elt := range elts {
		dumpNode(branch, elt)
	}
}

func hasChildren(p Pattern) bool {
	switch n := p.(type) {
	case *Binding:
		return true
	case *Deconstructor:
		return len(n.Args) > 0
	case *AttributeDeconstructor:
		return len(n.Fields) > 0
	case *Alternatives:
		return len(n.Elts) > 0
	case *StringDeconstructor:
		return len(n.Elts) > 0
	case *Dict:
		return len(n.Entries) > 0
	case *Sequence:
		return true
	}
	return false
}

func label(p Pattern) string {
	switch n := p.(type) {
	case *Constant:
		return fmt.Sprintf("Constant %#v", n.Value)
	case *Wildcard:
		if n.Seq {
			return "Wildcard *"
		}
		return "Wildcard"
	case *Binding:
		return "Binding " + n.Target
	case *Deconstructor:
		return "Deconstructor " + TagString(n.Tags)
	case *AttributeDeconstructor:
		return "AttributeDeconstructor " + TagString(n.Tags)
	case *Regex:
		return fmt.Sprintf("Regex %q", n.Expr)
	case *RegexType:
		return "RegexType " + n.TypeName
	case *Sequence:
		return "Sequence " + n.Length.String()
	}
	return KindOf(p).String()
}
