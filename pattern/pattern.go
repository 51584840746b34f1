package pattern

import (
	"fmt"
	"strings"
)

// Pos is a position within the source of a pattern.
// Line is 1-based, Col is a 0-based offset, as in most source-position
// error reports. The zero value means "no position known".
type Pos struct {
	Line int
	Col  int
}

// IsKnown is true if p carries a line number.
func (p Pos) IsKnown() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsKnown() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Pattern is the interface all pattern nodes implement.
type Pattern interface {
	Position() Pos
	isPattern()
}

// Kind enumerates the pattern node kinds.
type Kind int8

// Node kinds of the pattern AST.
const (
	KindInvalid Kind = iota
	KindConstant
	KindWildcard
	KindBinding
	KindDeconstructor
	KindAttributeDeconstructor
	KindAlternatives
	KindSequence
	KindDict
	KindRegex
	KindRegexType
	KindStringDeconstructor
)

var kindNames = [...]string{
	"Invalid",
	"Constant",
	"Wildcard",
	"Binding",
	"Deconstructor",
	"AttributeDeconstructor",
	"Alternatives",
	"Sequence",
	"Dict",
	"Regex",
	"RegexType",
	"StringDeconstructor",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Invalid"
	}
	return kindNames[k]
}

// KindOf returns the kind of a pattern node.
func KindOf(p Pattern) Kind {
	switch p.(type) {
	case *Constant:
		return KindConstant
	case *Wildcard:
		return KindWildcard
	case *Binding:
		return KindBinding
	case *Deconstructor:
		return KindDeconstructor
	case *AttributeDeconstructor:
		return KindAttributeDeconstructor
	case *Alternatives:
		return KindAlternatives
	case *Sequence:
		return KindSequence
	case *Dict:
		return KindDict
	case *Regex:
		return KindRegex
	case *RegexType:
		return KindRegexType
	case *StringDeconstructor:
		return KindStringDeconstructor
	}
	return KindInvalid
}

// --- Leaf patterns ---------------------------------------------------------

// Constant matches values equal to Value.
type Constant struct {
	Pos   Pos
	Value any
}

// Wildcard matches anything. A sequence wildcard (Seq=true) stands for a
// run of elements; sequences express those through the structure of
// Sequence, so a sequence wildcard is never valid on its own.
type Wildcard struct {
	Pos Pos
	Seq bool
}

// Regex matches strings which match Expr as a whole.
type Regex struct {
	Pos  Pos
	Expr string
}

// RegexType matches values convertible to a type ("int", "float", "bool")
// or strings satisfying a named predicate ("identifier", "digit", …).
type RegexType struct {
	Pos      Pos
	TypeName string
}

// --- Composite patterns ----------------------------------------------------

// Binding captures the tested value under Target and delegates the test to
// Value.
type Binding struct {
	Pos    Pos
	Target string
	Value  Pattern
}

// Deconstructor decomposes a value of one of the types Tags into an
// ordered list of parts and tests the parts positionally against Args.
type Deconstructor struct {
	Pos  Pos
	Tags []string
	Args []Pattern
}

// Field is a named sub-pattern of an AttributeDeconstructor.
type Field struct {
	Name  string
	Value Pattern
}

// AttributeDeconstructor checks the type tag of a value and tests named
// attributes against sub-patterns.
type AttributeDeconstructor struct {
	Pos    Pos
	Tags   []string
	Fields []Field
}

// Alternatives matches if any of Elts matches.
type Alternatives struct {
	Pos  Pos
	Elts []Pattern
}

// LengthKind qualifies a length constraint of a Sequence.
type LengthKind int8

// Kinds of length constraints.
const (
	NoLength LengthKind = iota
	ExactLength
	MinLength
)

// Length is a length constraint for sequences. The zero value is
// unconstrained.
type Length struct {
	Kind LengthKind
	N    int
}

// Exact returns a constraint for sequences of exactly n elements.
func Exact(n int) Length {
	return Length{Kind: ExactLength, N: n}
}

// AtLeast returns a constraint for sequences of at least n elements.
func AtLeast(n int) Length {
	return Length{Kind: MinLength, N: n}
}

func (l Length) String() string {
	switch l.Kind {
	case ExactLength:
		return fmt.Sprintf("=%d", l.N)
	case MinLength:
		return fmt.Sprintf(">=%d", l.N)
	}
	return "*"
}

// Sequence matches ordered containers.
//
// Left is matched against the leading elements, Right against the
// trailing elements (Right[0] being the last element). Groups are runs of
// contiguous elements searched for between the two, in order.
// Targets names the slices between the groups: Targets[j] captures the
// elements skipped before Groups[j] is found, a further name after the
// last group captures the rest. Without groups a single target captures
// everything between Left and Right. Empty names capture nothing.
type Sequence struct {
	Pos     Pos
	Left    []Pattern
	Right   []Pattern
	Groups  [][]Pattern
	Targets []string
	Length  Length
}

// Entry is a key/pattern pair of a Dict pattern.
type Entry struct {
	Key   any
	Value Pattern
}

// Dict matches keyed containers which hold all of the keys of Entries,
// each with a value matching the corresponding pattern.
type Dict struct {
	Pos     Pos
	Entries []Entry
}

// StringDeconstructor splits strings into sub-patterns. It is not
// supported by the compiler.
type StringDeconstructor struct {
	Pos  Pos
	Elts []Pattern
}

func (p *Constant) Position() Pos               { return p.Pos }
func (p *Wildcard) Position() Pos               { return p.Pos }
func (p *Binding) Position() Pos                { return p.Pos }
func (p *Deconstructor) Position() Pos          { return p.Pos }
func (p *AttributeDeconstructor) Position() Pos { return p.Pos }
func (p *Alternatives) Position() Pos           { return p.Pos }
func (p *Sequence) Position() Pos               { return p.Pos }
func (p *Dict) Position() Pos                   { return p.Pos }
func (p *Regex) Position() Pos                  { return p.Pos }
func (p *RegexType) Position() Pos              { return p.Pos }
func (p *StringDeconstructor) Position() Pos    { return p.Pos }

func (*Constant) isPattern()               {}
func (*Wildcard) isPattern()               {}
func (*Binding) isPattern()                {}
func (*Deconstructor) isPattern()          {}
func (*AttributeDeconstructor) isPattern() {}
func (*Alternatives) isPattern()           {}
func (*Sequence) isPattern()               {}
func (*Dict) isPattern()                   {}
func (*Regex) isPattern()                  {}
func (*RegexType) isPattern()              {}
func (*StringDeconstructor) isPattern()    {}

// --- Constructors ----------------------------------------------------------

// Const creates a constant pattern.
func Const(v any) *Constant {
	return &Constant{Value: v}
}

// Any creates a wildcard.
func Any() *Wildcard {
	return &Wildcard{}
}

// Bind creates a binding. If p is nil, the binding wraps a wildcard.
func Bind(target string, p Pattern) *Binding {
	if p == nil {
		p = Any()
	}
	return &Binding{Target: target, Value: p}
}

// Decons creates a positional deconstructor for type tag tag.
func Decons(tag string, args ...Pattern) *Deconstructor {
	return &Deconstructor{Tags: []string{tag}, Args: args}
}

// Attrs creates an attribute deconstructor for type tag tag.
func Attrs(tag string, fields ...Field) *AttributeDeconstructor {
	return &AttributeDeconstructor{Tags: []string{tag}, Fields: fields}
}

// OneOf creates alternatives.
func OneOf(elts ...Pattern) *Alternatives {
	return &Alternatives{Elts: elts}
}

// Seq creates a sequence pattern of fixed elements only, constrained to
// exactly len(elts) elements.
func Seq(elts ...Pattern) *Sequence {
	return &Sequence{Left: elts, Length: Exact(len(elts))}
}

// TagString renders a list of type tags the way they are written in
// patterns: a single name, or a parenthesized list.
func TagString(tags []string) string {
	if len(tags) == 1 {
		return tags[0]
	}
	return "(" + strings.Join(tags, ", ") + ")"
}
