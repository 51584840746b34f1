package pattern

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeError is returned by DecodeYAML for malformed pattern documents.
type DecodeError struct {
	Pos Pos
	Msg string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pattern %s: %s", e.Pos, e.Msg)
}

// DecodeYAML decodes a pattern from its YAML interchange form.
//
// Each pattern node is either a scalar shortcut or a mapping with a
// single selecting key:
//
//    _                                   wildcard
//    "*"                                 sequence wildcard
//    {const: 42}                         constant
//    {bind: x, as: <pattern>}            binding ('as' defaults to _)
//    {deconstruct: Point, args: [...]}   positional deconstructor
//    {attrs: Point, fields: {x: ...}}    attribute deconstructor
//    {alt: [...]}                        alternatives
//    {seq: {left: [...], right: [...], groups: [[...]], targets: [...],
//           exact: n, min: n}}           sequence
//    {dict: {key: <pattern>, ...}}       keyed container
//    {regex: "a+b"}                      regular expression
//    {type: int}                         string convertibility
//    {strdecons: [...]}                  string deconstructor
//
// Tags for deconstructors may be a single name or a list of names.
// Positions of nodes are taken from the YAML document.
func DecodeYAML(src []byte) (Pattern, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &DecodeError{Msg: "empty pattern document"}
	}
	return FromYAMLNode(doc.Content[0])
}

// FromYAMLNode decodes a pattern from an already parsed YAML node. This is
// useful for documents which embed patterns, like case tables.
func FromYAMLNode(node *yaml.Node) (Pattern, error) {
	d := decoder{}
	return d.pattern(node)
}

type decoder struct{}

func posOf(node *yaml.Node) Pos {
	if node.Column == 0 {
		return Pos{Line: node.Line}
	}
	return Pos{Line: node.Line, Col: node.Column - 1}
}

func (d decoder) fail(node *yaml.Node, format string, args ...interface{}) error {
	return &DecodeError{Pos: posOf(node), Msg: fmt.Sprintf(format, args...)}
}

func (d decoder) pattern(node *yaml.Node) (Pattern, error) {
	if node.Kind == yaml.AliasNode {
		return d.pattern(node.Alias)
	}
	pos := posOf(node)
	if node.Kind == yaml.ScalarNode {
		switch node.Value {
		case "_":
			return &Wildcard{Pos: pos}, nil
		case "*":
			return &Wildcard{Pos: pos, Seq: true}, nil
		}
		return nil, d.fail(node, "unexpected scalar %q, expected _ or a pattern mapping", node.Value)
	}
	if node.Kind != yaml.MappingNode {
		return nil, d.fail(node, "pattern must be a mapping")
	}
	keys := mappingKeys(node)
	tracer().Debugf("decoding pattern at %s with keys %v", pos, keys)
	switch {
	case has(keys, "const"):
		v, err := d.value(get(node, "const"))
		if err != nil {
			return nil, err
		}
		return &Constant{Pos: pos, Value: v}, nil
	case has(keys, "bind"):
		return d.binding(node, pos)
	case has(keys, "deconstruct"):
		return d.deconstructor(node, pos)
	case has(keys, "attrs"):
		return d.attributes(node, pos)
	case has(keys, "alt"):
		elts, err := d.list(get(node, "alt"))
		if err != nil {
			return nil, err
		}
		return &Alternatives{Pos: pos, Elts: elts}, nil
	case has(keys, "seq"):
		return d.sequence(get(node, "seq"), pos)
	case has(keys, "dict"):
		return d.dict(get(node, "dict"), pos)
	case has(keys, "regex"):
		s, err := d.scalar(get(node, "regex"))
		if err != nil {
			return nil, err
		}
		return &Regex{Pos: pos, Expr: s}, nil
	case has(keys, "type"):
		s, err := d.scalar(get(node, "type"))
		if err != nil {
			return nil, err
		}
		return &RegexType{Pos: pos, TypeName: s}, nil
	case has(keys, "strdecons"):
		elts, err := d.list(get(node, "strdecons"))
		if err != nil {
			return nil, err
		}
		return &StringDeconstructor{Pos: pos, Elts: elts}, nil
	}
	return nil, d.fail(node, "unknown pattern kind, keys are %v", keys)
}

func (d decoder) binding(node *yaml.Node, pos Pos) (Pattern, error) {
	target, err := d.scalar(get(node, "bind"))
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, d.fail(node, "binding without a name")
	}
	b := &Binding{Pos: pos, Target: target}
	if as := get(node, "as"); as != nil {
		if b.Value, err = d.pattern(as); err != nil {
			return nil, err
		}
	} else {
		b.Value = &Wildcard{Pos: pos}
	}
	return b, nil
}

func (d decoder) deconstructor(node *yaml.Node, pos Pos) (Pattern, error) {
	tags, err := d.tags(get(node, "deconstruct"))
	if err != nil {
		return nil, err
	}
	dc := &Deconstructor{Pos: pos, Tags: tags}
	if args := get(node, "args"); args != nil {
		if dc.Args, err = d.list(args); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

func (d decoder) attributes(node *yaml.Node, pos Pos) (Pattern, error) {
	tags, err := d.tags(get(node, "attrs"))
	if err != nil {
		return nil, err
	}
	ad := &AttributeDeconstructor{Pos: pos, Tags: tags}
	fields := get(node, "fields")
	if fields == nil {
		return ad, nil
	}
	if fields.Kind != yaml.MappingNode {
		return nil, d.fail(fields, "fields must be a mapping")
	}
	for i := 0; i+1 < len(fields.Content); i += 2 {
		p, err := d.pattern(fields.Content[i+1])
		if err != nil {
			return nil, err
		}
		ad.Fields = append(ad.Fields, Field{Name: fields.Content[i].Value, Value: p})
	}
	return ad, nil
}

func (d decoder) sequence(node *yaml.Node, pos Pos) (Pattern, error) {
	if node.Kind == yaml.SequenceNode { // shortcut: fixed elements only
		elts, err := d.list(node)
		if err != nil {
			return nil, err
		}
		s := Seq(elts...)
		s.Pos = pos
		return s, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, d.fail(node, "seq must be a list or a mapping")
	}
	s := &Sequence{Pos: pos}
	var err error
	if n := get(node, "left"); n != nil {
		if s.Left, err = d.list(n); err != nil {
			return nil, err
		}
	}
	if n := get(node, "right"); n != nil {
		if s.Right, err = d.list(n); err != nil {
			return nil, err
		}
	}
	if n := get(node, "groups"); n != nil {
		if n.Kind != yaml.SequenceNode {
			return nil, d.fail(n, "groups must be a list of lists")
		}
		for _, g := range n.Content {
			group, err := d.list(g)
			if err != nil {
				return nil, err
			}
			s.Groups = append(s.Groups, group)
		}
	}
	if n := get(node, "targets"); n != nil {
		if n.Kind != yaml.SequenceNode {
			return nil, d.fail(n, "targets must be a list of names")
		}
		for _, t := range n.Content {
			name := t.Value
			if t.Tag == "!!null" {
				name = ""
			}
			s.Targets = append(s.Targets, name)
		}
	}
	if n := get(node, "exact"); n != nil {
		var l int
		if err := n.Decode(&l); err != nil {
			return nil, d.fail(n, "exact length: %v", err)
		}
		s.Length = Exact(l)
	} else if n := get(node, "min"); n != nil {
		var l int
		if err := n.Decode(&l); err != nil {
			return nil, d.fail(n, "min length: %v", err)
		}
		s.Length = AtLeast(l)
	}
	return s, nil
}

func (d decoder) dict(node *yaml.Node, pos Pos) (Pattern, error) {
	if node.Kind != yaml.MappingNode {
		return nil, d.fail(node, "dict must be a mapping")
	}
	dict := &Dict{Pos: pos}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, err := d.value(node.Content[i])
		if err != nil {
			return nil, err
		}
		p, err := d.pattern(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		dict.Entries = append(dict.Entries, Entry{Key: key, Value: p})
	}
	return dict, nil
}

func (d decoder) list(node *yaml.Node) ([]Pattern, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, d.fail(node, "expected a list of patterns")
	}
	l := make([]Pattern, 0, len(node.Content))
	for _, n := range node.Content {
		p, err := d.pattern(n)
		if err != nil {
			return nil, err
		}
		l = append(l, p)
	}
	return l, nil
}

func (d decoder) tags(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		tags := make([]string, 0, len(node.Content))
		for _, n := range node.Content {
			if n.Kind != yaml.ScalarNode {
				return nil, d.fail(n, "type tag must be a name")
			}
			tags = append(tags, n.Value)
		}
		if len(tags) == 0 {
			return nil, d.fail(node, "empty list of type tags")
		}
		return tags, nil
	}
	return nil, d.fail(node, "type tag must be a name or a list of names")
}

func (d decoder) scalar(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", d.fail(node, "expected a scalar")
	}
	return node.Value, nil
}

func (d decoder) value(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, d.fail(node, "%v", err)
	}
	return v, nil
}

// --- Helpers ---------------------------------------------------------------

func mappingKeys(node *yaml.Node) []string {
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

func has(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func get(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
