package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/npillmayer/pmatch"
	"github.com/npillmayer/pmatch/compiler"
	"github.com/npillmayer/pmatch/guard"
	"github.com/npillmayer/pmatch/pattern"
	"github.com/npillmayer/pmatch/unapply"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// TypeKey is the mapping key marking records in case files.
const TypeKey = "_type"

type caseTable struct {
	cases   []pattern.Pattern
	units   []*compiler.Unit
	sources map[string]any
	values  []any
}

type result struct {
	value    any
	unit     *compiler.Unit
	captures []any
}

func loadTable(filename string, src []byte) (*caseTable, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Wrapf(err, "cannot read case file %s", filename)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.Newf("%s: case file must be a mapping", filename)
	}
	root := doc.Content[0]
	table := &caseTable{sources: make(map[string]any)}
	if n := lookupKey(root, "sources"); n != nil {
		v, err := valueOf(n)
		if err != nil {
			return nil, err
		}
		m, ok := v.(map[any]any)
		if !ok {
			return nil, errors.Newf("%s:%d: sources must be a mapping", filename, n.Line)
		}
		for k, x := range m {
			table.sources[fmt.Sprint(k)] = x
		}
	}
	c := compiler.New(compiler.WithSource(filename, string(src)))
	cases := lookupKey(root, "cases")
	if cases == nil || cases.Kind != yaml.SequenceNode {
		return nil, errors.Newf("%s: missing list of cases", filename)
	}
	for i, cn := range cases.Content {
		p, u, err := compileCase(c, i, cn)
		if err != nil {
			return nil, err
		}
		table.cases = append(table.cases, p)
		table.units = append(table.units, u)
	}
	if vs := lookupKey(root, "values"); vs != nil {
		if vs.Kind != yaml.SequenceNode {
			return nil, errors.Newf("%s:%d: values must be a list", filename, vs.Line)
		}
		for _, vn := range vs.Content {
			v, err := valueOf(vn)
			if err != nil {
				return nil, err
			}
			table.values = append(table.values, v)
		}
	}
	return table, nil
}

func compileCase(c *compiler.Compiler, i int, node *yaml.Node) (pattern.Pattern, *compiler.Unit, error) {
	var entry struct {
		Name     string    `yaml:"name"`
		Pattern  yaml.Node `yaml:"pattern"`
		Guard    string    `yaml:"guard"`
		Requires []string  `yaml:"requires"`
	}
	if err := node.Decode(&entry); err != nil {
		return nil, nil, err
	}
	if entry.Name == "" {
		entry.Name = fmt.Sprintf("case%d", i+1)
	}
	p, err := pattern.FromYAMLNode(&entry.Pattern)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "case %s", entry.Name)
	}
	var g guard.Guard
	if entry.Guard != "" {
		if g, err = guard.Script(entry.Guard, entry.Requires...); err != nil {
			return nil, nil, err
		}
	}
	u, err := c.Compile(entry.Name, p, g)
	if err != nil {
		return nil, nil, err
	}
	return p, u, nil
}

// matchAll finds the first matching case for every value.
func (table *caseTable) matchAll() ([]result, error) {
	results := make([]result, 0, len(table.values))
	for _, v := range table.values {
		r := result{value: v}
		for _, u := range table.units {
			captures, err := pmatch.Try(u, v, table.sources).Get()
			if err != nil {
				return nil, err
			}
			if values, ok := captures.Get(); ok {
				r.unit, r.captures = u, values
				break
			}
		}
		results = append(results, r)
	}
	return results, nil
}

func report(w io.Writer, results []result) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Value", "Case", "Captures"})
	tw.SetAutoWrapText(false)
	for _, r := range results {
		name, captures := "-", ""
		if r.unit != nil {
			name = r.unit.Name()
			var parts []string
			for i, t := range r.unit.Targets() {
				parts = append(parts, fmt.Sprintf("%s=%v", t, r.captures[i]))
			}
			captures = strings.Join(parts, " ")
		}
		tw.Append([]string{fmt.Sprintf("%v", r.value), name, captures})
	}
	tw.Render()
}

// --- Values ----------------------------------------------------------------

// valueOf converts a YAML node into a candidate value. Mappings with a
// TypeKey become records, other mappings map[any]any, sequences []any.
func valueOf(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return valueOf(node.Alias)
	case yaml.SequenceNode:
		l := make([]any, 0, len(node.Content))
		for _, n := range node.Content {
			v, err := valueOf(n)
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		return l, nil
	case yaml.MappingNode:
		if tag := lookupKey(node, TypeKey); tag != nil {
			return recordOf(tag.Value, node)
		}
		m := make(map[any]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			kn := node.Content[i]
			if kn.Kind == yaml.AliasNode {
				kn = kn.Alias
			}
			if kn.Kind != yaml.ScalarNode {
				return nil, errors.Newf("%d:%d: mapping keys must be scalars", kn.Line, kn.Column)
			}
			var k any
			if err := kn.Decode(&k); err != nil {
				return nil, err
			}
			v, err := valueOf(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func recordOf(tag string, node *yaml.Node) (*unapply.Record, error) {
	r := &unapply.Record{Tag: tag}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if name == TypeKey {
			continue
		}
		v, err := valueOf(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		r.Names = append(r.Names, name)
		r.Values = append(r.Values, v)
	}
	return r, nil
}

func lookupKey(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
