package unapply

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type Point struct {
	X, Y   int
	hidden string
}

type pair [2]int

func (p pair) Unapply() []any { return []any{p[0], p[1]} }

func TestTagOf(t *testing.T) {
	for v, tag := range map[any]string{
		nil:                 "nil",
		Point{}:             "Point",
		&Point{}:            "Point",
		pair{}:              "pair",
		3:                   "int",
		NewRecord("Circle"): "Circle",
		"s":                 "string",
	} {
		if TagOf(v) != tag {
			t.Errorf("expected tag of %#v to be %s, is %s", v, tag, TagOf(v))
		}
	}
	if TagOf([]int{}) != "[]int" {
		t.Errorf("expected unnamed type to have its literal as tag, is %s", TagOf([]int{}))
	}
}

func TestExtractDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.unapply")
	defer teardown()
	//
	r := NewRegistry()
	var parts []any
	switch m := r.Extract(&Point{X: 1, Y: 2, hidden: "h"}, "Point").Match(); m {
	case m.Just(&parts):
		if diff := cmp.Diff([]any{1, 2}, parts); diff != "" {
			t.Errorf("parts mismatch (-want +got):\n%s", diff)
		}
	case m.Nothing():
		t.Errorf("expected Point to be extracted")
	}
	if !r.Extract(Point{}, "Circle").IsNothing() {
		t.Errorf("expected Point not to be extracted as Circle")
	}
	parts, _ = r.Extract(pair{4, 5}, "pair").Get()
	if diff := cmp.Diff([]any{4, 5}, parts); diff != "" {
		t.Errorf("parts mismatch (-want +got):\n%s", diff)
	}
	parts, _ = r.Extract(7, "Circle", "int").Get()
	if diff := cmp.Diff([]any{7}, parts); diff != "" {
		t.Errorf("expected non-struct to extract to itself (-want +got):\n%s", diff)
	}
}

func TestExtractRegistered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.unapply")
	defer teardown()
	//
	r := NewRegistry()
	r.Register("Even", func(v any) ([]any, bool) {
		n, ok := v.(int)
		if !ok || n%2 != 0 {
			return nil, false
		}
		return []any{n / 2}, true
	})
	if !r.IsInstance(4, "Even") || r.IsInstance(3, "Even") {
		t.Errorf("expected registered function to decide instances")
	}
	half, ok := r.Extract(4, "Even").Get()
	if !ok || half[0] != 2 {
		t.Errorf("expected Even(4) = [2], is %v", half)
	}
	r.RegisterInstance("Even", func(v any) bool { return true })
	if !r.IsInstance("x", "Even") {
		t.Errorf("expected predicate to override extraction function")
	}
	if !r.Extract("x", "Even").IsNothing() {
		t.Errorf("expected extraction to fail for non-int")
	}
	r.Register("Even", nil)
	r.RegisterInstance("Even", nil)
	if r.IsInstance(4, "Even") {
		t.Errorf("expected unregistered tag to fall back to type names")
	}
}

func TestAttribute(t *testing.T) {
	p := Point{X: 1, Y: 2, hidden: "h"}
	if x, ok := Attribute(p, "X"); !ok || x != 1 {
		t.Errorf("expected X = 1, is %v", x)
	}
	if _, ok := Attribute(&p, "hidden"); ok {
		t.Errorf("expected unexported field not to be an attribute")
	}
	m := map[string]any{"name": "Joe", "none": nil}
	if v, ok := Attribute(m, "none"); !ok || v != nil {
		t.Errorf("expected present nil attribute")
	}
	if _, ok := Attribute(m, "other"); ok {
		t.Errorf("expected missing attribute")
	}
	if _, ok := Attribute(nil, "X"); ok {
		t.Errorf("expected nil to have no attributes")
	}
	r := NewRecord("Point", "X", 1, "Y", 2)
	if y, ok := Attribute(r, "Y"); !ok || y != 2 {
		t.Errorf("expected record attribute Y = 2, is %v", y)
	}
	if r.String() == "" {
		t.Errorf("expected record to print")
	}
}
