package compiler

import (
	"testing"

	"github.com/npillmayer/pmatch/pattern"
	"github.com/npillmayer/pmatch/unapply"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Circle struct {
	R int
}

type Square struct {
	Side int
}

func matches(t *testing.T, u *Unit, v any) bool {
	t.Helper()
	ok, _, err := u.Match(v, nil)
	require.NoError(t, err)
	return ok
}

func TestRegex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	c := New(WithRegexCacheSize(4))
	u := c.MustCompile("regex", &pattern.Regex{Expr: "a+b"}, nil)
	assert.True(t, matches(t, u, "aab"))
	assert.False(t, matches(t, u, "aabc"), "regex must match the whole string")
	assert.False(t, matches(t, u, "xab"))
	assert.False(t, matches(t, u, 42))
	//
	_, err := c.Compile("bad", &pattern.Regex{Expr: "(a"}, nil)
	var serr *SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestRegexUnbalanced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	// would escape the anchoring group if pasted into it unchecked
	_, err := New().Compile("unbalanced", &pattern.Regex{Expr: "a)|(?:b"}, nil)
	var serr *SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestRegexAlternation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	u := New().MustCompile("regex", &pattern.Regex{Expr: "ab|cd"}, nil)
	assert.True(t, matches(t, u, "cd"))
	assert.False(t, matches(t, u, "abcd"))
}

func TestRegexType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	c := New()
	for _, x := range []struct {
		typename string
		v        any
		want     bool
	}{
		{"int", "42", true},
		{"int", " -7 ", true},
		{"int", 42, true},
		{"int", "4.2", false},
		{"int", "09", true},
		{"int", "0089", true},
		{"int", "+12", true},
		{"int", "3.0", false},
		{"int", "0x10", false},
		{"int", "1_000", false},
		{"int", "-", false},
		{"int", "", false},
		{"int", nil, false},
		{"float", "4.2", true},
		{"float", "x", false},
		{"bool", "True", true},
		{"bool", "yes", false},
		{"bool", 1, true},
		{"alpha", "abc", true},
		{"alpha", "ab1", false},
		{"alpha", "", false},
		{"digit", "123", true},
		{"lower", "abc1", true},
		{"lower", "aBc", false},
		{"upper", "ABC", true},
		{"identifier", "_x1", true},
		{"identifier", "1x", false},
		{"title", "Hello World", true},
		{"title", "Hello world", false},
		{"space", " \t", true},
		{"digit", 123, false},
	} {
		u := c.MustCompile(x.typename, &pattern.RegexType{TypeName: x.typename}, nil)
		assert.Equal(t, x.want, matches(t, u, x.v), "type %s for %#v", x.typename, x.v)
	}
	_, err := c.Compile("bad", &pattern.RegexType{TypeName: "complex"}, nil)
	var serr *SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestAlternativesConstants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	u := New().MustCompile("alt", pattern.OneOf(pattern.Const(1), pattern.Const("a"), pattern.Const(2.5)), nil)
	assert.True(t, matches(t, u, 1.0))
	assert.True(t, matches(t, u, "a"))
	assert.True(t, matches(t, u, float32(2.5)))
	assert.False(t, matches(t, u, 2))
	assert.False(t, matches(t, u, []int{1}))
	assert.Empty(t, u.Procedures(), "constant sets need no procedure")
	//
	none := New().MustCompile("none", pattern.OneOf(), nil)
	assert.False(t, matches(t, none, 1))
}

func TestAlternativesTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	plain := New().MustCompile("shape", pattern.OneOf(pattern.Decons("Circle"), pattern.Decons("Square")), nil)
	assert.True(t, matches(t, plain, Circle{1}))
	assert.True(t, matches(t, plain, &Square{2}))
	assert.False(t, matches(t, plain, Point{1, 2}))
	//
	sized := New().MustCompile("sized", pattern.OneOf(
		pattern.Decons("Circle", pattern.Const(1)),
		pattern.Attrs("Square", pattern.Field{Name: "Side", Value: pattern.Const(2)}),
	), nil)
	assert.True(t, matches(t, sized, Circle{1}))
	assert.False(t, matches(t, sized, Circle{2}))
	assert.True(t, matches(t, sized, Square{2}))
	assert.False(t, matches(t, sized, Point{1, 2}))
}

func TestAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	p := pattern.Attrs("Point",
		pattern.Field{Name: "Y", Value: pattern.Bind("y", nil)},
		pattern.Field{Name: "X", Value: pattern.Const(0)},
	)
	u := New().MustCompile("attrs", p, nil)
	ok, captures, err := u.Match(Point{0, 5}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []any{5}, captures)
	assert.False(t, matches(t, u, Point{1, 5}))
	//
	r := unapply.NewRecord("Point", "X", 0, "Y", 9)
	ok, captures, _ = u.Match(r, nil)
	assert.True(t, ok)
	assert.Equal(t, []any{9}, captures)
	//
	missing := New().MustCompile("missing", pattern.Attrs("Point",
		pattern.Field{Name: "Z", Value: pattern.Any()}), nil)
	assert.False(t, matches(t, missing, Point{}))
}

func TestDict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	p := &pattern.Dict{Entries: []pattern.Entry{
		{Key: "name", Value: pattern.Bind("name", nil)},
		{Key: 1, Value: pattern.Const(nil)},
	}}
	u := New().MustCompile("dict", p, nil)
	ok, captures, err := u.Match(map[any]any{"name": "Joe", 1.0: nil, "x": 3}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []any{"Joe"}, captures)
	assert.False(t, matches(t, u, map[any]any{"name": "Joe"}), "absent key must not match")
	assert.False(t, matches(t, u, map[any]any{"name": "Joe", 1: 0}))
	assert.False(t, matches(t, u, []any{"name"}))
	//
	strs := New().MustCompile("strs", &pattern.Dict{Entries: []pattern.Entry{
		{Key: "a", Value: pattern.Const(1)},
	}}, nil)
	assert.True(t, matches(t, strs, map[string]int{"a": 1}))
	assert.False(t, matches(t, strs, map[int]int{1: 1}))
}

func TestCapturesReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	u := New().MustCompile("reset", pattern.Seq(pattern.Bind("x", nil), pattern.Const(1)), nil)
	c, err := u.New(nil, nil)
	require.NoError(t, err)
	ok, err := c.Test([]int{7, 1})
	require.NoError(t, err)
	require.True(t, ok)
	x, _ := c.Captures().Get("x")
	assert.Equal(t, 7, x)
	ok, _ = c.Test("no sequence")
	assert.False(t, ok)
	x, _ = c.Captures().Get("x")
	assert.Nil(t, x)
}

func TestCompilerReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.compiler")
	defer teardown()
	//
	c := New()
	u1 := c.MustCompile("one", pattern.Bind("x", nil), nil)
	u2 := c.MustCompile("two", pattern.Bind("x", nil), nil)
	assert.Equal(t, u1.Targets(), u2.Targets())
	assert.Panics(t, func() {
		c.MustCompile("three", pattern.Seq(pattern.Bind("x", nil), pattern.Bind("x", nil)), nil)
	})
}

func TestScalarKeys(t *testing.T) {
	for _, x := range []struct {
		a, b any
		want bool
	}{
		{1, int64(1), true},
		{uint8(3), 3.0, true},
		{1.5, float32(1.5), true},
		{"a", "a", true},
		{true, 1, false},
		{nil, nil, true},
		{nil, 0, false},
		{[]any{1, []int{2}}, []any{1.0, []any{2}}, true},
		{Point{1, 2}, Point{1, 2}, true},
		{Point{1, 2}, &Point{1, 2}, false},
	} {
		assert.Equal(t, x.want, valuesEqual(x.a, x.b), "%#v = %#v", x.a, x.b)
	}
}
