package guard

import (
	"sort"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	sources, captures map[string]any
}

func (e env) Source(name string) (any, bool) {
	v, ok := e.sources[name]
	return v, ok
}

func (e env) Capture(name string) (any, bool) {
	v, ok := e.captures[name]
	return v, ok
}

func (e env) SourceNames() []string  { return keys(e.sources) }
func (e env) CaptureNames() []string { return keys(e.captures) }

func keys(m map[string]any) []string {
	k := make([]string, 0, len(m))
	for name := range m {
		k = append(k, name)
	}
	sort.Strings(k)
	return k
}

func TestFunc(t *testing.T) {
	g := Requiring(Func(func(e Env) bool {
		x, _ := e.Capture("x")
		return x == 1
	}), "b", "a", "b")
	assert.Equal(t, []string{"a", "b"}, SourcesOf(g))
	ok, err := g.Test(env{captures: map[string]any{"x": 1}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, SourcesOf(Func(nil)))
}

func TestScript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.guard")
	defer teardown()
	//
	g, err := Script("x == y && x < limit", "limit")
	require.NoError(t, err)
	assert.Equal(t, []string{"limit"}, SourcesOf(g))
	e := env{
		sources:  map[string]any{"limit": 10},
		captures: map[string]any{"x": 3, "y": 3},
	}
	ok, err := g.Test(e)
	require.NoError(t, err)
	assert.True(t, ok)
	e.captures["y"] = 4
	ok, err = g.Test(e)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScriptCapturesHideSources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.guard")
	defer teardown()
	//
	g, err := Script("x == 1 && self.source.x == 2")
	require.NoError(t, err)
	ok, err := g.Test(env{
		sources:  map[string]any{"x": 2},
		captures: map[string]any{"x": 1},
	})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScriptReceiver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.guard")
	defer teardown()
	//
	assert.Equal(t, "self", ReceiverName(nil))
	assert.Equal(t, "__self", ReceiverName([]string{"self", "_self"}))
	g, err := Script("self == 5 && _self.targets.self == 5")
	require.NoError(t, err)
	ok, err := g.Test(env{captures: map[string]any{"self": 5}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScriptErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pmatch.guard")
	defer teardown()
	//
	_, err := Script("x ==")
	assert.Error(t, err)
	g, err := Script("undefinedName > 1")
	require.NoError(t, err)
	_, err = g.Test(env{})
	assert.Error(t, err, "reference errors must surface")
}
