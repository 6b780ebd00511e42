package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchtext/tmplresolver/context"
	"github.com/branchtext/tmplresolver/tmplerr"
)

func pairs(kv ...string) context.Context {
	if len(kv)%2 != 0 {
		panic("pairs: odd number of arguments")
	}
	out := make([]context.KV, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		out = append(out, context.KV{Key: kv[i], Value: kv[i+1]})
	}
	return context.NewSortedSlice(out)
}

func TestBasicInterpolation(t *testing.T) {
	r, err := FromPairs([]Pair{
		{Key: "h", Source: "Hello"},
		{Key: "g", Source: "{h} { $name }! Today is {$day}"},
	})
	require.NoError(t, err)

	got, err := r.Get("g", pairs("name", "Alice", "day", "Monday"))
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice! Today is Monday", got)
}

func TestSelectorWithDefault(t *testing.T) {
	r, err := FromPairs([]Pair{
		{Key: "m", Source: "$status ->\n  [success] Operation succeeded!\n  [error] Error occurred!\n  *[default] Unknown status: {$status}\n"},
	})
	require.NoError(t, err)

	got, err := r.Get("m", pairs("status", "success"))
	require.NoError(t, err)
	assert.Equal(t, "Operation succeeded!", got)

	got, err = r.Get("m", pairs("status", "weird"))
	require.NoError(t, err)
	assert.Equal(t, "Unknown status: weird", got)
}

func TestNestedVariableAndSelector(t *testing.T) {
	r, err := FromPairs([]Pair{
		{Key: "g", Source: "Good"},
		{Key: "tp", Source: "$period ->\n  [morning] {g} Morning\n  [evening] {g} evening\n  *[other] {g} {$period}"},
		{Key: "sal", Source: "$gender ->\n  [male] Mr.\n  *[female] Ms."},
		{Key: "greet", Source: "{tp}! { sal }{ $name }"},
	})
	require.NoError(t, err)

	got, err := r.Get("greet", pairs("period", "evening", "name", "Alice", "gender", "unknown"))
	require.NoError(t, err)
	assert.Equal(t, "Good evening! Ms.Alice", got)

	got, err = r.Get("greet", pairs("period", "night", "name", "Tom", "gender", "male"))
	require.NoError(t, err)
	assert.Equal(t, "Good night! Mr.Tom", got)
}

func TestBraceEscapes(t *testing.T) {
	r, err := FromPairs([]Pair{
		{Key: "h", Source: "Hello { $name }"},
		{Key: "greet", Source: "{h}!{{ how_are_you }}? {{    {$name} }}"},
	})
	require.NoError(t, err)

	got, err := r.Get("greet", pairs("name", "Alice"))
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice!how_are_you? {$name}", got)
}

func TestUnicodeIdentifiers(t *testing.T) {
	r, err := FromPairs([]Pair{
		{Key: "🐱", Source: "喵 ฅ(°ω°ฅ)"},
		{Key: "hello", Source: "Hello {🐱}"},
	})
	require.NoError(t, err)

	got, err := r.GetNoContext("hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello 喵 ฅ(°ω°ฅ)", got)
}

func TestMissingVariableAndParameterErrors(t *testing.T) {
	r, err := FromPairs([]Pair{{Key: "g", Source: "{h} {$x}"}})
	require.NoError(t, err)
	_, err = r.GetNoContext("g")
	var undef *tmplerr.UndefinedVariable
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "h", undef.Name)

	r, err = FromPairs([]Pair{{Key: "g", Source: "Hi {$x}"}})
	require.NoError(t, err)
	_, err = r.GetNoContext("g")
	var missing *tmplerr.MissingParameter
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "x", missing.Name)
}

func TestEmptyTemplateYieldsEmptyString(t *testing.T) {
	r, err := FromPairs([]Pair{{Key: "e", Source: ""}})
	require.NoError(t, err)
	got, err := r.GetNoContext("e")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSelectorMissingParameterBeforeCases(t *testing.T) {
	r, err := FromPairs([]Pair{{Key: "s", Source: "$x ->\n  [a] A\n"}})
	require.NoError(t, err)
	_, err = r.GetNoContext("s")
	var missing *tmplerr.MissingParameter
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "x", missing.Name)
}

func TestSelectorNoMatchNoDefault(t *testing.T) {
	r, err := FromPairs([]Pair{{Key: "s", Source: "$x ->\n  [a] A\n"}})
	require.NoError(t, err)
	_, err = r.Get("s", pairs("x", "b"))
	var noDefault *tmplerr.NoDefaultBranch
	require.ErrorAs(t, err, &noDefault)
	assert.Equal(t, "x", noDefault.Param)
}

func TestEmptyContextEquivalentToGetNoContext(t *testing.T) {
	r, err := FromPairs([]Pair{{Key: "g", Source: "hello"}})
	require.NoError(t, err)

	a, err := r.Get("g", context.Empty())
	require.NoError(t, err)
	b, err := r.GetNoContext("g")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestContextOrderIrrelevance(t *testing.T) {
	r, err := FromPairs([]Pair{{Key: "g", Source: "{$a}{$b}{$c}"}})
	require.NoError(t, err)

	a, err := r.Get("g", pairs("a", "1", "b", "2", "c", "3"))
	require.NoError(t, err)
	b, err := r.Get("g", pairs("c", "3", "a", "1", "b", "2"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelectorPreferenceOverDefault(t *testing.T) {
	r, err := FromPairs([]Pair{{Key: "s", Source: "$x ->\n  [a] matched\n  *[d] default\n"}})
	require.NoError(t, err)
	got, err := r.Get("s", pairs("x", "a"))
	require.NoError(t, err)
	assert.Equal(t, "matched", got)
}

func TestCycleDetected(t *testing.T) {
	r, err := FromPairs([]Pair{
		{Key: "a", Source: "{b}"},
		{Key: "b", Source: "{a}"},
	})
	require.NoError(t, err)

	_, err = r.GetNoContext("a")
	var cycle *tmplerr.CycleDetected
	require.ErrorAs(t, err, &cycle)
}

func TestMaxDepthOption(t *testing.T) {
	r, err := FromPairs([]Pair{
		{Key: "a", Source: "{b}"},
		{Key: "b", Source: "{c}"},
		{Key: "c", Source: "leaf"},
	}, WithMaxDepth(2))
	require.NoError(t, err)

	_, err = r.GetNoContext("a")
	var cycle *tmplerr.CycleDetected
	require.ErrorAs(t, err, &cycle)
}

func TestFromMap(t *testing.T) {
	r, err := FromMap(map[string]string{"k": "v"})
	require.NoError(t, err)
	got, err := r.GetNoContext("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestIntoSortedMapIsKeySorted(t *testing.T) {
	r, err := FromPairs([]Pair{
		{Key: "z", Source: "z"},
		{Key: "a", Source: "a"},
		{Key: "m", Source: "m"},
	})
	require.NoError(t, err)

	om := r.IntoSortedMap()
	var keys []string
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"a", "m", "z"}, keys)
}
