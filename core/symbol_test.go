package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructSymbol(t *testing.T) {
	cases := []struct {
		name string
		in   SymbolComponents
		want SymbolID
	}{
		{
			name: "no scope",
			in:   SymbolComponents{FilePath: "a.js", Name: "foo"},
			want: "a.js#foo",
		},
		{
			name: "nested scope",
			in:   SymbolComponents{FilePath: "a.js", ScopePath: []string{"Foo", "bar"}, Name: "baz"},
			want: "a.js#Foo:bar:baz",
		},
		{
			name: "windows path normalized",
			in:   SymbolComponents{FilePath: `src\a.js`, Name: "foo"},
			want: "src/a.js#foo",
		},
		{
			name: "anonymous",
			in:   SymbolComponents{FilePath: "a.js", ScopePath: []string{"Foo"}, Anonymous: true, Line: 3, Col: 7},
			want: "a.js#Foo:<anonymous>:3:7",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ConstructSymbol(tc.in))
		})
	}
}

func TestParseSymbolRoundTrip(t *testing.T) {
	ids := []SymbolID{
		"a.js#foo",
		"a.js#Foo:bar:baz",
		"a.js#Foo:<anonymous>:3:7",
		"pkg/mod.py#Outer:Inner:method",
	}
	for _, id := range ids {
		c, err := ParseSymbol(id)
		require.NoError(t, err)
		got := ConstructSymbol(c)
		assert.Equal(t, id, got, "round-trip mismatch for %q", id)
	}
}

func TestParseSymbolMissingSeparator(t *testing.T) {
	_, err := ParseSymbol("no-hash-here")
	assert.Error(t, err)
}

func TestCompareSymbols(t *testing.T) {
	a := ConstructSymbol(SymbolComponents{FilePath: "a.js", Name: "foo"})
	b := ConstructSymbol(SymbolComponents{FilePath: "b.js", Name: "foo"})
	assert.Negative(t, CompareSymbols(a, b))

	shallow := ConstructSymbol(SymbolComponents{FilePath: "a.js", Name: "foo"})
	deep := ConstructSymbol(SymbolComponents{FilePath: "a.js", ScopePath: []string{"Foo"}, Name: "foo"})
	assert.Negative(t, CompareSymbols(shallow, deep))

	same := ConstructSymbol(SymbolComponents{FilePath: "a.js", Name: "foo"})
	assert.Zero(t, CompareSymbols(a, same))
}
