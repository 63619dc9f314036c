package scope

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"

	jsgrammar "github.com/smacker/go-tree-sitter/javascript"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
	_ "github.com/termfx/semindex/providers/javascript"
)

func parseJS(t *testing.T, source string) *treeadapter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(jsgrammar.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	return treeadapter.NewTree(tree, source)
}

func TestBuildCreatesFunctionScope(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	require.NotNil(t, lang)

	tree := parseJS(t, "function foo(a) { return a; }")
	scopes := Build(tree.Root(), "a.js", lang)

	require.NotEmpty(t, scopes.RootID)
	var foundFunction bool
	for _, s := range scopes.Scopes {
		if s.Type == core.ScopeFunction {
			foundFunction = true
			require.Equal(t, "foo", s.Name)
		}
	}
	require.True(t, foundFunction)
}

func TestBodyBasedScopeExcludesClassName(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseJS(t, "class Foo { bar() {} }")
	scopes := Build(tree.Root(), "a.js", lang)

	var classScope core.Scope
	for _, s := range scopes.Scopes {
		if s.Type == core.ScopeClass {
			classScope = s
		}
	}
	require.NotEmpty(t, classScope.ID)
	// "class Foo " precedes "{" — the scope must start at or after the brace,
	// strictly after the name token "Foo".
	require.GreaterOrEqual(t, classScope.Location.StartCol, len("class Foo "))
}
