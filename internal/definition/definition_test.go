package definition

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	jsgrammar "github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/scope"
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

func TestExtractFunctionDefinition(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseJS(t, "function add(a, b) { return a + b; }")
	scopes := scope.Build(tree.Root(), "a.js", lang)
	defs := Extract(tree.Root(), "a.js", lang, scopes)

	var fn *core.Definition
	for i := range defs {
		if defs[i].Kind == core.KindFunction {
			fn = &defs[i]
		}
	}
	require.NotNil(t, fn)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Parameters, 2)
	require.Equal(t, "a", fn.Parameters[0].Name)
}

func TestVariableConstructorAssignmentType(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseJS(t, "const p = new Person('Alice');")
	scopes := scope.Build(tree.Root(), "a.js", lang)
	defs := Extract(tree.Root(), "a.js", lang, scopes)

	var v *core.Definition
	for i := range defs {
		if defs[i].Kind == core.KindVariable {
			v = &defs[i]
		}
	}
	require.NotNil(t, v)
	require.Equal(t, "p", v.Name)
	require.NotNil(t, v.AssignmentType)
	require.Equal(t, "Person", v.AssignmentType.TypeName)
}

func TestClassNameOutsideOwnScope(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseJS(t, "class Foo { bar() {} }")
	scopes := scope.Build(tree.Root(), "a.js", lang)
	defs := Extract(tree.Root(), "a.js", lang, scopes)

	var cls *core.Definition
	for i := range defs {
		if defs[i].Kind == core.KindClass {
			cls = &defs[i]
		}
	}
	require.NotNil(t, cls)
	definingScope, ok := scopes.Get(cls.DefiningScopeID)
	require.True(t, ok)
	require.Equal(t, core.ScopeModule, definingScope.Type)
}
