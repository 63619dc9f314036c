package javascript

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	jsgrammar "github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"

	"github.com/termfx/semindex/internal/treeadapter"
)

func parse(t *testing.T, source string) *treeadapter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(jsgrammar.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	return treeadapter.NewTree(tree, source)
}

func findFirst(t *testing.T, root *treeadapter.Node, nodeType string) *treeadapter.Node {
	t.Helper()
	var found *treeadapter.Node
	root.Walk(func(n *treeadapter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == nodeType {
			found = n
		}
		return true
	})
	require.NotNil(t, found, "no %s node found", nodeType)
	return found
}

func TestExtractNameFunctionDeclaration(t *testing.T) {
	tree := parse(t, "function Greet() {}")
	fn := findFirst(t, tree.Root(), "function_declaration")
	require.Equal(t, "Greet", extractName(fn))
}

func TestExtractNameArrowAssignedToConst(t *testing.T) {
	tree := parse(t, "const handler = (req, res) => { res.send('ok'); };")
	arrow := findFirst(t, tree.Root(), "arrow_function")
	require.Equal(t, "handler", extractName(arrow))
}

func TestIsExportedByExportKeyword(t *testing.T) {
	tree := parse(t, "export function lowercase() {}")
	fn := findFirst(t, tree.Root(), "function_declaration")
	name := extractName(fn)
	require.True(t, isExported(fn, name))
}

func TestIsExportedByCapitalization(t *testing.T) {
	tree := parse(t, "function Uppercase() {}")
	fn := findFirst(t, tree.Root(), "function_declaration")
	require.True(t, isExported(fn, extractName(fn)))
}

func TestBespokeConstructorsFactoryPrefix(t *testing.T) {
	tree := parse(t, "const w = createWidget(1, 2);")
	refs := bespokeConstructors(tree.Root(), "a.js")
	require.Len(t, refs, 1)
	require.Equal(t, "createWidget", refs[0].Name)
	require.True(t, refs[0].IsFactoryMethod)
	require.Equal(t, 2, refs[0].ArgumentsCount)
}

func TestBespokeConstructorsObjectCreate(t *testing.T) {
	tree := parse(t, "const p = Object.create(Person.prototype);")
	refs := bespokeConstructors(tree.Root(), "a.js")
	require.Len(t, refs, 1)
	require.Equal(t, "Person", refs[0].Name)
	require.True(t, refs[0].IsFactoryMethod)
}
