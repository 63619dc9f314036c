package typescript

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	tsgrammar "github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/stretchr/testify/require"

	"github.com/termfx/semindex/internal/treeadapter"
)

func parse(t *testing.T, source string) *treeadapter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(tsgrammar.GetLanguage())
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

func TestExtractNameInterface(t *testing.T) {
	tree := parse(t, "interface Shape { area(): number; }")
	iface := findFirst(t, tree.Root(), "interface_declaration")
	require.Equal(t, "Shape", extractName(iface))
}

func TestExtractNameEnumMember(t *testing.T) {
	tree := parse(t, "enum Color { Red, Green }")
	member := findFirst(t, tree.Root(), "enum_member")
	require.Equal(t, "Red", extractName(member))
}

func TestBespokeConstructorGeneric(t *testing.T) {
	tree := parse(t, "const list = new Array<string>();")
	refs := bespokeConstructors(tree.Root(), "a.ts")
	require.Len(t, refs, 1)
	require.Equal(t, "Array", refs[0].Name)
	require.True(t, refs[0].IsNewExpression)
	require.Equal(t, []string{"string"}, refs[0].Generics)
}
