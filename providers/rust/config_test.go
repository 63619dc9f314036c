package rust

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	rustgrammar "github.com/smacker/go-tree-sitter/rust"
	"github.com/stretchr/testify/require"

	"github.com/termfx/semindex/internal/treeadapter"
)

func parse(t *testing.T, source string) *treeadapter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(rustgrammar.GetLanguage())
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

func TestExtractNameStructItem(t *testing.T) {
	tree := parse(t, "pub struct Point { x: i32, y: i32 }")
	st := findFirst(t, tree.Root(), "struct_item")
	require.Equal(t, "Point", extractName(st))
	require.True(t, isExported(st, "Point"))
}

func TestBespokeStructLiteral(t *testing.T) {
	tree := parse(t, "let p = Point { x: 1, y: 2 };")
	refs := bespokeConstructors(tree.Root(), "a.rs")
	// plain struct literal (Point { .. }), not scoped, falls through the
	// enum-variant handler which requires a scoped_type_identifier name.
	require.Len(t, refs, 0)
}

func TestBespokeSmartPointer(t *testing.T) {
	tree := parse(t, "let b = Box::new(5);")
	refs := bespokeConstructors(tree.Root(), "a.rs")
	require.Len(t, refs, 1)
	require.True(t, refs[0].IsSmartPointer)
	require.Equal(t, "Box", refs[0].Name)
}

func TestBespokeMacro(t *testing.T) {
	tree := parse(t, "let v = vec![1, 2, 3];")
	refs := bespokeConstructors(tree.Root(), "a.rs")
	require.Len(t, refs, 1)
	require.True(t, refs[0].IsMacroInvocation)
	require.Equal(t, 3, refs[0].ArgumentsCount)
}

func TestBespokeTupleStruct(t *testing.T) {
	tree := parse(t, "let w = Wrapper(5);")
	refs := bespokeConstructors(tree.Root(), "a.rs")
	require.Len(t, refs, 1)
	require.True(t, refs[0].IsTupleStruct)
}
