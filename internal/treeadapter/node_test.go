package treeadapter

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"
)

func parseJS(t *testing.T, source string) *Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	return NewTree(tree, source)
}

func TestNodeWalkAndFields(t *testing.T) {
	tree := parseJS(t, "function foo(a, b) { return a + b; }")
	root := tree.Root()
	require.False(t, root.IsNil())
	require.Equal(t, "program", root.Type())

	var fn *Node
	root.Walk(func(n *Node) bool {
		if n.Type() == "function_declaration" {
			fn = n
		}
		return true
	})
	require.NotNil(t, fn)

	name := fn.ChildByField("name")
	require.NotNil(t, name)
	require.Equal(t, "foo", name.Text())

	body := fn.ChildByField("body")
	require.NotNil(t, body)
	require.Equal(t, "statement_block", body.Type())

	start := fn.StartPosition()
	require.Equal(t, 1, start.Line)
	require.Equal(t, 1, start.Column)
}

func TestLocationStartNotAfterEnd(t *testing.T) {
	tree := parseJS(t, "let x = 1;")
	root := tree.Root()
	loc := root.Location("a.js")
	require.LessOrEqual(t, loc.StartLine, loc.EndLine)
}

// TestDiagnosticsEmptyForWellFormedSource confirms the diagnostics
// collector a Tree shares with every descendant Node (see Location's
// inverted-range recovery) stays empty when nothing needed recovering —
// the common case.
func TestDiagnosticsEmptyForWellFormedSource(t *testing.T) {
	tree := parseJS(t, "function foo(a, b) { return a + b; }")
	root := tree.Root()
	root.Walk(func(n *Node) bool {
		n.Location("a.js")
		return true
	})
	require.Empty(t, tree.Diagnostics())
}
