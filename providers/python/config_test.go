package python

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	pygrammar "github.com/smacker/go-tree-sitter/python"
	"github.com/stretchr/testify/require"

	"github.com/termfx/semindex/internal/treeadapter"
)

func parse(t *testing.T, source string) *treeadapter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(pygrammar.GetLanguage())
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

func TestExtractNameClassDefinition(t *testing.T) {
	tree := parse(t, "class User:\n    pass\n")
	cls := findFirst(t, tree.Root(), "class_definition")
	require.Equal(t, "User", extractName(cls))
}

func TestIsExportedUnderscorePrefix(t *testing.T) {
	require.False(t, isExported(nil, "_private"))
	require.True(t, isExported(nil, "public"))
}

func TestValidateAssignmentRejectsAttribute(t *testing.T) {
	tree := parse(t, "self.x = 1\n")
	assign := findFirst(t, tree.Root(), "assignment")
	require.False(t, ValidateAssignment(assign))
}

func TestBespokeSuperInit(t *testing.T) {
	tree := parse(t, "class Dog(Animal):\n    def __init__(self, name, age):\n        super().__init__(name, age)\n")
	refs := bespokeConstructors(tree.Root(), "a.py")
	require.Len(t, refs, 1)
	require.True(t, refs[0].IsSuperCall)
	require.Equal(t, 2, refs[0].ArgumentsCount)
}

func TestBespokeClassmethodFactory(t *testing.T) {
	tree := parse(t, `User.from_dict({"name": "John"})` + "\n")
	refs := bespokeConstructors(tree.Root(), "a.py")
	require.Len(t, refs, 1)
	require.Equal(t, "User", refs[0].Name)
	require.True(t, refs[0].IsFactoryMethod)
}
