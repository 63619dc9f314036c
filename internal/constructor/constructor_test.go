package constructor

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	jsgrammar "github.com/smacker/go-tree-sitter/javascript"
	rustgrammar "github.com/smacker/go-tree-sitter/rust"
	"github.com/stretchr/testify/require"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
	_ "github.com/termfx/semindex/providers/javascript"
	_ "github.com/termfx/semindex/providers/rust"
)

func parseWith(t *testing.T, grammar *sitter.Language, source string) *treeadapter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	return treeadapter.NewTree(tree, source)
}

func TestDetectNewExpression(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseWith(t, jsgrammar.GetLanguage(), "const p = new Person('Alice');")
	refs := Detect(tree.Root(), "a.js", lang)
	require.Len(t, refs, 1)
	require.Equal(t, "Person", refs[0].ConstructorName)
	require.True(t, refs[0].IsNewExpression)
	require.Equal(t, "p", refs[0].AssignedTo)
}

func TestDetectFactoryPrefixBeatsGeneric(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseWith(t, jsgrammar.GetLanguage(), "const w = createWidget(1, 2);")
	refs := Detect(tree.Root(), "a.js", lang)
	require.Len(t, refs, 1)
	require.Equal(t, "createWidget", refs[0].ConstructorName)
	require.True(t, refs[0].IsFactoryMethod)
	require.Equal(t, 2, refs[0].ArgumentsCount)
}

func TestDetectRustSmartPointerAndTupleStruct(t *testing.T) {
	lang := langconfig.Get(core.LanguageRust)
	tree := parseWith(t, rustgrammar.GetLanguage(), "fn main() { let b = Box::new(5); let w = Wrapper(5); }")
	refs := Detect(tree.Root(), "a.rs", lang)
	require.Len(t, refs, 2)

	var names []bool
	for _, r := range refs {
		names = append(names, r.IsSmartPointer || r.IsTupleStruct)
	}
	require.ElementsMatch(t, []bool{true, true}, names)
}

// TestPassASpecialPatternAcceptsGenerically proves SpecialPatterns is read
// by the generic pass itself (spec §4.7 Pass A step 3), not only
// reimplemented ad hoc by a language's bespoke handler: with
// BespokeConstructors left nil, passA alone must still recognize and mark
// an Object.create(...)-shaped call.
func TestPassASpecialPatternAcceptsGenerically(t *testing.T) {
	tree := parseWith(t, jsgrammar.GetLanguage(), "const w = Object.create(Widget.prototype);")
	lang := &langconfig.Language{
		PotentialConstructorNodeTypes: []string{"call_expression"},
		NameExtractionFields:          map[string]string{"call_expression": "function"},
		IdentificationRules: langconfig.IdentificationRules{
			SpecialPatterns: []string{"Object.create"},
		},
		ArgumentsFieldName: "arguments",
	}
	refs := passA(tree.Root(), "a.js", lang)
	require.Len(t, refs, 1)
	require.Equal(t, "Object.create", refs[0].ConstructorName)
	require.True(t, refs[0].IsFactoryMethod)
}

func TestMergeBespokeWinsOnConflict(t *testing.T) {
	generic := []core.Reference{
		{Kind: core.RefConstructorCall, Name: "generic", Location: core.Location{StartLine: 1, StartCol: 1}},
	}
	bespoke := []core.Reference{
		{Kind: core.RefConstructorCall, Name: "bespoke", IsSmartPointer: true, Location: core.Location{StartLine: 1, StartCol: 1}},
	}
	merged := merge(generic, bespoke)
	require.Len(t, merged, 1)
	require.Equal(t, "bespoke", merged[0].Name)
	require.True(t, merged[0].IsSmartPointer)
}
