package reference

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	jsgrammar "github.com/smacker/go-tree-sitter/javascript"
	"github.com/stretchr/testify/require"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/constructor"
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

func TestFunctionCallReference(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseJS(t, "doWork();")
	refs := Extract(tree.Root(), "a.js", lang, nil)
	require.Len(t, refs, 1)
	require.Equal(t, core.RefFunctionCall, refs[0].Kind)
	require.Equal(t, "doWork", refs[0].Name)
}

func TestMethodCallHasReceiverLocation(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseJS(t, "items.forEach(fn);")
	refs := Extract(tree.Root(), "a.js", lang, nil)
	require.Len(t, refs, 1)
	require.Equal(t, core.RefMethodCall, refs[0].Kind)
	require.Equal(t, "forEach", refs[0].Name)
	require.NotNil(t, refs[0].ReceiverLocation)
}

// TestConstructorLikeCallSkipped mirrors how internal/index wires the two
// extractors together: constructor detection runs first, and its matched
// call sites are excluded from reference extraction so a capitalized call
// like Person() is never double-classified as both a constructor_call and
// a function_call (spec invariant 7).
func TestConstructorLikeCallSkipped(t *testing.T) {
	lang := langconfig.Get(core.LanguageJavaScript)
	tree := parseJS(t, "Person();")
	ctorRefs := constructor.Detect(tree.Root(), "a.js", lang)
	require.NotEmpty(t, ctorRefs)

	skip := make(map[core.Location]bool, len(ctorRefs))
	for _, r := range ctorRefs {
		skip[r.Location] = true
	}
	refs := Extract(tree.Root(), "a.js", lang, skip)
	require.Len(t, refs, 0)
}
