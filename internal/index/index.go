// Package index assembles one file's semantic index (spec §4.8) by running
// the scope builder, definition extractor, reference extractor and
// constructor detector over the same parsed tree, then merging and grouping
// their output into the shape spec §6 describes.
package index

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/constructor"
	"github.com/termfx/semindex/internal/definition"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/reference"
	"github.com/termfx/semindex/internal/scope"
	"github.com/termfx/semindex/internal/treeadapter"
)

// BuildIndex runs the full pipeline over file and returns the assembled
// index. The only error that crosses this boundary is
// core.UnsupportedLanguageError (spec §4.8, §7 item 1); anything else
// recoverable is recorded as a Diagnostic instead.
func BuildIndex(file core.ParsedFile) (*core.Index, error) {
	lang := langconfig.Get(file.Language)
	if lang == nil {
		return nil, &core.UnsupportedLanguageError{Language: file.Language}
	}

	tree, ok := file.Tree.(*sitter.Tree)
	if !ok || tree == nil {
		return nil, &core.UnsupportedLanguageError{Language: file.Language}
	}
	adapted := treeadapter.NewTree(tree, file.SourceText)
	root := adapted.Root()

	scopes := scope.Build(root, file.FilePath, lang)
	defs := definition.Extract(root, file.FilePath, lang, scopes)

	// Constructor detection runs before reference extraction so that every
	// call site it claims is excluded from function_call/method_call
	// emission — a call site is either a constructor_call or a
	// function_call/method_call, never both (spec invariant 7).
	ctorRefs := constructor.Detect(root, file.FilePath, lang)
	skip := make(map[core.Location]bool, len(ctorRefs))
	for _, r := range ctorRefs {
		skip[r.Location] = true
	}
	refs := reference.Extract(root, file.FilePath, lang, skip)
	refs = append(refs, ctorRefs...)
	attachCallbackContexts(defs, refs, lang)
	resolveTargets(defs, refs)

	ix := &core.Index{
		FilePath:    file.FilePath,
		Language:    file.Language,
		Scopes:      scopes,
		References:  refs,
		Diagnostics: adapted.Diagnostics(),
	}
	groupDefinitions(ix, defs)
	return ix, nil
}

// resolveTargets implements the optional same-file symbol resolution spec
// §4.6 calls for: a function_call's target_symbol_id when its callee name
// matches a definition in this file, and a constructor_call's
// construct_target when its constructor type name does. Both are
// best-effort, by-name lookups — the first definition with a matching name
// wins on collision.
func resolveTargets(defs []core.Definition, refs []core.Reference) {
	byName := make(map[string]core.SymbolID, len(defs))
	for _, d := range defs {
		if _, exists := byName[d.Name]; !exists {
			byName[d.Name] = d.SymbolID
		}
	}
	for i := range refs {
		r := &refs[i]
		switch r.Kind {
		case core.RefFunctionCall:
			if id, ok := byName[r.Name]; ok {
				r.TargetSymbolID = id
			}
		case core.RefConstructorCall:
			if id, ok := byName[r.ConstructorName]; ok {
				r.ConstructTarget = id
			}
		}
	}
}

// groupDefinitions files each definition into the Index field matching its
// kind (spec §6).
func groupDefinitions(ix *core.Index, defs []core.Definition) {
	for _, d := range defs {
		switch d.Kind {
		case core.KindFunction, core.KindMethod:
			ix.Functions = append(ix.Functions, d)
		case core.KindClass, core.KindStruct, core.KindTrait:
			ix.Classes = append(ix.Classes, d)
		case core.KindInterface:
			ix.Interfaces = append(ix.Interfaces, d)
		case core.KindEnum:
			ix.Enums = append(ix.Enums, d)
		case core.KindTypeAlias:
			ix.Types = append(ix.Types, d)
		case core.KindVariable:
			ix.Variables = append(ix.Variables, d)
		case core.KindImport:
			ix.ImportedSymbols = append(ix.ImportedSymbols, d)
		}
	}
}

// attachCallbackContexts implements the post-processing step of spec §4.6/
// §4.8: an anonymous function definition passed as an argument to a
// higher-order method call (HigherOrderCallNames) is marked as a callback
// with the receiver's location, correlated purely by containment — the
// function definition's location must fall inside the method call's range.
func attachCallbackContexts(defs []core.Definition, refs []core.Reference, lang *langconfig.Language) {
	for i := range defs {
		d := &defs[i]
		if d.Kind != core.KindFunction && d.Kind != core.KindMethod {
			continue
		}
		for _, r := range refs {
			if r.Kind != core.RefMethodCall || r.ReceiverLocation == nil {
				continue
			}
			if !lang.HigherOrderCallNames[r.Name] {
				continue
			}
			if !r.Location.Contains(d.Location) {
				continue
			}
			d.CallbackContext = &core.CallbackContext{
				IsCallback:       true,
				ReceiverLocation: r.ReceiverLocation,
			}
			break
		}
	}
}
