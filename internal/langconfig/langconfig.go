// Package langconfig holds the per-language configuration tables spec §4.2
// describes: node types that are definitions or constructor calls, which
// fields carry names, and the bespoke rules each language layers on top.
// Per spec §9 ("Language polymorphism"), a language is represented as a
// plain value — a struct of tables and function fields — never as an
// interface implemented by per-language types; adding a language means
// adding a new Language value, not a new type.
package langconfig

import (
	"regexp"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/treeadapter"
)

// IdentificationRules is §4.2's constructor-identification table for the
// generic pass's "potential constructor" check.
type IdentificationRules struct {
	RequiresNewKeyword    bool
	CapitalizationPattern *regexp.Regexp
	FactoryMethodNames    map[string]bool
	SpecialPatterns       []string
}

// DefinitionRule maps one definition kind to the node types that introduce
// it, for the definition extractor's table-driven dispatch (spec §4.5).
type DefinitionRule struct {
	Kind      core.DefinitionKind
	NodeTypes []string
}

// Language is the complete per-language configuration value (spec §4.2).
// Exactly one value exists per supported language, built once by the
// corresponding providers/<lang> package and registered at init time.
type Language struct {
	Name       core.Language
	Extensions []string
	Grammar    *sitter.Language

	// Constructor Detector inputs (spec §4.2, §4.7)
	ConstructorNodeTypes          []string
	PotentialConstructorNodeTypes []string
	NameExtractionFields          map[string]string // node type -> primary field
	IdentificationRules           IdentificationRules
	ArgumentsFieldName            string
	AssignmentPatterns            map[string]string // declaration node type -> LHS field
	SpecialNodeTypes              map[string]string

	// Definition Extractor inputs (spec §4.5)
	DefinitionRules []DefinitionRule
	// FunctionLikeNodeTypes / ClassLikeNodeTypes / BlockNodeTypes drive the
	// Scope Builder (spec §4.4).
	FunctionLikeNodeTypes []string
	ClassLikeNodeTypes    []string
	BlockNodeTypes        []string

	// ExtractName resolves a definition's display name from its node,
	// including the fallback chains the teacher's per-language configs use
	// (nested member expressions, assignment context for arrow functions,
	// etc). Returns "" when no name can be determined.
	ExtractName func(n *treeadapter.Node) string

	// IsExported reports whether name counts as exported/public per the
	// language's convention (a `pub` visibility modifier for Rust, an export
	// ancestor or a capitalized name for JavaScript/TypeScript, no leading
	// underscore for Python).
	IsExported func(n *treeadapter.Node, name string) bool

	// DocSummary extracts a one-line documentation summary for the
	// definition at n, looking at a preceding sibling comment if the
	// grammar doesn't attach doc comments as a field (SPEC_FULL §6).
	DocSummary func(n *treeadapter.Node) string

	// BespokeConstructors runs the language's pass-B handlers (spec §4.7).
	// It is called once with the root node, walks the tree itself, and
	// returns additional constructor references it detects, which are
	// merged with pass A by (line, column) with bespoke priority.
	BespokeConstructors func(n *treeadapter.Node, filePath string) []core.Reference

	// HigherOrderCallNames is the set of method names that mark their
	// function-literal argument as a callback (spec §4.6).
	HigherOrderCallNames map[string]bool

	// DefaultIgnorePatterns are glob patterns the ambient CLI skips by
	// default (test files, generated files) — a CLI convenience never
	// consulted by BuildIndex itself (SPEC_FULL §6).
	DefaultIgnorePatterns []string
}

var (
	mu        sync.RWMutex
	languages = map[core.Language]*Language{}
)

// Register adds lang to the process-wide registry. Panics on a nil value
// or a duplicate name, mirroring the teacher's internal/lang registry
// discipline — configuration is initialized once at process start and is
// read-only thereafter (spec §9 "Static configuration vs. runtime
// dispatch").
func Register(lang *Language) {
	if lang == nil {
		panic("langconfig: cannot register nil language")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := languages[lang.Name]; exists {
		panic("langconfig: duplicate registration for " + string(lang.Name))
	}
	languages[lang.Name] = lang
}

// Get returns the registered Language for name, or nil if unregistered.
func Get(name core.Language) *Language {
	mu.RLock()
	defer mu.RUnlock()
	return languages[name]
}

// Names returns every registered language name.
func Names() []core.Language {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]core.Language, 0, len(languages))
	for n := range languages {
		out = append(out, n)
	}
	return out
}

// ByExtension returns the Language whose Extensions contains ext (including
// the leading dot), or nil.
func ByExtension(ext string) *Language {
	mu.RLock()
	defer mu.RUnlock()
	for _, l := range languages {
		for _, e := range l.Extensions {
			if e == ext {
				return l
			}
		}
	}
	return nil
}
