// Package core holds the pure data model shared by every stage of the
// indexer: positions, scopes, definitions, references and the final Index.
// Nothing in this package touches a concrete syntax tree; it only describes
// the shapes produced from one.
package core

// Language identifies one of the four grammars the indexer understands.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguagePython     Language = "python"
	LanguageRust       Language = "rust"
)

// Position is a 1-indexed line/column pair as reported at the output
// boundary. Internally components may carry 0-indexed tree-sitter points;
// conversion happens exactly once, in treeadapter.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is a source range. End is exclusive as produced by the tree and
// is adjusted by +1 column when treeadapter builds the Location (spec
// invariant 8) — callers of this package already receive the adjusted,
// 1-indexed form.
type Location struct {
	FilePath   string   `json:"file_path"`
	StartLine  int      `json:"start_line"`
	StartCol   int      `json:"start_column"`
	EndLine    int      `json:"end_line"`
	EndCol     int      `json:"end_column"`
	StartByte  uint32   `json:"-"`
	EndByte    uint32   `json:"-"`
}

// Contains reports whether other lies entirely within l, comparing only
// line/column — byte offsets are an internal optimization and never
// authoritative for containment.
func (l Location) Contains(other Location) bool {
	if l.FilePath != other.FilePath {
		return false
	}
	if before(other.StartLine, other.StartCol, l.StartLine, l.StartCol) {
		return false
	}
	if before(l.EndLine, l.EndCol, other.EndLine, other.EndCol) {
		return false
	}
	return true
}

func before(line1, col1, line2, col2 int) bool {
	if line1 != line2 {
		return line1 < line2
	}
	return col1 < col2
}

// ScopeType enumerates the lexical scope kinds the scope builder produces.
type ScopeType string

const (
	ScopeModule   ScopeType = "module"
	ScopeFunction ScopeType = "function"
	ScopeClass    ScopeType = "class"
	ScopeBlock    ScopeType = "block"
)

// Scope is one node of the scope tree. ParentID is empty only for the root
// module scope.
type Scope struct {
	ID       string    `json:"id"`
	Type     ScopeType `json:"type"`
	ParentID string    `json:"parent_id,omitempty"`
	Location Location  `json:"location"`
	Name     string    `json:"name,omitempty"`
}

// ScopeTree is the full set of scopes for one file, keyed by id, with a
// designated root. It is an arena: scopes reference each other only by
// string id, never by pointer, so the structure stays acyclic by
// construction (spec §9).
type ScopeTree struct {
	RootID string           `json:"root_id"`
	Scopes map[string]Scope `json:"scopes"`
}

// NewScopeTree returns an empty tree ready to receive a root scope.
func NewScopeTree() *ScopeTree {
	return &ScopeTree{Scopes: make(map[string]Scope)}
}

// Add inserts or replaces a scope. The first scope added with type
// ScopeModule becomes the root.
func (t *ScopeTree) Add(s Scope) {
	t.Scopes[s.ID] = s
	if s.Type == ScopeModule && t.RootID == "" {
		t.RootID = s.ID
	}
}

// Get returns the scope for id and whether it exists.
func (t *ScopeTree) Get(id string) (Scope, bool) {
	s, ok := t.Scopes[id]
	return s, ok
}

// Innermost returns the id of the narrowest scope containing pos, breaking
// ties on equal start position by range width (spec §4.4 tie-break). When a
// scope and its direct child cover the same range (a function body that is
// also a block), the outer one is returned.
func (t *ScopeTree) Innermost(pos Location) string {
	best := t.RootID
	bestScope, ok := t.Scopes[best]
	if !ok {
		return ""
	}
	for id, s := range t.Scopes {
		if !s.Location.Contains(pos) {
			continue
		}
		if !bestScope.Location.Contains(s.Location) && s.ID != bestScope.ID {
			// s is not nested inside the current best; only replace when
			// it is at least as narrow as best and actually contains pos.
		}
		if narrower(s.Location, bestScope.Location) ||
			(!narrower(bestScope.Location, s.Location) && bestScope.ParentID == s.ID) {
			best, bestScope = id, s
		}
	}
	return best
}

func narrower(a, b Location) bool {
	aLines := a.EndLine - a.StartLine
	bLines := b.EndLine - b.StartLine
	if aLines != bLines {
		return aLines < bLines
	}
	return (a.EndCol - a.StartCol) < (b.EndCol - b.StartCol)
}

// ParsedFile is the input to BuildIndex: an already-parsed file plus the
// metadata the spec requires (§6). Tree is an interface{} here to avoid
// core depending on smacker/go-tree-sitter directly; internal/index type
// asserts it to *sitter.Tree via treeadapter.
type ParsedFile struct {
	FilePath      string
	Language      Language
	SourceText    string
	LineCount     int
	LastLineEndCol int
	Tree          interface{}
}

// Diagnostic is a best-effort note about a recoverable condition hit while
// indexing (spec §7 items 2-3). It never prevents Index from being
// returned.
type Diagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Location *Location `json:"location,omitempty"`
}

// Parameter describes one function/method parameter.
type Parameter struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
	IsOptional   bool   `json:"is_optional"`
}

// AssignmentType captures the inferred or declared type of a variable's
// right-hand side.
type AssignmentType struct {
	TypeName  string `json:"type_name"`
	Certainty string `json:"certainty"` // declared | inferred
}

// FunctionCollection describes a literal collection of function references.
type FunctionCollection struct {
	CollectionType   string   `json:"collection_type"`
	StoredReferences []string `json:"stored_references"`
}

// CallbackContext marks an anonymous function passed to a higher-order call.
type CallbackContext struct {
	IsCallback      bool     `json:"is_callback"`
	ReceiverLocation *Location `json:"receiver_location,omitempty"`
}

// DefinitionKind enumerates every kind of name-introducing record.
type DefinitionKind string

const (
	KindFunction  DefinitionKind = "function"
	KindMethod    DefinitionKind = "method"
	KindClass     DefinitionKind = "class"
	KindStruct    DefinitionKind = "struct"
	KindEnum      DefinitionKind = "enum"
	KindInterface DefinitionKind = "interface"
	KindTrait     DefinitionKind = "trait"
	KindTypeAlias DefinitionKind = "type_alias"
	KindVariable  DefinitionKind = "variable"
	KindParameter DefinitionKind = "parameter"
	KindImport    DefinitionKind = "import"
)

// Visibility enumerates member access levels.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityNone      Visibility = "none"
)

// ImportKind enumerates how an imported symbol was bound.
type ImportKind string

const (
	ImportNamed       ImportKind = "named"
	ImportDefault     ImportKind = "default"
	ImportNamespace   ImportKind = "namespace"
	ImportSideEffect  ImportKind = "side_effect"
)

// EnumMemberShape describes the syntactic shape of one enum variant.
type EnumMemberShape string

const (
	EnumMemberUnit   EnumMemberShape = "unit"
	EnumMemberTuple  EnumMemberShape = "tuple"
	EnumMemberStruct EnumMemberShape = "struct"
)

// Member is one entry of Members on a class/struct/enum/trait definition —
// a method, property, or enum variant.
type Member struct {
	Name  string          `json:"name"`
	Kind  DefinitionKind  `json:"kind,omitempty"`
	Shape EnumMemberShape `json:"shape,omitempty"`
}

// Definition is something that introduces a name into a scope.
type Definition struct {
	Kind           DefinitionKind `json:"kind"`
	SymbolID       SymbolID       `json:"symbol_id"`
	Name           string         `json:"name"`
	Location       Location       `json:"location"`
	DefiningScopeID string        `json:"defining_scope_id"`

	// Function / Method
	Parameters      []Parameter          `json:"parameters,omitempty"`
	ReturnType      string               `json:"return_type,omitempty"`
	Generics        []string             `json:"generics,omitempty"`
	IsAsync         bool                 `json:"is_async,omitempty"`
	IsExported      bool                 `json:"is_exported,omitempty"`
	IsStatic        bool                 `json:"static,omitempty"`
	Decorators      []string             `json:"decorators,omitempty"`
	Visibility      Visibility           `json:"visibility,omitempty"`
	CallbackContext *CallbackContext     `json:"callback_context,omitempty"`
	FunctionCollection *FunctionCollection `json:"function_collection,omitempty"`
	DerivedFrom     string               `json:"derived_from,omitempty"`
	DocSummary      string               `json:"doc_summary,omitempty"`

	// Class / Struct / Enum / Interface / Trait
	Methods    []string `json:"methods,omitempty"`
	Properties []string `json:"properties,omitempty"`
	Members    []Member `json:"members,omitempty"`
	Extends    []string `json:"extends,omitempty"`
	Implements []string `json:"implements,omitempty"`

	// Type alias
	TypeExpression string `json:"type_expression,omitempty"`

	// Parameter
	DefaultValue string `json:"default_value,omitempty"`
	IsOptional   bool   `json:"is_optional,omitempty"`
	Type         string `json:"type,omitempty"`

	// Imported symbol
	OriginalName string     `json:"original_name,omitempty"`
	ImportPath   string     `json:"import_path,omitempty"`
	ImportKind   ImportKind `json:"import_kind,omitempty"`

	// Variable
	AssignmentType *AssignmentType `json:"assignment_type,omitempty"`

	// Rust-specific supplements (SPEC_FULL §6)
	IsPublic bool `json:"is_public,omitempty"`
}

// ReferenceKind enumerates every use-site kind.
type ReferenceKind string

const (
	RefFunctionCall   ReferenceKind = "function_call"
	RefMethodCall     ReferenceKind = "method_call"
	RefConstructorCall ReferenceKind = "constructor_call"
	RefTypeReference  ReferenceKind = "type_reference"
	RefAssignment     ReferenceKind = "assignment"
)

// TypeInfo is the payload of a type_reference.
type TypeInfo struct {
	TypeName  string   `json:"type_name"`
	Certainty string   `json:"certainty"` // declared | inferred
	Generics  []string `json:"generics,omitempty"`
}

// Reference is a use site emitted by the reference extractor or the
// constructor detector. Only the fields relevant to Kind are populated.
type Reference struct {
	Kind     ReferenceKind `json:"kind"`
	Name     string        `json:"name"`
	Location Location      `json:"location"`

	// function_call
	TargetSymbolID SymbolID `json:"target_symbol_id,omitempty"`

	// method_call
	ReceiverLocation *Location `json:"receiver_location,omitempty"`

	// constructor_call
	ConstructorName   string   `json:"constructor_name,omitempty"`
	ConstructTarget   SymbolID `json:"construct_target,omitempty"`
	ArgumentsCount    int      `json:"arguments_count,omitempty"`
	IsNewExpression   bool     `json:"is_new_expression,omitempty"`
	IsFactoryMethod   bool     `json:"is_factory_method,omitempty"`
	IsEnumVariant     bool     `json:"is_enum_variant,omitempty"`
	IsTupleStruct     bool     `json:"is_tuple_struct,omitempty"`
	IsMacroInvocation bool     `json:"is_macro_invocation,omitempty"`
	IsSmartPointer    bool     `json:"is_smart_pointer,omitempty"`
	IsDefaultConstruction bool `json:"is_default_construction,omitempty"`
	IsSuperCall       bool     `json:"is_super_call,omitempty"`
	AssignedTo        string   `json:"assigned_to,omitempty"`
	Generics          []string `json:"generics,omitempty"`

	// type_reference
	TypeInfo *TypeInfo `json:"type_info,omitempty"`

	// assignment
	AssignmentType *AssignmentType `json:"assignment_type,omitempty"`
}

// Index is the complete per-file semantic index: build_index's return
// value (spec §6).
type Index struct {
	FilePath    string      `json:"file_path"`
	Language    Language    `json:"language"`
	Scopes      *ScopeTree  `json:"scopes"`

	Functions       []Definition `json:"functions"`
	Classes         []Definition `json:"classes"`
	Interfaces      []Definition `json:"interfaces"`
	Enums           []Definition `json:"enums"`
	Types           []Definition `json:"types"`
	Namespaces      []Definition `json:"namespaces"`
	Variables       []Definition `json:"variables"`
	ImportedSymbols []Definition `json:"imported_symbols"`

	References  []Reference  `json:"references"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// AllDefinitions returns every definition in the index, in the grouped
// order above — not pre-order. Callers that need pre-order traversal order
// (spec §5 ordering guarantee) should use internal/index's unexported
// accumulation order instead; this helper is a convenience for fixtures.
func (ix *Index) AllDefinitions() []Definition {
	var out []Definition
	out = append(out, ix.Functions...)
	out = append(out, ix.Classes...)
	out = append(out, ix.Interfaces...)
	out = append(out, ix.Enums...)
	out = append(out, ix.Types...)
	out = append(out, ix.Namespaces...)
	out = append(out, ix.Variables...)
	out = append(out, ix.ImportedSymbols...)
	return out
}
