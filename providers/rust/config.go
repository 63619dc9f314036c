// Package rust provides the Rust langconfig.Language value. The teacher has
// no Rust provider; this is grounded on the tree-sitter-rust node types and
// extraction logic of an importer in the retrieval pack (node types
// function_item, struct_item, enum_item, trait_item, type_item,
// visibility_modifier, enum_variant, use_declaration) combined with the
// teacher's golang provider shape for struct-like handling.
package rust

import (
	"strings"

	"github.com/smacker/go-tree-sitter/rust"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
)

var smartPointers = map[string]bool{
	"Box": true, "Rc": true, "Arc": true, "RefCell": true, "Mutex": true, "RwLock": true,
}

var closedSetMacros = map[string]bool{
	"vec": true, "hashmap": true, "btreemap": true, "hashset": true, "btreeset": true, "format": true,
}

// Language builds the Rust configuration value.
func Language() *langconfig.Language {
	return &langconfig.Language{
		Name:       core.LanguageRust,
		Extensions: []string{".rs"},
		Grammar:    rust.GetLanguage(),

		ConstructorNodeTypes:          []string{"struct_expression"},
		PotentialConstructorNodeTypes: []string{"call_expression"},
		NameExtractionFields: map[string]string{
			"struct_expression": "name",
			"call_expression":   "function",
		},
		IdentificationRules: langconfig.IdentificationRules{
			RequiresNewKeyword: false,
			FactoryMethodNames: map[string]bool{"new": true, "default": true},
		},
		ArgumentsFieldName: "arguments",
		AssignmentPatterns: map[string]string{
			"let_declaration": "pattern",
		},
		SpecialNodeTypes: map[string]string{
			"enum_variant": "enum_variant",
			"macro_invocation": "macro_invocation",
		},

		FunctionLikeNodeTypes: []string{"function_item", "closure_expression"},
		ClassLikeNodeTypes:    []string{"struct_item", "enum_item", "trait_item"},
		BlockNodeTypes:        []string{"block"},

		DefinitionRules: []langconfig.DefinitionRule{
			{Kind: core.KindFunction, NodeTypes: []string{"function_item"}},
			{Kind: core.KindStruct, NodeTypes: []string{"struct_item"}},
			{Kind: core.KindEnum, NodeTypes: []string{"enum_item"}},
			{Kind: core.KindTrait, NodeTypes: []string{"trait_item"}},
			{Kind: core.KindTypeAlias, NodeTypes: []string{"type_item"}},
			{Kind: core.KindVariable, NodeTypes: []string{"let_declaration"}},
			{Kind: core.KindImport, NodeTypes: []string{"use_declaration"}},
		},

		ExtractName:         extractName,
		IsExported:          isExported,
		DocSummary:          docSummary,
		BespokeConstructors: bespokeConstructors,
		HigherOrderCallNames: map[string]bool{
			"map": true, "filter": true, "for_each": true, "fold": true,
		},
		DefaultIgnorePatterns: []string{"**/tests/**", "**/target/**"},
	}
}

func init() {
	langconfig.Register(Language())
}

func extractName(n *treeadapter.Node) string {
	switch n.Type() {
	case "function_item", "struct_item", "enum_item", "trait_item", "type_item", "enum_variant":
		if name := n.ChildByField("name"); name != nil {
			return name.Text()
		}
	case "let_declaration":
		if pattern := n.ChildByField("pattern"); pattern != nil {
			return pattern.Text()
		}
	case "use_declaration":
		return usePathName(n)
	}
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.ChildAt(i); c.Type() == "identifier" {
			return c.Text()
		}
	}
	return ""
}

func usePathName(n *treeadapter.Node) string {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.ChildAt(i)
		switch c.Type() {
		case "scoped_identifier", "identifier":
			return c.Text()
		case "use_as_clause":
			if alias := c.ChildByField("alias"); alias != nil {
				return alias.Text()
			}
		}
	}
	return ""
}

func docSummary(n *treeadapter.Node) string {
	prev := n.PrevSibling()
	if prev == nil || prev.Type() != "line_comment" {
		return ""
	}
	text := strings.TrimSpace(prev.Text())
	for _, p := range []string{"///", "//!", "//"} {
		text = strings.TrimPrefix(text, p)
	}
	return strings.TrimSpace(text)
}

// hasVisibilityModifier reports whether n (a declaration node) is marked
// `pub`.
func hasVisibilityModifier(n *treeadapter.Node) bool {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.ChildAt(i)
		if c.Type() == "visibility_modifier" {
			return true
		}
		if c.Type() != "line_comment" && c.Type() != "attribute_item" {
			break
		}
	}
	return false
}

func isExported(n *treeadapter.Node, name string) bool {
	return hasVisibilityModifier(n)
}

// bespokeConstructors implements Rust's pass-B handlers (spec §4.7): enum
// variant construction (tuple and struct-like), tuple struct construction,
// smart-pointer construction, closed-set macro construction, and
// Default::default()/Type::default().
func bespokeConstructors(n *treeadapter.Node, filePath string) []core.Reference {
	var out []core.Reference
	n.Walk(func(node *treeadapter.Node) bool {
		switch node.Type() {
		case "call_expression":
			if ref, ok := callConstructor(node, filePath); ok {
				out = append(out, ref)
			}
		case "struct_expression":
			if ref, ok := enumVariantStructLiteral(node, filePath); ok {
				out = append(out, ref)
			}
		case "macro_invocation":
			if ref, ok := macroConstructor(node, filePath); ok {
				out = append(out, ref)
			}
		}
		return true
	})
	return out
}

func callConstructor(node *treeadapter.Node, filePath string) (core.Reference, bool) {
	fn := node.ChildByField("function")
	if fn == nil {
		return core.Reference{}, false
	}
	switch fn.Type() {
	case "scoped_identifier":
		path := fn.ChildByField("path")
		name := fn.ChildByField("name")
		if path == nil || name == nil {
			return core.Reference{}, false
		}
		base := path.Text()
		method := name.Text()
		if smartPointers[base] && method == "new" {
			return core.Reference{
				Kind: core.RefConstructorCall, Name: base, Location: node.Location(filePath),
				ConstructorName: base, ArgumentsCount: countArguments(node.ChildByField("arguments")),
				IsSmartPointer: true,
			}, true
		}
		if base == "Default" && method == "default" {
			return core.Reference{
				Kind: core.RefConstructorCall, Name: "Default", Location: node.Location(filePath),
				ConstructorName: "Default", IsDefaultConstruction: true,
			}, true
		}
		if method == "default" && len(base) > 0 && base[0] >= 'A' && base[0] <= 'Z' {
			return core.Reference{
				Kind: core.RefConstructorCall, Name: base, Location: node.Location(filePath),
				ConstructorName: base, IsDefaultConstruction: true,
			}, true
		}
		// Enum::Variant(...) tuple variant construction.
		if len(base) > 0 && base[0] >= 'A' && base[0] <= 'Z' && len(method) > 0 && method[0] >= 'A' && method[0] <= 'Z' {
			return core.Reference{
				Kind: core.RefConstructorCall, Name: base + "::" + method, Location: node.Location(filePath),
				ConstructorName: method, ArgumentsCount: countArguments(node.ChildByField("arguments")),
				IsEnumVariant: true,
			}, true
		}
	case "identifier":
		name := fn.Text()
		if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
			return core.Reference{
				Kind: core.RefConstructorCall, Name: name, Location: node.Location(filePath),
				ConstructorName: name, ArgumentsCount: countArguments(node.ChildByField("arguments")),
				IsTupleStruct: true,
			}, true
		}
	}
	return core.Reference{}, false
}

func enumVariantStructLiteral(node *treeadapter.Node, filePath string) (core.Reference, bool) {
	name := node.ChildByField("name")
	if name == nil {
		return core.Reference{}, false
	}
	if name.Type() != "scoped_type_identifier" {
		return core.Reference{}, false
	}
	body := node.ChildByField("body")
	return core.Reference{
		Kind: core.RefConstructorCall, Name: name.Text(), Location: node.Location(filePath),
		ConstructorName: name.Text(), ArgumentsCount: fieldCount(body), IsEnumVariant: true,
	}, true
}

func fieldCount(body *treeadapter.Node) int {
	if body == nil {
		return 0
	}
	count := 0
	for i := 0; i < body.NamedChildCount(); i++ {
		if body.NamedChildAt(i).Type() == "shorthand_field_initializer" || body.NamedChildAt(i).Type() == "field_initializer" {
			count++
		}
	}
	return count
}

func macroConstructor(node *treeadapter.Node, filePath string) (core.Reference, bool) {
	macro := node.ChildByField("macro")
	if macro == nil || !closedSetMacros[macro.Text()] {
		return core.Reference{}, false
	}
	tokenTree := node.ChildByField("token_tree")
	count := 0
	if tokenTree != nil {
		for i := 0; i < tokenTree.ChildCount(); i++ {
			if tokenTree.ChildAt(i).Type() == "," {
				count++
			}
		}
		if tokenTree.ChildCount() > 2 { // more than just "()"
			count++
		}
	}
	return core.Reference{
		Kind: core.RefConstructorCall, Name: macro.Text(), Location: node.Location(filePath),
		ConstructorName: macro.Text(), ArgumentsCount: count,
		IsMacroInvocation: true, IsFactoryMethod: true,
	}, true
}

func countArguments(args *treeadapter.Node) int {
	if args == nil {
		return 0
	}
	count := 0
	for i := 0; i < args.ChildCount(); i++ {
		c := args.ChildAt(i)
		switch c.Type() {
		case "(", ")", ",", "line_comment", "block_comment":
			continue
		default:
			count++
		}
	}
	return count
}
