// Package typescript provides the TypeScript langconfig.Language value, a
// superset of the JavaScript one with interfaces, enums and generic
// constructor support layered on top. Namespace and module declarations
// produce no definitions.
package typescript

import (
	"regexp"
	"strings"

	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
)

var capitalized = regexp.MustCompile(`^[A-Z]`)

// Language builds the TypeScript configuration value.
func Language() *langconfig.Language {
	return &langconfig.Language{
		Name:       core.LanguageTypeScript,
		Extensions: []string{".ts", ".tsx"},
		Grammar:    typescript.GetLanguage(),

		ConstructorNodeTypes:          []string{"new_expression"},
		PotentialConstructorNodeTypes: []string{"call_expression"},
		NameExtractionFields: map[string]string{
			"new_expression":  "constructor",
			"call_expression": "function",
		},
		IdentificationRules: langconfig.IdentificationRules{
			RequiresNewKeyword:    false,
			CapitalizationPattern: capitalized,
			FactoryMethodNames:    map[string]bool{},
			SpecialPatterns:       []string{"Object.create"},
		},
		ArgumentsFieldName: "arguments",
		AssignmentPatterns: map[string]string{
			"variable_declarator": "id",
		},
		SpecialNodeTypes: map[string]string{},

		FunctionLikeNodeTypes: []string{"function_declaration", "function_expression", "arrow_function", "method_definition", "method_signature"},
		ClassLikeNodeTypes:    []string{"class_declaration", "class_expression", "interface_declaration", "enum_declaration"},
		BlockNodeTypes:        []string{"statement_block"},

		DefinitionRules: []langconfig.DefinitionRule{
			{Kind: core.KindFunction, NodeTypes: []string{"function_declaration", "function_expression", "arrow_function"}},
			{Kind: core.KindMethod, NodeTypes: []string{"method_definition", "method_signature"}},
			{Kind: core.KindClass, NodeTypes: []string{"class_declaration", "class_expression"}},
			{Kind: core.KindInterface, NodeTypes: []string{"interface_declaration"}},
			{Kind: core.KindEnum, NodeTypes: []string{"enum_declaration"}},
			{Kind: core.KindTypeAlias, NodeTypes: []string{"type_alias_declaration"}},
			{Kind: core.KindVariable, NodeTypes: []string{"variable_declarator"}},
			{Kind: core.KindImport, NodeTypes: []string{"import_statement"}},
		},

		ExtractName:         extractName,
		IsExported:          isExported,
		DocSummary:          docSummary,
		BespokeConstructors: bespokeConstructors,
		HigherOrderCallNames: map[string]bool{
			"map": true, "filter": true, "reduce": true, "forEach": true,
		},
		DefaultIgnorePatterns: []string{"**/*.test.ts", "**/*.spec.ts", "**/*.d.ts", "**/dist/**", "**/node_modules/**"},
	}
}

func init() {
	langconfig.Register(Language())
}

func extractName(n *treeadapter.Node) string {
	switch n.Type() {
	case "function_declaration", "class_declaration", "class_expression",
		"interface_declaration", "type_alias_declaration", "enum_declaration",
		"module_declaration", "namespace_declaration":
		if name := n.ChildByField("name"); name != nil {
			return name.Text()
		}
	case "method_definition", "method_signature":
		if key := n.ChildByField("key"); key != nil {
			return key.Text()
		}
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.ChildAt(i); c.Type() == "property_identifier" {
				return c.Text()
			}
		}
	case "public_field_definition", "private_field_definition", "field_definition":
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.ChildAt(i); c.Type() == "property_identifier" {
				return c.Text()
			}
		}
	case "property_signature":
		if name := n.ChildByField("name"); name != nil {
			return name.Text()
		}
	case "enum_member":
		if name := n.ChildByField("name"); name != nil {
			return name.Text()
		}
	case "variable_declarator":
		if id := n.ChildByField("id"); id != nil {
			return id.Text()
		}
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.ChildAt(i); c.Type() == "variable_declarator" {
				if id := c.ChildByField("id"); id != nil {
					return id.Text()
				}
			}
		}
	case "import_statement", "export_statement":
		if src := n.ChildByField("source"); src != nil {
			return strings.Trim(src.Text(), `"'`)
		}
	case "arrow_function", "function_expression":
		return arrowFunctionName(n)
	case "comment":
		return commentSummary(n.Text())
	}
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.ChildAt(i); c.Type() == "identifier" {
			return c.Text()
		}
	}
	return ""
}

func arrowFunctionName(n *treeadapter.Node) string {
	parent := n.Parent()
	if parent == nil {
		return "anonymous"
	}
	switch parent.Type() {
	case "variable_declarator":
		if id := parent.ChildByField("id"); id != nil {
			return id.Text()
		}
	case "pair":
		if key := parent.ChildByField("key"); key != nil {
			return key.Text()
		}
	case "method_definition":
		if key := parent.ChildByField("key"); key != nil {
			return key.Text()
		}
	case "assignment_expression":
		if left := parent.ChildByField("left"); left != nil {
			if left.Type() == "member_expression" {
				if prop := left.ChildByField("property"); prop != nil {
					return prop.Text()
				}
			} else {
				return left.Text()
			}
		}
	case "public_field_definition":
		for i := 0; i < parent.ChildCount(); i++ {
			if c := parent.ChildAt(i); c.Type() == "property_identifier" {
				return c.Text()
			}
		}
	}
	return "anonymous"
}

func commentSummary(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, p := range []string{"///", "//", "/**", "/*"} {
		trimmed = strings.TrimPrefix(trimmed, p)
	}
	trimmed = strings.TrimSuffix(trimmed, "*/")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(trimmed), "*"))
}

func docSummary(n *treeadapter.Node) string {
	prev := n.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	return commentSummary(prev.Text())
}

func isExported(n *treeadapter.Node, name string) bool {
	if name == "" {
		return false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "export_statement" {
			return true
		}
	}
	return capitalized.MatchString(name)
}

// bespokeConstructors implements the TypeScript-specific pass-B handler
// (spec §4.7): generic constructors (`new C<T>()`), recorded with their type
// arguments. A `new` expression without type arguments, type-asserted ones
// (`new C() as I`) included, gets no bespoke record; only the generic pass
// reports it.
func bespokeConstructors(n *treeadapter.Node, filePath string) []core.Reference {
	var out []core.Reference
	n.Walk(func(node *treeadapter.Node) bool {
		if node.Type() != "new_expression" {
			return true
		}
		typeArgs := node.ChildByField("type_arguments")
		if typeArgs == nil {
			return true
		}
		callee := node.ChildByField("constructor")
		if callee == nil {
			return true
		}
		ref := core.Reference{
			Kind:            core.RefConstructorCall,
			Name:            calleeName(callee),
			Location:        node.Location(filePath),
			ConstructorName: calleeName(callee),
			ArgumentsCount:  countArguments(node.ChildByField("arguments")),
			IsNewExpression: true,
			Generics:        typeParamNames(typeArgs),
		}
		out = append(out, ref)
		return true
	})
	return out
}

func calleeName(n *treeadapter.Node) string {
	switch n.Type() {
	case "identifier", "type_identifier":
		return n.Text()
	case "nested_identifier", "member_expression":
		if prop := n.ChildByField("property"); prop != nil {
			return prop.Text()
		}
	}
	return n.Text()
}

func typeParamNames(typeArgs *treeadapter.Node) []string {
	var out []string
	for i := 0; i < typeArgs.NamedChildCount(); i++ {
		out = append(out, typeArgs.NamedChildAt(i).Text())
	}
	return out
}

func countArguments(args *treeadapter.Node) int {
	if args == nil {
		return 0
	}
	count := 0
	for i := 0; i < args.ChildCount(); i++ {
		c := args.ChildAt(i)
		switch c.Type() {
		case "(", ")", ",", "comment":
			continue
		default:
			count++
		}
	}
	return count
}
