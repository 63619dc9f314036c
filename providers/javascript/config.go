// Package javascript provides the JavaScript langconfig.Language value:
// node-type tables, name extraction, and constructor-detection rules.
// Adapted from the query-type alias tables of a DSL-query engine into the
// definition/reference tables the indexer needs.
package javascript

import (
	"regexp"
	"strings"

	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
)

var capitalized = regexp.MustCompile(`^[A-Z]`)

// Language builds the JavaScript configuration value. Registered once by
// init.
func Language() *langconfig.Language {
	return &langconfig.Language{
		Name:       core.LanguageJavaScript,
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		Grammar:    javascript.GetLanguage(),

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

		FunctionLikeNodeTypes: []string{"function_declaration", "function_expression", "arrow_function", "method_definition"},
		ClassLikeNodeTypes:    []string{"class_declaration", "class_expression"},
		BlockNodeTypes:        []string{"statement_block"},

		DefinitionRules: []langconfig.DefinitionRule{
			{Kind: core.KindFunction, NodeTypes: []string{"function_declaration", "function_expression", "arrow_function"}},
			{Kind: core.KindMethod, NodeTypes: []string{"method_definition"}},
			{Kind: core.KindClass, NodeTypes: []string{"class_declaration", "class_expression"}},
			{Kind: core.KindVariable, NodeTypes: []string{"variable_declarator"}},
			{Kind: core.KindImport, NodeTypes: []string{"import_statement"}},
		},

		ExtractName:         extractName,
		IsExported:          isExported,
		DocSummary:          docSummary,
		BespokeConstructors: bespokeConstructors,
		HigherOrderCallNames: map[string]bool{
			"map": true, "filter": true, "reduce": true, "forEach": true, "for_each": true,
		},
		DefaultIgnorePatterns: []string{"**/*.test.js", "**/*.spec.js", "**/dist/**", "**/node_modules/**"},
	}
}

func init() {
	langconfig.Register(Language())
}

func extractName(n *treeadapter.Node) string {
	switch n.Type() {
	case "function_declaration", "class_declaration", "class_expression":
		if name := n.ChildByField("name"); name != nil {
			return name.Text()
		}
	case "method_definition":
		if key := n.ChildByField("key"); key != nil {
			return key.Text()
		}
	case "field_definition":
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.ChildAt(i); c.Type() == "property_identifier" {
				return c.Text()
			}
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
		if id := parent.ChildByField("id"); id != nil && id.Type() == "identifier" {
			return id.Text()
		}
	case "assignment_expression":
		if left := parent.ChildByField("left"); left != nil {
			if left.Type() == "member_expression" {
				if prop := left.ChildByField("property"); prop != nil {
					return prop.Text()
				}
			} else if left.Type() == "identifier" {
				return left.Text()
			}
		}
	case "pair":
		if key := parent.ChildByField("key"); key != nil {
			return key.Text()
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
	// export or export default ancestor marks it exported regardless of
	// capitalization; otherwise fall back to the capitalization convention.
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "export_statement" {
			return true
		}
	}
	return capitalized.MatchString(name)
}

func bespokeConstructors(n *treeadapter.Node, filePath string) []core.Reference {
	var out []core.Reference
	n.Walk(func(node *treeadapter.Node) bool {
		if node.Type() != "call_expression" {
			return true
		}
		callee := node.ChildByField("function")
		if callee == nil {
			return true
		}
		if callee.Type() == "member_expression" {
			obj := callee.ChildByField("object")
			prop := callee.ChildByField("property")
			if obj != nil && prop != nil && obj.Text() == "Object" && prop.Text() == "create" {
				if ref, ok := objectCreateTarget(node, filePath); ok {
					out = append(out, ref)
				}
			}
		}
		if callee.Type() == "identifier" {
			name := callee.Text()
			if isFactoryPrefixed(name) {
				out = append(out, core.Reference{
					Kind:            core.RefConstructorCall,
					Name:            name,
					Location:        node.Location(filePath),
					ConstructorName: name,
					ArgumentsCount:  countArguments(node.ChildByField("arguments")),
					IsFactoryMethod: true,
				})
			}
		}
		return true
	})
	return out
}

func objectCreateTarget(call *treeadapter.Node, filePath string) (core.Reference, bool) {
	args := call.ChildByField("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return core.Reference{}, false
	}
	first := args.NamedChildAt(0)
	if first.Type() != "member_expression" {
		return core.Reference{}, false
	}
	obj := first.ChildByField("object")
	prop := first.ChildByField("property")
	if obj == nil || prop == nil || prop.Text() != "prototype" {
		return core.Reference{}, false
	}
	return core.Reference{
		Kind:            core.RefConstructorCall,
		Name:            obj.Text(),
		Location:        call.Location(filePath),
		ConstructorName: obj.Text(),
		ArgumentsCount:  countArguments(call.ChildByField("arguments")),
		IsFactoryMethod: true,
	}, true
}

func isFactoryPrefixed(name string) bool {
	for _, prefix := range []string{"create", "make", "build", "construct"} {
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) && name[len(prefix)] >= 'A' && name[len(prefix)] <= 'Z' {
			return true
		}
	}
	return false
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
