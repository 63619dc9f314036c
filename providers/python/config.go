// Package python provides the Python langconfig.Language value, including
// the super().__init__ and classmethod-factory bespoke constructor rules.
package python

import (
	"strings"

	"github.com/smacker/go-tree-sitter/python"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
)

var factoryMethodNames = map[string]bool{
	"from_dict": true, "from_json": true, "from_string": true, "create": true, "build": true,
}

// Language builds the Python configuration value.
func Language() *langconfig.Language {
	return &langconfig.Language{
		Name:       core.LanguagePython,
		Extensions: []string{".py", ".pyw", ".pyi"},
		Grammar:    python.GetLanguage(),

		ConstructorNodeTypes:          []string{},
		PotentialConstructorNodeTypes: []string{"call"},
		NameExtractionFields: map[string]string{
			"call": "function",
		},
		IdentificationRules: langconfig.IdentificationRules{
			RequiresNewKeyword: false,
			FactoryMethodNames: factoryMethodNames,
			SpecialPatterns:    []string{"super().__init__"},
		},
		ArgumentsFieldName: "arguments",
		AssignmentPatterns: map[string]string{
			"assignment": "left",
		},
		SpecialNodeTypes: map[string]string{},

		FunctionLikeNodeTypes: []string{"function_definition", "async_function_definition", "lambda"},
		ClassLikeNodeTypes:    []string{"class_definition"},
		BlockNodeTypes:        []string{"block"},

		DefinitionRules: []langconfig.DefinitionRule{
			{Kind: core.KindFunction, NodeTypes: []string{"function_definition", "async_function_definition", "lambda"}},
			{Kind: core.KindClass, NodeTypes: []string{"class_definition"}},
			{Kind: core.KindTypeAlias, NodeTypes: []string{"type_alias_statement"}},
			{Kind: core.KindVariable, NodeTypes: []string{"assignment", "augmented_assignment"}},
			{Kind: core.KindImport, NodeTypes: []string{"import_statement", "import_from_statement"}},
		},

		ExtractName:         extractName,
		IsExported:          isExported,
		DocSummary:          docSummary,
		BespokeConstructors: bespokeConstructors,
		HigherOrderCallNames: map[string]bool{
			"map": true, "filter": true, "reduce": true,
		},
		DefaultIgnorePatterns: []string{"**/test_*.py", "**/*_test.py", "**/__pycache__/**"},
	}
}

func init() {
	langconfig.Register(Language())
}

func extractName(n *treeadapter.Node) string {
	switch n.Type() {
	case "function_definition", "async_function_definition", "class_definition":
		if name := n.ChildByField("name"); name != nil {
			return name.Text()
		}
	case "assignment", "augmented_assignment":
		if left := n.ChildByField("left"); left != nil && left.Type() == "identifier" {
			return left.Text()
		}
	case "lambda":
		return "anonymous"
	case "import_statement":
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.ChildAt(i); c.Type() == "dotted_name" || c.Type() == "identifier" {
				return c.Text()
			}
		}
	case "import_from_statement":
		if module := n.ChildByField("module_name"); module != nil {
			return module.Text()
		}
	case "type_alias_statement":
		if left := n.ChildByField("left"); left != nil {
			return left.Text()
		}
	case "decorator":
		for i := 0; i < n.ChildCount(); i++ {
			if c := n.ChildAt(i); c.Type() == "identifier" || c.Type() == "attribute" {
				return c.Text()
			}
		}
	case "comment":
		return commentSummary(n.Text())
	}
	if name := n.ChildByField("name"); name != nil {
		return name.Text()
	}
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.ChildAt(i); c.Type() == "identifier" {
			return c.Text()
		}
	}
	return ""
}

func commentSummary(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "#")
	for _, p := range []string{"//", "/**", "/*"} {
		trimmed = strings.TrimPrefix(trimmed, p)
	}
	trimmed = strings.TrimSuffix(trimmed, "*/")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
}

func docSummary(n *treeadapter.Node) string {
	body := n.ChildByField("body")
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.ChildAt(0)
	if first.Type() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	str := first.ChildAt(0)
	if str.Type() != "string" {
		return ""
	}
	text := strings.Trim(str.Text(), `"'`)
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// ValidateAssignment rejects attribute/subscript assignment targets for
// variable-kind definitions (self.x = 1 is not a new variable).
func ValidateAssignment(n *treeadapter.Node) bool {
	if n.Type() != "assignment" && n.Type() != "augmented_assignment" {
		return true
	}
	left := n.ChildByField("left")
	if left == nil {
		return false
	}
	switch left.Type() {
	case "identifier", "tuple", "list", "pattern_list":
		return true
	default:
		return false
	}
}

func isExported(n *treeadapter.Node, name string) bool {
	return len(name) > 0 && !strings.HasPrefix(name, "_")
}

// bespokeConstructors implements Python's pass-B handlers (spec §4.7):
// super().__init__(...), classmethod factory patterns, and dataclass-shaped
// instantiation with keyword arguments.
func bespokeConstructors(n *treeadapter.Node, filePath string) []core.Reference {
	var out []core.Reference
	n.Walk(func(node *treeadapter.Node) bool {
		if node.Type() != "call" {
			return true
		}
		fn := node.ChildByField("function")
		if fn == nil {
			return true
		}
		if ref, ok := superInitCall(node, fn, filePath); ok {
			out = append(out, ref)
			return true
		}
		if ref, ok := classmethodFactoryCall(node, fn, filePath); ok {
			out = append(out, ref)
		}
		// Dataclass-shaped instantiation: capitalized callee with keyword arguments.
		if name := fn.Text(); fn.Type() == "identifier" && name != "" && name[0] >= 'A' && name[0] <= 'Z' {
			args := node.ChildByField("arguments")
			for i := 0; i < args.NamedChildCount(); i++ {
				if args.NamedChildAt(i).Type() == "keyword_argument" {
					out = append(out, core.Reference{
						Kind: core.RefConstructorCall, Name: name, Location: node.Location(filePath),
						ConstructorName: name, ArgumentsCount: countArguments(args),
					})
					break
				}
			}
		}
		return true
	})
	return out
}

func superInitCall(call, fn *treeadapter.Node, filePath string) (core.Reference, bool) {
	if fn.Type() != "attribute" {
		return core.Reference{}, false
	}
	obj := fn.ChildByField("object")
	attr := fn.ChildByField("attribute")
	if obj == nil || attr == nil || attr.Text() != "__init__" {
		return core.Reference{}, false
	}
	if obj.Type() != "call" {
		return core.Reference{}, false
	}
	inner := obj.ChildByField("function")
	if inner == nil || inner.Text() != "super" {
		return core.Reference{}, false
	}
	return core.Reference{
		Kind:            core.RefConstructorCall,
		Name:            "super",
		Location:        call.Location(filePath),
		ConstructorName: "super",
		ArgumentsCount:  countArguments(call.ChildByField("arguments")),
		IsSuperCall:     true,
	}, true
}

func classmethodFactoryCall(call, fn *treeadapter.Node, filePath string) (core.Reference, bool) {
	if fn.Type() != "attribute" {
		return core.Reference{}, false
	}
	obj := fn.ChildByField("object")
	attr := fn.ChildByField("attribute")
	if obj == nil || attr == nil || obj.Type() != "identifier" {
		return core.Reference{}, false
	}
	className := obj.Text()
	if len(className) == 0 || className[0] < 'A' || className[0] > 'Z' {
		return core.Reference{}, false
	}
	if !factoryMethodNames[attr.Text()] {
		return core.Reference{}, false
	}
	return core.Reference{
		Kind:            core.RefConstructorCall,
		Name:            className,
		Location:        call.Location(filePath),
		ConstructorName: className,
		ArgumentsCount:  countArguments(call.ChildByField("arguments")),
		IsFactoryMethod: true,
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
		case "(", ")", ",", "comment":
			continue
		default:
			count++
		}
	}
	return count
}
