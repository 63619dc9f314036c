package definition

import (
	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/treeadapter"
)

// constructorLikeName returns the constructed type's name if rhs is a
// constructor-like expression (new X(...), X { ... }, X::new(...)), or ""
// (spec §4.5 "Variables").
func constructorLikeName(rhs *treeadapter.Node) string {
	switch rhs.Type() {
	case "new_expression":
		if c := rhs.ChildByField("constructor"); c != nil {
			return typeName(c)
		}
	case "struct_expression":
		if name := rhs.ChildByField("name"); name != nil {
			return typeName(name)
		}
	case "call_expression", "call":
		if fn := rhs.ChildByField("function"); fn != nil {
			if fn.Type() == "scoped_identifier" {
				if path := fn.ChildByField("path"); path != nil {
					return path.Text()
				}
			}
			if fn.Type() == "identifier" {
				name := fn.Text()
				if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
					return name
				}
			}
			if fn.Type() == "attribute" {
				if obj := fn.ChildByField("object"); obj != nil && obj.Type() == "identifier" {
					name := obj.Text()
					if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
						return name
					}
				}
			}
		}
	}
	return ""
}

func typeName(n *treeadapter.Node) string {
	switch n.Type() {
	case "identifier", "type_identifier":
		return n.Text()
	case "member_expression", "nested_identifier":
		if prop := n.ChildByField("property"); prop != nil {
			return prop.Text()
		}
	case "generic_type":
		if name := n.ChildByField("name"); name != nil {
			return name.Text()
		}
	}
	return n.Text()
}

// functionCollection reports whether rhs is a list/array literal whose
// elements are plain identifiers (spec §4.5 "function_collection").
func functionCollection(rhs *treeadapter.Node) (core.FunctionCollection, bool) {
	switch rhs.Type() {
	case "array", "list", "tuple":
	default:
		return core.FunctionCollection{}, false
	}
	var refs []string
	for i := 0; i < rhs.NamedChildCount(); i++ {
		c := rhs.NamedChildAt(i)
		if c.Type() != "identifier" {
			return core.FunctionCollection{}, false
		}
		refs = append(refs, c.Text())
	}
	if len(refs) == 0 {
		return core.FunctionCollection{}, false
	}
	return core.FunctionCollection{CollectionType: rhs.Type(), StoredReferences: refs}, true
}

// derivedFromExpr reports whether rhs is a pure index/property access of
// another variable, returning that variable's name (spec §4.5
// "derived_from").
func derivedFromExpr(rhs *treeadapter.Node) (string, bool) {
	switch rhs.Type() {
	case "subscript_expression", "subscript":
		if obj := rhs.ChildByField("object"); obj != nil && obj.Type() == "identifier" {
			return obj.Text(), true
		}
		if val := rhs.ChildByField("value"); val != nil && val.Type() == "identifier" {
			return val.Text(), true
		}
	case "member_expression", "attribute":
		if obj := rhs.ChildByField("object"); obj != nil && obj.Type() == "identifier" {
			return obj.Text(), true
		}
	}
	return "", false
}
