// Package scope builds the scope tree for one file in a single traversal
// (spec §4.4): one root module scope, plus a nested scope per function
// body, class/struct/enum/trait body, and lexical block. Scope boundaries
// begin strictly after any defining name token (the body-based rule, spec
// invariant 3).
package scope

import (
	"fmt"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
)

// Build walks root and returns the scope tree for filePath under lang's
// configuration. The builder's seq counter mints stable, unique scope ids.
func Build(root *treeadapter.Node, filePath string, lang *langconfig.Language) *core.ScopeTree {
	tree := core.NewScopeTree()
	b := &builder{tree: tree, filePath: filePath, lang: lang}
	moduleLoc := root.Location(filePath)
	moduleID := b.nextID("module")
	tree.Add(core.Scope{ID: moduleID, Type: core.ScopeModule, Location: moduleLoc})
	b.walk(root, moduleID)
	return tree
}

type builder struct {
	tree     *core.ScopeTree
	filePath string
	lang     *langconfig.Language
	seq      int
}

func (b *builder) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s:%s:%d", b.filePath, prefix, b.seq)
}

func (b *builder) walk(n *treeadapter.Node, parentScope string) {
	for i := 0; i < n.ChildCount(); i++ {
		child := n.ChildAt(i)
		childScope := parentScope

		switch {
		case contains(b.lang.FunctionLikeNodeTypes, child.Type()):
			if body := child.ChildByField("body"); body != nil {
				id := b.nextID("function")
				b.tree.Add(core.Scope{
					ID: id, Type: core.ScopeFunction, ParentID: parentScope,
					Location: body.Location(b.filePath), Name: b.lang.ExtractName(child),
				})
				childScope = id
			}
		case contains(b.lang.ClassLikeNodeTypes, child.Type()):
			if body := classBody(child); body != nil {
				id := b.nextID("class")
				b.tree.Add(core.Scope{
					ID: id, Type: core.ScopeClass, ParentID: parentScope,
					Location: body.Location(b.filePath), Name: b.lang.ExtractName(child),
				})
				childScope = id
			}
			// Tuple/unit structs (no body) open no scope — spec §4.4 edge case.
		case contains(b.lang.BlockNodeTypes, child.Type()):
			id := b.nextID("block")
			b.tree.Add(core.Scope{
				ID: id, Type: core.ScopeBlock, ParentID: parentScope,
				Location: child.Location(b.filePath),
			})
			childScope = id
		}

		b.walk(child, childScope)
	}
}

// classBody finds the body node of a class/struct/enum/trait/interface
// declaration, trying the common field names across the four grammars.
func classBody(n *treeadapter.Node) *treeadapter.Node {
	for _, field := range []string{"body", "variants"} {
		if body := n.ChildByField(field); body != nil {
			if body.Type() == "ordered_field_declaration_list" {
				return nil // tuple struct: no body scope
			}
			return body
		}
	}
	// Fall back to scanning for a *_body child (struct_item/enum_item's
	// anonymous body node in the Rust grammar is often unnamed).
	for i := 0; i < n.ChildCount(); i++ {
		c := n.ChildAt(i)
		switch c.Type() {
		case "class_body", "field_declaration_list", "enum_variant_list", "declaration_list", "object_type", "block":
			return c
		}
	}
	return nil
}

func contains(set []string, t string) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}
