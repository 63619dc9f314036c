// Package treeadapter is the one place that knows about
// github.com/smacker/go-tree-sitter. Every later component (scope builder,
// definition/reference extractors, constructor detector) depends only on
// the Node/Tree surface here, so grammar-library evolution is absorbed in
// one package (spec §4.1).
package treeadapter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/termfx/semindex/core"
)

// Node wraps a *sitter.Node together with the source text needed to slice
// it, and converts positions to the 1-indexed form used at the output
// boundary (spec §9 "Positions"). diags is shared by every node descended
// from the same Tree, so recoverable issues found anywhere in the walk
// (spec §7 item 3) land in one place.
type Node struct {
	n      *sitter.Node
	source string
	diags  *[]core.Diagnostic
}

// Tree wraps a *sitter.Tree plus the source it was parsed from.
type Tree struct {
	t      *sitter.Tree
	source string
	diags  []core.Diagnostic
}

// NewTree wraps a parsed tree. source must be the exact text passed to the
// parser.
func NewTree(t *sitter.Tree, source string) *Tree {
	return &Tree{t: t, source: source}
}

// Root returns the wrapped root node.
func (t *Tree) Root() *Node {
	if t == nil || t.t == nil {
		return nil
	}
	return wrap(t.t.RootNode(), t.source, &t.diags)
}

// Diagnostics returns the recoverable issues recorded while this tree's
// nodes were visited (e.g. inverted ranges corrected by Location), in
// encounter order. Safe to call at any point; reflects only what has been
// recorded so far.
func (t *Tree) Diagnostics() []core.Diagnostic {
	if t == nil {
		return nil
	}
	return t.diags
}

func wrap(n *sitter.Node, source string, diags *[]core.Diagnostic) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n, source: source, diags: diags}
}

// Raw exposes the underlying *sitter.Node for components that need it for
// an operation this adapter does not cover (e.g. passing to a grammar
// package's Query). Kept deliberately narrow-use.
func (n *Node) Raw() *sitter.Node { return n.n }

// IsNil reports whether n wraps no node.
func (n *Node) IsNil() bool { return n == nil || n.n == nil }

// Type returns the grammar node type, e.g. "function_declaration".
func (n *Node) Type() string {
	if n.IsNil() {
		return ""
	}
	return n.n.Type()
}

// ChildCount returns the number of named and anonymous children.
func (n *Node) ChildCount() int {
	if n.IsNil() {
		return 0
	}
	return int(n.n.ChildCount())
}

// ChildAt returns the i-th child, or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if n.IsNil() || i < 0 || i >= n.ChildCount() {
		return nil
	}
	return wrap(n.n.Child(i), n.source, n.diags)
}

// NamedChildCount returns the number of named (non-punctuation) children.
func (n *Node) NamedChildCount() int {
	if n.IsNil() {
		return 0
	}
	return int(n.n.NamedChildCount())
}

// NamedChildAt returns the i-th named child.
func (n *Node) NamedChildAt(i int) *Node {
	if n.IsNil() || i < 0 || i >= n.NamedChildCount() {
		return nil
	}
	return wrap(n.n.NamedChild(i), n.source, n.diags)
}

// ChildByField returns the child bound to the given grammar field, or nil
// if the field is absent on this node — missing fields are never an error
// (spec §4.1).
func (n *Node) ChildByField(name string) *Node {
	if n.IsNil() {
		return nil
	}
	return wrap(n.n.ChildByFieldName(name), n.source, n.diags)
}

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node {
	if n.IsNil() {
		return nil
	}
	return wrap(n.n.Parent(), n.source, n.diags)
}

// PrevSibling returns the previous sibling, or nil.
func (n *Node) PrevSibling() *Node {
	if n.IsNil() {
		return nil
	}
	return wrap(n.n.PrevSibling(), n.source, n.diags)
}

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node {
	if n.IsNil() {
		return nil
	}
	return wrap(n.n.NextSibling(), n.source, n.diags)
}

// Text returns the exact source slice this node spans.
func (n *Node) Text() string {
	if n.IsNil() {
		return ""
	}
	start, end := n.n.StartByte(), n.n.EndByte()
	if int(end) > len(n.source) || start > end {
		return ""
	}
	return n.source[start:end]
}

// StartByte/EndByte expose raw byte offsets for internal slicing.
func (n *Node) StartByte() uint32 {
	if n.IsNil() {
		return 0
	}
	return n.n.StartByte()
}

func (n *Node) EndByte() uint32 {
	if n.IsNil() {
		return 0
	}
	return n.n.EndByte()
}

// StartPosition returns the node's start position, 1-indexed.
func (n *Node) StartPosition() core.Position {
	if n.IsNil() {
		return core.Position{}
	}
	p := n.n.StartPoint()
	return core.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// EndPosition returns the node's end position, 1-indexed, with the column
// reported as the character count + 1 on the last line (spec invariant 8).
// It reports the grammar's end point as is; correcting an inverted range is
// left to Location.
func (n *Node) EndPosition() core.Position {
	if n.IsNil() {
		return core.Position{}
	}
	p := n.n.EndPoint()
	return core.Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}

// Location builds a core.Location for filePath from this node's range,
// correcting an inverted range (end before start) by swapping, per the
// debug-level recovery policy in spec §7 item 3.
func (n *Node) Location(filePath string) core.Location {
	if n.IsNil() {
		return core.Location{FilePath: filePath}
	}
	start := n.StartPosition()
	end := n.EndPosition()
	if end.Line < start.Line || (end.Line == start.Line && end.Column < start.Column) {
		start, end = end, start
		if n.diags != nil {
			*n.diags = append(*n.diags, core.Diagnostic{
				Severity: "debug",
				Message:  "inverted range on " + n.Type() + " node corrected by swapping start/end",
				Location: &core.Location{FilePath: filePath, StartLine: start.Line, StartCol: start.Column, EndLine: end.Line, EndCol: end.Column},
			})
		}
	}
	return core.Location{
		FilePath:  filePath,
		StartLine: start.Line,
		StartCol:  start.Column,
		EndLine:   end.Line,
		EndCol:    end.Column,
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
	}
}

// Walk visits n and every descendant in pre-order, calling visit for each.
// This is the single traversal every stage (scope, definition, reference,
// constructor) dispatches off of (spec §9 "Tree traversal").
func (n *Node) Walk(visit func(*Node) bool) {
	if n.IsNil() {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < n.ChildCount(); i++ {
		n.ChildAt(i).Walk(visit)
	}
}
