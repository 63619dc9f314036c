// Package reference walks the tree once and emits function/method/type/
// assignment references with contextual metadata (spec §4.6). Constructor
// calls are not emitted here — they are the Constructor Detector's
// responsibility (spec §4.7) and are merged in by internal/index, which
// also tells Extract which call-site positions the constructor detector
// already claimed so the same node is never double-classified as both a
// constructor_call and a function_call/method_call (spec §8 scenarios 2
// and 6, spec invariant 7).
package reference

import (
	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
)

// Extract walks root and returns every non-constructor reference. skip is
// the set of call-site locations already classified as constructor calls
// by internal/constructor; a call node whose location is in skip is never
// re-emitted as a function_call/method_call. skip may be nil.
func Extract(root *treeadapter.Node, filePath string, lang *langconfig.Language, skip map[core.Location]bool) []core.Reference {
	e := &extractor{filePath: filePath, lang: lang, skip: skip}
	root.Walk(func(n *treeadapter.Node) bool {
		e.visit(n)
		return true
	})
	return e.refs
}

type extractor struct {
	filePath string
	lang     *langconfig.Language
	skip     map[core.Location]bool
	refs     []core.Reference
}

var callNodeTypes = map[string]bool{
	"call_expression": true, "call": true,
}

func (e *extractor) visit(n *treeadapter.Node) {
	switch {
	case callNodeTypes[n.Type()]:
		e.visitCall(n)
	case n.Type() == "assignment" || n.Type() == "assignment_expression":
		e.visitAssignment(n)
	case n.Type() == "type_annotation" || n.Type() == "type":
		e.visitTypeAnnotation(n)
	}
}

func (e *extractor) visitCall(n *treeadapter.Node) {
	if e.skip[n.Location(e.filePath)] {
		return // already classified as a constructor_call
	}
	fn := n.ChildByField("function")
	if fn == nil {
		return
	}
	switch fn.Type() {
	case "identifier":
		name := fn.Text()
		e.refs = append(e.refs, core.Reference{
			Kind:     core.RefFunctionCall,
			Name:     name,
			Location: n.Location(e.filePath),
		})
	case "member_expression", "attribute":
		receiver := fn.ChildByField("object")
		prop := fn.ChildByField("property")
		if prop == nil {
			prop = fn.ChildByField("attribute")
		}
		if receiver == nil || prop == nil {
			return
		}
		receiverLoc := receiver.Location(e.filePath)
		ref := core.Reference{
			Kind:             core.RefMethodCall,
			Name:             prop.Text(),
			Location:         n.Location(e.filePath),
			ReceiverLocation: &receiverLoc,
		}
		e.refs = append(e.refs, ref)
		e.maybeCallback(n, ref)
	}
}

// maybeCallback checks whether a function-literal argument of this method
// call should be tagged as a callback (spec §4.6). The actual tag is
// applied by internal/index during post-processing, since it must mutate a
// Definition produced by a different extractor; here we only recognize the
// shape and let the assembler correlate by location.
func (e *extractor) maybeCallback(call *treeadapter.Node, ref core.Reference) {
	if !e.lang.HigherOrderCallNames[ref.Name] {
		return
	}
	// no-op marker kept for symmetry with spec's two-step description;
	// internal/index.attachCallbackContexts does the actual correlation.
}

func (e *extractor) visitAssignment(n *treeadapter.Node) {
	left := n.ChildByField("left")
	if left == nil {
		return
	}
	name := left.Text()
	ref := core.Reference{
		Kind:     core.RefAssignment,
		Name:     name,
		Location: n.Location(e.filePath),
	}
	if right := n.ChildByField("right"); right != nil {
		if t := constructorTypeName(right); t != "" {
			ref.AssignmentType = &core.AssignmentType{TypeName: t, Certainty: "declared"}
		}
	}
	e.refs = append(e.refs, ref)
}

func (e *extractor) visitTypeAnnotation(n *treeadapter.Node) {
	typeNode := n
	if n.Type() == "type_annotation" {
		if n.NamedChildCount() == 0 {
			return
		}
		typeNode = n.NamedChildAt(0)
	}
	name := typeNode.Text()
	if name == "" {
		return
	}
	e.refs = append(e.refs, core.Reference{
		Kind:     core.RefTypeReference,
		Name:     name,
		Location: typeNode.Location(e.filePath),
		TypeInfo: &core.TypeInfo{TypeName: name, Certainty: "declared"},
	})
}

func constructorTypeName(rhs *treeadapter.Node) string {
	switch rhs.Type() {
	case "new_expression":
		if c := rhs.ChildByField("constructor"); c != nil {
			return c.Text()
		}
	case "struct_expression":
		if name := rhs.ChildByField("name"); name != nil {
			return name.Text()
		}
	}
	return ""
}
