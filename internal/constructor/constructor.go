// Package constructor implements the Constructor Detector (spec §4.7): a
// generic configuration-driven pass (Pass A) plus per-language bespoke
// handlers (Pass B), merged by source position with bespoke priority. This
// is deliberately the hardest subcomponent in the indexer, per spec §2.
package constructor

import (
	"strings"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
)

// Detect runs both passes over root and returns the merged, deduplicated
// set of constructor-call references (spec invariant 7).
func Detect(root *treeadapter.Node, filePath string, lang *langconfig.Language) []core.Reference {
	generic := passA(root, filePath, lang)
	var bespoke []core.Reference
	if lang.BespokeConstructors != nil {
		bespoke = lang.BespokeConstructors(root, filePath)
	}
	return merge(generic, bespoke)
}

// passA is the single generic implementation, parameterized entirely by
// the language configuration (spec §4.7 Pass A).
func passA(root *treeadapter.Node, filePath string, lang *langconfig.Language) []core.Reference {
	var out []core.Reference
	root.Walk(func(n *treeadapter.Node) bool {
		if contains(lang.ConstructorNodeTypes, n.Type()) {
			if ref, ok := unambiguousConstructor(n, filePath, lang); ok {
				out = append(out, ref)
			}
			return true
		}
		if contains(lang.PotentialConstructorNodeTypes, n.Type()) {
			if ref, ok := potentialConstructor(n, filePath, lang); ok {
				out = append(out, ref)
			}
		}
		return true
	})
	return out
}

func unambiguousConstructor(n *treeadapter.Node, filePath string, lang *langconfig.Language) (core.Reference, bool) {
	field, ok := lang.NameExtractionFields[n.Type()]
	if !ok {
		return core.Reference{}, false
	}
	nameNode := n.ChildByField(field)
	if nameNode == nil {
		return core.Reference{}, false
	}
	name := resolveName(nameNode)
	if name == "" {
		return core.Reference{}, false
	}
	ref := core.Reference{
		Kind:            core.RefConstructorCall,
		Name:            name,
		Location:        n.Location(filePath),
		ConstructorName: name,
		ArgumentsCount:  countArguments(n.ChildByField(lang.ArgumentsFieldName)),
		IsNewExpression: n.Type() == "new_expression",
	}
	if target, ok := assignmentTarget(n); ok {
		ref.AssignedTo = target
	}
	return ref, true
}

func potentialConstructor(n *treeadapter.Node, filePath string, lang *langconfig.Language) (core.Reference, bool) {
	field, ok := lang.NameExtractionFields[n.Type()]
	if !ok {
		return core.Reference{}, false
	}
	callee := n.ChildByField(field)
	if callee == nil {
		return core.Reference{}, false
	}

	rules := lang.IdentificationRules
	name := resolveName(callee)

	if len(rules.FactoryMethodNames) > 0 {
		if method, recv, ok := scopedCallParts(callee); ok && rules.FactoryMethodNames[method] {
			ref := core.Reference{
				Kind: core.RefConstructorCall, Name: recv, Location: n.Location(filePath),
				ConstructorName: recv, ArgumentsCount: countArguments(n.ChildByField(lang.ArgumentsFieldName)),
				IsFactoryMethod: true,
			}
			return ref, true
		}
	}

	if rules.CapitalizationPattern != nil && rules.CapitalizationPattern.MatchString(name) {
		ref := core.Reference{
			Kind: core.RefConstructorCall, Name: name, Location: n.Location(filePath),
			ConstructorName: name, ArgumentsCount: countArguments(n.ChildByField(lang.ArgumentsFieldName)),
		}
		if target, ok := assignmentTarget(n); ok {
			ref.AssignedTo = target
		}
		return ref, true
	}

	if pattern, ok := matchSpecialPattern(callee, rules.SpecialPatterns); ok {
		ref := core.Reference{
			Kind: core.RefConstructorCall, Name: pattern, Location: n.Location(filePath),
			ConstructorName: pattern, ArgumentsCount: countArguments(n.ChildByField(lang.ArgumentsFieldName)),
			IsFactoryMethod: true,
		}
		return ref, true
	}
	return core.Reference{}, false
}

// matchSpecialPattern implements spec §4.7 Pass A step 3's special_patterns
// check: each pattern is a dotted-access or call-chain callee shape (e.g.
// "Object.create", "super().__init__") that should be accepted generically
// rather than left to a bespoke handler. A pattern matches the callee's
// exact source text, or as the leading dotted/call segment of it (so
// "Object.create" matches itself exactly as well as a longer chain built on
// it).
func matchSpecialPattern(callee *treeadapter.Node, patterns []string) (string, bool) {
	text := callee.Text()
	for _, p := range patterns {
		if text == p || strings.HasPrefix(text, p+".") || strings.HasPrefix(text, p+"(") {
			return p, true
		}
	}
	return "", false
}

// resolveName reads a callee identifier, descending through the nested
// forms (member expression, scoped identifier, generic type) the name
// extraction fields table allows for.
func resolveName(n *treeadapter.Node) string {
	switch n.Type() {
	case "identifier", "type_identifier":
		return n.Text()
	case "member_expression", "attribute":
		if prop := n.ChildByField("property"); prop != nil {
			return prop.Text()
		}
		if prop := n.ChildByField("attribute"); prop != nil {
			return prop.Text()
		}
	case "scoped_identifier":
		if name := n.ChildByField("name"); name != nil {
			return name.Text()
		}
	case "generic_type":
		if name := n.ChildByField("name"); name != nil {
			return resolveName(name)
		}
	}
	return n.Text()
}

// scopedCallParts splits a scoped/member callee into (method, receiver),
// e.g. "Type::new" -> ("new", "Type") or "User.from_dict" -> ("from_dict", "User").
func scopedCallParts(n *treeadapter.Node) (method, receiver string, ok bool) {
	switch n.Type() {
	case "scoped_identifier":
		path := n.ChildByField("path")
		name := n.ChildByField("name")
		if path != nil && name != nil {
			return name.Text(), path.Text(), true
		}
	case "member_expression", "attribute":
		obj := n.ChildByField("object")
		prop := n.ChildByField("property")
		if prop == nil {
			prop = n.ChildByField("attribute")
		}
		if obj != nil && prop != nil {
			return prop.Text(), obj.Text(), true
		}
	}
	return "", "", false
}

// assignmentTarget walks parentward from a constructor-call node, collecting
// the first declaration/assignment form's LHS name (spec §4.7 "Assignment
// target discovery"), stopping at statement boundaries, and covering all
// four languages uniformly (spec §9 open question 2).
func assignmentTarget(call *treeadapter.Node) (string, bool) {
	for p := call.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "variable_declarator":
			if id := p.ChildByField("id"); id != nil {
				return id.Text(), true
			}
		case "assignment", "assignment_expression":
			if left := p.ChildByField("left"); left != nil {
				return left.Text(), true
			}
		case "let_declaration":
			if pattern := p.ChildByField("pattern"); pattern != nil {
				return pattern.Text(), true
			}
		case "expression_statement", "statement_block", "block", "lexical_declaration":
			return "", false
		}
	}
	return "", false
}

func countArguments(args *treeadapter.Node) int {
	if args == nil {
		return 0
	}
	count := 0
	for i := 0; i < args.ChildCount(); i++ {
		switch args.ChildAt(i).Type() {
		case "(", ")", ",", "comment", "line_comment", "block_comment":
			continue
		default:
			count++
		}
	}
	return count
}

func contains(set []string, t string) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}

type posKey struct {
	line, col int
}

func keyOf(r core.Reference) posKey {
	return posKey{r.Location.StartLine, r.Location.StartCol}
}

// merge implements the merge rule (spec §4.7, invariant 7): both passes key
// by (line, column); on conflict the bespoke record wins.
func merge(generic, bespoke []core.Reference) []core.Reference {
	byKey := make(map[posKey]core.Reference, len(generic)+len(bespoke))
	order := make([]posKey, 0, len(generic)+len(bespoke))
	for _, r := range generic {
		k := keyOf(r)
		if _, exists := byKey[k]; !exists {
			order = append(order, k)
		}
		byKey[k] = r
	}
	for _, r := range bespoke {
		k := keyOf(r)
		if _, exists := byKey[k]; !exists {
			order = append(order, k)
		}
		byKey[k] = r // bespoke always overwrites — bespoke priority
	}
	out := make([]core.Reference, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}
