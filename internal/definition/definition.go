// Package definition walks the tree once and produces a Definition per
// matched node (spec §4.5): function, class, interface, enum, struct,
// trait, type alias, variable, import. Each definition's defining scope is
// computed by the body-based rule: a name token's innermost containing
// scope is its parent scope, because body scopes begin strictly after the
// name (spec invariant 3); members declared inside a body naturally fall
// inside that body's scope by the same lookup.
package definition

import (
	"strings"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/langconfig"
	"github.com/termfx/semindex/internal/treeadapter"
)

// Extract walks root and returns every definition found, attaching each to
// its defining scope via scopes.
func Extract(root *treeadapter.Node, filePath string, lang *langconfig.Language, scopes *core.ScopeTree) []core.Definition {
	e := &extractor{filePath: filePath, lang: lang, scopes: scopes}
	root.Walk(func(n *treeadapter.Node) bool {
		e.visit(n)
		return true
	})
	return e.defs
}

type extractor struct {
	filePath string
	lang     *langconfig.Language
	scopes   *core.ScopeTree
	defs     []core.Definition
}

func (e *extractor) visit(n *treeadapter.Node) {
	kind, ok := e.kindFor(n.Type())
	if !ok {
		return
	}
	nameNode := e.nameNode(n, kind)
	name := e.lang.ExtractName(n)
	if name == "" {
		return
	}
	loc := n.Location(e.filePath)
	if nameNode != nil {
		loc = nameNode.Location(e.filePath)
	}
	scopeID := e.scopes.Innermost(loc)

	def := core.Definition{
		Kind:            kind,
		Name:            name,
		Location:        n.Location(e.filePath),
		DefiningScopeID: scopeID,
		DocSummary:      e.docSummary(n),
	}
	def.SymbolID = e.symbolFor(scopeID, name, loc)

	switch kind {
	case core.KindFunction:
		e.fillFunction(n, &def)
	case core.KindMethod:
		e.fillMethod(n, &def)
	case core.KindClass, core.KindStruct, core.KindEnum, core.KindInterface, core.KindTrait:
		e.fillContainer(n, kind, &def)
	case core.KindTypeAlias:
		e.fillTypeAlias(n, &def)
	case core.KindVariable:
		e.fillVariable(n, &def)
	case core.KindImport:
		e.defs = append(e.defs, e.importDefinitions(n, scopeID)...)
		return
	}
	def.IsExported = e.lang.IsExported(n, name)
	def.IsPublic = def.IsExported
	e.defs = append(e.defs, def)
}

func (e *extractor) kindFor(nodeType string) (core.DefinitionKind, bool) {
	for _, rule := range e.lang.DefinitionRules {
		for _, t := range rule.NodeTypes {
			if t == nodeType {
				return rule.Kind, true
			}
		}
	}
	return "", false
}

func (e *extractor) nameNode(n *treeadapter.Node, kind core.DefinitionKind) *treeadapter.Node {
	if name := n.ChildByField("name"); name != nil {
		return name
	}
	if kind == core.KindVariable {
		if id := n.ChildByField("id"); id != nil {
			return id
		}
		if left := n.ChildByField("left"); left != nil {
			return left
		}
		if pattern := n.ChildByField("pattern"); pattern != nil {
			return pattern
		}
	}
	return nil
}

func (e *extractor) docSummary(n *treeadapter.Node) string {
	if e.lang.DocSummary == nil {
		return ""
	}
	return e.lang.DocSummary(n)
}

func (e *extractor) symbolFor(scopeID, name string, loc core.Location) core.SymbolID {
	scopePath := e.scopePathNames(scopeID)
	return core.ConstructSymbol(core.SymbolComponents{
		FilePath:  e.filePath,
		ScopePath: scopePath,
		Name:      name,
	})
}

// scopePathNames returns the chain of scope names from the module scope down
// to and including scopeID's own name — i.e. the names of the defining scope
// and its enclosing named scopes, used as the symbol's scope path.
func (e *extractor) scopePathNames(scopeID string) []string {
	var chain []string
	seen := map[string]bool{}
	for id := scopeID; id != "" && !seen[id]; {
		seen[id] = true
		s, ok := e.scopes.Get(id)
		if !ok {
			break
		}
		if s.Name != "" {
			chain = append([]string{s.Name}, chain...)
		}
		id = s.ParentID
	}
	return chain
}

func (e *extractor) fillFunction(n *treeadapter.Node, def *core.Definition) {
	def.Parameters = e.parameters(n)
	def.ReturnType = e.returnType(n)
	def.Generics = e.generics(n)
	def.IsAsync = e.hasAsyncMarker(n)
	def.Decorators = e.decorators(n)
}

func (e *extractor) fillMethod(n *treeadapter.Node, def *core.Definition) {
	def.Parameters = e.parameters(n)
	def.ReturnType = e.returnType(n)
	def.IsStatic = e.hasStaticMarker(n)
	def.Decorators = e.decorators(n)
	def.Visibility = e.visibility(n)
}

func (e *extractor) fillContainer(n *treeadapter.Node, kind core.DefinitionKind, def *core.Definition) {
	body := n.ChildByField("body")
	if body == nil {
		for i := 0; i < n.ChildCount(); i++ {
			c := n.ChildAt(i)
			switch c.Type() {
			case "class_body", "field_declaration_list", "enum_variant_list", "declaration_list", "object_type":
				body = c
			}
		}
	}
	if body != nil {
		def.Methods, def.Properties, def.Members = e.members(body, kind)
	}
	def.Generics = e.generics(n)
	def.Decorators = e.decorators(n)
	def.Extends, def.Implements = e.heritage(n)
}

func (e *extractor) fillTypeAlias(n *treeadapter.Node, def *core.Definition) {
	if value := n.ChildByField("value"); value != nil {
		def.TypeExpression = value.Text()
	} else if typ := n.ChildByField("type"); typ != nil {
		def.TypeExpression = typ.Text()
	}
	def.Generics = e.generics(n)
}

func (e *extractor) fillVariable(n *treeadapter.Node, def *core.Definition) {
	rhs := n.ChildByField("value")
	if rhs == nil {
		rhs = n.ChildByField("right")
	}
	if rhs == nil {
		return
	}
	if name := constructorLikeName(rhs); name != "" {
		def.AssignmentType = &core.AssignmentType{TypeName: name, Certainty: "declared"}
		return
	}
	if collection, ok := functionCollection(rhs); ok {
		def.FunctionCollection = &collection
		return
	}
	if derivedFrom, ok := derivedFromExpr(rhs); ok {
		def.DerivedFrom = derivedFrom
	}
}

func (e *extractor) parameters(n *treeadapter.Node) []core.Parameter {
	paramsNode := n.ChildByField("parameters")
	if paramsNode == nil {
		return nil
	}
	var out []core.Parameter
	for i := 0; i < paramsNode.NamedChildCount(); i++ {
		p := paramsNode.NamedChildAt(i)
		if p.Type() == "self_parameter" || p.Type() == "self" {
			continue
		}
		param := core.Parameter{}
		if id := p.ChildByField("name"); id != nil {
			param.Name = id.Text()
		} else if id := p.ChildByField("pattern"); id != nil {
			param.Name = id.Text()
		} else {
			param.Name = p.Text()
		}
		if typ := p.ChildByField("type"); typ != nil {
			param.Type = typ.Text()
		}
		if def := p.ChildByField("value"); def != nil {
			param.DefaultValue = def.Text()
			param.IsOptional = true
		}
		if p.Type() == "optional_parameter" {
			param.IsOptional = true
		}
		out = append(out, param)
	}
	return out
}

func (e *extractor) returnType(n *treeadapter.Node) string {
	for _, field := range []string{"return_type"} {
		if rt := n.ChildByField(field); rt != nil {
			return rt.Text()
		}
	}
	return ""
}

func (e *extractor) generics(n *treeadapter.Node) []string {
	tp := n.ChildByField("type_parameters")
	if tp == nil {
		return nil
	}
	var out []string
	for i := 0; i < tp.NamedChildCount(); i++ {
		out = append(out, tp.NamedChildAt(i).Text())
	}
	return out
}

func (e *extractor) hasAsyncMarker(n *treeadapter.Node) bool {
	for i := 0; i < n.ChildCount(); i++ {
		if n.ChildAt(i).Type() == "async" {
			return true
		}
	}
	return n.Type() == "async_function_definition"
}

func (e *extractor) hasStaticMarker(n *treeadapter.Node) bool {
	for i := 0; i < n.ChildCount(); i++ {
		if n.ChildAt(i).Type() == "static" {
			return true
		}
	}
	return false
}

func (e *extractor) decorators(n *treeadapter.Node) []string {
	var out []string
	for p := n.PrevSibling(); p != nil && p.Type() == "decorator"; p = p.PrevSibling() {
		out = append([]string{strings.TrimPrefix(p.Text(), "@")}, out...)
	}
	return out
}

func (e *extractor) visibility(n *treeadapter.Node) core.Visibility {
	for i := 0; i < n.ChildCount(); i++ {
		switch n.ChildAt(i).Type() {
		case "private":
			return core.VisibilityPrivate
		case "protected":
			return core.VisibilityProtected
		case "public":
			return core.VisibilityPublic
		}
	}
	return core.VisibilityNone
}

func (e *extractor) members(body *treeadapter.Node, kind core.DefinitionKind) (methods, properties []string, members []core.Member) {
	for i := 0; i < body.NamedChildCount(); i++ {
		c := body.NamedChildAt(i)
		switch c.Type() {
		case "method_definition", "method_signature", "function_item", "function_signature_item":
			if name := c.ChildByField("name"); name != nil {
				methods = append(methods, name.Text())
			} else if name := c.ChildByField("key"); name != nil {
				methods = append(methods, name.Text())
			}
		case "field_definition", "public_field_definition", "private_field_definition", "property_signature", "field_declaration":
			if name := fieldName(c); name != "" {
				properties = append(properties, name)
			}
		case "enum_member", "enum_variant":
			name := ""
			if n := c.ChildByField("name"); n != nil {
				name = n.Text()
			}
			members = append(members, core.Member{Name: name, Shape: variantShape(c)})
		}
	}
	return methods, properties, members
}

func fieldName(c *treeadapter.Node) string {
	if name := c.ChildByField("name"); name != nil {
		return name.Text()
	}
	for i := 0; i < c.ChildCount(); i++ {
		if ch := c.ChildAt(i); ch.Type() == "property_identifier" || ch.Type() == "identifier" {
			return ch.Text()
		}
	}
	return ""
}

func variantShape(c *treeadapter.Node) core.EnumMemberShape {
	body := c.ChildByField("body")
	if body == nil {
		return core.EnumMemberUnit
	}
	if body.Type() == "field_declaration_list" {
		return core.EnumMemberStruct
	}
	return core.EnumMemberTuple
}

func (e *extractor) heritage(n *treeadapter.Node) (extends, implements []string) {
	if h := n.ChildByField("heritage"); h != nil {
		extends = append(extends, heritageNames(h)...)
	}
	if sc := n.ChildByField("superclass"); sc != nil {
		extends = append(extends, sc.Text())
	}
	if ifaces := n.ChildByField("interfaces"); ifaces != nil {
		implements = append(implements, heritageNames(ifaces)...)
	}
	return extends, implements
}

func heritageNames(h *treeadapter.Node) []string {
	var out []string
	for i := 0; i < h.NamedChildCount(); i++ {
		out = append(out, h.NamedChildAt(i).Text())
	}
	return out
}

func (e *extractor) importDefinitions(n *treeadapter.Node, scopeID string) []core.Definition {
	switch e.lang.Name {
	case core.LanguageJavaScript, core.LanguageTypeScript:
		return jsImports(n, e.filePath, scopeID)
	case core.LanguagePython:
		return pyImports(n, e.filePath, scopeID)
	case core.LanguageRust:
		return rustImports(n, e.filePath, scopeID)
	}
	return nil
}
