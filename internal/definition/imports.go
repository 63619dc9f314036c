package definition

import (
	"strings"

	"github.com/termfx/semindex/core"
	"github.com/termfx/semindex/internal/treeadapter"
)

func importDef(filePath, scopeID, name, original, path string, kind core.ImportKind, loc core.Location) core.Definition {
	return core.Definition{
		Kind:            core.KindImport,
		Name:            name,
		OriginalName:    original,
		ImportPath:      path,
		ImportKind:      kind,
		Location:        loc,
		DefiningScopeID: scopeID,
		SymbolID:        core.ConstructSymbol(core.SymbolComponents{FilePath: filePath, Name: name}),
	}
}

// jsImports supports named, default, namespace and aliased imports for
// JavaScript/TypeScript (spec §4.5 "Imports").
func jsImports(n *treeadapter.Node, filePath, scopeID string) []core.Definition {
	var out []core.Definition
	path := ""
	if src := n.ChildByField("source"); src != nil {
		path = strings.Trim(src.Text(), `"'`)
	}
	foundAny := false
	for i := 0; i < n.ChildCount(); i++ {
		c := n.ChildAt(i)
		switch c.Type() {
		case "import_clause":
			out = append(out, jsImportClause(c, filePath, scopeID, path)...)
			foundAny = true
		case "namespace_import":
			if name := c.ChildByField("name"); name != nil {
				out = append(out, importDef(filePath, scopeID, name.Text(), "", path, core.ImportNamespace, c.Location(filePath)))
				foundAny = true
			}
		}
	}
	if !foundAny {
		out = append(out, importDef(filePath, scopeID, path, "", path, core.ImportSideEffect, n.Location(filePath)))
	}
	return out
}

func jsImportClause(clause *treeadapter.Node, filePath, scopeID, path string) []core.Definition {
	var out []core.Definition
	for i := 0; i < clause.ChildCount(); i++ {
		c := clause.ChildAt(i)
		switch c.Type() {
		case "identifier":
			out = append(out, importDef(filePath, scopeID, c.Text(), "", path, core.ImportDefault, c.Location(filePath)))
		case "namespace_import":
			if name := c.ChildByField("name"); name != nil {
				out = append(out, importDef(filePath, scopeID, name.Text(), "", path, core.ImportNamespace, c.Location(filePath)))
			}
		case "named_imports":
			for j := 0; j < c.NamedChildCount(); j++ {
				spec := c.NamedChildAt(j)
				if spec.Type() != "import_specifier" {
					continue
				}
				if alias := spec.ChildByField("alias"); alias != nil {
					original := ""
					if name := spec.ChildByField("name"); name != nil {
						original = name.Text()
					}
					out = append(out, importDef(filePath, scopeID, alias.Text(), original, path, core.ImportNamed, spec.Location(filePath)))
				} else if name := spec.ChildByField("name"); name != nil {
					out = append(out, importDef(filePath, scopeID, name.Text(), "", path, core.ImportNamed, spec.Location(filePath)))
				}
			}
		}
	}
	return out
}

// pyImports supports `import x`, `import x as y`, `from x import y`,
// `from x import y as z`, grouped imports (spec §4.5).
func pyImports(n *treeadapter.Node, filePath, scopeID string) []core.Definition {
	var out []core.Definition
	modulePath := ""
	var moduleNode *treeadapter.Node
	if n.Type() == "import_from_statement" {
		if m := n.ChildByField("module_name"); m != nil {
			modulePath = m.Text()
			moduleNode = m
		}
	}
	for i := 0; i < n.ChildCount(); i++ {
		c := n.ChildAt(i)
		if moduleNode != nil && c.StartByte() == moduleNode.StartByte() && c.EndByte() == moduleNode.EndByte() {
			continue // the module path itself binds no local name
		}
		switch c.Type() {
		case "aliased_import":
			name := c.ChildByField("name")
			alias := c.ChildByField("alias")
			if name != nil && alias != nil {
				out = append(out, importDef(filePath, scopeID, alias.Text(), name.Text(), modulePath, core.ImportNamed, c.Location(filePath)))
			}
		case "dotted_name":
			if n.Type() == "import_statement" {
				out = append(out, importDef(filePath, scopeID, c.Text(), "", c.Text(), core.ImportDefault, c.Location(filePath)))
			} else {
				out = append(out, importDef(filePath, scopeID, c.Text(), "", modulePath, core.ImportNamed, c.Location(filePath)))
			}
		case "identifier":
			if n.Type() == "import_from_statement" {
				out = append(out, importDef(filePath, scopeID, c.Text(), "", modulePath, core.ImportNamed, c.Location(filePath)))
			}
		case "wildcard_import":
			out = append(out, importDef(filePath, scopeID, "*", "", modulePath, core.ImportNamespace, c.Location(filePath)))
		}
	}
	return out
}

// rustImports supports `use a::b::c;`, `use a::{b, c};`, `use a::b as c;`,
// `use a::*;`, and `extern crate x;` (spec §4.5).
func rustImports(n *treeadapter.Node, filePath, scopeID string) []core.Definition {
	if n.Type() == "extern_crate_declaration" {
		if name := n.ChildByField("name"); name != nil {
			return []core.Definition{importDef(filePath, scopeID, name.Text(), "", name.Text(), core.ImportDefault, n.Location(filePath))}
		}
		return nil
	}
	var out []core.Definition
	for i := 0; i < n.ChildCount(); i++ {
		c := n.ChildAt(i)
		if c.Type() == "use_clause" || c.Type() == "scoped_identifier" || c.Type() == "identifier" ||
			c.Type() == "use_as_clause" || c.Type() == "use_wildcard" || c.Type() == "use_list" ||
			c.Type() == "scoped_use_list" {
			out = append(out, rustUseItem(c, filePath, scopeID, "")...)
		}
	}
	return out
}

func rustUseItem(n *treeadapter.Node, filePath, scopeID, prefix string) []core.Definition {
	switch n.Type() {
	case "use_as_clause":
		path := n.ChildByField("path")
		alias := n.ChildByField("alias")
		if path != nil && alias != nil {
			return []core.Definition{importDef(filePath, scopeID, alias.Text(), path.Text(), path.Text(), core.ImportNamed, n.Location(filePath))}
		}
	case "use_wildcard":
		path := n.ChildByField("path")
		name := "*"
		importPath := prefix
		if path != nil {
			importPath = path.Text()
		}
		return []core.Definition{importDef(filePath, scopeID, name, "", importPath, core.ImportNamespace, n.Location(filePath))}
	case "scoped_use_list":
		listPrefix := prefix
		if path := n.ChildByField("path"); path != nil {
			listPrefix = path.Text()
			if prefix != "" {
				listPrefix = prefix + "::" + listPrefix
			}
		}
		if list := n.ChildByField("list"); list != nil {
			return rustUseItem(list, filePath, scopeID, listPrefix)
		}
	case "use_list":
		var out []core.Definition
		for i := 0; i < n.NamedChildCount(); i++ {
			out = append(out, rustUseItem(n.NamedChildAt(i), filePath, scopeID, prefix)...)
		}
		return out
	case "scoped_identifier":
		return []core.Definition{importDef(filePath, scopeID, n.Text(), "", n.Text(), core.ImportNamed, n.Location(filePath))}
	case "identifier":
		importPath := n.Text()
		if prefix != "" {
			importPath = prefix + "::" + importPath
		}
		return []core.Definition{importDef(filePath, scopeID, n.Text(), "", importPath, core.ImportNamed, n.Location(filePath))}
	}
	return nil
}
