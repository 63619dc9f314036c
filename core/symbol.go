package core

import (
	"fmt"
	"strings"
)

// SymbolID is a globally unique identifier for a Definition, constructed as
// file + scope chain + name (spec §4.3): "<file_path>#<scope_path>:<name>",
// scope path components colon-joined.
type SymbolID string

const (
	NameConstructor = "<constructor>"
	NameModule      = "<module>"
	NameDestructor  = "<destructor>"
	NameGetter      = "<getter>"
	NameSetter      = "<setter>"
)

// SymbolComponents are the inputs to ConstructSymbol.
type SymbolComponents struct {
	FilePath  string
	ScopePath []string
	Name      string
	// Anonymous elements disambiguate by position instead of name alone.
	Anonymous bool
	Line      int
	Col       int
}

// ConstructSymbol normalizes the file path to forward slashes, joins the
// scope path with ":" and appends the element name. Anonymous elements get
// the name "<anonymous>:<line>:<col>" in place of Name.
func ConstructSymbol(c SymbolComponents) SymbolID {
	file := strings.ReplaceAll(c.FilePath, "\\", "/")
	name := c.Name
	if c.Anonymous {
		name = fmt.Sprintf("<anonymous>:%d:%d", c.Line, c.Col)
	}
	scopePath := strings.Join(c.ScopePath, ":")
	if scopePath == "" {
		return SymbolID(fmt.Sprintf("%s#%s", file, name))
	}
	return SymbolID(fmt.Sprintf("%s#%s:%s", file, scopePath, name))
}

// ParseSymbol is the inverse of ConstructSymbol and must round-trip for any
// symbol the system emits.
func ParseSymbol(id SymbolID) (SymbolComponents, error) {
	s := string(id)
	hashIdx := strings.Index(s, "#")
	if hashIdx < 0 {
		return SymbolComponents{}, fmt.Errorf("parse symbol %q: missing '#' separator", s)
	}
	file := s[:hashIdx]
	rest := s[hashIdx+1:]
	parts := strings.Split(rest, ":")
	if len(parts) == 0 {
		return SymbolComponents{}, fmt.Errorf("parse symbol %q: empty body", s)
	}
	name := parts[len(parts)-1]
	scopePath := parts[:len(parts)-1]
	if len(parts) >= 3 && parts[len(parts)-3] == "<anonymous>" {
		name = strings.Join(parts[len(parts)-3:], ":")
		scopePath = parts[:len(parts)-3]
	}

	c := SymbolComponents{FilePath: file, ScopePath: scopePath, Name: name}
	if strings.HasPrefix(name, "<anonymous>:") {
		fields := strings.Split(name, ":")
		if len(fields) == 3 {
			c.Anonymous = true
			fmt.Sscanf(fields[1], "%d", &c.Line)
			fmt.Sscanf(fields[2], "%d", &c.Col)
		}
	}
	return c, nil
}

// CompareSymbols orders two symbol ids by file_path, then scope depth, then
// each scope name in turn, then name — the comparison order spec §4.3
// mandates.
func CompareSymbols(a, b SymbolID) int {
	ca, errA := ParseSymbol(a)
	cb, errB := ParseSymbol(b)
	if errA != nil || errB != nil {
		return strings.Compare(string(a), string(b))
	}
	if c := strings.Compare(ca.FilePath, cb.FilePath); c != 0 {
		return c
	}
	if len(ca.ScopePath) != len(cb.ScopePath) {
		if len(ca.ScopePath) < len(cb.ScopePath) {
			return -1
		}
		return 1
	}
	for i := range ca.ScopePath {
		if c := strings.Compare(ca.ScopePath[i], cb.ScopePath[i]); c != 0 {
			return c
		}
	}
	return strings.Compare(ca.Name, cb.Name)
}
