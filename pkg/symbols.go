package minlang

import (
	"fmt"
	"strings"
)

// Symbol is the compile-time record of a declared name within one scope.
type Symbol struct {
	Name   string
	Type   BasicType
	Offset int
}

// SymbolTable holds the declarations of a single lexical scope and links to
// its enclosing scope. Offsets start at 0 per scope and grow by the storage
// size of each declared type, in declaration order.
type SymbolTable struct {
	Name   string
	Parent *SymbolTable

	entries    map[string]*Symbol
	order      []*Symbol
	nextOffset int
}

func NewSymbolTable(parent *SymbolTable, name string) *SymbolTable {
	return &SymbolTable{
		Name:    name,
		Parent:  parent,
		entries: make(map[string]*Symbol),
	}
}

// Declare inserts a new symbol in this scope. A name may shadow an enclosing
// scope's name, but redeclaring a name within the same scope is an error.
func (t *SymbolTable) Declare(name string, typ BasicType) (*Symbol, error) {
	if _, exists := t.entries[name]; exists {
		return nil, &DeclarationError{Name: name, Scope: t.Name}
	}

	sym := &Symbol{
		Name:   name,
		Type:   typ,
		Offset: t.nextOffset,
	}

	t.entries[name] = sym
	t.order = append(t.order, sym)
	t.nextOffset += typ.Size()

	return sym, nil
}

// Lookup resolves a name in this scope or any enclosing scope, returning the
// innermost match. Resolution is purely lexical.
func (t *SymbolTable) Lookup(name string) *Symbol {
	for table := t; table != nil; table = table.Parent {
		if sym, ok := table.entries[name]; ok {
			return sym
		}
	}

	return nil
}

// Symbols returns the scope's symbols in declaration order.
func (t *SymbolTable) Symbols() []*Symbol {
	return t.order
}

// Pretty renders the scope as a small table: its label, then one row per
// symbol with name, lower-case type name, and byte offset.
func (t *SymbolTable) Pretty() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scope '%s':\n", t.Name)
	fmt.Fprintf(&sb, "%-15s%-10s%-10s\n", "Name", "Type", "Offset")
	sb.WriteString(strings.Repeat("-", 35))

	for _, sym := range t.order {
		fmt.Fprintf(&sb, "\n%-15s%-10s%-10d", sym.Name, sym.Type, sym.Offset)
	}

	return sb.String()
}
