// Package symtab holds the symbol, entry, and external-use tables built
// across the two assembler passes. Every table preserves insertion order;
// the symbol table also supports name lookup.
package symtab

import "fmt"

// Kind distinguishes where a symbol was defined and how its address behaves
// across passes.
type Kind int

const (
	Code Kind = iota
	Data
	External
)

func (k Kind) String() string {
	switch k {
	case Code:
		return "code"
	case Data:
		return "data"
	default:
		return "external"
	}
}

// Symbol is one named address. DATA-kind symbols are born DC-relative and
// shifted by IC_final at the start of pass two; EXTERNAL symbols carry
// address 0, unused.
type Symbol struct {
	Name    string
	Kind    Kind
	Address int
}

// Table is the ordered, name-unique symbol set for one input file.
type Table struct {
	order  []*Symbol
	byName map[string]*Symbol
}

func NewTable() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Define appends a new symbol. Names are unique across all kinds.
func (t *Table) Define(s *Symbol) error {
	if _, exists := t.byName[s.Name]; exists {
		return fmt.Errorf("symbol %q already defined", s.Name)
	}
	t.byName[s.Name] = s
	t.order = append(t.order, s)
	return nil
}

func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// All returns symbols in definition order.
func (t *Table) All() []*Symbol {
	return t.order
}

// ShiftDataAddresses adds delta to every DATA-kind symbol's address, as
// pass two does once IC_final is known.
func (t *Table) ShiftDataAddresses(delta int) {
	for _, s := range t.order {
		if s.Kind == Data {
			s.Address += delta
		}
	}
}

// Entry is one .entry declaration; Address is filled in during pass two.
type Entry struct {
	Name       string
	Address    int
	SourceLine int
}

// Entries is the ordered, name-unique set of .entry declarations.
type Entries struct {
	order  []*Entry
	byName map[string]bool
}

func NewEntries() *Entries {
	return &Entries{byName: make(map[string]bool)}
}

func (e *Entries) Define(ent *Entry) error {
	if e.byName[ent.Name] {
		return fmt.Errorf("entry %q already declared", ent.Name)
	}
	e.byName[ent.Name] = true
	e.order = append(e.order, ent)
	return nil
}

func (e *Entries) All() []*Entry {
	return e.order
}

// ExternalUse is one reference site to an external symbol: one record per
// use, not per symbol.
type ExternalUse struct {
	Name    string
	Address int
}

// ExternalUses is the ordered list of external reference sites built during
// pass two.
type ExternalUses struct {
	order []*ExternalUse
}

func NewExternalUses() *ExternalUses {
	return &ExternalUses{}
}

func (u *ExternalUses) Add(name string, address int) {
	u.order = append(u.order, &ExternalUse{Name: name, Address: address})
}

func (u *ExternalUses) All() []*ExternalUse {
	return u.order
}
