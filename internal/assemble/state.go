// Package assemble implements the first and second assembler passes: operand
// classification, instruction/data word emission, and cross-pass symbol
// resolution.
package assemble

import (
	"github.com/JosefShenhav/wordasm/internal/diag"
	"github.com/JosefShenhav/wordasm/internal/macro"
	"github.com/JosefShenhav/wordasm/internal/symtab"
	"github.com/JosefShenhav/wordasm/internal/words"
)

const (
	icStart = 100
	dcStart = 0
)

// State is the full per-file assembler state, owned for the lifetime of one
// input file and discarded at the end of processing. Nothing here is shared
// across files.
type State struct {
	Macros    *macro.Table
	Symbols   *symtab.Table
	Entries   *symtab.Entries
	Externals *symtab.ExternalUses
	Code      words.CodeWords
	Data      words.DataWords

	IC int
	DC int

	Diags *diag.List
}

// NewState creates per-file state with IC/DC at their starting values.
func NewState(macros *macro.Table, d *diag.List) *State {
	return &State{
		Macros:    macros,
		Symbols:   symtab.NewTable(),
		Entries:   symtab.NewEntries(),
		Externals: symtab.NewExternalUses(),
		IC:        icStart,
		DC:        dcStart,
		Diags:     d,
	}
}

// ICFinal is the final instruction counter after pass one completes — the
// offset by which data addresses are shifted at the start of pass two.
func (s *State) ICFinal() int { return s.IC }
