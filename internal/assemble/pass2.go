package assemble

import (
	"github.com/JosefShenhav/wordasm/internal/diag"
	"github.com/JosefShenhav/wordasm/internal/isa"
	"github.com/JosefShenhav/wordasm/internal/symtab"
	"github.com/JosefShenhav/wordasm/internal/words"
)

// ERA values: 00 absolute/register, 01 external, 10 relocatable.
const (
	eraExternal    = "01"
	eraRelocatable = "10"
)

// RunPass2 shifts data addresses by IC_final, resolves every entry record,
// and rewrites every unresolved code word into its final 10-bit encoding,
// building the external-use list along the way.
func RunPass2(s *State) {
	icFinal := s.ICFinal()

	s.Data.ShiftAddresses(icFinal)
	s.Symbols.ShiftDataAddresses(icFinal)

	for _, e := range s.Entries.All() {
		sym, ok := s.Symbols.Lookup(e.Name)
		if !ok {
			s.Diags.Errorf(diag.KindUnresolvedReference, e.SourceLine, ".entry %q: undefined symbol", e.Name)
			continue
		}
		if sym.Kind == symtab.External {
			s.Diags.Errorf(diag.KindEntryTargetsExternal, e.SourceLine, ".entry %q: cannot target an external symbol", e.Name)
			continue
		}
		e.Address = sym.Address
	}

	for _, cw := range s.Code.All() {
		if cw.Payload.IsResolved() {
			continue
		}
		name := cw.Payload.Name()
		sym, ok := s.Symbols.Lookup(name)
		if !ok {
			s.Diags.Errorf(diag.KindUnresolvedReference, cw.SourceLine, "undefined symbol %q", name)
			continue
		}
		if sym.Kind == symtab.External {
			s.Externals.Add(name, cw.Address)
			cw.Payload = words.Resolved(isa.DecimalToBinary(0, isa.WordBits-2) + eraExternal)
			continue
		}
		cw.Payload = words.Resolved(isa.DecimalToBinary(sym.Address, 8) + eraRelocatable)
	}
}
