package assemble

import (
	"testing"

	"github.com/JosefShenhav/wordasm/internal/isa"
)

func TestPass2ResolvesLocalSymbol(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"LOOP: inc r1", "jmp LOOP"})
	RunPass2(s)
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	code := s.Code.All()
	last := code[len(code)-1]
	if !last.Payload.IsResolved() {
		t.Fatal("expected the jmp operand word to be resolved after pass two")
	}
	want := isa.DecimalToBinary(100, 8) + eraRelocatable
	if last.Payload.Bits() != want {
		t.Errorf("resolved word = %q, want %q", last.Payload.Bits(), want)
	}
}

func TestPass2ResolvesExternalSymbolAndRecordsUse(t *testing.T) {
	s := newState()
	RunPass1(s, []string{".extern X", "jmp X"})
	RunPass2(s)
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	uses := s.Externals.All()
	if len(uses) != 1 || uses[0].Name != "X" {
		t.Fatalf("expected one external-use record for X, got %v", uses)
	}
	code := s.Code.All()
	last := code[len(code)-1]
	want := isa.DecimalToBinary(0, isa.WordBits-2) + eraExternal
	if last.Payload.Bits() != want {
		t.Errorf("resolved external word = %q, want %q", last.Payload.Bits(), want)
	}
}

func TestPass2UndefinedSymbolIsError(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"jmp GHOST"})
	RunPass2(s)
	if !s.Diags.HasErrors() {
		t.Error("expected an error resolving a reference to an undefined symbol")
	}
}

func TestPass2EntryTargetingExternalIsRejected(t *testing.T) {
	s := newState()
	RunPass1(s, []string{".extern X", ".entry X"})
	RunPass2(s)
	if !s.Diags.HasErrors() {
		t.Error("expected an error declaring an entry that targets an external symbol")
	}
}

func TestPass2DataAddressesShiftedByICFinal(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"inc r1", "NUMS: .data 5"})
	icFinal := s.ICFinal()
	RunPass2(s)
	data := s.Data.All()
	if data[0].Address != icFinal {
		t.Errorf("data word address = %d, want %d", data[0].Address, icFinal)
	}
	sym, _ := s.Symbols.Lookup("NUMS")
	if sym.Address != icFinal {
		t.Errorf("NUMS symbol address = %d, want %d", sym.Address, icFinal)
	}
}

func TestPass2EntryResolvesToFinalAddress(t *testing.T) {
	s := newState()
	RunPass1(s, []string{".entry LOOP", "LOOP: inc r1"})
	RunPass2(s)
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	entries := s.Entries.All()
	if len(entries) != 1 || entries[0].Address != 100 {
		t.Errorf("entry LOOP = %+v, want address 100", entries[0])
	}
}
