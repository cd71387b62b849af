package assemble

import (
	"testing"

	"github.com/JosefShenhav/wordasm/internal/diag"
	"github.com/JosefShenhav/wordasm/internal/isa"
	"github.com/JosefShenhav/wordasm/internal/macro"
	"github.com/JosefShenhav/wordasm/internal/symtab"
)

func newState() *State {
	return NewState(macro.NewTable(), &diag.List{})
}

func TestPass1RegisterPairOptimization(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"mov r3, r5"})
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	code := s.Code.All()
	if len(code) != 2 {
		t.Fatalf("expected 2 code words for a register-pair mov, got %d", len(code))
	}
	want := isa.DecimalToBinary(3, 4) + isa.DecimalToBinary(5, 4) + "00"
	if code[1].Payload.Bits() != want {
		t.Errorf("register-pair word = %q, want %q", code[1].Payload.Bits(), want)
	}
	if s.ICFinal() != 102 {
		t.Errorf("ICFinal() = %d, want 102", s.ICFinal())
	}
}

func TestPass1TwoOperandNonRegisterEmitsThreeWords(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"mov X, r0"})
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	if len(s.Code.All()) != 3 {
		t.Fatalf("expected 3 code words, got %d", len(s.Code.All()))
	}
	if s.ICFinal() != 103 {
		t.Errorf("ICFinal() = %d, want 103", s.ICFinal())
	}
}

func TestPass1LabelDefinesCodeSymbol(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"LOOP: inc r1"})
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	sym, ok := s.Symbols.Lookup("LOOP")
	if !ok || sym.Kind != symtab.Code || sym.Address != 100 {
		t.Errorf("symbol LOOP = %+v, ok=%v", sym, ok)
	}
}

func TestPass1DataDirective(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"NUMS: .data 1, -1, 7"})
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	if len(s.Data.All()) != 3 {
		t.Fatalf("expected 3 data words, got %d", len(s.Data.All()))
	}
	sym, ok := s.Symbols.Lookup("NUMS")
	if !ok || sym.Kind != symtab.Data || sym.Address != 0 {
		t.Errorf("symbol NUMS = %+v, ok=%v", sym, ok)
	}
}

func TestPass1DataOutOfRange(t *testing.T) {
	s := newState()
	RunPass1(s, []string{".data 1000"})
	if !s.Diags.HasErrors() {
		t.Error("expected an error for a .data value outside [-512, 511]")
	}
}

func TestPass1MatDirective(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"M: .mat [2][2] 1, 2, 3, 4"})
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	if len(s.Data.All()) != 4 {
		t.Fatalf("expected 4 data words for a 2x2 matrix, got %d", len(s.Data.All()))
	}
}

func TestPass1StringDirectiveAppendsNulTerminator(t *testing.T) {
	s := newState()
	RunPass1(s, []string{`STR: .string "hi"`})
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	if len(s.Data.All()) != 3 {
		t.Fatalf("expected 3 data words (2 chars + terminator), got %d", len(s.Data.All()))
	}
	last := s.Data.All()[2]
	if last.Bits != isa.DecimalToBinary(0, isa.WordBits) {
		t.Errorf("expected a zero terminator word, got %q", last.Bits)
	}
}

func TestPass1UnknownOpcode(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"frobnicate r1"})
	if !s.Diags.HasErrors() {
		t.Error("expected an error for an unknown opcode")
	}
}

func TestPass1OperandCountMismatch(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"mov r1"})
	if !s.Diags.HasErrors() {
		t.Error("expected an error for too few operands")
	}
}

func TestPass1ForbiddenOperandType(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"mov r1, #5"})
	if !s.Diags.HasErrors() {
		t.Error("expected an error: mov destination cannot be immediate")
	}
}

func TestPass1BadRegisterNumber(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"inc r8"})
	if !s.Diags.HasErrors() {
		t.Error("expected an error for register number out of range 0..7")
	}
}

func TestPass1BlankAndCommentLinesSkipped(t *testing.T) {
	s := newState()
	RunPass1(s, []string{"", "   ", "; a comment", "stop"})
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	if len(s.Code.All()) != 1 {
		t.Errorf("expected 1 code word for stop, got %d", len(s.Code.All()))
	}
}

func TestPass1ExternDeclaration(t *testing.T) {
	s := newState()
	RunPass1(s, []string{".extern X"})
	if s.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", s.Diags.String())
	}
	sym, ok := s.Symbols.Lookup("X")
	if !ok || sym.Kind != symtab.External {
		t.Errorf("symbol X = %+v, ok=%v", sym, ok)
	}
}
