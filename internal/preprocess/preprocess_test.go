package preprocess

import (
	"strings"
	"testing"

	"github.com/JosefShenhav/wordasm/internal/diag"
)

func TestMacroDefinitionIsStrippedAndExpanded(t *testing.T) {
	src := strings.Join([]string{
		"mcro CLEAR",
		"clr r1",
		"clr r2",
		"mcroend",
		"CLEAR",
		"stop",
	}, "\n")

	d := &diag.List{}
	res := Run(src, d)
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", d.String())
	}

	expected := []string{"clr r1", "clr r2", "stop"}
	if len(res.Lines) != len(expected) {
		t.Fatalf("got %d lines, want %d: %v", len(res.Lines), len(expected), res.Lines)
	}
	for i := range expected {
		if res.Lines[i] != expected[i] {
			t.Errorf("line %d = %q, want %q", i, res.Lines[i], expected[i])
		}
	}

	if _, ok := res.Macros.Lookup("CLEAR"); !ok {
		t.Error("expected macro CLEAR to be recorded in the macro table")
	}
}

func TestMacroCannotShadowOpcode(t *testing.T) {
	src := "mcro mov\nclr r1\nmcroend\n"
	d := &diag.List{}
	Run(src, d)
	if !d.HasErrors() {
		t.Error("expected an error defining a macro named after an opcode")
	}
}

func TestMacroCannotRedefine(t *testing.T) {
	src := strings.Join([]string{
		"mcro FOO",
		"clr r1",
		"mcroend",
		"mcro FOO",
		"clr r2",
		"mcroend",
	}, "\n")
	d := &diag.List{}
	Run(src, d)
	if !d.HasErrors() {
		t.Error("expected an error redefining macro FOO")
	}
}

func TestUnterminatedMacroReportsError(t *testing.T) {
	src := "mcro FOO\nclr r1\n"
	d := &diag.List{}
	Run(src, d)
	if !d.HasErrors() {
		t.Error("expected an error for an unterminated macro")
	}
}

func TestOverlongLineReportsError(t *testing.T) {
	long := strings.Repeat("a", maxLineLength+1)
	d := &diag.List{}
	Run(long, d)
	if !d.HasErrors() {
		t.Error("expected an error for a line exceeding the max length")
	}
}

func TestPlainLinesPassThroughUnchanged(t *testing.T) {
	src := "MAIN: mov r1, r2\nstop"
	d := &diag.List{}
	res := Run(src, d)
	if d.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", d.String())
	}
	if len(res.Lines) != 2 || res.Lines[0] != "MAIN: mov r1, r2" || res.Lines[1] != "stop" {
		t.Errorf("Lines = %v, want passthrough", res.Lines)
	}
}
