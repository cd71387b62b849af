package lexer

import "testing"

func TestSkipWhitespace(t *testing.T) {
	c := NewCursor("   \tfoo")
	c.SkipWhitespace()
	if c.Rest() != "foo" {
		t.Errorf("Rest() = %q, want %q", c.Rest(), "foo")
	}
}

func TestCopyNumber(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantOk  bool
	}{
		{"123", "123", true},
		{"-5", "-5", true},
		{"+5", "+5", true},
		{"abc", "", false},
		{"-", "", false},
	}
	for _, c := range cases {
		cur := NewCursor(c.in)
		got, ok := cur.CopyNumber()
		if ok != c.wantOk || got != c.want {
			t.Errorf("CopyNumber(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOk)
		}
	}
}

func TestGetSymbol(t *testing.T) {
	cur := NewCursor("LOOP1 mov")
	name, err := cur.GetSymbol()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "LOOP1" {
		t.Errorf("GetSymbol() = %q, want %q", name, "LOOP1")
	}
	if cur.Rest() != " mov" {
		t.Errorf("Rest() after GetSymbol = %q", cur.Rest())
	}
}

func TestGetSymbolRejectsUnderscore(t *testing.T) {
	cur := NewCursor("foo_bar")
	name, err := cur.GetSymbol()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "foo" {
		t.Errorf("GetSymbol() should stop before underscore, got %q", name)
	}
}

func TestGetSymbolMustStartWithLetter(t *testing.T) {
	cur := NewCursor("1abc")
	if _, err := cur.GetSymbol(); err == nil {
		t.Error("expected error for digit-initial symbol")
	}
}

func TestGetSymbolTooLong(t *testing.T) {
	long := ""
	for i := 0; i < MaxSymbolLength+1; i++ {
		long += "a"
	}
	cur := NewCursor(long)
	if _, err := cur.GetSymbol(); err == nil {
		t.Error("expected error for overlong symbol")
	}
}

func TestGetMacroNameAllowsUnderscore(t *testing.T) {
	cur := NewCursor("my_macro rest")
	name, err := cur.GetMacroName()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "my_macro" {
		t.Errorf("GetMacroName() = %q, want %q", name, "my_macro")
	}
}

func TestGetOperandPlain(t *testing.T) {
	cur := NewCursor("r3, r5")
	op, err := cur.GetOperand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != "r3" {
		t.Errorf("GetOperand() = %q, want %q", op, "r3")
	}
}

func TestGetOperandImmediate(t *testing.T) {
	cur := NewCursor("#-5")
	op, err := cur.GetOperand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != "#-5" {
		t.Errorf("GetOperand() = %q, want %q", op, "#-5")
	}
}

func TestGetOperandMatrix(t *testing.T) {
	cur := NewCursor("M[r1][r2] ;comment")
	op, err := cur.GetOperand()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != "M[r1][r2]" {
		t.Errorf("GetOperand() = %q, want %q", op, "M[r1][r2]")
	}
}

func TestWordLength(t *testing.T) {
	cur := NewCursor("mcro  FOO")
	if n := cur.WordLength(); n != 4 {
		t.Errorf("WordLength() = %d, want 4", n)
	}
}
