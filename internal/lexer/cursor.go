// Package lexer provides the cursor-based lexical primitives the assembler's
// passes parse statements with: whitespace skipping, number/identifier/
// operand extraction, and word-length probing.
package lexer

import "fmt"

// MaxSymbolLength is the longest a symbol may be. GetMacroName does not
// apply it.
const MaxSymbolLength = 30

// Cursor is a read position within a single line buffer. Each method
// advances the cursor on success and leaves it unmoved on failure.
type Cursor struct {
	line string
	pos  int
}

// NewCursor wraps a line buffer for lexing.
func NewCursor(line string) *Cursor {
	return &Cursor{line: line}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Rest returns the unconsumed remainder of the line.
func (c *Cursor) Rest() string { return c.line[c.pos:] }

// AtEnd reports whether the cursor has consumed the whole line.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.line) }

func (c *Cursor) peek() byte {
	if c.AtEnd() {
		return 0
	}
	return c.line[c.pos]
}

func isSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }
func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool      { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isAlnum(b byte) bool      { return isAlpha(b) || isDigit(b) }

// SkipWhitespace advances past spaces and tabs.
func (c *Cursor) SkipWhitespace() {
	for !c.AtEnd() && isSpaceOrTab(c.peek()) {
		c.pos++
	}
}

// CopyNumber reads an optional leading '+'/'-' followed by one or more
// decimal digits. It fails (returning false, cursor unmoved) if no digits
// follow the sign.
func (c *Cursor) CopyNumber() (string, bool) {
	start := c.pos
	p := c.pos
	if p < len(c.line) && (c.line[p] == '+' || c.line[p] == '-') {
		p++
	}
	digitsStart := p
	for p < len(c.line) && isDigit(c.line[p]) {
		p++
	}
	if p == digitsStart {
		return "", false
	}
	c.pos = p
	return c.line[start:p], true
}

// GetSymbol reads an identifier starting with a letter and continuing with
// letters or digits only (no underscore: that asymmetry is reserved for
// macro names). Fails if longer than MaxSymbolLength.
func (c *Cursor) GetSymbol() (string, error) {
	start := c.pos
	if c.AtEnd() || !isAlpha(c.peek()) {
		return "", fmt.Errorf("symbol must start with a letter")
	}
	p := c.pos + 1
	for p < len(c.line) && isAlnum(c.line[p]) {
		p++
	}
	name := c.line[start:p]
	if len(name) > MaxSymbolLength {
		return "", fmt.Errorf("symbol %q exceeds %d characters", name, MaxSymbolLength)
	}
	c.pos = p
	return name, nil
}

// GetMacroName reads an identifier starting with a letter and continuing
// with letters, digits, or underscores — the one place underscores are
// legal in a name.
func (c *Cursor) GetMacroName() (string, error) {
	start := c.pos
	if c.AtEnd() || !isAlpha(c.peek()) {
		return "", fmt.Errorf("macro name must start with a letter")
	}
	p := c.pos + 1
	for p < len(c.line) && (isAlnum(c.line[p]) || c.line[p] == '_') {
		p++
	}
	c.pos = p
	return c.line[start:p], nil
}

// GetOperand reads one operand token: an optional '#' prefix (then optional
// sign), then letters/digits, then, if a '[' follows (possibly after
// whitespace), a matching pair of bracketed subscripts.
func (c *Cursor) GetOperand() (string, error) {
	start := c.pos
	p := c.pos
	if p < len(c.line) && c.line[p] == '#' {
		p++
		if p < len(c.line) && (c.line[p] == '+' || c.line[p] == '-') {
			p++
		}
	}
	for p < len(c.line) && isAlnum(c.line[p]) {
		p++
	}
	if p == start {
		return "", fmt.Errorf("empty operand")
	}
	// Look ahead (skipping whitespace) for a bracketed matrix subscript pair.
	q := p
	for q < len(c.line) && isSpaceOrTab(c.line[q]) {
		q++
	}
	if q < len(c.line) && c.line[q] == '[' {
		end, ok := skipBracketPairs(c.line, q, 2)
		if ok {
			p = end
		}
	}
	c.pos = p
	return c.line[start:p], nil
}

// skipBracketPairs consumes exactly n consecutive "[...]" groups (whitespace
// allowed between them) starting at pos, returning the position just past
// the last closing bracket.
func skipBracketPairs(s string, pos, n int) (int, bool) {
	p := pos
	for i := 0; i < n; i++ {
		for p < len(s) && isSpaceOrTab(s[p]) {
			p++
		}
		if p >= len(s) || s[p] != '[' {
			return pos, false
		}
		p++
		for p < len(s) && s[p] != ']' {
			p++
		}
		if p >= len(s) {
			return pos, false
		}
		p++ // consume ']'
	}
	return p, true
}

// WordLength returns the length of the leading non-whitespace run from the
// current position, without advancing the cursor. Used to probe a raw line
// for a macro invocation without allocating a copy.
func (c *Cursor) WordLength() int {
	p := c.pos
	for p < len(c.line) && !isSpaceOrTab(c.line[p]) {
		p++
	}
	return p - c.pos
}
