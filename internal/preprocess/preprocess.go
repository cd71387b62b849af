// Package preprocess rewrites raw assembler source into a macro-expanded
// stream: mcro/mcroend definitions are stripped and invocations are
// replaced by their bodies, verbatim, with no nesting or recursion.
package preprocess

import (
	"strings"

	"github.com/JosefShenhav/wordasm/internal/diag"
	"github.com/JosefShenhav/wordasm/internal/isa"
	"github.com/JosefShenhav/wordasm/internal/lexer"
	"github.com/JosefShenhav/wordasm/internal/macro"
)

const (
	macroKeyword    = "mcro"
	macroEndKeyword = "mcroend"
	maxLineLength   = 80
)

// reservedNames are directive/keyword names a macro may never shadow, in
// addition to any opcode name.
var reservedNames = []string{"entry", "extern", "data", "mat", "string", macroKeyword}

func isReserved(name string) bool {
	if _, ok := isa.LookupByName(name); ok {
		return true
	}
	for _, r := range reservedNames {
		if r == name {
			return true
		}
	}
	return false
}

// Result is the preprocessor's output: the expanded text (one statement per
// line) and the macro table built along the way.
type Result struct {
	Lines  []string
	Macros *macro.Table
}

// Run preprocesses raw source text, line by line, writing diagnostics to d.
func Run(source string, d *diag.List) *Result {
	macros := macro.NewTable()
	var out []string

	var insideMacro bool
	var currentBody []string
	var currentName string

	rawLines := strings.Split(normalizeNewlines(source), "\n")
	for i, raw := range rawLines {
		lineNo := i + 1
		line := raw
		if len(line) > maxLineLength {
			d.Errorf(diag.KindOverlongLine, lineNo, "line exceeds %d characters", maxLineLength)
			continue
		}

		trimmed := strings.TrimRight(line, " \t")
		c := lexer.NewCursor(trimmed)
		c.SkipWhitespace()

		if insideMacro {
			if isMacroEnd(c) {
				if err := macros.Define(&macro.Macro{Name: currentName, Body: currentBody}); err != nil {
					d.Errorf(diag.KindBadMacroName, lineNo, "%s", err)
				}
				insideMacro = false
				currentBody = nil
				currentName = ""
				continue
			}
			currentBody = append(currentBody, line)
			continue
		}

		if isMacroEnd(c) {
			d.Errorf(diag.KindBadMacroName, lineNo, "%q without a matching %q", macroEndKeyword, macroKeyword)
			continue
		}

		if name, remainder, ok := tryMacroStart(c.Rest()); ok {
			if isReserved(name) {
				d.Errorf(diag.KindBadMacroName, lineNo, "macro name %q collides with a command or directive", name)
				continue
			}
			if _, exists := macros.Lookup(name); exists {
				d.Errorf(diag.KindBadMacroName, lineNo, "macro %q already defined", name)
				continue
			}
			if strings.TrimSpace(remainder) != "" {
				d.Errorf(diag.KindBadMacroName, lineNo, "unexpected content after macro name %q", name)
				continue
			}
			insideMacro = true
			currentName = name
			currentBody = nil
			continue
		}

		// Regular line: substitute if the first token names a known macro.
		c2 := lexer.NewCursor(trimmed)
		c2.SkipWhitespace()
		wordLen := c2.WordLength()
		if m, ok := macros.LookupPrefix(c2.Rest(), wordLen); ok {
			rest := c2.Rest()[wordLen:]
			if strings.TrimSpace(rest) == "" {
				out = append(out, m.Body...)
				continue
			}
		}
		out = append(out, trimmed)
	}

	if insideMacro {
		d.Errorf(diag.KindBadMacroName, len(rawLines), "unterminated macro %q", currentName)
	}

	return &Result{Lines: out, Macros: macros}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// isMacroEnd reports whether the cursor's line, after skipping whitespace,
// is exactly the mcroend keyword followed only by whitespace.
func isMacroEnd(c *lexer.Cursor) bool {
	rest := c.Rest()
	if !strings.HasPrefix(rest, macroEndKeyword) {
		return false
	}
	after := rest[len(macroEndKeyword):]
	return strings.TrimSpace(after) == ""
}

// tryMacroStart reports whether rest starts with the mcro keyword followed
// by whitespace and a name. On success it returns the name and whatever
// text follows the name on the line.
func tryMacroStart(rest string) (name, remainder string, ok bool) {
	if !strings.HasPrefix(rest, macroKeyword) {
		return "", "", false
	}
	after := rest[len(macroKeyword):]
	if after == "" || !(after[0] == ' ' || after[0] == '\t') {
		return "", "", false
	}
	sub := lexer.NewCursor(after)
	sub.SkipWhitespace()
	name, err := sub.GetMacroName()
	if err != nil || name == "" {
		return "", "", false
	}
	return name, sub.Rest(), true
}
