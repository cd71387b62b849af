package assemble

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JosefShenhav/wordasm/internal/diag"
	"github.com/JosefShenhav/wordasm/internal/isa"
	"github.com/JosefShenhav/wordasm/internal/lexer"
	"github.com/JosefShenhav/wordasm/internal/symtab"
	"github.com/JosefShenhav/wordasm/internal/words"
)

// RunPass1 walks the preprocessed statement stream, classifying operands,
// emitting code and data words (with unresolved-symbol placeholders), and
// populating the symbol/entry/external tables.
func RunPass1(s *State, lines []string) {
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimRight(raw, " \t")
		trimmedForCheck := strings.TrimLeft(line, " \t")
		if trimmedForCheck == "" || trimmedForCheck[0] == ';' {
			continue
		}
		processStatement(s, line, lineNo)
	}
}

func processStatement(s *State, line string, lineNo int) {
	c := lexer.NewCursor(line)
	c.SkipWhitespace()

	head, hasColon, ok := readHead(c)
	if !ok {
		s.Diags.Errorf(diag.KindUnknownDirective, lineNo, "expected a label, directive, or opcode")
		return
	}

	var label string
	haveLabel := false
	if hasColon {
		label = head[:len(head)-1]
		if len(label) > lexer.MaxSymbolLength {
			s.Diags.Errorf(diag.KindOverlongSymbol, lineNo, "label %q exceeds %d characters", label, lexer.MaxSymbolLength)
			return
		}
		if _, exists := s.Symbols.Lookup(label); exists {
			s.Diags.Errorf(diag.KindDuplicateSymbol, lineNo, "symbol %q already defined", label)
		}
		if _, exists := s.Macros.Lookup(label); exists {
			s.Diags.Errorf(diag.KindNameCollision, lineNo, "label %q collides with a macro name", label)
		}
		haveLabel = true
		c.SkipWhitespace()
		head, _, ok = readHead(c)
		if !ok {
			s.Diags.Errorf(diag.KindUnknownDirective, lineNo, "expected a directive or opcode after label %q", label)
			return
		}
	}

	if strings.HasPrefix(head, ".") {
		processDirective(s, c, head[1:], haveLabel, label, lineNo)
		return
	}

	processInstruction(s, c, head, haveLabel, label, lineNo)
}

// readHead extracts the next statement-head token: an optional leading '.',
// then a letter-initial alphanumeric run, then an optional trailing ':'.
func readHead(c *lexer.Cursor) (token string, hasColon bool, ok bool) {
	start := c.Pos()
	dot := false
	if !c.AtEnd() && c.Rest()[0] == '.' {
		dot = true
		// advance past the dot by re-slicing via a fresh cursor trick:
		*c = *lexer.NewCursor(c.Rest()[1:])
	}
	name, err := c.GetSymbol()
	if err != nil {
		return "", false, false
	}
	colon := false
	if !c.AtEnd() && c.Rest()[0] == ':' {
		colon = true
		*c = *lexer.NewCursor(c.Rest()[1:])
	}
	_ = start
	tok := name
	if dot {
		tok = "." + tok
	}
	if colon {
		tok += ":"
	}
	return tok, colon, true
}

func processDirective(s *State, c *lexer.Cursor, name string, haveLabel bool, label string, lineNo int) {
	switch name {
	case "entry":
		processEntry(s, c, lineNo)
	case "extern":
		processExtern(s, c, lineNo)
	case "data":
		processData(s, c, haveLabel, label, lineNo)
	case "mat":
		processMat(s, c, haveLabel, label, lineNo)
	case "string":
		processString(s, c, haveLabel, label, lineNo)
	default:
		s.Diags.Errorf(diag.KindUnknownDirective, lineNo, "unknown directive %q", name)
	}
}

func processEntry(s *State, c *lexer.Cursor, lineNo int) {
	c.SkipWhitespace()
	name, err := c.GetSymbol()
	if err != nil {
		s.Diags.Errorf(diag.KindBadSymbolName, lineNo, ".entry: %s", err)
		return
	}
	if err := s.Entries.Define(&symtab.Entry{Name: name, SourceLine: lineNo}); err != nil {
		s.Diags.Errorf(diag.KindDuplicateEntry, lineNo, "%s", err)
	}
	checkTrailingGarbage(s, c, lineNo)
}

func processExtern(s *State, c *lexer.Cursor, lineNo int) {
	c.SkipWhitespace()
	name, err := c.GetSymbol()
	if err != nil {
		s.Diags.Errorf(diag.KindBadSymbolName, lineNo, ".extern: %s", err)
		return
	}
	if _, exists := s.Symbols.Lookup(name); exists {
		s.Diags.Errorf(diag.KindDuplicateSymbol, lineNo, "symbol %q already declared", name)
		return
	}
	_ = s.Symbols.Define(&symtab.Symbol{Name: name, Kind: symtab.External, Address: 0})
	checkTrailingGarbage(s, c, lineNo)
}

func processData(s *State, c *lexer.Cursor, haveLabel bool, label string, lineNo int) {
	if haveLabel {
		defineDataSymbol(s, label, lineNo)
	}
	values, err := parseSignedList(c.Rest())
	if err != nil {
		s.Diags.Errorf(diag.KindNumberRange, lineNo, ".data: %s", err)
		return
	}
	for _, v := range values {
		s.Data.Append(&words.DataWord{Address: s.DC, Bits: isa.DecimalToBinary(v, isa.WordBits)})
		s.DC++
	}
}

func processMat(s *State, c *lexer.Cursor, haveLabel bool, label string, lineNo int) {
	if haveLabel {
		defineDataSymbol(s, label, lineNo)
	}
	c.SkipWhitespace()
	rest := c.Rest()
	rows, cols, tail, err := parseMatDims(rest)
	if err != nil {
		s.Diags.Errorf(diag.KindMalformedMatrix, lineNo, ".mat: %s", err)
		return
	}
	cellCount := rows * cols
	values, err := parseSignedList(tail)
	if err != nil && strings.TrimSpace(tail) != "" {
		s.Diags.Errorf(diag.KindNumberRange, lineNo, ".mat: %s", err)
		return
	}
	if len(values) > cellCount {
		s.Diags.Errorf(diag.KindNumberRange, lineNo, ".mat: %d values provided for %d cells", len(values), cellCount)
		return
	}
	for i := 0; i < cellCount; i++ {
		v := 0
		if i < len(values) {
			v = values[i]
		}
		s.Data.Append(&words.DataWord{Address: s.DC, Bits: isa.DecimalToBinary(v, isa.WordBits)})
		s.DC++
	}
}

// parseMatDims parses the leading "[rows][cols]" of a .mat directive's
// operand text, returning the two positive integers and the remaining text.
func parseMatDims(s string) (rows, cols int, tail string, err error) {
	dims := make([]int, 0, 2)
	rest := s
	for i := 0; i < 2; i++ {
		rest = strings.TrimLeft(rest, " \t")
		if len(rest) == 0 || rest[0] != '[' {
			return 0, 0, "", errMalformedMatDims
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return 0, 0, "", errMalformedMatDims
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(rest[1:end]))
		if convErr != nil || n <= 0 {
			return 0, 0, "", errMalformedMatDims
		}
		dims = append(dims, n)
		rest = rest[end+1:]
	}
	return dims[0], dims[1], rest, nil
}

var errMalformedMatDims = &matDimsError{}

type matDimsError struct{}

func (*matDimsError) Error() string { return "malformed [rows][cols]" }

func processString(s *State, c *lexer.Cursor, haveLabel bool, label string, lineNo int) {
	if haveLabel {
		defineDataSymbol(s, label, lineNo)
	}
	c.SkipWhitespace()
	rest := c.Rest()
	if len(rest) == 0 || rest[0] != '"' {
		s.Diags.Errorf(diag.KindUnterminatedString, lineNo, ".string: expected opening quote")
		return
	}
	end := strings.IndexByte(rest[1:], '"')
	if end < 0 {
		s.Diags.Errorf(diag.KindUnterminatedString, lineNo, ".string: missing closing quote")
		return
	}
	content := rest[1 : 1+end]
	for _, r := range content {
		s.Data.Append(&words.DataWord{Address: s.DC, Bits: isa.DecimalToBinary(int(r), isa.WordBits)})
		s.DC++
	}
	s.Data.Append(&words.DataWord{Address: s.DC, Bits: isa.DecimalToBinary(0, isa.WordBits)})
	s.DC++
}

func defineDataSymbol(s *State, label string, lineNo int) {
	if err := s.Symbols.Define(&symtab.Symbol{Name: label, Kind: symtab.Data, Address: s.DC}); err != nil {
		s.Diags.Errorf(diag.KindDuplicateSymbol, lineNo, "%s", err)
	}
}

func checkTrailingGarbage(s *State, c *lexer.Cursor, lineNo int) {
	rest := strings.TrimSpace(c.Rest())
	if rest != "" && rest[0] != ';' {
		s.Diags.Errorf(diag.KindTrailingGarbage, lineNo, "unexpected content %q", rest)
	}
}

func processInstruction(s *State, c *lexer.Cursor, opName string, haveLabel bool, label string, lineNo int) {
	cmd, ok := isa.LookupByName(opName)
	if !ok {
		s.Diags.Errorf(diag.KindUnknownOpcode, lineNo, "unknown opcode %q", opName)
		return
	}
	if haveLabel {
		if err := s.Symbols.Define(&symtab.Symbol{Name: label, Kind: symtab.Code, Address: s.IC}); err != nil {
			s.Diags.Errorf(diag.KindDuplicateSymbol, lineNo, "%s", err)
		}
	}

	tokens, err := readOperandList(c)
	if err != nil {
		s.Diags.Errorf(diag.KindTrailingGarbage, lineNo, "%s", err)
		return
	}
	if len(tokens) != cmd.NumOperands {
		s.Diags.Errorf(diag.KindOperandCount, lineNo, "%s expects %d operand(s), got %d", cmd.Name, cmd.NumOperands, len(tokens))
		return
	}

	var ops [2]operand
	var haveOps [2]bool
	for i, tok := range tokens {
		op, cerr := classifyOperand(tok)
		if cerr != nil {
			s.Diags.Errorf(diag.KindBadRegister, lineNo, "%s", cerr)
			return
		}
		ops[i] = op
		haveOps[i] = true
	}

	var src, dst operand
	var haveSrc, haveDst bool
	switch cmd.NumOperands {
	case 1:
		dst, haveDst = ops[0], true
	case 2:
		src, haveSrc = ops[0], true
		dst, haveDst = ops[1], true
	}

	if haveSrc && !cmd.Src.Allows(src.typ) {
		s.Diags.Errorf(diag.KindOperandType, lineNo, "%s: source operand type forbidden", cmd.Name)
		return
	}
	if haveDst && !cmd.Dst.Allows(dst.typ) {
		s.Diags.Errorf(diag.KindOperandType, lineNo, "%s: destination operand type forbidden", cmd.Name)
		return
	}

	srcTag := 0
	if haveSrc {
		srcTag = int(src.typ)
	}
	dstTag := 0
	if haveDst {
		dstTag = int(dst.typ)
	}
	firstWord := isa.DecimalToBinary(cmd.Opcode, 4) +
		isa.DecimalToBinary(srcTag, 2) +
		isa.DecimalToBinary(dstTag, 2) +
		"00"
	emitCode(s, firstWord, lineNo)

	if haveSrc && haveDst && src.typ == isa.Register && dst.typ == isa.Register {
		// Register-pair optimization: one shared word instead of two.
		word := isa.DecimalToBinary(src.regNum, 4) + isa.DecimalToBinary(dst.regNum, 4) + "00"
		emitCode(s, word, lineNo)
	} else {
		if haveSrc {
			emitOperandWords(s, src, lineNo)
		}
		if haveDst {
			emitOperandWords(s, dst, lineNo)
		}
	}

	checkTrailingGarbage(s, c, lineNo)
}

// readOperandList consumes the cursor's remaining operand list one token at
// a time through lexer.GetOperand, leaving the cursor positioned just past
// the last operand so checkTrailingGarbage sees only what's genuinely left.
func readOperandList(c *lexer.Cursor) ([]string, error) {
	c.SkipWhitespace()
	if c.AtEnd() || c.Rest()[0] == ';' {
		return nil, nil
	}
	var tokens []string
	for {
		tok, err := c.GetOperand()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		c.SkipWhitespace()
		if c.AtEnd() || c.Rest()[0] != ',' {
			break
		}
		*c = *lexer.NewCursor(c.Rest()[1:])
		c.SkipWhitespace()
		if c.AtEnd() || c.Rest()[0] == ',' {
			return nil, fmt.Errorf("empty operand between commas")
		}
	}
	return tokens, nil
}

func emitOperandWords(s *State, op operand, lineNo int) {
	switch op.typ {
	case isa.Immediate:
		word := isa.DecimalToBinary(op.immValue, 8) + "00"
		emitCode(s, word, lineNo)
	case isa.Symbol:
		emitUnresolved(s, op.text, lineNo)
	case isa.Matrix:
		emitUnresolved(s, op.matName, lineNo)
		word := isa.DecimalToBinary(op.regNum, 4) + isa.DecimalToBinary(op.colReg, 4) + "00"
		emitCode(s, word, lineNo)
	case isa.Register:
		// The register number always goes in the high nibble regardless of
		// source/destination position; the low nibble is zero.
		word := isa.DecimalToBinary(op.regNum, 4) + "0000" + "00"
		emitCode(s, word, lineNo)
	}
}

func emitCode(s *State, bits string, lineNo int) {
	s.Code.Append(&words.CodeWord{Address: s.IC, Payload: words.Resolved(bits), SourceLine: lineNo})
	s.IC++
}

func emitUnresolved(s *State, name string, lineNo int) {
	s.Code.Append(&words.CodeWord{Address: s.IC, Payload: words.Unresolved(name), SourceLine: lineNo})
	s.IC++
}
