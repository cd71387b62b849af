package assemble

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JosefShenhav/wordasm/internal/isa"
	"github.com/JosefShenhav/wordasm/internal/lexer"
)

// operand is one classified operand token from a statement's operand list.
type operand struct {
	typ      isa.OperandType
	text     string // full raw token, e.g. "#5", "r3", "X", "M[r1][r2]"
	regNum   int    // valid when typ == Register, or the row register for Matrix
	colReg   int    // valid when typ == Matrix
	matName  string // valid when typ == Matrix: the base symbol name
	immValue int    // valid when typ == Immediate
}

// classifyOperand determines an operand's type from its raw token, per
// §4.5's classification rules: '#' prefix is Immediate; "r"+digit 0..7 is
// Register (digit outside 0..7 is an error); an identifier immediately
// followed by "[...][...]" is Matrix; anything else is Symbol.
func classifyOperand(tok string) (operand, error) {
	if tok == "" {
		return operand{}, fmt.Errorf("empty operand")
	}
	if tok[0] == '#' {
		v, err := strconv.Atoi(tok[1:])
		if err != nil {
			return operand{}, fmt.Errorf("malformed immediate %q", tok)
		}
		return operand{typ: isa.Immediate, text: tok, immValue: v}, nil
	}
	if isRegisterToken(tok) {
		n := int(tok[1] - '0')
		if n < 0 || n > 7 {
			return operand{}, fmt.Errorf("register number out of range in %q", tok)
		}
		return operand{typ: isa.Register, text: tok, regNum: n}, nil
	}
	if isAllDigitsAfterR(tok) {
		// "r" followed only by digits, but not a single digit 0..7: malformed register.
		return operand{}, fmt.Errorf("bad register operand %q", tok)
	}
	if idx := strings.IndexByte(tok, '['); idx > 0 {
		name := tok[:idx]
		row, col, err := parseMatrixSubscripts(tok[idx:])
		if err != nil {
			return operand{}, err
		}
		return operand{typ: isa.Matrix, text: tok, matName: name, regNum: row, colReg: col}, nil
	}
	return operand{typ: isa.Symbol, text: tok}, nil
}

func isRegisterToken(tok string) bool {
	return len(tok) == 2 && tok[0] == 'r' && tok[1] >= '0' && tok[1] <= '7'
}

// isAllDigitsAfterR reports whether tok is "r" followed by one or more
// decimal digits and nothing else (so "r8", "r9", "r12" are malformed
// registers, while "r2x" is left to be classified as a plain symbol).
func isAllDigitsAfterR(tok string) bool {
	if len(tok) < 2 || tok[0] != 'r' {
		return false
	}
	for i := 1; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return !isRegisterToken(tok)
}

// parseMatrixSubscripts parses "[rX][rY]" where X and Y are register
// numbers 0..7, returning both register numbers.
func parseMatrixSubscripts(s string) (row, col int, err error) {
	parts := []int{}
	rest := s
	for i := 0; i < 2; i++ {
		if len(rest) == 0 || rest[0] != '[' {
			return 0, 0, fmt.Errorf("malformed matrix subscript in %q", s)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return 0, 0, fmt.Errorf("unterminated matrix subscript in %q", s)
		}
		inner := rest[1:end]
		if !isRegisterToken(inner) {
			return 0, 0, fmt.Errorf("matrix subscript %q is not a register r0..r7", inner)
		}
		parts = append(parts, int(inner[1]-'0'))
		rest = rest[end+1:]
	}
	if rest != "" {
		return 0, 0, fmt.Errorf("unexpected trailing content %q after matrix subscripts", rest)
	}
	return parts[0], parts[1], nil
}

// parseSignedList parses a comma-separated list of signed decimals, each
// required to be in [-512, 511], validating comma placement (no leading
// garbage, no trailing comma, no missing comma between numbers).
func parseSignedList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("expected at least one value")
	}
	if strings.HasSuffix(s, ",") {
		return nil, fmt.Errorf("trailing comma")
	}
	if strings.Contains(s, ",,") {
		return nil, fmt.Errorf("missing value between commas")
	}
	var values []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("missing value before comma")
		}
		c := lexer.NewCursor(part)
		numTok, ok := c.CopyNumber()
		if !ok || !c.AtEnd() {
			return nil, fmt.Errorf("malformed number %q", part)
		}
		n, err := strconv.Atoi(numTok)
		if err != nil {
			return nil, fmt.Errorf("malformed number %q", part)
		}
		if n < -512 || n > 511 {
			return nil, fmt.Errorf("value %d out of range [-512, 511]", n)
		}
		values = append(values, n)
	}
	return values, nil
}
