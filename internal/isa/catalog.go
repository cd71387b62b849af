// Package isa defines the fixed instruction-set surface: the 16-opcode
// command catalog, operand-type tags, and the binary/base-4 encoders every
// pass and the writer depend on.
package isa

// OperandType is the 2-bit tag identifying an operand's kind. The numeric
// values are load-bearing: they are packed directly into the first
// instruction word's source/destination tag fields.
type OperandType int

const (
	Immediate OperandType = 0
	Symbol    OperandType = 1
	Matrix    OperandType = 2
	Register  OperandType = 3
)

// OperandTypeSet is a bitmask over the four OperandType values.
type OperandTypeSet uint8

func setOf(types ...OperandType) OperandTypeSet {
	var s OperandTypeSet
	for _, t := range types {
		s |= 1 << uint(t)
	}
	return s
}

func (s OperandTypeSet) Allows(t OperandType) bool {
	return s&(1<<uint(t)) != 0
}

// Command describes one opcode's operand arity and allowed operand types
// per position.
type Command struct {
	Name        string
	Opcode      int
	NumOperands int
	Src         OperandTypeSet
	Dst         OperandTypeSet
}

var both = setOf(Immediate, Symbol, Matrix, Register)
var dstOnly = setOf(Symbol, Matrix, Register)
var srcLea = setOf(Symbol, Matrix)
var none OperandTypeSet

// Catalog is the static, immutable 16-entry command table indexed by opcode.
var Catalog = [16]Command{
	{Name: "mov", Opcode: 0, NumOperands: 2, Src: both, Dst: dstOnly},
	{Name: "cmp", Opcode: 1, NumOperands: 2, Src: both, Dst: both},
	{Name: "add", Opcode: 2, NumOperands: 2, Src: both, Dst: dstOnly},
	{Name: "sub", Opcode: 3, NumOperands: 2, Src: both, Dst: dstOnly},
	{Name: "lea", Opcode: 4, NumOperands: 2, Src: srcLea, Dst: dstOnly},
	{Name: "clr", Opcode: 5, NumOperands: 1, Src: none, Dst: dstOnly},
	{Name: "not", Opcode: 6, NumOperands: 1, Src: none, Dst: dstOnly},
	{Name: "inc", Opcode: 7, NumOperands: 1, Src: none, Dst: dstOnly},
	{Name: "dec", Opcode: 8, NumOperands: 1, Src: none, Dst: dstOnly},
	{Name: "jmp", Opcode: 9, NumOperands: 1, Src: none, Dst: dstOnly},
	{Name: "bne", Opcode: 10, NumOperands: 1, Src: none, Dst: dstOnly},
	{Name: "jsr", Opcode: 11, NumOperands: 1, Src: none, Dst: dstOnly},
	{Name: "red", Opcode: 12, NumOperands: 1, Src: none, Dst: dstOnly},
	{Name: "prn", Opcode: 13, NumOperands: 1, Src: none, Dst: both},
	{Name: "rts", Opcode: 14, NumOperands: 0, Src: none, Dst: none},
	{Name: "stop", Opcode: 15, NumOperands: 0, Src: none, Dst: none},
}

// LookupByName performs the linear scan the original assembler used; the
// catalog is small and static so there is no benefit to a map.
func LookupByName(name string) (*Command, bool) {
	for i := range Catalog {
		if Catalog[i].Name == name {
			return &Catalog[i], true
		}
	}
	return nil, false
}

// Directives are the non-opcode '.'-prefixed statement heads.
var Directives = []string{"entry", "extern", "data", "mat", "string"}

func IsDirectiveName(name string) bool {
	for _, d := range Directives {
		if d == name {
			return true
		}
	}
	return false
}
