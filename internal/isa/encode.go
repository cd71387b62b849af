package isa

import (
	"fmt"
	"strings"
)

// WordBits is the machine word width in bits.
const WordBits = 10

// base4Alphabet maps digit values 0..3 to the letters used in every output
// file.
const base4Alphabet = "abcd"

// DecimalToBinary produces a fixed-width two's-complement binary string of
// exactly width characters, MSB first.
func DecimalToBinary(n, width int) string {
	mask := 1 << uint(width-1)
	var sb strings.Builder
	for b := mask; b > 0; b >>= 1 {
		if n&b != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// DecimalToBase4 produces a nonempty base-4 string using the alphabet
// a,b,c,d for digits 0,1,2,3. Zero encodes as "a". Negative input yields
// an empty string; callers encode only nonnegative addresses/values
// through this function.
func DecimalToBase4(n int) string {
	if n == 0 {
		return "a"
	}
	var digits []byte
	for n > 0 {
		digits = append(digits, base4Alphabet[n%4])
		n /= 4
	}
	// digits were accumulated least-significant first; reverse.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// BinaryToBase4 requires an even-length binary string; it groups bits
// MSB-first two at a time and maps each pair to one base-4 character.
func BinaryToBase4(bits string) (string, error) {
	if len(bits)%2 != 0 {
		return "", fmt.Errorf("binary string length %d is not even", len(bits))
	}
	var sb strings.Builder
	for i := 0; i < len(bits); i += 2 {
		var v int
		for j := 0; j < 2; j++ {
			v <<= 1
			switch bits[i+j] {
			case '1':
				v |= 1
			case '0':
			default:
				return "", fmt.Errorf("non-binary character %q at offset %d", bits[i+j], i+j)
			}
		}
		sb.WriteByte(base4Alphabet[v])
	}
	return sb.String(), nil
}
