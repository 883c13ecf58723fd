package parser

import (
	"strings"
	"unicode"

	"github.com/mdt-route/backend/internal/models"
)

// PrintSafeAlphabet is the 64-symbol alphabet used by planner exports.
// A symbol's position is its 6-bit value.
const PrintSafeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789()"

// invalidSymbol marks bytes outside the alphabet in symbolTable.
const invalidSymbol = 0xFF

var symbolTable = buildSymbolTable()

func buildSymbolTable() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = invalidSymbol
	}
	for i := 0; i < len(PrintSafeAlphabet); i++ {
		t[PrintSafeAlphabet[i]] = byte(i)
	}
	return t
}

// trimPrintSafe strips whitespace and ASCII control characters from both ends.
func trimPrintSafe(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r < 0x20 || unicode.IsSpace(r)
	})
}

// DecodeForPrint converts a print-safe string into the bytes it encodes.
// Every 4 symbols yield 3 bytes, least-significant byte first. A tail of
// 2 or 3 symbols yields 1 or 2 bytes; a single trailing symbol carries
// fewer than 8 bits and yields nothing.
func DecodeForPrint(text string) ([]byte, error) {
	s := trimPrintSafe(text)
	if s == "" {
		return nil, models.NewDecodeError(models.KindEmptyInput, "input is empty after trimming")
	}

	out := make([]byte, 0, len(s)/4*3+2)

	i := 0
	for ; i+4 <= len(s); i += 4 {
		var cache uint32
		for j := 0; j < 4; j++ {
			v := symbolTable[s[i+j]]
			if v == invalidSymbol {
				return nil, invalidSymbolError(s, i+j)
			}
			cache |= uint32(v) << (6 * j)
		}
		out = append(out, byte(cache), byte(cache>>8), byte(cache>>16))
	}

	var cache uint32
	bitlen := 0
	for ; i < len(s); i++ {
		v := symbolTable[s[i]]
		if v == invalidSymbol {
			return nil, invalidSymbolError(s, i)
		}
		cache |= uint32(v) << bitlen
		bitlen += 6
	}
	for bitlen >= 8 {
		out = append(out, byte(cache))
		cache >>= 8
		bitlen -= 8
	}

	return out, nil
}

func invalidSymbolError(s string, pos int) *models.DecodeError {
	return models.NewDecodeErrorAt(models.KindInvalidSymbol, pos, "invalid symbol %q", s[pos])
}
