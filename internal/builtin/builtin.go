// Package builtin provides well-known reference S-boxes.
//
// The AES table is derived, not transcribed: multiplicative inversion in
// GF(2^8) modulo x^8+x^4+x^3+x+1 followed by the Rijndael affine map.
package builtin

import (
	"math/bits"
	"sort"
	"strings"

	"github.com/sboxscope/sboxscope/pkg/types"
)

// Entry describes a built-in table
type Entry struct {
	Name        string
	Description string
	table       func() types.SBox
}

// Table builds the S-box
func (e Entry) Table() types.SBox {
	return e.table()
}

var registry = map[string]Entry{
	"aes": {
		Name:        "aes",
		Description: "AES / Rijndael forward S-box",
		table:       AES,
	},
	"aes-inv": {
		Name:        "aes-inv",
		Description: "AES / Rijndael inverse S-box",
		table:       InverseAES,
	},
	"inversion": {
		Name:        "inversion",
		Description: "Plain GF(2^8) inversion x -> x^254 (AES field, no affine layer)",
		table:       Inversion,
	},
	"identity": {
		Name:        "identity",
		Description: "Identity map x -> x (fully linear, for comparison)",
		table:       Identity,
	},
}

// Lookup returns the named entry; names are case-insensitive
func Lookup(name string) (Entry, bool) {
	e, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// All returns every entry sorted by name
func All() []Entry {
	entries := make([]Entry, 0, len(registry))
	for _, e := range registry {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// aesPoly is x^8 + x^4 + x^3 + x + 1 without the x^8 term
const aesPoly = 0x1B

// gfMul multiplies a and b in GF(2^8)
func gfMul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= aesPoly
		}
		b >>= 1
	}
	return p
}

// gfInverse returns a^254, the multiplicative inverse of a (0 maps to 0)
func gfInverse(a byte) byte {
	result := byte(1)
	base := a
	for e := 254; e > 0; e >>= 1 {
		if e&1 != 0 {
			result = gfMul(result, base)
		}
		base = gfMul(base, base)
	}
	if a == 0 {
		return 0
	}
	return result
}

func affine(b byte) byte {
	return b ^ bits.RotateLeft8(b, 1) ^ bits.RotateLeft8(b, 2) ^
		bits.RotateLeft8(b, 3) ^ bits.RotateLeft8(b, 4) ^ 0x63
}

// AES returns the Rijndael forward S-box
func AES() types.SBox {
	var s types.SBox
	for x := 0; x < types.Size; x++ {
		s[x] = affine(gfInverse(byte(x)))
	}
	return s
}

// InverseAES returns the Rijndael inverse S-box
func InverseAES() types.SBox {
	fwd := AES()
	var inv types.SBox
	for x, y := range fwd {
		inv[y] = byte(x)
	}
	return inv
}

// Inversion returns the bare field inversion map
func Inversion() types.SBox {
	var s types.SBox
	for x := 0; x < types.Size; x++ {
		s[x] = gfInverse(byte(x))
	}
	return s
}

// Identity returns x -> x
func Identity() types.SBox {
	var s types.SBox
	for x := range s {
		s[x] = byte(x)
	}
	return s
}
