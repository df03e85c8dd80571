// Package boolfn derives boolean component functions from an S-box.
//
// A component function is selected by a single output bit, the XOR of two
// output bits, or an output mask applied as a dot product over GF(2). Each
// function is available as a 0/1 truth table or as the ±1 sign sequence
// (-1)^f(x) consumed by the Walsh-Hadamard transform.
package boolfn

import (
	"fmt"
	"math/bits"

	"github.com/sboxscope/sboxscope/pkg/types"
)

// Truth is a truth table: Truth[x] = f(x) in {0,1}
type Truth [types.Size]uint8

// Signs is the polar form of a boolean function: Signs[x] = (-1)^f(x)
type Signs [types.Size]int

// Selector maps an S-box output byte to one bit
type Selector func(y byte) uint8

// Bit selects output bit i (0 = least significant).
// Panics if i is outside [0,7].
func Bit(i int) Selector {
	checkBit(i)
	shift := uint(i)
	return func(y byte) uint8 {
		return (y >> shift) & 1
	}
}

// Pair selects bit i XOR bit j of the output.
// Panics if either index is outside [0,7] or if i == j.
func Pair(i, j int) Selector {
	checkBit(i)
	checkBit(j)
	if i == j {
		panic(fmt.Sprintf("boolfn: pair selector needs distinct bits, got %d twice", i))
	}
	mask := byte(1)<<uint(i) | byte(1)<<uint(j)
	return Mask(mask)
}

// Mask selects the parity of (mask AND output), i.e. the dot product mod 2
func Mask(mask byte) Selector {
	return func(y byte) uint8 {
		return uint8(bits.OnesCount8(mask&y) & 1)
	}
}

func checkBit(i int) {
	if i < 0 || i >= types.Bits {
		panic(fmt.Sprintf("boolfn: output bit index %d out of range [0,%d]", i, types.Bits-1))
	}
}

// TruthTable evaluates sel over every input of s
func TruthTable(s *types.SBox, sel Selector) Truth {
	var t Truth
	for x, y := range s {
		t[x] = sel(y)
	}
	return t
}

// Extract returns the ±1 sign sequence of the selected component function
func Extract(s *types.SBox, sel Selector) Signs {
	return TruthTable(s, sel).Signs()
}

// Signs converts a truth table to polar form: 0 -> +1, 1 -> -1
func (t Truth) Signs() Signs {
	var f Signs
	for x, v := range t {
		if v == 0 {
			f[x] = 1
		} else {
			f[x] = -1
		}
	}
	return f
}

// Weight returns the number of inputs where the function is 1
func (t Truth) Weight() int {
	w := 0
	for _, v := range t {
		w += int(v & 1)
	}
	return w
}
