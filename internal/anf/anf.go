// Package anf computes the algebraic normal form of boolean functions
// with the binary Möbius transform.
package anf

import (
	"fmt"
	"math/bits"
)

// Transform returns the ANF coefficients of the truth table f.
// out[w] is the coefficient of the monomial whose variables are the bits set
// in w. Only the low bit of each entry is used. len(f) must be a power of two.
func Transform(f []uint8) []uint8 {
	n := len(f)
	if n == 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("anf: length %d is not a power of two", n))
	}

	out := make([]uint8, n)
	for i, v := range f {
		out[i] = v & 1
	}

	// One pass per input variable; j^bit < j is already final for this pass.
	for bit := 1; bit < n; bit <<= 1 {
		for j := 0; j < n; j++ {
			if j&bit != 0 {
				out[j] ^= out[j^bit]
			}
		}
	}

	return out
}

// Degree returns the algebraic degree of the truth table f: the largest
// monomial weight with a nonzero ANF coefficient. Constants have degree 0.
func Degree(f []uint8) int {
	return DegreeOf(Transform(f))
}

// DegreeOf returns the degree of an already computed ANF
func DegreeOf(coeffs []uint8) int {
	deg := 0
	for w, c := range coeffs {
		if c == 0 {
			continue
		}
		if d := bits.OnesCount(uint(w)); d > deg {
			deg = d
		}
	}
	return deg
}
