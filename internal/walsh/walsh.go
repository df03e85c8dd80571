// Package walsh implements the fast Walsh-Hadamard transform.
package walsh

import "fmt"

// Transform returns the Walsh-Hadamard spectrum of in, in natural (Hadamard)
// order: out[a] = sum over x of in[x] * (-1)^popcount(a&x).
//
// The butterflies are the iterative form of the radix-2 split: transform each
// half, then emit elementwise sums followed by elementwise differences.
// len(in) must be a power of two; anything else panics. in is not modified.
func Transform(in []int) []int {
	n := len(in)
	if n == 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("walsh: length %d is not a power of two", n))
	}

	out := make([]int, n)
	copy(out, in)

	for h := 1; h < n; h <<= 1 {
		for i := 0; i < n; i += h << 1 {
			for j := i; j < i+h; j++ {
				a, b := out[j], out[j+h]
				out[j] = a + b
				out[j+h] = a - b
			}
		}
	}

	return out
}

// MaxAbs returns the largest absolute coefficient of a spectrum
func MaxAbs(spectrum []int) int {
	max := 0
	for _, w := range spectrum {
		if w < 0 {
			w = -w
		}
		if w > max {
			max = w
		}
	}
	return max
}
