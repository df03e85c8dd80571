package metrics

import (
	"math"

	"github.com/sboxscope/sboxscope/internal/boolfn"
	"github.com/sboxscope/sboxscope/internal/walsh"
	"github.com/sboxscope/sboxscope/pkg/types"
)

// NonlinearityOf returns 2^7 - max|W(a)|/2 for one component function.
// W(0) takes part in the maximum.
func NonlinearityOf(f *boolfn.Signs) int {
	return types.Size/2 - walsh.MaxAbs(walsh.Transform(f[:]))/2
}

// Nonlinearity returns the smallest nonlinearity among the 8 output bits
func Nonlinearity(s *types.SBox) int {
	min := math.MaxInt
	for bit := 0; bit < types.Bits; bit++ {
		f := boolfn.Extract(s, boolfn.Bit(bit))
		if nl := NonlinearityOf(&f); nl < min {
			min = nl
		}
	}
	return min
}

// Pairs returns the 28 unordered pairs (i, j), i < j, of output bits
func Pairs() [][2]int {
	pairs := make([][2]int, 0, types.Bits*(types.Bits-1)/2)
	for i := 0; i < types.Bits; i++ {
		for j := i + 1; j < types.Bits; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// PairNonlinearities returns the nonlinearity of f_i XOR f_j for every pair, in Pairs order
func PairNonlinearities(s *types.SBox) []int {
	pairs := Pairs()
	out := make([]int, len(pairs))
	for n, p := range pairs {
		f := boolfn.Extract(s, boolfn.Pair(p[0], p[1]))
		out[n] = NonlinearityOf(&f)
	}
	return out
}

// BICNL returns the minimum pairwise nonlinearity
func BICNL(s *types.SBox) int {
	min := math.MaxInt
	for _, nl := range PairNonlinearities(s) {
		if nl < min {
			min = nl
		}
	}
	return min
}

// BICNLAverage returns the mean pairwise nonlinearity
func BICNLAverage(s *types.SBox) float64 {
	nls := PairNonlinearities(s)
	sum := 0
	for _, nl := range nls {
		sum += nl
	}
	return float64(sum) / float64(len(nls))
}

// CorrelationImmunity returns the smallest correlation-immunity order among
// the output bits. A bit function has order m when W(a) = 0 for every mask a
// of weight 1..m.
func CorrelationImmunity(s *types.SBox) int {
	min := types.Bits
	for bit := 0; bit < types.Bits; bit++ {
		f := boolfn.Extract(s, boolfn.Bit(bit))
		if ci := correlationImmunityOf(walsh.Transform(f[:])); ci < min {
			min = ci
		}
	}
	return min
}

func correlationImmunityOf(spectrum []int) int {
	var nonzero [types.Bits + 1]bool
	for a := 1; a < len(spectrum); a++ {
		if spectrum[a] != 0 {
			nonzero[weight(a)] = true
		}
	}

	order := 0
	for m := 1; m <= types.Bits; m++ {
		if nonzero[m] {
			break
		}
		order = m
	}
	return order
}
