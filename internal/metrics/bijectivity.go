package metrics

import (
	"github.com/sboxscope/sboxscope/internal/boolfn"
	"github.com/sboxscope/sboxscope/pkg/types"
)

// IsBijective reports whether values is a permutation of [0,255]:
// exactly 256 entries, all in range, all distinct.
func IsBijective(values []int) bool {
	if len(values) != types.Size {
		return false
	}
	var seen [types.Size]bool
	for _, v := range values {
		if v < 0 || v >= types.Size || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Bijective reports whether the S-box is a permutation
func Bijective(s *types.SBox) bool {
	return IsBijective(s.Ints())
}

// Balanced reports whether every output bit is 1 for exactly half of the inputs
func Balanced(s *types.SBox) bool {
	for bit := 0; bit < types.Bits; bit++ {
		if boolfn.TruthTable(s, boolfn.Bit(bit)).Weight() != types.Size/2 {
			return false
		}
	}
	return true
}

// CheckPermutation lists the values that are missing from, or repeated in, the table
func CheckPermutation(s *types.SBox) types.PermutationCheck {
	var counts [types.Size]int
	for _, v := range s {
		counts[v]++
	}

	check := types.PermutationCheck{
		Missing:    []int{},
		Duplicates: []int{},
	}
	for v, c := range counts {
		switch {
		case c == 0:
			check.Missing = append(check.Missing, v)
		case c > 1:
			check.Duplicates = append(check.Duplicates, v)
		}
	}
	return check
}
