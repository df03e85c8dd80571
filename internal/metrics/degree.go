package metrics

import (
	"github.com/sboxscope/sboxscope/internal/anf"
	"github.com/sboxscope/sboxscope/internal/boolfn"
	"github.com/sboxscope/sboxscope/pkg/types"
)

// AlgebraicDegree returns the largest ANF degree among the 8 output bits
func AlgebraicDegree(s *types.SBox) int {
	max := 0
	for bit := 0; bit < types.Bits; bit++ {
		tt := boolfn.TruthTable(s, boolfn.Bit(bit))
		if d := anf.Degree(tt[:]); d > max {
			max = d
		}
	}
	return max
}
