package metrics

import (
	"github.com/sboxscope/sboxscope/internal/ddt"
	"github.com/sboxscope/sboxscope/pkg/types"
)

// DifferentialUniformity returns the largest DDT entry over nonzero input differences
func DifferentialUniformity(s *types.SBox) int {
	return ddt.MaxCount(s)
}

// DAP returns DifferentialUniformity / 256
func DAP(s *types.SBox) float64 {
	return DAPFrom(DifferentialUniformity(s))
}

// DAPFrom converts a differential uniformity into a probability
func DAPFrom(du int) float64 {
	return float64(du) / types.Size
}
