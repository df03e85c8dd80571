package metrics

import (
	"github.com/sboxscope/sboxscope/internal/boolfn"
	"github.com/sboxscope/sboxscope/internal/walsh"
	"github.com/sboxscope/sboxscope/pkg/types"
)

// LAPMaxBias returns max |W_b(a)| over every nonzero output mask b and every
// input mask a, a = 0 included.
func LAPMaxBias(s *types.SBox) int {
	max := 0
	for b := 1; b < types.Size; b++ {
		f := boolfn.Extract(s, boolfn.Mask(byte(b)))
		if m := walsh.MaxAbs(walsh.Transform(f[:])); m > max {
			max = m
		}
	}
	return max
}

// LAP returns LAPMaxBias / 256.
//
// Because the constant approximation a = 0 is scanned too, this is the
// maximum linear bias figure used by the paper the tool reproduces, not the
// textbook ((max|W|/2^n)^2) LAP. For a bijective S-box W_b(0) is always 0,
// so the two scans only differ on non-bijective tables.
func LAP(s *types.SBox) float64 {
	return LAPFrom(LAPMaxBias(s))
}

// LAPFrom converts a maximum Walsh coefficient into the LAP figure
func LAPFrom(maxBias int) float64 {
	return float64(maxBias) / types.Size
}
