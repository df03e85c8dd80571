package metrics

import (
	"math"
	"math/bits"

	"github.com/sboxscope/sboxscope/pkg/types"
)

func weight(v int) int {
	return bits.OnesCount(uint(v))
}

// SAC returns the average fraction of output bits that flip when one input
// bit flips, over all 8 input bits and 256 inputs. Ideal value is 0.5.
func SAC(s *types.SBox) float64 {
	total := 0
	for i := 0; i < types.Bits; i++ {
		for x := 0; x < types.Size; x++ {
			total += bits.OnesCount8(s[x] ^ s[x^(1<<i)])
		}
	}
	return float64(total) / float64(types.Bits*types.Size*types.Bits)
}

// SACMatrix returns M[i][j], the probability that output bit j flips when
// input bit i flips.
func SACMatrix(s *types.SBox) [types.Bits][types.Bits]float64 {
	var counts [types.Bits][types.Bits]int
	for i := 0; i < types.Bits; i++ {
		for x := 0; x < types.Size; x++ {
			diff := s[x] ^ s[x^(1<<i)]
			for j := 0; j < types.Bits; j++ {
				counts[i][j] += int(diff>>j) & 1
			}
		}
	}

	var m [types.Bits][types.Bits]float64
	for i := range counts {
		for j := range counts[i] {
			m[i][j] = float64(counts[i][j]) / types.Size
		}
	}
	return m
}

// SACMaxDeviation returns the largest |M[i][j] - 0.5| of a SAC matrix
func SACMaxDeviation(m [types.Bits][types.Bits]float64) float64 {
	dev := 0.0
	for i := range m {
		for j := range m[i] {
			dev = math.Max(dev, math.Abs(m[i][j]-0.5))
		}
	}
	return dev
}

// BICSAC returns the avalanche of f_i XOR f_j: for each pair of output bits
// the fraction of (flipped input bit, input) combinations that change the
// XOR is averaged first, then the 28 pair averages are averaged.
func BICSAC(s *types.SBox) float64 {
	pairs := Pairs()
	sum := 0.0
	for _, p := range pairs {
		mask := byte(1)<<p[0] | byte(1)<<p[1]
		changed := 0
		for k := 0; k < types.Bits; k++ {
			for x := 0; x < types.Size; x++ {
				diff := s[x] ^ s[x^(1<<k)]
				changed += bits.OnesCount8(diff&mask) & 1
			}
		}
		sum += float64(changed) / float64(types.Bits*types.Size)
	}
	return sum / float64(len(pairs))
}
