package metrics

import (
	"math"

	"github.com/sboxscope/sboxscope/internal/boolfn"
	"github.com/sboxscope/sboxscope/pkg/types"
)

// Autocorrelation returns r(a) = sum_x (-1)^(f(x) xor f(x xor a)) for every a
func Autocorrelation(f *boolfn.Signs) [types.Size]int {
	var r [types.Size]int
	for a := 0; a < types.Size; a++ {
		sum := 0
		for x := 0; x < types.Size; x++ {
			sum += f[x] * f[x^a]
		}
		r[a] = sum
	}
	return r
}

// TransparencyOrder returns Prouff's transparency order
//
//	TO = max_b ( |8 - 2 wt(b)| - 1/(2^16 - 2^8) * sum_{a != 0} |sum_i (-1)^b_i r_i(a)| )
//
// where r_i is the autocorrelation of output bit i. b = 0 is part of the maximum.
// Values range from 0 (constant table) to 8; AES gives about 7.86.
func TransparencyOrder(s *types.SBox) float64 {
	var ac [types.Bits][types.Size]int
	for i := 0; i < types.Bits; i++ {
		f := boolfn.Extract(s, boolfn.Bit(i))
		ac[i] = Autocorrelation(&f)
	}

	const norm = float64(types.Size*types.Size - types.Size)
	best := math.Inf(-1)
	for b := 0; b < types.Size; b++ {
		total := 0
		for a := 1; a < types.Size; a++ {
			sum := 0
			for i := 0; i < types.Bits; i++ {
				if b>>i&1 == 1 {
					sum -= ac[i][a]
				} else {
					sum += ac[i][a]
				}
			}
			if sum < 0 {
				sum = -sum
			}
			total += sum
		}

		lead := types.Bits - 2*weight(b)
		if lead < 0 {
			lead = -lead
		}
		if to := float64(lead) - float64(total)/norm; to > best {
			best = to
		}
	}
	return best
}
