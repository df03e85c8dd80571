package report

import (
	"fmt"
	"math"

	"github.com/sboxscope/sboxscope/pkg/types"
)

// Thresholds used by Assess
const (
	MinNonlinearity      = 100
	MaxDifferentialCount = 4
	MaxLinearBias        = 32
	MaxSACDeviation      = 0.05
)

// Assess rates an S-box from its metrics and raw linear bias (max |W|).
// The level counts only the four strength criteria (nonlinearity,
// differential uniformity, linear bias, avalanche): none failed gives High,
// up to two Medium, otherwise Low. Bijectivity is listed but not counted.
func Assess(m *types.Metrics, lapMaxBias int) Summary {
	s := Summary{Strengths: []string{}, Weaknesses: []string{}}
	failed := 0

	judge := func(ok bool, strength, weakness string) bool {
		if ok {
			s.Strengths = append(s.Strengths, strength)
		} else {
			s.Weaknesses = append(s.Weaknesses, weakness)
		}
		return ok
	}
	rate := func(ok bool, strength, weakness string) {
		if !judge(ok, strength, weakness) {
			failed++
		}
	}

	judge(m.Bijective,
		"bijective (permutation of 0..255)",
		"not bijective")
	rate(m.Nonlinearity >= MinNonlinearity,
		fmt.Sprintf("high nonlinearity (%d)", m.Nonlinearity),
		fmt.Sprintf("low nonlinearity (%d < %d)", m.Nonlinearity, MinNonlinearity))
	rate(m.DifferentialUniformity <= MaxDifferentialCount,
		fmt.Sprintf("low differential uniformity (%d)", m.DifferentialUniformity),
		fmt.Sprintf("high differential uniformity (%d > %d)", m.DifferentialUniformity, MaxDifferentialCount))
	rate(lapMaxBias <= MaxLinearBias,
		fmt.Sprintf("low linear bias (%d)", lapMaxBias),
		fmt.Sprintf("high linear bias (%d > %d)", lapMaxBias, MaxLinearBias))
	rate(math.Abs(m.SAC-0.5) <= MaxSACDeviation,
		fmt.Sprintf("good avalanche (SAC %.4f)", m.SAC),
		fmt.Sprintf("poor avalanche (SAC %.4f)", m.SAC))

	switch {
	case failed == 0:
		s.Level = LevelHigh
	case failed <= 2:
		s.Level = LevelMedium
	default:
		s.Level = LevelLow
	}
	return s
}
