// Package types defines common data structures used across sboxscope components.
package types

const (
	Bits = 8         // Input/output width of an S-box in bits
	Size = 1 << Bits // Number of table entries
)

// SBox is an 8-bit substitution table: index = input byte, value = output byte.
// A valid cryptographic S-box is a permutation of [0,255], but nothing here
// enforces that; see Metrics.Bijective.
type SBox [Size]byte

// FromInts builds an SBox from already validated integers.
// Values are truncated to a byte; callers validate range beforehand.
func FromInts(values []int) SBox {
	var s SBox
	for i := 0; i < Size && i < len(values); i++ {
		s[i] = byte(values[i])
	}
	return s
}

// Ints returns the table as a slice of ints.
func (s SBox) Ints() []int {
	out := make([]int, Size)
	for i, v := range s {
		out[i] = int(v)
	}
	return out
}

// Metrics holds the core cryptographic figures of an S-box.
// Every value other than Bijective only carries its usual meaning
// for a bijective table.
type Metrics struct {
	Bijective              bool    `json:"bijective" yaml:"bijective"`
	Nonlinearity           int     `json:"nonlinearity" yaml:"nonlinearity"`
	SAC                    float64 `json:"sac" yaml:"sac"`
	BICNL                  int     `json:"bic_nl" yaml:"bic_nl"`
	BICSAC                 float64 `json:"bic_sac" yaml:"bic_sac"`
	LAP                    float64 `json:"lap" yaml:"lap"`
	DAP                    float64 `json:"dap" yaml:"dap"`
	DifferentialUniformity int     `json:"differential_uniformity" yaml:"differential_uniformity"`
	AlgebraicDegree        int     `json:"algebraic_degree" yaml:"algebraic_degree"`
}

// Extended holds the secondary figures that are only computed on request
type Extended struct {
	SACMatrix           [Bits][Bits]float64 `json:"sac_matrix" yaml:"sac_matrix"`
	SACMaxDeviation     float64             `json:"sac_max_deviation" yaml:"sac_max_deviation"`
	BICNLAverage        float64             `json:"bic_nl_average" yaml:"bic_nl_average"`
	LAPMaxBias          int                 `json:"lap_max_bias" yaml:"lap_max_bias"`
	CorrelationImmunity int                 `json:"correlation_immunity" yaml:"correlation_immunity"`
	Balanced            bool                `json:"balanced" yaml:"balanced"`
	TransparencyOrder   float64             `json:"transparency_order" yaml:"transparency_order"`
}

// PermutationCheck describes how far a table is from being a permutation
type PermutationCheck struct {
	Missing    []int `json:"missing"`    // Values in [0,255] that never occur
	Duplicates []int `json:"duplicates"` // Values occurring more than once
}

// IsPermutation reports whether nothing is missing or duplicated
func (p PermutationCheck) IsPermutation() bool {
	return len(p.Missing) == 0 && len(p.Duplicates) == 0
}
