package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/sboxscope/sboxscope/pkg/types"
)

// Expectation is a reference value for one metric key
type Expectation struct {
	Metric    string
	Expected  float64
	Tolerance float64
}

// DefaultExpectations returns the published AES-class reference values.
// LAP is left out: see LAP in internal/metrics for why the measured
// figure differs from the commonly quoted one.
func DefaultExpectations() []Expectation {
	return []Expectation{
		{Metric: "bijective", Expected: 1},
		{Metric: "nonlinearity", Expected: 112},
		{Metric: "sac", Expected: 0.5, Tolerance: 0.05},
		{Metric: "bic_nl", Expected: 112},
		{Metric: "bic_sac", Expected: 0.5, Tolerance: 0.05},
		{Metric: "dap", Expected: 0.015625},
		{Metric: "differential_uniformity", Expected: 4},
		{Metric: "algebraic_degree", Expected: 7},
	}
}

var floatMetrics = map[string]bool{
	"sac":     true,
	"bic_sac": true,
	"lap":     true,
	"dap":     true,
}

// ExpectationsFrom builds expectations from a key/value map, e.g. the
// reference.values config section. tolerance applies to the ratio metrics
// (sac, bic_sac); integer metrics always compare exactly.
func ExpectationsFrom(values map[string]float64, tolerance float64) ([]Expectation, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		if _, ok := MetricValue(&types.Metrics{}, k); !ok {
			return nil, fmt.Errorf("unknown reference metric: %s", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Expectation, 0, len(keys))
	for _, k := range keys {
		e := Expectation{Metric: k, Expected: values[k]}
		if k == "sac" || k == "bic_sac" {
			e.Tolerance = tolerance
		}
		out = append(out, e)
	}
	return out, nil
}

// MetricValue returns the numeric value of a metric by its JSON key.
// bijective maps to 1 or 0.
func MetricValue(m *types.Metrics, key string) (float64, bool) {
	switch key {
	case "bijective":
		if m.Bijective {
			return 1, true
		}
		return 0, true
	case "nonlinearity":
		return float64(m.Nonlinearity), true
	case "sac":
		return m.SAC, true
	case "bic_nl":
		return float64(m.BICNL), true
	case "bic_sac":
		return m.BICSAC, true
	case "lap":
		return m.LAP, true
	case "dap":
		return m.DAP, true
	case "differential_uniformity":
		return float64(m.DifferentialUniformity), true
	case "algebraic_degree":
		return float64(m.AlgebraicDegree), true
	}
	return 0, false
}

// Compare evaluates m against each expectation. Unknown metric keys are skipped.
func Compare(m *types.Metrics, expectations []Expectation) []Check {
	checks := make([]Check, 0, len(expectations))
	for _, e := range expectations {
		actual, ok := MetricValue(m, e.Metric)
		if !ok {
			continue
		}
		diff := math.Abs(actual - e.Expected)
		var pass bool
		if floatMetrics[e.Metric] {
			pass = diff <= e.Tolerance+1e-12
		} else {
			pass = diff == 0
		}
		checks = append(checks, Check{
			Metric:    e.Metric,
			Expected:  e.Expected,
			Actual:    actual,
			Tolerance: e.Tolerance,
			Pass:      pass,
		})
	}
	return checks
}
