// Package report turns an analysis result into rendered reports.
package report

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/sboxscope/sboxscope/internal/analyzer"
	"github.com/sboxscope/sboxscope/internal/metrics"
	"github.com/sboxscope/sboxscope/pkg/types"
)

// Version is stamped into every report
const Version = "1.0"

// Level is the overall security rating of an S-box
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

// Check compares one measured metric with its reference value
type Check struct {
	Metric    string  `json:"metric"`
	Expected  float64 `json:"expected"`
	Actual    float64 `json:"actual"`
	Tolerance float64 `json:"tolerance,omitempty"`
	Pass      bool    `json:"pass"`
}

// Summary lists strengths and weaknesses against fixed thresholds
type Summary struct {
	Level      Level    `json:"level"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// Report represents one analysed S-box
type Report struct {
	// Metadata
	Title       string        `json:"title"`
	Version     string        `json:"version"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`

	// Subject
	Name        string     `json:"name"`
	Fingerprint string     `json:"fingerprint"`
	SBox        types.SBox `json:"-"`

	// Results
	Metrics     types.Metrics           `json:"metrics"`
	Extended    *types.Extended         `json:"extended,omitempty"`
	Permutation *types.PermutationCheck `json:"permutation,omitempty"`
	Checks      []Check                 `json:"checks,omitempty"`
	Summary     Summary                 `json:"summary"`
}

// MarshalJSON renders the duration as a string and the table as plain integers
func (r Report) MarshalJSON() ([]byte, error) {
	type Alias Report
	return json.Marshal(&struct {
		Alias
		Duration string `json:"duration"`
		SBox     []int  `json:"sbox"`
	}{
		Alias:    Alias(r),
		Duration: r.Duration.String(),
		SBox:     r.SBox.Ints(),
	})
}

// Fingerprint returns the hex SHA3-256 digest of the table bytes
func Fingerprint(s *types.SBox) string {
	sum := sha3.Sum256(s[:])
	return hex.EncodeToString(sum[:])
}

// FromResult builds a report from an analysis result.
// Reference checks are only attached when expectations is non-empty.
func FromResult(res *analyzer.Result, expectations []Expectation) *Report {
	r := &Report{
		Title:       "S-box analysis: " + res.Name,
		Version:     Version,
		GeneratedAt: time.Now(),
		Duration:    res.Duration,
		Name:        res.Name,
		Fingerprint: Fingerprint(&res.SBox),
		SBox:        res.SBox,
		Metrics:     res.Metrics,
		Extended:    res.Extended,
	}

	if !res.Metrics.Bijective {
		pc := metrics.CheckPermutation(&res.SBox)
		r.Permutation = &pc
	}

	if len(expectations) > 0 {
		r.Checks = Compare(&r.Metrics, expectations)
	}

	lapBias := res.Metrics.LAP * types.Size
	if res.Extended != nil {
		lapBias = float64(res.Extended.LAPMaxBias)
	}
	r.Summary = Assess(&r.Metrics, int(lapBias))

	return r
}

// Row is one formatted metric line
type Row struct {
	Key   string
	Label string
	Value string
}

// Rows returns the core metrics formatted for display, in report order
func (r *Report) Rows() []Row {
	m := r.Metrics
	return []Row{
		{"bijective", "Bijective", yesNo(m.Bijective)},
		{"nonlinearity", "Nonlinearity", fmt.Sprintf("%d", m.Nonlinearity)},
		{"sac", "SAC", fmt.Sprintf("%.4f", m.SAC)},
		{"bic_nl", "BIC-NL", fmt.Sprintf("%d", m.BICNL)},
		{"bic_sac", "BIC-SAC", fmt.Sprintf("%.4f", m.BICSAC)},
		{"lap", "LAP", fmt.Sprintf("%.6f", m.LAP)},
		{"dap", "DAP", fmt.Sprintf("%.6f", m.DAP)},
		{"differential_uniformity", "Differential Uniformity", fmt.Sprintf("%d", m.DifferentialUniformity)},
		{"algebraic_degree", "Algebraic Degree", fmt.Sprintf("%d", m.AlgebraicDegree)},
	}
}

// ExtendedRows returns the secondary figures, or nil when none were computed
func (r *Report) ExtendedRows() []Row {
	e := r.Extended
	if e == nil {
		return nil
	}
	return []Row{
		{"sac_max_deviation", "SAC Max Deviation", fmt.Sprintf("%.4f", e.SACMaxDeviation)},
		{"bic_nl_average", "BIC-NL Average", fmt.Sprintf("%.2f", e.BICNLAverage)},
		{"lap_max_bias", "LAP Max Bias", fmt.Sprintf("%d", e.LAPMaxBias)},
		{"correlation_immunity", "Correlation Immunity", fmt.Sprintf("%d", e.CorrelationImmunity)},
		{"balanced", "Balanced", yesNo(e.Balanced)},
		{"transparency_order", "Transparency Order", fmt.Sprintf("%.4f", e.TransparencyOrder)},
	}
}

// FailedChecks returns the reference checks that did not pass
func (r *Report) FailedChecks() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Pass {
			failed = append(failed, c)
		}
	}
	return failed
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Generator is the interface for report generators
type Generator interface {
	Generate(report *Report, w io.Writer) error
	Extension() string
}

// Manager manages report generation
type Manager struct {
	generators map[string]Generator
}

// NewManager creates a manager with the built-in generators registered
func NewManager() *Manager {
	m := &Manager{
		generators: make(map[string]Generator),
	}

	m.RegisterGenerator("json", &JSONGenerator{Indent: true})
	m.RegisterGenerator("html", NewHTMLGenerator())
	m.RegisterGenerator("markdown", &MarkdownGenerator{})
	m.RegisterGenerator("md", &MarkdownGenerator{})
	m.RegisterGenerator("text", &TextGenerator{})

	return m
}

// RegisterGenerator registers a generator
func (m *Manager) RegisterGenerator(format string, gen Generator) {
	m.generators[strings.ToLower(format)] = gen
}

// GetGenerator returns a generator by format
func (m *Manager) GetGenerator(format string) (Generator, bool) {
	gen, ok := m.generators[strings.ToLower(format)]
	return gen, ok
}

// Formats returns the registered format names, sorted
func (m *Manager) Formats() []string {
	names := make([]string, 0, len(m.generators))
	for name := range m.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteToWriter generates a report and writes to the given writer
func (m *Manager) WriteToWriter(report *Report, format string, w io.Writer) error {
	gen, ok := m.GetGenerator(format)
	if !ok {
		return fmt.Errorf("unknown report format: %s", format)
	}

	return gen.Generate(report, w)
}

// WriteFile generates a report into path, replacing any existing file
func (m *Manager) WriteFile(report *Report, format, path string) error {
	gen, ok := m.GetGenerator(format)
	if !ok {
		return fmt.Errorf("unknown report format: %s", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := gen.Generate(report, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to generate report: %w", err)
	}

	return f.Close()
}
