package report

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownGenerator generates GitHub-flavoured Markdown reports
type MarkdownGenerator struct{}

// Generate generates a Markdown report
func (g *MarkdownGenerator) Generate(report *Report, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Title)
	fmt.Fprintf(&b, "- Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- Duration: %s\n", report.Duration)
	fmt.Fprintf(&b, "- SHA3-256: `%s`\n", report.Fingerprint)
	fmt.Fprintf(&b, "- Security level: **%s**\n\n", report.Summary.Level)

	b.WriteString("## Metrics\n\n| Metric | Value |\n|---|---|\n")
	for _, row := range report.Rows() {
		fmt.Fprintf(&b, "| %s | %s |\n", row.Label, row.Value)
	}
	for _, row := range report.ExtendedRows() {
		fmt.Fprintf(&b, "| %s | %s |\n", row.Label, row.Value)
	}

	if report.Extended != nil {
		b.WriteString("\n## SAC Matrix\n\n| in \\ out |")
		for j := range report.Extended.SACMatrix[0] {
			fmt.Fprintf(&b, " %d |", j)
		}
		b.WriteString("\n|---|")
		b.WriteString(strings.Repeat("---|", len(report.Extended.SACMatrix[0])))
		b.WriteString("\n")
		for i, row := range report.Extended.SACMatrix {
			fmt.Fprintf(&b, "| %d |", i)
			for _, v := range row {
				fmt.Fprintf(&b, " %.3f |", v)
			}
			b.WriteString("\n")
		}
	}

	if len(report.Checks) > 0 {
		b.WriteString("\n## Reference Comparison\n\n| Metric | Expected | Actual | Result |\n|---|---|---|---|\n")
		for _, c := range report.Checks {
			result := "pass"
			if !c.Pass {
				result = "**FAIL**"
			}
			fmt.Fprintf(&b, "| %s | %g | %g | %s |\n", c.Metric, c.Expected, c.Actual, result)
		}
	}

	if p := report.Permutation; p != nil {
		b.WriteString("\n## Permutation Check\n\n")
		fmt.Fprintf(&b, "- Missing values (%d): %v\n", len(p.Missing), p.Missing)
		fmt.Fprintf(&b, "- Duplicated values (%d): %v\n", len(p.Duplicates), p.Duplicates)
	}

	b.WriteString("\n## Summary\n\n")
	for _, s := range report.Summary.Strengths {
		fmt.Fprintf(&b, "- ✅ %s\n", s)
	}
	for _, s := range report.Summary.Weaknesses {
		fmt.Fprintf(&b, "- ⚠️ %s\n", s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Extension returns the file extension
func (g *MarkdownGenerator) Extension() string {
	return "md"
}
