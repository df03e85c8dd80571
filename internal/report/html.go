// Package report provides HTML report generation.
package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sboxscope/sboxscope/pkg/types"
)

// HTMLGenerator generates HTML reports
type HTMLGenerator struct {
	template *template.Template
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"levelClass": func(l Level) string {
			switch l {
			case LevelHigh:
				return "high"
			case LevelMedium:
				return "medium"
			default:
				return "low"
			}
		},
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
		"formatDuration": func(d time.Duration) string {
			return d.String()
		},
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f", v*100)
		},
		"hexRows": func(s types.SBox) [][]string {
			rows := make([][]string, 16)
			for i := range rows {
				rows[i] = make([]string, 16)
				for j := range rows[i] {
					rows[i][j] = fmt.Sprintf("%02x", s[i*16+j])
				}
			}
			return rows
		},
		"hexDigit": func(i int) string {
			return fmt.Sprintf("%x", i)
		},
	}
}

// NewHTMLGenerator creates a new HTML generator
func NewHTMLGenerator() *HTMLGenerator {
	tmpl := template.Must(template.New("report").Funcs(funcMap()).Parse(htmlTemplate))
	return &HTMLGenerator{
		template: tmpl,
	}
}

// CustomHTMLGenerator creates a generator with a custom template
func CustomHTMLGenerator(templateStr string) (*HTMLGenerator, error) {
	tmpl, err := template.New("report").Funcs(funcMap()).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &HTMLGenerator{template: tmpl}, nil
}

// Generate generates an HTML report
func (g *HTMLGenerator) Generate(report *Report, w io.Writer) error {
	return g.template.Execute(w, report)
}

// Extension returns the file extension
func (g *HTMLGenerator) Extension() string {
	return "html"
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - sboxscope</title>
    <style>
        :root {
            --bg-dark: #0D0D0D;
            --bg-panel: #1A1A2E;
            --bg-header: #16213E;
            --text-primary: #E0E0E0;
            --text-dim: #666666;
            --cyan: #00FFFF;
            --magenta: #FF00FF;
            --green: #00FF00;
            --red: #FF0055;
            --orange: #FF8800;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', 'Roboto', 'Helvetica Neue', sans-serif;
            background: var(--bg-dark);
            color: var(--text-primary);
            line-height: 1.6;
        }
        .container { max-width: 1100px; margin: 0 auto; padding: 20px; }
        header {
            background: var(--bg-header);
            padding: 24px;
            border-radius: 10px;
            margin-bottom: 24px;
            border: 1px solid var(--cyan);
        }
        h1 { color: var(--cyan); font-size: 2em; }
        h2 { color: var(--magenta); margin-bottom: 12px; }
        .meta { color: var(--text-dim); font-size: 0.9em; }
        code { color: var(--cyan); }
        section {
            background: var(--bg-panel);
            border-radius: 10px;
            padding: 20px;
            margin-bottom: 24px;
        }
        table { border-collapse: collapse; width: 100%; }
        th, td { padding: 6px 10px; border-bottom: 1px solid #333; text-align: left; }
        th { color: var(--text-dim); font-weight: normal; }
        table.grid td, table.grid th { text-align: center; font-family: monospace; padding: 2px 4px; }
        .pass { color: var(--green); }
        .fail { color: var(--red); }
        .badge { padding: 4px 12px; border-radius: 12px; font-weight: bold; }
        .badge.high { background: var(--green); color: #000; }
        .badge.medium { background: var(--orange); color: #000; }
        .badge.low { background: var(--red); color: #fff; }
        footer { color: var(--text-dim); text-align: center; font-size: 0.8em; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>{{.Title}}</h1>
            <div class="meta">
                Generated {{formatTime .GeneratedAt}} in {{formatDuration .Duration}}
                &middot; SHA3-256 <code>{{.Fingerprint}}</code>
            </div>
        </header>

        <section>
            <h2>Security Summary <span class="badge {{levelClass .Summary.Level}}">{{.Summary.Level}}</span></h2>
            <ul>
                {{range .Summary.Strengths}}<li class="pass">{{.}}</li>{{end}}
                {{range .Summary.Weaknesses}}<li class="fail">{{.}}</li>{{end}}
            </ul>
        </section>

        <section>
            <h2>Metrics</h2>
            <table>
                {{range .Rows}}
                <tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
                {{end}}
                {{range .ExtendedRows}}
                <tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
                {{end}}
            </table>
        </section>

        {{with .Extended}}
        <section>
            <h2>SAC Matrix</h2>
            <p class="meta">Row i: flipped input bit. Column j: output bit. Values in percent.</p>
            <table class="grid">
                {{range $i, $row := .SACMatrix}}
                <tr><th>{{$i}}</th>{{range $row}}<td>{{percent .}}</td>{{end}}</tr>
                {{end}}
            </table>
        </section>
        {{end}}

        {{if .Checks}}
        <section>
            <h2>Reference Comparison</h2>
            <table>
                <tr><th>Metric</th><th>Expected</th><th>Actual</th><th></th></tr>
                {{range .Checks}}
                <tr>
                    <td>{{.Metric}}</td><td>{{.Expected}}</td><td>{{.Actual}}</td>
                    <td>{{if .Pass}}<span class="pass">✓</span>{{else}}<span class="fail">✗</span>{{end}}</td>
                </tr>
                {{end}}
            </table>
        </section>
        {{end}}

        {{with .Permutation}}
        <section>
            <h2>Permutation Check</h2>
            <p>Missing values: {{len .Missing}} &middot; Duplicated values: {{len .Duplicates}}</p>
            <p class="meta">Missing: {{.Missing}}</p>
            <p class="meta">Duplicates: {{.Duplicates}}</p>
        </section>
        {{end}}

        <section>
            <h2>Table</h2>
            <table class="grid">
                {{range $i, $row := hexRows .SBox}}
                <tr><th>{{hexDigit $i}}x</th>{{range $row}}<td>{{.}}</td>{{end}}</tr>
                {{end}}
            </table>
        </section>

        <footer>Generated by sboxscope {{.Version}}</footer>
    </div>
</body>
</html>`
