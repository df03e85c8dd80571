package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("Expected version %s in output, got %q", version, out)
	}
}

func TestBuiltinExport_RoundTrip(t *testing.T) {
	out, err := execute(t, "", "builtin", "export", "aes")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var rec record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if rec.Name != "aes" || len(rec.SBox) != 256 || rec.SBox[0] != 0x63 {
		t.Errorf("Unexpected record: name=%s len=%d", rec.Name, len(rec.SBox))
	}

	// The exported record is a valid analyze input
	out, err = execute(t, out, "analyze", "-", "-f", "json", "--sequential")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	var parsed struct {
		Name    string
		Metrics map[string]interface{}
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("Invalid report JSON: %v", err)
	}
	if parsed.Metrics["nonlinearity"] != float64(112) {
		t.Errorf("Expected nonlinearity 112, got %v", parsed.Metrics["nonlinearity"])
	}
}

func TestBuiltinList(t *testing.T) {
	out, err := execute(t, "", "builtin", "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, name := range []string{"aes", "aes-inv", "inversion", "identity"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected %s in list", name)
		}
	}
}

func TestAnalyze_BuiltinToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aes.md")
	if _, err := execute(t, "", "analyze", "--builtin", "aes", "--extended", "-f", "markdown", "-o", path); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Report not written: %v", err)
	}
	if !strings.Contains(string(data), "## SAC Matrix") {
		t.Error("Extended report should contain the SAC matrix")
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"analyze"}},
		{"unknown builtin", []string{"analyze", "--builtin", "des"}},
		{"both inputs", []string{"analyze", "x.json", "--builtin", "aes"}},
		{"bad format", []string{"analyze", "--builtin", "aes", "-f", "pdf"}},
		{"missing file", []string{"analyze", filepath.Join(t.TempDir(), "none.json")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, "", tt.args...); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestAnalyze_ShortTable(t *testing.T) {
	_, err := execute(t, "1, 2, 3", "analyze", "-", "--input-format", "csv")
	if err == nil {
		t.Fatal("Expected length error")
	}
	if !strings.Contains(err.Error(), "256") {
		t.Errorf("Expected length message, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "", "check", "--builtin", "aes")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "is a permutation") {
		t.Errorf("Unexpected output %q", out)
	}

	var b strings.Builder
	for i := 0; i < 256; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("7")
	}
	out, err = execute(t, b.String(), "check", "-", "--input-format", "csv")
	if !errors.Is(err, errNotPermutation) {
		t.Fatalf("Expected errNotPermutation, got %v", err)
	}
	if !strings.Contains(out, "Missing") {
		t.Errorf("Expected diagnostics, got %q", out)
	}
}

func TestAnalyze_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "layout.tmpl")
	if err := os.WriteFile(tmpl, []byte(`{{.Name}} NL={{.Metrics.Nonlinearity}} TO={{with .Extended}}{{printf "%.2f" .TransparencyOrder}}{{end}}`), 0o644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}

	out, err := execute(t, "", "analyze", "--builtin", "aes", "--extended", "-f", "html", "--template", tmpl)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if out != "aes NL=112 TO=7.86" {
		t.Errorf("Expected custom template output, got %q", out)
	}

	bad := filepath.Join(dir, "bad.tmpl")
	if err := os.WriteFile(bad, []byte(`{{.Name`), 0o644); err != nil {
		t.Fatalf("Failed to write template: %v", err)
	}
	if _, err := execute(t, "", "analyze", "--builtin", "aes", "-f", "html", "--template", bad); err == nil {
		t.Error("Expected template parse error")
	}
}

func TestAnalyze_LabelledCSVOnStdin(t *testing.T) {
	var b strings.Builder
	b.WriteString("S-box: identity\n")
	for i := 0; i < 256; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(strconv.Itoa(i))
	}

	out, err := execute(t, b.String(), "analyze", "-", "-f", "json", "--sequential")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(out, `"name": "stdin"`) {
		t.Errorf("Expected stdin report, got %q", out)
	}
}
