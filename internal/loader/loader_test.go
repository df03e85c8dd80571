package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func seq(n int, format string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf(format, (i*7+3)%256)
	}
	return out
}

func jsonDoc(name string, n int) []byte {
	return []byte(fmt.Sprintf(`{"name": %q, "sbox": [%s]}`, name, strings.Join(seq(n, "%d"), ", ")))
}

func TestLoad_JSON(t *testing.T) {
	in, err := New(DefaultOptions()).Load(jsonDoc("Test S-box", 256), FormatJSON, "fallback")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if in.Name != "Test S-box" {
		t.Errorf("Expected name 'Test S-box', got '%s'", in.Name)
	}
	if in.SBox[0] != 3 || in.SBox[1] != 10 || in.SBox[255] != byte((255*7+3)%256) {
		t.Errorf("Unexpected table contents: %v", in.SBox[:4])
	}
}

func TestLoad_JSONCustomPaths(t *testing.T) {
	rows := make([]string, 16)
	vals := seq(256, "%d")
	for r := range rows {
		rows[r] = "[" + strings.Join(vals[r*16:(r+1)*16], ",") + "]"
	}
	doc := fmt.Sprintf(`{"meta": {"title": "Grid"}, "data": {"table": [%s]}}`, strings.Join(rows, ","))

	l := New(Options{NamePath: "meta.title", SBoxPath: "data.table|@flatten"})
	in, err := l.Load([]byte(doc), FormatJSON, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if in.Name != "Grid" {
		t.Errorf("Expected name 'Grid', got '%s'", in.Name)
	}
	if in.SBox[17] != byte((17*7+3)%256) {
		t.Errorf("Expected flattened row-major order, got S[17]=%d", in.SBox[17])
	}
}

func TestLoad_JSONTopLevelArrayAndHexStrings(t *testing.T) {
	doc := "[" + strings.Join(seq(256, `"0x%02x"`), ",") + "]"

	in, err := New(DefaultOptions()).Load([]byte(doc), FormatAuto, "bare")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if in.Name != "bare" {
		t.Errorf("Expected fallback name 'bare', got '%s'", in.Name)
	}
	if in.SBox[2] != 17 {
		t.Errorf("Expected S[2]=17, got %d", in.SBox[2])
	}
}

func TestLoad_JSONErrors(t *testing.T) {
	l := New(DefaultOptions())

	if _, err := l.Load([]byte(`{"sbox": [1, 2`), FormatJSON, ""); !errors.Is(err, ErrFormat) {
		t.Errorf("Expected ErrFormat for invalid JSON, got %v", err)
	}
	if _, err := l.Load([]byte(`{"table": []}`), FormatJSON, ""); !errors.Is(err, ErrNoTable) {
		t.Errorf("Expected ErrNoTable, got %v", err)
	}
	if _, err := l.Load([]byte(`{"sbox": [1, "x"]}`), FormatJSON, ""); !errors.Is(err, ErrValueRange) {
		t.Errorf("Expected ErrValueRange for non-numeric entry, got %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	doc := "name: yaml box\nsbox: [" + strings.Join(seq(256, "%d"), ", ") + "]\n"

	in, err := New(DefaultOptions()).Load([]byte(doc), FormatAuto, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if in.Name != "yaml box" {
		t.Errorf("Expected name 'yaml box', got '%s'", in.Name)
	}
	if in.SBox[3] != 24 {
		t.Errorf("Expected S[3]=24, got %d", in.SBox[3])
	}

	if _, err := New(DefaultOptions()).Load([]byte("name: empty\n"), FormatYAML, ""); !errors.Is(err, ErrNoTable) {
		t.Errorf("Expected ErrNoTable, got %v", err)
	}
}

func TestLoad_CSV(t *testing.T) {
	vals := seq(256, "%d")
	var b strings.Builder
	b.WriteString("S-box values\n")
	for r := 0; r < 16; r++ {
		b.WriteString(strings.Join(vals[r*16:(r+1)*16], ", "))
		b.WriteString(",\n")
	}

	in, err := New(DefaultOptions()).Load([]byte(b.String()), FormatCSV, "table")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if in.Name != "table" {
		t.Errorf("Expected name 'table', got '%s'", in.Name)
	}
	if in.SBox[255] != byte((255*7+3)%256) {
		t.Errorf("Unexpected last value %d", in.SBox[255])
	}
}

func TestValidate_Shape(t *testing.T) {
	full := make([]float64, 256)

	tests := []struct {
		name   string
		values []float64
		want   error
	}{
		{"too short", full[:255], ErrLength},
		{"too long", append(append([]float64(nil), full...), 0), ErrLength},
		{"empty", nil, ErrLength},
		{"above range", withValue(full, 9, 256), ErrValueRange},
		{"negative", withValue(full, 0, -1), ErrValueRange},
		{"fractional", withValue(full, 4, 1.5), ErrValueRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.values)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			var se *ShapeError
			if !errors.As(err, &se) {
				t.Fatalf("Expected *ShapeError, got %T", err)
			}
		})
	}

	if _, err := Validate(full); err != nil {
		t.Errorf("Expected all-zero table to be well-formed, got %v", err)
	}
}

func withValue(values []float64, i int, v float64) []float64 {
	out := append([]float64(nil), values...)
	out[i] = v
	return out
}

func TestShapeError_Message(t *testing.T) {
	_, err := Validate(make([]float64, 10))
	if !strings.Contains(err.Error(), "got 10") {
		t.Errorf("Expected count in message, got %q", err.Error())
	}

	_, err = Validate(withValue(make([]float64, 256), 42, 300))
	if !strings.Contains(err.Error(), "index 42") {
		t.Errorf("Expected index in message, got %q", err.Error())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "box.json")
	if err := os.WriteFile(jsonPath, jsonDoc("", 256), 0644); err != nil {
		t.Fatal(err)
	}
	in, err := New(DefaultOptions()).LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if in.Name != "box" {
		t.Errorf("Expected name from file base 'box', got '%s'", in.Name)
	}

	shortPath := filepath.Join(dir, "short.csv")
	if err := os.WriteFile(shortPath, []byte("1,2,3"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(DefaultOptions()).LoadFile(shortPath); !errors.Is(err, ErrLength) {
		t.Errorf("Expected ErrLength, got %v", err)
	}

	if _, err := New(DefaultOptions()).LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFormatDetection(t *testing.T) {
	paths := map[string]Format{
		"a.json": FormatJSON,
		"a.YML":  FormatYAML,
		"a.yaml": FormatYAML,
		"a.csv":  FormatCSV,
		"a.txt":  FormatCSV,
		"a.bin":  FormatAuto,
	}
	for p, want := range paths {
		if got := FormatFromPath(p); got != want {
			t.Errorf("%s: expected %s, got %s", p, want, got)
		}
	}

	if Sniff([]byte("  {\"sbox\": []}")) != FormatJSON {
		t.Error("Expected JSON to be sniffed")
	}
	if Sniff([]byte("sbox: [1]")) != FormatYAML {
		t.Error("Expected YAML to be sniffed")
	}
	if Sniff([]byte("1, 2, 3")) != FormatCSV {
		t.Error("Expected CSV to be sniffed")
	}
	if Sniff([]byte("---\nname: x\n")) != FormatYAML {
		t.Error("Expected document marker to be sniffed as YAML")
	}
	if Sniff([]byte("S-box: identity\n0, 1, 2")) != FormatCSV {
		t.Error("Expected labelled CSV to stay CSV")
	}
	if Sniff([]byte("sbox_values: 1, 2")) != FormatCSV {
		t.Error("Expected a key that only starts with sbox to stay CSV")
	}
}

func TestLoad_LabelledCSVAuto(t *testing.T) {
	vals := seq(256, "%d")
	doc := "S-box: stream\n" + strings.Join(vals, ",") + "\n"

	in, err := New(DefaultOptions()).Load([]byte(doc), FormatAuto, "stdin")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if in.Name != "stdin" {
		t.Errorf("Expected name 'stdin', got '%s'", in.Name)
	}
	if in.SBox[0] != 3 || in.SBox[255] != byte((255*7+3)%256) {
		t.Errorf("Unexpected values %d, %d", in.SBox[0], in.SBox[255])
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	if _, err := New(DefaultOptions()).Load([]byte("1"), Format("xml"), ""); !errors.Is(err, ErrFormat) {
		t.Errorf("Expected ErrFormat, got %v", err)
	}
}
