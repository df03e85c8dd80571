// Package loader reads S-box tables from JSON, YAML and CSV documents and
// validates their shape before any analysis runs.
package loader

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/sboxscope/sboxscope/pkg/types"
)

// Format identifies an input encoding
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

var (
	ErrLength     = errors.New("s-box must have exactly 256 values")
	ErrValueRange = errors.New("s-box values must be integers in [0,255]")
	ErrFormat     = errors.New("unsupported input format")
	ErrNoTable    = errors.New("no s-box table found")
)

// ShapeError describes a malformed table. It wraps ErrLength or ErrValueRange.
type ShapeError struct {
	Err   error
	Count int     // Number of values found (ErrLength)
	Index int     // Offending position (ErrValueRange)
	Value float64 // Offending value (ErrValueRange)
}

func (e *ShapeError) Error() string {
	if errors.Is(e.Err, ErrLength) {
		return fmt.Sprintf("%v, got %d", e.Err, e.Count)
	}
	return fmt.Sprintf("%v: index %d holds %v", e.Err, e.Index, e.Value)
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// Input is a validated S-box with its display name
type Input struct {
	Name string
	SBox types.SBox
}

// Options configures a Loader
type Options struct {
	Format   Format
	NamePath string // gjson path of the name in JSON documents
	SBoxPath string // gjson path of the table in JSON documents
}

// DefaultOptions reads {"name": ..., "sbox": [...]}
func DefaultOptions() Options {
	return Options{
		Format:   FormatAuto,
		NamePath: "name",
		SBoxPath: "sbox",
	}
}

// Loader decodes and validates S-box documents
type Loader struct {
	opts Options
}

// New creates a loader; empty option fields take their defaults
func New(opts Options) *Loader {
	def := DefaultOptions()
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.NamePath == "" {
		opts.NamePath = def.NamePath
	}
	if opts.SBoxPath == "" {
		opts.SBoxPath = def.SBoxPath
	}
	return &Loader{opts: opts}
}

// LoadFile reads and validates the table stored at path
func (l *Loader) LoadFile(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	format := l.opts.Format
	if format == FormatAuto {
		format = FormatFromPath(path)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	in, err := l.Load(data, format, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Load decodes data. fallbackName is used when the document carries no name.
func (l *Loader) Load(data []byte, format Format, fallbackName string) (*Input, error) {
	if format == FormatAuto || format == "" {
		format = Sniff(data)
	}

	var (
		name   string
		values []float64
		err    error
	)
	switch format {
	case FormatJSON:
		name, values, err = l.parseJSON(data)
	case FormatYAML:
		name, values, err = parseYAML(data)
	case FormatCSV:
		values = parseCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err != nil {
		return nil, err
	}

	s, err := Validate(values)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = fallbackName
	}
	return &Input{Name: name, SBox: s}, nil
}

// Validate checks the table shape and converts it to an SBox
func Validate(values []float64) (types.SBox, error) {
	if len(values) != types.Size {
		return types.SBox{}, &ShapeError{Err: ErrLength, Count: len(values)}
	}
	ints := make([]int, len(values))
	for i, v := range values {
		if v != math.Trunc(v) || v < 0 || v > types.Size-1 {
			return types.SBox{}, &ShapeError{Err: ErrValueRange, Index: i, Value: v}
		}
		ints[i] = int(v)
	}
	return types.FromInts(ints), nil
}

// FormatFromPath guesses the format from a file extension
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv", ".txt":
		return FormatCSV
	default:
		return FormatAuto
	}
}

// Sniff guesses the format from the content. YAML needs a document marker
// or a top-level sbox key; labelled CSV such as "S-box: aes" stays CSV.
func Sniff(data []byte) Format {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "["):
		return FormatJSON
	case strings.HasPrefix(trimmed, "---") || hasYAMLKey(trimmed, "sbox"):
		return FormatYAML
	default:
		return FormatCSV
	}
}

func hasYAMLKey(doc, key string) bool {
	for _, line := range strings.Split(doc, "\n") {
		rest, ok := strings.CutPrefix(line, key)
		if ok && strings.HasPrefix(strings.TrimSpace(rest), ":") {
			return true
		}
	}
	return false
}

func (l *Loader) parseJSON(data []byte) (string, []float64, error) {
	if !gjson.ValidBytes(data) {
		return "", nil, fmt.Errorf("%w: invalid JSON", ErrFormat)
	}

	doc := gjson.ParseBytes(data)
	table := doc.Get(l.opts.SBoxPath)
	if !table.Exists() && doc.IsArray() {
		table = doc
	}
	if !table.IsArray() {
		return "", nil, fmt.Errorf("%w at path %q", ErrNoTable, l.opts.SBoxPath)
	}

	items := table.Array()
	values := make([]float64, 0, len(items))
	for i, item := range items {
		v, ok := jsonNumber(item)
		if !ok {
			return "", nil, &ShapeError{Err: ErrValueRange, Index: i, Value: math.NaN()}
		}
		values = append(values, v)
	}

	return doc.Get(l.opts.NamePath).String(), values, nil
}

// jsonNumber accepts numbers and numeric strings such as "0x63"
func jsonNumber(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		n, err := strconv.ParseInt(strings.TrimSpace(r.Str), 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	default:
		return 0, false
	}
}

type yamlRecord struct {
	Name string    `yaml:"name"`
	SBox []float64 `yaml:"sbox"`
}

func parseYAML(data []byte) (string, []float64, error) {
	var rec yamlRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return "", nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if rec.SBox == nil {
		return "", nil, fmt.Errorf("%w: missing 'sbox' key", ErrNoTable)
	}
	return rec.Name, rec.SBox, nil
}

// parseCSV reads integers separated by commas, semicolons or whitespace.
// Tokens that are not integers (headers, labels) are skipped.
func parseCSV(data []byte) []float64 {
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 0, 64)
		if err != nil {
			continue
		}
		values = append(values, float64(n))
	}
	return values
}
