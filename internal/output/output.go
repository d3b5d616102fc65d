package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/jacoelho/jpq/internal/document"
	"github.com/jacoelho/jpq/internal/jsonpath"
	"github.com/jacoelho/jpq/internal/number"
)

// Format represents the rendering of a node list.
type Format int

const (
	// FormatJSON writes one {"path":...,"value":...} object per line.
	FormatJSON Format = iota
	// FormatYAML writes a sequence of path/value mappings.
	FormatYAML
	// FormatPaths writes one normalized path per line.
	FormatPaths
	// FormatValues writes one compact JSON value per line.
	FormatValues
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatPaths:
		return "paths"
	case FormatValues:
		return "values"
	default:
		return "json"
	}
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json", "jsonl":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "paths", "path":
		return FormatPaths, nil
	case "values", "value":
		return FormatValues, nil
	default:
		return FormatJSON, fmt.Errorf("unknown output format %q", s)
	}
}

// ColorMode controls when paths are coloured.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode maps a flag value to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "on":
		return ColorAlways, nil
	case "never", "off":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q", s)
	}
}

// Enabled resolves the mode against a writer. Auto colours terminals only.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Formatter writes node lists to a writer.
type Formatter struct {
	writer io.Writer
	format Format
	path   *color.Color
}

// New creates a formatter that writes to stdout.
func New(format Format, mode ColorMode) *Formatter {
	return NewWithWriter(os.Stdout, format, mode.Enabled(os.Stdout))
}

// NewWithWriter creates a formatter with a custom writer.
func NewWithWriter(writer io.Writer, format Format, colored bool) *Formatter {
	path := color.New(color.FgCyan)
	if colored {
		path.EnableColor()
	} else {
		path.DisableColor()
	}
	return &Formatter{
		writer: writer,
		format: format,
		path:   path,
	}
}

// Format writes every node in order. An empty list writes nothing.
func (f *Formatter) Format(nodes jsonpath.NodeList) error {
	if len(nodes) == 0 {
		return nil
	}
	switch f.format {
	case FormatYAML:
		return f.formatYAML(nodes)
	case FormatPaths:
		return f.formatPaths(nodes)
	case FormatValues:
		return f.formatValues(nodes)
	default:
		return f.formatJSON(nodes)
	}
}

func (f *Formatter) formatJSON(nodes jsonpath.NodeList) error {
	for _, n := range nodes {
		path, err := encodeJSON(n.Path)
		if err != nil {
			return err
		}
		value, err := encodeJSON(n.Value)
		if err != nil {
			return fmt.Errorf("encoding value at %s: %w", n.Path, err)
		}
		if _, err := fmt.Fprintf(f.writer, "{\"path\":%s,\"value\":%s}\n", f.path.Sprint(string(path)), value); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) formatPaths(nodes jsonpath.NodeList) error {
	for _, n := range nodes {
		if _, err := fmt.Fprintln(f.writer, f.path.Sprint(n.Path)); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) formatValues(nodes jsonpath.NodeList) error {
	for _, n := range nodes {
		value, err := encodeJSON(n.Value)
		if err != nil {
			return fmt.Errorf("encoding value at %s: %w", n.Path, err)
		}
		if _, err := fmt.Fprintf(f.writer, "%s\n", value); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) formatYAML(nodes jsonpath.NodeList) error {
	items := make([]yaml.MapSlice, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, yaml.MapSlice{
			{Key: "path", Value: n.Path},
			{Key: "value", Value: toYAML(n.Value)},
		})
	}
	data, err := yaml.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	_, err = f.writer.Write(data)
	return err
}

// encodeJSON marshals without HTML escaping and without the trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// toYAML rewrites document values into types the yaml encoder renders natively.
func toYAML(v any) any {
	switch current := v.(type) {
	case *document.Object:
		out := make(yaml.MapSlice, 0, current.Len())
		for k, item := range current.All() {
			out = append(out, yaml.MapItem{Key: k, Value: toYAML(item)})
		}
		return out
	case []any:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = toYAML(item)
		}
		return out
	case map[string]any:
		members, _ := document.Members(current)
		out := make(yaml.MapSlice, 0, len(members))
		for _, m := range members {
			out = append(out, yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)})
		}
		return out
	case json.Number:
		if i, err := strconv.ParseInt(string(current), 10, 64); err == nil {
			return i
		}
		if f, ok := number.ToFloat64(current); ok {
			return f
		}
		return string(current)
	default:
		return current
	}
}
