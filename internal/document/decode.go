package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrMalformed indicates the input could not be decoded into a document.
var ErrMalformed = errors.New("document: malformed input")

// MaxNesting bounds how deeply arrays and objects may nest in decoded input.
const MaxNesting = 10000

// Format selects the input syntax.
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json", "jsonl", "ndjson":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown input format %q", s)
	}
}

// FormatFor resolves FormatAuto from a file name; stdin and unknown extensions are JSON.
func FormatFor(name string, f Format) Format {
	if f != FormatAuto {
		return f
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decoder reads successive documents from a stream.
type Decoder interface {
	// Decode returns the next document, or io.EOF once the stream is exhausted.
	Decode() (any, error)
}

// NewDecoder returns a Decoder for the given format. FormatAuto decodes JSON.
func NewDecoder(r io.Reader, f Format) Decoder {
	if f == FormatYAML {
		return &yamlDecoder{dec: yaml.NewDecoder(r, yaml.UseOrderedMap())}
	}
	dec := json.NewDecoder(r)
	dec.UseNumber() // keep numeric text exact
	return &jsonDecoder{dec: dec}
}

// DecodeAll reads every document in r.
func DecodeAll(r io.Reader, f Format) ([]any, error) {
	dec := NewDecoder(r, f)
	var docs []any
	for {
		doc, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}

// DecodeJSON decodes a single JSON document, rejecting trailing data.
func DecodeJSON(data []byte) (any, error) {
	return decodeOne(strings.NewReader(string(data)), FormatJSON)
}

// DecodeYAML decodes a single YAML document.
func DecodeYAML(data []byte) (any, error) {
	return decodeOne(strings.NewReader(string(data)), FormatYAML)
}

func decodeOne(r io.Reader, f Format) (any, error) {
	dec := NewDecoder(r, f)
	doc, err := dec.Decode()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if err != nil {
		return nil, err
	}
	if _, err := dec.Decode(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after document", ErrMalformed)
	}
	return doc, nil
}

type jsonDecoder struct {
	dec *json.Decoder
}

func (d *jsonDecoder) Decode() (any, error) {
	tok, err := d.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if delim, ok := tok.(json.Delim); ok {
		v, err := decodeSubtree(d.dec, delim, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return v, nil
	}
	return tok, nil
}

func decodeSubtree(dec *json.Decoder, openingDelim json.Delim, depth int) (any, error) {
	if depth > MaxNesting {
		return nil, fmt.Errorf("nesting deeper than %d", MaxNesting)
	}
	switch openingDelim {
	case '{':
		return decodeObject(dec, depth)
	case '[':
		return decodeArray(dec, depth)
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", openingDelim)
	}
}

func decodeObject(dec *json.Decoder, depth int) (any, error) {
	obj := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %T", tok)
		}

		valueToken, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if vd, ok := valueToken.(json.Delim); ok {
			nested, err := decodeSubtree(dec, vd, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(key, nested)
		} else {
			obj.Set(key, valueToken)
		}
	}
}

func decodeArray(dec *json.Decoder, depth int) (any, error) {
	arr := make([]any, 0)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok {
			if d == ']' {
				return arr, nil
			}
			nested, err := decodeSubtree(dec, d, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, nested)
		} else {
			arr = append(arr, tok)
		}
	}
}

type yamlDecoder struct {
	dec *yaml.Decoder
}

func (d *yamlDecoder) Decode() (any, error) {
	var raw any
	if err := d.dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	doc, err := fromYAML(raw, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

// fromYAML converts goccy ordered maps into Objects, recursively.
// Non-string keys are rendered with fmt since JSON member names are strings.
func fromYAML(v any, depth int) (any, error) {
	switch v.(type) {
	case yaml.MapSlice, map[string]any, []any:
		if depth > MaxNesting {
			return nil, fmt.Errorf("nesting deeper than %d", MaxNesting)
		}
	}

	switch current := v.(type) {
	case yaml.MapSlice:
		obj := NewObject()
		for _, item := range current {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			value, err := fromYAML(item.Value, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		return obj, nil
	case map[string]any:
		obj := NewObject()
		for _, k := range sortedKeys(current) {
			value, err := fromYAML(current[k], depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(k, value)
		}
		return obj, nil
	case []any:
		out := make([]any, len(current))
		for i, item := range current {
			value, err := fromYAML(item, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	default:
		return current, nil
	}
}
