package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/flatjson/jsonvalue"
)

// DefaultYAMLIndent is used when no indentation is requested for YAML output.
const DefaultYAMLIndent = 2

// Writer encodes documents to an output stream. JSON documents are written one
// per line; YAML documents are separated by "---".
type Writer struct {
	w       io.Writer
	format  Format
	indent  int
	written int
}

// NewWriter creates a writer. indent is the number of spaces used to indent
// nested JSON (0 writes compact JSON) or YAML (0 uses DefaultYAMLIndent).
func NewWriter(w io.Writer, format Format, indent int) *Writer {
	return &Writer{w: w, format: format, indent: indent}
}

func (w *Writer) Write(v jsonvalue.Value) error {
	var (
		data []byte
		err  error
	)

	switch w.format {
	case FormatYAML:
		data, err = w.encodeYAML(v)
	default:
		data, err = w.encodeJSON(v)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	w.written++
	return nil
}

func (w *Writer) encodeJSON(v jsonvalue.Value) ([]byte, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}

	if w.indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", w.indent)); err != nil {
			return nil, fmt.Errorf("indent JSON: %w", err)
		}
		data = buf.Bytes()
	}

	return append(data, '\n'), nil
}

func (w *Writer) encodeYAML(v jsonvalue.Value) ([]byte, error) {
	indent := w.indent
	if indent <= 0 {
		indent = DefaultYAMLIndent
	}

	data, err := yaml.MarshalWithOptions(toYAML(v), yaml.Indent(indent))
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}

	if w.written > 0 {
		data = append([]byte("---\n"), data...)
	}
	return data, nil
}

// toYAML maps objects onto yaml.MapSlice so member order survives encoding.
func toYAML(v jsonvalue.Value) any {
	switch v.Kind() {
	case jsonvalue.KindBool:
		b, _ := v.AsBool()
		return b
	case jsonvalue.KindNumber:
		n, _ := v.AsNumber()
		return yamlNumber(string(n))
	case jsonvalue.KindString:
		s, _ := v.AsString()
		return s
	case jsonvalue.KindArray:
		items, _ := v.AsArray()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, toYAML(item))
		}
		return out
	case jsonvalue.KindObject:
		obj, _ := v.AsObject()
		out := make(yaml.MapSlice, 0, obj.Len())
		for _, m := range obj.Members() {
			out = append(out, yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)})
		}
		return out
	default:
		return nil
	}
}

func yamlNumber(literal string) any {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return u
	}
	// Integers beyond 64 bits would lose digits as float64.
	if strings.ContainsAny(literal, ".eE") {
		if f, err := strconv.ParseFloat(literal, 64); err == nil {
			return f
		}
	}
	return yamlLiteral(literal)
}

// yamlLiteral is a number written exactly as it appears in the source.
type yamlLiteral string

func (l yamlLiteral) MarshalYAML() ([]byte, error) {
	return []byte(l), nil
}
