package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/flatjson/jsonvalue"
)

// MaxLineSize bounds a single document in line mode.
const MaxLineSize = 64 * 1024 * 1024

// Reader yields the documents of an input stream one at a time.
type Reader struct {
	next  func() (jsonvalue.Value, error)
	count int
}

// NewReader reads a single document from r, or a stream of documents when
// multi is set: newline delimited for JSON, "---" separated for YAML.
func NewReader(r io.Reader, format Format, multi bool) *Reader {
	reader := &Reader{}

	switch {
	case format == FormatYAML && multi:
		reader.next = yamlStream(r)
	case format == FormatYAML:
		reader.next = once(func() (jsonvalue.Value, error) { return readYAMLDocument(r) })
	case multi:
		reader.next = jsonLines(r)
	default:
		reader.next = once(func() (jsonvalue.Value, error) { return readJSONDocument(r) })
	}

	return reader
}

// Next returns the next document, or io.EOF once the input is exhausted.
func (r *Reader) Next() (jsonvalue.Value, error) {
	v, err := r.next()
	if err != nil {
		return jsonvalue.Value{}, err
	}
	r.count++
	return v, nil
}

// Count reports how many documents Next has returned.
func (r *Reader) Count() int {
	return r.count
}

func once(read func() (jsonvalue.Value, error)) func() (jsonvalue.Value, error) {
	done := false
	return func() (jsonvalue.Value, error) {
		if done {
			return jsonvalue.Value{}, io.EOF
		}
		done = true
		return read()
	}
}

func readJSONDocument(r io.Reader) (jsonvalue.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("read input: %w", err)
	}

	v, err := jsonvalue.Parse(data)
	if errors.Is(err, jsonvalue.ErrEmptyInput) {
		return jsonvalue.Value{}, ErrNoDocument
	}
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("parse JSON: %w", err)
	}

	return v, nil
}

func jsonLines(r io.Reader) func() (jsonvalue.Value, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	line := 0

	return func() (jsonvalue.Value, error) {
		for scanner.Scan() {
			line++

			text := bytes.TrimSpace(scanner.Bytes())
			if len(text) == 0 {
				continue
			}

			v, err := jsonvalue.Parse(text)
			if err != nil {
				return jsonvalue.Value{}, fmt.Errorf("parse JSON at line %d: %w", line, err)
			}
			return v, nil
		}

		if err := scanner.Err(); err != nil {
			return jsonvalue.Value{}, fmt.Errorf("read input after line %d: %w", line, err)
		}
		return jsonvalue.Value{}, io.EOF
	}
}

func readYAMLDocument(r io.Reader) (jsonvalue.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("read input: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return jsonvalue.Value{}, ErrNoDocument
	}

	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return jsonvalue.Value{}, fmt.Errorf("parse YAML: %w", err)
	}

	return fromYAML(raw)
}

func yamlStream(r io.Reader) func() (jsonvalue.Value, error) {
	dec := yaml.NewDecoder(r, yaml.UseOrderedMap())
	doc := 0

	return func() (jsonvalue.Value, error) {
		var raw any
		if err := dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return jsonvalue.Value{}, io.EOF
			}
			return jsonvalue.Value{}, fmt.Errorf("parse YAML document %d: %w", doc+1, err)
		}
		doc++

		v, err := fromYAML(raw)
		if err != nil {
			return jsonvalue.Value{}, fmt.Errorf("YAML document %d: %w", doc, err)
		}
		return v, nil
	}
}

// fromYAML converts values decoded with yaml.UseOrderedMap.
func fromYAML(raw any) (jsonvalue.Value, error) {
	switch t := raw.(type) {
	case yaml.MapSlice:
		obj := jsonvalue.NewObjectWithCapacity(len(t))
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}

			v, err := fromYAML(item.Value)
			if err != nil {
				return jsonvalue.Value{}, fmt.Errorf("key %q: %w", key, err)
			}
			obj.Set(key, v)
		}
		return jsonvalue.FromObject(obj), nil
	case []any:
		items := make([]jsonvalue.Value, 0, len(t))
		for i, item := range t {
			v, err := fromYAML(item)
			if err != nil {
				return jsonvalue.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, v)
		}
		return jsonvalue.Array(items...), nil
	case time.Time:
		return jsonvalue.String(t.Format(time.RFC3339Nano)), nil
	default:
		return jsonvalue.FromAny(raw)
	}
}
