package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrEmptyInput   = errors.New("empty input")
	ErrTrailingData = errors.New("trailing data after JSON value")
)

// Parse decodes exactly one JSON document from data.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, ErrEmptyInput
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := Decode(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrTrailingData, err)
		}
		return Value{}, ErrTrailingData
	}

	return v, nil
}

// Decode reads the next JSON value from dec, preserving object member order.
// The decoder is switched to UseNumber so number literals survive unchanged.
// It returns io.EOF when dec has no more values.
func Decode(dec *json.Decoder) (Value, error) {
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
	}

	return Value{}, fmt.Errorf("unexpected JSON token %v at offset %d", tok, dec.InputOffset())
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := NewObject()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}

		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected object key at offset %d, got %v", dec.InputOffset(), tok)
		}

		tok, err = dec.Token()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}

		v, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return Value{}, unexpectedEOF(err)
	}

	return FromObject(obj), nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, unexpectedEOF(err)
		}

		v, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
	}

	if _, err := dec.Token(); err != nil {
		return Value{}, unexpectedEOF(err)
	}

	return Array(items...), nil
}

// A bare io.EOF inside a container means the document was cut short.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
