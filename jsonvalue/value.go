// Package jsonvalue models a parsed JSON document as a closed sum type.
//
// Objects keep the order in which their members were inserted and numbers
// keep their decimal literal, so a document can be read and written back
// without reordering keys or reformatting numbers.
package jsonvalue

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind  Kind
	flag  bool
	text  string // string content or number literal
	items []Value
	obj   *Object
}

func Null() Value {
	return Value{}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// Number wraps a decimal literal as produced by a json.Decoder with UseNumber.
// The literal is validated when the value is encoded.
func Number(n json.Number) Value {
	return Value{kind: KindNumber, text: string(n)}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// Float keeps a fractional part on integral values so 1.0 stays distinguishable
// from 1 when printed.
func Float(f float64) Value {
	literal := strconv.FormatFloat(f, 'g', -1, 64)
	if !math.IsInf(f, 0) && !math.IsNaN(f) && !strings.ContainsAny(literal, ".eE") {
		literal += ".0"
	}
	return Value{kind: KindNumber, text: literal}
}

func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Array builds an array value. The slice is retained, callers must not
// modify it afterwards.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// FromObject wraps o. A nil object is treated as empty.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// ObjectOf builds an object value from members in order.
// Repeated keys keep their first position and the last value.
func ObjectOf(members ...Member) Value {
	o := NewObjectWithCapacity(len(members))
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return FromObject(o)
}

// Pair is shorthand for a Member literal.
func Pair(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.flag, v.kind == KindBool
}

func (v Value) AsNumber() (json.Number, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return json.Number(v.text), true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsArray returns the elements without copying; treat them as read-only.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.items, true
}

func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	if v.obj == nil {
		return NewObject(), true
	}
	return v.obj, true
}

// Len reports the number of elements or members of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		if v.obj == nil {
			return 0
		}
		return v.obj.Len()
	default:
		return 0
	}
}

// Equal reports deep equality. Numbers compare by literal, so 2 and 2.0
// differ; objects compare member order as well as content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.flag == other.flag
	case KindNumber, KindString:
		return v.text == other.text
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		a, _ := v.AsObject()
		b, _ := other.AsObject()
		return a.equal(b)
	default:
		return false
	}
}

// String renders the value as compact JSON, or an error marker when the value
// holds an invalid number literal.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "!ERROR(" + err.Error() + ")"
	}
	return string(data)
}
