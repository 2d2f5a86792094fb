// Package flatten turns a nested JSON object into a single-level object whose
// keys spell out the path to every leaf.
//
//	{"a": {"b": [1, 2]}}  ->  {"a.b.0": 1, "a.b.1": 2}
//
// Keys are built depth first in document order. Scalars (including null) are
// leaves; empty arrays and objects are dropped unless the matching Preserve
// option is set. Two source paths that produce the same key make Flatten fail
// with a *KeyCollisionError instead of silently overwriting.
package flatten

import (
	"math"
	"strconv"

	"github.com/jacoelho/flatjson/internal/stack"
	"github.com/jacoelho/flatjson/jsonvalue"
)

// Flattener applies a fixed set of Options. It holds no per-call state and is
// safe for concurrent use.
type Flattener struct {
	opts Options
}

func New(opts Options) *Flattener {
	return &Flattener{opts: opts}
}

// Default returns a Flattener configured with DefaultOptions.
func Default() *Flattener {
	return New(DefaultOptions())
}

func (f *Flattener) Options() Options {
	return f.opts
}

// Flatten flattens root with DefaultOptions.
func Flatten(root jsonvalue.Value) (jsonvalue.Value, error) {
	return Default().Flatten(root)
}

// pending is a value waiting to be visited together with its full key.
type pending struct {
	key   string
	value jsonvalue.Value
}

// Flatten returns a new object holding every leaf of root under its
// flattened key. root must be an object.
//
// Members of root keep their key as is. Deeper members always join the
// parent key and their own with the separator, even when the parent key is
// empty: {"": {"a": 1}} flattens to {".a": 1}.
func (f *Flattener) Flatten(root jsonvalue.Value) (jsonvalue.Value, error) {
	obj, ok := root.AsObject()
	if !ok {
		return jsonvalue.Value{}, &InputMustBeObjectError{Found: root.Kind()}
	}

	out := jsonvalue.NewObjectWithCapacity(obj.Len())
	work := stack.NewWithCapacity[pending](obj.Len())

	// Root keys have no parent prefix, so they are used as they are.
	members := obj.Members()
	for i := len(members) - 1; i >= 0; i-- {
		work.Push(pending{key: members[i].Key, value: members[i].Value})
	}

	for {
		next, ok := work.Pop()
		if !ok {
			break
		}

		if err := f.visit(out, work, next); err != nil {
			return jsonvalue.Value{}, err
		}
	}

	return jsonvalue.FromObject(out), nil
}

// visit emits next when it is a leaf or schedules its children. Children are
// pushed in reverse so they pop in document order.
func (f *Flattener) visit(out *jsonvalue.Object, work *stack.Stack[pending], next pending) error {
	switch next.value.Kind() {
	case jsonvalue.KindObject:
		obj, _ := next.value.AsObject()
		if obj.Len() == 0 {
			if f.opts.PreserveEmptyObjects {
				return insert(out, next.key, next.value)
			}
			return nil
		}

		members := obj.Members()
		for i := len(members) - 1; i >= 0; i-- {
			key := next.key + f.opts.KeySeparator + members[i].Key
			work.Push(pending{key: key, value: members[i].Value})
		}
		return nil

	case jsonvalue.KindArray:
		items, _ := next.value.AsArray()
		if len(items) == 0 {
			if f.opts.PreserveEmptyArrays {
				return insert(out, next.key, next.value)
			}
			return nil
		}

		for i := len(items) - 1; i >= 0; i-- {
			key := f.opts.ArrayFormatting.indexKey(next.key, f.opts.KeySeparator, i)
			work.Push(pending{key: key, value: items[i]})
		}
		return nil

	case jsonvalue.KindString:
		if f.opts.InferTypes {
			return insert(out, next.key, inferType(next.value))
		}
		return insert(out, next.key, next.value)

	default:
		return insert(out, next.key, next.value)
	}
}

func insert(out *jsonvalue.Object, key string, v jsonvalue.Value) error {
	if !out.Insert(key, v) {
		return &KeyCollisionError{Key: key}
	}
	return nil
}

// inferType reads s as an integer, then a finite float, then a boolean, and
// falls back to the original string.
func inferType(v jsonvalue.Value) jsonvalue.Value {
	s, _ := v.AsString()

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return jsonvalue.Int(i)
	}

	if isDecimal(s) {
		if fl, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(fl, 0) {
			return jsonvalue.Float(fl)
		}
	}

	switch s {
	case "true":
		return jsonvalue.Bool(true)
	case "false":
		return jsonvalue.Bool(false)
	}

	return v
}

// isDecimal reports whether s only holds characters of a decimal float
// literal. strconv also accepts hex floats and digit underscores.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+', r == '-', r == '.', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}
