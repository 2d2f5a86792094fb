package selector

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/flatjson/jsonvalue"
)

var (
	ErrInvalidPath = errors.New("invalid JSONPath")
	ErrNotFound    = errors.New("no value matches JSONPath")
)

// Selector picks the subtree of a document that should be flattened.
type Selector struct {
	expr string
	path *jsonpath.Path
}

// Compile parses a JSONPath expression such as "$.data.items[0]".
func Compile(expr string) (*Selector, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: expression is empty", ErrInvalidPath)
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidPath, expr, err)
	}

	return &Selector{expr: expr, path: path}, nil
}

func (s *Selector) String() string {
	return s.expr
}

// Select returns the first node matched in root. Objects and arrays are
// returned as they appear in root, so member order is kept.
func (s *Selector) Select(root jsonvalue.Value) (jsonvalue.Value, error) {
	g := newGenericTree()
	data := g.build(root)

	results := s.path.Select(data)
	if len(results) == 0 {
		return jsonvalue.Value{}, fmt.Errorf("%w: %s", ErrNotFound, s.expr)
	}

	return g.restore(results[0])
}

// containerID identifies a map or slice of the generic tree by its backing
// storage; jsonpath returns the very containers it was given.
type containerID struct {
	ptr uintptr
	len int
}

// genericTree mirrors a jsonvalue tree in the map/slice shapes jsonpath
// works on and remembers which ordered value each container came from.
type genericTree struct {
	origin map[containerID]jsonvalue.Value
}

func newGenericTree() *genericTree {
	return &genericTree{origin: make(map[containerID]jsonvalue.Value)}
}

func (g *genericTree) build(v jsonvalue.Value) any {
	switch v.Kind() {
	case jsonvalue.KindBool:
		b, _ := v.AsBool()
		return b
	case jsonvalue.KindNumber:
		n, _ := v.AsNumber()
		// float64 lets filter expressions compare numbers.
		if f, err := strconv.ParseFloat(string(n), 64); err == nil {
			return f
		}
		return n
	case jsonvalue.KindString:
		s, _ := v.AsString()
		return s
	case jsonvalue.KindArray:
		items, _ := v.AsArray()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, g.build(item))
		}
		g.remember(out, v)
		return out
	case jsonvalue.KindObject:
		obj, _ := v.AsObject()
		out := make(map[string]any, obj.Len())
		for _, m := range obj.Members() {
			out[m.Key] = g.build(m.Value)
		}
		g.remember(out, v)
		return out
	default:
		return nil
	}
}

func (g *genericTree) remember(container any, v jsonvalue.Value) {
	if id, ok := identify(container); ok {
		g.origin[id] = v
	}
}

func (g *genericTree) restore(node any) (jsonvalue.Value, error) {
	if id, ok := identify(node); ok {
		if v, found := g.origin[id]; found {
			return v, nil
		}
	}

	switch t := node.(type) {
	case []any:
		items := make([]jsonvalue.Value, 0, len(t))
		for _, item := range t {
			v, err := g.restore(item)
			if err != nil {
				return jsonvalue.Value{}, err
			}
			items = append(items, v)
		}
		return jsonvalue.Array(items...), nil
	case float64:
		// keep integral numbers integral
		if t == float64(int64(t)) {
			return jsonvalue.Int(int64(t)), nil
		}
		return jsonvalue.FromAny(t)
	case json.Number:
		return jsonvalue.Number(t), nil
	default:
		return jsonvalue.FromAny(node)
	}
}

// identify returns the identity of non-empty maps and slices. Empty
// containers carry no content worth restoring.
func identify(node any) (containerID, bool) {
	switch t := node.(type) {
	case map[string]any:
		if len(t) == 0 {
			return containerID{}, false
		}
		return containerID{ptr: reflect.ValueOf(t).Pointer(), len: -1}, true
	case []any:
		if len(t) == 0 {
			return containerID{}, false
		}
		return containerID{ptr: reflect.ValueOf(t).Pointer(), len: len(t)}, true
	default:
		return containerID{}, false
	}
}
