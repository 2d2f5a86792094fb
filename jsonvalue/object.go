package jsonvalue

import (
	"maps"
	"slices"
)

// Member is one key/value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// Object is an insertion-ordered set of members with unique keys.
type Object struct {
	members []Member
	index   map[string]int
}

func NewObject() *Object {
	return NewObjectWithCapacity(0)
}

func NewObjectWithCapacity(capacity int) *Object {
	return &Object{
		members: make([]Member, 0, capacity),
		index:   make(map[string]int, capacity),
	}
}

func (o *Object) Len() int {
	return len(o.members)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.members[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Insert appends a new member. It returns false and leaves the object
// untouched when key is already present.
func (o *Object) Insert(key string, v Value) bool {
	if _, ok := o.index[key]; ok {
		return false
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
	return true
}

// Set replaces the value of an existing key in place or appends a new member.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.Insert(key, v)
}

// Members returns the members in insertion order. The slice is shared with
// the object and must not be modified.
func (o *Object) Members() []Member {
	return o.members
}

func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.members))
	for _, m := range o.members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Clone returns a shallow copy; member values are immutable so sharing them is safe.
func (o *Object) Clone() *Object {
	return &Object{
		members: slices.Clone(o.members),
		index:   maps.Clone(o.index),
	}
}

func (o *Object) equal(other *Object) bool {
	if len(o.members) != len(other.members) {
		return false
	}
	for i, m := range o.members {
		n := other.members[i]
		if m.Key != n.Key || !m.Value.Equal(n.Value) {
			return false
		}
	}
	return true
}
