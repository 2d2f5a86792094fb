package flatten

import (
	"strconv"
	"strings"
)

// DefaultKeySeparator joins parent and child key segments.
const DefaultKeySeparator = "."

type arrayStyle uint8

const (
	stylePlain arrayStyle = iota
	styleSurrounded
)

// ArrayFormatting controls how an array index is rendered into a key.
// The zero value is Plain.
type ArrayFormatting struct {
	style      arrayStyle
	start, end string
}

// Plain appends the key separator followed by the decimal index: a.b.0
func Plain() ArrayFormatting {
	return ArrayFormatting{style: stylePlain}
}

// Surrounded wraps the index in start and end without a separator: a.b[0]
func Surrounded(start, end string) ArrayFormatting {
	return ArrayFormatting{style: styleSurrounded, start: start, end: end}
}

func (f ArrayFormatting) IsSurrounded() bool {
	return f.style == styleSurrounded
}

// Brackets returns the start and end strings of a Surrounded formatting.
func (f ArrayFormatting) Brackets() (start, end string) {
	return f.start, f.end
}

func (f ArrayFormatting) String() string {
	if f.IsSurrounded() {
		return "surrounded(" + strconv.Quote(f.start) + ", " + strconv.Quote(f.end) + ")"
	}
	return "plain"
}

func (f ArrayFormatting) indexKey(prefix, separator string, index int) string {
	var b strings.Builder
	b.WriteString(prefix)
	if f.IsSurrounded() {
		b.WriteString(f.start)
		b.WriteString(strconv.Itoa(index))
		b.WriteString(f.end)
	} else {
		b.WriteString(separator)
		b.WriteString(strconv.Itoa(index))
	}
	return b.String()
}

// Options configures a Flattener. Use DefaultOptions and the With methods;
// the zero Options has an empty key separator.
type Options struct {
	// KeySeparator is inserted between a parent and a child key. Any string is
	// accepted, including the empty string.
	KeySeparator string

	ArrayFormatting ArrayFormatting

	// PreserveEmptyArrays emits [] as a leaf instead of dropping the key.
	PreserveEmptyArrays bool

	// PreserveEmptyObjects emits {} as a leaf instead of dropping the key.
	PreserveEmptyObjects bool

	// InferTypes converts string leaves that read as integers, floats or
	// booleans into the matching JSON type.
	InferTypes bool
}

// DefaultOptions uses "." as separator, plain array indices and drops empty
// containers.
func DefaultOptions() Options {
	return Options{
		KeySeparator:    DefaultKeySeparator,
		ArrayFormatting: Plain(),
	}
}

func (o Options) WithKeySeparator(separator string) Options {
	o.KeySeparator = separator
	return o
}

func (o Options) WithArrayFormatting(formatting ArrayFormatting) Options {
	o.ArrayFormatting = formatting
	return o
}

func (o Options) WithPreserveEmptyArrays(preserve bool) Options {
	o.PreserveEmptyArrays = preserve
	return o
}

func (o Options) WithPreserveEmptyObjects(preserve bool) Options {
	o.PreserveEmptyObjects = preserve
	return o
}

func (o Options) WithInferTypes(infer bool) Options {
	o.InferTypes = infer
	return o
}
