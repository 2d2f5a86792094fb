package selector

import (
	"errors"
	"testing"

	"github.com/jacoelho/flatjson/jsonvalue"
)

const testJSON = `{
	"meta": {"page": 1},
	"data": {
		"user": {"zeta": "last", "alpha": "first", "tags": ["b", "a"]},
		"items": [
			{"id": 2, "name": "two", "price": 2.50},
			{"id": 1, "name": "one", "price": 10}
		],
		"empty": {}
	}
}`

func mustParse(t *testing.T, input string) jsonvalue.Value {
	t.Helper()

	v, err := jsonvalue.Parse([]byte(input))
	if err != nil {
		t.Fatalf("jsonvalue.Parse() error = %v", err)
	}
	return v
}

func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{name: "root", expr: "$"},
		{name: "child", expr: "$.data.user"},
		{name: "index", expr: "$.data.items[0]"},
		{name: "filter", expr: "$.data.items[?@.id == 1]"},
		{name: "empty", expr: "", wantErr: true},
		{name: "blank", expr: "   ", wantErr: true},
		{name: "missing root", expr: "data.user", wantErr: true},
		{name: "unterminated", expr: "$.data[", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Compile(tt.expr)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPath) {
					t.Errorf("Compile(%q) error = %v, want ErrInvalidPath", tt.expr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}
			if s.String() != tt.expr {
				t.Errorf("String() = %q, want %q", s.String(), tt.expr)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	root := mustParse(t, testJSON)

	tests := []struct {
		name string
		expr string
		want string
	}{
		{
			name: "root keeps order",
			expr: "$",
			want: `{"meta":{"page":1},"data":{"user":{"zeta":"last","alpha":"first","tags":["b","a"]},"items":[{"id":2,"name":"two","price":2.50},{"id":1,"name":"one","price":10}],"empty":{}}}`,
		},
		{
			name: "object keeps member order",
			expr: "$.data.user",
			want: `{"zeta":"last","alpha":"first","tags":["b","a"]}`,
		},
		{
			name: "array element keeps number literals",
			expr: "$.data.items[0]",
			want: `{"id":2,"name":"two","price":2.50}`,
		},
		{
			name: "filter",
			expr: "$.data.items[?@.id == 1]",
			want: `{"id":1,"name":"one","price":10}`,
		},
		{
			name: "array",
			expr: "$.data.user.tags",
			want: `["b","a"]`,
		},
		{
			name: "empty object",
			expr: "$.data.empty",
			want: `{}`,
		},
		{
			name: "scalar",
			expr: "$.meta.page",
			want: `1`,
		},
		{
			name: "first of many",
			expr: "$.data.items[*].name",
			want: `"two"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}

			got, err := s.Select(root)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Select() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectNotFound(t *testing.T) {
	t.Parallel()

	s, err := Compile("$.missing.field")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	_, err = s.Select(mustParse(t, testJSON))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Select() error = %v, want ErrNotFound", err)
	}
}

func TestSelectDoesNotConfuseEqualContainers(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"a": {"x": 1, "y": 2}, "b": {"y": 2, "x": 1}}`)

	s, err := Compile("$.b")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	got, err := s.Select(root)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.String() != `{"y":2,"x":1}` {
		t.Errorf("Select() = %s, want {\"y\":2,\"x\":1}", got)
	}
}
