package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/flatjson/flatten"
	"github.com/jacoelho/flatjson/internal/codec"
)

func defaultConfig() *Config {
	return &Config{
		InputFormat:  codec.FormatJSON,
		OutputFormat: codec.FormatJSON,
		Separator:    ".",
		ArrayFormat:  "plain",
		ArrayStart:   "[",
		ArrayEnd:     "]",
		LogLevel:     "warn",
	}
}

func TestParse(t *testing.T) {
	tempDir := t.TempDir()
	inputFile := filepath.Join(tempDir, "doc.json")
	if err := os.WriteFile(inputFile, []byte(`{"a":1}`), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want func() *Config
	}{
		{
			name: "defaults read stdin",
			args: []string{"flatjson"},
			want: defaultConfig,
		},
		{
			name: "dash reads stdin",
			args: []string{"flatjson", "-"},
			want: func() *Config {
				c := defaultConfig()
				c.InputFile = "-"
				return c
			},
		},
		{
			name: "all flags",
			args: []string{
				"flatjson",
				"-separator", "_",
				"-array-format", "surrounded",
				"-array-start", "<",
				"-array-end", ">",
				"-preserve-empty-arrays",
				"-preserve-empty-objects",
				"-infer-types",
				"-input-format", "yaml",
				"-output-format", "YML",
				"-lines",
				"-indent", "4",
				"-path", "$.data",
				"-rate-limit", "2.5",
				"-log-level", "debug",
				inputFile,
			},
			want: func() *Config {
				return &Config{
					InputFile:            inputFile,
					InputFormat:          codec.FormatYAML,
					OutputFormat:         codec.FormatYAML,
					Lines:                true,
					Indent:               4,
					Separator:            "_",
					ArrayFormat:          "surrounded",
					ArrayStart:           "<",
					ArrayEnd:             ">",
					PreserveEmptyArrays:  true,
					PreserveEmptyObjects: true,
					InferTypes:           true,
					Path:                 "$.data",
					RateLimit:            2.5,
					LogLevel:             "debug",
				}
			},
		},
		{
			name: "empty separator is accepted",
			args: []string{"flatjson", "--separator="},
			want: func() *Config {
				c := defaultConfig()
				c.Separator = ""
				return c
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, result := Parse(tt.args)
			if result != nil {
				t.Fatalf("Parse() result = %q (code %d), want config", result.Message, result.ExitCode)
			}

			if diff := cmp.Diff(tt.want(), got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantMessage string
	}{
		{
			name:        "no arguments",
			args:        nil,
			wantMessage: ErrNoArguments.Error(),
		},
		{
			name:        "unknown flag",
			args:        []string{"flatjson", "-nope"},
			wantMessage: "failed to parse arguments",
		},
		{
			name:        "unknown array format",
			args:        []string{"flatjson", "-array-format", "brackets"},
			wantMessage: "array format must be one of",
		},
		{
			name:        "unknown input format",
			args:        []string{"flatjson", "-input-format", "xml"},
			wantMessage: "unknown format",
		},
		{
			name:        "negative indent",
			args:        []string{"flatjson", "-indent", "-1"},
			wantMessage: ErrNegativeIndent.Error(),
		},
		{
			name:        "indented json lines",
			args:        []string{"flatjson", "-lines", "-indent", "2"},
			wantMessage: ErrIndentWithLines.Error(),
		},
		{
			name:        "rate limit without lines",
			args:        []string{"flatjson", "-rate-limit", "5"},
			wantMessage: ErrRateLimitNeedsLines.Error(),
		},
		{
			name:        "negative rate limit",
			args:        []string{"flatjson", "-lines", "-rate-limit", "-5"},
			wantMessage: ErrNegativeRateLimit.Error(),
		},
		{
			name:        "invalid path",
			args:        []string{"flatjson", "-path", "$["},
			wantMessage: "invalid JSONPath",
		},
		{
			name:        "invalid log level",
			args:        []string{"flatjson", "-log-level", "loud"},
			wantMessage: "log level must be one of",
		},
		{
			name:        "missing input file",
			args:        []string{"flatjson", "/does/not/exist.json"},
			wantMessage: "not found",
		},
		{
			name:        "two input files",
			args:        []string{"flatjson", "a.json", "b.json"},
			wantMessage: ErrTooManyInputs.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, result := Parse(tt.args)
			if result == nil {
				t.Fatalf("Parse() = %+v, want error result", cfg)
			}
			if result.ExitCode != 1 {
				t.Errorf("Parse() ExitCode = %d, want 1", result.ExitCode)
			}
			if !strings.Contains(result.Message, tt.wantMessage) {
				t.Errorf("Parse() Message = %q, want it to contain %q", result.Message, tt.wantMessage)
			}
			if !strings.Contains(result.Message, "Usage: flatjson") {
				t.Error("Parse() error message should include usage")
			}
		})
	}
}

func TestParseHelp(t *testing.T) {
	for _, arg := range []string{"-h", "--help"} {
		cfg, result := Parse([]string{"flatjson", arg})
		if cfg != nil {
			t.Errorf("Parse(%s) config = %+v, want nil", arg, cfg)
		}
		if result == nil || result.ExitCode != 0 {
			t.Fatalf("Parse(%s) result = %+v, want success", arg, result)
		}
		if !strings.HasPrefix(result.Message, "flatjson - ") {
			t.Errorf("Parse(%s) Message = %q, want usage", arg, result.Message)
		}
	}
}

func TestFlattenOptions(t *testing.T) {
	tests := []struct {
		name   string
		config func() *Config
		want   flatten.Options
	}{
		{
			name:   "defaults",
			config: defaultConfig,
			want:   flatten.DefaultOptions(),
		},
		{
			name: "surrounded with flags",
			config: func() *Config {
				c := defaultConfig()
				c.Separator = "/"
				c.ArrayFormat = "surrounded"
				c.ArrayStart = "("
				c.ArrayEnd = ")"
				c.PreserveEmptyObjects = true
				c.InferTypes = true
				return c
			},
			want: flatten.Options{
				KeySeparator:         "/",
				ArrayFormatting:      flatten.Surrounded("(", ")"),
				PreserveEmptyObjects: true,
				InferTypes:           true,
			},
		},
		{
			name: "brackets ignored for plain",
			config: func() *Config {
				c := defaultConfig()
				c.ArrayStart = "("
				c.PreserveEmptyArrays = true
				return c
			},
			want: flatten.DefaultOptions().WithPreserveEmptyArrays(true),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config().FlattenOptions(); got != tt.want {
				t.Errorf("FlattenOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateDirect(t *testing.T) {
	c := defaultConfig()
	c.ArrayFormat = ""

	if err := c.Validate(); !errors.Is(err, ErrInvalidArrayFormat) {
		t.Errorf("Validate() error = %v, want ErrInvalidArrayFormat", err)
	}
}
