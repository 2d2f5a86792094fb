package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/flatjson/flatten"
	"github.com/jacoelho/flatjson/internal/codec"
	"github.com/jacoelho/flatjson/internal/exit"
	"github.com/jacoelho/flatjson/internal/logging"
	"github.com/jacoelho/flatjson/internal/selector"
)

const (
	// DefaultLogLevel keeps the tool quiet unless something goes wrong.
	DefaultLogLevel = "warn"

	arrayFormatPlain      = "plain"
	arrayFormatSurrounded = "surrounded"
)

var (
	ErrNoArguments         = errors.New("no arguments provided")
	ErrTooManyInputs       = errors.New("at most one input file can be given")
	ErrInvalidArrayFormat  = errors.New("array format must be one of: plain, surrounded")
	ErrNegativeIndent      = errors.New("indent cannot be negative")
	ErrIndentWithLines     = errors.New("indented JSON output cannot be combined with -lines")
	ErrNegativeRateLimit   = errors.New("rate limit cannot be negative")
	ErrRateLimitNeedsLines = errors.New("rate limit only applies with -lines")
)

// Config represents the complete configuration for the flatjson tool.
type Config struct {
	// Input and output
	InputFile    string // empty or "-" reads stdin
	InputFormat  codec.Format
	OutputFormat codec.Format
	Lines        bool
	Indent       int

	// Flattening
	Separator            string
	ArrayFormat          string
	ArrayStart           string
	ArrayEnd             string
	PreserveEmptyArrays  bool
	PreserveEmptyObjects bool
	InferTypes           bool

	// Selection and pacing
	Path      string
	RateLimit float64 // Records per second (0 = unlimited)

	LogLevel string
}

// FlattenOptions builds the flattener configuration from the flags.
func (c *Config) FlattenOptions() flatten.Options {
	formatting := flatten.Plain()
	if c.ArrayFormat == arrayFormatSurrounded {
		formatting = flatten.Surrounded(c.ArrayStart, c.ArrayEnd)
	}

	return flatten.DefaultOptions().
		WithKeySeparator(c.Separator).
		WithArrayFormatting(formatting).
		WithPreserveEmptyArrays(c.PreserveEmptyArrays).
		WithPreserveEmptyObjects(c.PreserveEmptyObjects).
		WithInferTypes(c.InferTypes)
}

// ReadsStdin reports whether input comes from standard input.
func (c *Config) ReadsStdin() bool {
	return c.InputFile == "" || c.InputFile == "-"
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	switch c.ArrayFormat {
	case arrayFormatPlain, arrayFormatSurrounded:
	default:
		return fmt.Errorf("%w, got: %s", ErrInvalidArrayFormat, c.ArrayFormat)
	}

	if c.Indent < 0 {
		return ErrNegativeIndent
	}
	if c.Lines && c.Indent > 0 && c.OutputFormat == codec.FormatJSON {
		return ErrIndentWithLines
	}

	if c.RateLimit < 0 {
		return ErrNegativeRateLimit
	}
	if c.RateLimit > 0 && !c.Lines {
		return ErrRateLimitNeedsLines
	}

	if c.Path != "" {
		if _, err := selector.Compile(c.Path); err != nil {
			return err
		}
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if !c.ReadsStdin() {
		if _, err := os.Stat(c.InputFile); err != nil {
			return fmt.Errorf("input file %s not found: %w", c.InputFile, err)
		}
	}

	return nil
}

// formatFlag implements flag.Value for -input-format and -output-format.
type formatFlag struct {
	format *codec.Format
}

func (f formatFlag) String() string {
	if f.format == nil {
		return ""
	}
	return f.format.String()
}

func (f formatFlag) Set(value string) error {
	parsed, err := codec.ParseFormat(value)
	if err != nil {
		return err
	}
	*f.format = parsed
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s\n", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	config := &Config{
		InputFormat:  codec.FormatJSON,
		OutputFormat: codec.FormatJSON,
	}

	fs.StringVar(&config.Separator, "separator", flatten.DefaultKeySeparator, "Separator inserted between nested keys")
	fs.StringVar(&config.ArrayFormat, "array-format", arrayFormatPlain, "Array index style: plain or surrounded")
	fs.StringVar(&config.ArrayStart, "array-start", "[", "Opening bracket for surrounded array indices")
	fs.StringVar(&config.ArrayEnd, "array-end", "]", "Closing bracket for surrounded array indices")
	fs.BoolVar(&config.PreserveEmptyArrays, "preserve-empty-arrays", false, "Keep empty arrays as leaf values")
	fs.BoolVar(&config.PreserveEmptyObjects, "preserve-empty-objects", false, "Keep empty objects as leaf values")
	fs.BoolVar(&config.InferTypes, "infer-types", false, "Convert numeric and boolean strings into numbers and booleans")
	fs.Var(formatFlag{&config.InputFormat}, "input-format", "Input format: json or yaml")
	fs.Var(formatFlag{&config.OutputFormat}, "output-format", "Output format: json or yaml")
	fs.BoolVar(&config.Lines, "lines", false, "Read and write one document per line (JSON) or per --- section (YAML)")
	fs.IntVar(&config.Indent, "indent", 0, "Indentation in spaces for output (0 for compact JSON)")
	fs.StringVar(&config.Path, "path", "", "JSONPath expression selecting the object to flatten")
	fs.Float64Var(&config.RateLimit, "rate-limit", 0, "Maximum records per second with -lines (0 for unlimited)")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostics level: debug, info, warn, error")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage() + "\n")
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s\n", err, Usage())
	}

	inputs := fs.Args()
	if len(inputs) > 1 {
		return nil, exit.Errorf("Error: %v, got: %s\n\n%s\n", ErrTooManyInputs, strings.Join(inputs, " "), Usage())
	}
	if len(inputs) == 1 {
		config.InputFile = inputs[0]
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s\n", err, Usage())
	}

	return config, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `flatjson - flatten nested JSON objects into single-level objects

Usage: flatjson [options] [file]

Reads one document from file (or stdin when file is omitted or "-") and writes
the flattened document to stdout.

Options:
  --separator STRING        Separator inserted between nested keys (default: ".")
  --array-format FORMAT     Array index style: plain (a.0) or surrounded (a[0]) (default: plain)
  --array-start STRING      Opening bracket for surrounded indices (default: "[")
  --array-end STRING        Closing bracket for surrounded indices (default: "]")
  --preserve-empty-arrays   Keep empty arrays as leaf values
  --preserve-empty-objects  Keep empty objects as leaf values
  --infer-types             Convert numeric and boolean strings into numbers and booleans
  --input-format FORMAT     Input format: json or yaml (default: json)
  --output-format FORMAT    Output format: json or yaml (default: json)
  --lines                   One document per line (JSON) or per --- section (YAML)
  --indent N                Indentation in spaces (0 for compact JSON)
  --path EXPR               JSONPath expression selecting the object to flatten
  --rate-limit N            Maximum records per second with --lines (0 for unlimited)
  --log-level LEVEL         Diagnostics level: debug, info, warn, error (default: warn)
  -h, --help                Show this help message

Examples:
  echo '{"a":{"b":[1,2]}}' | flatjson                  # {"a.b.0":1,"a.b.1":2}
  flatjson --array-format surrounded doc.json          # {"a.b[0]":1,"a.b[1]":2}
  flatjson --separator _ --preserve-empty-arrays doc.json
  flatjson --input-format yaml --output-format yaml config.yaml
  flatjson --path '$.data' response.json
  flatjson --lines --rate-limit 100 < events.ndjson`
}
