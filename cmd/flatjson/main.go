package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/jacoelho/flatjson/flatten"
	"github.com/jacoelho/flatjson/internal/codec"
	"github.com/jacoelho/flatjson/internal/config"
	"github.com/jacoelho/flatjson/internal/exit"
	"github.com/jacoelho/flatjson/internal/logging"
	"github.com/jacoelho/flatjson/internal/ratelimit"
	"github.com/jacoelho/flatjson/internal/selector"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(exitCode)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, exitResult := config.Parse(args)
	if exitResult != nil {
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	logger, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		exitResult = exit.FromError(err)
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	input := stdin
	if !cfg.ReadsStdin() {
		file, err := os.Open(cfg.InputFile)
		if err != nil {
			exitResult = exit.FromError(fmt.Errorf("open input: %w", err))
			exitResult.Print(stdout, stderr)
			return exitResult.ExitCode
		}
		defer file.Close()
		input = file
	}

	records, err := process(ctx, cfg, logger, input, stdout)
	if err != nil {
		level.Debug(logger).Log("msg", "flattening failed", "records", records, "err", err)
		exitResult = exit.FromError(err)
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	level.Info(logger).Log("msg", "flattening finished", "records", records)
	return 0
}

// process flattens every document of input and writes the results to output.
// It returns the number of records written.
func process(ctx context.Context, cfg *config.Config, logger log.Logger, input io.Reader, output io.Writer) (int, error) {
	var sel *selector.Selector
	if cfg.Path != "" {
		compiled, err := selector.Compile(cfg.Path)
		if err != nil {
			return 0, err
		}
		sel = compiled
	}

	flattener := flatten.New(cfg.FlattenOptions())
	reader := codec.NewReader(input, cfg.InputFormat, cfg.Lines)
	writer := codec.NewWriter(output, cfg.OutputFormat, cfg.Indent)
	limiter := ratelimit.New(cfg.RateLimit)

	level.Debug(logger).Log(
		"msg", "starting",
		"input_format", cfg.InputFormat,
		"output_format", cfg.OutputFormat,
		"lines", cfg.Lines,
		"array_format", cfg.FlattenOptions().ArrayFormatting,
		"rate_limit", limiter.Limit(),
	)

	written := 0
	for {
		doc, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return written, nil
		}
		if err != nil {
			return written, err
		}
		record := reader.Count()

		if sel != nil {
			doc, err = sel.Select(doc)
			if err != nil {
				return written, recordError(cfg, record, err)
			}
		}

		flat, err := flattener.Flatten(doc)
		if err != nil {
			return written, recordError(cfg, record, err)
		}

		if err := limiter.Wait(ctx); err != nil {
			return written, err
		}

		if err := writer.Write(flat); err != nil {
			return written, err
		}
		written++

		level.Debug(logger).Log("msg", "flattened document", "record", record, "keys", flat.Len())
	}
}

// recordError names the failing record when several documents are processed.
func recordError(cfg *config.Config, record int, err error) error {
	if !cfg.Lines {
		return err
	}
	return fmt.Errorf("record %d: %w", record, err)
}
