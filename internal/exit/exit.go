package exit

import (
	"errors"
	"fmt"
	"io"

	"github.com/jacoelho/flatjson/flatten"
)

// Stream selects where a Result message is printed.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

// Result holds the message and exit code for program termination.
type Result struct {
	Stream   Stream
	ExitCode int
	Message  string
}

// Print writes the message to stdout or stderr depending on Stream.
func (r *Result) Print(stdout, stderr io.Writer) {
	out := stdout
	if r.Stream == Stderr {
		out = stderr
	}
	fmt.Fprint(out, r.Message)
}

// Success creates a result that prints to stdout with exit code 0.
func Success(message string) *Result {
	return &Result{
		Stream:   Stdout,
		ExitCode: 0,
		Message:  message,
	}
}

// Error creates a result that prints to stderr with exit code 1.
func Error(message string) *Result {
	return &Result{
		Stream:   Stderr,
		ExitCode: 1,
		Message:  message,
	}
}

func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// FromError describes a failed run. Flattening errors get a hint on how the
// input or the options can be changed.
func FromError(err error) *Result {
	var (
		collision *flatten.KeyCollisionError
		notObject *flatten.InputMustBeObjectError
	)

	switch {
	case errors.As(err, &collision):
		return Errorf("Error: %v\nHint: pick another -separator or -array-format, or rename the source fields\n", err)
	case errors.As(err, &notObject):
		return Errorf("Error: %v\nHint: the document root must be an object; use -path to select one\n", err)
	default:
		return Errorf("Error: %v\n", err)
	}
}
