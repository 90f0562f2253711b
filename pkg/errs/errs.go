package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const (
	traceSkip     = 3
	tracePrealloc = 32
)

type sFrame struct {
	filename string
	method   string
	line     int
}

type stack []sFrame

func (s stack) String() string {
	var b strings.Builder

	for _, frame := range s {
		fmt.Fprintf(&b, "%s:%d %s\n", frame.filename, frame.line, frame.method)
	}

	return b.String()
}

type errorWithTrace struct {
	error

	trace stack
}

func (e *errorWithTrace) Unwrap() error {
	return e.error
}

// Trace returns the captured stack, one frame per line.
func (e *errorWithTrace) Trace() string {
	return e.trace.String()
}

// NewStack wraps err with the call stack of the first wrap point.
// Wrapping an already traced error returns it unchanged, so the trace
// always points at where the error first left its package.
func NewStack(err error) error {
	if err == nil {
		return nil
	}

	var errWT *errorWithTrace
	if errors.As(err, &errWT) {
		return err
	}

	return &errorWithTrace{
		error: err,
		trace: stackTrace(traceSkip),
	}
}

// Trace extracts the stack from a traced error, empty string if err
// was never wrapped by NewStack.
func Trace(err error) string {
	var errWT *errorWithTrace
	if errors.As(err, &errWT) {
		return errWT.Trace()
	}

	return ""
}

func stackTrace(skip int) stack {
	pc := make([]uintptr, tracePrealloc)
	n := runtime.Callers(skip, pc)
	pc = pc[:n]

	frames := runtime.CallersFrames(pc)
	stack := make(stack, 0, n)

	for {
		frame, more := frames.Next()

		stack = append(stack, sFrame{filename: frame.File, method: frame.Function, line: frame.Line})

		if !more {
			break
		}
	}

	return stack
}
