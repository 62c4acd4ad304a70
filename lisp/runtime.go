package lisp

import (
	"io"
	"log/slog"
	"os"
)

// Runtime is the state shared by every scope of a session.
type Runtime struct {
	Reader Reader
	Stack  *CallStack
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// StandardRuntime returns a new Runtime with an empty stack and
// stdout/stderr bound to the process's standard streams.  The returned
// runtime has no Reader.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stack:  &CallStack{MaxHeight: DefaultMaxStackHeight},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})),
	}
}
