package lisp

import (
	"io"
	"log/slog"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// InitializeUserEnv applies config to env, which is expected to be a root
// environment.  The first LError returned by a Config is returned.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	for _, fn := range config {
		lerr := fn(env)
		if lerr.Type == LError {
			return lerr
		}
	}
	return Void()
}

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the height of its call stack to exceed n.  Frames
// reused by tail calls do not count against n.  A value of n less than one
// removes the limit.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stack.MaxHeight = n
		return Void()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Void()
	}
}

// WithStdout returns a Config that makes environments write program output
// (e.g. the print keyword) to w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stdout = w
		return Void()
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Stderr = w
		return Void()
	}
}

// WithLogger returns a Config that makes environments log evaluation events
// to logger.
func WithLogger(logger *slog.Logger) Config {
	return func(env *LEnv) *LVal {
		if logger == nil {
			return Errorf(ErrnoPanic, "nil logger")
		}
		env.Runtime.Logger = logger
		return Void()
	}
}
